package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:cart_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Store{},
		&models.StoreCategory{},
		&models.Product{},
		&models.ProductSize{},
		&models.Cart{},
		&models.CartItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	return NewCartService(cartRepo, productRepo), db
}

func TestCartGetOrCreateIsIdempotent(t *testing.T) {
	cartService, db := setupCartServiceTest(t)
	createTestCustomer(t, db, 1)

	first, err := cartService.GetOrCreate(1)
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected cart to get a uuid primary key")
	}
	second, err := cartService.GetOrCreate(1)
	if err != nil {
		t.Fatalf("second get or create failed: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same cart, got %s and %s", first.ID, second.ID)
	}

	if _, err := cartService.GetOrCreate(0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for zero user, got %v", err)
	}
}

func TestCartAddItemMergesSameSize(t *testing.T) {
	cartService, db := setupCartServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "tomatoes", "18.50", "")

	view, err := cartService.AddItem(1, size.ID, 2)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart after first add: %+v", view)
	}

	view, err = cartService.AddItem(1, size.ID, 3)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("expected merged single item, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %d", view.Items[0].Quantity)
	}
	if view.ItemCount != 5 {
		t.Fatalf("expected item_count 5, got %d", view.ItemCount)
	}
	// 5×18.50
	if !view.ItemsTotal.Equal(decimal.RequireFromString("92.50")) {
		t.Fatalf("expected items_total 92.50, got %s", view.ItemsTotal.String())
	}
}

func TestCartAddItemValidation(t *testing.T) {
	cartService, db := setupCartServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "cheese", "32.00", "")

	if _, err := cartService.AddItem(1, size.ID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := cartService.AddItem(1, 9999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown size, got %v", err)
	}

	if err := db.Model(&models.ProductSize{}).Where("id = ?", size.ID).Update("is_available", false).Error; err != nil {
		t.Fatalf("disable size failed: %v", err)
	}
	if _, err := cartService.AddItem(1, size.ID, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable for disabled size, got %v", err)
	}

	if err := db.Model(&models.ProductSize{}).Where("id = ?", size.ID).Update("is_available", true).Error; err != nil {
		t.Fatalf("enable size failed: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", size.ProductID).Update("available", false).Error; err != nil {
		t.Fatalf("disable product failed: %v", err)
	}
	if _, err := cartService.AddItem(1, size.ID, 1); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable for disabled product, got %v", err)
	}
}

func TestCartViewUsesDiscountedPrice(t *testing.T) {
	cartService, db := setupCartServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "sanitizer", "48.00", "42.00")

	view, err := cartService.AddItem(1, size.ID, 2)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	item := view.Items[0]
	if !item.UnitPrice.Equal(decimal.RequireFromString("42.00")) {
		t.Fatalf("expected discounted unit price 42.00, got %s", item.UnitPrice.String())
	}
	if !item.BasePrice.Equal(decimal.RequireFromString("48.00")) {
		t.Fatalf("expected base price 48.00, got %s", item.BasePrice.String())
	}
	if item.DiscountPct == 0 {
		t.Fatalf("expected non-zero discount_pct")
	}
	if !item.Subtotal.Equal(decimal.RequireFromString("84.00")) {
		t.Fatalf("expected subtotal 84.00, got %s", item.Subtotal.String())
	}
	if !view.ItemsTotal.Equal(decimal.RequireFromString("84.00")) {
		t.Fatalf("expected items_total 84.00, got %s", view.ItemsTotal.String())
	}
}

func TestCartUpdateAndRemoveItem(t *testing.T) {
	cartService, db := setupCartServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "bread", "10.00", "")

	view, err := cartService.AddItem(1, size.ID, 1)
	if err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	itemID := view.Items[0].ID

	view, err = cartService.UpdateItemQuantity(1, itemID, 4)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if view.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", view.Items[0].Quantity)
	}
	if _, err := cartService.UpdateItemQuantity(1, itemID, 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := cartService.UpdateItemQuantity(1, 9999, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}

	view, err = cartService.RemoveItem(1, itemID)
	if err != nil {
		t.Fatalf("remove item failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(view.Items))
	}
	if !view.ItemsTotal.IsZero() {
		t.Fatalf("expected zero items_total, got %s", view.ItemsTotal.String())
	}
	if _, err := cartService.RemoveItem(1, itemID); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound for removed item, got %v", err)
	}
}

func TestCartClear(t *testing.T) {
	cartService, db := setupCartServiceTest(t)
	createTestCustomer(t, db, 1)
	sizeA := createTestProductSize(t, db, "juice", "12.00", "")
	sizeB := createTestProductSize(t, db, "dates", "40.00", "")

	if _, err := cartService.AddItem(1, sizeA.ID, 2); err != nil {
		t.Fatalf("add item A failed: %v", err)
	}
	if _, err := cartService.AddItem(1, sizeB.ID, 1); err != nil {
		t.Fatalf("add item B failed: %v", err)
	}

	view, err := cartService.Clear(1)
	if err != nil {
		t.Fatalf("clear cart failed: %v", err)
	}
	if len(view.Items) != 0 || view.ItemCount != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", view)
	}

	if _, err := cartService.Clear(2); !errors.Is(err, ErrCartNotFound) {
		t.Fatalf("expected ErrCartNotFound for user without cart, got %v", err)
	}
}
