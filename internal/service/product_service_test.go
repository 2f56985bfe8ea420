package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dwarmarket/internal/constants"
	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupProductServiceTest(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:product_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	productRepo := repository.NewProductRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	storeCategoryRepo := repository.NewStoreCategoryRepository(db)
	return NewProductService(productRepo, storeRepo, storeCategoryRepo), db
}

func createTestStore(t *testing.T, db *gorm.DB, name string) *models.Store {
	t.Helper()
	category := models.Category{Name: "cat-" + name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	store := models.Store{CategoryID: category.ID, Name: name, OpensAt: "08:00", CloseAt: "22:00"}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	return &store
}

func TestProductCreateDerivesUniqueSlug(t *testing.T) {
	productService, db := setupProductServiceTest(t)
	store := createTestStore(t, db, "Al Noor Market")

	first, err := productService.Create(ProductInput{StoreID: store.ID, Title: "Egyptian Tomatoes"})
	if err != nil {
		t.Fatalf("create first product failed: %v", err)
	}
	if first.Slug != "egyptian-tomatoes" {
		t.Fatalf("expected slug egyptian-tomatoes, got %s", first.Slug)
	}

	second, err := productService.Create(ProductInput{StoreID: store.ID, Title: "Egyptian Tomatoes"})
	if err != nil {
		t.Fatalf("create second product failed: %v", err)
	}
	if second.Slug != "egyptian-tomatoes-1" {
		t.Fatalf("expected slug egyptian-tomatoes-1, got %s", second.Slug)
	}

	third, err := productService.Create(ProductInput{StoreID: store.ID, Title: "  Egyptian   Tomatoes  "})
	if err != nil {
		t.Fatalf("create third product failed: %v", err)
	}
	if third.Slug != "egyptian-tomatoes-2" {
		t.Fatalf("expected slug egyptian-tomatoes-2, got %s", third.Slug)
	}
}

func TestProductUpdateKeepsSlugWhenTitleUnchanged(t *testing.T) {
	productService, db := setupProductServiceTest(t)
	store := createTestStore(t, db, "Green Valley Grocery")

	product, err := productService.Create(ProductInput{StoreID: store.ID, Title: "Organic Cucumbers"})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	updated, err := productService.Update(product.ID, ProductInput{
		StoreID:     store.ID,
		Title:       "Organic Cucumbers",
		Description: "picked the same day",
	})
	if err != nil {
		t.Fatalf("update product failed: %v", err)
	}
	if updated.Slug != product.Slug {
		t.Fatalf("expected slug unchanged, got %s", updated.Slug)
	}

	renamed, err := productService.Update(product.ID, ProductInput{StoreID: store.ID, Title: "Baladi Cucumbers"})
	if err != nil {
		t.Fatalf("rename product failed: %v", err)
	}
	if renamed.Slug != "baladi-cucumbers" {
		t.Fatalf("expected regenerated slug baladi-cucumbers, got %s", renamed.Slug)
	}

	// 标题变化但 slug 不变时，自身占用不算冲突
	restored, err := productService.Update(product.ID, ProductInput{StoreID: store.ID, Title: "Baladi  Cucumbers"})
	if err != nil {
		t.Fatalf("retitle product failed: %v", err)
	}
	if restored.Slug != "baladi-cucumbers" {
		t.Fatalf("expected slug to stay baladi-cucumbers, got %s", restored.Slug)
	}
}

func TestProductCreateValidation(t *testing.T) {
	productService, db := setupProductServiceTest(t)
	store := createTestStore(t, db, "El Shefaa Pharmacy")

	if _, err := productService.Create(ProductInput{StoreID: store.ID, Title: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank title, got %v", err)
	}
	if _, err := productService.Create(ProductInput{StoreID: 9999, Title: "Ghost Product"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown store, got %v", err)
	}

	// 归属其他商家的分区不可用
	other := createTestStore(t, db, "Golden Crust Bakery")
	foreign := models.StoreCategory{StoreID: other.ID, Name: "Bread"}
	if err := db.Create(&foreign).Error; err != nil {
		t.Fatalf("create store category failed: %v", err)
	}
	if _, err := productService.Create(ProductInput{
		StoreID:         store.ID,
		StoreCategoryID: &foreign.ID,
		Title:           "Misfiled Product",
	}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for foreign store category, got %v", err)
	}
}

func TestProductSizeValidation(t *testing.T) {
	productService, db := setupProductServiceTest(t)
	store := createTestStore(t, db, "Al Noor Market")
	product, err := productService.Create(ProductInput{StoreID: store.ID, Title: "Domty White Cheese"})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	size, err := productService.CreateSize(product.ID, ProductSizeInput{SizeName: "250g", SizeType: "weight", Price: "32.00"})
	if err != nil {
		t.Fatalf("create size failed: %v", err)
	}
	if size.SizeType != constants.SizeTypeWeight {
		t.Fatalf("expected weight size type, got %s", size.SizeType)
	}

	// 省略规格类型时默认按件计
	defaulted, err := productService.CreateSize(product.ID, ProductSizeInput{SizeName: "1 pack", Price: "60.00"})
	if err != nil {
		t.Fatalf("create defaulted size failed: %v", err)
	}
	if defaulted.SizeType != constants.SizeTypePiece {
		t.Fatalf("expected default piece size type, got %s", defaulted.SizeType)
	}

	if _, err := productService.CreateSize(product.ID, ProductSizeInput{SizeName: "500g", SizeType: "gallon", Price: "60.00"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown size type, got %v", err)
	}
	if _, err := productService.CreateSize(product.ID, ProductSizeInput{SizeName: "500g", Price: "not-a-number"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad price, got %v", err)
	}

	discounted := "40.00"
	if _, err := productService.CreateSize(product.ID, ProductSizeInput{
		SizeName:           "500g",
		Price:              "32.00",
		PriceAfterDiscount: &discounted,
	}); !errors.Is(err, ErrDiscountAbovePrice) {
		t.Fatalf("expected ErrDiscountAbovePrice, got %v", err)
	}

	valid := "55.00"
	withDiscount, err := productService.CreateSize(product.ID, ProductSizeInput{
		SizeName:           "500g",
		SizeType:           "weight",
		Price:              "60.00",
		PriceAfterDiscount: &valid,
	})
	if err != nil {
		t.Fatalf("create discounted size failed: %v", err)
	}
	if withDiscount.PriceAfterDiscount == nil || !withDiscount.PriceAfterDiscount.Equal(decimal.RequireFromString("55.00")) {
		t.Fatalf("expected discounted price 55.00, got %+v", withDiscount.PriceAfterDiscount)
	}
	if !withDiscount.EffectivePrice().Equal(decimal.RequireFromString("55.00")) {
		t.Fatalf("expected effective price 55.00, got %s", withDiscount.EffectivePrice().String())
	}
}

func TestProductDeleteBlockedByOrderReferences(t *testing.T) {
	productService, db := setupProductServiceTest(t)
	store := createTestStore(t, db, "Golden Crust Bakery")
	product, err := productService.Create(ProductInput{StoreID: store.ID, Title: "Butter Croissant"})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	size, err := productService.CreateSize(product.ID, ProductSizeInput{SizeName: "1 piece", Price: "15.00"})
	if err != nil {
		t.Fatalf("create size failed: %v", err)
	}

	createTestCustomer(t, db, 1)
	order := models.Order{CustomerID: 1, Status: constants.OrderStatusPending, TotalPrice: models.ZeroMoney()}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	item := models.OrderItem{OrderID: order.ID, ProductSizeID: size.ID, Quantity: 1, UnitPrice: size.Price}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create order item failed: %v", err)
	}

	if err := productService.DeleteSize(product.ID, size.ID); !errors.Is(err, ErrSizeInOrders) {
		t.Fatalf("expected ErrSizeInOrders, got %v", err)
	}
	if err := productService.Delete(product.ID); !errors.Is(err, ErrProductInOrders) {
		t.Fatalf("expected ErrProductInOrders, got %v", err)
	}

	// 移除订单引用后可删除
	if err := db.Delete(&models.OrderItem{}, item.ID).Error; err != nil {
		t.Fatalf("delete order item failed: %v", err)
	}
	if err := productService.DeleteSize(product.ID, size.ID); err != nil {
		t.Fatalf("delete size failed: %v", err)
	}
	if err := productService.Delete(product.ID); err != nil {
		t.Fatalf("delete product failed: %v", err)
	}
	if _, err := productService.Get(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
