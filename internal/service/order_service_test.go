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

func setupOrderServiceTest(t *testing.T) (*OrderService, *CartService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:order_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
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
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderService := NewOrderService(orderRepo, cartRepo, productRepo, nil)
	cartService := NewCartService(cartRepo, productRepo)
	return orderService, cartService, db
}

func createTestCustomer(t *testing.T, db *gorm.DB, id uint) {
	t.Helper()
	user := models.User{
		ID:           id,
		Phone:        fmt.Sprintf("+2010000000%d", id),
		FullName:     fmt.Sprintf("Test User %d", id),
		PasswordHash: "hash",
		IsActive:     true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func createTestProductSize(t *testing.T, db *gorm.DB, title, price, discounted string) *models.ProductSize {
	t.Helper()
	category := models.Category{Name: "cat-" + title}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	store := models.Store{CategoryID: category.ID, Name: "store-" + title, OpensAt: "08:00", CloseAt: "22:00"}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	product := models.Product{StoreID: store.ID, Title: title, Slug: "slug-" + title, Available: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	size := models.ProductSize{
		ProductID:   product.ID,
		SizeName:    "1kg",
		SizeType:    constants.SizeTypeWeight,
		Price:       models.NewMoneyFromDecimal(decimal.RequireFromString(price)),
		IsAvailable: true,
	}
	if discounted != "" {
		d := models.NewMoneyFromDecimal(decimal.RequireFromString(discounted))
		size.PriceAfterDiscount = &d
	}
	if err := db.Create(&size).Error; err != nil {
		t.Fatalf("create product size failed: %v", err)
	}
	return &size
}

func TestCheckoutFreezesPricesAndDeletesCart(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	createTestCustomer(t, db, 1)
	sizeA := createTestProductSize(t, db, "tomatoes", "10.00", "")
	sizeB := createTestProductSize(t, db, "cheese", "8.00", "5.00")

	if _, err := cartService.AddItem(1, sizeA.ID, 2); err != nil {
		t.Fatalf("add cart item A failed: %v", err)
	}
	if _, err := cartService.AddItem(1, sizeB.ID, 1); err != nil {
		t.Fatalf("add cart item B failed: %v", err)
	}

	order, err := orderService.Checkout(1, "leave at the door")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 order items, got %d", len(order.Items))
	}
	// 2×10.00 + 1×5.00（折后价生效）
	if !order.TotalPrice.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("expected total 25.00, got %s", order.TotalPrice.String())
	}
	for _, item := range order.Items {
		if item.ProductSizeID == sizeB.ID && !item.UnitPrice.Equal(decimal.RequireFromString("5.00")) {
			t.Fatalf("expected discounted unit price 5.00, got %s", item.UnitPrice.String())
		}
	}

	var cartCount int64
	if err := db.Model(&models.Cart{}).Where("user_id = ?", 1).Count(&cartCount).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if cartCount != 0 {
		t.Fatalf("expected cart to be deleted after checkout, found %d", cartCount)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	createTestCustomer(t, db, 1)

	if _, err := orderService.Checkout(1, ""); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty without cart, got %v", err)
	}

	if _, err := cartService.GetOrCreate(1); err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if _, err := orderService.Checkout(1, ""); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty for empty cart, got %v", err)
	}
}

func TestCheckoutRejectsUnavailableSize(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "juice", "12.00", "")

	if _, err := cartService.AddItem(1, size.ID, 1); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	if err := db.Model(&models.ProductSize{}).Where("id = ?", size.ID).Update("is_available", false).Error; err != nil {
		t.Fatalf("disable size failed: %v", err)
	}

	if _, err := orderService.Checkout(1, ""); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got %v", err)
	}
}

func TestOrderTotalUnaffectedByLaterPriceChange(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "bread", "10.00", "")

	if _, err := cartService.AddItem(1, size.ID, 3); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderService.Checkout(1, "")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if !order.TotalPrice.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("expected total 30.00, got %s", order.TotalPrice.String())
	}

	// 结算后调价，再触发一次条目数量变更重算，单价仍按冻结值计
	if err := db.Model(&models.ProductSize{}).Where("id = ?", size.ID).Update("price", "99.00").Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	updated, err := orderService.UpdateItemQuantity(order.ID, order.Items[0].ID, 4)
	if err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}
	if !updated.TotalPrice.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("expected frozen-price total 40.00, got %s", updated.TotalPrice.String())
	}
}

func TestAddItemMergesExistingSize(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "croissant", "15.00", "")

	if _, err := cartService.AddItem(1, size.ID, 1); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderService.Checkout(1, "")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	merged, err := orderService.AddItem(order.ID, OrderItemInput{ProductSizeID: size.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("add order item failed: %v", err)
	}
	if len(merged.Items) != 1 {
		t.Fatalf("expected merged single item, got %d", len(merged.Items))
	}
	if merged.Items[0].Quantity != 3 {
		t.Fatalf("expected merged quantity 3, got %d", merged.Items[0].Quantity)
	}
	if !merged.TotalPrice.Equal(decimal.RequireFromString("45.00")) {
		t.Fatalf("expected total 45.00, got %s", merged.TotalPrice.String())
	}
}

func TestRemoveLastItemZeroesTotal(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "sanitizer", "25.00", "")

	if _, err := cartService.AddItem(1, size.ID, 2); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderService.Checkout(1, "")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	emptied, err := orderService.RemoveItem(order.ID, order.Items[0].ID)
	if err != nil {
		t.Fatalf("remove order item failed: %v", err)
	}
	if len(emptied.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(emptied.Items))
	}
	if !emptied.TotalPrice.IsZero() {
		t.Fatalf("expected zero total after last item removed, got %s", emptied.TotalPrice.String())
	}
}

func TestReplaceItemsKeepsFrozenPrices(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	createTestCustomer(t, db, 1)
	sizeA := createTestProductSize(t, db, "cucumbers", "10.00", "")
	sizeB := createTestProductSize(t, db, "milk", "20.00", "")

	if _, err := cartService.AddItem(1, sizeA.ID, 1); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderService.Checkout(1, "")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	// 结算后 A 调价，整单替换时 A 保留冻结单价，B 按当前价冻结；重复输入合并
	if err := db.Model(&models.ProductSize{}).Where("id = ?", sizeA.ID).Update("price", "77.00").Error; err != nil {
		t.Fatalf("update price failed: %v", err)
	}
	replaced, err := orderService.ReplaceItems(order.ID, []OrderItemInput{
		{ProductSizeID: sizeA.ID, Quantity: 1},
		{ProductSizeID: sizeA.ID, Quantity: 1},
		{ProductSizeID: sizeB.ID, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("replace items failed: %v", err)
	}
	if len(replaced.Items) != 2 {
		t.Fatalf("expected 2 items after replace, got %d", len(replaced.Items))
	}
	for _, item := range replaced.Items {
		switch item.ProductSizeID {
		case sizeA.ID:
			if item.Quantity != 2 {
				t.Fatalf("expected merged quantity 2 for size A, got %d", item.Quantity)
			}
			if !item.UnitPrice.Equal(decimal.RequireFromString("10.00")) {
				t.Fatalf("expected frozen unit price 10.00 for size A, got %s", item.UnitPrice.String())
			}
		case sizeB.ID:
			if !item.UnitPrice.Equal(decimal.RequireFromString("20.00")) {
				t.Fatalf("expected current unit price 20.00 for size B, got %s", item.UnitPrice.String())
			}
		}
	}
	// 2×10.00 + 1×20.00
	if !replaced.TotalPrice.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("expected total 40.00, got %s", replaced.TotalPrice.String())
	}
}

func TestRecalculateSkipsWriteWhenTotalUnchanged(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "milk", "20.00", "")

	if _, err := cartService.AddItem(1, size.ID, 2); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderService.Checkout(1, "")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	var before models.Order
	if err := db.First(&before, order.ID).Error; err != nil {
		t.Fatalf("load order failed: %v", err)
	}

	// 等价整单替换：总价不变，订单行不应被写回
	time.Sleep(10 * time.Millisecond)
	replaced, err := orderService.ReplaceItems(order.ID, []OrderItemInput{
		{ProductSizeID: size.ID, Quantity: 2},
	})
	if err != nil {
		t.Fatalf("replace items failed: %v", err)
	}
	if !replaced.TotalPrice.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("expected total 40.00, got %s", replaced.TotalPrice.String())
	}

	var after models.Order
	if err := db.First(&after, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("expected no order write on equal recompute, updated_at moved %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "eggs", "30.00", "")

	if _, err := cartService.AddItem(1, size.ID, 1); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderService.Checkout(1, "")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	if _, err := orderService.UpdateStatus(order.ID, "unknown"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("expected ErrOrderStatusInvalid, got %v", err)
	}
	if _, err := orderService.UpdateStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrOrderStatusTransition) {
		t.Fatalf("expected ErrOrderStatusTransition for pending->delivered, got %v", err)
	}

	accepted, err := orderService.UpdateStatus(order.ID, "Accepted")
	if err != nil {
		t.Fatalf("accept order failed: %v", err)
	}
	if accepted.Status != constants.OrderStatusAccepted {
		t.Fatalf("expected accepted, got %s", accepted.Status)
	}

	shipped, err := orderService.UpdateStatus(order.ID, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("ship order failed: %v", err)
	}
	delivered, err := orderService.UpdateStatus(shipped.ID, constants.OrderStatusDelivered)
	if err != nil {
		t.Fatalf("deliver order failed: %v", err)
	}
	if _, err := orderService.UpdateStatus(delivered.ID, constants.OrderStatusCanceled); !errors.Is(err, ErrOrderStatusTransition) {
		t.Fatalf("expected terminal delivered state, got %v", err)
	}
}

func TestCancelByCustomerPendingOnly(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "dates", "40.00", "")

	if _, err := cartService.AddItem(1, size.ID, 1); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderService.Checkout(1, "")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}

	canceled, err := orderService.CancelByCustomer(order.ID, 1)
	if err != nil {
		t.Fatalf("cancel order failed: %v", err)
	}
	if canceled.Status != constants.OrderStatusCanceled {
		t.Fatalf("expected canceled, got %s", canceled.Status)
	}
	if _, err := orderService.CancelByCustomer(order.ID, 1); !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("expected ErrOrderNotPending, got %v", err)
	}
	if _, err := orderService.CancelByCustomer(order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other customer, got %v", err)
	}
}

func TestAdminItemMutationsRejectNonPendingOrder(t *testing.T) {
	orderService, cartService, db := setupOrderServiceTest(t)
	createTestCustomer(t, db, 1)
	size := createTestProductSize(t, db, "honey", "50.00", "")

	if _, err := cartService.AddItem(1, size.ID, 1); err != nil {
		t.Fatalf("add cart item failed: %v", err)
	}
	order, err := orderService.Checkout(1, "")
	if err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := orderService.UpdateStatus(order.ID, constants.OrderStatusAccepted); err != nil {
		t.Fatalf("accept order failed: %v", err)
	}

	if _, err := orderService.AddItem(order.ID, OrderItemInput{ProductSizeID: size.ID, Quantity: 1}); !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("expected ErrOrderNotPending for add, got %v", err)
	}
	if _, err := orderService.UpdateItemQuantity(order.ID, order.Items[0].ID, 2); !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("expected ErrOrderNotPending for update, got %v", err)
	}
	if _, err := orderService.RemoveItem(order.ID, order.Items[0].ID); !errors.Is(err, ErrOrderNotPending) {
		t.Fatalf("expected ErrOrderNotPending for remove, got %v", err)
	}
}
