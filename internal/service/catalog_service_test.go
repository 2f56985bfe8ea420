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

func setupCatalogServiceTest(t *testing.T) (*CategoryService, *StoreService, *StoreCategoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:catalog_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Category{},
		&models.Store{},
		&models.StoreCategory{},
		&models.Product{},
		&models.ProductSize{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	categoryRepo := repository.NewCategoryRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	storeCategoryRepo := repository.NewStoreCategoryRepository(db)
	return NewCategoryService(categoryRepo),
		NewStoreService(storeRepo, categoryRepo),
		NewStoreCategoryService(storeCategoryRepo, storeRepo),
		db
}

func TestCategoryNameUniqueness(t *testing.T) {
	categoryService, _, _, _ := setupCatalogServiceTest(t)

	if _, err := categoryService.Create(CategoryInput{Name: "   "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}

	category, err := categoryService.Create(CategoryInput{Name: "Supermarkets"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if _, err := categoryService.Create(CategoryInput{Name: "  Supermarkets  "}); !errors.Is(err, ErrCategoryNameExists) {
		t.Fatalf("expected ErrCategoryNameExists, got %v", err)
	}

	// 更新为自身名称不算冲突
	if _, err := categoryService.Update(category.ID, CategoryInput{Name: "Supermarkets", Image: "categories/supermarkets"}); err != nil {
		t.Fatalf("self-rename failed: %v", err)
	}

	other, err := categoryService.Create(CategoryInput{Name: "Pharmacies"})
	if err != nil {
		t.Fatalf("create second category failed: %v", err)
	}
	if _, err := categoryService.Update(other.ID, CategoryInput{Name: "Supermarkets"}); !errors.Is(err, ErrCategoryNameExists) {
		t.Fatalf("expected ErrCategoryNameExists on rename, got %v", err)
	}
}

func TestCategoryDeleteBlockedByStores(t *testing.T) {
	categoryService, storeService, _, _ := setupCatalogServiceTest(t)

	category, err := categoryService.Create(CategoryInput{Name: "Bakeries"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	store, err := storeService.Create(StoreInput{
		CategoryID: category.ID,
		Name:       "Golden Crust Bakery",
		OpensAt:    "06:00",
		CloseAt:    "21:00",
	})
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	if err := categoryService.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := storeService.Delete(store.ID); err != nil {
		t.Fatalf("delete store failed: %v", err)
	}
	if err := categoryService.Delete(category.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	if _, err := categoryService.Get(category.ID, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestStoreValidation(t *testing.T) {
	categoryService, storeService, _, db := setupCatalogServiceTest(t)

	category, err := categoryService.Create(CategoryInput{Name: "Supermarkets"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	if _, err := storeService.Create(StoreInput{CategoryID: 9999, Name: "Ghost Store"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown category, got %v", err)
	}
	if _, err := storeService.Create(StoreInput{CategoryID: category.ID, Name: "Al Noor Market", MaxDiscount: 120}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for discount above 100, got %v", err)
	}

	store, err := storeService.Create(StoreInput{
		CategoryID:  category.ID,
		Name:        "Al Noor Market",
		OpensAt:     "08:00",
		CloseAt:     "23:00",
		MaxDiscount: 25,
	})
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	if _, err := storeService.Create(StoreInput{CategoryID: category.ID, Name: " Al Noor Market "}); !errors.Is(err, ErrStoreNameExists) {
		t.Fatalf("expected ErrStoreNameExists, got %v", err)
	}

	// 挂有商品的门店不可删除
	product := models.Product{StoreID: store.ID, Title: "Mango Juice", Slug: "mango-juice", Available: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if err := storeService.Delete(store.ID); !errors.Is(err, ErrStoreInUse) {
		t.Fatalf("expected ErrStoreInUse, got %v", err)
	}
}

func TestStoreCategoryUniquePerStore(t *testing.T) {
	categoryService, storeService, storeCategoryService, db := setupCatalogServiceTest(t)

	category, err := categoryService.Create(CategoryInput{Name: "Supermarkets"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	storeA, err := storeService.Create(StoreInput{CategoryID: category.ID, Name: "Al Noor Market"})
	if err != nil {
		t.Fatalf("create store A failed: %v", err)
	}
	storeB, err := storeService.Create(StoreInput{CategoryID: category.ID, Name: "Green Valley Grocery"})
	if err != nil {
		t.Fatalf("create store B failed: %v", err)
	}

	if _, err := storeCategoryService.Create(StoreCategoryInput{StoreID: 9999, Name: "Ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown store, got %v", err)
	}

	first, err := storeCategoryService.Create(StoreCategoryInput{StoreID: storeA.ID, Name: "Fresh Produce"})
	if err != nil {
		t.Fatalf("create store category failed: %v", err)
	}
	if _, err := storeCategoryService.Create(StoreCategoryInput{StoreID: storeA.ID, Name: "Fresh Produce"}); !errors.Is(err, ErrStoreCategoryExists) {
		t.Fatalf("expected ErrStoreCategoryExists in same store, got %v", err)
	}
	// 不同商家可重名
	if _, err := storeCategoryService.Create(StoreCategoryInput{StoreID: storeB.ID, Name: "Fresh Produce"}); err != nil {
		t.Fatalf("create same-name category in other store failed: %v", err)
	}

	// 删除分区后商品回落为未分区
	product := models.Product{StoreID: storeA.ID, StoreCategoryID: &first.ID, Title: "Egyptian Tomatoes", Slug: "egyptian-tomatoes", Available: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	if err := storeCategoryService.Delete(first.ID); err != nil {
		t.Fatalf("delete store category failed: %v", err)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.StoreCategoryID != nil {
		t.Fatalf("expected product to fall back to uncategorized, got %v", *reloaded.StoreCategoryID)
	}
}

func TestStoreCategoryProductsCarryMinPrice(t *testing.T) {
	categoryService, storeService, storeCategoryService, db := setupCatalogServiceTest(t)

	category, err := categoryService.Create(CategoryInput{Name: "Supermarkets"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	store, err := storeService.Create(StoreInput{CategoryID: category.ID, Name: "Al Noor Market"})
	if err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	section, err := storeCategoryService.Create(StoreCategoryInput{StoreID: store.ID, Name: "Beverages"})
	if err != nil {
		t.Fatalf("create store category failed: %v", err)
	}

	product := models.Product{StoreID: store.ID, StoreCategoryID: &section.ID, Title: "Mango Juice", Slug: "mango-juice", Available: true}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	discounted := mustMoney(t, "26.00")
	sizes := []models.ProductSize{
		{ProductID: product.ID, SizeName: "330ml", SizeType: "volume", Price: mustMoney(t, "12.00"), IsAvailable: true},
		{ProductID: product.ID, SizeName: "1L", SizeType: "volume", Price: mustMoney(t, "30.00"), PriceAfterDiscount: &discounted, IsAvailable: true},
		{ProductID: product.ID, SizeName: "2L", SizeType: "volume", Price: mustMoney(t, "5.00"), IsAvailable: false},
	}
	for i := range sizes {
		if err := db.Create(&sizes[i]).Error; err != nil {
			t.Fatalf("create size failed: %v", err)
		}
	}

	detail, err := storeCategoryService.Get(section.ID, true)
	if err != nil {
		t.Fatalf("get store category failed: %v", err)
	}
	if len(detail.Products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(detail.Products))
	}
	loaded := detail.Products[0]
	if len(loaded.Sizes) != 3 {
		t.Fatalf("expected sizes preloaded, got %d", len(loaded.Sizes))
	}
	// 最低生效价取可售规格的折后价或基础价，停售规格不计
	minPrice := loaded.MinEffectivePrice()
	if minPrice == nil {
		t.Fatalf("expected min price, got nil")
	}
	if !minPrice.Equal(decimal.RequireFromString("12.00")) {
		t.Fatalf("expected min price 12.00, got %s", minPrice.String())
	}

	bare := models.Product{StoreID: store.ID, Title: "No Sizes Yet", Slug: "no-sizes-yet", Available: true}
	if bare.MinEffectivePrice() != nil {
		t.Fatalf("expected nil min price without sizes")
	}
}

func mustMoney(t *testing.T, amount string) models.Money {
	t.Helper()
	m, err := models.NewMoneyFromString(amount)
	if err != nil {
		t.Fatalf("parse money %s failed: %v", amount, err)
	}
	return m
}
