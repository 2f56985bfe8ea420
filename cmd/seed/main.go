package main

import (
	"fmt"

	"github.com/dwarmarket/internal/config"
	"github.com/dwarmarket/internal/logger"
	"github.com/dwarmarket/internal/models"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认员工账号
	if err := models.InitDefaultStaff("", ""); err != nil {
		stdLog.Printf("Failed to init default staff: %v", err)
	}

	// 添加商圈分类
	categories := []models.Category{
		{Name: "Supermarkets", Image: "categories/supermarkets"},
		{Name: "Pharmacies", Image: "categories/pharmacies"},
		{Name: "Bakeries", Image: "categories/bakeries"},
	}
	categoryIDs := map[string]uint{}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
				continue
			}
			stdLog.Printf("Created category: %s", cat.Name)
			categoryIDs[cat.Name] = cat.ID
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
			categoryIDs[cat.Name] = existing.ID
		}
	}

	// 添加商家
	stores := []models.Store{
		{
			CategoryID:  categoryIDs["Supermarkets"],
			Name:        "Al Noor Market",
			Address:     "12 El Tahrir St, Dokki, Giza",
			Description: "Neighborhood supermarket with fresh produce and daily essentials.",
			OpensAt:     "08:00",
			CloseAt:     "23:00",
			Image:       "stores/al-noor-market",
			MaxDiscount: 25,
		},
		{
			CategoryID:  categoryIDs["Supermarkets"],
			Name:        "Green Valley Grocery",
			Address:     "45 Nile Corniche, Maadi, Cairo",
			Description: "Organic vegetables, fruits and dairy from local farms.",
			OpensAt:     "07:00",
			CloseAt:     "22:00",
			Image:       "stores/green-valley",
			MaxDiscount: 15,
		},
		{
			CategoryID:  categoryIDs["Pharmacies"],
			Name:        "El Shefaa Pharmacy",
			Address:     "3 Ramses Square, Downtown, Cairo",
			Description: "24/7 pharmacy with delivery within the district.",
			OpensAt:     "00:00",
			CloseAt:     "23:59",
			Image:       "stores/el-shefaa",
			MaxDiscount: 10,
		},
		{
			CategoryID:  categoryIDs["Bakeries"],
			Name:        "Golden Crust Bakery",
			Address:     "78 El Hegaz St, Heliopolis, Cairo",
			Description: "Fresh baladi bread, pastries and cakes baked every morning.",
			OpensAt:     "06:00",
			CloseAt:     "21:00",
			Image:       "stores/golden-crust",
			MaxDiscount: 20,
		},
	}
	storeIDs := map[string]uint{}
	for _, store := range stores {
		if store.CategoryID == 0 {
			stdLog.Printf("Skip store %s: category_id missing", store.Name)
			continue
		}
		var existing models.Store
		if err := models.DB.Where("name = ?", store.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&store).Error; err != nil {
				stdLog.Printf("Failed to create store %s: %v", store.Name, err)
				continue
			}
			stdLog.Printf("Created store: %s", store.Name)
			storeIDs[store.Name] = store.ID
		} else {
			stdLog.Printf("Store already exists: %s", store.Name)
			storeIDs[store.Name] = existing.ID
		}
	}

	// 添加店内分区
	storeCategories := []models.StoreCategory{
		{StoreID: storeIDs["Al Noor Market"], Name: "Fresh Produce", Image: "store-categories/fresh-produce"},
		{StoreID: storeIDs["Al Noor Market"], Name: "Dairy & Eggs", Image: "store-categories/dairy-eggs"},
		{StoreID: storeIDs["Al Noor Market"], Name: "Beverages", Image: "store-categories/beverages"},
		{StoreID: storeIDs["Green Valley Grocery"], Name: "Organic Vegetables", Image: "store-categories/organic-veg"},
		{StoreID: storeIDs["El Shefaa Pharmacy"], Name: "Personal Care", Image: "store-categories/personal-care"},
		{StoreID: storeIDs["Golden Crust Bakery"], Name: "Bread", Image: "store-categories/bread"},
		{StoreID: storeIDs["Golden Crust Bakery"], Name: "Pastries", Image: "store-categories/pastries"},
	}
	storeCategoryIDs := map[string]uint{}
	for _, sc := range storeCategories {
		if sc.StoreID == 0 {
			stdLog.Printf("Skip store category %s: store_id missing", sc.Name)
			continue
		}
		key := fmt.Sprintf("%d/%s", sc.StoreID, sc.Name)
		var existing models.StoreCategory
		if err := models.DB.Where("store_id = ? AND name = ?", sc.StoreID, sc.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&sc).Error; err != nil {
				stdLog.Printf("Failed to create store category %s: %v", sc.Name, err)
				continue
			}
			stdLog.Printf("Created store category: %s", sc.Name)
			storeCategoryIDs[key] = sc.ID
		} else {
			stdLog.Printf("Store category already exists: %s", sc.Name)
			storeCategoryIDs[key] = existing.ID
		}
	}

	// 添加商品与规格
	type sizeSeed struct {
		Name       string
		Type       string
		Price      string
		Discounted string
	}
	type productSeed struct {
		Store         string
		StoreCategory string
		Title         string
		Description   string
		Image         string
		Sizes         []sizeSeed
	}
	productSeeds := []productSeed{
		{
			Store:         "Al Noor Market",
			StoreCategory: "Fresh Produce",
			Title:         "Egyptian Tomatoes",
			Description:   "Vine-ripened tomatoes sourced daily from Qalyubia farms.",
			Image:         "products/tomatoes",
			Sizes: []sizeSeed{
				{Name: "1kg", Type: "weight", Price: "18.50"},
				{Name: "3kg", Type: "weight", Price: "52.00", Discounted: "48.00"},
			},
		},
		{
			Store:         "Al Noor Market",
			StoreCategory: "Dairy & Eggs",
			Title:         "Domty White Cheese",
			Description:   "Classic Egyptian white cheese, vacuum packed.",
			Image:         "products/domty-cheese",
			Sizes: []sizeSeed{
				{Name: "250g", Type: "weight", Price: "32.00"},
				{Name: "500g", Type: "weight", Price: "60.00", Discounted: "55.00"},
			},
		},
		{
			Store:         "Al Noor Market",
			StoreCategory: "Beverages",
			Title:         "Mango Juice",
			Description:   "Chilled mango nectar, no added sugar.",
			Image:         "products/mango-juice",
			Sizes: []sizeSeed{
				{Name: "330ml", Type: "volume", Price: "12.00"},
				{Name: "1L", Type: "volume", Price: "30.00"},
			},
		},
		{
			Store:         "Green Valley Grocery",
			StoreCategory: "Organic Vegetables",
			Title:         "Organic Cucumbers",
			Description:   "Pesticide-free cucumbers picked the same day.",
			Image:         "products/cucumbers",
			Sizes: []sizeSeed{
				{Name: "500g", Type: "weight", Price: "14.00"},
				{Name: "1kg", Type: "weight", Price: "26.00", Discounted: "24.00"},
			},
		},
		{
			Store:         "El Shefaa Pharmacy",
			StoreCategory: "Personal Care",
			Title:         "Hand Sanitizer Gel",
			Description:   "70% alcohol antiseptic gel with aloe vera.",
			Image:         "products/sanitizer",
			Sizes: []sizeSeed{
				{Name: "100ml", Type: "volume", Price: "25.00"},
				{Name: "250ml", Type: "volume", Price: "48.00", Discounted: "42.00"},
			},
		},
		{
			Store:         "Golden Crust Bakery",
			StoreCategory: "Bread",
			Title:         "Baladi Bread",
			Description:   "Traditional whole-wheat baladi bread, baked hourly.",
			Image:         "products/baladi-bread",
			Sizes: []sizeSeed{
				{Name: "5 loaves", Type: "piece", Price: "10.00"},
				{Name: "10 loaves", Type: "piece", Price: "19.00"},
			},
		},
		{
			Store:         "Golden Crust Bakery",
			StoreCategory: "Pastries",
			Title:         "Butter Croissant",
			Description:   "Flaky croissant made with French butter.",
			Image:         "products/croissant",
			Sizes: []sizeSeed{
				{Name: "1 piece", Type: "piece", Price: "15.00"},
				{Name: "6 pieces", Type: "piece", Price: "80.00", Discounted: "72.00"},
			},
		},
	}

	for _, seed := range productSeeds {
		storeID := storeIDs[seed.Store]
		if storeID == 0 {
			stdLog.Printf("Skip product %s: store missing", seed.Title)
			continue
		}
		var storeCategoryID *uint
		if id, ok := storeCategoryIDs[fmt.Sprintf("%d/%s", storeID, seed.StoreCategory)]; ok {
			storeCategoryID = &id
		}

		productSlug := slug.Make(seed.Title)
		var product models.Product
		if err := models.DB.Where("slug = ?", productSlug).First(&product).Error; err != nil {
			product = models.Product{
				StoreID:         storeID,
				StoreCategoryID: storeCategoryID,
				Title:           seed.Title,
				Slug:            productSlug,
				Description:     seed.Description,
				Image:           seed.Image,
				Available:       true,
			}
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", seed.Title, err)
				continue
			}
			stdLog.Printf("Created product: %s", seed.Title)
		} else {
			stdLog.Printf("Product already exists: %s", seed.Title)
		}

		for _, size := range seed.Sizes {
			var existingSize models.ProductSize
			if err := models.DB.Where("product_id = ? AND size_name = ?", product.ID, size.Name).First(&existingSize).Error; err == nil {
				continue
			}
			price, err := decimal.NewFromString(size.Price)
			if err != nil {
				stdLog.Printf("Skip size %s for %s: bad price %s", size.Name, seed.Title, size.Price)
				continue
			}
			item := models.ProductSize{
				ProductID:   product.ID,
				SizeName:    size.Name,
				SizeType:    size.Type,
				Price:       models.NewMoneyFromDecimal(price),
				IsAvailable: true,
			}
			if size.Discounted != "" {
				if d, err := decimal.NewFromString(size.Discounted); err == nil {
					discounted := models.NewMoneyFromDecimal(d)
					item.PriceAfterDiscount = &discounted
				}
			}
			if err := models.DB.Create(&item).Error; err != nil {
				stdLog.Printf("Failed to create size %s for %s: %v", size.Name, seed.Title, err)
			} else {
				stdLog.Printf("Created size %s for %s", size.Name, seed.Title)
			}
		}
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories")
	fmt.Println("- 4 Stores")
	fmt.Println("- 7 Store categories")
	fmt.Println("- 7 Products with sizes")
}
