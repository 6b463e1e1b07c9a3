package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/aurelle-jewellery/aurelle-backend/config"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/model"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/repository"
	"github.com/aurelle-jewellery/aurelle-backend/internal/app/service"
	"github.com/aurelle-jewellery/aurelle-backend/internal/db"
	"github.com/aurelle-jewellery/aurelle-backend/pkg/util"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go admin | products <xlsx_file_path>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	switch os.Args[1] {
	case "admin":
		seedAdmin()
	case "products":
		if len(os.Args) < 3 {
			log.Fatal("Usage: go run cmd/seed/main.go products <xlsx_file_path>")
		}
		importProducts(os.Args[2])
	default:
		log.Fatalf("Unknown command %q", os.Args[1])
	}
}

// seedAdmin creates the initial super admin from SEED_ADMIN_* env vars.
// Existing accounts are left alone.
func seedAdmin() {
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_ADMIN_EMAIL")))
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}
	if len(password) < 8 {
		log.Fatal("SEED_ADMIN_PASSWORD must be at least 8 characters")
	}

	adminRepo := repository.NewAdminUserRepository(db.GetDB())

	if existing, err := adminRepo.FindByEmail(email); err == nil && existing != nil {
		fmt.Printf("Admin %s already exists, nothing to do.\n", email)
		return
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := &model.AdminUser{
		Email:        email,
		PasswordHash: hash,
		FirstName:    getEnvDefault("SEED_ADMIN_FIRST_NAME", "Super"),
		LastName:     getEnvDefault("SEED_ADMIN_LAST_NAME", "Admin"),
		Role:         model.AdminRoleSuperAdmin,
		IsActive:     true,
	}
	if err := adminRepo.Create(admin); err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	fmt.Printf("Created super admin %s (id=%d)\n", admin.Email, admin.ID)
}

// Expected columns: name, category_slug, collection_slug, description,
// base_price, sale_price, stock_quantity, is_featured. First row is the header.
func importProducts(filePath string) {
	productRepo := repository.NewProductRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	collectionRepo := repository.NewCollectionRepository(db.GetDB())
	productService := service.NewProductAdminService(
		productRepo,
		categoryRepo,
		collectionRepo,
		repository.NewRingTypeRepository(db.GetDB()),
		repository.NewGemstoneRepository(db.GetDB()),
		repository.NewStoneTypeRepository(db.GetDB()),
		repository.NewMetalRepository(db.GetDB()),
	)

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		log.Fatal("Failed to open XLSX file:", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		log.Fatal("No sheets found in XLSX file")
	}
	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		log.Fatal("Failed to read rows:", err)
	}
	if len(rows) < 2 {
		log.Fatal("No data rows found in XLSX file")
	}

	fmt.Printf("Total rows to import: %d\n", len(rows)-1)
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// Slug lookups are repeated across rows; cache the IDs
	categoryIDs := make(map[string]uint)
	collectionIDs := make(map[string]uint)

	imported := 0
	skipped := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}
		if len(row) < 5 {
			skipped++
			continue
		}

		name := strings.TrimSpace(row[0])
		categorySlug := strings.TrimSpace(row[1])
		if name == "" || categorySlug == "" {
			skipped++
			continue
		}

		categoryID, ok := categoryIDs[categorySlug]
		if !ok {
			category, err := categoryRepo.FindBySlug(categorySlug)
			if err != nil {
				fmt.Printf("Row %d: unknown category %q, skipping\n", i+1, categorySlug)
				skipped++
				continue
			}
			categoryID = category.ID
			categoryIDs[categorySlug] = categoryID
		}

		basePrice, err := decimal.NewFromString(strings.TrimSpace(row[4]))
		if err != nil || !basePrice.IsPositive() {
			fmt.Printf("Row %d: invalid base price %q, skipping\n", i+1, row[4])
			skipped++
			continue
		}

		input := service.ProductInput{
			Name:        name,
			Description: cell(row, 3),
			BasePrice:   basePrice,
			CategoryID:  categoryID,
		}

		if slug := cell(row, 2); slug != "" {
			collectionID, ok := collectionIDs[slug]
			if !ok {
				collection, err := collectionRepo.FindBySlug(slug)
				if err != nil {
					fmt.Printf("Row %d: unknown collection %q, skipping\n", i+1, slug)
					skipped++
					continue
				}
				collectionID = collection.ID
				collectionIDs[slug] = collectionID
			}
			input.CollectionID = &collectionID
		}

		if raw := cell(row, 5); raw != "" {
			salePrice, err := decimal.NewFromString(raw)
			if err == nil && salePrice.IsPositive() {
				input.SalePrice = &salePrice
			}
		}
		if raw := cell(row, 6); raw != "" {
			if qty, err := strconv.Atoi(raw); err == nil && qty >= 0 {
				input.StockQuantity = &qty
			}
		}
		if raw := cell(row, 7); raw != "" {
			featured := raw == "true" || raw == "1" || raw == "yes"
			input.IsFeatured = &featured
		}

		if _, err := productService.CreateProduct(input); err != nil {
			fmt.Printf("Row %d: failed to create %q: %v\n", i+1, name, err)
			skipped++
			continue
		}
		imported++

		if imported%500 == 0 {
			fmt.Printf("Imported %d products...\n", imported)
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Imported: %d\n", imported)
	fmt.Printf("  Skipped: %d\n", skipped)
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
