// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres"
	"github.com/fevxie/rma/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	companyID, err := seedBaseCompany(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed base company", "error", err)
	}

	if err := seedAdminUser(ctx, pool, log, companyID); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

// seedBaseCompany creates the minimal catalog chain a claim needs: the
// company's partner record, stock locations, the company itself, and its
// default warehouse.
func seedBaseCompany(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	var companyID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM cat_companies WHERE code = 'MAIN' AND NOT deletion_mark`,
	).Scan(&companyID)
	if err == nil {
		log.Infow("base company already exists", "company_id", companyID)
		return companyID, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check company exists: %w", err)
	}

	stockLocID, err := upsertLocation(ctx, pool, "STOCK", "Main Stock", "internal")
	if err != nil {
		return id.Nil(), err
	}
	customerLocID, err := upsertLocation(ctx, pool, "CUST", "Customers", "customer")
	if err != nil {
		return id.Nil(), err
	}
	supplierLocID, err := upsertLocation(ctx, pool, "SUPP", "Suppliers", "supplier")
	if err != nil {
		return id.Nil(), err
	}

	partnerID := id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO cat_partners (id, code, name, type, customer_location_id, supplier_location_id, version, deletion_mark, attributes)
		VALUES ($1, 'MAIN-PART', 'Main Company', 'other', $2, $3, 1, false, '{}')
	`, partnerID, customerLocID, supplierLocID)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert company partner: %w", err)
	}

	companyID = id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO cat_companies (id, code, name, partner_id, version, deletion_mark, attributes)
		VALUES ($1, 'MAIN', 'Main Company', $2, 1, false, '{}')
	`, companyID, partnerID)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert company: %w", err)
	}

	warehouseID := id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO cat_warehouses (id, code, name, company_id, stock_location_id, is_active, version, deletion_mark, attributes)
		VALUES ($1, 'WH-MAIN', 'Main Warehouse', $2, $3, true, 1, false, '{}')
	`, warehouseID, companyID, stockLocID)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert warehouse: %w", err)
	}

	_, err = pool.Exec(ctx,
		`UPDATE cat_companies SET default_warehouse_id = $1 WHERE id = $2`,
		warehouseID, companyID)
	if err != nil {
		return id.Nil(), fmt.Errorf("set default warehouse: %w", err)
	}

	log.Infow("base company created", "company_id", companyID, "warehouse_id", warehouseID)

	return companyID, nil
}

func upsertLocation(ctx context.Context, pool *postgres.Pool, code, name, usage string) (id.ID, error) {
	locID := id.New()
	tag, err := pool.Exec(ctx, `
		INSERT INTO cat_stock_locations (id, code, name, usage, version, deletion_mark, attributes)
		VALUES ($1, $2, $3, $4, 1, false, '{}')
		ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
	`, locID, code, name, usage)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert location %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		err = pool.QueryRow(ctx,
			`SELECT id FROM cat_stock_locations WHERE code = $1 AND NOT deletion_mark`,
			code).Scan(&locID)
		if err != nil {
			return id.Nil(), fmt.Errorf("fetch location %s: %w", code, err)
		}
	}
	return locID, nil
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger, companyID id.ID) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@rma.local"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM sys_users WHERE email = $1`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now().UTC()

	_, err = pool.Exec(ctx, `
		INSERT INTO sys_users (
			id, email, password_hash, full_name, company_id,
			is_active, is_admin, roles, created_at, updated_at
		)
		VALUES ($1, $2, $3, 'System Admin', $4, true, true, '{rma_manager}', $5, $5)
	`, userID, adminEmail, string(passwordHash), companyID, now)
	if err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)

	return nil
}

// seedDemoData creates a supplier, a customer, products with supplier
// warranty records, and a validated invoice to raise claims against.
func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	supplierLocID, err := upsertLocation(ctx, pool, "SUPP-ACME", "Acme Components", "supplier")
	if err != nil {
		return err
	}

	supplierID := id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO cat_partners (id, code, name, type, supplier_location_id, version, deletion_mark, attributes)
		VALUES ($1, 'SUP-001', 'Acme Components', 'supplier', $2, 1, false, '{}')
		ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
	`, supplierID, supplierLocID)
	if err != nil {
		return fmt.Errorf("insert supplier: %w", err)
	}

	customerID := id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO cat_partners (id, code, name, type, email, version, deletion_mark, attributes)
		VALUES ($1, 'CUST-001', 'John Retail Ltd', 'customer', 'orders@johnretail.example', 1, false, '{}')
		ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
	`, customerID)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}

	type productSeed struct {
		code     string
		name     string
		sku      string
		warranty float64
	}

	products := []productSeed{
		{"PROD-001", "Wireless Router AX3000", "RTR-AX3", 24},
		{"PROD-002", "USB-C Docking Station", "DCK-USB", 12},
		{"PROD-003", "Mechanical Keyboard", "KBD-MEC", 6},
	}

	productIDs := make([]id.ID, 0, len(products))
	for _, p := range products {
		pid := id.New()
		tag, err := pool.Exec(ctx, `
			INSERT INTO cat_products (id, code, name, warranty_months, default_code, version, deletion_mark, attributes)
			VALUES ($1, $2, $3, $4, $5, 1, false, '{}')
			ON CONFLICT (code) WHERE deletion_mark = FALSE DO NOTHING
		`, pid, p.code, p.name, p.warranty, p.sku)
		if err != nil {
			return fmt.Errorf("insert product %s: %w", p.code, err)
		}
		if tag.RowsAffected() == 0 {
			if err := pool.QueryRow(ctx,
				`SELECT id FROM cat_products WHERE code = $1 AND NOT deletion_mark`,
				p.code).Scan(&pid); err != nil {
				return fmt.Errorf("fetch product %s: %w", p.code, err)
			}
		}
		productIDs = append(productIDs, pid)
	}

	// First product carries a supplier warranty: returns go to the supplier.
	_, err = pool.Exec(ctx, `
		INSERT INTO cat_product_suppliers (id, product_id, partner_id, sequence, warranty_months, return_partner_kind, return_address_id, stock_location_id)
		VALUES ($1, $2, $3, 1, 36, 'supplier', $3, $4)
		ON CONFLICT DO NOTHING
	`, id.New(), productIDs[0], supplierID, supplierLocID)
	if err != nil {
		return fmt.Errorf("insert product supplier: %w", err)
	}

	invoiceID := id.New()
	invoiceDate := time.Now().UTC().AddDate(0, -3, 0)
	tag, err := pool.Exec(ctx, `
		INSERT INTO acc_invoices (id, number, partner_id, date)
		VALUES ($1, 'INV-0001', $2, $3)
		ON CONFLICT DO NOTHING
	`, invoiceID, customerID, invoiceDate)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	if tag.RowsAffected() > 0 {
		for i, pid := range productIDs {
			_, err = pool.Exec(ctx, `
				INSERT INTO acc_invoice_lines (id, invoice_id, product_id, description, quantity, unit_price)
				VALUES ($1, $2, $3, $4, $5, $6)
			`, id.New(), invoiceID, pid, products[i].name, 20000, (i+1)*4990)
			if err != nil {
				return fmt.Errorf("insert invoice line: %w", err)
			}
		}
	}

	log.Info("demo data seeded")

	return nil
}
