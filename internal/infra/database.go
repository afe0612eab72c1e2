package infra

import (
	"fmt"
	"strings"

	"github.com/hc2580411/vwms/internal/model"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the embedded sqlite store. The default DSN keeps the
// whole relational store in memory; durability comes from the snapshot store.
//
// The connection pool is pinned to a single connection: the engine is a
// single-writer system, and with an in-memory DSN every extra connection
// would see its own empty database.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func allModels() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Category{},
		&model.Unit{},
		&model.Product{},
		&model.Contact{},
		&model.Order{},
		&model.OrderItem{},
		&model.PurchaseOrder{},
		&model.PurchaseOrderItem{},
		&model.InventoryLog{},
		&model.Setting{},
	}
}

// EnsureSchema creates all tables and seeds baseline data when the store is
// empty. On a non-empty store it instead applies the additive column
// migrations, treating "column already exists" as success so the step is
// idempotent and order-independent. It fails only when the store itself is
// unusable.
func EnsureSchema(db *gorm.DB) error {
	empty := !db.Migrator().HasTable(&model.User{})

	// AutoMigrate is additive: it creates missing tables (including tables
	// introduced after the first release, like inventory_logs and settings)
	// and never drops anything.
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	if empty {
		return seedBaseline(db)
	}
	return applyAdditivePatches(db)
}

// applyAdditivePatches attempts each column addition introduced since the
// first schema version. sqlite reports an already-present column as
// "duplicate column name", which counts as success here.
func applyAdditivePatches(db *gorm.DB) error {
	patches := []string{
		`ALTER TABLE orders ADD COLUMN order_number TEXT`,
		`ALTER TABLE orders ADD COLUMN discount REAL NOT NULL DEFAULT 0`,
		`ALTER TABLE purchase_orders ADD COLUMN shipping_ref TEXT`,
		`ALTER TABLE inventory_logs ADD COLUMN reason TEXT`,
	}
	for _, p := range patches {
		if err := db.Exec(p).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("patch %q: %w", p, err)
		}
	}
	return nil
}

// seedBaseline populates reference data on a freshly created store: the two
// default accounts, starter categories/units, a small demo catalog, and the
// default currency settings.
func seedBaseline(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range []struct{ username, password, role, name string }{
			{"admin", "admin", model.RoleAdmin, "Administrator"},
			{"user", "user", model.RoleEmployee, "Staff Member"},
		} {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.password), 12)
			if err != nil {
				return err
			}
			if err := tx.Create(&model.User{
				Username:     u.username,
				PasswordHash: string(hash),
				Role:         u.role,
				Name:         u.name,
			}).Error; err != nil {
				return err
			}
		}

		cats := map[string]uint{}
		for _, name := range []string{"Electronics", "Accessories", "Furniture"} {
			c := model.Category{Name: name}
			if err := tx.Create(&c).Error; err != nil {
				return err
			}
			cats[name] = c.ID
		}
		units := map[string]uint{}
		for _, name := range []string{"pcs", "box", "kg"} {
			u := model.Unit{Name: name}
			if err := tx.Create(&u).Error; err != nil {
				return err
			}
			units[name] = u.ID
		}

		ref := func(m map[string]uint, name string) *uint {
			id := m[name]
			return &id
		}
		demo := []model.Product{
			{Name: "Mechanical Keyboard", Price: 120, Cost: 60, Stock: 15, CategoryID: ref(cats, "Electronics"), UnitID: ref(units, "pcs")},
			{Name: "Wireless Mouse", Price: 45, Cost: 20, Stock: 30, CategoryID: ref(cats, "Electronics"), UnitID: ref(units, "pcs")},
			{Name: "USB-C Cable", Price: 12, Cost: 3, Stock: 100, CategoryID: ref(cats, "Accessories"), UnitID: ref(units, "box")},
		}
		if err := tx.Create(&demo).Error; err != nil {
			return err
		}

		contacts := []model.Contact{
			{Name: "John Doe", Phone: "123-456-7890", Email: "john@example.com", Address: "123 Main St", Type: model.ContactCustomer},
			{Name: "Global Tech Supply", Phone: "987-654-3210", Email: "sales@globaltech.com", Address: "456 Port Rd", Type: model.ContactDistributor},
			{Name: "Alice Sales", Phone: "555-0101", Email: "alice@veik.com", Address: "Office", Type: model.ContactSalesRep},
		}
		if err := tx.Create(&contacts).Error; err != nil {
			return err
		}

		settings := []model.Setting{
			{Key: model.SettingDisplayCurrency, Value: "AED"},
			{Key: model.SettingExchangeRate, Value: "1"},
		}
		return tx.Create(&settings).Error
	})
}
