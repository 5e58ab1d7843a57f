package database

import (
	"io/fs"
	"path"
	"strings"
	"testing"
)

func readMigration(t *testing.T, name string) string {
	t.Helper()
	content, err := fs.ReadFile(migrationsFS, path.Join(MigrationsDir, name))
	if err != nil {
		t.Fatalf("Failed to read migration %s: %v", name, err)
	}
	return string(content)
}

func TestMigrationFilesExist(t *testing.T) {
	expectedMigrations := []string{
		"00001_create_admin_users_table.sql",
		"00002_create_products_table.sql",
		"00003_create_updated_at_trigger.sql",
		"00004_seed_products.sql",
	}

	for _, migration := range expectedMigrations {
		if _, err := fs.Stat(migrationsFS, path.Join(MigrationsDir, migration)); err != nil {
			t.Errorf("Migration file %s is not embedded: %v", migration, err)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, MigrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		sqlFileCount++
		content := readMigration(t, entry.Name())

		for _, directive := range []string{
			"-- +goose Up",
			"-- +goose Down",
			"-- +goose StatementBegin",
			"-- +goose StatementEnd",
		} {
			if !strings.Contains(content, directive) {
				t.Errorf("Migration file %s missing %q directive", entry.Name(), directive)
			}
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	expectedTables := map[string]string{
		"admin_users": "00001_create_admin_users_table.sql",
		"products":    "00002_create_products_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		content := readMigration(t, migrationFile)

		if !strings.Contains(content, "CREATE TABLE IF NOT EXISTS "+tableName) {
			t.Errorf("Migration file %s does not create table %s", migrationFile, tableName)
		}
		if !strings.Contains(content, "DROP TABLE IF EXISTS "+tableName) {
			t.Errorf("Migration file %s does not drop table %s in down section", migrationFile, tableName)
		}
	}
}

func TestProductsTableHasRequiredColumns(t *testing.T) {
	content := readMigration(t, "00002_create_products_table.sql")

	requiredColumns := []string{
		"id BIGSERIAL PRIMARY KEY",
		"title VARCHAR",
		"subtitle VARCHAR",
		"price VARCHAR",
		"price_numeric INTEGER",
		"rating DOUBLE PRECISION",
		"review_count INTEGER",
		"color VARCHAR",
		"category VARCHAR",
		"collection VARCHAR",
		"clothing_type VARCHAR",
		"product_size VARCHAR",
		"product_color VARCHAR",
		"image VARCHAR",
		"images JSONB",
		"created_at TIMESTAMPTZ",
		"updated_at TIMESTAMPTZ",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(content, column) {
			t.Errorf("Products table missing required column definition: %s", column)
		}
	}
}

func TestAdminUsersTableHasUniqueUsername(t *testing.T) {
	content := readMigration(t, "00001_create_admin_users_table.sql")

	for _, column := range []string{"username VARCHAR(100) UNIQUE NOT NULL", "password_hash VARCHAR", "last_login TIMESTAMPTZ"} {
		if !strings.Contains(content, column) {
			t.Errorf("Admin users table missing column definition: %s", column)
		}
	}
}

func TestSeedPricesMatchNumericPrices(t *testing.T) {
	content := readMigration(t, "00004_seed_products.sql")

	pairs := []string{
		"'3 000 р.', 3000",
		"'2 200 р.', 2200",
		"'5 500 р.', 5500",
		"'1 900 р.', 1900",
		"'2 900 р.', 2900",
	}
	for _, fragment := range pairs {
		if !strings.Contains(content, fragment) {
			t.Errorf("Seed data missing consistent price pair %s", fragment)
		}
	}
}
