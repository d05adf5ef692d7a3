package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	purchase_price NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (purchase_price >= 0),
	sale_price NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (sale_price >= 0),
	quantity INT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	active BOOLEAN NOT NULL DEFAULT true,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS operations (
	id UUID PRIMARY KEY,
	product_id UUID NOT NULL REFERENCES products(id),
	operation_type TEXT NOT NULL,
	quantity INT NOT NULL CHECK (quantity > 0),
	unit_price NUMERIC(12,2) NOT NULL,
	total NUMERIC(12,2) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_operations_product_id ON operations(product_id, created_at);
`

// Produtos de exemplo para ambiente local
var seedProducts = []struct {
	id            string
	name          string
	description   string
	purchasePrice float64
	salePrice     float64
	quantity      int
}{
	{"7b05a0c2-5d8e-4b52-9c3f-1f6a46c2a101", "Teclado Mecânico", "Teclado mecânico ABNT2", 10, 20, 5},
	{"7b05a0c2-5d8e-4b52-9c3f-1f6a46c2a102", "Mouse Gamer", "Mouse com 6 botões", 30, 45, 10},
	{"7b05a0c2-5d8e-4b52-9c3f-1f6a46c2a103", "Headset USB", "Headset com microfone", 50, 80, 0},
}

func main() {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DATABASE_USER", "root"),
		getEnv("DATABASE_PASSWORD", "catalog_pass"),
		getEnv("DATABASE_HOST", "localhost"),
		getEnv("DATABASE_PORT", "5432"),
		getEnv("DATABASE_NAME", "catalog_db"),
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if _, err := db.Exec(schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}
	log.Println("✅ Schema created")

	for _, p := range seedProducts {
		_, err := db.Exec(`
			INSERT INTO products (id, name, description, purchase_price, sale_price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING
		`, p.id, p.name, p.description, p.purchasePrice, p.salePrice, p.quantity)
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.name, err)
		}
	}

	log.Printf("✅ Seeded %d products", len(seedProducts))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
