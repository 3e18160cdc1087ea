package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/noah-isme/backend-cjenovnik/internal/common"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping DB: %v", err)
	}

	seedProducts(db)
	seedObservations(db)

	log.Println("Seeding completed successfully!")
}

type product struct {
	code string
	name string
	unit string
}

var products = []product{
	{"3850102300011", "Mlijeko svježe 2.8%", "1L"},
	{"3850102300028", "Jogurt natur", "180g"},
	{"3850102300035", "Sir gauda", "400g"},
	{"3850102300042", "Maslac", "250g"},
	{"3850102300059", "Hljeb bijeli", "500g"},
	{"3850102300066", "Kifla", "kom"},
	{"3850102300073", "Piletina file", "1kg"},
	{"3850102300080", "Kobasica kranjska", "400g"},
	{"3850102300097", "Jabuka idared", "1kg"},
	{"3850102300103", "Banana", "1kg"},
	{"3850102300110", "Krompir bijeli", "2kg"},
	{"3850102300127", "Voda negazirana", "1.5L"},
	{"3850102300134", "Sok narandža", "1L"},
	{"3850102300141", "Kafa mljevena", "500g"},
	{"3850102300158", "Čokolada mliječna", "100g"},
	{"3850102300165", "Čips paprika", "150g"},
	{"3850102300172", "Šampon za kosu", "400ml"},
	{"3850102300189", "Deterdžent za veš", "3kg"},
}

func seedProducts(db *sql.DB) {
	for _, p := range products {
		_, err := db.Exec(`
			INSERT INTO products (code, name, unit) VALUES ($1, $2, $3)
			ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, unit = EXCLUDED.unit
		`, p.code, p.name, p.unit)
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.code, err)
		}
	}
	log.Printf("Seeded %d products", len(products))
}

type observation struct {
	code  string
	store string
	city  string
	price string
}

var observations = []observation{
	{"3850102300011", "Bingo", "Sarajevo", "2.35"},
	{"3850102300011", "Konzum", "Sarajevo", "2.49"},
	{"3850102300011", "Mercator", "Sarajevo", "2.29"},
	{"3850102300028", "Bingo", "Sarajevo", "1.10"},
	{"3850102300028", "Konzum", "Sarajevo", "0.99"},
	{"3850102300035", "Bingo", "Sarajevo", "8.90"},
	{"3850102300035", "Mercator", "Sarajevo", "9.20"},
	{"3850102300042", "Konzum", "Sarajevo", "4.50"},
	{"3850102300059", "Bingo", "Sarajevo", "1.20"},
	{"3850102300059", "Konzum", "Sarajevo", "1.35"},
	{"3850102300059", "Mercator", "Sarajevo", "1.25"},
	{"3850102300066", "Bingo", "Sarajevo", "0.50"},
	{"3850102300073", "Bingo", "Sarajevo", "9.90"},
	{"3850102300073", "Mercator", "Sarajevo", "10.50"},
	{"3850102300080", "Konzum", "Sarajevo", "6.80"},
	{"3850102300097", "Bingo", "Sarajevo", "2.20"},
	{"3850102300097", "Mercator", "Sarajevo", "1.95"},
	{"3850102300103", "Bingo", "Sarajevo", "2.80"},
	{"3850102300103", "Konzum", "Sarajevo", "2.60"},
	{"3850102300110", "Mercator", "Sarajevo", "3.40"},
	{"3850102300127", "Bingo", "Sarajevo", "0.90"},
	{"3850102300127", "Konzum", "Sarajevo", "0.85"},
	{"3850102300127", "Mercator", "Sarajevo", "0.95"},
	{"3850102300134", "Bingo", "Sarajevo", "2.10"},
	{"3850102300141", "Konzum", "Sarajevo", "11.90"},
	{"3850102300141", "Mercator", "Sarajevo", "12.40"},
	{"3850102300158", "Bingo", "Sarajevo", "2.50"},
	{"3850102300158", "Konzum", "Sarajevo", "2.30"},
	{"3850102300165", "Bingo", "Sarajevo", "2.90"},
	{"3850102300172", "Mercator", "Sarajevo", "7.60"},
	{"3850102300189", "Bingo", "Sarajevo", "18.90"},
	{"3850102300189", "Konzum", "Sarajevo", "19.50"},
}

func seedObservations(db *sql.DB) {
	var total int64
	for _, o := range observations {
		priceMinor, err := common.ParsePrice(o.price)
		if err != nil {
			log.Fatalf("Invalid seed price %q: %v", o.price, err)
		}
		_, err = db.Exec(`
			INSERT INTO price_observations (product_code, store_name, store_city, price_minor)
			VALUES ($1, $2, $3, $4)
		`, o.code, o.store, o.city, priceMinor)
		if err != nil {
			log.Fatalf("Failed to seed observation for %s at %s: %v", o.code, o.store, err)
		}
		total += priceMinor
	}
	log.Printf("Seeded %d price observations (sum %s)", len(observations), common.FormatMinorUnits(total))
}
