package main

import (
	"database/sql"
	"log"
	"strings"
	"trip-route-planner/internal/adapters/history"
	"trip-route-planner/internal/config"
	"trip-route-planner/internal/platform/db"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := strings.ToLower(strings.TrimSpace(config.Get("HISTORY_DRIVER", config.DriverSQLite)))
	dsn := config.Get("HISTORY_DSN", "")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("HISTORY_DSN is required")
	}

	conn, err := db.Open(driver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := initSchema(conn, history.Dialect(driver)); err != nil {
		log.Fatal(err)
	}
}

func initSchema(conn *sql.DB, dialect history.Dialect) error {
	log.Printf("Initializing %s trip history schema...", dialect)
	if err := history.InitSchema(conn, dialect); err != nil {
		return err
	}
	log.Println("Schema ready.")
	return nil
}
