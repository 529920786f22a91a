package db

import (
	"fmt"
	"log"
	"os"

	"loandesk/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate models: ", err)
	}
	log.Println("Database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Item{},
		&models.Unit{},
		&models.Order{},
		&models.Report{},
	); err != nil {
		return err
	}

	// Hand-written indexes only make sense on postgres; the sqlite test DB
	// gets by with what AutoMigrate creates.
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	// Availability scans filter on blocking status + window bounds.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_blocking_window
	  ON %s (order_date, return_date)
	  WHERE status IN ('pending', 'approved', 'delivered');
	`, models.OrderTable, models.OrderTable)).Error; err != nil {
		return err
	}

	// The overlap subquery probes the join table by unit.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_unit_order
	  ON %s (unit_id, order_id);
	`, models.OrderUnitTable, models.OrderUnitTable)).Error; err != nil {
		return err
	}

	return nil
}
