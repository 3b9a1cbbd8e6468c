package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/SaifHossain4/student-feedback-dashboard/internal/config"
	_ "github.com/lib/pq"
	"github.com/xuri/excelize/v2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		printMenu()
		fmt.Print("Choose: ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		switch input {
		case "1":
			createDatabase(cfg)
		case "2":
			migrateSchema(cfg)
		case "3":
			migrateFresh(cfg)
		case "4":
			truncateFeedback(cfg)
		case "5":
			exportFeedback(cfg)
		case "6":
			deleteDatabase(cfg)
		case "0":
			fmt.Println("Bye.")
			os.Exit(0)
		default:
			fmt.Println("Invalid choice")
		}

		fmt.Println()
		fmt.Print("Press Enter to continue...")
		reader.ReadString('\n')
	}
}

func printMenu() {
	fmt.Println()
	fmt.Println("========================================")
	fmt.Println("    FEEDBACK DATABASE CLI MANAGER")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("1. Create database (if missing) + migrate schema")
	fmt.Println("2. Migrate schema")
	fmt.Println("3. Migrate fresh (drop everything + re-migrate)")
	fmt.Println("4. Truncate feedback table")
	fmt.Println("5. Export feedback to XLSX")
	fmt.Println("6. Drop database")
	fmt.Println("0. Exit")
	fmt.Println()
	fmt.Println("----------------------------------------")
}

func getPostgresConn(cfg *config.Config) (*sql.DB, error) {
	return sql.Open("postgres", cfg.Database.AdminDSN())
}

func getDBConn(cfg *config.Config) (*sql.DB, error) {
	return sql.Open("postgres", cfg.Database.DSN())
}

func databaseExists(cfg *config.Config) (bool, error) {
	db, err := getPostgresConn(cfg)
	if err != nil {
		return false, err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.Database.Name).Scan(&exists)
	return exists, err
}

func createDatabase(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Create database + migrate schema ---")

	exists, err := databaseExists(cfg)
	if err != nil {
		fmt.Printf("Error checking database: %v\n", err)
		return
	}

	if exists {
		fmt.Printf("Database '%s' already exists.\n", cfg.Database.Name)
	} else {
		db, err := getPostgresConn(cfg)
		if err != nil {
			fmt.Printf("Connection error: %v\n", err)
			return
		}
		defer db.Close()

		_, err = db.Exec(fmt.Sprintf("CREATE DATABASE %s", cfg.Database.Name))
		if err != nil {
			fmt.Printf("Error creating database: %v\n", err)
			return
		}
		fmt.Printf("Database '%s' created.\n", cfg.Database.Name)
	}

	migrateSchema(cfg)
}

func migrateSchema(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Migrate schema ---")

	db, err := getDBConn(cfg)
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return
	}
	defer db.Close()

	statements := []string{
		// The rating CHECK backs up the service-level validation.
		`CREATE TABLE IF NOT EXISTS feedback (
			id BIGSERIAL PRIMARY KEY,
			rating INTEGER NOT NULL,
			comment TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CONSTRAINT feedback_rating_range CHECK (rating BETWEEN 1 AND 5)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback(created_at DESC, id DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			fmt.Printf("Migration error: %v\n", err)
			return
		}
	}

	fmt.Println("Schema migration done.")
}

func migrateFresh(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Migrate fresh ---")
	fmt.Println("WARNING: all feedback data will be deleted!")
	fmt.Print("Type 'FRESH' to confirm: ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) != "FRESH" {
		fmt.Println("Cancelled.")
		return
	}

	db, err := getDBConn(cfg)
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return
	}
	defer db.Close()

	if _, err := db.Exec("DROP TABLE IF EXISTS feedback CASCADE"); err != nil {
		fmt.Printf("Error dropping table: %v\n", err)
		return
	}

	migrateSchema(cfg)
}

func truncateFeedback(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Truncate feedback table ---")
	fmt.Print("Type 'TRUNCATE' to confirm: ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) != "TRUNCATE" {
		fmt.Println("Cancelled.")
		return
	}

	db, err := getDBConn(cfg)
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return
	}
	defer db.Close()

	if _, err := db.Exec("TRUNCATE TABLE feedback RESTART IDENTITY"); err != nil {
		fmt.Printf("Error truncating: %v\n", err)
		return
	}

	fmt.Println("Truncate done.")
}

func deleteDatabase(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Drop database ---")
	fmt.Printf("WARNING: database '%s' will be dropped permanently!\n", cfg.Database.Name)
	fmt.Print("Type the database name to confirm: ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) != cfg.Database.Name {
		fmt.Println("Name does not match. Cancelled.")
		return
	}

	db, err := getPostgresConn(cfg)
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return
	}
	defer db.Close()

	// Terminate existing connections
	_, _ = db.Exec(fmt.Sprintf(`
		SELECT pg_terminate_backend(pg_stat_activity.pid)
		FROM pg_stat_activity
		WHERE pg_stat_activity.datname = '%s'
		AND pid <> pg_backend_pid()
	`, cfg.Database.Name))

	_, err = db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", cfg.Database.Name))
	if err != nil {
		fmt.Printf("Error dropping database: %v\n", err)
		return
	}

	fmt.Printf("Database '%s' dropped.\n", cfg.Database.Name)
}

func exportFeedback(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Export feedback to XLSX ---")

	db, err := getDBConn(cfg)
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return
	}
	defer db.Close()

	rows, err := db.Query("SELECT id, rating, comment, created_at FROM feedback ORDER BY created_at DESC, id DESC")
	if err != nil {
		fmt.Printf("Query error: %v\n", err)
		return
	}
	defer rows.Close()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Feedback"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		fmt.Printf("Sheet error: %v\n", err)
		return
	}

	headers := []string{"ID", "Rating", "Comment", "Created At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	count := 0
	for rows.Next() {
		var (
			id        int64
			rating    int
			comment   string
			createdAt time.Time
		)
		if err := rows.Scan(&id, &rating, &comment, &createdAt); err != nil {
			fmt.Printf("Scan error: %v\n", err)
			return
		}

		row := count + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), id)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rating)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), comment)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), createdAt.Format(time.RFC3339))
		count++
	}
	if err := rows.Err(); err != nil {
		fmt.Printf("Row error: %v\n", err)
		return
	}

	filename := fmt.Sprintf("feedback-export-%s.xlsx", time.Now().Format("20060102-150405"))
	if err := f.SaveAs(filename); err != nil {
		fmt.Printf("Save error: %v\n", err)
		return
	}

	fmt.Printf("Exported %d rows to %s\n", count, filename)
}
