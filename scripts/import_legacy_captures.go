// +build ignore

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Capture represents a row from the legacy capture database
type Capture struct {
	ID          int64
	Content     string
	Category    sql.NullString
	ProjectPath sql.NullString
	CreatedAt   string
}

func main() {
	legacyPath := flag.String("legacy-db", "", "Path to the legacy capture database (required)")
	dryRun := flag.Bool("dry-run", false, "Preview import without executing")
	flag.Parse()

	if *legacyPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -legacy-db is required")
		os.Exit(1)
	}

	// Find curator database
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting home dir: %v\n", err)
		os.Exit(1)
	}
	dbPath := filepath.Join(homeDir, ".curator", "curator.db")

	curatorDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening curator database: %v\n", err)
		os.Exit(1)
	}
	defer curatorDB.Close()

	legacyDB, err := sql.Open("sqlite3", *legacyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening legacy database: %v\n", err)
		os.Exit(1)
	}
	defer legacyDB.Close()

	captures, err := findCaptures(legacyDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading legacy captures: %v\n", err)
		os.Exit(1)
	}

	if len(captures) == 0 {
		fmt.Println("No captures found to import")
		return
	}

	fmt.Printf("Found %d capture(s) to import:\n\n", len(captures))

	for _, c := range captures {
		fmt.Printf("  %d: %s\n", c.ID, preview(c.Content))
		if c.ProjectPath.Valid && c.ProjectPath.String != "" {
			fmt.Printf("    -> Path: %s\n", c.ProjectPath.String)
		}
	}
	fmt.Println()

	if *dryRun {
		fmt.Println("=== DRY RUN - No changes made ===")
		return
	}

	fmt.Println("=== Executing import ===")
	fmt.Println()

	imported := 0
	for _, c := range captures {
		if err := importCapture(curatorDB, c); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %d: %v\n", c.ID, err)
			continue
		}
		imported++
	}

	fmt.Printf("=== Import complete: %d/%d captures queued ===\n", imported, len(captures))
}

func findCaptures(db *sql.DB) ([]Capture, error) {
	query := `
		SELECT id, content, category, project_path, created_at
		FROM captures
		ORDER BY created_at ASC
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var captures []Capture
	for rows.Next() {
		var c Capture
		if err := rows.Scan(&c.ID, &c.Content, &c.Category, &c.ProjectPath, &c.CreatedAt); err != nil {
			return nil, err
		}
		if strings.TrimSpace(c.Content) == "" {
			continue
		}
		captures = append(captures, c)
	}
	return captures, rows.Err()
}

func importCapture(db *sql.DB, c Capture) error {
	_, err := db.Exec(`
		INSERT INTO extractions (id, content, category, project_path, status, created_at)
		VALUES (?, ?, ?, ?, 'pending', ?)`,
		uuid.NewString(),
		c.Content,
		c.Category.String,
		c.ProjectPath.String,
		c.CreatedAt,
	)
	return err
}

func preview(content string) string {
	line := strings.SplitN(content, "\n", 2)[0]
	if len(line) > 60 {
		return line[:60] + "..."
	}
	return line
}
