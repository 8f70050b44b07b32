package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	_ "github.com/lib/pq"
	"github.com/vncsmyrnk/evoting/internal/config"
)

// Usage: migrations <name>|all [up|down]
//
// Runs one Postgres migration file, or every file of the given direction in
// order. SQLite databases migrate themselves when opened.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("a migration name is required.")
	}
	migrationName := os.Args[1]
	direction := "up"
	if len(os.Args) > 2 {
		direction = os.Args[2]
	}
	if direction != "up" && direction != "down" {
		log.Fatalf("unknown direction %q", direction)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.PostgresURL())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	files, err := migrationFiles(basePath, migrationName, direction)
	if err != nil {
		log.Fatal(err)
	}

	for _, file := range files {
		fileContent, err := os.ReadFile(filepath.Join(basePath, file))
		if err != nil {
			log.Fatal(err)
		}
		if _, err := db.Exec(string(fileContent)); err != nil {
			log.Fatalf("Failed to execute SQL file %s: %v", file, err)
		}
		fmt.Printf("Migration file %s executed successfully.\n", file)
	}
}

func migrationFiles(basePath, migrationName, direction string) ([]string, error) {
	pattern := fmt.Sprintf(`^.*%s\.%s\.sql$`, regexp.QuoteMeta(migrationName), direction)
	if migrationName == "all" {
		pattern = fmt.Sprintf(`^.*\.%s\.sql$`, direction)
	}
	regex, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, f := range entries {
		if !f.IsDir() && regex.MatchString(f.Name()) {
			files = append(files, f.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("migration file not found")
	}

	sort.Strings(files)
	if direction == "down" {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}
	return files, nil
}
