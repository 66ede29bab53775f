package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it does not exist.
func (db *DB) RunMigrations() error {
	migration := `
-- Scrape archive: raw Federal Register documents captured by setup runs
CREATE TABLE IF NOT EXISTS scraped_documents (
    document_number TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    abstract TEXT,
    html_url TEXT,
    publication_date TEXT,
    doc_type TEXT,
    scraped_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_scraped_publication_date ON scraped_documents(publication_date);

-- Optional compliance rule overrides; empty table means built-in rules apply
CREATE TABLE IF NOT EXISTS compliance_rules (
    size TEXT NOT NULL,
    regulation TEXT NOT NULL,
    requirement TEXT NOT NULL,
    position INTEGER NOT NULL,
    PRIMARY KEY (size, regulation, position)
);
`
	if _, err := db.Exec(migration); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
