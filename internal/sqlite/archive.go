package sqlite

import (
	"context"
	"fmt"

	"github.com/policynav/policynav/internal/federalregister"
)

// ArchiveRepository persists scraped registry documents between setup runs.
type ArchiveRepository struct {
	db *DB
}

// NewArchiveRepository creates a new ArchiveRepository
func NewArchiveRepository(db *DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// SaveDocuments upserts a batch of scraped documents. Records without a
// document number cannot be keyed and are skipped; the count of stored
// rows is returned.
func (r *ArchiveRepository) SaveDocuments(ctx context.Context, docs []federalregister.DocumentRecord) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin archive tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO scraped_documents (document_number, title, abstract, html_url, publication_date, doc_type)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_number) DO UPDATE SET
			title = excluded.title,
			abstract = excluded.abstract,
			html_url = excluded.html_url,
			publication_date = excluded.publication_date,
			doc_type = excluded.doc_type
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare archive insert: %w", err)
	}
	defer stmt.Close()

	stored := 0
	for _, doc := range docs {
		if doc.DocumentNumber == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, doc.DocumentNumber, doc.Title, doc.Abstract, doc.HTMLURL, doc.PublicationDate, doc.Type); err != nil {
			return stored, fmt.Errorf("insert scraped document %s: %w", doc.DocumentNumber, err)
		}
		stored++
	}

	if err := tx.Commit(); err != nil {
		return stored, fmt.Errorf("commit archive tx: %w", err)
	}
	return stored, nil
}

// Count returns the number of archived documents.
func (r *ArchiveRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scraped_documents`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count scraped documents: %w", err)
	}
	return count, nil
}

// Recent returns archived documents newest-first.
func (r *ArchiveRepository) Recent(ctx context.Context, limit int) ([]federalregister.DocumentRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT document_number, title, COALESCE(abstract, ''), COALESCE(html_url, ''),
		       COALESCE(publication_date, ''), COALESCE(doc_type, '')
		FROM scraped_documents
		ORDER BY publication_date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query scraped documents: %w", err)
	}
	defer rows.Close()

	var docs []federalregister.DocumentRecord
	for rows.Next() {
		var doc federalregister.DocumentRecord
		if err := rows.Scan(&doc.DocumentNumber, &doc.Title, &doc.Abstract, &doc.HTMLURL, &doc.PublicationDate, &doc.Type); err != nil {
			return nil, fmt.Errorf("scan scraped document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
