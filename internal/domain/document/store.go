package document

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// DefaultSearchLimit caps Search results when no limit is given.
	DefaultSearchLimit = 5
	snippetLength      = 500
)

// Store is an in-memory collection of ingested documents. Documents live for
// the lifetime of the process; there is no eviction and no update operation.
// All methods are safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	documents   []Document
	indexedURLs map[string]struct{}

	fetcher Fetcher
	logger  *slog.Logger
}

// NewStore creates an empty document store. fetcher may be nil if IndexURL
// is never used.
func NewStore(fetcher Fetcher, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		indexedURLs: make(map[string]struct{}),
		fetcher:     fetcher,
		logger:      logger,
	}
}

// Add inserts a document and returns its assigned ID. IDs are sequential
// and never reused.
func (s *Store) Add(content string, metadata map[string]string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(content, metadata)
}

func (s *Store) addLocked(content string, metadata map[string]string) string {
	id := fmt.Sprintf("doc_%d", len(s.documents))

	meta := make(map[string]string, len(metadata))
	for k, v := range metadata {
		meta[k] = v
	}

	s.documents = append(s.documents, Document{
		ID:        id,
		Content:   content,
		Metadata:  meta,
		IndexedAt: time.Now(),
	})
	return id
}

// IndexURL fetches a page and adds its text content to the store. A URL is
// ingested at most once; repeat calls report already_indexed without
// re-fetching. Fetch or parse failures are reported in the result and leave
// the URL unmarked so a later retry is possible.
func (s *Store) IndexURL(ctx context.Context, url string) IndexResult {
	if strings.TrimSpace(url) == "" {
		return IndexResult{Status: StatusError, URL: url, Error: ErrEmptyURL.Error()}
	}

	s.mu.Lock()
	if _, ok := s.indexedURLs[url]; ok {
		s.mu.Unlock()
		return IndexResult{Status: StatusAlreadyIndexed, URL: url}
	}
	s.mu.Unlock()

	// Fetch outside the lock; blocking network I/O must not stall readers.
	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("url ingestion failed", "url", url, "error", err)
		return IndexResult{Status: StatusError, URL: url, Error: err.Error()}
	}

	title := page.Title
	if title == "" {
		title = url
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check after the fetch: a concurrent call may have won the race.
	if _, ok := s.indexedURLs[url]; ok {
		return IndexResult{Status: StatusAlreadyIndexed, URL: url}
	}

	docID := s.addLocked(page.Text, map[string]string{
		"source": "url",
		"url":    url,
		"title":  title,
		"type":   "web_content",
	})
	s.indexedURLs[url] = struct{}{}

	return IndexResult{Status: StatusIndexed, DocID: docID, URL: url, Title: title}
}

// Upload reads a file verbatim and adds it to the store.
func (s *Store) Upload(path, docType string) UploadResult {
	if docType == "" {
		docType = "policy"
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return UploadResult{Status: StatusError, FilePath: path, Error: err.Error()}
	}

	filename := filepath.Base(path)
	docID := s.Add(string(content), map[string]string{
		"source":    "upload",
		"file_path": path,
		"type":      docType,
		"filename":  filename,
	})

	return UploadResult{Status: StatusUploaded, DocID: docID, Filename: filename, FilePath: path}
}

// Search ranks documents by the number of literal, case-insensitive
// occurrences of query in their content. Ordering is stable: equal scores
// keep insertion order. The empty query matches every document with
// score = content length. Literal substring counting is the whole ranking
// function; there is no semantic relevance here.
func (s *Store) Search(query string, limit int) []SearchResult {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	queryLower := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()

	var results []SearchResult
	for _, doc := range s.documents {
		contentLower := strings.ToLower(doc.Content)

		var score int
		if queryLower == "" {
			score = len(doc.Content)
		} else {
			score = strings.Count(contentLower, queryLower)
		}
		if score == 0 {
			continue
		}

		results = append(results, SearchResult{
			DocID:    doc.ID,
			Content:  snippet(doc.Content),
			Metadata: doc.Metadata,
			Score:    score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Stats reports aggregate counts over the store.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	sources := make(map[string]int)
	for _, doc := range s.documents {
		source := doc.Metadata["source"]
		if source == "" {
			source = "unknown"
		}
		sources[source]++
	}

	return Stats{
		TotalDocuments: len(s.documents),
		Sources:        sources,
		IndexedURLs:    len(s.indexedURLs),
	}
}

func snippet(content string) string {
	if len(content) <= snippetLength {
		return content + "..."
	}
	// Back up to a rune boundary so the cut never splits a multi-byte rune.
	cut := snippetLength
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "..."
}
