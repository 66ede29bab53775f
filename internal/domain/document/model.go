package document

import "time"

// Document is an ingested text document with its metadata.
// Content and metadata are immutable after insertion.
type Document struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata"`
	IndexedAt time.Time         `json:"indexed_at"`
}

// SearchResult is one ranked hit from Search.
type SearchResult struct {
	DocID    string            `json:"doc_id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
	Score    int               `json:"score"`
}

// IndexStatus reports the outcome of an ingestion operation.
type IndexStatus string

const (
	StatusIndexed        IndexStatus = "indexed"
	StatusAlreadyIndexed IndexStatus = "already_indexed"
	StatusUploaded       IndexStatus = "uploaded"
	StatusError          IndexStatus = "error"
)

// IndexResult is the outcome of IndexURL.
type IndexResult struct {
	Status IndexStatus `json:"status"`
	DocID  string      `json:"doc_id,omitempty"`
	URL    string      `json:"url"`
	Title  string      `json:"title,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// UploadResult is the outcome of Upload.
type UploadResult struct {
	Status   IndexStatus `json:"status"`
	DocID    string      `json:"doc_id,omitempty"`
	Filename string      `json:"filename,omitempty"`
	FilePath string      `json:"file_path"`
	Error    string      `json:"error,omitempty"`
}

// Stats summarizes the store contents.
type Stats struct {
	TotalDocuments int            `json:"total_documents"`
	Sources        map[string]int `json:"sources"`
	IndexedURLs    int            `json:"indexed_urls"`
}
