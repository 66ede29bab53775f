// Package dataset seeds the document store with initial content: a bundled
// sample policy dataset, a fixed list of government websites, and caller
// supplied CSV files.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/policynav/policynav/internal/domain/document"
)

// samplePolicy is one entry in the bundled dataset.
type samplePolicy struct {
	Title         string
	Content       string
	Type          string
	Jurisdiction  string
	EffectiveDate string
}

var samplePolicies = []samplePolicy{
	{
		Title:         "General Data Protection Regulation (GDPR)",
		Content:       "The General Data Protection Regulation (GDPR) is a regulation in EU law on data protection and privacy in the European Union and the European Economic Area. It addresses the transfer of personal data outside the EU and EEA areas. Small businesses with fewer than 250 employees have simplified reporting requirements but must still comply with core GDPR principles.",
		Type:          "privacy_law",
		Jurisdiction:  "EU",
		EffectiveDate: "2018-05-25",
	},
	{
		Title:         "Executive Order 14067 - Digital Assets",
		Content:       "Executive Order 14067, titled 'Ensuring Responsible Development of Digital Assets,' was signed on March 9, 2022. This order establishes the first-ever, whole-of-Government approach to addressing the risks and harnessing the potential benefits of digital assets and their underlying technology.",
		Type:          "executive_order",
		Jurisdiction:  "US",
		EffectiveDate: "2022-03-09",
	},
	{
		Title:         "Section 230 Communications Decency Act",
		Content:       "Section 230 of the Communications Decency Act provides immunity to online platforms from liability for user-generated content. It has been subject to various court challenges, including Fair Housing Council v. Roommates.com, which clarified limits on platform immunity.",
		Type:          "federal_law",
		Jurisdiction:  "US",
		EffectiveDate: "1996-02-08",
	},
}

var governmentURLs = []string{
	"https://www.federalregister.gov/",
	"https://www.epa.gov/laws-regulations",
	"https://www.cdc.gov/policy/",
}

// LoadReport summarizes one dataset load.
type LoadReport struct {
	Dataset          string   `json:"dataset"`
	DocumentsIndexed int      `json:"documents_indexed"`
	URLsProcessed    int      `json:"urls_processed,omitempty"`
	Errors           []string `json:"errors,omitempty"`
	Status           string   `json:"status"`
}

// Loader feeds datasets into a document store and tracks what was loaded.
type Loader struct {
	store  *document.Store
	logger *slog.Logger

	mu     sync.Mutex
	loaded []string
}

// NewLoader creates a dataset loader for the given store.
func NewLoader(store *document.Store, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{store: store, logger: logger}
}

// LoadSamplePolicies indexes the bundled sample policy dataset.
func (l *Loader) LoadSamplePolicies() LoadReport {
	for _, policy := range samplePolicies {
		l.store.Add(policy.Content, map[string]string{
			"source":         "sample_dataset",
			"title":          policy.Title,
			"type":           policy.Type,
			"jurisdiction":   policy.Jurisdiction,
			"effective_date": policy.EffectiveDate,
		})
	}

	l.markLoaded("sample_policy_dataset")
	return LoadReport{
		Dataset:          "sample_policy_dataset",
		DocumentsIndexed: len(samplePolicies),
		Status:           "loaded",
	}
}

// LoadGovernmentWebsites ingests a fixed list of government sites.
// Individual fetch failures are collected, not fatal.
func (l *Loader) LoadGovernmentWebsites(ctx context.Context) LoadReport {
	indexed := 0
	var errs []string

	for _, url := range governmentURLs {
		result := l.store.IndexURL(ctx, url)
		if result.Status == document.StatusIndexed {
			indexed++
		} else {
			errs = append(errs, fmt.Sprintf("%s: %s", url, result.Status))
		}
	}

	l.markLoaded("government_websites")
	return LoadReport{
		Dataset:          "government_websites",
		DocumentsIndexed: indexed,
		URLsProcessed:    len(governmentURLs),
		Errors:           errs,
		Status:           "loaded",
	}
}

// LoadCSV indexes each row of a CSV file as one document. The header row
// names the columns; row values are joined into the document content and
// kept individually as metadata.
func (l *Loader) LoadCSV(path string) LoadReport {
	name := "csv_" + filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return LoadReport{Dataset: path, Status: "error", Errors: []string{err.Error()}}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return LoadReport{Dataset: path, Status: "error", Errors: []string{err.Error()}}
	}
	if len(records) < 2 {
		return LoadReport{Dataset: name, Status: "loaded", DocumentsIndexed: 0}
	}

	header := records[0]
	indexed := 0
	for _, row := range records[1:] {
		metadata := map[string]string{
			"source":    "csv_dataset",
			"file_path": path,
			"type":      "structured_data",
		}
		var parts []string
		for i, val := range row {
			if val == "" {
				continue
			}
			parts = append(parts, val)
			if i < len(header) {
				metadata["row_"+header[i]] = val
			}
		}
		l.store.Add(strings.Join(parts, " "), metadata)
		indexed++
	}

	l.markLoaded(name)
	return LoadReport{Dataset: name, DocumentsIndexed: indexed, Status: "loaded"}
}

// LoadedDatasets lists the datasets loaded so far, in load order.
func (l *Loader) LoadedDatasets() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.loaded))
	copy(out, l.loaded)
	return out
}

func (l *Loader) markLoaded(name string) {
	l.mu.Lock()
	l.loaded = append(l.loaded, name)
	l.mu.Unlock()
}
