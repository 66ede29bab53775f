// Package main provides the policy navigator command-line tool.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/policynav/policynav/internal/config"
	"github.com/policynav/policynav/internal/courtlistener"
	"github.com/policynav/policynav/internal/dataset"
	"github.com/policynav/policynav/internal/domain/alert"
	"github.com/policynav/policynav/internal/domain/compliance"
	"github.com/policynav/policynav/internal/domain/document"
	"github.com/policynav/policynav/internal/domain/policy"
	"github.com/policynav/policynav/internal/federalregister"
	"github.com/policynav/policynav/internal/navigator"
	"github.com/policynav/policynav/internal/sqlite"
	"github.com/policynav/policynav/internal/webpage"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	var runErr error
	switch os.Args[1] {
	case "search":
		runErr = runSearch(cfg, os.Args[2:])
	case "status":
		runErr = runStatus(cfg, os.Args[2:])
	case "compliance":
		runErr = runCompliance(cfg, os.Args[2:])
	case "setup":
		runErr = runSetup(cfg, os.Args[2:])
	case "interactive":
		runErr = runInteractive(cfg)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", runErr)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Policy Navigator - Government Regulation Search System

Usage:
  policynav search -q <query>          Search for policy information
  policynav status -p <policy-id>      Check policy status
  policynav compliance -t <type> -s <size>
                                       Analyze compliance requirements
  policynav setup [-limit n]           Scrape and archive recent documents
  policynav interactive                Start an interactive query session`)
}

// buildNavigator wires an offline-friendly facade: sample policies are
// preloaded, external adapters hit their live endpoints on demand.
func buildNavigator(cfg config.Config) *navigator.Navigator {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	registry := federalregister.NewClient(cfg.Registry.BaseURL, cfg.Registry.Timeout, logger)
	courts := courtlistener.NewClient(cfg.CourtAPI.BaseURL, cfg.CourtAPI.APIKey, cfg.CourtAPI.Timeout, logger)
	store := document.NewStore(webpage.NewFetcher(cfg.Ingest.FetchTimeout), logger)

	policySvc := policy.NewService(registry, courts, logger)
	alerts := alert.NewService(cfg.Alerts.SlackWebhookURL, cfg.Alerts.NotionToken, logger)
	loader := dataset.NewLoader(store, logger)
	loader.LoadSamplePolicies()

	return navigator.New(store, policySvc, compliance.NewAnalyzer(), alerts, loader, logger)
}

func runSearch(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "Policy query to search for")
	fs.Parse(args)

	if *query == "" {
		return fmt.Errorf("search requires -q <query>")
	}

	nav := buildNavigator(cfg)
	fmt.Printf("Searching for: %s\n", *query)

	docs, err := nav.SearchPolicies(context.Background(), *query, 10)
	if err != nil {
		return err
	}
	indexed := nav.SearchIndexed(*query, document.DefaultSearchLimit)

	fmt.Println()
	printHeader("POLICY SEARCH RESULTS")

	if len(docs) == 0 && len(indexed) == 0 {
		fmt.Println("No results found")
		return nil
	}

	if len(docs) > 0 {
		rows := make([][]string, 0, len(docs))
		for _, doc := range docs {
			rows = append(rows, []string{doc.Title, doc.PublicationDate, doc.Type})
		}
		printTable([]string{"Title", "Published", "Type"}, rows)
	}

	if len(indexed) > 0 {
		fmt.Println("\nIndexed documents:")
		rows := make([][]string, 0, len(indexed))
		for _, hit := range indexed {
			title := hit.Metadata["title"]
			if title == "" {
				title = hit.DocID
			}
			rows = append(rows, []string{title, fmt.Sprint(hit.Score)})
		}
		printTable([]string{"Title", "Score"}, rows)
	}
	return nil
}

func runStatus(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	policyID := fs.String("p", "", "Policy ID to check (e.g. EO-14067)")
	fs.Parse(args)

	if *policyID == "" {
		return fmt.Errorf("status requires -p <policy-id>")
	}

	nav := buildNavigator(cfg)
	fmt.Printf("Checking status for: %s\n", *policyID)

	result, err := nav.CheckPolicyStatus(context.Background(), *policyID)
	if err != nil {
		return err
	}

	fmt.Println()
	printHeader("POLICY STATUS")
	fmt.Printf("Policy ID: %s\n", result.PolicyID)
	fmt.Printf("Status: %s\n", result.FederalStatus.Status)
	if result.FederalStatus.Title != "" {
		fmt.Printf("Title: %s\n", result.FederalStatus.Title)
	}
	if result.FederalStatus.PublicationDate != "" {
		fmt.Printf("Publication Date: %s\n", result.FederalStatus.PublicationDate)
	}
	if result.FederalStatus.URL != "" {
		fmt.Printf("URL: %s\n", result.FederalStatus.URL)
	}
	if len(result.RelatedCases) > 0 {
		fmt.Println("\nRelated cases:")
		rows := make([][]string, 0, len(result.RelatedCases))
		for _, c := range result.RelatedCases {
			rows = append(rows, []string{c.CaseName, c.Court, c.DateFiled})
		}
		printTable([]string{"Case", "Court", "Filed"}, rows)
	}
	return nil
}

func runCompliance(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("compliance", flag.ExitOnError)
	businessType := fs.String("t", "general", "Type of business")
	size := fs.String("s", compliance.SizeSmallBusiness, "Business size (small_business or large_business)")
	fs.Parse(args)

	nav := buildNavigator(cfg)
	analysis := nav.AnalyzeCompliance(*businessType, *size)

	fmt.Println()
	printHeader("COMPLIANCE ANALYSIS")
	fmt.Printf("Business Type: %s\n", analysis.BusinessType)
	fmt.Printf("Size: %s\n", analysis.Size)

	fmt.Println("\nRequirements:")
	for regulation, requirements := range analysis.Requirements {
		fmt.Printf("\n%s:\n", strings.ToUpper(regulation))
		for _, req := range requirements {
			fmt.Printf("  • %s\n", req)
		}
	}

	fmt.Println("\nDeadlines:")
	for _, deadline := range analysis.Deadlines {
		fmt.Printf("  • %s\n", deadline)
	}
	return nil
}

func runSetup(cfg config.Config, args []string) error {
	fs := flag.NewFlagSet("setup", flag.ExitOnError)
	limit := fs.Int("limit", 20, "Number of recent documents to archive")
	fs.Parse(args)

	fmt.Println("Setting up Policy Navigator...")

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	registry := federalregister.NewClient(cfg.Registry.BaseURL, cfg.Registry.Timeout, logger)

	fmt.Println("Scraping Federal Register...")
	ctx := context.Background()
	docs := registry.Recent(ctx, *limit)
	fmt.Printf("Scraped %d Federal Register documents\n", len(docs))

	archive := sqlite.NewArchiveRepository(db)
	stored, err := archive.SaveDocuments(ctx, docs)
	if err != nil {
		return fmt.Errorf("archive documents: %w", err)
	}
	total, err := archive.Count(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Archived %d documents (%d total in %s)\n", stored, total, cfg.DB.Path)
	fmt.Println("Setup complete!")
	return nil
}

func runInteractive(cfg config.Config) error {
	nav := buildNavigator(cfg)
	ctx := context.Background()

	fmt.Println("Policy Navigator Interactive Mode")
	fmt.Println("Type 'quit' to exit, 'help' for commands")
	fmt.Println(strings.Repeat("-", 40))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nPolicy Query> ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())

		switch {
		case query == "":
			continue
		case query == "quit" || query == "exit":
			fmt.Println("\nGoodbye!")
			return scanner.Err()
		case query == "help":
			fmt.Println("Available commands:")
			fmt.Println("  - Ask any policy question")
			fmt.Println("  - 'status <policy-id>' - Check policy status")
			fmt.Println("  - 'compliance <business-size>' - Get compliance info")
			fmt.Println("  - 'quit' - Exit")
		case strings.HasPrefix(query, "status "):
			policyID := strings.TrimSpace(strings.TrimPrefix(query, "status "))
			result, err := nav.CheckPolicyStatus(ctx, policyID)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Println(result.Summary)
		case strings.HasPrefix(query, "compliance "):
			size := strings.TrimSpace(strings.TrimPrefix(query, "compliance "))
			analysis := nav.AnalyzeCompliance("general", size)
			fmt.Println(analysis.Output)
		default:
			answer, err := nav.Query(ctx, query)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				continue
			}
			fmt.Printf("\nAnswer: %s\n", answer.Output)
		}
	}

	fmt.Println("\nGoodbye!")
	return scanner.Err()
}

func printHeader(title string) {
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println(title)
	fmt.Println(strings.Repeat("=", 50))
}
