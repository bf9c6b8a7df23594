package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vhybzOS/vibe-search/internal/registry"
	"github.com/vhybzOS/vibe-search/internal/search"
	"github.com/vhybzOS/vibe-search/internal/store"
	"github.com/vhybzOS/vibe-search/internal/ui"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	limit    int
	offset   int
	docType  string
	tags     []string
	priority string
	category string
	since    string // inclusive lower timestamp bound, RFC 3339 date
	until    string // inclusive upper bound
	mode     string
	format   string // "text", "json"
	all      bool   // search every registered project
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the project's memory and diary entries",
		Long: `Search indexed documents with ranked keyword matching.

Examples:
  vibesearch search "error handling"
  vibesearch search "postgres" --type diary --limit 5
  vibesearch search "auth" --tags backend,security --priority high
  vibesearch search "deploy" --since 2026-01-01 --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return runSearch(cmd.Context(), query, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results")
	cmd.Flags().IntVar(&opts.offset, "offset", 0, "Skip this many ranked results")
	cmd.Flags().StringVarP(&opts.docType, "type", "t", "", "Filter by doc type: memory, diary")
	cmd.Flags().StringSliceVar(&opts.tags, "tags", nil, "Require all of these tags (substring match)")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "Filter by priority: low, medium, high")
	cmd.Flags().StringVar(&opts.category, "category", "", "Filter by category (substring match)")
	cmd.Flags().StringVar(&opts.since, "since", "", "Only documents on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.until, "until", "", "Only documents on or before this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.mode, "mode", "keyword", "Search mode: keyword, vector, hybrid")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Search all registered projects")

	return cmd
}

func runSearch(ctx context.Context, query string, opts searchOptions) error {
	project, err := projectRoot()
	if err != nil {
		return err
	}
	reg, err := newRegistry(project)
	if err != nil {
		return err
	}

	req, err := buildRequest(query, opts)
	if err != nil {
		return err
	}

	if opts.all {
		return runSearchAll(ctx, reg, project, req, opts)
	}

	eng, err := reg.Engine(project)
	if err != nil {
		return err
	}
	resp, err := eng.Search(ctx, req)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		return json.NewEncoder(os.Stdout).Encode(resp)
	}
	ui.NewRenderer(os.Stdout, ui.StylesFor()).Response(resp)
	return nil
}

func runSearchAll(ctx context.Context, reg *registry.Registry, project string, req search.Request, opts searchOptions) error {
	// Make sure at least the current project participates.
	if _, err := reg.GetOrInit(project); err != nil {
		return err
	}

	responses, err := reg.SearchAll(ctx, req)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		return json.NewEncoder(os.Stdout).Encode(responses)
	}

	pages := make([]ui.ProjectPage, 0, len(responses))
	for _, pr := range responses {
		pages = append(pages, ui.ProjectPage{ProjectPath: pr.ProjectPath, Response: pr.Response})
	}
	ui.NewRenderer(os.Stdout, ui.StylesFor()).ProjectResponses(pages)
	return nil
}

func buildRequest(query string, opts searchOptions) (search.Request, error) {
	req := search.Request{
		Term:   query,
		Mode:   search.Mode(opts.mode),
		Limit:  opts.limit,
		Offset: opts.offset,
		Filters: search.Filters{
			DocType:  store.DocType(opts.docType),
			Tags:     opts.tags,
			Priority: store.Priority(opts.priority),
			Category: opts.category,
		},
	}

	dr, err := parseDateRange(opts.since, opts.until)
	if err != nil {
		return search.Request{}, err
	}
	req.Filters.DateRange = dr
	return req, nil
}

// parseDateRange converts --since/--until dates into an inclusive
// millisecond range. The until day is extended to its last millisecond.
func parseDateRange(since, until string) (*search.DateRange, error) {
	if since == "" && until == "" {
		return nil, nil
	}
	dr := &search.DateRange{}
	if since != "" {
		ts, err := time.Parse("2006-01-02", since)
		if err != nil {
			return nil, fmt.Errorf("invalid --since date %q: %w", since, err)
		}
		ms := ts.UnixMilli()
		dr.Start = &ms
	}
	if until != "" {
		ts, err := time.Parse("2006-01-02", until)
		if err != nil {
			return nil, fmt.Errorf("invalid --until date %q: %w", until, err)
		}
		ms := ts.AddDate(0, 0, 1).UnixMilli() - 1
		dr.End = &ms
	}
	return dr, nil
}
