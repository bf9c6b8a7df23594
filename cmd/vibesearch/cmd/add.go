package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vhybzOS/vibe-search/internal/ingest"
	"github.com/vhybzOS/vibe-search/internal/store"
)

// addOptions holds CLI flags for add.
type addOptions struct {
	id       string
	docType  string
	tags     []string
	priority string
	category string
	title    string
	stdin    bool
}

func newAddCmd() *cobra.Command {
	var opts addOptions

	cmd := &cobra.Command{
		Use:   "add [content...]",
		Short: "Add a memory or diary entry to the index",
		Long: `Add a document to the project index.

Content comes from the arguments, or from stdin with --stdin (one JSON
record per line).

Examples:
  vibesearch add "user prefers table-driven tests" --tags testing
  vibesearch add --type diary --title "Switch to Postgres" "replace sqlite"
  cat records.jsonl | vibesearch add --stdin --type memory`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.id, "id", "", "Document id (generated when empty)")
	cmd.Flags().StringVarP(&opts.docType, "type", "t", "memory", "Document type: memory, diary")
	cmd.Flags().StringSliceVar(&opts.tags, "tags", nil, "Tags for the document")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "Priority: low, medium, high")
	cmd.Flags().StringVar(&opts.category, "category", "", "Category label")
	cmd.Flags().StringVar(&opts.title, "title", "", "Title (diary entries)")
	cmd.Flags().BoolVar(&opts.stdin, "stdin", false, "Read JSON records from stdin, one per line")

	return cmd
}

func runAdd(args []string, opts addOptions) error {
	project, err := projectRoot()
	if err != nil {
		return err
	}
	reg, err := newRegistry(project)
	if err != nil {
		return err
	}
	ix, err := reg.GetOrInit(project)
	if err != nil {
		return err
	}

	if opts.stdin {
		return addFromStdin(ix, project, opts)
	}

	if len(args) == 0 {
		return fmt.Errorf("content required (or use --stdin)")
	}

	doc, err := buildDocument(project, strings.Join(args, " "), opts)
	if err != nil {
		return err
	}
	if err := ix.Insert(doc); err != nil {
		return err
	}
	fmt.Printf("added %s\n", doc.ID)
	return nil
}

func buildDocument(project, content string, opts addOptions) (*store.Document, error) {
	switch store.DocType(opts.docType) {
	case store.DocTypeDiary:
		return ingest.FromDiary(ingest.DiaryEntry{
			ID:          opts.id,
			ProjectPath: project,
			Title:       opts.title,
			Decision:    content,
			Tags:        opts.tags,
			Priority:    store.Priority(opts.priority),
			Category:    opts.category,
		}), nil
	case store.DocTypeMemory:
		return ingest.FromMemory(ingest.MemoryRecord{
			ID:          opts.id,
			ProjectPath: project,
			Content:     content,
			Tags:        opts.tags,
			Priority:    store.Priority(opts.priority),
			Category:    opts.category,
		}), nil
	default:
		return nil, fmt.Errorf("unknown document type %q", opts.docType)
	}
}

// addFromStdin ingests newline-delimited JSON records in one batch so the
// snapshot is written once.
func addFromStdin(ix *store.Index, project string, opts addOptions) error {
	raw, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}

	var docs []*store.Document
	for _, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		doc, err := decodeRecord(line, project, opts)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no records on stdin")
	}

	if err := ix.InsertMany(docs); err != nil {
		return err
	}
	fmt.Printf("added %d document(s)\n", len(docs))
	return nil
}

func decodeRecord(line, project string, opts addOptions) (*store.Document, error) {
	switch store.DocType(opts.docType) {
	case store.DocTypeDiary:
		var entry ingest.DiaryEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("invalid diary record: %w", err)
		}
		if entry.ProjectPath == "" {
			entry.ProjectPath = project
		}
		return ingest.FromDiary(entry), nil
	case store.DocTypeMemory:
		var rec ingest.MemoryRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("invalid memory record: %w", err)
		}
		if rec.ProjectPath == "" {
			rec.ProjectPath = project
		}
		return ingest.FromMemory(rec), nil
	default:
		return nil, fmt.Errorf("unknown document type %q", opts.docType)
	}
}
