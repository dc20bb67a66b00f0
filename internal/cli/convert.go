package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ytget/magnetdrop/internal/clipboard"
	"github.com/ytget/magnetdrop/internal/eventbus"
	"github.com/ytget/magnetdrop/internal/host"
	"github.com/ytget/magnetdrop/internal/model"
	"github.com/ytget/magnetdrop/internal/pipeline"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultTimeout bounds how long convert waits for a batch
const DefaultTimeout = 30 * time.Second

var (
	convertFullLink   bool
	convertFilter     string
	convertSearchType string
	convertCopy       bool
	convertFormat     string
	convertParallel   int
	convertTimeout    time.Duration
)

// newClipboard is replaced in tests
var newClipboard = func() clipboard.Writer { return clipboard.System{} }

var convertCmd = &cobra.Command{
	Use:   "convert <path>...",
	Short: "Convert torrent files to magnet links",
	Long: `Convert .torrent files to magnet links.

Folders are searched recursively; other files are skipped.

Examples:
  magnetdrop convert ubuntu.torrent               # One link
  magnetdrop convert --full-link ~/Downloads      # Links with trackers and web seeds
  magnetdrop convert --filter iso --copy ./dir    # Copy links of names containing "iso"
  magnetdrop convert --format json a.torrent      # Output as JSON`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&convertFullLink, "full-link", false, "include trackers, size and web seeds in links")
	convertCmd.Flags().StringVarP(&convertFilter, "filter", "f", "", "only show results containing this keyword")
	convertCmd.Flags().StringVar(&convertSearchType, "search-type", string(host.DefaultSearchType), "field matched by --filter: name, path, link or any")
	convertCmd.Flags().BoolVarP(&convertCopy, "copy", "c", false, "copy the shown links to the clipboard")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "o", FormatText, "output format: text, json or yaml")
	convertCmd.Flags().IntVarP(&convertParallel, "parallel", "p", host.DefaultMaxParallel, "torrent files parsed at once")
	convertCmd.Flags().DurationVar(&convertTimeout, "timeout", DefaultTimeout, "maximum time to wait for the conversion")
}

type failureOutput struct {
	Path  string `json:"path" yaml:"path"`
	Error string `json:"error" yaml:"error"`
}

type convertOutput struct {
	Keyword string          `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Results []model.Record  `json:"results" yaml:"results"`
	Failed  []failureOutput `json:"failed,omitempty" yaml:"failed,omitempty"`
}

func runConvert(cmd *cobra.Command, args []string) error {
	searchType, err := host.ParseSearchType(convertSearchType)
	if err != nil {
		return err
	}
	switch convertFormat {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown output format %q", convertFormat)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, convertTimeout)
	defer cancel()

	logger := newLogger(cmd.ErrOrStderr())
	bus := eventbus.New(logger)
	defer bus.Close()

	svc := host.NewService(bus, convertParallel, logger)
	defer svc.Close()

	var (
		mu       sync.Mutex
		failures []failureOutput
	)
	completed := make(chan model.BatchCompletedEvent, 4)
	if _, err := bus.Subscribe(eventbus.EventConversionFailed, func(e eventbus.Event) {
		failed := e.(model.ConversionFailedEvent)
		mu.Lock()
		defer mu.Unlock()
		failures = append(failures, failureOutput{Path: failed.Path, Error: errString(failed.Err)})
	}); err != nil {
		return err
	}
	if _, err := bus.Subscribe(eventbus.EventBatchCompleted, func(e eventbus.Event) {
		completed <- e.(model.BatchCompletedEvent)
	}); err != nil {
		return err
	}

	presenter := pipeline.New(pipeline.Options{
		Bus:               bus,
		Converter:         svc,
		Filterer:          svc,
		Clipboard:         newClipboard(),
		SearchType:        searchType,
		FenceStaleBatches: true,
		Logger:            logger,
	})
	defer presenter.Close()
	if err := presenter.Start(); err != nil {
		return err
	}

	batch, err := presenter.HandleDrop(args, convertFullLink)
	if err != nil {
		return err
	}
	if err := waitForBatch(ctx, completed, batch); err != nil {
		return err
	}

	presenter.Filter(convertFilter)
	presenter.Wait()

	view := presenter.View()
	if view.State == model.ViewStateError {
		return view.Err
	}

	mu.Lock()
	out := convertOutput{Keyword: view.Keyword, Results: viewRecords(view), Failed: failures}
	mu.Unlock()
	if err := writeOutput(cmd.OutOrStdout(), convertFormat, out); err != nil {
		return err
	}
	for _, f := range out.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", f.Path, f.Error)
	}

	if !convertCopy {
		return nil
	}
	n, err := presenter.Export()
	if errors.Is(err, pipeline.ErrNothingToExport) {
		fmt.Fprintln(cmd.ErrOrStderr(), "nothing to copy")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "copied %d links\n", n)
	return nil
}

// waitForBatch blocks until batch completed or ctx expired
func waitForBatch(ctx context.Context, completed <-chan model.BatchCompletedEvent, batch string) error {
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timed out waiting for conversion: %w", ctx.Err())
		case done := <-completed:
			if done.Batch == batch {
				return nil
			}
		}
	}
}

func viewRecords(view model.View) []model.Record {
	records := make([]model.Record, 0, view.Len())
	for _, row := range view.Rows {
		records = append(records, model.Record{ID: row.ID, Name: row.Name, Path: row.Path, Link: row.Link})
	}
	return records
}

func writeOutput(w io.Writer, format string, out convertOutput) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, r := range out.Results {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", r.GetDisplayName(), r.Link); err != nil {
				return err
			}
		}
		return nil
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
