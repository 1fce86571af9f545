// The hlssort command reorders the entries of an HLS master playlist by a
// chosen attribute and writes the result to a local file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/agleyzer/hlssort/internal/fetch"
	"github.com/agleyzer/hlssort/internal/parser"
	"github.com/agleyzer/hlssort/internal/platform/config"
	"github.com/agleyzer/hlssort/internal/playlist"
	"github.com/agleyzer/hlssort/internal/verify"
)

const (
	version = "1.0.0"
)

// options carries everything a single run needs.
type options struct {
	Source     string
	SortKey    string
	Output     string
	DownloadTo string
	Timeout    time.Duration
	Verify     bool
	Summary    bool
}

func main() {
	// Missing .env is fine, system env and defaults still apply
	_ = config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand(config.FromEnv())
	if err := cmd.ExecuteContext(ctx); err != nil {
		var logged *runError
		if !errors.As(err, &logged) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

// runError marks a pipeline failure that has already been logged.
type runError struct {
	err error
}

func (e *runError) Error() string { return e.err.Error() }
func (e *runError) Unwrap() error { return e.err }

func run(ctx context.Context, opts options, logger *slog.Logger, stdout io.Writer) error {
	sourcePath := opts.Source

	// Fetch the playlist when given a URL
	if fetch.IsRemote(opts.Source) {
		logger.Info("fetching source playlist", "url", opts.Source, "dest", opts.DownloadTo)

		n, err := fetch.New(opts.Timeout).Download(ctx, opts.Source, opts.DownloadTo)
		if err != nil {
			return &parser.UnreadableSourceError{Path: opts.Source, Err: err}
		}
		logger.Debug("downloaded source playlist", "bytes", n)

		sourcePath = opts.DownloadTo
	}

	// Parse the playlist
	pl, err := parser.ParseFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to parse playlist: %w", err)
	}

	counts := pl.Counts()
	logger.Info("parsed master playlist",
		"source", sourcePath,
		"media", counts[playlist.Media],
		"streamInf", counts[playlist.StreamInf],
		"iframeStreamInf", counts[playlist.IFrameStreamInf],
		"independentSegments", pl.IndependentSegments,
	)

	// Sort every group
	pl.Sort(opts.SortKey)
	logger.Info("sorted playlist",
		"sortBy", opts.SortKey,
		"emissionOrder", formatOrder(pl.EmissionOrder()),
	)

	// Write the result
	if err := pl.WriteFile(opts.Output); err != nil {
		return fmt.Errorf("failed to write playlist: %w", err)
	}
	logger.Info("wrote sorted playlist", "dest", opts.Output, "records", pl.Len())

	// Re-read the output with an independent decoder
	if opts.Verify {
		report, err := verify.File(opts.Output, pl)
		if err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Info("verified sorted playlist",
			"variants", report.Variants,
			"iframeVariants", report.IFrameVariants,
		)
	}

	if opts.Summary {
		fmt.Fprintln(stdout, renderSummary(pl, opts.SortKey))
	}

	return nil
}

// errorKind names the failure category of err for user-facing reports.
func errorKind(err error) string {
	var (
		unreadable *parser.UnreadableSourceError
		malformed  *parser.MalformedAttributeError
		unwritable *playlist.UnwritableDestinationError
	)

	switch {
	case errors.As(err, &malformed):
		return "MalformedAttributeError"
	case errors.As(err, &unreadable):
		return "UnreadableSourceError"
	case errors.As(err, &unwritable):
		return "UnwritableDestinationError"
	default:
		return "Error"
	}
}

func formatOrder(order []playlist.Category) string {
	names := make([]string, len(order))
	for i, c := range order {
		names[i] = c.String()
	}
	return strings.Join(names, ",")
}
