package main

import (
	"fmt"

	"github.com/agleyzer/hlssort/internal/platform/config"
	"github.com/agleyzer/hlssort/internal/platform/logger"
	"github.com/spf13/cobra"
)

func newRootCommand(settings config.Settings) *cobra.Command {
	opts := options{
		Output:     settings.Output,
		DownloadTo: settings.Download,
		Timeout:    settings.Timeout,
	}
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "hlssort [flags] <playlist-url-or-path> <sort-attribute>",
		Short: "Sort the entries of an HLS master playlist by an attribute",
		Long: "hlssort reads an HLS master playlist from a URL or local file, reorders its\n" +
			"#EXT-X-MEDIA, #EXT-X-STREAM-INF and #EXT-X-I-FRAME-STREAM-INF entries by the\n" +
			"given attribute (for example BANDWIDTH or CODECS) and writes the result.",
		Example: "  hlssort https://example.com/master.m3u8 BANDWIDTH\n" +
			"  hlssort --out by-codecs.m3u8 ./master.m3u8 CODECS\n" +
			"  hlssort --verify --summary https://example.com/master.m3u8 RESOLUTION",
		Version:       version,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Source = args[0]
			opts.SortKey = args[1]

			if opts.Output == "" {
				return fmt.Errorf("--out must not be empty")
			}

			level := settings.LogLevel
			if verbose {
				level = "debug"
			}
			log := logger.New(level, settings.LogFormat, cmd.ErrOrStderr())
			log.Info("hlssort starting", "version", version)

			if err := run(cmd.Context(), opts, log, cmd.OutOrStdout()); err != nil {
				log.Error("application error", "kind", errorKind(err), "error", err)
				return &runError{err: err}
			}

			log.Info("hlssort finished")
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.Output, "out", "o", opts.Output, "Destination path for the sorted playlist")
	flags.StringVar(&opts.DownloadTo, "download-to", opts.DownloadTo, "Local path where a fetched playlist is stored before parsing")
	flags.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "Timeout for fetching a remote playlist")
	flags.BoolVar(&opts.Verify, "verify", false, "Decode the written playlist with a reference HLS parser")
	flags.BoolVar(&opts.Summary, "summary", false, "Print a table of the sorted entries")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	return rootCmd
}
