package main

import (
	"fmt"
	"os"
	"path/filepath"

	"imgbrowse/internal/config"
	"imgbrowse/internal/errors"
	"imgbrowse/internal/gui"
	"imgbrowse/internal/imaging"
	"imgbrowse/internal/log"
	"imgbrowse/internal/scan"
	"imgbrowse/internal/viewer"
	"imgbrowse/internal/watch"

	"github.com/spf13/cobra"
)

var version = "dev"

// Entry point for the application. All errors funnel through here and exit
// with status 1, prefixed with the program name on stderr.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(os.Args[0]), err)
		os.Exit(1)
	}
}

// browseOptions are the root command's flags.
type browseOptions struct {
	rows    uint
	cols    uint
	match   string
	watch   bool
	cfgFile string
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &browseOptions{}

	cmd := &cobra.Command{
		Use:   "imgbrowse DIRECTORY",
		Short: "Browse images under a directory",
		Long: `Imgbrowse recursively lists the image files under a directory and shows
them one at a time in a fixed-size window.

Keys: n or space for the next image, p for the previous one, q to quit.
Any other key advances.`,
		Version:       version,
		Args:          exactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(args[0], opts)
		},
	}

	cmd.Flags().UintVar(&opts.rows, "rows", 0, "maximum display height in pixels (0 = configured or default)")
	cmd.Flags().UintVar(&opts.cols, "cols", 0, "maximum display width in pixels (0 = configured or default)")
	cmd.Flags().StringVar(&opts.match, "match", "", "glob applied to file base names (e.g. \"*.jpg\")")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "pick up files created while browsing")
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/imgbrowse/config.yaml)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newScanCmd(opts))
	cmd.AddCommand(newTuiCmd(opts))

	return cmd
}

// exactArgs validates the positional argument count, printing the usage
// text before surfacing the error so a bad invocation shows how to call
// the command.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return err
		}
		return nil
	}
}

// loadConfig resolves the effective configuration. An explicit --config path
// must exist and load; the default location falls back to defaults with a
// warning when loading fails.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadConfigFile(path)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Warnf("could not load config: %v; using defaults", err)
		return config.New(), nil
	}
	return cfg, nil
}

func runBrowse(dir string, opts *browseOptions) error {
	cfg, err := loadConfig(opts.cfgFile)
	if err != nil {
		return err
	}
	log.SetDebug(opts.debug || cfg.Settings.Debug)

	maxCols, maxRows := cfg.Bounds(opts.cols, opts.rows)
	bounds := imaging.Bounds{MaxCols: maxCols, MaxRows: maxRows}

	filter, err := imaging.FilterByName(cfg.Viewer.Filter)
	if err != nil {
		return err
	}

	pattern := opts.match
	if pattern == "" {
		pattern = cfg.Scan.Match
	}

	files, err := scan.ListMatching(dir, pattern)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.Newf("no files found under %s", dir)
	}
	log.Debugf("found %d files under %s", len(files), dir)

	sessionOpts := []viewer.Option{}
	if opts.watch || cfg.WatchMode.Enabled {
		watcher, err := watch.New()
		if err != nil {
			return errors.Wrap(err, "failed to create watcher")
		}
		defer watcher.Close()
		if err := watcher.AddTree(dir); err != nil {
			return errors.Wrap(err, "failed to watch directory tree")
		}
		watcher.Start()
		sessionOpts = append(sessionOpts, viewer.WithUpdates(watcher.Events()))
	}

	// The window must exist before the session starts; the session then
	// owns its teardown.
	window := gui.NewWindow("Browser", bounds)
	session := viewer.New(files, window, viewer.Config{
		Bounds:       bounds,
		AllowUpscale: cfg.Viewer.AllowUpscale,
		Filter:       filter,
		Out:          os.Stdout,
	}, sessionOpts...)

	return window.Run(session.Run)
}
