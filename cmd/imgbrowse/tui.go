package main

import (
	"imgbrowse/internal/errors"
	"imgbrowse/internal/log"
	"imgbrowse/internal/scan"
	"imgbrowse/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// newTuiCmd opens the terminal browser instead of a window.
func newTuiCmd(opts *browseOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui DIRECTORY",
		Short: "Browse image metadata in the terminal",
		Long:  `Tui walks the same recursive file listing as a browse session and shows it as a terminal list with a metadata pane.`,
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts.cfgFile)
			if err != nil {
				return err
			}
			log.SetDebug(opts.debug || cfg.Settings.Debug)

			pattern := opts.match
			if pattern == "" {
				pattern = cfg.Scan.Match
			}

			files, err := scan.ListMatching(args[0], pattern)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.Newf("no files found under %s", args[0])
			}

			p := tea.NewProgram(tui.New(files), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
