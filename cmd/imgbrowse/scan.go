package main

import (
	"fmt"

	"imgbrowse/internal/analysis"
	"imgbrowse/internal/log"
	"imgbrowse/internal/scan"

	"github.com/spf13/cobra"
)

// newScanCmd lists the recursive traversal without opening a window.
func newScanCmd(opts *browseOptions) *cobra.Command {
	var detailed bool

	cmd := &cobra.Command{
		Use:   "scan DIRECTORY",
		Short: "List the image files a browse session would walk",
		Long:  `Scan prints the depth-first recursive file listing along with the probed image metadata.`,
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

			images := 0
			for i, path := range files {
				info, err := analysis.Probe(path)
				if err != nil {
					if detailed {
						fmt.Printf("%05d. %60s\t(not an image)\n", i, path)
					}
					continue
				}
				images++
				fmt.Printf("%05d. %60s\t%s\n", i, path, info.Resolution())
				if detailed {
					if info.Taken != "" {
						fmt.Printf("       taken %s\n", info.Taken)
					}
					if info.Camera != "" {
						fmt.Printf("       camera %s\n", info.Camera)
					}
				}
			}

			fmt.Printf("\n%d files, %d images\n", len(files), images)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&detailed, "detailed", "v", false, "show EXIF details and non-image files")

	return cmd
}
