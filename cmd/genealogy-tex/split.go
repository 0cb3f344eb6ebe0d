// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/genealogy-tex/internal/logging"
	"github.com/pdiddy/genealogy-tex/internal/split"
)

var splitCmd = &cobra.Command{
	Use:   "split input.txt output-dir",
	Short: "Split a large record book into chunks at anchor boundaries",
	Long: `Split cuts a record book into files named <prefix><n>.txt of roughly
--lines lines each. Every cut is moved forward to the next anchor line
(within --lookahead lines) so that no person is divided between chunks.
Chunks keep the input bytes as they are (line endings, byte-order mark),
so concatenating them in order reproduces the input; .xz inputs are
decompressed first.`,
	Args: cobra.ExactArgs(2),
	RunE: runSplit,
}

func init() {
	splitCmd.Flags().IntP("lines", "l", 7000, "approximate lines per chunk")
	splitCmd.Flags().StringP("prefix", "p", "split", "prefix for chunk filenames")
	splitCmd.Flags().Int("lookahead", 200, "lines searched past each cut point for an anchor")
	splitCmd.Flags().Bool("dry-run", false, "show the planned chunk files without writing them")

	viper.BindPFlag("split.lines", splitCmd.Flags().Lookup("lines"))
	viper.BindPFlag("split.prefix", splitCmd.Flags().Lookup("prefix"))
	viper.BindPFlag("split.lookahead", splitCmd.Flags().Lookup("lookahead"))

	rootCmd.AddCommand(splitCmd)
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg := loadConfig().Split
	in, outDir := args[0], args[1]
	w := cmd.OutOrStdout()

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		plan, err := split.Plan(in, outDir, cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, "*** DRY RUN MODE - No files will be created ***")
		fmt.Fprintf(w, "Would process %s lines into approximately %d files\n",
			humanize.Comma(int64(plan.TotalLines)), len(plan.Chunks))
		for _, c := range plan.Chunks {
			fmt.Fprintf(w, "  Would create: %s\n", c.Path)
		}
		return nil
	}

	_, err := split.Split(in, outDir, cfg, logging.Logger(), w)
	return err
}
