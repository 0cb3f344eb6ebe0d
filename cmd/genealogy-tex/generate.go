// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/genealogy-tex/internal/convert"
	"github.com/pdiddy/genealogy-tex/internal/logging"
	"github.com/pdiddy/genealogy-tex/internal/render"
	"github.com/pdiddy/genealogy-tex/internal/watch"
)

var generateCmd = &cobra.Command{
	Use:   "generate [input.txt output.tex]",
	Short: "Convert a record book into LaTeX",
	Long: `Generate reads a plain-text record book and writes the LaTeX command
stream for the family-book template. Use --format yaml or json to write
the parsed persons as a structured document instead.

With --batch, every *.txt and *.txt.xz file in --input-dir is converted
into --output-dir; existing outputs are skipped unless --force is given.
With --watch, the output is regenerated whenever the input changes.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("format", "latex", "output format: latex, yaml or json")
	generateCmd.Flags().Bool("batch", false, "convert every input in --input-dir")
	generateCmd.Flags().String("input-dir", "", "directory of inputs for --batch")
	generateCmd.Flags().String("output-dir", "", "directory for outputs of --batch")
	generateCmd.Flags().Bool("force", false, "overwrite outputs that already exist during --batch")
	generateCmd.Flags().Bool("watch", false, "regenerate the output whenever the input changes")

	viper.BindPFlag("render.format", generateCmd.Flags().Lookup("format"))
	viper.BindPFlag("render.force", generateCmd.Flags().Lookup("force"))

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if _, err := render.For(cfg.Render.Format); err != nil {
		return err
	}
	opts := convert.Options{
		Format: cfg.Render.Format,
		Force:  cfg.Render.Force,
		Logger: logging.Logger(),
	}
	w := cmd.OutOrStdout()

	if batch, _ := cmd.Flags().GetBool("batch"); batch {
		inDir, _ := cmd.Flags().GetString("input-dir")
		outDir, _ := cmd.Flags().GetString("output-dir")
		if inDir == "" || outDir == "" {
			return fmt.Errorf("--batch requires --input-dir and --output-dir")
		}
		result, err := convert.ConvertBatch(inDir, outDir, opts, w)
		if err != nil {
			return err
		}
		if result.HasFailures() {
			return fmt.Errorf("%d file(s) failed conversion", result.Failed)
		}
		return nil
	}

	if len(args) != 2 {
		return fmt.Errorf("usage: genealogy-tex generate input.txt output.tex (or --batch --input-dir D --output-dir O)")
	}
	in, out := args[0], args[1]

	watching, _ := cmd.Flags().GetBool("watch")
	if err := generateOnce(in, out, opts, w); err != nil {
		if !watching {
			return err
		}
		opts.Logger.Error("initial generation failed", "input", in, "error", err)
	}
	if !watching {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := watch.New(in, watch.DefaultDebounce, opts.Logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	fmt.Fprintf(w, "Watching %s for changes (Ctrl-C to stop)\n", in)
	return watcher.Run(ctx, func() error {
		return generateOnce(in, out, opts, w)
	})
}

func generateOnce(in, out string, opts convert.Options, w io.Writer) error {
	rep, err := convert.Generate(in, out, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Successfully converted %s to %s (%s persons, %s)\n",
		in, out, humanize.Comma(int64(rep.Persons)), humanize.Bytes(uint64(rep.Bytes)))
	return nil
}
