// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the genealogy-tex CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/genealogy-tex/internal/logging"
	"github.com/pdiddy/genealogy-tex/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the genealogy-tex CLI.
var rootCmd = &cobra.Command{
	Use:   "genealogy-tex",
	Short: "Convert genealogy record books into LaTeX",
	Long: `genealogy-tex converts plain-text genealogy record books into LaTeX
for a typeset family book. Persons are recognized by anchor markers
(##ANCHOR:i<id>##) or numbered header lines, grouped by generation, and
rendered with their notes, biographies, marriages and children.

Subcommands: generate converts books, split cuts large books into chunks at
anchor boundaries, and catalog keeps a searchable SQLite index of persons.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		level, err := logging.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		format, err := logging.ParseFormat(cfg.Log.Format)
		if err != nil {
			return err
		}
		logging.Init(level, format, cmd.ErrOrStderr())
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./genealogy-tex.yaml or ~/.config/genealogy-tex/genealogy-tex.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func setDefaults() {
	viper.SetDefault("render.format", string(types.OutputLaTeX))
	viper.SetDefault("split.lines", 7000)
	viper.SetDefault("split.prefix", "split")
	viper.SetDefault("split.lookahead", 200)
	viper.SetDefault("catalog.dir", "catalog")
	viper.SetDefault("catalog.max_results", 20)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("genealogy-tex")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "genealogy-tex"))
		}
	}

	viper.SetEnvPrefix("GENEALOGY_TEX")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the typed configuration from viper. Flags bound
// to a key override the config file, which overrides the defaults.
func loadConfig() types.Config {
	return types.Config{
		Render: types.RenderConfig{
			Format: types.OutputFormat(strings.ToLower(viper.GetString("render.format"))),
			Force:  viper.GetBool("render.force"),
		},
		Split: types.SplitConfig{
			Lines:     viper.GetInt("split.lines"),
			Prefix:    viper.GetString("split.prefix"),
			Lookahead: viper.GetInt("split.lookahead"),
		},
		Catalog: types.CatalogConfig{
			Dir:        viper.GetString("catalog.dir"),
			MaxResults: viper.GetInt("catalog.max_results"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
