// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sympo-pubtools CLI. Each stage
// of the publication pipeline is a command group: sheet, metadata, tex,
// pdf, revise, mail, and catalog.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sympo-pubtools/internal/logging"
	"github.com/pdiddy/sympo-pubtools/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// loadedSecrets holds SMTP credentials loaded from .secrets/ at startup.
	loadedSecrets map[string]string

	// logger is the run logger, configured before any command runs.
	logger = zerolog.Nop()
)

// rootCmd is the base command for the sympo-pubtools CLI.
var rootCmd = &cobra.Command{
	Use:   "sympo-pubtools",
	Short: "Publication tools for symposium proceedings",
	Long: `sympo-pubtools turns the submission system's export of accepted papers
into the program data of a symposium and produces everything built from
it: bibliographic metadata CSVs, LaTeX program listings, page-numbered
PDFs and the merged proceedings, revision-request emails, and a
searchable program catalog.

Session data flows between the commands as JSON (or YAML) files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lc := loggingConfig()
		l, err := logging.Setup(lc.Level, lc.JSON)
		if err != nil {
			return err
		}
		logger = l.With().Str("command", cmd.CommandPath()).Logger()

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sympo-pubtools.yaml or ~/.config/sympo-pubtools/sympo-pubtools.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON lines")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of credential files")

	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("logging.json", rootCmd.PersistentFlags().Lookup("log-json"))
	viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: reading .env:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sympo-pubtools")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sympo-pubtools"))
		}
	}

	viper.SetEnvPrefix("SYMPO_PUBTOOLS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlags binds each named flag of cmd, local or persistent, to the viper
// key prefix.flag, so the config file and SYMPO_PUBTOOLS_* variables supply
// their defaults.
func bindFlags(cmd *cobra.Command, prefix string, names ...string) {
	for _, name := range names {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		key := prefix + "." + strings.ReplaceAll(name, "-", "_")
		if err := viper.BindPFlag(key, flag); err != nil {
			panic(fmt.Sprintf("binding flag %s: %v", name, err))
		}
	}
}

// openOutput opens path for writing, or stdout when path is "-".
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
