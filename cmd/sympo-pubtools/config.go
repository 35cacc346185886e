// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sympo-pubtools/internal/mail"
	"github.com/pdiddy/sympo-pubtools/internal/program"
	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Config prints the settings the commands would use after merging flag
defaults, the config file, and SYMPO_PUBTOOLS_* environment variables.
SMTP credentials are not part of it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := program.Marshal("config.yaml", pipelineConfig())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func pipelineConfig() types.PipelineConfig {
	return types.PipelineConfig{
		Sheet:   sheetConfig(),
		Stamp:   stampConfig(),
		Mail:    mailConfig(),
		Catalog: catalogConfig(),
		Logging: loggingConfig(),
	}
}

func sheetConfig() types.SheetConfig {
	return types.SheetConfig{
		TZOffsetHours:    viper.GetInt("sheet.tz_offset_hours"),
		PresentationTime: viper.GetDuration("sheet.presentation_time"),
		PlenaryTalkTime:  viper.GetDuration("sheet.plenary_talk_time"),
		SheetName:        viper.GetString("sheet.sheet_name"),
	}
}

func stampConfig() types.StampConfig {
	return types.StampConfig{
		Overlay:   viper.GetString("stamp.overlay"),
		InputDir:  viper.GetString("stamp.input_dir"),
		OutputDir: viper.GetString("stamp.output_dir"),
		Enclosure: types.Enclosure(viper.GetString("stamp.enclosure")),
		StartPage: viper.GetInt("stamp.start_page"),
	}
}

func mailConfig() types.MailConfig {
	cfg := types.MailConfig{
		DumpDir: viper.GetString("mail.dump_dir"),
		DryRun:  viper.GetBool("mail.dry_run"),
		Dump:    viper.GetBool("mail.dump"),
		Timeout: viper.GetDuration("mail.timeout"),
	}
	if cfg.DumpDir == "" {
		cfg.DumpDir = mail.DefaultDumpDir
	}
	return cfg
}

func catalogConfig() types.CatalogConfig {
	dir := viper.GetString("catalog.dir")
	if dir == "" {
		dir = "catalog"
	}
	return types.CatalogConfig{Dir: dir, MaxResults: viper.GetInt("catalog.max_results")}
}

func loggingConfig() types.LoggingConfig {
	return types.LoggingConfig{
		Level: viper.GetString("logging.level"),
		JSON:  viper.GetBool("logging.json"),
	}
}

func init() {
	rootCmd.AddCommand(configCmd)
}
