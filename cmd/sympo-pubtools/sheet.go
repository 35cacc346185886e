// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/sympo-pubtools/internal/program"
	"github.com/pdiddy/sympo-pubtools/internal/sheet"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Build and update session data",
	Long: `Sheet converts the submission system's export into session data and
merges partial updates into existing session data.`,
}

// --- convert subcommand ---

var sheetConvertCmd = &cobra.Command{
	Use:   "convert <export.csv|export.xlsx>",
	Short: "Convert a submission export into session data",
	Long: `Convert reads a CSV or Excel export, keeps the rows whose Decision is
Accept, groups the papers into sessions, and writes the sessions sorted by
session code. Paper start times follow from the session start and the
presentation and plenary talk lengths.`,
	Args: cobra.ExactArgs(1),
	RunE: runSheetConvert,
}

func runSheetConvert(cmd *cobra.Command, args []string) error {
	sessions, err := sheet.Convert(args[0], sheet.OptionsFromConfig(sheetConfig()), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	if err := program.SaveSessions(out, sessions); err != nil {
		return err
	}
	logger.Info().Str("input", args[0]).Str("output", out).Msg("wrote session data")
	return nil
}

// --- update subcommand ---

var sheetUpdateCmd = &cobra.Command{
	Use:   "update <data.json> <update.json>",
	Short: "Merge a partial update into session data",
	Long: `Update matches each entry of the update file to a session by category
and category order and overwrites the fields it names. Papers listed in an
entry are matched by id. The merged data replaces the input unless
--output is given.`,
	Args: cobra.ExactArgs(2),
	RunE: runSheetUpdate,
}

func runSheetUpdate(cmd *cobra.Command, args []string) error {
	dataPath, updatePath := args[0], args[1]

	sessions, err := program.LoadSessions(dataPath)
	if err != nil {
		return err
	}
	updates, err := program.LoadUpdates(updatePath)
	if err != nil {
		return err
	}
	merged, err := program.UpdateSessions(sessions, updates, dataPath, updatePath)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		out = dataPath
	}
	if err := program.SaveSessions(out, merged); err != nil {
		return err
	}
	logger.Info().Int("updates", len(updates)).Str("output", out).Msg("merged session updates")
	return nil
}

func init() {
	sheetConvertCmd.Flags().StringP("output", "o", "data.json", "session data output (.json or .yaml)")
	sheetConvertCmd.Flags().Int("tz-offset-hours", 0, "UTC offset of the times in the export")
	sheetConvertCmd.Flags().Duration("presentation-time", 0, "slot length of a regular paper (default 20m)")
	sheetConvertCmd.Flags().Duration("plenary-talk-time", 0, "slot length of a plenary talk (default 1h)")
	sheetConvertCmd.Flags().String("sheet-name", "", "worksheet of an .xlsx export (default: first sheet)")
	bindFlags(sheetConvertCmd, "sheet", "tz-offset-hours", "presentation-time", "plenary-talk-time", "sheet-name")

	sheetUpdateCmd.Flags().StringP("output", "o", "", "merged output (default: overwrite the data file)")

	sheetCmd.AddCommand(sheetConvertCmd)
	sheetCmd.AddCommand(sheetUpdateCmd)

	rootCmd.AddCommand(sheetCmd)
}
