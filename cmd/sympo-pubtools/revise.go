// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/sympo-pubtools/internal/program"
	"github.com/pdiddy/sympo-pubtools/internal/revise"
)

var reviseCmd = &cobra.Command{
	Use:   "revise",
	Short: "Collect revision requests and track revised papers",
	Long: `Revise turns the reviewers' check sheet into revision requests and
reports which requested papers have come back revised.`,
}

var reviseSheetCmd = &cobra.Command{
	Use:   "sheet <check.csv>",
	Short: "Build revision requests from the check sheet",
	Long: `Sheet reads the check sheet (PDF_NAME, EXTRA_COMMENTS and one flag
column per error key), resolves every PDF name to its paper in the session
data, and writes one revision request per row. The error texts come from
the message table (ERR_KEY, ERR_MSG).`,
	Args: cobra.ExactArgs(1),
	RunE: runReviseSheet,
}

func runReviseSheet(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	msgPath, _ := cmd.Flags().GetString("messages")
	out, _ := cmd.Flags().GetString("output")

	msgs, err := revise.LoadErrorMessages(msgPath)
	if err != nil {
		return err
	}
	sessions, err := program.LoadSessions(dataPath)
	if err != nil {
		return err
	}
	items, err := revise.LoadSheet(args[0], msgs, sessions, dataPath)
	if err != nil {
		return err
	}
	if err := program.SaveReviseItems(out, items); err != nil {
		return err
	}
	logger.Info().Int("requests", len(items)).Str("output", out).Msg("wrote revision requests")
	return nil
}

var reviseStatusCmd = &cobra.Command{
	Use:   "status <revised-dir>",
	Short: "Summarize which requested papers were revised",
	Long: `Status compares the requested paper ids with the <paper id>.pdf files
found anywhere below the revised directory. With --missing the requests
still waiting for a revision are written to a file, ready for a reminder
email.`,
	Args: cobra.ExactArgs(1),
	RunE: runReviseStatus,
}

func runReviseStatus(cmd *cobra.Command, args []string) error {
	itemsPath, _ := cmd.Flags().GetString("items")
	missingPath, _ := cmd.Flags().GetString("missing")

	items, err := program.LoadReviseItems(itemsPath)
	if err != nil {
		return err
	}
	revised, err := revise.RevisedIDs(args[0])
	if err != nil {
		return err
	}

	summary := revise.Summarize(revise.AllIDs(items), revised)
	summary.Report(cmd.OutOrStdout())

	if missingPath == "" {
		return nil
	}
	missing, err := revise.ItemsByIDs(items, summary.Missing)
	if err != nil {
		return err
	}
	if err := program.SaveReviseItems(missingPath, missing); err != nil {
		return err
	}
	logger.Info().Int("missing", len(missing)).Str("output", missingPath).Msg("wrote missing revision requests")
	return nil
}

func init() {
	reviseSheetCmd.Flags().String("data", "data.json", "session data file")
	reviseSheetCmd.Flags().String("messages", "error_messages.csv", "error message table")
	reviseSheetCmd.Flags().StringP("output", "o", "revise.json", "revision request output")

	reviseStatusCmd.Flags().String("items", "revise.json", "revision request file")
	reviseStatusCmd.Flags().String("missing", "", "write the still-missing requests to this file")

	reviseCmd.AddCommand(reviseSheetCmd)
	reviseCmd.AddCommand(reviseStatusCmd)

	rootCmd.AddCommand(reviseCmd)
}
