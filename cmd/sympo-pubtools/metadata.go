// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/sympo-pubtools/internal/metadata"
	"github.com/pdiddy/sympo-pubtools/internal/program"
	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Generate bibliographic metadata CSVs",
	Long: `Metadata writes the session, article, and common metadata CSVs for the
publisher's bibliographic database. Each CSV starts with the two header
rows of its template file. A CSL-YAML bibliography of the papers can be
written as well.`,
}

var metadataSessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Write the session metadata CSV",
	Long: `Sessions writes one row per session. Special sessions take their
organizers from the organizer file; a special session without organizers
is an error.`,
	RunE: runMetadataSessions,
}

func runMetadataSessions(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	orgPath, _ := cmd.Flags().GetString("organizers")
	commonPath, _ := cmd.Flags().GetString("common")

	sessions, err := program.LoadSessions(dataPath)
	if err != nil {
		return err
	}
	var organizers []types.SSOrganizer
	if orgPath != "" {
		if organizers, err = program.LoadOrganizers(orgPath); err != nil {
			return err
		}
	}
	common, err := program.LoadCommon(commonPath)
	if err != nil {
		return err
	}

	records, err := metadata.BuildSessions(sessions, organizers, common, orgPath)
	if err != nil {
		return err
	}
	return writeMetadataCSV(cmd, records)
}

var metadataPapersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Write the article metadata CSV",
	Long: `Papers writes one row per paper. Awards are looked up by paper number;
papers without an award get an empty awards cell.`,
	RunE: runMetadataPapers,
}

func runMetadataPapers(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	awardsPath, _ := cmd.Flags().GetString("awards")

	sessions, err := program.LoadSessions(dataPath)
	if err != nil {
		return err
	}
	var awards []types.Award
	if awardsPath != "" {
		if awards, err = program.LoadAwards(awardsPath); err != nil {
			return err
		}
	}

	records, err := metadata.BuildPapers(sessions, awards)
	if err != nil {
		return err
	}
	return writeMetadataCSV(cmd, records)
}

var metadataCommonCmd = &cobra.Command{
	Use:   "common",
	Short: "Write the common metadata CSV",
	RunE:  runMetadataCommon,
}

func runMetadataCommon(cmd *cobra.Command, args []string) error {
	commonPath, _ := cmd.Flags().GetString("common")
	common, err := program.LoadCommon(commonPath)
	if err != nil {
		return err
	}
	record, err := metadata.BuildCommon(common)
	if err != nil {
		return err
	}
	return writeMetadataCSV(cmd, []metadata.MetaCommon{record})
}

func writeMetadataCSV[R metadata.Record](cmd *cobra.Command, records []R) error {
	out, _ := cmd.Flags().GetString("output")
	tmpl, _ := cmd.Flags().GetString("template")
	if err := metadata.WriteCSV(out, tmpl, records); err != nil {
		return err
	}
	logger.Info().Int("records", len(records)).Str("output", out).Msg("wrote metadata CSV")
	return nil
}

var metadataCSLCmd = &cobra.Command{
	Use:   "csl",
	Short: "Write a CSL-YAML bibliography of the papers",
	RunE:  runMetadataCSL,
}

func runMetadataCSL(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	commonPath, _ := cmd.Flags().GetString("common")
	outPath, _ := cmd.Flags().GetString("output")

	sessions, err := program.LoadSessions(dataPath)
	if err != nil {
		return err
	}
	common, err := program.LoadCommon(commonPath)
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(cmd, outPath)
	if err != nil {
		return err
	}
	if err := metadata.WriteCSL(w, sessions, common); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func init() {
	metadataCmd.PersistentFlags().String("data", "data.json", "session data file")
	metadataCmd.PersistentFlags().String("common", "common.json", "common conference information file")

	metadataSessionsCmd.Flags().String("organizers", "", "special-session organizer file")
	metadataSessionsCmd.Flags().String("template", "templates/session.csv", "CSV template with the two header rows")
	metadataSessionsCmd.Flags().StringP("output", "o", "meta_session.csv", "output CSV")

	metadataPapersCmd.Flags().String("awards", "", "award file")
	metadataPapersCmd.Flags().String("template", "templates/article.csv", "CSV template with the two header rows")
	metadataPapersCmd.Flags().StringP("output", "o", "meta_article.csv", "output CSV")

	metadataCommonCmd.Flags().String("template", "templates/common.csv", "CSV template with the two header rows")
	metadataCommonCmd.Flags().StringP("output", "o", "meta_common.csv", "output CSV")

	metadataCSLCmd.Flags().StringP("output", "o", "-", "output file (- for stdout)")

	metadataCmd.AddCommand(metadataSessionsCmd)
	metadataCmd.AddCommand(metadataPapersCmd)
	metadataCmd.AddCommand(metadataCommonCmd)
	metadataCmd.AddCommand(metadataCSLCmd)

	rootCmd.AddCommand(metadataCmd)
}
