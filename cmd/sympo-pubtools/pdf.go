// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/sympo-pubtools/internal/program"
	"github.com/pdiddy/sympo-pubtools/internal/stamp"
	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Stamp page numbers on papers and merge the proceedings",
	Long: `Pdf numbers the pages of the accepted papers continuously in program
order, stamps an overlay (logo and symposium title) on each paper's first
page, and merges the stamped papers into one volume. Plenary talks have
no paper and are skipped.`,
}

var pdfStampCmd = &cobra.Command{
	Use:   "stamp",
	Short: "Stamp all papers of the session data",
	Long: `Stamp reads <paper id>.pdf from the input directory and writes
<session code><order>.pdf to the output directory. The page range of
every stamped paper is written back to the session data (or to --write-data).`,
	RunE: runPDFStamp,
}

func runPDFStamp(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	outData, _ := cmd.Flags().GetString("write-data")
	if outData == "" {
		outData = dataPath
	}

	sessions, err := program.LoadSessions(dataPath)
	if err != nil {
		return err
	}

	opts := stamp.OptionsFromConfig(stampConfig())
	stamped, result, err := stamp.StampAll(stamp.NewPDFStamper(), sessions, opts, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if err := program.SaveSessions(outData, stamped); err != nil {
		return err
	}
	logger.Info().Int("stamped", result.Stamped).Int("skipped", result.Skipped).
		Str("output", opts.OutputDir).Msg("stamped papers")
	return nil
}

var pdfStampOneCmd = &cobra.Command{
	Use:   "stamp-one <input.pdf> <output.pdf>",
	Short: "Stamp a single PDF",
	Args:  cobra.ExactArgs(2),
	RunE:  runPDFStampOne,
}

func runPDFStampOne(cmd *cobra.Command, args []string) error {
	cfg := stampConfig()
	opts := stamp.OptionsFromConfig(cfg)
	if start, _ := cmd.Flags().GetInt("start-page"); start > 0 {
		opts.StartPage = start
	}

	pages, err := stamp.StampSingle(stamp.NewPDFStamper(), args[0], args[1], opts.Overlay, opts.StartPage, opts.Enclosure)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stamped: %s (pp. %d-%d)\n", args[1], pages.From(), pages.To())
	return nil
}

var pdfMergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge the stamped papers into one PDF",
	RunE:  runPDFMerge,
}

func runPDFMerge(cmd *cobra.Command, args []string) error {
	dataPath, _ := cmd.Flags().GetString("data")
	dir, _ := cmd.Flags().GetString("dir")
	out, _ := cmd.Flags().GetString("output")
	if dir == "" {
		dir = viper.GetString("stamp.output_dir")
	}

	sessions, err := program.LoadSessions(dataPath)
	if err != nil {
		return err
	}
	n, err := stamp.MergeAll(stamp.NewPDFStamper(), sessions, dir, out, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	logger.Info().Int("files", n).Str("output", out).Msg("merged proceedings")
	return nil
}

func init() {
	pdfCmd.PersistentFlags().String("data", "data.json", "session data file")
	pdfCmd.PersistentFlags().String("overlay", "", "PDF stamped on the first page of each paper")
	pdfCmd.PersistentFlags().String("enclosure", string(types.EnclosureEnDash), "page number style: parens, en_dash, em_dash, minus, page, Page")
	bindFlags(pdfCmd, "stamp", "overlay", "enclosure")

	pdfStampCmd.Flags().String("input-dir", "pdfs", "directory of submitted <paper id>.pdf files")
	pdfStampCmd.Flags().String("output-dir", "stamped", "directory for stamped <code><order>.pdf files")
	pdfStampCmd.Flags().Int("start-page", 1, "page number of the first stamped page")
	pdfStampCmd.Flags().String("write-data", "", "session data output with page ranges (default: overwrite --data)")
	bindFlags(pdfStampCmd, "stamp", "input-dir", "output-dir", "start-page")

	pdfStampOneCmd.Flags().Int("start-page", 0, "page number of the first page (default: stamp.start_page or 1)")

	pdfMergeCmd.Flags().String("dir", "", "directory of stamped files (default: stamp.output_dir)")
	pdfMergeCmd.Flags().StringP("output", "o", "proceedings.pdf", "merged output")

	pdfCmd.AddCommand(pdfStampCmd)
	pdfCmd.AddCommand(pdfStampOneCmd)
	pdfCmd.AddCommand(pdfMergeCmd)

	rootCmd.AddCommand(pdfCmd)
}
