// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sympo-pubtools/internal/program"
	"github.com/pdiddy/sympo-pubtools/internal/tex"
	"github.com/pdiddy/sympo-pubtools/pkg/types"
)

var texCmd = &cobra.Command{
	Use:   "tex",
	Short: "Render LaTeX program listings",
	Long: `Tex renders the LaTeX fragments included by the program book: the paper
listing grouped by session, the special-session organizer blocks, and the
per-timeslot session panels of the schedule grid. --templates replaces the
built-in fragment templates with a directory of .tex files.`,
}

var texPapersCmd = &cobra.Command{
	Use:   "papers",
	Short: "Render the paper listing",
	RunE:  runTexPapers,
}

func runTexPapers(cmd *cobra.Command, args []string) error {
	r, sessions, err := texInputs(cmd)
	if err != nil {
		return err
	}
	return writeTex(cmd, func(w io.Writer) error { return r.Papers(w, sessions) })
}

var texSpecialCmd = &cobra.Command{
	Use:   "special",
	Short: "Render the special-session organizer blocks",
	RunE:  runTexSpecial,
}

func runTexSpecial(cmd *cobra.Command, args []string) error {
	orgPath, _ := cmd.Flags().GetString("organizers")
	prefixWords, _ := cmd.Flags().GetInt("prefix-words")

	r, sessions, err := texInputs(cmd)
	if err != nil {
		return err
	}
	organizers, err := program.LoadOrganizers(orgPath)
	if err != nil {
		return err
	}
	return writeTex(cmd, func(w io.Writer) error {
		return r.SpecialSessions(w, sessions, organizers, prefixWords)
	})
}

var texPanelsCmd = &cobra.Command{
	Use:   "panels",
	Short: "Render one session panel file per timeslot",
	Long: `Panels writes <group>.tex for every timeslot group of session codes of
the form <group>-<room>. Rooms between --first-room and --final-room
without a session get a \nosession placeholder.`,
	RunE: runTexPanels,
}

func runTexPanels(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	first, err := roomFlag(cmd, "first-room")
	if err != nil {
		return err
	}
	final, err := roomFlag(cmd, "final-room")
	if err != nil {
		return err
	}

	r, sessions, err := texInputs(cmd)
	if err != nil {
		return err
	}
	paths, err := r.Panels(dir, sessions, first, final)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), "wrote:", p)
	}
	logger.Info().Int("files", len(paths)).Str("dir", dir).Msg("wrote session panels")
	return nil
}

func roomFlag(cmd *cobra.Command, name string) (rune, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("--%s: want a single room letter, got %q", name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func writeTex(cmd *cobra.Command, render func(io.Writer) error) error {
	path, _ := cmd.Flags().GetString("output")
	w, closeOut, err := openOutput(cmd, path)
	if err != nil {
		return err
	}
	if err := render(w); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}
	logger.Info().Str("output", path).Msg("wrote LaTeX")
	return nil
}

// texInputs loads the renderer and the session data.
func texInputs(cmd *cobra.Command) (*tex.Renderer, []types.Session, error) {
	dir, _ := cmd.Flags().GetString("templates")
	dataPath, _ := cmd.Flags().GetString("data")

	r, err := tex.NewRenderer(dir)
	if err != nil {
		return nil, nil, err
	}
	sessions, err := program.LoadSessions(dataPath)
	if err != nil {
		return nil, nil, err
	}
	return r, sessions, nil
}

func init() {
	texCmd.PersistentFlags().String("data", "data.json", "session data file")
	texCmd.PersistentFlags().String("templates", "", "directory of fragment templates (default: built-in)")

	texPapersCmd.Flags().StringP("output", "o", "papers.tex", "output file (- for stdout)")

	texSpecialCmd.Flags().String("organizers", "organizers.json", "special-session organizer file")
	texSpecialCmd.Flags().Int("prefix-words", 1, "leading words dropped from session names")
	texSpecialCmd.Flags().StringP("output", "o", "special_sessions.tex", "output file (- for stdout)")

	texPanelsCmd.Flags().String("dir", "spanels", "output directory")
	texPanelsCmd.Flags().String("first-room", "", "first room letter (default: lowest room used)")
	texPanelsCmd.Flags().String("final-room", "", "final room letter (default: highest room used)")

	texCmd.AddCommand(texPapersCmd)
	texCmd.AddCommand(texSpecialCmd)
	texCmd.AddCommand(texPanelsCmd)

	rootCmd.AddCommand(texCmd)
}
