package cmd

import (
	"github.com/spf13/cobra"

	"minisearch/internal/engine"
)

var termFreqCmd = &cobra.Command{
	Use:   "tf <word>",
	Short: "Report per-document term frequency for a word",
	Args:  cobra.ExactArgs(1),
	RunE:  runTermFreq,
}

func runTermFreq(cmd *cobra.Command, args []string) error {
	eng := newEngine()
	if err := loadStdin(eng); err != nil {
		return err
	}

	stats := eng.TermFrequency(args[0])
	emit(map[string]any{
		"success":   true,
		"word":      engine.Normalize(args[0]),
		"found":     len(stats) > 0,
		"documents": stats,
	})
	return nil
}
