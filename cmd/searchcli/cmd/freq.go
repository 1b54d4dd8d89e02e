package cmd

import "github.com/spf13/cobra"

var freqCmd = &cobra.Command{
	Use:   "freq <word>",
	Short: "Report a word's frequency across the corpus read from stdin",
	Args:  cobra.ExactArgs(1),
	RunE:  runFreq,
}

func runFreq(cmd *cobra.Command, args []string) error {
	eng := newEngine()
	if err := loadStdin(eng); err != nil {
		return err
	}

	result := eng.Frequency(args[0])
	emit(map[string]any{
		"success":    true,
		"word":       result.Word,
		"found":      result.Found,
		"total_freq": result.TotalFreq,
		"documents":  result.Documents,
	})
	return nil
}
