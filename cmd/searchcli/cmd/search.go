package cmd

import "github.com/spf13/cobra"

var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search the corpus read from stdin for an exact keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	eng := newEngine()
	if err := loadStdin(eng); err != nil {
		return err
	}

	result := eng.Search(args[0])
	emit(map[string]any{
		"success":    true,
		"keyword":    result.Keyword,
		"found":      result.Found,
		"total_freq": result.TotalFreq,
		"results":    result.Hits,
	})
	return nil
}
