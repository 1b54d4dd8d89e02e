package cmd

import "github.com/spf13/cobra"

var multiCmd = &cobra.Command{
	Use:   "multi <keyword>...",
	Short: "Find documents containing every given keyword",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runMulti,
}

func runMulti(cmd *cobra.Command, args []string) error {
	eng := newEngine()
	if err := loadStdin(eng); err != nil {
		return err
	}

	result := eng.SearchAll(args)
	emit(map[string]any{
		"success":   true,
		"keywords":  result.Keywords,
		"found":     result.Found,
		"documents": result.Docs,
	})
	return nil
}
