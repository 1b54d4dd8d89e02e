package cmd

import "github.com/spf13/cobra"

var prefixCmd = &cobra.Command{
	Use:   "prefix <prefix>",
	Short: "List indexed words starting with a prefix, lexicographically",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrefix,
}

func runPrefix(cmd *cobra.Command, args []string) error {
	eng := newEngine()
	if err := loadStdin(eng); err != nil {
		return err
	}

	result := eng.PrefixSearch(args[0])
	emit(map[string]any{
		"success":   true,
		"prefix":    result.Prefix,
		"found":     result.Found,
		"truncated": result.Truncated,
		"words":     result.Words,
	})
	return nil
}
