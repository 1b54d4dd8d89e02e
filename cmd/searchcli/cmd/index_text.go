package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var indexTextCmd = &cobra.Command{
	Use:   "index_text <name> <text>...",
	Short: "Index the given text as a named document",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runIndexText,
}

func runIndexText(cmd *cobra.Command, args []string) error {
	eng := newEngine()

	name := args[0]
	text := strings.Join(args[1:], " ")
	id := eng.IndexText(name, text)

	doc, _ := eng.GetDocument(id)
	emit(map[string]any{
		"success":    true,
		"doc_id":     doc.ID,
		"filename":   doc.Name,
		"word_count": doc.WordCount,
	})
	return nil
}
