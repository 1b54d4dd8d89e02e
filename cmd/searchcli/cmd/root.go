// Package cmd implements the searchcli subcommands: a one-shot JSON
// interface over the index engine. Query commands read the corpus from
// stdin, index it as a single document, then print the query result as one
// JSON object on stdout.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"minisearch/internal/engine"
)

var (
	docName     string
	prefixLimit int
)

var rootCmd = &cobra.Command{
	Use:           "searchcli",
	Short:         "minisearch — in-memory full-text index with a JSON CLI",
	Long:          "Indexes plain text into a prefix trie with exact-lookup hashing and answers frequency, prefix, and multi-keyword queries as JSON.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		emit(map[string]any{"success": false, "error": err.Error()})
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&docName, "doc-name", "uploaded_doc", "document name for text read from stdin")
	rootCmd.PersistentFlags().IntVar(&prefixLimit, "prefix-limit", 0, "maximum prefix results (0 uses the engine default)")

	rootCmd.AddCommand(indexTextCmd)
	rootCmd.AddCommand(freqCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(prefixCmd)
	rootCmd.AddCommand(multiCmd)
	rootCmd.AddCommand(termFreqCmd)
}

func newEngine() *engine.Engine {
	return engine.New(engine.Options{PrefixLimit: prefixLimit})
}

// loadStdin indexes everything on stdin as one document, matching the
// one-shot contract: corpus in, query out.
func loadStdin(eng *engine.Engine) error {
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	eng.IndexText(docName, string(content))
	return nil
}

func emit(payload any) {
	_ = json.NewEncoder(os.Stdout).Encode(payload)
}
