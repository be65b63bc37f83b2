// Package rules manages the keyword rules file
package rules

import (
	"fmt"
	"io"
	"strings"

	"jose/statement-ingest/cmd/root"
	"jose/statement-ingest/internal/categorizer"
	"jose/statement-ingest/internal/logging"
	"jose/statement-ingest/internal/store"

	"github.com/spf13/cobra"
)

var output string

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and export the keyword classification rules",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the keyword groups in evaluation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		classifier, err := loadClassifier(root.AppConfig.Rules.File, root.Log)
		if err != nil {
			return err
		}
		List(cmd.OutOrStdout(), classifier)
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active keyword groups to a rules file",
	Long: `Export writes the active keyword groups, built-in ones included when no rules
file is configured, as YAML. Edit the file and point rules.file at it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		classifier, err := loadClassifier(root.AppConfig.Rules.File, root.Log)
		if err != nil {
			return err
		}
		return Export(output, classifier, root.Log)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&output, "output", "o", store.DefaultRulesFile, "Rules file to write")
	Cmd.AddCommand(listCmd, exportCmd)
}

func loadClassifier(file string, log logging.Logger) (*categorizer.Classifier, error) {
	groups, err := store.NewRulesStore(file, log).LoadGroups()
	if err != nil {
		return nil, err
	}
	return categorizer.NewClassifier(groups), nil
}

// List prints one line per keyword group.
func List(w io.Writer, classifier *categorizer.Classifier) {
	for i, g := range classifier.Groups() {
		_, _ = fmt.Fprintf(w, "%2d. %-12s %-10s %-16s %s\n", i+1, g.Name, g.Type, g.Category, strings.Join(g.Keywords, ", "))
	}
}

// Export saves the classifier's groups to file.
func Export(file string, classifier *categorizer.Classifier, log logging.Logger) error {
	if err := store.NewRulesStore(file, log).SaveGroups(classifier.Groups()); err != nil {
		return err
	}
	log.Info("Keyword rules exported",
		logging.Field{Key: logging.FieldOutputFile, Value: file},
		logging.Field{Key: logging.FieldCount, Value: len(classifier.Groups())})
	return nil
}
