package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/valutatrade/hubrun/internal/models"
)

var listOutput string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the declared tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadGraph()
		if err != nil {
			return err
		}
		return writeTasks(os.Stdout, cfg.Tasks, listOutput)
	},
}

func init() {
	listCmd.Flags().StringVar(&listOutput, "output", "table", "Output format: table, json, yaml")
}

func writeTasks(w io.Writer, tasks []models.Task, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	case "yaml":
		data, err := yaml.Marshal(tasks)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "table":
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tDEPENDS ON\tCOMMANDS")
		for _, t := range tasks {
			action := strings.Join(t.Commands, " && ")
			if t.SyntaxDir != "" {
				// Syntax steps expand first at run time, so they lead here too.
				compile := fmt.Sprintf("compile *.py under %s", t.SyntaxDir)
				if action == "" {
					action = compile
				} else {
					action = compile + " && " + action
				}
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\n", t.Name, strings.Join(t.DependsOn, ", "), action)
		}
		return tw.Flush()
	default:
		return &usageError{err: fmt.Errorf("unknown output format %q", format)}
	}
}
