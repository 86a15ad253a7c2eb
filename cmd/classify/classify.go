// Package classify handles the description classification command
package classify

import (
	"fmt"
	"strings"

	"eip/cmd/root"

	"github.com/spf13/cobra"
)

var explain bool

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify <description>",
	Short: "Classify a part description into a component category",
	Long:  `Classify a part description into a component category using the keyword rules.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  classifyFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&explain, "explain", "e", false, "Show which rule matched")
}

func classifyFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}

	description := strings.Join(args, " ")
	category, index := c.GetClassifier().Explain(description)

	out := cmd.OutOrStdout()
	if !explain {
		_, err = fmt.Fprintln(out, category)
		return err
	}
	if index == 0 {
		_, err = fmt.Fprintf(out, "%s (no rule matched)\n", category)
		return err
	}
	rule := c.GetClassifier().Rules()[index-1]
	_, err = fmt.Fprintf(out, "%s (rule %d: %s)\n", category, index, rule)
	return err
}
