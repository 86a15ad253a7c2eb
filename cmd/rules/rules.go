// Package rules handles the classifier rule commands
package rules

import (
	"fmt"

	"eip/cmd/root"

	"github.com/spf13/cobra"
)

var outputFile string

// Cmd represents the rules command
var Cmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the classifier rules",
	Long:  `Inspect the ordered keyword rules used to classify part descriptions.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the active rules in evaluation order",
	Long:  `List the active rules in evaluation order. The first matching rule wins.`,
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the active rules to a YAML file",
	Long:  `Write the active rules to a YAML rules file that can be edited and loaded with rules.file.`,
	Args:  cobra.NoArgs,
	RunE:  dumpFunc,
}

func init() {
	dumpCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Rules file to write (default is the configured rules.file)")
	Cmd.AddCommand(listCmd, dumpCmd)
}

func listFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	for i, r := range c.GetClassifier().Rules() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%2d. %s\n", i+1, r); err != nil {
			return err
		}
	}
	return nil
}

func dumpFunc(cmd *cobra.Command, args []string) error {
	c, err := root.GetContainer()
	if err != nil {
		return err
	}
	if err := c.GetStore().SaveRules(outputFile, c.GetClassifier().Rules()); err != nil {
		return err
	}
	target := outputFile
	if target == "" {
		target = c.GetConfig().Rules.File
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Rules written to %s\n", target)
	return err
}
