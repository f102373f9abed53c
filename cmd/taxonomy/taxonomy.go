// Package taxonomy handles inspection and export of the category taxonomy
package taxonomy

import (
	"fmt"
	"strings"

	"finize/txextract/cmd/root"
	"finize/txextract/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the taxonomy command
var Cmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Inspect or export the category taxonomy",
	Long: `Inspect or export the category taxonomy in use.

The taxonomy is read from taxonomy.file (default taxonomy.yaml in ., ./config
or $HOME/.config/txextract); the built-in taxonomy is used when no file exists.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories in priority order with their keywords",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		tax := c.GetTaxonomy()
		out := cmd.OutOrStdout()
		for i, name := range tax.Priority() {
			if _, err := fmt.Fprintf(out, "%2d. %s: %s\n", i+1, name, strings.Join(tax.Keywords(name), ", ")); err != nil {
				return err
			}
		}
		return nil
	},
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Write the active taxonomy as YAML",
	Long: `Write the active taxonomy as YAML, a starting point for a custom
taxonomy file.

Example:
  txextract taxonomy dump -o config/taxonomy.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output := root.SharedFlags.Output
		if output == "" {
			return fmt.Errorf("output file must be specified with --output")
		}
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		if err := store.NewTaxonomyStore(output, c.GetLogger()).Save(c.GetTaxonomy()); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Taxonomy written to %s\n", output)
		return err
	},
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(dumpCmd)
}
