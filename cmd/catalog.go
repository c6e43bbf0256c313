package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"goonj/internal/catalog"
	"goonj/internal/domain"
)

var catalogJSON bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the event catalog",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printCatalog(cmd.OutOrStdout(), catalog.Default(), catalogJSON)
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogJSON, "json", false, "print as JSON")
}

func printCatalog(w io.Writer, c domain.Catalog, asJSON bool) error {
	if asJSON {
		type category struct {
			Category domain.Category        `json:"category"`
			Events   []domain.EventOffering `json:"events"`
		}
		var out []category
		for _, cat := range c.ListCategories() {
			out = append(out, category{Category: cat, Events: c.ListEvents(cat)})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE")
	for _, cat := range c.ListCategories() {
		for _, e := range c.ListEvents(cat) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", e.ID, e.Name, e.Category, e.Price)
		}
	}
	return tw.Flush()
}
