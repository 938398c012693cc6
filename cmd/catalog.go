package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/ui-showcase/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the component catalog",
	Long:  `Prints the resolved catalog: the catalog file, the discovered content directory, or the built-in catalog.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and their components",
	RunE:  runCatalogList,
}

var catalogWriteCmd = &cobra.Command{
	Use:   "write <path>",
	Short: "Write the resolved catalog to a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogWrite,
}

func init() {
	catalogListCmd.Flags().Bool("json", false, "Print the catalog as JSON")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogWriteCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(cat.File())
	}
	return printCatalog(cmd.OutOrStdout(), cat)
}

func runCatalogWrite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	if err := cat.Save(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Wrote %d components to %s\n", cat.Count(), args[0])
	return nil
}

func printCatalog(out io.Writer, cat *catalog.Catalog) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tID\tNAME\tPATH\tTAGS")
	for _, name := range cat.Categories() {
		comps := cat.ByCategory(name)
		if len(comps) == 0 {
			fmt.Fprintf(w, "%s\t-\t(empty)\t-\t-\n", name)
			continue
		}
		for _, d := range comps {
			tags := "-"
			if len(d.Tags) > 0 {
				tags = strings.Join(d.Tags, ",")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", name, d.ID, d.Name, d.Path, tags)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d components in %d categories\n", cat.Count(), len(cat.Categories()))
	return nil
}
