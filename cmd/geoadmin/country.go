package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/muurk/geoadmin/internal/export"
	"github.com/muurk/geoadmin/internal/model"
	"github.com/muurk/geoadmin/internal/ui"
)

// Entity command flags
var (
	pageNumber  int
	assumeYes   bool
	countryFlag int64
)

func init() {
	countryCmd.AddCommand(countryListCmd, countryAddCmd, countryUpdateCmd, countryDeleteCmd, countryExportCmd)
	rootCmd.AddCommand(countryCmd)

	countryListCmd.Flags().IntVar(&pageNumber, "page", 1, "Page to show (1-based)")
	countryExportCmd.Flags().IntVar(&pageNumber, "page", 1, "Page to export (1-based)")
	countryDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without asking")
}

var countryCmd = &cobra.Command{
	Use:   "country",
	Short: "Manage countries",
	Long:  `List, add, update, delete and export countries.`,
}

var countryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of countries",
	Example: `  # First page
  geoadmin country list

  # Third page, ten per page, as JSON
  geoadmin country list --page 3 --page-size 10 --format json`,
	Args: cobra.NoArgs,
	RunE: runCountryList,
}

func runCountryList(cmd *cobra.Command, args []string) error {
	pageNo, err := pageIndex(pageNumber)
	if err != nil {
		return err
	}

	page, err := newClient().ListCountries(cmd.Context(), pageNo, settings.UI.PageSize)
	if err != nil {
		return failure(cmd, "Listing countries", err)
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json":
		return writeJSON(cmd, page)
	case "compact":
		for _, c := range page.Content {
			fmt.Fprintln(out, c.FormatCompact())
		}
		return nil
	}

	rows := make([][]string, 0, page.Len())
	for _, c := range page.Content {
		rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name})
	}
	p := ui.NewPrinter(out)
	p.PrintHeader("Country Lists", "geoadmin country list", map[string]string{"API": settings.API.URL})
	p.PrintTable([]string{"ID", "Name"}, rows, pageLabel(pageNo, page.TotalPages))
	return nil
}

var countryAddCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Add a country",
	Example: `  geoadmin country add "New Zealand"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := model.CountryDraft{Name: args[0]}
		if err := draft.Validate(); err != nil {
			return err
		}

		created, err := newClient().CreateCountry(cmd.Context(), draft)
		if err != nil {
			return failure(cmd, "Adding country", err)
		}
		return printSaved(cmd, "Country added", created, draft)
	},
}

var countryUpdateCmd = &cobra.Command{
	Use:     "update <id> <name>",
	Short:   "Rename a country",
	Example: `  geoadmin country update 4 "Republic of Chile"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		draft := model.CountryDraft{Name: args[1]}
		if err := draft.Validate(); err != nil {
			return err
		}

		updated, err := newClient().UpdateCountry(cmd.Context(), id, draft)
		if err != nil {
			return failure(cmd, "Updating country", err)
		}
		return printSaved(cmd, "Country updated", updated, draft)
	},
}

var countryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a country",
	Long: `Delete a country by ID.

On a terminal you are asked to confirm unless --yes is given.`,
	Example: `  geoadmin country delete 4 --yes`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !confirmDelete(cmd, "Delete country", id) {
			return nil
		}

		if err := newClient().DeleteCountry(cmd.Context(), id); err != nil {
			return failure(cmd, "Deleting country", err)
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Country deleted", map[string]string{"ID": args[0]})
		return nil
	},
}

var countryExportCmd = &cobra.Command{
	Use:   "export <pdf|xlsx>",
	Short: "Export one page of countries",
	Long: `Export one page of countries to Countries.pdf or Countries.xlsx in the
export directory. An existing file is overwritten.`,
	Example: `  geoadmin country export pdf
  geoadmin country export xlsx --page 2 --export-dir ./reports`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(args[0])
		if err != nil {
			return err
		}
		pageNo, err := pageIndex(pageNumber)
		if err != nil {
			return err
		}

		page, err := newClient().ListCountries(cmd.Context(), pageNo, settings.UI.PageSize)
		if err != nil {
			return failure(cmd, "Listing countries", err)
		}
		return saveExport(cmd, format, export.CountryTable(page.Content))
	},
}

// --- shared helpers for the entity commands ---

// pageIndex converts a 1-based --page value to the API's 0-based page number
func pageIndex(page int) (int, error) {
	if page < 1 {
		return 0, fmt.Errorf("--page must be 1 or more, got %d", page)
	}
	return page - 1, nil
}

func pageLabel(pageNo, totalPages int) string {
	return fmt.Sprintf("Page %d of %d", pageNo+1, totalPages)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return id, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}

// detailer is implemented by the model's entities
type detailer interface {
	FormatDetailed() string
	FormatCompact() string
}

// printSaved reports a created or updated record. The backend may answer
// with an empty body, in which case the submitted draft is shown.
func printSaved[T detailer](cmd *cobra.Command, title string, saved *T, draft any) error {
	if saved == nil {
		if outputFormat == "json" {
			return writeJSON(cmd, draft)
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess(title, map[string]string{"Body": "(empty response)"})
		return nil
	}

	switch outputFormat {
	case "json":
		return writeJSON(cmd, saved)
	case "compact":
		fmt.Fprintln(cmd.OutOrStdout(), (*saved).FormatCompact())
	default:
		p := ui.NewPrinter(cmd.OutOrStdout())
		p.PrintSuccess(title, nil)
		p.Print((*saved).FormatDetailed())
	}
	return nil
}

// confirmDelete asks before deleting when stdin is a terminal
func confirmDelete(cmd *cobra.Command, title string, id int64) bool {
	if assumeYes || !ui.IsTerminal(os.Stdin) {
		return true
	}
	return ui.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), title, map[string]string{
		"ID":  strconv.FormatInt(id, 10),
		"API": settings.API.URL,
	})
}

func saveExport(cmd *cobra.Command, format export.Format, table export.Table) error {
	path, err := export.Save(settings.Export.Dir, format, table)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("Export written", map[string]string{
		"File":    path,
		"Records": strconv.Itoa(len(table.Rows)),
	})
	return nil
}
