package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/muurk/geoadmin/internal/export"
	"github.com/muurk/geoadmin/internal/model"
	"github.com/muurk/geoadmin/internal/ui"
)

func init() {
	stateCmd.AddCommand(stateListCmd, stateAddCmd, stateUpdateCmd, stateDeleteCmd, stateExportCmd, stateLookupCmd)
	rootCmd.AddCommand(stateCmd)

	stateListCmd.Flags().IntVar(&pageNumber, "page", 1, "Page to show (1-based)")
	stateExportCmd.Flags().IntVar(&pageNumber, "page", 1, "Page to export (1-based)")
	stateDeleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without asking")

	for _, c := range []*cobra.Command{stateAddCmd, stateUpdateCmd} {
		c.Flags().Int64Var(&countryFlag, "country", 0, "ID of the country the state belongs to (see 'geoadmin state lookup')")
		_ = c.MarkFlagRequired("country")
	}
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Manage states",
	Long: `List, add, update, delete and export states.

Every state belongs to a country; 'geoadmin state lookup' lists the
countries to choose from.`,
}

var stateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of states",
	Example: `  geoadmin state list
  geoadmin state list --page 2 --format compact`,
	Args: cobra.NoArgs,
	RunE: runStateList,
}

func runStateList(cmd *cobra.Command, args []string) error {
	pageNo, err := pageIndex(pageNumber)
	if err != nil {
		return err
	}

	page, err := newClient().ListStates(cmd.Context(), pageNo, settings.UI.PageSize)
	if err != nil {
		return failure(cmd, "Listing states", err)
	}

	out := cmd.OutOrStdout()
	switch outputFormat {
	case "json":
		return writeJSON(cmd, page)
	case "compact":
		for _, s := range page.Content {
			fmt.Fprintln(out, s.FormatCompact())
		}
		return nil
	}

	rows := make([][]string, 0, page.Len())
	for _, s := range page.Content {
		rows = append(rows, []string{strconv.FormatInt(s.ID, 10), s.Name, s.CountryName()})
	}
	p := ui.NewPrinter(out)
	p.PrintHeader("State Lists", "geoadmin state list", map[string]string{"API": settings.API.URL})
	p.PrintTable([]string{"ID", "Name", "Country"}, rows, pageLabel(pageNo, page.TotalPages))
	return nil
}

var stateAddCmd = &cobra.Command{
	Use:     "add <name> --country <id>",
	Short:   "Add a state",
	Example: `  geoadmin state add Nevada --country 1`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft := model.StateDraft{Name: args[0], CountryID: countryFlag}
		if err := draft.Validate(); err != nil {
			return err
		}

		created, err := newClient().CreateState(cmd.Context(), draft)
		if err != nil {
			return failure(cmd, "Adding state", err)
		}
		return printSaved(cmd, "State added", created, draft)
	},
}

var stateUpdateCmd = &cobra.Command{
	Use:     "update <id> <name> --country <id>",
	Short:   "Update a state",
	Example: `  geoadmin state update 12 "Nevada" --country 1`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		draft := model.StateDraft{Name: args[1], CountryID: countryFlag}
		if err := draft.Validate(); err != nil {
			return err
		}

		updated, err := newClient().UpdateState(cmd.Context(), id, draft)
		if err != nil {
			return failure(cmd, "Updating state", err)
		}
		return printSaved(cmd, "State updated", updated, draft)
	},
}

var stateDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a state",
	Example: `  geoadmin state delete 12 --yes`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		if !confirmDelete(cmd, "Delete state", id) {
			return nil
		}

		if err := newClient().DeleteState(cmd.Context(), id); err != nil {
			return failure(cmd, "Deleting state", err)
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintSuccess("State deleted", map[string]string{"ID": args[0]})
		return nil
	},
}

var stateExportCmd = &cobra.Command{
	Use:   "export <pdf|xlsx>",
	Short: "Export one page of states",
	Long: `Export one page of states to state_list.pdf or States.xlsx in the
export directory. An existing file is overwritten.`,
	Example: `  geoadmin state export xlsx --page 3`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(args[0])
		if err != nil {
			return err
		}
		pageNo, err := pageIndex(pageNumber)
		if err != nil {
			return err
		}

		page, err := newClient().ListStates(cmd.Context(), pageNo, settings.UI.PageSize)
		if err != nil {
			return failure(cmd, "Listing states", err)
		}
		return saveExport(cmd, format, export.StateTable(page.Content))
	},
}

var stateLookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "List every country a state can belong to",
	Long: `Fetch the full, unpaginated country list used by the country selector
of the State screen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		countries, err := newClient().AllCountries(cmd.Context())
		if err != nil {
			return failure(cmd, "Fetching countries", err)
		}

		switch outputFormat {
		case "json":
			return writeJSON(cmd, countries)
		case "compact":
			for _, c := range countries {
				fmt.Fprintln(cmd.OutOrStdout(), c.FormatCompact())
			}
			return nil
		}

		rows := make([][]string, 0, len(countries))
		for _, c := range countries {
			rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name})
		}
		ui.NewPrinter(cmd.OutOrStdout()).PrintTable([]string{"ID", "Name"}, rows, fmt.Sprintf("%d countries", len(countries)))
		return nil
	},
}
