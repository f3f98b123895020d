package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/translator"
)

var (
	headerColor = color.New(color.Bold)
	typeColor   = map[entities.ListType]*color.Color{
		entities.TypeTitle:  color.New(color.FgCyan),
		entities.TypeAuthor: color.New(color.FgYellow),
	}
)

func listsCmd(withStore func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   "lists",
		Short: "Show all lists",
		Args:  cobra.NoArgs,
		RunE: withStore(func(cmd *cobra.Command, store Store, _ []string) error {
			lists, err := store.GetAllLists()
			if err != nil {
				return fmt.Errorf("failed to load lists: %w", err)
			}
			if len(lists) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No lists.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, headerColor.Sprint("ID\tTYPE\tNAME\tLABEL\tMODIFIED"))
			for _, l := range lists {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					l.Key,
					typeColor[l.ListType].Sprint(l.ListType),
					l.DialogTitle,
					l.ComponentLabel,
					translator.Format(l.ModifyDate),
				)
			}
			return w.Flush()
		}),
	}
}

func listCmd(withStore func(runFunc) func(*cobra.Command, []string) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Work with a single list",
	}

	var (
		listType string
		columns  string
		estimate bool
	)
	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Print the items of a list as a table",
		Long: `Print the items of a list as a table of the requested columns.

Title columns:  ` + joinColumns(translator.TitleVocabulary().Columns()) + `
Author columns: ` + joinColumns(translator.AuthorVocabulary().Columns()),
		Args: cobra.ExactArgs(1),
		RunE: withStore(func(cmd *cobra.Command, store Store, args []string) error {
			lt := entities.ListType(strings.ToUpper(listType))
			if !lt.Valid() {
				return fmt.Errorf("invalid --type %q: use TITLE or AUTHOR", listType)
			}
			list, err := store.GetListByName(lt, args[0])
			if err != nil {
				return fmt.Errorf("failed to load list: %w", err)
			}
			return showList(cmd, store, list, columns, estimate)
		}),
	}
	show.Flags().StringVarP(&listType, "type", "t", string(entities.TypeTitle), "list type: TITLE or AUTHOR")
	show.Flags().StringVarP(&columns, "columns", "c", "", "comma separated columns (default depends on type)")
	show.Flags().BoolVar(&estimate, "estimate", false, "add the estimated availability of titles")

	cmd.AddCommand(show)
	return cmd
}

func showList(cmd *cobra.Command, store Store, list *entities.KCLSList, raw string, estimate bool) error {
	var (
		header []translator.Column
		rows   [][]string
	)
	switch list.ListType {
	case entities.TypeTitle:
		tr, err := translator.ForTitles(columnsOr(raw, translator.DefaultTitleColumns)...)
		if err != nil {
			return err
		}
		titles, err := store.GetTitlesForList(list.DialogTitle)
		if err != nil {
			return fmt.Errorf("failed to load titles: %w", err)
		}
		header = tr.Columns()
		rows = formatRows(tr.Rows(titles))
		if estimate {
			header[len(header)-1] = "available"
			for i, t := range titles {
				rows[i] = append(rows[i], availability(t))
			}
		}
	case entities.TypeAuthor:
		tr, err := translator.ForAuthors(columnsOr(raw, translator.DefaultAuthorColumns)...)
		if err != nil {
			return err
		}
		authors, err := store.GetAuthorsForList(list.DialogTitle)
		if err != nil {
			return fmt.Errorf("failed to load authors: %w", err)
		}
		header = tr.Columns()
		rows = formatRows(tr.Rows(authors))
	}
	if !estimate || list.ListType != entities.TypeTitle {
		header = header[:len(header)-1]
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", headerColor.Sprint(list.DialogTitle), typeColor[list.ListType].Sprint(list.ListType))
	if len(rows) == 0 {
		fmt.Fprintln(out, "No items.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	names := make([]string, len(header))
	for i, c := range header {
		names[i] = strings.ToUpper(string(c))
	}
	fmt.Fprintln(w, headerColor.Sprint(strings.Join(names, "\t")))
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	return w.Flush()
}

func columnsOr(raw string, fallback []translator.Column) []translator.Column {
	if strings.TrimSpace(raw) == "" {
		return fallback
	}
	return translator.ParseColumns(raw)
}

// formatRows renders every value but the hidden entity slot.
func formatRows(rows [][]any) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row)-1)
		for j := range cells {
			cells[j] = translator.Format(row[j])
		}
		out[i] = cells
	}
	return out
}

func availability(t *entities.Title) string {
	when, ok := t.EstimatedAvailability()
	if !ok {
		return "-"
	}
	return translator.Format(when)
}

func joinColumns(cols []translator.Column) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = string(c)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
