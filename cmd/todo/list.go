package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/matt-steen/todo-list/pkg/db"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List todos with optional filtering and sorting",
	RunE:  runList,
}

var (
	listKeyword  string
	listStatuses []string
	listSort     string
	listOrder    string
)

func init() {
	listCmd.Flags().StringVar(&listKeyword, "keyword", "", "Only show todos whose content contains this keyword")
	listCmd.Flags().StringSliceVar(&listStatuses, "status", nil,
		"Only show todos in these statuses (e.g. NOT_STARTED,IN_PROGRESS)")
	listCmd.Flags().StringVar(&listSort, "sort", string(db.SortByCreatedAt),
		"Sort field: content, dueDate, status, or createdAt")
	listCmd.Flags().StringVar(&listOrder, "order", string(db.OrderDesc), "Sort order: asc or desc")
}

func runList(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	defer closeDB()

	filter := db.Filter{Keyword: listKeyword}
	for _, status := range listStatuses {
		filter.Status = append(filter.Status, db.Status(status))
	}

	sort := db.Sort{Field: db.SortField(listSort), Order: db.SortOrder(listOrder)}

	todos, err := svc.ListTodos(cmd.Context(), filter, &sort)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tCONTENT\tSTATUS\tDUE\tTAGS")

	for _, todo := range todos {
		due := ""
		if todo.DueDate != nil {
			due = todo.DueDate.Format("2006-01-02")
		}

		fmt.Fprintf(
			writer, "%s\t%s\t%s\t%s\t%s\n",
			todo.ID, todo.Content, todo.Status, due, strings.Join(todo.TagNames(), ","),
		)
	}

	return writer.Flush()
}
