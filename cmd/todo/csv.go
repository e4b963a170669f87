package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matt-steen/todo-list/pkg/csv"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import todos from a CSV file",
	Long: `Import todos from a CSV file with the header content,status,dueDate,tags.

Every row is validated before anything is written; if any row fails, the
whole import is rejected and each failing row is reported with its row
number.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all todos as CSV to a file or stdout",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExport,
}

func runImport(cmd *cobra.Command, args []string) error {
	text, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("error reading %s: %w", args[0], err)
	}

	svc, closeDB, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	defer closeDB()

	result, err := svc.ImportCSV(cmd.Context(), string(text))
	if err != nil {
		var rowErrs csv.RowErrors
		if errors.As(err, &rowErrs) {
			for _, rowErr := range rowErrs {
				fmt.Fprintln(os.Stderr, rowErr.Error())
			}

			return fmt.Errorf("no todos imported: %d rows failed validation", len(rowErrs))
		}

		return err
	}

	fmt.Printf("Imported %d todos\n", result.SuccessCount)

	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	defer closeDB()

	text, err := svc.ExportCSV(cmd.Context())
	if err != nil {
		return err
	}

	if len(args) == 1 {
		if err := os.WriteFile(args[0], []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("error writing %s: %w", args[0], err)
		}

		return nil
	}

	fmt.Println(text)

	return nil
}
