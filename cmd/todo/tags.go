package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List and manage tags",
	RunE:  runTagsList,
}

var tagsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new tag",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsAdd,
}

var tagsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename an existing tag",
	Args:  cobra.ExactArgs(2),
	RunE:  runTagsRename,
}

var tagsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a tag, detaching it from all todos",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagsRm,
}

func init() {
	tagsCmd.AddCommand(tagsAddCmd, tagsRenameCmd, tagsRmCmd)
}

func runTagsList(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	defer closeDB()

	tags, err := svc.ListTags(cmd.Context())
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME")

	for _, tag := range tags {
		fmt.Fprintf(writer, "%s\t%s\n", tag.ID, tag.Name)
	}

	return writer.Flush()
}

func runTagsAdd(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	defer closeDB()

	tag, err := svc.CreateTag(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Created tag %s (%s)\n", tag.Name, tag.ID)

	return nil
}

func runTagsRename(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	defer closeDB()

	tag, err := svc.RenameTag(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("Renamed tag %s to %s\n", tag.ID, tag.Name)

	return nil
}

func runTagsRm(cmd *cobra.Command, args []string) error {
	svc, closeDB, err := openService(cmd.Context())
	if err != nil {
		return err
	}

	defer closeDB()

	if err := svc.DeleteTag(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted tag %s\n", args[0])

	return nil
}
