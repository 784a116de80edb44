package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteNote bool

var deleteCmd = &cobra.Command{
	Use:   "delete <documentKey> <id>",
	Short: "Delete an annotation (or, with --note, a legacy note) from a document",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		documentKey, id := args[0], args[1]

		if deleteNote {
			if err := store.DeleteNote(ctx, documentKey, id); err != nil {
				return err
			}
			fmt.Printf("deleted note %s from %s\n", id, documentKey)
			return nil
		}

		if err := store.Delete(ctx, documentKey, id); err != nil {
			return err
		}
		fmt.Printf("deleted annotation %s from %s\n", id, documentKey)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteNote, "note", false, "Delete a legacy note key instead of an annotation id")
}
