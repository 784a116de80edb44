package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [documentKey]",
	Short: "List documents, or the annotations of one document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()

		if len(args) == 0 {
			keys, err := store.Documents(ctx)
			if err != nil {
				return err
			}
			if len(keys) == 0 {
				fmt.Println("no documents in store")
				return nil
			}
			for _, key := range keys {
				annotations, err := store.Get(ctx, key)
				if err != nil {
					return err
				}
				notes, err := store.Notes(ctx, key)
				if err != nil {
					return err
				}
				fmt.Printf("%s\t%d annotations\t%d notes\n", key, len(annotations), len(notes))
			}
			return nil
		}

		documentKey := args[0]
		annotations, err := store.Get(ctx, documentKey)
		if err != nil {
			return err
		}
		if len(annotations) == 0 {
			fmt.Printf("no annotations for %s\n", documentKey)
			return nil
		}
		for _, a := range annotations {
			base := a.Base()
			created := time.UnixMilli(base.Metadata.Timestamp).Format(time.RFC3339)
			fmt.Printf("%s\t%s\tpage %d\t%s\n", base.ID, a.Type(), base.PageNumber, created)
		}
		return nil
	},
}
