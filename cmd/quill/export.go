package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quillpdf/quill/pkg/annotation"
)

var (
	exportFormat string
	exportOutput string
)

// exportDocument is the serialized shape of one document's annotation data.
type exportDocument struct {
	DocumentKey string                  `json:"documentKey" yaml:"documentKey"`
	Annotations []annotation.Annotation `json:"annotations" yaml:"annotations"`
	Notes       []annotation.Note       `json:"notes" yaml:"notes"`
}

var exportCmd = &cobra.Command{
	Use:   "export <documentKey>",
	Short: "Export a document's annotations and notes as JSON or YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := cmd.Context()
		documentKey := args[0]

		annotations, err := store.Get(ctx, documentKey)
		if err != nil {
			return err
		}
		notes, err := store.Notes(ctx, documentKey)
		if err != nil {
			return err
		}

		doc := exportDocument{
			DocumentKey: documentKey,
			Annotations: annotations,
			Notes:       notes,
		}

		var out []byte
		switch exportFormat {
		case "json":
			out, err = json.MarshalIndent(doc, "", "  ")
		case "yaml":
			out, err = yaml.Marshal(doc)
		default:
			return fmt.Errorf("unknown format %q, want json or yaml", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", documentKey, err)
		}

		if exportOutput == "" {
			fmt.Println(string(out))
			return nil
		}
		if err := os.WriteFile(exportOutput, out, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d annotations, %d notes)\n", exportOutput, len(annotations), len(notes))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
}
