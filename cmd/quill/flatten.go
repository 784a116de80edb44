package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quillpdf/quill/pkg/pdfoverlay"
)

var (
	flattenOutput     string
	flattenPages      int
	flattenPageWidth  float64
	flattenPageHeight float64
)

var flattenCmd = &cobra.Command{
	Use:   "flatten <documentKey>",
	Short: "Render a document's annotations into a standalone PDF overlay",
	Long: `flatten draws every annotation of a document onto blank pages and writes
the result as a PDF. Each page's marks live on a toggleable layer. The page
count and size must match the source document for the overlay to line up.`,
	Args: cobra.ExactArgs(1),
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
		if len(annotations) == 0 {
			return fmt.Errorf("no annotations for %s", documentKey)
		}

		pages := flattenPages
		if pages == 0 {
			// Default to the highest annotated page.
			for _, a := range annotations {
				if p := a.Base().PageNumber; p > pages {
					pages = p
				}
			}
		}
		pageSizes := make([]pdfoverlay.PageSize, pages)
		for i := range pageSizes {
			pageSizes[i] = pdfoverlay.PageSize{Width: flattenPageWidth, Height: flattenPageHeight}
		}

		cfg := pdfoverlay.DefaultConfig()
		if toolCfg.LayerName != "" {
			cfg.LayerName = toolCfg.LayerName
		}
		if toolCfg.LineWidth > 0 {
			cfg.LineStyle.Width = toolCfg.LineWidth
		}
		if toolCfg.HighlightOpacity > 0 {
			cfg.LineStyle.HighlightOpacity = toolCfg.HighlightOpacity
		}
		if toolCfg.FontSize > 0 {
			cfg.Font.Size = toolCfg.FontSize
		}

		data, err := pdfoverlay.Flatten(pageSizes, annotations, cfg)
		if err != nil {
			return err
		}
		if err := os.WriteFile(flattenOutput, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d pages, %d annotations)\n", flattenOutput, pages, len(annotations))
		return nil
	},
}

func init() {
	flattenCmd.Flags().StringVarP(&flattenOutput, "output", "o", "annotations.pdf", "Output PDF path")
	flattenCmd.Flags().IntVar(&flattenPages, "pages", 0, "Page count (default: highest annotated page)")
	flattenCmd.Flags().Float64Var(&flattenPageWidth, "page-width", 595, "Page width in points")
	flattenCmd.Flags().Float64Var(&flattenPageHeight, "page-height", 842, "Page height in points")
}
