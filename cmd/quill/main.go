// quill is a command-line companion for the annotation store of the reader.
//
// It inspects and maintains the BadgerDB store the desktop application
// writes: listing documents and their annotations, exporting collections as
// JSON or YAML, deleting individual annotations or notes, and flattening a
// document's annotations into a standalone PDF overlay.
//
// Configuration:
//
// An optional YAML configuration file adjusts rendering defaults:
//
//	layer_name: "Annotations"
//	line_width: 2
//	highlight_opacity: 0.3
//	font_size: 14
//	log_level: "info"
//
// Usage:
//
//	quill --store ~/.quill/annotations list
//	quill --store ~/.quill/annotations list <documentKey>
//	quill --store ~/.quill/annotations export <documentKey> --format yaml
//	quill --store ~/.quill/annotations delete <documentKey> <annotationID>
//	quill --store ~/.quill/annotations flatten <documentKey> -o overlay.pdf
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/quillpdf/quill/pkg/annotstore"
	"github.com/quillpdf/quill/pkg/logging"
)

var (
	storeDir   string
	configPath string
	logLevel   string

	toolCfg toolConfig
)

type toolConfig struct {
	LayerName        string  `yaml:"layer_name"`
	LineWidth        float64 `yaml:"line_width"`
	HighlightOpacity float64 `yaml:"highlight_opacity"`
	FontSize         float64 `yaml:"font_size"`
	LogLevel         string  `yaml:"log_level"`
}

// loadToolConfig reads the optional YAML configuration file.
func loadToolConfig(path string) (toolConfig, error) {
	var tc toolConfig
	if path == "" {
		return tc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return tc, err
	}
	if err := yaml.Unmarshal(data, &tc); err != nil {
		return tc, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return tc, nil
}

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "Inspect and maintain the reader's annotation store",
	Long: `quill works directly on the annotation store of the reader.

It lists documents and annotations, exports collections as JSON or YAML,
deletes annotations and legacy notes, and flattens annotations into a PDF.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		toolCfg, err = loadToolConfig(configPath)
		if err != nil {
			return err
		}

		level := logLevel
		if level == "" && toolCfg.LogLevel != "" {
			level = toolCfg.LogLevel
		}
		logCfg := logging.DefaultConfig()
		if level != "" {
			logCfg.Level = level
		}
		logging.Init(logCfg)
		return nil
	},
}

// openStore opens the BadgerDB store the commands operate on.
func openStore() (*annotstore.Badger, error) {
	if storeDir == "" {
		return nil, fmt.Errorf("--store is required")
	}
	store, err := annotstore.NewBadger(annotstore.Config{Dir: storeDir})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storeDir, "store", "", "Path to the annotation store directory (required)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to an optional YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(flattenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
