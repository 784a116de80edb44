package pdfoverlay

// FlattenConfig holds user options for burning annotations into a PDF
type FlattenConfig struct {
	LayerName string // Base name of annotation layer (page number will be appended)
	LineStyle LineStyleConfig
	Font      FontConfig
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() FlattenConfig {
	return FlattenConfig{
		LayerName: "Annotations", // Will be formatted as "Annotations (Page X)" in the final PDF
		LineStyle: DefaultLineStyle,
		Font:      DefaultFont,
	}
}

// LineStyleConfig contains stroke settings for highlight line styles
type LineStyleConfig struct {
	Width            float64 // Stroke width of underline and strikethrough
	SquiggleAmpl     float64 // Vertical amplitude of the squiggly style
	SquigglePeriod   float64 // Horizontal period of the squiggly style
	HighlightOpacity float64 // Fallback fill opacity when an annotation carries none
}

// DefaultLineStyle mirrors the on-screen rendering of the reader
var DefaultLineStyle = LineStyleConfig{
	Width:            2,
	SquiggleAmpl:     1.5,
	SquigglePeriod:   4,
	HighlightOpacity: 0.3,
}

// FontConfig contains font settings for text and stamp annotations
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Default font size
	AscentRatio float64 // Vertical positioning ratio
}

// DefaultFont sets the default font to Helvetica which every PDF viewer carries
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        14,
	AscentRatio: 0.718,
}
