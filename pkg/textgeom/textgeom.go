// Package textgeom implements the character-level geometry engine that maps
// text selections on a rendered PDF page to highlight rectangles.
//
// This package provides:
//
// - Per-character bounding box extraction from a page's decoded text runs
// - Matching of a selected string against the extracted character sequence
// - Merging of matched character boxes into minimal visual highlight regions
//
// The pipeline runs in that order: a page's text runs are expanded into a
// PageCharacterMap, a selection is located in the map with FindTextBoxes,
// and the resulting boxes are coalesced with MergeBoxes into one rectangle
// per contiguous run of text on a line.
//
// Key Types:
//
// - TextRun: one positioned string from the page's decoded text content
// - CharacterBox: the top-left-origin bounding box of a single character
// - PageCharacterMap: run index to ordered character boxes for one page
// - MergeConfig: tolerances used when coalescing adjacent boxes
//
// Main Functions:
//
// - CharacterBoxes: expands text runs into a PageCharacterMap
// - FindTextBoxes: locates a normalized selection in the character map
// - MergeBoxes: coalesces adjacent character boxes into highlight regions
//
// All functions are pure: character maps are recomputed whenever the page is
// re-rendered and are never persisted.
package textgeom
