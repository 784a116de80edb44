package textgeom

import "strings"

// NormalizeWhitespace collapses every run of whitespace in s to a single
// space and trims leading and trailing whitespace. Both the selection string
// and the accumulated page text are normalized this way before comparison,
// so callers must apply it to selections obtained from the UI layer.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FindTextBoxes locates the leftmost contiguous run of character boxes whose
// concatenated, whitespace-normalized text equals the already-normalized
// target string.
//
// The character map is flattened in run and character order. From each
// candidate start index the window is extended greedily one character at a
// time while the accumulated text remains a prefix of the target, and
// accepted as soon as it normalizes to an exact match. Worst case is
// O(n*m), which is acceptable at page scale.
//
// A nil slice is returned when no window matches; callers are expected to
// fall back to approximate positioning derived from on-screen selection
// rectangles.
func FindTextBoxes(m PageCharacterMap, target string) []CharacterBox {
	if target == "" {
		return nil
	}

	flat := m.Flatten()

	for i := 0; i < len(flat); i++ {
		var acc strings.Builder
		var window []CharacterBox

		for j := i; j < len(flat); j++ {
			acc.WriteString(flat[j].Text)
			window = append(window, flat[j])

			normalized := NormalizeWhitespace(acc.String())
			if normalized == target {
				return window
			}
			if !strings.HasPrefix(target, normalized) {
				break
			}
		}
	}

	return nil
}
