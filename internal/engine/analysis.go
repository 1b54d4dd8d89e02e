package engine

import "iter"

// separators is the fixed set of token boundaries: whitespace plus the
// punctuation the indexer discards between words.
const separators = " \t\n\r.,;:!?\"'()[]{}"

var separatorTable = buildSeparatorTable()

func buildSeparatorTable() [256]bool {
	var table [256]bool
	for i := 0; i < len(separators); i++ {
		table[separators[i]] = true
	}
	return table
}

// Tokens lazily yields the raw tokens of text, split on the separator set.
// Tokens are emitted verbatim; callers normalize them before indexing. The
// sequence is restartable: ranging over it again rescans the text.
func Tokens(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		for i := 0; i < len(text); i++ {
			if separatorTable[text[i]] {
				if start >= 0 {
					if !yield(text[start:i]) {
						return
					}
					start = -1
				}
				continue
			}
			if start < 0 {
				start = i
			}
		}
		if start >= 0 {
			yield(text[start:])
		}
	}
}

// Normalize maps a raw token to its canonical indexed form: every byte that
// is not an ASCII letter is dropped and the rest are lowercased, preserving
// order. Normalize is pure and idempotent.
func Normalize(token string) string {
	// Fast path: already canonical, no allocation needed.
	canonical := true
	for i := 0; i < len(token); i++ {
		if token[i] < 'a' || token[i] > 'z' {
			canonical = false
			break
		}
	}
	if canonical {
		return token
	}

	out := make([]byte, 0, len(token))
	for i := 0; i < len(token); i++ {
		c := token[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c)
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		}
	}
	return string(out)
}
