// Package arabic normalizes Arabic text for search and display.
package arabic

import "strings"

// RemoveDiacritics strips tashkeel marks and the tatweel from Arabic text.
func RemoveDiacritics(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isDiacritic(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeSearch folds Arabic letter variants so search input matches stored
// text regardless of orthography: alef variants collapse to bare alef, teh
// marbuta to heh, yeh variants to yeh. Diacritics and extra whitespace are
// removed.
func NormalizeSearch(text string) string {
	if text == "" {
		return ""
	}
	text = RemoveDiacritics(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case 'أ', 'إ', 'آ':
			b.WriteRune('ا')
		case 'ة':
			b.WriteRune('ه')
		case 'ى':
			b.WriteRune('ي')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeDisplay folds letter variants while preserving diacritics, which
// readers expect to see in rendered text.
func NormalizeDisplay(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case 'أ', 'إ', 'آ':
			b.WriteRune('ا')
		case 'ة':
			b.WriteRune('ه')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// isDiacritic reports whether the rune is an Arabic tashkeel mark
// (U+064B..U+0652), the superscript alef (U+0670), or the tatweel (U+0640).
func isDiacritic(r rune) bool {
	if r >= 0x064B && r <= 0x0652 {
		return true
	}
	return r == 0x0670 || r == 0x0640
}
