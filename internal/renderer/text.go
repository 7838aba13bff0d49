package renderer

import (
	"strings"

	"golang.org/x/image/font"
)

// textWidth measures the horizontal advance of s in pixels.
func textWidth(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// wrapText breaks text into lines that fit within maxWidth pixels. Explicit
// newlines start new paragraphs and blank paragraphs are kept as empty lines.
// A word wider than maxWidth gets a line of its own rather than being split.
func wrapText(face font.Face, text string, maxWidth int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{""}
	}

	var out []string
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimRight(para, " \t\r")
		if para == "" {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range strings.Split(para, " ") {
			candidate := strings.TrimSpace(line + " " + word)
			if textWidth(face, candidate) <= maxWidth || line == "" {
				line = candidate
			} else {
				out = append(out, line)
				line = word
			}
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
