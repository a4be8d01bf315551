package week

import (
	"regexp"
	"strings"

	"bus-route/pkg/views"
)

// DescriptionLength is how many characters of the essay seed the meta description
const DescriptionLength = 155

var paragraphBreak = regexp.MustCompile(`\r?\n([ \t]*\r?\n)+`)

// SplitEssay splits text on blank lines, dropping empty paragraphs
func SplitEssay(text string) []string {
	var paragraphs []string
	for _, p := range paragraphBreak.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// Paragraphs returns the sanitized paragraphs of an essay
func Paragraphs(text string) []string {
	split := SplitEssay(text)
	out := make([]string, 0, len(split))
	for _, p := range split {
		out = append(out, views.Paragraph(p))
	}
	return out
}

// FormatEssay wraps each paragraph of text in its own <p> element
func FormatEssay(text string) string {
	var b strings.Builder
	for _, p := range Paragraphs(text) {
		b.WriteString("<p>")
		b.WriteString(p)
		b.WriteString("</p>")
	}
	return b.String()
}

// MetaDescription condenses the start of an essay into a one-line summary
func MetaDescription(essay string) string {
	if essay == "" {
		return ""
	}
	runes := []rune(essay)
	if len(runes) > DescriptionLength {
		runes = runes[:DescriptionLength]
	}
	desc := strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(string(runes))
	return strings.TrimSpace(desc) + "..."
}
