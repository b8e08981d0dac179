package devotional

import (
	"fmt"
	"strings"
)

// stripMarkdown removes emphasis markers and collapses double line breaks so
// the narrator does not read symbols aloud.
func stripMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"*", "",
		"_", "",
		"#", "",
	)
	cleaned := replacer.Replace(text)
	return strings.ReplaceAll(cleaned, "\n\n", ". ")
}

// NarrationScript stitches the devotional into the text handed to the
// text-to-speech service, with spoken section headings.
func NarrationScript(content DevotionalContent) string {
	return fmt.Sprintf(
		"%s.\n\nVersículo de hoje: %s.\n\n%s\n\nAplicação prática: %s.\n\nVamos orar?\n%s",
		content.Title,
		content.Verse,
		stripMarkdown(content.Reflection),
		stripMarkdown(content.Application),
		stripMarkdown(content.Prayer),
	)
}
