package devotional

import "fmt"

// ShareText formats a devotional for messaging apps, WhatsApp-style bold and
// italics included.
func ShareText(content DevotionalContent) string {
	return fmt.Sprintf(
		"📖 *Devocional: Terapia com Deus*\n\n*%s*\n_\"%s\"_\n\n%s\n\n*Aplicação:* %s\n\n*Oração:* %s\n\n_Gerado pelo App Terapia com Deus_",
		content.Title,
		content.Verse,
		content.Reflection,
		content.Application,
		content.Prayer,
	)
}
