package devotional

import (
	"strings"
	"time"
)

// DevotionalContent is one generated devotional unit, exactly the shape the
// generation service is instructed to return.
type DevotionalContent struct {
	Title       string `json:"title"`
	Verse       string `json:"verse"`
	Reflection  string `json:"reflection"`
	Application string `json:"application"`
	Prayer      string `json:"prayer"`
	IsFallback  bool   `json:"is_fallback,omitempty"`
}

// Complete reports whether every required field carries text.
func (c DevotionalContent) Complete() bool {
	for _, field := range []string{c.Title, c.Verse, c.Reflection, c.Application, c.Prayer} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// StoredDevotional is the local cache envelope. Valid only while Date equals
// the current calendar day in the reference timezone.
type StoredDevotional struct {
	Date    string            `json:"date"`
	Content DevotionalContent `json:"content"`
}

// DailyDevotional is the shared backend record: one per calendar date, shared
// by every reader of the app on that day.
type DailyDevotional struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Title       string    `json:"title"`
	Verse       string    `json:"verse"`
	Reflection  string    `json:"reflection"`
	Application string    `json:"application"`
	Prayer      string    `json:"prayer"`
	AudioURL    *string   `json:"audio_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// Content converts the shared record back into displayable content. A record
// adopted from the backend is by definition not a fallback.
func (d DailyDevotional) Content() DevotionalContent {
	return DevotionalContent{
		Title:       d.Title,
		Verse:       d.Verse,
		Reflection:  d.Reflection,
		Application: d.Application,
		Prayer:      d.Prayer,
	}
}

// TopicsList holds the emotional themes a reader can pick instead of the
// daily devotional.
var TopicsList = []string{
	"Ansiedade",
	"Medo",
	"Esperança",
	"Fé",
	"Descanso",
	"Gratidão",
	"Perdão",
	"Confiança em Deus",
	"Relacionamentos",
	"Autoestima & Identidade",
	"Luto & Consolo",
	"Cansaço Mental",
	"Sabedoria nas Decisões",
}

// DateKey formats t as the calendar-date key used by both stores.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
