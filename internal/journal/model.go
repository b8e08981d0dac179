package journal

// Note is one user journal entry. Notes are created and deleted, never
// edited in place.
type Note struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Text string `json:"text"`
}

type SaveNoteRequest struct {
	Text string `json:"text"`
}
