package chat

// Message is one turn of a chat session. Sessions live on the client; the
// API receives the recent history with each request and persists nothing.
type Message struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsUser    bool   `json:"is_user"`
	Timestamp int64  `json:"timestamp"`
}

type MessageRequest struct {
	Message string    `json:"message"`
	History []Message `json:"history"`
}
