package gameday

// ReportRequest is the input of ReportWorkflow.
type ReportRequest struct {
	Function Function `json:"function"`
	// Channels names the chat bots to post to; "logger" only logs the text.
	Channels []string `json:"channels"`
	// StrLimit is the maximum message length; longer reports are split on line boundaries.
	StrLimit int `json:"strLimit"`
}

// SendMessages is the input of the SendMessages activity: every message goes to one channel.
type SendMessages struct {
	Channel  string   `json:"channel"`
	Messages []string `json:"messages"`
}

// Notification is what ReportWorkflow exposes through its query handler.
type Notification struct {
	Function Function `json:"function"`
	Text     string   `json:"text"`
	Sent     int      `json:"sent"`
}
