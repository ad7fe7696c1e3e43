package models

// EmailMessage is one outbound notification. HTML is optional; providers
// fall back to Text.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}
