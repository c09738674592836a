package domain

// EmailMessage is a rendered notification ready for the mail robot.
// Transport is external; the pipeline only produces the payload.
type EmailMessage struct {
	To          string   `json:"to"`
	Subject     string   `json:"subject"`
	Body        string   `json:"body"`
	Attachments []string `json:"attachments"`
}
