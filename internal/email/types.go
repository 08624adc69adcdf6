package email

// Message is an outbound email.
type Message struct {
	To      []string
	Subject string
	Body    string
}
