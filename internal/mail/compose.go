package mail

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"

	"github.com/christianselig/contact-relay/internal/domain"
)

const subjectPrefix = "Portfolio Contact: Message from "

const htmlTemplate = `
<h3>New Contact Form Submission</h3>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Message:</strong></p>
<p style="white-space: pre-wrap;">%s</p>
`

var policy = bluemonday.UGCPolicy()

// Compose builds the message the operator receives for a submission. It is
// sent from and to the operator's own mailbox, with replies going to the
// visitor.
func Compose(cs domain.ContactSubmission, operator string) *Message {
	return &Message{
		From:    operator,
		ReplyTo: ReplyTo(cs.Name, cs.Email),
		To:      []string{operator},
		Subject: subjectPrefix + cs.Name,
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", cs.Name, cs.Email, cs.Message),
		HTML: fmt.Sprintf(htmlTemplate,
			policy.Sanitize(cs.Name),
			policy.Sanitize(cs.Email),
			policy.Sanitize(cs.Message),
		),
	}
}

// ReplyTo formats a display name and address as `"name" <email>`.
func ReplyTo(name, email string) string {
	return `"` + name + `" <` + email + `>`
}
