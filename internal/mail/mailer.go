// Package mail is the delivery boundary: it accepts a fully composed
// message and reports success or failure. Transport details, retries and
// authentication are entirely this package's concern; callers only see
// the Result.
package mail

import "context"

// Attachment is a binary file included with a message.
type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

// Message is a fully composed outbound email.
type Message struct {
	To         string
	CC         string
	Subject    string
	Text       string
	HTML       string
	Attachment *Attachment
}

// Result reports the outcome of a delivery attempt. Failures are data,
// not errors: the gateway never panics or leaks transport exceptions
// across the boundary.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Gateway delivers composed messages.
type Gateway interface {
	Send(ctx context.Context, msg Message) Result
}
