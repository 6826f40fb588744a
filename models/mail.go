package models

// MailTemplate names one of the email templates known to the mailer.
type MailTemplate string

const (
	// MailTemplateVerify is sent after registration with the verification link.
	MailTemplateVerify MailTemplate = "verify"
	// MailTemplateForgot is sent on a password recovery request.
	MailTemplateForgot MailTemplate = "forgot"
)

// Mail is a single outgoing message. It is also the JSON body of a queued
// mail job, so the consumer can render it the same way the server would.
type Mail struct {
	To       string            `json:"to"`
	Template MailTemplate      `json:"template"`
	Data     map[string]string `json:"data"`
}
