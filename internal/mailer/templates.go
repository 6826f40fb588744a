package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/MKhiriev/fast-home/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var subjects = map[models.MailTemplate]string{
	models.MailTemplateVerify: "Verify your FastHome account",
	models.MailTemplateForgot: "Reset your FastHome password",
}

// Renderer turns a [models.Mail] into a subject and an HTML body.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("mail").Option("missingkey=zero").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing mail templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render returns the subject and HTML body of mail.
func (r *Renderer) Render(mail models.Mail) (string, string, error) {
	subject, ok := subjects[mail.Template]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, mail.Template)
	}

	var body bytes.Buffer
	if err := r.templates.ExecuteTemplate(&body, string(mail.Template)+".html", mail.Data); err != nil {
		return "", "", fmt.Errorf("error rendering %s template: %w", mail.Template, err)
	}

	return subject, body.String(), nil
}
