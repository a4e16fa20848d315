package email

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/pkg/errors"
)

// Template is a string-based enum naming email templates.
// Each one has a .html and a .txt file under templates/.
type Template string

const (
	// TemplateContactNotification is sent to the site owner for every contact submission.
	TemplateContactNotification Template = "contact_notification"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt"))
)

func render(name Template, data any) (string, string, error) {
	var html, text bytes.Buffer

	if err := htmlTemplates.ExecuteTemplate(&html, string(name)+".html", data); err != nil {
		return "", "", errors.Wrapf(err, "failed to execute email template %s.html", name)
	}
	if err := textTemplates.ExecuteTemplate(&text, string(name)+".txt", data); err != nil {
		return "", "", errors.Wrapf(err, "failed to execute email template %s.txt", name)
	}

	return html.String(), text.String(), nil
}
