// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// ContactEmailData holds data for the contact-form email. All fields
// must already be sanitized by the caller; they came from an
// unauthenticated form.
type ContactEmailData struct {
	Name    string
	Email   string
	Message string
}

// BuildContactEmail creates the message delivered to the site's contact
// address, with both HTML and text bodies.
func BuildContactEmail(data ContactEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Contact form message from %s", data.Name),
		TextBody: buildContactText(data),
		HTMLBody: buildContactHTML(data),
	}
}

func buildContactText(data ContactEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("New contact form message from %s <%s>\n\n", data.Name, data.Email))
	buf.WriteString(data.Message + "\n")
	return buf.String()
}

func buildContactHTML(data ContactEmailData) string {
	tmpl := template.Must(template.New("contact").Parse(contactHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const contactHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Contact form message</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 24px 32px; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 18px; color: #111827;">New contact form message</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px;">
              <p style="margin: 0 0 8px; color: #6b7280;">From: <strong style="color: #111827;">{{.Name}}</strong> &lt;{{.Email}}&gt;</p>
              <p style="margin: 16px 0 0; color: #111827; white-space: pre-wrap;">{{.Message}}</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
