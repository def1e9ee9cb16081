package mailer

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

// TemplateWelcome greets a freshly registered user.
const TemplateWelcome = "welcome"

var welcomeText = texttpl.Must(texttpl.New("welcome_text").Parse(
	`Hi {{.Name}},

Welcome to {{.AppName}}! Your account is ready.
Browse the catalog, join a library, and start reading.
`))

var welcomeHTML = htmltpl.Must(htmltpl.New("welcome_html").Parse(
	`<p>Hi {{.Name}},</p>
<p>Welcome to <strong>{{.AppName}}</strong>! Your account is ready.</p>
<p>Browse the catalog, join a library, and start reading.</p>
`))

// Render resolves a template name into subject, text, and HTML bodies.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case TemplateWelcome:
		app := fmt.Sprintf("%v", data["AppName"])
		if app == "" || app == "<nil>" {
			app = "Librarium"
			if data == nil {
				data = map[string]any{}
			}
			data["AppName"] = app
		}
		var tb, hb bytes.Buffer
		if err = welcomeText.Execute(&tb, data); err != nil {
			return
		}
		if err = welcomeHTML.Execute(&hb, data); err != nil {
			return
		}
		return "Welcome to " + app, tb.String(), hb.String(), nil
	default:
		err = fmt.Errorf("unknown email template %q", name)
		return
	}
}
