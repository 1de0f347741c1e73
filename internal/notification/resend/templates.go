package resend

import (
	"bytes"
	"html/template"
	"strings"

	guestsdomain "wedding-registry-go/internal/domain/guests"
)

var coupleTemplate = template.Must(template.New("couple").Funcs(funcs).Parse(`<div style="font-family: Georgia, serif; max-width: 600px; margin: 0 auto; padding: 20px;">
<h1 style="color: #1e3a5f;">New RSVP from {{.SubmittedBy}}</h1>
{{if .Email}}<p><strong>Email:</strong> {{.Email}}</p>{{end}}
{{range .Rows}}<div style="background: #faf8f5; padding: 16px; border-left: 4px solid {{statusColor .Response}}; margin-bottom: 12px;">
<p style="font-size: 18px; margin: 0 0 8px 0;"><strong>{{.Name}}</strong></p>
<p style="margin: 0 0 6px 0;"><strong>Status:</strong> {{statusText .Response}}</p>
{{if eq (print .Response) "yes"}}<p style="margin: 0 0 6px 0;"><strong>Guests:</strong> {{.GuestCount}}</p>{{end}}
{{if .Dietary}}<p style="margin: 0 0 6px 0;"><strong>Dietary:</strong> {{.Dietary}}</p>{{end}}
{{if .Message}}<p style="margin: 0; font-style: italic;">&ldquo;{{.Message}}&rdquo;</p>{{end}}
</div>{{end}}
<p style="color: #718096; font-size: 14px;">View all RSVPs in your <a href="{{.SiteURL}}/admin">admin dashboard</a>.</p>
</div>`))

var guestTemplate = template.Must(template.New("guest").Funcs(funcs).Parse(`<div style="font-family: Georgia, serif; max-width: 600px; margin: 0 auto; padding: 20px;">
<h1 style="color: #d4af37;">{{.CoupleNames}}</h1>
{{if .WeddingDate}}<p>{{.WeddingDate}}</p>{{end}}
<h2 style="color: #1e3a5f;">Hi {{.FirstName}}!</h2>
<p>Your RSVP has been received. {{greeting .Response}}!</p>
<p><a href="{{.SiteURL}}" style="display: inline-block; background: #1e3a5f; color: white; padding: 12px 30px; border-radius: 50px; text-decoration: none;">View Registry</a></p>
</div>`))

var funcs = template.FuncMap{
	"statusText":  statusText,
	"statusColor": statusColor,
	"greeting":    greeting,
}

func statusText(r guestsdomain.Response) string {
	switch r {
	case guestsdomain.ResponseYes:
		return "Attending"
	case guestsdomain.ResponseNo:
		return "Not Attending"
	default:
		return "Maybe"
	}
}

func statusColor(r guestsdomain.Response) string {
	switch r {
	case guestsdomain.ResponseYes:
		return "#28a745"
	case guestsdomain.ResponseNo:
		return "#dc3545"
	default:
		return "#ffc107"
	}
}

func greeting(r guestsdomain.Response) string {
	switch r {
	case guestsdomain.ResponseYes:
		return "We can't wait to see you"
	case guestsdomain.ResponseNo:
		return "We're sorry you can't make it"
	default:
		return "Thanks for letting us know you're still deciding"
	}
}

type coupleView struct {
	guestsdomain.Notification
	SiteURL string
}

type guestView struct {
	guestsdomain.Confirmation
	FirstName   string
	CoupleNames string
	WeddingDate string
	SiteURL     string
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func firstName(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return name
}
