package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// HTMLEmailRenderer renders event briefs as HTML emails with a plain text fallback.
type HTMLEmailRenderer struct {
	tmpl *template.Template
}

// NewHTMLEmailRenderer creates a renderer with the default email template.
func NewHTMLEmailRenderer() *HTMLEmailRenderer {
	t := template.Must(template.New("email").Parse(emailHTMLTemplate))
	return &HTMLEmailRenderer{tmpl: t}
}

// Render produces an HTML email with plain text alternative.
func (r *HTMLEmailRenderer) Render(data NotificationData) (*RenderedMessage, error) {
	subject := fmt.Sprintf("Event Brief: %s", data.Record.EventName)
	if data.Record.Date != "" {
		subject += fmt.Sprintf(" (%s)", data.Record.Date)
	}

	var htmlBuf bytes.Buffer
	if err := r.tmpl.Execute(&htmlBuf, data); err != nil {
		return nil, fmt.Errorf("failed to render HTML template: %w", err)
	}

	return &RenderedMessage{
		Subject: subject,
		Text:    renderPlainText(data),
		HTML:    htmlBuf.String(),
	}, nil
}

// renderPlainText produces a readable plain text version for email clients that don't support HTML.
func renderPlainText(data NotificationData) string {
	rec := data.Record
	var sb strings.Builder

	sb.WriteString(rec.EventName + "\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	sb.WriteString(fmt.Sprintf("Date: %s\n", orNA(rec.Date)))
	sb.WriteString(fmt.Sprintf("Location: %s\n", orNA(rec.Location)))
	sb.WriteString(fmt.Sprintf("URL: %s\n", data.PageURL))
	if rec.EstimatedAttendees > 0 {
		sb.WriteString(fmt.Sprintf("Estimated Attendees: %d\n", rec.EstimatedAttendees))
	}
	sb.WriteString("\n")

	if rec.Description != "" {
		sb.WriteString("ABOUT\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		sb.WriteString(rec.Description + "\n\n")
	}

	if len(rec.People) > 0 {
		sb.WriteString(fmt.Sprintf("PEOPLE (%d)\n", len(rec.People)))
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		for _, p := range rec.People {
			sb.WriteString(fmt.Sprintf("• %s\n", formatPerson(p)))
		}
		sb.WriteString("\n")
	}

	if len(rec.Sponsors) > 0 {
		sb.WriteString(fmt.Sprintf("SPONSORS (%d)\n", len(rec.Sponsors)))
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		for _, s := range rec.Sponsors {
			if s.Tier != "" {
				sb.WriteString(fmt.Sprintf("• %s (%s)\n", s.Name, s.Tier))
			} else {
				sb.WriteString(fmt.Sprintf("• %s\n", s.Name))
			}
		}
		sb.WriteString("\n")
	}

	if len(rec.ExpectedPersonas) > 0 {
		sb.WriteString("EXPECTED PERSONAS\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		for _, p := range rec.ExpectedPersonas {
			sb.WriteString(fmt.Sprintf("• %s (likelihood: %s)\n", p.Persona, orNA(p.Likelihood)))
		}
		sb.WriteString("\n")
	}

	if len(rec.NextBestActions) > 0 {
		sb.WriteString("NEXT BEST ACTIONS\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		for _, a := range rec.NextBestActions {
			sb.WriteString(fmt.Sprintf("%d. %s\n   %s\n", a.Priority, a.Action, a.Reason))
		}
		sb.WriteString("\n")
	}

	if len(rec.RelatedEvents) > 0 {
		sb.WriteString("RELATED EVENTS\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		for _, r := range rec.RelatedEvents {
			sb.WriteString(fmt.Sprintf("• %s (%s)\n", r.Name, r.URL))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
