/*
Package notify handles reporting of analyzed events via console output and
email briefs.
*/
package notify

import (
	"fmt"
	"strings"

	"github.com/kbygtools/eventscout/internal/types"
)

// NotificationData is everything a rendered brief needs.
type NotificationData struct {
	Record  types.EventRecord
	PageURL string
}

// RenderedMessage is a brief ready for delivery.
type RenderedMessage struct {
	Subject string
	Text    string
	HTML    string
}

// ReportBrief prints the analyzed event to the console.
func ReportBrief(rec types.EventRecord, pageURL string) {
	fmt.Println("\n===========================================")
	fmt.Printf("✅ %s\n", rec.EventName)
	fmt.Println("===========================================")

	fmt.Printf("Date:     %s\n", orNA(rec.Date))
	fmt.Printf("Location: %s\n", orNA(rec.Location))
	fmt.Printf("URL:      %s\n", pageURL)
	if rec.EstimatedAttendees > 0 {
		fmt.Printf("Estimated Attendees: %d\n", rec.EstimatedAttendees)
	}
	if rec.Description != "" {
		fmt.Printf("\n%s\n", rec.Description)
	}

	if len(rec.People) > 0 {
		fmt.Printf("\n--- PEOPLE (%d) ---\n", len(rec.People))
		for _, p := range rec.People {
			fmt.Printf("\t- %s\n", formatPerson(p))
		}
	}

	if len(rec.Sponsors) > 0 {
		fmt.Printf("\n--- SPONSORS (%d) ---\n", len(rec.Sponsors))
		for _, s := range rec.Sponsors {
			if s.Tier != "" {
				fmt.Printf("\t- %s (%s)\n", s.Name, s.Tier)
			} else {
				fmt.Printf("\t- %s\n", s.Name)
			}
		}
	}

	if len(rec.ExpectedPersonas) > 0 {
		fmt.Printf("\n--- EXPECTED PERSONAS ---\n")
		for _, p := range rec.ExpectedPersonas {
			fmt.Printf("\t- %s (likelihood: %s, count: %s)\n", p.Persona, orNA(p.Likelihood), orNA(p.Count))
		}
	}

	if len(rec.NextBestActions) > 0 {
		fmt.Printf("\n--- NEXT BEST ACTIONS ---\n")
		for _, a := range rec.NextBestActions {
			fmt.Printf("\t%d. %s\n\t   %s\n", a.Priority, a.Action, a.Reason)
		}
	}

	if len(rec.RelatedEvents) > 0 {
		fmt.Printf("\n--- RELATED EVENTS ---\n")
		for _, r := range rec.RelatedEvents {
			fmt.Printf("\t- %s (%s)\n", r.Name, r.URL)
		}
	}

	fmt.Println("\n===========================================")
}

// EmailBrief renders and sends the event brief to the configured recipient.
func EmailBrief(rec types.EventRecord, pageURL string, cfg EmailConfig) error {
	if !cfg.Enabled {
		return nil
	}

	renderer := NewHTMLEmailRenderer()
	msg, err := renderer.Render(NotificationData{Record: rec, PageURL: pageURL})
	if err != nil {
		return fmt.Errorf("failed to render event brief: %w", err)
	}

	return NewEmailSender(cfg).Send(msg)
}

func formatPerson(p types.Person) string {
	var parts []string
	parts = append(parts, p.Name)
	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	if p.Company != "" {
		parts = append(parts, p.Company)
	}
	line := strings.Join(parts, ", ")
	if p.Role != "" {
		line += fmt.Sprintf(" [%s]", p.Role)
	}
	return line
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
