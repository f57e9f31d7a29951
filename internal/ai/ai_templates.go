package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kbygtools/eventscout/internal/types"
)

// preCheckContentLimit bounds how much page text the classifier sees. The
// first few thousand characters are enough to tell an event page apart.
const preCheckContentLimit = 3000

const preCheckPromptTemplate = `You are an EXTREMELY strict classifier. Your job is to determine if the ENTIRE webpage is a DEDICATED PAGE for a SINGLE, SPECIFIC event (conference, meetup, summit, workshop, etc.).

The WHOLE PAGE must be about ONE event. Not a directory. Not an article mentioning an event. Not a page with an event advertisement. The entire page's primary purpose must be to provide information about or registration for ONE specific event.

PAGE URL: %s
PAGE TITLE: %s

PAGE CONTENT (truncated):
%s

Respond with ONLY a JSON object (no markdown, no code blocks):
{
  "isEvent": true/false,
  "confidence": "high" | "medium" | "low",
  "eventName": "Name of the event if found, or null",
  "eventDate": "Start date in YYYY-MM-DD format if found, or null",
  "eventLocation": "City, State/Country if found, or null",
  "eventId": "A unique identifier combining slugified-event-name_YYYYMMDD_location-slug, or null if not an event"
}

DEFAULT TO FALSE. Only return isEvent=true with confidence="high" if the ENTIRE PAGE is dedicated to ONE event.

HIGH CONFIDENCE (isEvent=true, confidence="high") - ONLY these qualify:
- Eventbrite event page for ONE specific event (URL contains /e/ or /events/ with event ID)
- Meetup.com page for ONE specific meetup event
- Lu.ma event page for ONE specific event
- Conference website where the ENTIRE page is about that ONE conference (dates, venue, registration, speakers all for ONE event)
- The page has NO other purpose than to describe/promote/register for this ONE event

MEDIUM/LOW CONFIDENCE - These are NOT high confidence:
- A page that MENTIONS an event but has other content too
- A company website that has an events section
- An article or blog post about an event
- A page with event advertisements or promotions mixed with other content
- Any page where the event is not the SOLE focus

FALSE (isEvent=false) - Return false for ALL of these:
- News articles, blog posts, press releases (even if about an event)
- Event directories or listings showing MULTIPLE events
- Company websites, product pages, marketing pages
- Pages that mention events but are primarily about something else
- Social media feeds, search results, YouTube videos
- Wikipedia or informational pages
- Calendar pages with multiple events
- Any page where you have to scroll past non-event content to find event details
- Product announcements disguised as events
- Service migrations, product launches, or company news framed as "events"

CRITICAL TEST - Ask yourself:
1. Is the ENTIRE page about ONE specific event? (Not just a section or mention)
2. Is the primary purpose of this page event registration or event information?
3. Would removing the event content leave the page empty/meaningless?
4. Is this a REAL event people attend (physically or virtually) with a specific date?

If ANY answer is NO, return isEvent=false or confidence="low"

Only return confidence="high" when you are 100%% certain the WHOLE PAGE is a dedicated event page.

%s`

func buildPreCheckPrompt(sig types.PageSignals, hostHints string) string {
	content := sig.MainText
	if len(content) > preCheckContentLimit {
		content = content[:preCheckContentLimit]
	}
	return fmt.Sprintf(preCheckPromptTemplate, sig.URL, sig.Title, content, hostHints)
}

const analysisPromptTemplate = `You are an AI assistant helping a Go-To-Market (GTM) team analyze conference and event websites.
%s
%s
%s

Extract ALL people and companies from this event page. Return a JSON object:

{
  "eventName": "Name of the event",
  "date": "Event date(s) as displayed (e.g., 'March 15-17, 2026')",
  "startDate": "YYYY-MM-DD format of the first day of the event (e.g., '2026-03-15')",
  "endDate": "YYYY-MM-DD format of the last day of the event (e.g., '2026-03-17'), or same as startDate if single-day event",
  "location": "Location or Virtual",
  "description": "Brief description",
  "estimatedAttendees": null or number - look for registration counts, "X people attending", "expected attendance", capacity info, or similar indicators,
  "expectedPersonas": [
    {
      "persona": "Job title/role category (e.g., 'VP of Operations', 'CTO', 'Founder')",
      "likelihood": "High/Medium/Low - how likely this persona attends based on event content",
      "count": "Estimated number or 'Many'/'Few' if you can infer from content",
      "linkedinMessage": "A short, personalized LinkedIn connection request message (under 200 chars) referencing the event",
      "iceBreaker": "An in-person opener to break the ice at the event - casual, natural, memorable",
      "conversationStarters": ["Follow-up line 1", "Follow-up line 2", "Follow-up line 3"],
      "keywords": ["industry term", "pain point", "trending topic"],
      "painPoints": ["Challenge they likely face", "Problem your product solves"]
    }
  ],
  "people": [
    {
      "name": "Full name",
      "role": "Their role at event (Speaker, Panelist, Moderator, Host, Attendee, Organizer, etc.)",
      "title": "Job title",
      "company": "Company name",
      "persona": "Persona category this person fits (e.g., 'Executive', 'VP/Director', 'Manager', 'Founder', 'Practitioner')",
      "linkedin": "LinkedIn URL if on page, otherwise null",
      "linkedinMessage": "A personalized LinkedIn connection request (under 200 chars) mentioning the event and something specific about them",
      "iceBreaker": "A natural in-person opener specific to this person - reference their talk, company, or role at the event"
    }
  ],
  "sponsors": [
    {
      "name": "Company name",
      "tier": "Sponsor tier if mentioned"
    }
  ],
  "nextBestActions": [
    {
      "priority": 1,
      "action": "Specific actionable recommendation",
      "reason": "Why this matters for GTM"
    }
  ],
  "relatedEvents": [
    {
      "name": "Name of related event",
      "url": "Full URL to the event page",
      "date": "Event date if visible",
      "relevance": "Why this event is related (same organizer, similar topic, etc.)"
    }
  ]
}

CRITICAL INSTRUCTIONS:
- Find EVERY person mentioned on the page - speakers, panelists, moderators, hosts, CEOs, founders, attendees, anyone with a name
- Do NOT skip anyone. List them ALL.
- IMPORTANT: If page content includes speakerDirectory and sessionBlocks, treat them as high-confidence extracted source data.
- Cross-reference sessionBlocks.speakersText and speakerDirectory to build complete people list with best possible title/company inference.
- If sponsorCandidates is present, extract sponsor companies from it before attempting weaker inference.
- Assign each person a persona category based on their job title
- For EACH person, write a unique, natural conversation starter they'd appreciate hearing at this event
- Infer expected personas based on event topic, speakers, and sponsors
- For EACH expected persona, provide 3 conversation starters, relevant keywords, and likely pain points
- Provide 3-5 specific, actionable next best actions prioritized by impact
- For relatedEvents: ONLY include events with URLs that are ACTUALLY LINKED on the page. Do NOT guess or make up URLs.
  * Look for links to other events by the same organizer
  * Look for "Related Events", "Upcoming Events", "Past Events", or "You might also like" sections
  * If no related event links are found on the page, return an empty relatedEvents array []
  * NEVER invent or guess URLs - only use URLs that appear in the page content
- Look through the entire page content carefully
- Return ONLY valid JSON, no other text

DATE EXTRACTION (VERY IMPORTANT):
- startDate and endDate MUST be in YYYY-MM-DD format (e.g., "2026-03-15")
- Look for dates in headers, event details, registration info, meta tags, structured data
- For multi-day events: startDate = first day, endDate = last day
- For single-day events: startDate and endDate should be the same
- If year is not specified, assume the next occurrence of that date
- Examples: "March 15-17, 2026" becomes startDate: "2026-03-15", endDate: "2026-03-17"
           "Jan 5, 2026" becomes startDate: "2026-01-05", endDate: "2026-01-05"

ATTENDEE COUNT EXTRACTION:
- Look for phrases like: "X attendees", "X+ attending", "expected attendance", "capacity of X", "join X professionals", "X registered", "X participants"
- Check registration counts, RSVP numbers, and event capacity information
- Look in meta descriptions, headers, about sections, and registration areas
- Return as a number (not a string), or null if not found

Page URL: %s
Page Title: %s

Page Content:
%s`

func buildAnalysisPrompt(sig types.PageSignals, profile UserProfile, hostHints string) string {
	return fmt.Sprintf(analysisPromptTemplate,
		buildUserContext(profile),
		buildPersonaGuidance(profile),
		hostHints,
		sig.URL,
		sig.Title,
		marshalSignals(sig),
	)
}

func buildUserContext(profile UserProfile) string {
	if profile.CompanyName == "" && profile.Product == "" {
		return ""
	}
	return fmt.Sprintf(`
USER CONTEXT (use this to personalize insights):
- Company: %s
- Role: %s
- Product/Service: %s
- Value Proposition: %s
- Target Personas: %s
- Target Industries: %s
- Known Competitors: %s
- Additional Notes: %s
`,
		orDefault(profile.CompanyName, "Not specified"),
		orDefault(profile.Role, "Not specified"),
		orDefault(profile.Product, "Not specified"),
		orDefault(profile.ValueProp, "Not specified"),
		orDefault(profile.TargetPersonas, "Not specified"),
		orDefault(profile.TargetIndustries, "Not specified"),
		orDefault(profile.Competitors, "Not specified"),
		orDefault(profile.Notes, "None"),
	)
}

func buildPersonaGuidance(profile UserProfile) string {
	var targets []string
	for _, p := range strings.Split(profile.TargetPersonas, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			targets = append(targets, trimmed)
		}
	}
	if len(targets) == 0 {
		return ""
	}
	return fmt.Sprintf(`IMPORTANT: The user's priority target personas are: %s.
When generating expectedPersonas, ALWAYS include these target personas FIRST if they are likely to attend this type of event.
Then add other relevant personas you identify from the event content.`, strings.Join(targets, ", "))
}

const repairPromptTemplate = `You are repairing missing fields in event extraction JSON.

TASK:
- Fill ONLY missing or null/empty fields.
- Do NOT remove existing valid values.
- Keep strict JSON output only.

MISSING FIELDS:
%s

CURRENT JSON:
%s

SOURCE PAGE CONTENT:
%s

Return ONLY repaired JSON.`

func buildRepairPrompt(missing []string, current types.EventRecord, sig types.PageSignals) string {
	currentJSON, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		currentJSON = []byte("{}")
	}
	return fmt.Sprintf(repairPromptTemplate,
		strings.Join(missing, ", "),
		string(currentJSON),
		marshalSignals(sig),
	)
}

const personaCoachPromptTemplate = `You are a sales coach helping a GTM professional prepare for conversations at a conference.

CONTEXT:
- Event: %s
- Target Persona: %s
- Persona Pain Points: %s
- User's Company: %s
- User's Product: %s
- Value Proposition: %s
- User's Role: %s

PERSONA DETAILS:
- Conversation Starters: %s
- Keywords to use: %s

CHAT HISTORY:
%s

USER'S QUESTION: %s

Provide a helpful, concise response. Give specific, actionable advice for engaging this persona at this event. Be conversational and practical. Keep response under 150 words.`

func buildPersonaCoachPrompt(persona types.Persona, rec types.EventRecord, profile UserProfile, history []ChatMessage, question string) string {
	return fmt.Sprintf(personaCoachPromptTemplate,
		orDefault(rec.EventName, "Conference"),
		persona.Persona,
		joinOr(persona.PainPoints, ", ", "Unknown"),
		orDefault(profile.CompanyName, "Unknown"),
		orDefault(profile.Product, "Unknown"),
		orDefault(profile.ValueProp, "Unknown"),
		orDefault(profile.Role, "Sales"),
		joinOr(persona.ConversationStarters, " | ", "None provided"),
		joinOr(persona.Keywords, ", ", "None provided"),
		renderHistory(history),
		question,
	)
}

const targetCoachPromptTemplate = `You are a sales coach helping a GTM professional prepare for a one-on-one conversation with a specific target at a conference.

TARGET PERSON:
- Name: %s
- Title/Role: %s
- Company: %s
- Event Role: %s

EVENT CONTEXT:
- Event: %s
- Event Date: %s
- Location: %s

USER'S COMPANY/PRODUCT:
- Company: %s
- Product: %s
- Value Proposition: %s
- User's Role: %s
- Target Personas: %s
- Target Industries: %s

CHAT HISTORY:
%s

USER'S QUESTION: %s

Provide helpful, specific advice for engaging this particular person. Consider:
- Their likely pain points based on their role
- How the user's product specifically helps someone in their position
- Objections they might raise and how to handle them
- Good questions to ask to build rapport and qualify the opportunity

Be conversational and practical. Give concrete examples and scripts when appropriate. Keep response under 150 words.`

func buildTargetCoachPrompt(person types.Person, rec types.EventRecord, profile UserProfile, history []ChatMessage, question string) string {
	titleOrRole := person.Title
	if titleOrRole == "" {
		titleOrRole = person.Role
	}
	return fmt.Sprintf(targetCoachPromptTemplate,
		orDefault(person.Name, "Unknown"),
		orDefault(titleOrRole, "Unknown"),
		orDefault(person.Company, "Unknown"),
		orDefault(person.Role, "Attendee"),
		orDefault(rec.EventName, "Conference"),
		orDefault(rec.Date, "Unknown"),
		orDefault(rec.Location, "Unknown"),
		orDefault(profile.CompanyName, "Unknown"),
		orDefault(profile.Product, "Unknown"),
		orDefault(profile.ValueProp, "Unknown"),
		orDefault(profile.Role, "Sales"),
		orDefault(profile.TargetPersonas, "Not specified"),
		orDefault(profile.TargetIndustries, "Not specified"),
		renderHistory(history),
		question,
	)
}

// marshalSignals serializes the scraped page signals as indented JSON so the
// model sees the same structure the scraper produced.
func marshalSignals(sig types.PageSignals) string {
	out, err := json.MarshalIndent(sig, "", "  ")
	if err != nil {
		return sig.MainText
	}
	return string(out)
}

func renderHistory(history []ChatMessage) string {
	if len(history) == 0 {
		return "None yet"
	}
	lines := make([]string, 0, len(history))
	for _, m := range history {
		role := "Assistant"
		if m.Role == "user" {
			role = "User"
		}
		lines = append(lines, role+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func joinOr(values []string, sep, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, sep)
}
