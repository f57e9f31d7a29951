package notify

const emailHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{.Record.EventName}}</title>
  <style>
    body {
      margin: 0;
      padding: 24px;
      background-color: #f3f4f6;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
      color: #111827;
      line-height: 1.5;
    }

    .container {
      max-width: 640px;
      margin: 0 auto;
      background: #ffffff;
      border-radius: 8px;
      border: 1px solid #e5e7eb;
      overflow: hidden;
    }

    .header {
      padding: 20px 24px;
      background: linear-gradient(135deg, #1e3a5f 0%, #2d4a73 100%);
      color: #ffffff;
    }

    .event-name {
      font-size: 24px;
      font-weight: 700;
      margin-bottom: 4px;
    }

    .event-date {
      font-size: 15px;
      opacity: 0.9;
    }

    .badge {
      display: inline-block;
      margin-top: 8px;
      padding: 4px 10px;
      font-size: 11px;
      font-weight: 600;
      border-radius: 4px;
      background: #f97316;
      color: #ffffff;
      text-transform: uppercase;
      letter-spacing: 0.05em;
    }

    .section {
      padding: 16px 24px;
      border-top: 1px solid #f3f4f6;
    }

    .section-title {
      font-size: 11px;
      font-weight: 700;
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.1em;
      margin-bottom: 12px;
    }

    .meta-grid {
      display: table;
      width: 100%;
      font-size: 14px;
    }

    .meta-row {
      display: table-row;
    }

    .meta-label {
      display: table-cell;
      padding: 6px 16px 6px 0;
      color: #6b7280;
      font-weight: 500;
      white-space: nowrap;
      width: 100px;
    }

    .meta-value {
      display: table-cell;
      padding: 6px 0;
      color: #111827;
    }

    .people-list,
    .action-list,
    .related-list {
      margin: 0;
      padding-left: 20px;
      font-size: 14px;
    }

    .people-list li,
    .action-list li,
    .related-list li {
      margin-bottom: 8px;
      padding-left: 4px;
    }

    .persona-tag,
    .sponsor-tag {
      display: inline-block;
      padding: 3px 10px;
      font-size: 12px;
      font-weight: 500;
      background: #e0f2fe;
      color: #0369a1;
      border-radius: 4px;
      margin: 0 4px 6px 0;
    }

    .role-tag {
      display: inline-block;
      padding: 3px 6px;
      font-size: 10px;
      font-weight: 600;
      background: #fef3c7;
      color: #92400e;
      border-radius: 3px;
      text-transform: uppercase;
      letter-spacing: 0.03em;
      margin-left: 4px;
    }

    .description-box {
      background: #f9fafb;
      border-left: 3px solid #1e3a5f;
      padding: 12px 16px;
      font-size: 13px;
      color: #374151;
      border-radius: 0 4px 4px 0;
    }

    .cta-button {
      display: inline-block;
      margin-top: 12px;
      padding: 10px 20px;
      font-size: 14px;
      font-weight: 600;
	  color: #ffffff !important;
      background: #1e3a5f;
      border-radius: 6px;
      text-decoration: none;
    }

    .footer {
      padding: 16px 24px;
      font-size: 12px;
      color: #9ca3af;
      text-align: center;
      background: #f9fafb;
      border-top: 1px solid #f3f4f6;
    }

    a {
      color: #0b3d91;
      text-decoration: none;
    }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <div class="event-name">{{.Record.EventName}}</div>
      <div class="event-date">{{.Record.Date}}{{if .Record.Location}} · {{.Record.Location}}{{end}}</div>
      {{if .Record.EstimatedAttendees}}
      <span class="badge">~{{.Record.EstimatedAttendees}} attendees</span>
      {{end}}
    </div>

    <div class="section">
      <div class="section-title">Event Details</div>
      <div class="meta-grid">
        <div class="meta-row">
          <div class="meta-label">Dates</div>
          <div class="meta-value">{{.Record.StartDate}}{{if ne .Record.EndDate .Record.StartDate}} to {{.Record.EndDate}}{{end}}</div>
        </div>
        {{if .Record.Location}}
        <div class="meta-row">
          <div class="meta-label">Location</div>
          <div class="meta-value">{{.Record.Location}}</div>
        </div>
        {{end}}
      </div>
      <a href="{{.PageURL}}" class="cta-button" target="_blank" rel="noopener">
        View Event Page →
      </a>
    </div>

    {{if .Record.Description}}
    <div class="section">
      <div class="section-title">About</div>
      <div class="description-box">{{.Record.Description}}</div>
    </div>
    {{end}}

    {{if .Record.People}}
    <div class="section">
      <div class="section-title">People</div>
      <ul class="people-list">
        {{range .Record.People}}
        <li>
          <strong>{{.Name}}</strong>{{if .Title}}, {{.Title}}{{end}}{{if .Company}} at {{.Company}}{{end}}
          {{if .Role}}<span class="role-tag">{{.Role}}</span>{{end}}
        </li>
        {{end}}
      </ul>
    </div>
    {{end}}

    {{if .Record.Sponsors}}
    <div class="section">
      <div class="section-title">Sponsors</div>
      {{range .Record.Sponsors}}
      <span class="sponsor-tag">{{.Name}}{{if .Tier}} ({{.Tier}}){{end}}</span>
      {{end}}
    </div>
    {{end}}

    {{if .Record.ExpectedPersonas}}
    <div class="section">
      <div class="section-title">Expected Personas</div>
      {{range .Record.ExpectedPersonas}}
      <span class="persona-tag">{{.Persona}}</span>
      {{end}}
    </div>
    {{end}}

    {{if .Record.NextBestActions}}
    <div class="section">
      <div class="section-title">Next Best Actions</div>
      <ol class="action-list">
        {{range .Record.NextBestActions}}
        <li><strong>{{.Action}}</strong><br />{{.Reason}}</li>
        {{end}}
      </ol>
    </div>
    {{end}}

    {{if .Record.RelatedEvents}}
    <div class="section">
      <div class="section-title">Related Events</div>
      <ul class="related-list">
        {{range .Record.RelatedEvents}}
        <li><a href="{{.URL}}" target="_blank" rel="noopener">{{.Name}}</a>{{if .Date}} · {{.Date}}{{end}}</li>
        {{end}}
      </ul>
    </div>
    {{end}}

    <div class="footer">
      Generated by <a href="https://github.com/kbygtools/eventscout" target="_blank" rel="noopener">eventscout</a>
    </div>
  </div>
</body>
</html>`
