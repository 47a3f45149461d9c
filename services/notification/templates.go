package notification

import "html/template"

// Lifecycle email bodies. Kept deliberately plain so they render the same
// across mail clients.
var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "booking_requested"}}
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#1a73e8">New Session Request</h2>
  <p>Hi {{.MentorName}},</p>
  <p><strong>{{.MenteeName}}</strong> has requested a mentoring session with you.</p>
  <table style="border-collapse:collapse;margin:16px 0">
    <tr><td style="padding:4px 12px 4px 0;color:#555">When</td><td>{{.When}}</td></tr>
    <tr><td style="padding:4px 12px 4px 0;color:#555">Duration</td><td>{{.Duration}} minutes</td></tr>
    {{if .Description}}<tr><td style="padding:4px 12px 4px 0;color:#555;vertical-align:top">Notes</td><td>{{.Description}}</td></tr>{{end}}
  </table>
  <p>
    <a href="{{.ConfirmURL}}" style="background:#1a73e8;color:#fff;padding:10px 24px;text-decoration:none;border-radius:4px;margin-right:8px">Confirm</a>
    <a href="{{.DeclineURL}}" style="background:#d93025;color:#fff;padding:10px 24px;text-decoration:none;border-radius:4px">Decline</a>
  </p>
  <p style="color:#888;font-size:12px">These links can be used once and expire after 7 days.</p>
</div>
{{end}}

{{define "meeting_scheduled"}}
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#188038">Session Confirmed</h2>
  <p>Hi {{.MenteeName}},</p>
  <p><strong>{{.MentorName}}</strong> has confirmed your mentoring session.</p>
  <table style="border-collapse:collapse;margin:16px 0">
    <tr><td style="padding:4px 12px 4px 0;color:#555">When</td><td>{{.When}}</td></tr>
    <tr><td style="padding:4px 12px 4px 0;color:#555">Duration</td><td>{{.Duration}} minutes</td></tr>
  </table>
  <p><a href="{{.MeetingLink}}" style="background:#188038;color:#fff;padding:10px 24px;text-decoration:none;border-radius:4px">Join Meeting</a></p>
  <p style="color:#888;font-size:12px">Keep this link private; it is your entry to the session.</p>
</div>
{{end}}

{{define "mentor_scheduled"}}
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#188038">Session Scheduled</h2>
  <p>Hi {{.MentorName}},</p>
  <p>Your session with <strong>{{.MenteeName}}</strong> is confirmed for {{.When}}.</p>
  <p><a href="{{.MeetingLink}}" style="background:#188038;color:#fff;padding:10px 24px;text-decoration:none;border-radius:4px">Join Meeting</a></p>
</div>
{{end}}

{{define "booking_declined"}}
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#d93025">Session Request Declined</h2>
  <p>Hi {{.MenteeName}},</p>
  <p>Unfortunately <strong>{{.MentorName}}</strong> is unable to take your session requested for {{.When}}.</p>
  <p>You can request a session with another mentor at any time.</p>
</div>
{{end}}

{{define "session_reminder"}}
<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto">
  <h2 style="color:#1a73e8">Your Session Starts Soon</h2>
  <p>Your mentoring session starts at {{.When}}.</p>
  <p><a href="{{.MeetingLink}}" style="background:#1a73e8;color:#fff;padding:10px 24px;text-decoration:none;border-radius:4px">Join Meeting</a></p>
</div>
{{end}}
`))
