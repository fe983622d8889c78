package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Content is a rendered subject and HTML body.
type Content struct {
	Subject string
	HTML    string
}

type InjectionReminderData struct {
	Name         string
	DaysUntilDue int
	DueLabel     string
	DoseLabel    string
}

type InjectionOverdueData struct {
	Name        string
	DaysOverdue int
	DueLabel    string
	DoseLabel   string
}

type WeightReminderData struct {
	Name string
}

// WeeklySummaryData describes the last seven days. Weight fields are nil when
// no weight was logged.
type WeeklySummaryData struct {
	Name           string
	WeightCount    int
	InjectionCount int
	StartWeightKg  *float64
	EndWeightKg    *float64
	ChangeKg       *float64
	Direction      string
}

const layout = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2937;">
<p>Hi {{if .Name}}{{.Name}}{{else}}there{{end}},</p>
{{template "body" .}}
<p style="color: #6b7280; font-size: 12px;">You can change which emails you receive in your notification settings.</p>
</body>
</html>`

var funcs = template.FuncMap{
	"plural": func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}
		return fmt.Sprintf("%d %ss", n, unit)
	},
	"kg": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%.1f kg", *v)
	},
	"signedKg": func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%+.1f kg", *v)
	},
}

func mustParse(body string) *template.Template {
	t := template.Must(template.New("layout").Funcs(funcs).Parse(layout))
	return template.Must(t.New("body").Parse(body))
}

var (
	injectionReminderTmpl = mustParse(`<p>Your next injection of <strong>{{.DoseLabel}}</strong> is due in {{plural .DaysUntilDue "day"}}, on {{.DueLabel}}.</p>
<p>Remember to rotate your injection site.</p>`)

	injectionOverdueTmpl = mustParse(`<p>Your injection of <strong>{{.DoseLabel}}</strong> was due on {{.DueLabel}}, {{plural .DaysOverdue "day"}} ago.</p>
<p>Log it once you have taken it so your schedule stays accurate.</p>`)

	weightReminderTmpl = mustParse(`<p>You have not logged your weight today. A quick entry keeps your progress chart up to date.</p>`)

	weeklySummaryTmpl = mustParse(`<p>Here is your week in review:</p>
<ul>
<li>Injections logged: {{.InjectionCount}}</li>
<li>Weight entries: {{.WeightCount}}</li>
{{- if .StartWeightKg}}
<li>Weight: {{kg .StartWeightKg}} to {{kg .EndWeightKg}} ({{signedKg .ChangeKg}}, {{.Direction}})</li>
{{- end}}
</ul>`)
)

func render(t *template.Template, subject string, data any) (Content, error) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return Content{}, fmt.Errorf("failed to render %q: %w", subject, err)
	}
	return Content{Subject: subject, HTML: buf.String()}, nil
}

func InjectionReminder(data InjectionReminderData) (Content, error) {
	subject := fmt.Sprintf("Injection reminder: due %s", data.DueLabel)
	return render(injectionReminderTmpl, subject, data)
}

func InjectionOverdue(data InjectionOverdueData) (Content, error) {
	subject := fmt.Sprintf("Your injection is overdue (due %s)", data.DueLabel)
	return render(injectionOverdueTmpl, subject, data)
}

func WeightReminder(data WeightReminderData) (Content, error) {
	return render(weightReminderTmpl, "Time to log your weight", data)
}

func WeeklySummary(data WeeklySummaryData) (Content, error) {
	return render(weeklySummaryTmpl, "Your weekly summary", data)
}
