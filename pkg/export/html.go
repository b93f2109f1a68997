package export

import (
	"fmt"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/formsmith/onboard/pkg/forms"
)

// summaryTemplate is the HTML summary used as the email body. Field values
// are sanitized before they reach the template, so autoescaping plus the
// sanitizer covers operator-entered text.
const summaryTemplate = `<html>
<body>
<h1>{{ title }}</h1>
{% for section in sections %}
<h2>{{ section.Title }}</h2>
{% if section.Count != none %}<p><strong>Count:</strong> {{ section.Count }}</p>{% endif %}
{% for record in section.Records %}
{% if record.Label %}<h3>{{ record.Label }}</h3>{% endif %}
<table border="0" cellpadding="3">
{% for row in record.Rows %}
<tr><td><strong>{{ row.Label }}</strong></td><td>{{ row.Value }}</td></tr>
{% endfor %}
</table>
{% endfor %}
{% endfor %}
</body>
</html>`

var (
	summaryTpl = pongo2.Must(pongo2.FromString(summaryTemplate))
	sanitizer  = bluemonday.StrictPolicy()
)

type htmlRow struct {
	Label string
	Value string
}

type htmlRecord struct {
	Label string
	Rows  []htmlRow
}

type htmlSection struct {
	Title   string
	Count   any
	Records []htmlRecord
}

// HTML renders the submission summary for email bodies.
func HTML(answers *forms.Answers) (string, error) {
	if answers == nil {
		return "", fmt.Errorf("export: nil answers")
	}

	sections := make([]htmlSection, 0, len(answers.Titles()))
	for _, title := range answers.Titles() {
		payload, _ := answers.Section(title)
		if err := payload.Check(); err != nil {
			return "", err
		}

		section := htmlSection{Title: title, Count: nil}
		if payload.Flat != nil {
			section.Records = []htmlRecord{{Rows: rowsOf(payload.Flat)}}
		} else {
			section.Count = payload.Rep.Count
			for i, record := range payload.Rep.Records {
				section.Records = append(section.Records, htmlRecord{
					Label: fmt.Sprintf("Record %d", i+1),
					Rows:  rowsOf(record),
				})
			}
		}
		sections = append(sections, section)
	}

	out, err := summaryTpl.Execute(pongo2.Context{
		"title":    answers.FormTitle,
		"sections": sections,
	})
	if err != nil {
		return "", fmt.Errorf("export: render html summary: %w", err)
	}
	return out, nil
}

func rowsOf(fields *forms.Fields) []htmlRow {
	rows := make([]htmlRow, 0, fields.Len())
	for _, label := range fields.Keys() {
		value, _ := fields.Get(label)
		rows = append(rows, htmlRow{
			Label: sanitizer.Sanitize(label),
			Value: sanitizer.Sanitize(stringify(value)),
		})
	}
	return rows
}
