package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/formsmith/onboard/pkg/forms"
)

// wrapWidth is the character count long values wrap at before the PDF layer
// sees them, keeping label/value rows aligned.
const wrapWidth = 70

// PDF renders the submission as a printable document: a title header, one
// block per section in submission order, and for repeating sections the
// record count followed by each numbered record.
func PDF(answers *forms.Answers) ([]byte, error) {
	if answers == nil {
		return nil, fmt.Errorf("export: nil answers")
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.MultiCell(0, 9, answers.FormTitle, "", "L", false)
	doc.Ln(4)

	for _, title := range answers.Titles() {
		payload, _ := answers.Section(title)
		if err := payload.Check(); err != nil {
			return nil, err
		}

		doc.SetFont("Helvetica", "B", 12)
		doc.MultiCell(0, 7, title, "", "L", false)
		doc.SetFont("Helvetica", "", 10)

		if payload.Flat != nil {
			writeFields(doc, payload.Flat, "")
			doc.Ln(3)
			continue
		}

		rep := payload.Rep
		doc.MultiCell(0, 6, fmt.Sprintf("Count: %d", rep.Count), "", "L", false)
		for i, record := range rep.Records {
			doc.SetFont("Helvetica", "I", 10)
			doc.MultiCell(0, 6, fmt.Sprintf("Record %d", i+1), "", "L", false)
			doc.SetFont("Helvetica", "", 10)
			writeFields(doc, record, "  ")
		}
		doc.Ln(3)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("export: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFields(doc *gofpdf.Fpdf, fields *forms.Fields, indent string) {
	for _, label := range fields.Keys() {
		value, _ := fields.Get(label)
		text := stringify(value)
		if text == "" {
			text = "-"
		}
		for _, line := range wrapValue(fmt.Sprintf("%s%s: %s", indent, label, text)) {
			doc.MultiCell(0, 5.5, line, "", "L", false)
		}
	}
}

// wrapValue breaks a rendered line on word boundaries at wrapWidth,
// hard-splitting any single word longer than the width.
func wrapValue(line string) []string {
	if len(line) <= wrapWidth {
		return []string{line}
	}
	var out []string
	var current strings.Builder
	for _, word := range strings.Fields(line) {
		for len(word) > wrapWidth {
			if current.Len() > 0 {
				out = append(out, current.String())
				current.Reset()
			}
			out = append(out, word[:wrapWidth])
			word = word[wrapWidth:]
		}
		switch {
		case current.Len() == 0:
			current.WriteString(word)
		case current.Len()+1+len(word) <= wrapWidth:
			current.WriteString(" ")
			current.WriteString(word)
		default:
			out = append(out, current.String())
			current.Reset()
			current.WriteString(word)
		}
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}
