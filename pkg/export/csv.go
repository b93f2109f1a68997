package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/formsmith/onboard/pkg/forms"
)

var csvHeader = []string{"Section", "Record #", "Field", "Value"}

// CSV renders the submission as a flat four-column table. Flat sections carry
// record number 1; repeating sections emit one row per record field, plus a
// Count row when there are no records so the section still appears.
func CSV(answers *forms.Answers) ([]byte, error) {
	if answers == nil {
		return nil, fmt.Errorf("export: nil answers")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("export: write csv header: %w", err)
	}

	for _, title := range answers.Titles() {
		payload, _ := answers.Section(title)
		if err := payload.Check(); err != nil {
			return nil, err
		}

		if payload.Flat != nil {
			for _, label := range payload.Flat.Keys() {
				value, _ := payload.Flat.Get(label)
				if err := w.Write([]string{title, "1", label, stringify(value)}); err != nil {
					return nil, fmt.Errorf("export: write csv row: %w", err)
				}
			}
			continue
		}

		rep := payload.Rep
		if rep.Count == 0 {
			if err := w.Write([]string{title, "0", "Count", "0"}); err != nil {
				return nil, fmt.Errorf("export: write csv row: %w", err)
			}
		}
		for i, record := range rep.Records {
			recordNo := strconv.Itoa(i + 1)
			for _, label := range record.Keys() {
				value, _ := record.Get(label)
				if err := w.Write([]string{title, recordNo, label, stringify(value)}); err != nil {
					return nil, fmt.Errorf("export: write csv row: %w", err)
				}
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("export: flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func stringify(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case int:
		return strconv.Itoa(value)
	default:
		return fmt.Sprint(value)
	}
}
