package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formsmith/onboard/pkg/forms"
)

func sampleAnswers() *forms.Answers {
	answers := forms.NewAnswers("company", "Company Onboarding")

	entity := forms.NewFields()
	entity.Set("Entity Name", "Acme Corp")
	entity.Set("Entity Type", "Company")
	answers.Add("Entity Details", forms.FlatPayload(entity))

	director := forms.NewFields()
	director.Set("First Name", "John")
	director.Set("Surname", "Smith")
	answers.Add("Company Directors", forms.RepeatPayload(1, []*forms.Fields{director}))

	answers.Add("Corporate Shareholders", forms.RepeatPayload(0, nil))
	return answers
}

func TestCSVShape(t *testing.T) {
	out, err := CSV(sampleAnswers())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)

	// One header row, then one data row per flat field and per record field,
	// plus a single Count row for the empty repeater.
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"Section", "Record #", "Field", "Value"}, rows[0])
	assert.Equal(t, []string{"Entity Details", "1", "Entity Name", "Acme Corp"}, rows[1])
	assert.Equal(t, []string{"Entity Details", "1", "Entity Type", "Company"}, rows[2])
	assert.Equal(t, []string{"Company Directors", "1", "First Name", "John"}, rows[3])
	assert.Equal(t, []string{"Company Directors", "1", "Surname", "Smith"}, rows[4])

	// Zero-record sections still surface their count.
	assert.Equal(t, []string{"Corporate Shareholders", "0", "Count", "0"}, rows[5])
}

func TestCSVIsDeterministic(t *testing.T) {
	first, err := CSV(sampleAnswers())
	require.NoError(t, err)
	second, err := CSV(sampleAnswers())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPDFRenders(t *testing.T) {
	out, err := PDF(sampleAnswers())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should be a PDF document")
	assert.Greater(t, len(out), 500)
}

func TestPDFWrapsLongValues(t *testing.T) {
	answers := forms.NewAnswers("trust", "Trust Onboarding")
	fields := forms.NewFields()
	fields.Set("Source of Funds", strings.Repeat("long narrative text ", 40))
	answers.Add("Trust Details", forms.FlatPayload(fields))

	out, err := PDF(answers)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestWrapValue(t *testing.T) {
	lines := wrapValue(strings.Repeat("word ", 40))
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), wrapWidth)
	}

	lines = wrapValue(strings.Repeat("x", 150))
	assert.Len(t, lines, 3)
}

func TestHTMLSummary(t *testing.T) {
	out, err := HTML(sampleAnswers())
	require.NoError(t, err)
	assert.Contains(t, out, "Company Onboarding")
	assert.Contains(t, out, "Entity Details")
	assert.Contains(t, out, "Acme Corp")
	assert.Contains(t, out, "<strong>Count:</strong> 0")
}

func TestHTMLSanitizesValues(t *testing.T) {
	answers := forms.NewAnswers("company", "Company Onboarding")
	fields := forms.NewFields()
	fields.Set("Entity Name", `<script>alert("x")</script>Acme`)
	answers.Add("Entity Details", forms.FlatPayload(fields))

	out, err := HTML(answers)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "Acme")
}
