// Package submit drives a completed form through validation, serialization,
// artifact generation and delivery. Validation findings block a submission;
// artifact and delivery failures degrade it but never lose the answers.
package submit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/formsmith/onboard/pkg/export"
	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/mail"
	"github.com/formsmith/onboard/pkg/state"
)

// Status is where a submission attempt ended up.
type Status string

const (
	StatusBlocked   Status = "blocked"
	StatusSubmitted Status = "submitted"
)

const timestampLayout = "2006/01/02 15:04:05"

// Declaration is the sign-off captured at submission time.
type Declaration struct {
	Accepted bool
	FullName string
	Capacity string
}

// Meta is the per-submission context that does not live in the store.
type Meta struct {
	SurveyType  string
	EntityName  string
	Declaration Declaration
}

// Result reports one submission attempt. On a blocked attempt only ID,
// Status and Findings are set; on a submitted one the artifacts are attached
// where generation succeeded.
type Result struct {
	ID       string
	Status   Status
	Findings []string

	Answers   *forms.Answers
	PDF       []byte
	CSV       []byte
	HTML      string
	Uploads   []export.Attachment
	EmailSent bool
}

// Pipeline wires the collaborators a submission needs. Mailer may be nil for
// a dry run. Clock and NewID exist so tests get stable output.
type Pipeline struct {
	Engine *forms.Engine
	Env    *forms.Env
	Mailer *mail.Sender

	Clock func() time.Time
	NewID func() string
}

func (p *Pipeline) now() time.Time {
	if p.Clock != nil {
		return p.Clock()
	}
	return time.Now()
}

func (p *Pipeline) newID() string {
	if p.NewID != nil {
		return p.NewID()
	}
	return uuid.NewString()
}

// Submit validates, serializes and delivers one form. A non-nil error means
// broken wiring; bad operator data comes back as a blocked Result instead.
func (p *Pipeline) Submit(ctx context.Context, spec *forms.FormSpec, meta Meta) (*Result, error) {
	if p.Engine == nil || p.Env == nil || p.Env.Store == nil {
		return nil, fmt.Errorf("submit: pipeline requires an engine and a session store")
	}
	log := p.Env.Log().With(zap.String("spec", spec.Name))
	result := &Result{ID: p.newID()}

	findings, err := p.Engine.Validate(spec)
	if err != nil {
		return nil, err
	}
	if !meta.Declaration.Accepted {
		findings = append(findings, "[Declaration] The declaration must be accepted before submitting.")
	}
	if len(findings) > 0 {
		result.Status = StatusBlocked
		result.Findings = findings
		log.Info("submission blocked", zap.Int("findings", len(findings)))
		return result, nil
	}

	answers, uploads, err := p.Engine.Serialize(spec)
	if err != nil {
		return nil, err
	}
	p.injectMetadata(answers, spec, meta, result.ID)
	result.Answers = answers

	if pdf, err := export.PDF(answers); err != nil {
		log.Warn("pdf generation failed", zap.Error(err))
	} else {
		result.PDF = pdf
	}
	if csvOut, err := export.CSV(answers); err != nil {
		log.Warn("csv generation failed", zap.Error(err))
	} else {
		result.CSV = csvOut
	}
	if html, err := export.HTML(answers); err != nil {
		log.Warn("html summary failed", zap.Error(err))
	} else {
		result.HTML = html
	}

	result.Uploads = CollectUploads(uploads, meta.EntityName, spec.Title)

	if p.Mailer != nil {
		if err := p.Mailer.Send(p.buildMessage(spec, meta, result)); err != nil {
			log.Warn("submission email failed", zap.Error(err))
		} else {
			result.EmailSent = true
		}
	}

	result.Status = StatusSubmitted
	log.Info("submission complete",
		zap.String("submission_id", result.ID),
		zap.Int("uploads", len(result.Uploads)),
		zap.Bool("email_sent", result.EmailSent))
	return result, nil
}

func (p *Pipeline) injectMetadata(answers *forms.Answers, spec *forms.FormSpec, meta Meta, id string) {
	surveyType := meta.SurveyType
	if surveyType == "" {
		surveyType = spec.Title
	}

	details := forms.NewFields()
	details.Set("Survey Type", surveyType)
	details.Set("Submission ID", id)
	details.Set("Submitted At", p.now().Format(timestampLayout))
	answers.Add("Survey Details", forms.FlatPayload(details))

	decl := forms.NewFields()
	decl.Set("Declaration Accepted", "Yes")
	decl.Set("Full Name", meta.Declaration.FullName)
	decl.Set("Capacity", meta.Declaration.Capacity)
	decl.Set("Signed At", p.now().Format(timestampLayout))
	answers.Add("Declaration", forms.FlatPayload(decl))
}

func (p *Pipeline) buildMessage(spec *forms.FormSpec, meta Meta, result *Result) mail.Message {
	subject := spec.Title + " Submission"
	if meta.EntityName != "" {
		subject += ": " + meta.EntityName
	}

	msg := mail.Message{Subject: subject, HTMLBody: result.HTML}
	stem := export.Attachment{
		File:   &state.File{Name: "submission.pdf"},
		Entity: meta.EntityName,
		Form:   spec.Title,
	}
	if result.PDF != nil {
		stem.DocumentType = "Submission"
		msg.Attachments = append(msg.Attachments, mail.Attachment{
			Filename: stem.Filename(),
			Data:     result.PDF,
		})
	}
	if result.CSV != nil {
		csvStem := stem
		csvStem.File = &state.File{Name: "submission.csv"}
		csvStem.DocumentType = "Submission"
		msg.Attachments = append(msg.Attachments, mail.Attachment{
			Filename: csvStem.Filename(),
			Data:     result.CSV,
		})
	}
	for _, upload := range result.Uploads {
		msg.Attachments = append(msg.Attachments, mail.Attachment{
			Filename: upload.Filename(),
			Data:     upload.File.Data,
		})
	}
	return msg
}

// Reset clears every stored answer under the spec's namespace so the next
// session starts clean. It returns the number of keys removed.
func Reset(store state.Store, spec *forms.FormSpec) int {
	return state.ClearPrefix(store, state.NamespacePrefix(spec.Name))
}
