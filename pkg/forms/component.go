package forms

import (
	"context"

	"go.uber.org/zap"

	"github.com/formsmith/onboard/pkg/lists"
	"github.com/formsmith/onboard/pkg/prompt"
	"github.com/formsmith/onboard/pkg/state"
)

// Env carries the collaborators a render or validation pass needs. It is
// built once per session and passed down; components hold no state of their
// own.
type Env struct {
	Store  state.Store
	Prompt prompt.Driver
	Lists  *lists.Catalog
	Logger *zap.Logger

	// DevMode suppresses validation findings so a spec can be walked
	// end to end without real data. Config errors still surface.
	DevMode bool
}

// Log returns the session logger, or a no-op logger when none was wired.
func (e *Env) Log() *zap.Logger {
	if e == nil || e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

// ComponentConfig is the per-section configuration passed to a reusable
// component. Instance distinguishes multiple uses of the same component
// within one namespace; Check rejects malformed configuration before any
// traversal runs.
type ComponentConfig interface {
	Instance() string
	Check() error
}

// Upload is one captured file together with the context its attachment name
// needs. Components fill the person-level parts; the engine stamps Section
// with the owning section's title as it merges uploads in encounter order.
type Upload struct {
	File         *state.File
	Section      string
	Person       string
	PersonRef    string
	DocumentType string
}

// SectionComponent is a reusable section implementation. The three methods
// are the traversal protocol: Render prompts and writes to the store,
// Validate reads the store and reports findings, Serialize reads the store
// and produces the section payload plus any file uploads it captured.
// Components never write outside their instance's key prefix.
//
// Validate returns findings (operator-fixable problems, already phrased for
// display) separately from errors (broken configuration or wiring). A finding
// never aborts the pass; an error does.
type SectionComponent interface {
	Render(ctx context.Context, env *Env, ns string, cfg ComponentConfig) error
	Validate(env *Env, ns string, cfg ComponentConfig) ([]string, error)
	Serialize(env *Env, ns string, cfg ComponentConfig) (*Payload, []Upload, error)
}

// ComponentResolver maps a section's component ID to its implementation.
type ComponentResolver interface {
	Resolve(id string) (SectionComponent, error)
}
