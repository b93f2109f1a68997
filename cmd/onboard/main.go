package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/formsmith/onboard/pkg/components"
	"github.com/formsmith/onboard/pkg/forms"
	"github.com/formsmith/onboard/pkg/lists"
	"github.com/formsmith/onboard/pkg/mail"
	"github.com/formsmith/onboard/pkg/prompt"
	"github.com/formsmith/onboard/pkg/specs"
	"github.com/formsmith/onboard/pkg/state"
	"github.com/formsmith/onboard/pkg/submit"
)

func main() {
	form := flag.String("form", "company", "form to run: "+strings.Join(specs.Names(), ", "))
	specFile := flag.String("spec", "", "YAML form definition (overrides -form)")
	outDir := flag.String("out", ".", "directory for the generated PDF and CSV")
	devMode := flag.Bool("dev", false, "suppress validation findings for a dry walk-through")
	verbose := flag.Bool("verbose", false, "debug logging")

	smtpHost := flag.String("smtp-host", "", "SMTP host (email disabled if empty)")
	smtpPort := flag.Int("smtp-port", 465, "SMTP port")
	smtpUser := flag.String("smtp-user", "", "SMTP username")
	smtpPass := flag.String("smtp-pass", "", "SMTP password")
	mailFrom := flag.String("mail-from", "", "sender address")
	mailTo := flag.String("mail-to", "", "comma-separated recipients")
	flag.Parse()

	logger, err := newLogger(*verbose)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cat, err := lists.Default()
	if err != nil {
		logger.Fatal("load controlled lists", zap.Error(err))
	}

	registry := components.Default()
	spec, err := loadForm(*form, *specFile, cat, registry)
	if err != nil {
		logger.Fatal("load form", zap.Error(err))
	}

	env := &forms.Env{
		Store:   state.NewMemoryStore(),
		Prompt:  prompt.NewSurveyDriver(),
		Lists:   cat,
		Logger:  logger,
		DevMode: *devMode,
	}
	engine, err := forms.NewEngine(env, registry)
	if err != nil {
		logger.Fatal("build engine", zap.Error(err))
	}

	pipeline := &submit.Pipeline{Engine: engine, Env: env}
	if *smtpHost != "" {
		sender, err := mail.New(mail.Config{
			Host:     *smtpHost,
			Port:     *smtpPort,
			Username: *smtpUser,
			Password: *smtpPass,
			SSL:      true,
			From:     *mailFrom,
			To:       splitRecipients(*mailTo),
		}, logger)
		if err != nil {
			logger.Fatal("mail config", zap.Error(err))
		}
		pipeline.Mailer = sender
	}

	ctx := context.Background()
	if err := run(ctx, engine, pipeline, env, spec, *outDir); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Println("\nAborted.")
			os.Exit(1)
		}
		logger.Fatal("run form", zap.Error(err))
	}
}

func run(ctx context.Context, engine *forms.Engine, pipeline *submit.Pipeline, env *forms.Env, spec *forms.FormSpec, outDir string) error {
	for {
		if err := engine.Render(ctx, spec); err != nil {
			return err
		}

		meta, err := captureMeta(ctx, env, spec)
		if err != nil {
			return err
		}

		result, err := pipeline.Submit(ctx, spec, meta)
		if err != nil {
			return err
		}

		if result.Status == submit.StatusSubmitted {
			return writeArtifacts(result, spec, outDir)
		}

		fmt.Println("\nThe submission has problems:")
		for _, finding := range result.Findings {
			fmt.Println("  - " + finding)
		}
		again, err := env.Prompt.Confirm(ctx, prompt.ConfirmConfig{
			Message: "Correct the answers and try again?",
			Default: true,
		})
		if err != nil {
			return err
		}
		if !again {
			return fmt.Errorf("submission abandoned with %d finding(s)", len(result.Findings))
		}
	}
}

func captureMeta(ctx context.Context, env *forms.Env, spec *forms.FormSpec) (submit.Meta, error) {
	entity := state.GetString(env.Store, state.NsKey(spec.Name, "entity_name"), "")

	if err := env.Prompt.Heading(ctx, "Declaration"); err != nil {
		return submit.Meta{}, err
	}
	accepted, err := env.Prompt.Confirm(ctx, prompt.ConfirmConfig{
		Message: "I declare that the information provided is true and complete.",
	})
	if err != nil {
		return submit.Meta{}, err
	}
	name, err := env.Prompt.Input(ctx, prompt.InputConfig{Message: "Declared by (full name)"})
	if err != nil {
		return submit.Meta{}, err
	}
	capacity, err := env.Prompt.Input(ctx, prompt.InputConfig{Message: "Capacity"})
	if err != nil {
		return submit.Meta{}, err
	}

	return submit.Meta{
		SurveyType: spec.Title,
		EntityName: entity,
		Declaration: submit.Declaration{
			Accepted: accepted,
			FullName: strings.TrimSpace(name),
			Capacity: strings.TrimSpace(capacity),
		},
	}, nil
}

func writeArtifacts(result *submit.Result, spec *forms.FormSpec, outDir string) error {
	base := spec.Name + "_" + result.ID
	if result.PDF != nil {
		path := outDir + "/" + base + ".pdf"
		if err := os.WriteFile(path, result.PDF, 0o644); err != nil {
			return fmt.Errorf("write pdf: %w", err)
		}
		fmt.Printf("PDF written to %s\n", path)
	}
	if result.CSV != nil {
		path := outDir + "/" + base + ".csv"
		if err := os.WriteFile(path, result.CSV, 0o644); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Printf("CSV written to %s\n", path)
	}
	fmt.Printf("Submission %s complete (%d uploaded document(s), email sent: %v)\n",
		result.ID, len(result.Uploads), result.EmailSent)
	return nil
}

func loadForm(name, specFile string, cat *lists.Catalog, registry *components.Registry) (*forms.FormSpec, error) {
	if specFile == "" {
		return specs.Get(name, cat)
	}
	f, err := os.Open(specFile)
	if err != nil {
		return nil, fmt.Errorf("open spec file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return forms.LoadSpec(f, registry)
}

func splitRecipients(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}
