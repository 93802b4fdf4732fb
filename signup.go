package signup

import (
	"context"
	"errors"

	"github.com/goliatone/go-signup/pkg/client"
	"github.com/goliatone/go-signup/pkg/form"
	"github.com/goliatone/go-signup/pkg/orchestrator"
	"github.com/goliatone/go-signup/pkg/validation"
)

// Outcome aliases orchestrator.Outcome for callers using the root package.
type Outcome = orchestrator.Outcome

// UserRecord aliases client.UserRecord.
type UserRecord = client.UserRecord

// RemoteProfile aliases client.RemoteProfile.
type RemoteProfile = client.RemoteProfile

// Transport is the pair of outbound capabilities the pipeline consumes.
// *client.Client satisfies it.
type Transport interface {
	client.ProfileFetcher
	client.UserCreator
}

// Pipeline bundles a fresh form state with the engine that validates it and
// the orchestrator that submits it.
type Pipeline struct {
	State        *form.State
	Engine       *validation.Engine
	Orchestrator *orchestrator.Orchestrator
}

// NewPipeline wires an empty signup form to transport. Options are forwarded
// to the orchestrator; an engine passed through orchestrator.WithEngine is
// not reflected in Pipeline.Engine, use NewPipelineWithEngine for that.
func NewPipeline(transport Transport, options ...orchestrator.Option) (*Pipeline, error) {
	return NewPipelineWithEngine(transport, validation.Default(), options...)
}

// NewPipelineWithEngine is NewPipeline with an explicit validation engine
// shared by the pipeline and its orchestrator.
func NewPipelineWithEngine(transport Transport, engine *validation.Engine, options ...orchestrator.Option) (*Pipeline, error) {
	if transport == nil {
		return nil, errors.New("signup: transport is required")
	}
	if engine == nil {
		engine = validation.Default()
	}
	state := form.New()
	opts := append([]orchestrator.Option{orchestrator.WithEngine(engine)}, options...)
	o, err := orchestrator.New(state, transport, transport, opts...)
	if err != nil {
		return nil, err
	}
	return &Pipeline{State: state, Engine: engine, Orchestrator: o}, nil
}

// Errors returns the surfaced errors of every touched field.
func (p *Pipeline) Errors() map[string][]string {
	errs := p.Engine.Errors(p.State)
	if len(errs) == 0 {
		return nil
	}
	out := make(map[string][]string, len(errs))
	for name, msgs := range errs {
		out[string(name)] = msgs
	}
	return out
}

// PasswordMatch returns the mismatch message when the passwords differ.
func (p *Pipeline) PasswordMatch() string {
	return validation.PasswordMatch(p.State.Values())
}

// Submit runs the orchestrator.
func (p *Pipeline) Submit(ctx context.Context) (Outcome, error) {
	return p.Orchestrator.Submit(ctx)
}
