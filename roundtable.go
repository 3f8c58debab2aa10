// Package roundtable provides a high-level façade over participant discovery
// and the collab orchestrator. Most applications interact with this package
// by:
//  1. Loading a config.Config (config.Load)
//  2. Creating a Roundtable via New
//  3. Calling Collaborate with a task and an optional progress sink
//
// The façade wires a participant.Registry into a collab.Collaborator and
// keeps them in sync when the provider configuration changes (Reset).
package roundtable

import (
	"context"

	"github.com/hupe1980/roundtable/collab"
	"github.com/hupe1980/roundtable/config"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/participant"
)

// Options configures the Roundtable instance.
type Options struct {
	// Factory builds participant handles (defaults to participant.DefaultFactory).
	Factory participant.Factory

	// Prompts overrides phase templates; zero fields keep the defaults.
	Prompts collab.Prompts

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Roundtable is the high-level façade aggregating the registry and orchestrator.
type Roundtable struct {
	registry     *participant.Registry
	collaborator *collab.Collaborator
	logger       logging.Logger
}

// New creates a Roundtable over cfg's providers. A nil cfg behaves like
// config.Default(), which has no providers configured.
func New(cfg *config.Config, optFns ...func(o *Options)) *Roundtable {
	if cfg == nil {
		cfg = config.Default()
	}

	opts := Options{
		Factory: participant.DefaultFactory,
		Logger:  logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	logger := logging.OrNoOp(opts.Logger)

	registry := participant.NewRegistry(cfg.Providers, func(o *participant.RegistryOptions) {
		o.Factory = opts.Factory
		o.Logger = logger
	})

	collaborator := collab.New(registry, func(o *collab.Options) {
		o.Logger = logger
		o.Prompts = opts.Prompts
	})

	return &Roundtable{registry: registry, collaborator: collaborator, logger: logger}
}

// Collaborate runs one discussion on task. See collab.Collaborator.Collaborate.
func (r *Roundtable) Collaborate(ctx context.Context, task string, sink collab.ProgressSink) *collab.Result {
	return r.collaborator.Collaborate(ctx, task, sink)
}

// ProviderCount returns the number of usable participants.
func (r *Roundtable) ProviderCount() int { return r.collaborator.ProviderCount() }

// Participants returns the display names of the usable participants in
// priority order.
func (r *Roundtable) Participants() []string {
	return participant.Names(r.registry.Discover())
}

// Reset swaps the provider configuration. Runs already in progress keep the
// participants they started with; the next run rediscovers.
func (r *Roundtable) Reset(providers config.ProvidersConfig) {
	r.registry.Reset(providers)
	r.logger.Info("roundtable.reset")
}
