package participant

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"sync"

	"github.com/hupe1980/roundtable/config"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/model"
	"github.com/hupe1980/roundtable/model/anthropic"
	"github.com/hupe1980/roundtable/model/openai"
	"golang.org/x/sync/singleflight"
)

// ErrConstruction marks a participant handle that could not be built.
var ErrConstruction = errors.New("participant construction failed")

// Factory builds the chat handle for a configured kind. modelID is the
// effective model (default or override).
type Factory func(info KindInfo, pc config.ProviderConfig, modelID string) (model.Model, error)

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	// Factory builds handles; defaults to DefaultFactory.
	Factory Factory
	// Logger defaults to a NoOp logger.
	Logger logging.Logger
}

// Registry discovers usable participants from configuration and caches the
// priority-ordered result. Discovery runs at most once per configuration;
// concurrent first callers share a single construction pass.
type Registry struct {
	factory Factory
	logger  logging.Logger

	mu         sync.RWMutex
	providers  config.ProvidersConfig
	cached     []*Participant
	valid      bool
	generation uint64

	group singleflight.Group
}

// NewRegistry creates a registry over the given provider configuration.
func NewRegistry(providers config.ProvidersConfig, optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{
		Factory: DefaultFactory,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Factory == nil {
		opts.Factory = DefaultFactory
	}

	return &Registry{
		factory:   opts.Factory,
		logger:    logging.OrNoOp(opts.Logger),
		providers: providers,
	}
}

// Discover returns the usable participants sorted by descending priority.
// Kinds with equal priority keep their enumeration order (see Kinds). The
// first call constructs the handles; later calls return the cached
// participants until Reset is called. The returned slice is a copy; the
// participants themselves are shared.
func (r *Registry) Discover() []*Participant {
	r.mu.RLock()
	if r.valid {
		out := make([]*Participant, len(r.cached))
		copy(out, r.cached)
		r.mu.RUnlock()
		return out
	}
	providers, gen := r.providers, r.generation
	r.mu.RUnlock()

	// Keyed by generation: a caller arriving after Reset never joins a
	// discovery of the replaced configuration.
	v, _, _ := r.group.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		r.mu.RLock()
		if r.valid && r.generation == gen {
			ps := r.cached
			r.mu.RUnlock()
			return ps, nil
		}
		r.mu.RUnlock()

		ps := r.discover(providers)

		r.mu.Lock()
		if r.generation == gen {
			r.cached, r.valid = ps, true
		}
		r.mu.Unlock()

		return ps, nil
	})

	ps := v.([]*Participant)
	out := make([]*Participant, len(ps))
	copy(out, ps)
	return out
}

// Count returns the number of usable participants.
func (r *Registry) Count() int { return len(r.Discover()) }

// Reset replaces the provider configuration and drops the cache. The next
// Discover call rebuilds every handle.
func (r *Registry) Reset(providers config.ProvidersConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers = providers
	r.cached, r.valid = nil, false
	r.generation++
}

func (r *Registry) discover(providers config.ProvidersConfig) []*Participant {
	var out []*Participant

	for _, info := range kinds {
		pc := info.Config(providers)
		if !pc.Configured() {
			continue
		}

		p, err := r.build(info, pc)
		if err != nil {
			r.logger.Warn("participant.init.failed", "kind", string(info.Kind), "error", err.Error())
			continue
		}

		r.logger.Debug("participant.discovered", "kind", string(info.Kind), "name", p.Name(), "model", p.Model(), "priority", p.Priority())
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].priority > out[j].priority })

	return out
}

func (r *Registry) build(info KindInfo, pc config.ProviderConfig) (p *Participant, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			p, err = nil, fmt.Errorf("%w: %s: panic: %v", ErrConstruction, info.Kind, rec)
		}
	}()

	modelID := info.DefaultModel
	if pc.Model != "" {
		modelID = pc.Model
	}

	priority := info.Priority
	if pc.Priority != nil {
		priority = *pc.Priority
	}

	handle, err := r.factory(info, pc, modelID)
	if err != nil {
		if errors.Is(err, ErrConstruction) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrConstruction, info.Kind, err)
	}
	if handle == nil {
		return nil, fmt.Errorf("%w: %s: factory returned no handle", ErrConstruction, info.Kind)
	}

	return New(info.Kind, info.Name, info.Glyph, modelID, priority, handle), nil
}

// DefaultFactory builds vendor adapters: the Anthropic adapter for
// VendorAnthropic and the OpenAI adapter, pointed at the kind's endpoint,
// for everything else. The configured api_base wins over the kind default.
func DefaultFactory(info KindInfo, pc config.ProviderConfig, modelID string) (model.Model, error) {
	base := info.BaseURL
	if pc.APIBase != "" {
		base = pc.APIBase
	}
	if base != "" {
		u, err := url.Parse(base)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return nil, fmt.Errorf("%w: %s: invalid api base %q", ErrConstruction, info.Kind, base)
		}
	}

	switch info.Vendor {
	case VendorAnthropic:
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.APIKey = pc.APIKey
			o.BaseURL = base
			o.Model = modelID
		}), nil
	case VendorOpenAICompatible:
		return openai.NewModel(func(o *openai.Options) {
			o.APIKey = pc.APIKey
			o.BaseURL = base
			o.Model = modelID
			o.Provider = string(info.Kind)
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s: unknown vendor %d", ErrConstruction, info.Kind, info.Vendor)
	}
}
