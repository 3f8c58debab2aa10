package participant

import "github.com/hupe1980/roundtable/config"

// Kind identifies a participant kind (a vendor endpoint family).
type Kind string

// Known participant kinds, in enumeration order.
const (
	KindAnthropic  Kind = "anthropic"
	KindOpenRouter Kind = "openrouter"
	KindOpenAI     Kind = "openai"
	KindGemini     Kind = "gemini"
	KindTogether   Kind = "together"
	KindGroq       Kind = "groq"
	KindZhipu      Kind = "zhipu"
)

// Vendor selects the client adapter used to build a handle.
type Vendor int

const (
	// VendorOpenAICompatible speaks the OpenAI Chat Completions protocol.
	VendorOpenAICompatible Vendor = iota
	// VendorAnthropic speaks the Anthropic Messages protocol.
	VendorAnthropic
)

// KindInfo is the static metadata of a participant kind.
type KindInfo struct {
	Kind         Kind
	Name         string // display name
	Glyph        string // display glyph used in progress digests
	DefaultModel string
	Priority     int // synthesis priority, higher wins
	Vendor       Vendor
	BaseURL      string // default endpoint; empty means the SDK default

	providerConfig func(*config.ProvidersConfig) config.ProviderConfig
}

// Config returns the kind's sub-block from providers.
func (k KindInfo) Config(providers config.ProvidersConfig) config.ProviderConfig {
	return k.providerConfig(&providers)
}

// kinds is the process-wide kind table. Its order is the enumeration order
// used to break priority ties during discovery; it is never mutated.
var kinds = [...]KindInfo{
	{
		Kind: KindAnthropic, Name: "Claude", Glyph: "🟣", DefaultModel: "claude-sonnet-4-20250514",
		Priority: 100, Vendor: VendorAnthropic,
		providerConfig: func(p *config.ProvidersConfig) config.ProviderConfig { return p.Anthropic },
	},
	{
		Kind: KindOpenRouter, Name: "OpenRouter", Glyph: "🔀", DefaultModel: "anthropic/claude-sonnet-4-20250514",
		Priority: 90, Vendor: VendorOpenAICompatible, BaseURL: "https://openrouter.ai/api/v1",
		providerConfig: func(p *config.ProvidersConfig) config.ProviderConfig { return p.OpenRouter },
	},
	{
		Kind: KindOpenAI, Name: "GPT", Glyph: "🟢", DefaultModel: "gpt-4o",
		Priority: 80, Vendor: VendorOpenAICompatible, BaseURL: "https://api.openai.com/v1",
		providerConfig: func(p *config.ProvidersConfig) config.ProviderConfig { return p.OpenAI },
	},
	{
		Kind: KindGemini, Name: "Gemini", Glyph: "💎", DefaultModel: "gemini-2.0-flash",
		Priority: 70, Vendor: VendorOpenAICompatible, BaseURL: "https://generativelanguage.googleapis.com/v1beta/openai/",
		providerConfig: func(p *config.ProvidersConfig) config.ProviderConfig { return p.Gemini },
	},
	{
		Kind: KindTogether, Name: "Together", Glyph: "🔵", DefaultModel: "meta-llama/Meta-Llama-3.1-70B-Instruct-Turbo",
		Priority: 60, Vendor: VendorOpenAICompatible, BaseURL: "https://api.together.xyz/v1",
		providerConfig: func(p *config.ProvidersConfig) config.ProviderConfig { return p.Together },
	},
	{
		Kind: KindGroq, Name: "Groq", Glyph: "⚡", DefaultModel: "llama-3.3-70b-versatile",
		Priority: 50, Vendor: VendorOpenAICompatible, BaseURL: "https://api.groq.com/openai/v1",
		providerConfig: func(p *config.ProvidersConfig) config.ProviderConfig { return p.Groq },
	},
	{
		Kind: KindZhipu, Name: "Zhipu", Glyph: "🇨🇳", DefaultModel: "glm-4-flash",
		Priority: 40, Vendor: VendorOpenAICompatible, BaseURL: "https://open.bigmodel.cn/api/paas/v4/",
		providerConfig: func(p *config.ProvidersConfig) config.ProviderConfig { return p.Zhipu },
	},
}

// Kinds returns the kind table in enumeration order.
func Kinds() []KindInfo {
	out := make([]KindInfo, len(kinds))
	copy(out, kinds[:])
	return out
}

// Lookup returns the static metadata for k.
func Lookup(k Kind) (KindInfo, bool) {
	for _, info := range kinds {
		if info.Kind == k {
			return info, true
		}
	}
	return KindInfo{}, false
}
