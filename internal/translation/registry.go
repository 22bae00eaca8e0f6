package translation

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultProviderName is used when no default provider is configured.
const DefaultProviderName = BaiduProviderName

// Registry stores translation providers and resolves a default provider.
type Registry struct {
	providers       map[string]Provider
	defaultProvider string
}

func NewRegistry(defaultProvider string) *Registry {
	normalizedDefault := normalizeProviderName(defaultProvider)
	if normalizedDefault == "" {
		normalizedDefault = DefaultProviderName
	}

	return &Registry{
		providers:       make(map[string]Provider),
		defaultProvider: normalizedDefault,
	}
}

// Register adds one provider. The first registered provider becomes the
// default when the configured default is not registered.
func (r *Registry) Register(provider Provider) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if provider == nil {
		return fmt.Errorf("provider is nil")
	}
	name := normalizeProviderName(provider.Name())
	if name == "" {
		return fmt.Errorf("provider name is required")
	}
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("translation provider %q is already registered", name)
	}
	r.providers[name] = provider
	return nil
}

// Provider resolves a provider by name or id. Empty names use the default provider.
func (r *Registry) Provider(name string) (Provider, error) {
	if r == nil {
		return nil, fmt.Errorf("registry is nil")
	}
	if len(r.providers) == 0 {
		return nil, fmt.Errorf("no translation providers are registered")
	}

	resolvedName := normalizeProviderName(name)
	if resolvedName == "" {
		resolvedName = r.DefaultProvider()
	}
	if provider, ok := r.providers[resolvedName]; ok {
		return provider, nil
	}
	for _, provider := range r.providers {
		if normalizeProviderName(provider.Info().ID) == resolvedName {
			return provider, nil
		}
	}

	return nil, fmt.Errorf("translation provider %q is not registered (available: %s)", resolvedName, strings.Join(r.ProviderNames(), ", "))
}

func (r *Registry) DefaultProvider() string {
	if r == nil {
		return ""
	}
	if _, ok := r.providers[r.defaultProvider]; ok || len(r.providers) == 0 {
		return r.defaultProvider
	}
	return r.ProviderNames()[0]
}

func (r *Registry) ProviderNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Infos returns the descriptive records of all providers, sorted by name.
func (r *Registry) Infos() []ProviderInfo {
	names := r.ProviderNames()
	infos := make([]ProviderInfo, 0, len(names))
	for _, name := range names {
		infos = append(infos, r.providers[name].Info())
	}
	return infos
}

func normalizeProviderName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
