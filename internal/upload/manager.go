package upload

import (
	"fmt"
	"sort"
)

// ProviderFactory creates a new, unconfigured provider
type ProviderFactory func() Provider

var registry = make(map[string]ProviderFactory)

// RegisterProvider registers a provider under name, replacing any previous one
func RegisterProvider(name string, factory ProviderFactory) {
	registry[name] = factory
}

// NewProvider creates a new provider instance by name
func NewProvider(name string) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown upload provider: %s (available: %v)", name, Providers())
	}
	return factory(), nil
}

// Providers lists the registered provider names
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	RegisterProvider("minio", func() Provider {
		return NewMinioProvider()
	})
}
