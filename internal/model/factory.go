package model

import (
	"fmt"

	"cargodocs/internal/config"
	"cargodocs/internal/port"
)

// ProviderFactory is a function that creates a ModelCaller from a provider config.
type ProviderFactory func(cfg *config.ModelProviderConfig) (port.ModelCaller, error)

// registry of model provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a model provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewCaller creates a ModelCaller from a provider config using the registered factory.
func NewCaller(cfg *config.ModelProviderConfig) (port.ModelCaller, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Provider)
	}
	return factory(cfg)
}
