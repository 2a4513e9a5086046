package main

import (
	"fmt"
	"log"

	"cargodocs/internal/config"
	"cargodocs/internal/extract"
	"cargodocs/internal/handler"
	"cargodocs/internal/model"
	"cargodocs/internal/model/gemini"
	"cargodocs/internal/model/openai"
	"cargodocs/internal/port"
	"cargodocs/internal/renderer/poppler"
	"cargodocs/internal/router"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Register model providers
	model.RegisterProvider("openai", func(c *config.ModelProviderConfig) (port.ModelCaller, error) {
		return openai.NewClient(c), nil
	})
	model.RegisterProvider("gemini", func(c *config.ModelProviderConfig) (port.ModelCaller, error) {
		return gemini.NewClient(c), nil
	})

	caller, err := buildCaller(&cfg.Model)
	if err != nil {
		return err
	}

	// Initialize pipeline
	pageRenderer := poppler.NewRenderer(&cfg.Render)
	extractSvc := extract.NewService(pageRenderer, caller, &cfg.Extract)

	// Initialize handlers
	extractH := handler.NewExtractHandler(extractSvc, &cfg.Upload)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(cfg, extractH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// buildCaller wires the primary provider and, when a secondary is configured,
// wraps both in a fallback chain.
func buildCaller(cfg *config.ModelConfig) (port.ModelCaller, error) {
	primary, err := model.NewCaller(&cfg.Primary)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize primary model provider: %w", err)
	}

	secondaryCfg := cfg.SecondaryConfig()
	if secondaryCfg == nil {
		return primary, nil
	}

	secondary, err := model.NewCaller(secondaryCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secondary model provider: %w", err)
	}

	return model.NewFallbackCaller(
		[]port.ModelCaller{primary, secondary},
		[]string{cfg.Primary.Provider, secondaryCfg.Provider},
	), nil
}
