package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"genietalk/cmd/genie/config"
	"genietalk/internal/llm"
	"genietalk/internal/persona"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the resolved configuration and paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}

		provider := cfg.Provider
		if providerName != "" {
			provider = strings.ToLower(providerName)
		}
		model := cfg.Model
		if modelName != "" {
			model = modelName
		}
		if model == "" {
			model = "(provider default)"
		}

		key := apiKey
		if key == "" {
			key, _ = llm.DetectAPIKey()
		}
		keyState := "missing"
		if key != "" {
			keyState = "configured (memory only, never saved)"
		}

		configPath, _ := config.ConfigFile()
		logPath, _ := config.LogFile()

		fmt.Printf("Provider:   %s\n", provider)
		fmt.Printf("Model:      %s\n", model)
		fmt.Printf("API key:    %s\n", keyState)
		fmt.Printf("Persona:    %s\n", cfg.Persona)
		fmt.Printf("Language:   %s\n", cfg.Language)
		fmt.Printf("Theme:      %s\n", cfg.Theme)
		fmt.Printf("Config:     %s\n", configPath)
		fmt.Printf("Log:        %s\n", logPath)
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change saved preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			cfg = config.DefaultConfig()
		}
		fmt.Printf("theme:    %s\n", cfg.Theme)
		fmt.Printf("provider: %s\n", cfg.Provider)
		fmt.Printf("model:    %s\n", valueOrDefault(cfg.Model))
		fmt.Printf("persona:  %s\n", cfg.Persona)
		fmt.Printf("language: %s\n", cfg.Language)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a preference: theme, provider, model, persona, or language",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	field := strings.ToLower(args[0])
	value := args[1]

	switch field {
	case "theme":
		v := strings.ToLower(value)
		if v != "light" && v != "dark" && v != "auto" {
			return fmt.Errorf("invalid theme %q (valid: light, dark, auto)", value)
		}
		cfg.Theme = v

	case "provider":
		v := strings.ToLower(value)
		switch llm.Provider(v) {
		case llm.ProviderGemini, llm.ProviderOpenAI, llm.ProviderOpenRouter, llm.ProviderMock:
			cfg.Provider = v
		default:
			return fmt.Errorf("invalid provider %q (valid: gemini, openai, openrouter, mock)", value)
		}

	case "model":
		cfg.Model = value

	case "persona":
		p, err := persona.Parse(value)
		if err != nil {
			return err
		}
		cfg.Persona = string(p)

	case "language":
		cfg.Language = persona.NormalizeLanguage(value)

	case "key", "api-key", "apikey":
		return fmt.Errorf("the API key is never saved; pass --api-key, set GENIE_API_KEY, or use /key in the chat")

	default:
		return fmt.Errorf("unknown field %q (valid: theme, provider, model, persona, language)", args[0])
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("%s set to %q\n", field, value)
	return nil
}

func valueOrDefault(s string) string {
	if s == "" {
		return "(provider default)"
	}
	return s
}
