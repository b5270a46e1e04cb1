// Package main provides the genie CLI entry point.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"genietalk/cmd/genie/config"
	"genietalk/internal/llm"
	"genietalk/internal/logging"
	"genietalk/internal/persona"
	"genietalk/internal/session"
)

const version = "0.1.0"

// Global state
var (
	logger *zap.Logger

	verbose      bool
	apiKey       string
	providerName string
	modelName    string
	personaFlag  string
	languageFlag string
	docPaths     []string
	timeout      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "genie",
	Short: "GenieTalk - a multi-persona AI chat assistant",
	Long: `GenieTalk is a terminal chat assistant with selectable personas,
preset or free-text reply languages, document-grounded Q&A over PDF and
TXT files, and an agentic mode that plans a goal, labels each plan step
with a tool, and synthesizes the final answer.

The API key is taken from --api-key or the environment for the current
session only; it is never written to disk.

Run without arguments to start the interactive chat interface.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive chat owns the terminal and logs to a file
		// instead; it builds its own logger.
		if cmd.Name() == "genie" {
			return nil
		}
		var err error
		logger, err = logging.New(logging.Options{Verbose: verbose})
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveChat()
	},
}

// buildClient resolves provider, API key, and model from flags, the
// environment, and saved preferences, in that order. When the key
// comes from a provider-specific environment variable and no
// --provider flag is set, that provider wins.
func buildClient(cfg config.Config) (llm.Client, llm.Config, error) {
	c := llm.Config{
		Provider: llm.Provider(strings.ToLower(providerName)),
		APIKey:   apiKey,
		Model:    modelName,
	}
	if c.Provider == "" {
		c.Provider = llm.Provider(cfg.Provider)
	}
	if c.Model == "" {
		c.Model = cfg.Model
	}
	if c.APIKey == "" {
		key, detected := llm.DetectAPIKey()
		c.APIKey = key
		if providerName == "" && detected != "" {
			c.Provider = detected
		}
	}

	client, err := llm.NewClient(c)
	if err != nil {
		return nil, c, err
	}
	return client, c, nil
}

// newSessionFromConfig starts a session with the configured defaults,
// overridden by any --persona and --language flags.
func newSessionFromConfig(cfg config.Config) *session.Session {
	sess := session.New()

	name := personaFlag
	if name == "" {
		name = cfg.Persona
	}
	if p, err := persona.Parse(name); err == nil {
		sess.Persona = p
	}

	lang := languageFlag
	if lang == "" {
		lang = cfg.Language
	}
	sess.Language = persona.NormalizeLanguage(lang)

	return sess
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for this session (or set GENIE_API_KEY / GEMINI_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&providerName, "provider", "", "Model provider: gemini, openai, openrouter, mock")
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "Model name (empty uses the provider default)")
	rootCmd.PersistentFlags().StringVar(&personaFlag, "persona", "", "Persona for the session (see 'genie personas')")
	rootCmd.PersistentFlags().StringVar(&languageFlag, "language", "", "Reply language, preset or free text")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Model call timeout")

	// One-shot document attachments
	askCmd.Flags().StringArrayVar(&docPaths, "doc", nil, "Attach a PDF or TXT document (repeatable)")
	goalCmd.Flags().StringArrayVar(&docPaths, "doc", nil, "Attach a PDF or TXT document (repeatable)")

	// Add commands to root
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(personasCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
	configCmd.AddCommand(configSetCmd)
}

func main() {
	// A .env next to the binary is a convenient per-session key source.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
