package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"genietalk/cmd/genie/config"
	"genietalk/internal/document"
	"genietalk/internal/persona"
	"genietalk/internal/session"
)

var askCmd = &cobra.Command{
	Use:   "ask [message]",
	Short: "Send one message and print the reply",
	Long: `Send a single message through the configured persona and language
and print the reply to stdout. Attach documents with --doc to ground
the answer in their text.`,
	Example: `  genie ask "Explain goroutines in one paragraph"
  genie ask --persona coding --language French "What is recursion?"
  genie ask --doc contract.pdf --persona document_qa "What does the contract say about renewal?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(strings.Join(args, " "), session.ModeChat)
	},
}

var goalCmd = &cobra.Command{
	Use:   "goal [goal]",
	Short: "Run one goal through the agentic plan, tool-map, synthesize chain",
	Long: `Run a goal through the three-stage agentic chain: plan the steps,
label each step with a tool, and synthesize the final answer. The
printed reply includes the plan with its tool labels.`,
	Example: `  genie goal "Plan a 3-day trip to Rome on a budget"
  genie goal --doc report.pdf "Summarize the findings and suggest next steps"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runOneShot(strings.Join(args, " "), session.ModeAgentic)
	},
}

var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List available personas and reply languages",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("Personas:")
		for _, e := range persona.Catalog() {
			fmt.Printf("  %-14s %s\n", e.ID, e.Description)
		}
		fmt.Println()
		fmt.Println("Reply languages: " + strings.Join(persona.Languages(), ", "))
		fmt.Println("Any other language also works, e.g. --language \"Pirate English\".")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the genie version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("genie v%s\n", version)
	},
}

// runOneShot handles the ask and goal commands.
func runOneShot(message string, mode session.Mode) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("Received shutdown signal")
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	client, llmCfg, err := buildClient(cfg)
	if err != nil {
		return err
	}

	sess := newSessionFromConfig(cfg)
	sess.Mode = mode

	if len(docPaths) > 0 {
		files, err := readDocuments(docPaths)
		if err != nil {
			return err
		}
		text, err := document.ExtractAll(ctx, files)
		if err != nil {
			return err
		}
		names := make([]string, len(files))
		for i, f := range files {
			names[i] = f.Name
		}
		sess.SetDocument(strings.Join(names, ", "), text)
	}

	logger.Debug("one-shot request",
		zap.String("session_id", sess.ID),
		zap.String("mode", string(mode)),
		zap.String("provider", string(llmCfg.Provider)))

	svc := session.NewService(client, logger)
	reply, err := svc.HandleMessage(ctx, sess, message)
	if err != nil {
		return err
	}

	fmt.Println(reply.Text)
	return nil
}

// readDocuments loads the given paths into extraction inputs.
func readDocuments(paths []string) ([]document.File, error) {
	files := make([]document.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		files = append(files, document.File{
			Name: filepath.Base(path),
			Data: data,
		})
	}
	return files, nil
}
