// Package main implements the cardgen command line tool, which turns source
// text into flashcard proposals through the OpenRouter gateway and supports
// ad-hoc chat exchanges for prompt experiments.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abialobrodzki/10x-cards-sub001/internal/config"
	"github.com/abialobrodzki/10x-cards-sub001/internal/platform/logger"
	"github.com/abialobrodzki/10x-cards-sub001/internal/platform/openrouter"
	"github.com/abialobrodzki/10x-cards-sub001/internal/source"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cardgen: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		filePath = flag.String("file", "", "read source text from this file instead of stdin")
		chatMsg  = flag.String("chat", "", "send a chat message instead of generating a card")
		model    = flag.String("model", "", "override the configured model")
	)
	flag.Parse()

	client, err := initializeApp()
	if err != nil {
		return err
	}

	if *model != "" {
		client.SetModel(*model)
	}

	ctx := context.Background()

	if *chatMsg != "" {
		resp, err := client.Chat(ctx, *chatMsg)
		if err != nil {
			return err
		}
		fmt.Println(resp.Message)
		return nil
	}

	text, err := readSource(*filePath)
	if err != nil {
		return err
	}

	proposal, err := client.GenerateCard(ctx, text)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(proposal, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode proposal: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// initializeApp loads configuration and sets up application components.
func initializeApp() (*openrouter.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server)

	slog.Info("Configuration loaded",
		"log_level", cfg.Server.LogLevel,
		"model", cfg.LLM.Model)

	client, err := openrouter.NewClient(log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gateway client: %w", err)
	}

	return client, nil
}

// readSource reads source text from the given file or from stdin and
// normalizes it for prompting (HTML input becomes markdown).
func readSource(path string) (string, error) {
	var raw []byte
	var err error

	if path != "" {
		raw, err = os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read source file: %w", err)
		}
	} else {
		raw, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	return source.Normalize(string(raw))
}
