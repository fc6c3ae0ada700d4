package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/riskibarqy/sports-dashboard/external/gemini"
	"github.com/riskibarqy/sports-dashboard/internal/config"
	"github.com/riskibarqy/sports-dashboard/internal/platform/logging"
)

const defaultProbe = "Reply with the single word OK."

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is required")
	}

	client := gemini.NewClient(gemini.ClientConfig{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
		Logger:  logging.New(logging.Options{Level: logging.LevelWarn, Output: os.Stderr, Name: "modelcheck"}),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cmd := strings.ToLower(strings.TrimSpace(os.Args[1]))
	switch cmd {
	case "list":
		models, err := client.ListModels(ctx)
		if err != nil {
			log.Fatalf("list models: %v", err)
		}
		printModels(models, client.Model())
	case "probe":
		prompt := strings.TrimSpace(strings.Join(os.Args[2:], " "))
		if prompt == "" {
			prompt = defaultProbe
		}
		grounded := os.Getenv("MODELCHECK_GROUNDED") == "true"
		started := time.Now()
		answer, err := client.Generate(ctx, prompt, grounded)
		if err != nil {
			log.Fatalf("probe %s: %v", client.Model(), err)
		}
		fmt.Printf("model: %s\n", client.Model())
		fmt.Printf("grounded: %t\n", grounded)
		fmt.Printf("took: %s\n", time.Since(started).Round(time.Millisecond))
		fmt.Printf("answer: %s\n", answer)
	default:
		printUsage()
		os.Exit(2)
	}
}

func printModels(models []gemini.Model, configured string) {
	generating := 0
	for _, m := range models {
		if !m.CanGenerate() {
			continue
		}
		generating++
		marker := " "
		if m.ID() == configured {
			marker = "*"
		}
		fmt.Printf("%s %-40s %s\n", marker, m.ID(), m.DisplayName)
	}
	fmt.Printf("%d of %d models support generateContent\n", generating, len(models))
}

func printUsage() {
	fmt.Println("usage:")
	fmt.Println("  go run ./cmd/modelcheck list")
	fmt.Println("  go run ./cmd/modelcheck probe [prompt]")
	fmt.Println("set MODELCHECK_GROUNDED=true to probe with search grounding")
}
