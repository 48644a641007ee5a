package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/arinjayjha/calc-research-agent/internal/di"
	"github.com/arinjayjha/calc-research-agent/internal/infrastructure/env"
	"github.com/arinjayjha/calc-research-agent/internal/infrastructure/userinteraction"
)

const queryTimeout = 2 * time.Minute

func main() {
	envService := env.NewEnvService()
	debug := envService.GetBool("DEBUG", false)

	container, err := di.NewContainer(envService, di.Config{Debug: debug})
	if err != nil {
		log.Fatalf("initialization failed: %v", err)
	}
	defer container.Close()

	console := userinteraction.NewConsole()

	fmt.Println("Calc + Research Agent")
	fmt.Println("Math uses a safe evaluator; search uses Tavily + Azure OpenAI summarizer.")
	fmt.Println("Commands: :history :clear :export <file> :status :quit")
	console.RenderStatus(container.SearchConfigured(), container.Deployment)

	for {
		line, err := console.ReadLine("\nAsk something (math or info) > ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			console.RenderError(err)
			return
		}

		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if quit := runCommand(container, console, line); quit {
				return
			}
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		resp := container.Answerer.AnswerQuery(ctx, line)
		cancel()

		console.RenderResponse(resp)
		container.History.Append(line, resp)
	}
}

func runCommand(container *di.Container, console *userinteraction.Console, line string) (quit bool) {
	fields := strings.Fields(line)

	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":history":
		console.RenderHistory(container.History.Last(10))
	case ":clear":
		container.History.Clear()
		fmt.Println("History cleared.")
	case ":status":
		console.RenderStatus(container.SearchConfigured(), container.Deployment)
	case ":export":
		if len(fields) < 2 {
			fmt.Println("Usage: :export <file>")
			return false
		}
		if err := exportHistory(container, fields[1]); err != nil {
			console.RenderError(err)
			return false
		}
		fmt.Printf("History written to %s\n", fields[1])
	default:
		fmt.Printf("Unknown command %q\n", fields[0])
	}

	return false
}

func exportHistory(container *di.Container, path string) error {
	data, err := container.History.ExportJSON()
	if err != nil {
		return fmt.Errorf("export history: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
