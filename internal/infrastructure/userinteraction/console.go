package userinteraction

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/arinjayjha/calc-research-agent/internal/domain/entity"
	"github.com/arinjayjha/calc-research-agent/internal/history"
)

// Console reads queries from stdin and renders responses, history and
// status for the interactive agent.
type Console struct {
	reader *bufio.Reader
}

func NewConsole() *Console {
	return &Console{
		reader: bufio.NewReader(os.Stdin),
	}
}

// ReadLine prompts and returns one trimmed input line.
func (c *Console) ReadLine(prompt string) (string, error) {
	fmt.Print(prompt)

	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read user input: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func (c *Console) RenderResponse(resp entity.AgentResponse) {
	badge := color.New(color.FgCyan, color.Bold)
	if resp.Mode == entity.ModeError {
		badge = color.New(color.FgRed, color.Bold)
	}
	badge.Printf("\n[%s]\n", resp.Mode)

	fmt.Println(resp.Answer)

	if len(resp.Sources) > 0 {
		dim := color.New(color.Faint)
		dim.Println("Sources:")
		for _, url := range resp.Sources {
			dim.Printf("  - %s\n", url)
		}
	}
	fmt.Println()
}

// RenderHistory prints entries most recent first, the way the session
// history is displayed.
func (c *Console) RenderHistory(entries []history.Entry) {
	if len(entries) == 0 {
		color.New(color.Faint).Println("No history yet. Run a query!")
		return
	}

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		header := color.New(color.FgYellow)
		header.Printf("%d. [%s] %s\n", len(entries)-i, e.Timestamp, truncate(e.Query, 50))

		fmt.Printf("   mode: %s\n", e.Response.Mode)
		fmt.Printf("   %s\n", truncate(e.Response.Answer, 200))
		for _, url := range e.Response.Sources {
			fmt.Printf("   - %s\n", url)
		}
	}
}

func (c *Console) RenderStatus(searchConfigured bool, deployment string) {
	fmt.Println("Status:")
	fmt.Printf("  Azure deployment: %s\n", orMissing(deployment))
	if searchConfigured {
		fmt.Println("  Tavily key: set")
	} else {
		fmt.Println("  Tavily key: missing")
	}
}

func (c *Console) RenderError(err error) {
	color.New(color.FgRed).Printf("Error: %v\n", err)
}

func orMissing(s string) string {
	if s == "" {
		return "missing"
	}
	return s
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
