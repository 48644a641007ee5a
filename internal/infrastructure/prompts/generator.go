package prompts

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Snippet is one grounding block handed to the summarizer.
type Snippet struct {
	Title   string
	Content string
	URL     string
}

type groundingData struct {
	Query    string
	Snippets string
}

// BuildGroundingPrompt renders the researcher prompt: the summarizer may use
// only the snippet blocks, must produce exactly three bullet points, and has
// to state insufficient evidence explicitly when the snippets do not cover
// the query.
func BuildGroundingPrompt(query string, snippets []Snippet) (string, error) {
	blocks := make([]string, 0, len(snippets))
	for _, s := range snippets {
		blocks = append(blocks, fmt.Sprintf("TITLE: %s\nSNIPPET: %s\nURL: %s", s.Title, s.Content, s.URL))
	}

	tmpl, err := template.New("researcher").Parse(ResearcherPrompt)
	if err != nil {
		return "", fmt.Errorf("parse researcher template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, groundingData{
		Query:    query,
		Snippets: strings.Join(blocks, "\n\n---\n\n"),
	}); err != nil {
		return "", fmt.Errorf("render researcher template: %w", err)
	}

	return strings.TrimRight(buf.String(), "\n"), nil
}
