package prompts

import (
	_ "embed"
)

//go:embed researcher.txt
var ResearcherPrompt string
