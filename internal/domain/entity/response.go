package entity

// Mode tags which handler produced a response.
type Mode string

const (
	ModeMath   Mode = "math"
	ModeSearch Mode = "search"
	ModeError  Mode = "error"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeMath, ModeSearch, ModeError:
		return true
	}
	return false
}

// AgentResponse is the single contract crossing the core boundary.
// Sources preserve the provider's relevance order and never exceed
// MaxSources entries after validation.
type AgentResponse struct {
	Mode    Mode     `json:"mode"`
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// MaxSources caps the sources field of any validated response.
const MaxSources = 3

// ErrorResponse builds a well-formed error-mode payload.
func ErrorResponse(answer string) AgentResponse {
	return AgentResponse{
		Mode:    ModeError,
		Answer:  answer,
		Sources: []string{},
	}
}
