package mathsolver

import (
	"errors"
	"testing"

	"github.com/arinjayjha/calc-research-agent/internal/domain/entity"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    string
		wantErr bool
	}{
		{
			name:  "plain expression",
			query: "(23*47)+199",
			want:  "(23*47)+199",
		},
		{
			name:  "expression embedded in prose",
			query: "please compute 12 + 30 for me",
			want:  "12 + 30",
		},
		{
			name:  "longest run wins over stray year",
			query: "in 2024, 23*47+199",
			want:  "23*47+199",
		},
		{
			name:  "caret normalized before scanning",
			query: "2^10",
			want:  "2**10",
		},
		{
			name:  "decimal with exponent",
			query: "multiply 1.5e-3 * 1000",
			want:  "1.5e-3 * 1000",
		},
		{
			name:    "no candidate at all",
			query:   "hello world",
			wantErr: true,
		},
		{
			name:    "whitespace-only runs are not candidates",
			query:   "what is love",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.query)
			if tt.wantErr {
				if !errors.Is(err, ErrNoExpression) {
					t.Fatalf("Extract(%q) error = %v, want ErrNoExpression", tt.query, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract(%q) failed: %v", tt.query, err)
			}
			if got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want float64
	}{
		{"addition with parens", "(23*47)+199", 1280},
		{"power operator", "2**3", 8},
		{"caret power", "2^3", 8},
		{"unary minus binds looser than power", "-2**2", -4},
		{"negative exponent", "2**-2", 0.25},
		{"modulo", "10%3", 1},
		{"leading dot literal", ".5+.25", 0.75},
		{"trailing dot literal", "3.", 3},
		{"nested parens", "((2+3)*4)/2", 10},
		{"scientific notation", "1.5e-3*1000", 1.5},
		{"whitespace tolerated", "  7 *  3 ", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q) failed: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"division by zero", "10/0"},
		{"modulo by zero", "10%0"},
		{"dangling operator", "2+*3"},
		{"missing closing paren", "(2+3"},
		{"empty expression", "   "},
		{"invalid characters", "2+x"},
		{"stray exponent letter", "2e"},
		{"overflow to infinity", "1e308*10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.expr)
			var evalErr *EvalError
			if !errors.As(err, &evalErr) {
				t.Fatalf("Evaluate(%q) error = %v, want *EvalError", tt.expr, err)
			}
		})
	}
}

func TestSolve(t *testing.T) {
	resp, err := Solve("(23*47)+199")
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if resp.Mode != entity.ModeMath {
		t.Errorf("mode = %q, want math", resp.Mode)
	}
	if resp.Answer != "1280" {
		t.Errorf("answer = %q, want 1280", resp.Answer)
	}
	if resp.Sources == nil || len(resp.Sources) != 0 {
		t.Errorf("sources = %v, want empty", resp.Sources)
	}
}

func TestSolve_DivisionByZero(t *testing.T) {
	_, err := Solve("what is 10/0")

	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("error = %v, want *EvalError", err)
	}
}

func TestSolve_NoExpression(t *testing.T) {
	_, err := Solve("hello world")

	if !errors.Is(err, ErrNoExpression) {
		t.Fatalf("error = %v, want ErrNoExpression", err)
	}
}
