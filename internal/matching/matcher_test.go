package matching

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/DeGlorio/AI-Job-Matching/internal/similarity"
)

func TestIsMatchThresholdIsStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		skill     string
		text      string
		threshold float64
		expect    bool
	}{
		{name: "exactly at threshold", skill: "abc", text: "abcdefg", threshold: 0.6, expect: false},
		{name: "just above threshold", skill: "abc", text: "abcdef", threshold: 0.6, expect: true},
		{name: "lower threshold admits boundary", skill: "abc", text: "abcdefg", threshold: 0.59, expect: true},
		{name: "empty resume", skill: "Go", text: "", threshold: DefaultThreshold, expect: false},
		{name: "identical", skill: "Rust", text: "rust", threshold: DefaultThreshold, expect: true},
		{name: "threshold one never matches", skill: "rust", text: "rust", threshold: 1, expect: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsMatch(tt.skill, tt.text, tt.threshold); got != tt.expect {
				t.Fatalf("IsMatch(%q, %q, %v) = %v, expected %v", tt.skill, tt.text, tt.threshold, got, tt.expect)
			}
		})
	}
}

func TestIsMatchFollowsRatio(t *testing.T) {
	skill, text := "Java", "I know Java well"
	if got, expect := IsMatch(skill, text, 0.6), similarity.Ratio(skill, text) > 0.6; got != expect {
		t.Fatalf("IsMatch = %v, ratio comparison = %v", got, expect)
	}
}

func TestIsMatchCaseInsensitive(t *testing.T) {
	m := NewDefault()
	if m.IsMatch("PYTHON", "i use python daily") != m.IsMatch("python", "I USE PYTHON DAILY") {
		t.Fatal("expected case to be ignored")
	}
	if m.Score("PYTHON", "i use python daily") != m.Score("python", "I USE PYTHON DAILY") {
		t.Fatal("expected identical scores regardless of case")
	}
}

func TestNewValidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		threshold float64
		mode      Mode
		err       error
	}{
		{name: "defaults", threshold: DefaultThreshold, mode: ""},
		{name: "zero threshold", threshold: 0, mode: ModeTokenized},
		{name: "negative threshold", threshold: -0.1, mode: ModeWholeText, err: ErrInvalidThreshold},
		{name: "threshold above one", threshold: 1.1, mode: ModeWholeText, err: ErrInvalidThreshold},
		{name: "nan threshold", threshold: math.NaN(), mode: ModeWholeText, err: ErrInvalidThreshold},
		{name: "unknown mode", threshold: 0.6, mode: "fuzzy", err: ErrUnknownMode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m, err := New(tt.threshold, tt.mode)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Fatalf("expected %v, got %v", tt.err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Threshold() != tt.threshold {
				t.Fatalf("expected threshold %v, got %v", tt.threshold, m.Threshold())
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for input, expect := range map[string]Mode{
		"":             ModeWholeText,
		"whole-text":   ModeWholeText,
		" Tokenized  ": ModeTokenized,
	} {
		got, err := ParseMode(input)
		if err != nil {
			t.Fatalf("ParseMode(%q): unexpected error: %v", input, err)
		}
		if got != expect {
			t.Fatalf("ParseMode(%q) = %q, expected %q", input, got, expect)
		}
	}
}

func TestIsMatchAtOverridesThreshold(t *testing.T) {
	m := NewDefault()

	if ok, err := m.IsMatchAt("abc", "abcdefg", 0.6); err != nil || ok {
		t.Fatalf("expected no match at the default threshold, got %v, %v", ok, err)
	}
	if ok, err := m.IsMatchAt("abc", "abcdefg", 0.5); err != nil || !ok {
		t.Fatalf("expected match with a lower per-call threshold, got %v, %v", ok, err)
	}
	if m.Threshold() != DefaultThreshold {
		t.Fatalf("per-call threshold must not change the matcher, got %v", m.Threshold())
	}
}

func TestIsMatchAtRejectsInvalidThreshold(t *testing.T) {
	t.Parallel()

	m := NewDefault()
	for _, threshold := range []float64{math.NaN(), -0.1, 1.5, math.Inf(1)} {
		ok, err := m.IsMatchAt("abc", "abc", threshold)
		if !errors.Is(err, ErrInvalidThreshold) {
			t.Fatalf("IsMatchAt(%v): expected ErrInvalidThreshold, got %v", threshold, err)
		}
		if ok {
			t.Fatalf("IsMatchAt(%v): rejected threshold must not match", threshold)
		}
	}
}

func TestTokenizedScore(t *testing.T) {
	t.Parallel()

	m, err := New(DefaultThreshold, ModeTokenized)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		skill  string
		text   string
		expect float64
	}{
		{name: "single word", skill: "Python", text: "Experienced Python and FastAPI developer", expect: 1},
		{name: "multi word phrase", skill: "machine learning", text: "Built machine-learning pipelines", expect: 1},
		{name: "symbols kept", skill: "C++", text: "Modern C++, Rust.", expect: 1},
		{name: "trailing dot dropped", skill: "Go", text: "I write Go.", expect: 1},
		{name: "skill longer than resume", skill: "distributed systems design", text: "systems", expect: similarity.Ratio("distributed systems design", "systems")},
		{name: "empty resume", skill: "Go", text: "", expect: 0},
		{name: "punctuation only skill", skill: "--", text: "go", expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := m.Score(tt.skill, tt.text); math.Abs(got-tt.expect) > 1e-12 {
				t.Fatalf("Score(%q, %q) = %v, expected %v", tt.skill, tt.text, got, tt.expect)
			}
		})
	}
}

func TestWholeTextDilutesShortSkills(t *testing.T) {
	whole := NewDefault()
	tokenized, err := New(DefaultThreshold, ModeTokenized)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := "I know Java well"
	if whole.IsMatch("Java", text) {
		t.Fatalf("expected whole-text score %v to stay below threshold", whole.Score("Java", text))
	}
	if !tokenized.IsMatch("Java", text) {
		t.Fatal("expected tokenized mode to find the word")
	}
}

func TestWords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		expect []string
	}{
		{input: "", expect: nil},
		{input: "Go, Rust and C#.", expect: []string{"go", "rust", "and", "c#"}},
		{input: "Node.js / .NET  developer", expect: []string{"node.js", ".net", "developer"}},
		{input: "machine-learning\nC++", expect: []string{"machine", "learning", "c++"}},
		{input: "...", expect: nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := words(tt.input); !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("words(%q) = %q, expected %q", tt.input, got, tt.expect)
			}
		})
	}
}
