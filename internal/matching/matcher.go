// Package matching decides whether a required skill is present in a resume
// and aggregates those decisions into seeker/posting matches.
package matching

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/DeGlorio/AI-Job-Matching/internal/similarity"
)

// DefaultThreshold is the similarity a skill must exceed to count as present.
const DefaultThreshold = 0.6

// Mode selects what a skill is compared against.
type Mode string

const (
	// ModeWholeText compares the skill with the entire resume text.
	ModeWholeText Mode = "whole-text"
	// ModeTokenized compares the skill with every run of resume words as long
	// as the skill and keeps the best score.
	ModeTokenized Mode = "tokenized"
)

var (
	ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")
	ErrUnknownMode      = errors.New("unknown matching mode")
)

// ParseMode converts a configuration value into a Mode. Empty means whole-text.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeWholeText:
		return ModeWholeText, nil
	case ModeTokenized:
		return ModeTokenized, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// IsMatch reports whether skill scores strictly above threshold against the
// whole resumeText. The threshold is not validated: below 0 everything
// matches, and at or above 1 nothing does. Use Matcher for a checked policy.
func IsMatch(skill, resumeText string, threshold float64) bool {
	return similarity.Ratio(skill, resumeText) > threshold
}

// Matcher applies a threshold policy and a comparison mode. It holds no
// per-call state and is safe for concurrent use.
type Matcher struct {
	threshold float64
	mode      Mode
	ratio     func(a, b string) float64
}

// New returns a Matcher for the given threshold and mode.
func New(threshold float64, mode Mode) (*Matcher, error) {
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	mode, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}

	return &Matcher{
		threshold: threshold,
		mode:      mode,
		ratio:     similarity.Ratio,
	}, nil
}

// NewDefault returns a whole-text Matcher with DefaultThreshold.
func NewDefault() *Matcher {
	return &Matcher{threshold: DefaultThreshold, mode: ModeWholeText, ratio: similarity.Ratio}
}

func (m *Matcher) Threshold() float64 { return m.threshold }

func (m *Matcher) Mode() Mode { return m.mode }

// Score returns the similarity of skill to resumeText under the matcher's mode.
func (m *Matcher) Score(skill, resumeText string) float64 {
	return m.score(skill, m.prepare(resumeText))
}

// IsMatch reports whether skill is present in resumeText.
func (m *Matcher) IsMatch(skill, resumeText string) bool {
	return m.Score(skill, resumeText) > m.threshold
}

// IsMatchAt is IsMatch with a per-call threshold. It rejects a threshold
// outside [0, 1] with ErrInvalidThreshold, as New does.
func (m *Matcher) IsMatchAt(skill, resumeText string, threshold float64) (bool, error) {
	if err := validateThreshold(threshold); err != nil {
		return false, err
	}
	return m.Score(skill, resumeText) > threshold, nil
}

// resume is a resume prepared once for scoring against many skills.
type resume struct {
	text  string
	words []string
}

func (m *Matcher) prepare(text string) resume {
	r := resume{text: text}
	if m.mode == ModeTokenized {
		r.words = words(text)
	}
	return r
}

func (m *Matcher) score(skill string, r resume) float64 {
	if m.mode != ModeTokenized {
		return m.ratio(skill, r.text)
	}

	skillWords := words(skill)
	n := len(skillWords)
	if n == 0 || len(r.words) == 0 {
		return 0
	}

	phrase := strings.Join(skillWords, " ")
	if n > len(r.words) {
		return m.ratio(phrase, strings.Join(r.words, " "))
	}

	best := 0.0
	for i := 0; i+n <= len(r.words); i++ {
		s := m.ratio(phrase, strings.Join(r.words[i:i+n], " "))
		if s > best {
			best = s
			if best == 1 {
				break
			}
		}
	}
	return best
}

func validateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	return nil
}
