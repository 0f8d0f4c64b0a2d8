package model

import (
	"encoding/json"
	"io"
	"os"
	"time"
)

// JobSeeker is a registered candidate. ResumeText is the extracted plain text
// of the resume; it is never modified after registration.
type JobSeeker struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	ResumeText   string    `json:"resume_text"`
	RegisteredAt time.Time `json:"registered_at"`
}

// JobPosting is an employer's job. Skills may repeat; their order carries no
// matching semantics. Questions are kept for interview flows and ignored by
// matching.
type JobPosting struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Skills    []string  `json:"skills_required"`
	Questions []string  `json:"questions"`
	PostedAt  time.Time `json:"posted_at"`
}

// SkillScore is a required skill together with its similarity to a resume.
type SkillScore struct {
	Skill string  `json:"skill"`
	Score float64 `json:"score"`
}

// MatchResult says that at least one required skill of the posting was found
// in the seeker's resume. Skills is only filled when details are requested.
type MatchResult struct {
	SeekerID     string       `json:"seeker_id,omitempty"`
	SeekerName   string       `json:"seeker_name"`
	PostingID    string       `json:"posting_id,omitempty"`
	PostingTitle string       `json:"posting_title"`
	Skills       []SkillScore `json:"skills,omitempty"`
}

// Matches is an ordered list of match results: seekers in registration order,
// postings in registration order within each seeker.
type Matches []MatchResult

func (m Matches) Len() int {
	return len(m)
}

// Pairs returns the (seeker name, posting title) pairs in order.
func (m Matches) Pairs() [][2]string {
	pairs := make([][2]string, 0, len(m))
	for _, r := range m {
		pairs = append(pairs, [2]string{r.SeekerName, r.PostingTitle})
	}
	return pairs
}

// ReportByPosting groups seeker names by posting title.
func (m Matches) ReportByPosting() map[string][]string {
	report := make(map[string][]string)
	for _, r := range m {
		report[r.PostingTitle] = append(report[r.PostingTitle], r.SeekerName)
	}
	return report
}

// DumpToTmpFile writes the matches as indented JSON into a new temporary file
// and returns its name.
func (m Matches) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "matches_*.json")
	if err != nil {
		return "", err
	}
	if err := m.dump(file); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func (m Matches) dump(w io.WriteCloser) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]Matches{"matches": m}); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
