// Package dataset loads job seekers and job postings from a YAML, JSON or
// TOML file so they can be registered in bulk.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/DeGlorio/AI-Job-Matching/internal/model"
)

var ErrInvalidRecord = errors.New("invalid dataset record")

// Seeker is a job seeker record. The resume comes either inline or from a
// plain-text file resolved relative to the dataset file.
type Seeker struct {
	Name       string `mapstructure:"name"`
	Email      string `mapstructure:"email"`
	ResumeText string `mapstructure:"resume-text"`
	ResumeFile string `mapstructure:"resume-file"`
}

// Posting is a job posting record.
type Posting struct {
	Title     string   `mapstructure:"title"`
	Skills    []string `mapstructure:"skills"`
	Questions []string `mapstructure:"questions"`
}

// Dataset holds the records in file order with resume files already read.
type Dataset struct {
	Path     string
	Seekers  []Seeker
	Postings []Posting
}

// Registrar accepts registrations; *jobmatch.Service satisfies it.
type Registrar interface {
	RegisterSeeker(name, email, resumeText string) (model.JobSeeker, error)
	RegisterPosting(title string, skills, questions []string) (model.JobPosting, error)
}

// Load reads the dataset at path. The format is taken from the extension.
func Load(path string) (*Dataset, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("dataset path is required")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading dataset %q: %w", path, err)
	}

	ds := &Dataset{Path: path}
	if err := decode(v.Get("seekers"), &ds.Seekers); err != nil {
		return nil, fmt.Errorf("decoding seekers: %w", err)
	}
	if err := decode(v.Get("postings"), &ds.Postings); err != nil {
		return nil, fmt.Errorf("decoding postings: %w", err)
	}

	base := filepath.Dir(path)
	for i := range ds.Seekers {
		if err := ds.Seekers[i].resolveResume(base); err != nil {
			return nil, fmt.Errorf("seeker #%d (%s): %w", i+1, ds.Seekers[i].Name, err)
		}
	}

	return ds, nil
}

// Register registers every posting and seeker in file order and stops at the
// first failure.
func (d *Dataset) Register(r Registrar) error {
	for i, p := range d.Postings {
		if _, err := r.RegisterPosting(p.Title, p.Skills, p.Questions); err != nil {
			return fmt.Errorf("posting #%d: %w", i+1, err)
		}
	}

	for i, s := range d.Seekers {
		if _, err := r.RegisterSeeker(s.Name, s.Email, s.ResumeText); err != nil {
			return fmt.Errorf("seeker #%d: %w", i+1, err)
		}
	}

	return nil
}

func (s *Seeker) resolveResume(base string) error {
	file := strings.TrimSpace(s.ResumeFile)
	if file == "" {
		return nil
	}
	if s.ResumeText != "" {
		return fmt.Errorf("%w: resume-text and resume-file are mutually exclusive", ErrInvalidRecord)
	}

	if !filepath.IsAbs(file) {
		file = filepath.Join(base, file)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading resume file: %w", err)
	}

	s.ResumeText = string(data)
	return nil
}

// decode converts raw viper data strictly: unknown keys and values of the
// wrong kind are rejected instead of coerced.
func decode(input any, out any) error {
	if input == nil {
		return nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      out,
	})
	if err != nil {
		return err
	}

	if err := dec.Decode(input); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return nil
}
