// Package registry keeps the registered job seekers and job postings in
// memory. Both collections are append-only; readers get deep copies so a
// matching run never observes a half-written entry.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/DeGlorio/AI-Job-Matching/internal/model"
)

// ErrInvalidInput indicates a seeker or posting that cannot be registered.
var ErrInvalidInput = errors.New("invalid input")

// Snapshot is a consistent view of both collections taken under one lock.
type Snapshot struct {
	Seekers  []model.JobSeeker
	Postings []model.JobPosting
}

// Registry is an in-memory, append-only store of seekers and postings.
type Registry struct {
	mu       sync.RWMutex
	seekers  []model.JobSeeker
	postings []model.JobPosting

	now   func() time.Time
	newID func() string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// RegisterSeeker validates and appends a seeker, assigning its ID and
// registration time. The stored value is returned.
func (r *Registry) RegisterSeeker(s model.JobSeeker) (model.JobSeeker, error) {
	if err := validateSeeker(s); err != nil {
		return model.JobSeeker{}, err
	}

	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	s.ID = r.newID()
	s.RegisteredAt = r.now()
	r.seekers = append(r.seekers, s)

	return s, nil
}

// RegisterPosting validates and appends a posting, assigning its ID and
// posting time. Skills and questions are copied so later changes by the
// caller do not leak in.
func (r *Registry) RegisterPosting(p model.JobPosting) (model.JobPosting, error) {
	if err := validatePosting(p); err != nil {
		return model.JobPosting{}, err
	}

	p.Title = strings.TrimSpace(p.Title)
	p.Skills = slices.Clone(p.Skills)
	p.Questions = slices.Clone(p.Questions)

	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.newID()
	p.PostedAt = r.now()
	r.postings = append(r.postings, p)

	return clonePosting(p), nil
}

// Seekers returns the registered seekers in registration order.
func (r *Registry) Seekers() []model.JobSeeker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.seekers)
}

// Postings returns the registered postings in registration order.
func (r *Registry) Postings() []model.JobPosting {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return clonePostings(r.postings)
}

// Snapshot returns both collections as of the same instant.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{
		Seekers:  slices.Clone(r.seekers),
		Postings: clonePostings(r.postings),
	}
}

// Len returns the number of registered seekers and postings.
func (r *Registry) Len() (seekers, postings int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.seekers), len(r.postings)
}

func clonePostings(in []model.JobPosting) []model.JobPosting {
	if in == nil {
		return nil
	}
	out := make([]model.JobPosting, len(in))
	for i, p := range in {
		out[i] = clonePosting(p)
	}
	return out
}

func clonePosting(p model.JobPosting) model.JobPosting {
	p.Skills = slices.Clone(p.Skills)
	p.Questions = slices.Clone(p.Questions)
	return p
}

func validateSeeker(s model.JobSeeker) error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: seeker name is required", ErrInvalidInput)
	}

	fields := []struct{ name, value string }{
		{"name", s.Name},
		{"email", s.Email},
		{"resume text", s.ResumeText},
	}
	for _, f := range fields {
		if !utf8.ValidString(f.value) {
			return fmt.Errorf("%w: seeker %s is not valid UTF-8", ErrInvalidInput, f.name)
		}
	}

	return nil
}

func validatePosting(p model.JobPosting) error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: posting title is required", ErrInvalidInput)
	}
	if !utf8.ValidString(p.Title) {
		return fmt.Errorf("%w: posting title is not valid UTF-8", ErrInvalidInput)
	}

	for i, skill := range p.Skills {
		if strings.TrimSpace(skill) == "" {
			return fmt.Errorf("%w: skill #%d of %q is blank", ErrInvalidInput, i+1, p.Title)
		}
		if !utf8.ValidString(skill) {
			return fmt.Errorf("%w: skill #%d of %q is not valid UTF-8", ErrInvalidInput, i+1, p.Title)
		}
	}

	for i, q := range p.Questions {
		if !utf8.ValidString(q) {
			return fmt.Errorf("%w: question #%d of %q is not valid UTF-8", ErrInvalidInput, i+1, p.Title)
		}
	}

	return nil
}
