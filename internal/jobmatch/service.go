// Package jobmatch is the surface the surrounding application talks to:
// registering seekers and postings and computing matches over them.
package jobmatch

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/DeGlorio/AI-Job-Matching/internal/logger"
	"github.com/DeGlorio/AI-Job-Matching/internal/matching"
	"github.com/DeGlorio/AI-Job-Matching/internal/model"
	"github.com/DeGlorio/AI-Job-Matching/internal/registry"
	"github.com/DeGlorio/AI-Job-Matching/internal/utils"
)

const resumePreviewLength = 500

// Service owns a registry and a matcher. It is safe for concurrent use.
type Service struct {
	registry *registry.Registry
	matcher  *matching.Matcher
	logger   *zap.Logger
}

// New wires a service. A nil matcher means the default whole-text matcher.
func New(reg *registry.Registry, matcher *matching.Matcher, log *zap.Logger) *Service {
	if reg == nil {
		reg = registry.New()
	}
	if matcher == nil {
		matcher = matching.NewDefault()
	}

	return &Service{
		registry: reg,
		matcher:  matcher,
		logger:   logger.WithFields(log),
	}
}

// RegisterSeeker stores a job seeker. resumeText must already be extracted
// plain text.
func (s *Service) RegisterSeeker(name, email, resumeText string) (model.JobSeeker, error) {
	seeker, err := s.registry.RegisterSeeker(model.JobSeeker{
		Name:       name,
		Email:      email,
		ResumeText: resumeText,
	})
	if err != nil {
		return model.JobSeeker{}, fmt.Errorf("register seeker: %w", err)
	}

	s.logger.Info("job seeker registered",
		append(logger.MatchFields(seeker.Name, ""), zap.String("seeker_id", seeker.ID))...,
	)
	s.logger.Debug("job seeker resume",
		zap.String("seeker_id", seeker.ID),
		zap.Int("resume_length", len([]rune(seeker.ResumeText))),
		zap.String("resume_preview", utils.TruncateForLog(seeker.ResumeText, resumePreviewLength)),
	)

	return seeker, nil
}

// RegisterPosting stores a job posting.
func (s *Service) RegisterPosting(title string, skills, questions []string) (model.JobPosting, error) {
	posting, err := s.registry.RegisterPosting(model.JobPosting{
		Title:     title,
		Skills:    skills,
		Questions: questions,
	})
	if err != nil {
		return model.JobPosting{}, fmt.Errorf("register posting: %w", err)
	}

	s.logger.Info("job posting registered",
		append(logger.MatchFields("", posting.Title),
			zap.String("posting_id", posting.ID),
			zap.Strings("skills", posting.Skills),
			zap.Int("questions", len(posting.Questions)),
		)...,
	)

	return posting, nil
}

// Seekers lists registered seekers in registration order.
func (s *Service) Seekers() []model.JobSeeker {
	return s.registry.Seekers()
}

// Postings lists registered postings in registration order.
func (s *Service) Postings() []model.JobPosting {
	return s.registry.Postings()
}

// ComputeMatches runs the aggregator over the current registry contents.
func (s *Service) ComputeMatches(ctx context.Context) (model.Matches, error) {
	return s.ComputeMatchesWith(ctx, matching.Options{})
}

// ComputeMatchesWith is ComputeMatches with aggregation options.
func (s *Service) ComputeMatchesWith(ctx context.Context, opts matching.Options) (model.Matches, error) {
	snap := s.registry.Snapshot()
	started := time.Now()

	matches, err := s.matcher.FindMatchesContext(ctx, snap.Seekers, snap.Postings, opts)
	if err != nil {
		return nil, fmt.Errorf("find matches: %w", err)
	}

	s.logger.Info("matches computed",
		zap.Int("seekers", len(snap.Seekers)),
		zap.Int("postings", len(snap.Postings)),
		zap.Int("matches", matches.Len()),
		zap.String("mode", string(s.matcher.Mode())),
		zap.Float64("threshold", s.matcher.Threshold()),
		zap.Duration("took", time.Since(started)),
	)

	for _, m := range matches {
		s.logger.Debug("match", logger.MatchFields(m.SeekerName, m.PostingTitle)...)
	}

	return matches, nil
}
