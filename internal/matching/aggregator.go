package matching

import (
	"context"

	"github.com/DeGlorio/AI-Job-Matching/internal/model"
)

// Options tune a single aggregation run.
type Options struct {
	// Details makes every skill of a posting be scored and the matched ones
	// attached to the result. The set and order of results stay the same.
	Details bool
}

// FindMatches scans every seeker against every posting and returns one
// result per pair where at least one required skill is present. Seekers are
// the outer loop and postings the inner one, both in the given order.
func (m *Matcher) FindMatches(seekers []model.JobSeeker, postings []model.JobPosting) model.Matches {
	// Background is never cancelled.
	matches, _ := m.FindMatchesContext(context.Background(), seekers, postings, Options{})
	return matches
}

// FindMatchesContext is FindMatches with options and cancellation. The context
// is checked before each seeker; on cancellation the partial result is
// discarded and ctx.Err() is returned.
func (m *Matcher) FindMatchesContext(ctx context.Context, seekers []model.JobSeeker, postings []model.JobPosting, opts Options) (model.Matches, error) {
	matches := model.Matches{}

	for _, seeker := range seekers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prepared := m.prepare(seeker.ResumeText)
		scores := make(map[string]float64)
		score := func(skill string) float64 {
			if s, ok := scores[skill]; ok {
				return s
			}
			s := m.score(skill, prepared)
			scores[skill] = s
			return s
		}

		for _, posting := range postings {
			var (
				matched bool
				details []model.SkillScore
			)

			for _, skill := range posting.Skills {
				s := score(skill)
				if s <= m.threshold {
					continue
				}
				matched = true
				if !opts.Details {
					break
				}
				details = append(details, model.SkillScore{Skill: skill, Score: s})
			}

			if !matched {
				continue
			}

			matches = append(matches, model.MatchResult{
				SeekerID:     seeker.ID,
				SeekerName:   seeker.Name,
				PostingID:    posting.ID,
				PostingTitle: posting.Title,
				Skills:       details,
			})
		}
	}

	return matches, nil
}
