// Package advisor runs career-advice prompts (resume enhancement, cover
// letters, interview coaching and the like) through an ai.Generator.
package advisor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/DeGlorio/AI-Job-Matching/internal/ai"
	"github.com/DeGlorio/AI-Job-Matching/internal/logger"
	"github.com/DeGlorio/AI-Job-Matching/internal/utils"
)

var (
	ErrUnknownTopic  = errors.New("unknown advice topic")
	ErrMissingInput  = errors.New("missing advice input")
	ErrEmptyResponse = errors.New("text generator returned an empty response")
)

type Topic string

const (
	TopicEnhanceResume      Topic = "enhance-resume"
	TopicCoverLetter        Topic = "cover-letter"
	TopicInterviewQuestions Topic = "interview-questions"
	TopicEvaluateAnswer     Topic = "evaluate-answer"
	TopicSTAR               Topic = "star"
	TopicSalary             Topic = "salary"
	TopicCareerPath         Topic = "career-path"
	TopicOffer              Topic = "offer"
	TopicNetworking         Topic = "networking"
	TopicInterviewSlots     Topic = "interview-slots"
)

const defaultMaxLogLength = 200

// Request carries the free-text inputs a topic may need. Each topic reads only
// its own fields.
type Request struct {
	Resume         string
	JobDescription string
	Role           string
	Scenario       string
	Answer         string
	OfferDetails   string
}

// Application is an enhanced resume with a cover letter written from it.
type Application struct {
	Resume      string `json:"enhanced_resume"`
	CoverLetter string `json:"cover_letter"`
}

type input struct {
	name  string
	value func(Request) string
}

var (
	inResume         = input{"resume", func(r Request) string { return r.Resume }}
	inJobDescription = input{"job-description", func(r Request) string { return r.JobDescription }}
	inRole           = input{"role", func(r Request) string { return r.Role }}
	inScenario       = input{"scenario", func(r Request) string { return r.Scenario }}
	inAnswer         = input{"answer", func(r Request) string { return r.Answer }}
	inOffer          = input{"offer", func(r Request) string { return r.OfferDetails }}
)

type topic struct {
	system   string
	requires []input
	prompt   func(Request) string
}

var topics = map[Topic]topic{
	TopicEnhanceResume: {
		system:   "You are a career expert enhancing resumes.",
		requires: []input{inResume, inJobDescription},
		prompt: func(r Request) string {
			return "Improve this resume to match the following job description.\n" +
				"Resume: " + r.Resume + "\n" +
				"Job Description: " + r.JobDescription + "\n" +
				"Provide a well-structured, professional version."
		},
	},
	TopicCoverLetter: {
		system:   "You are a professional cover letter writer.",
		requires: []input{inResume, inJobDescription},
		prompt: func(r Request) string {
			return "Write a personalized cover letter using the resume below for this job.\n" +
				"Resume: " + r.Resume + "\n" +
				"Job Description: " + r.JobDescription + "\n" +
				"Make it professional, engaging, and concise."
		},
	},
	TopicInterviewQuestions: {
		system: "You are an expert interviewer.",
		prompt: func(r Request) string {
			prompt := "Generate five interview questions for a candidate applying to this job."
			if jd := strings.TrimSpace(r.JobDescription); jd != "" {
				prompt += "\nJob Description: " + jd
			}
			return prompt
		},
	},
	TopicEvaluateAnswer: {
		system:   "You are an expert interview coach.",
		requires: []input{inAnswer},
		prompt: func(r Request) string {
			return "Evaluate this interview response and suggest a probing follow-up question: " + r.Answer
		},
	},
	TopicSTAR: {
		system:   "You provide STAR-based interview answers.",
		requires: []input{inScenario},
		prompt: func(r Request) string {
			return "Generate a STAR (Situation, Task, Action, Result) response for: " + r.Scenario
		},
	},
	TopicSalary: {
		system:   "You provide salary insights.",
		requires: []input{inRole},
		prompt: func(r Request) string {
			return "What is the average salary range for a " + r.Role + "?"
		},
	},
	TopicCareerPath: {
		system:   "You provide career guidance.",
		requires: []input{inRole},
		prompt: func(r Request) string {
			return "What are the typical career advancement paths for a " + r.Role + "?"
		},
	},
	TopicOffer: {
		system:   "You evaluate job offers.",
		requires: []input{inOffer},
		prompt: func(r Request) string {
			return "Analyze the competitiveness of this job offer: " + r.OfferDetails
		},
	},
	TopicNetworking: {
		system: "You provide networking advice.",
		prompt: func(Request) string {
			return "Suggest networking events and connections."
		},
	},
	TopicInterviewSlots: {
		system: "You are an AI assistant helping schedule job interviews.",
		prompt: func(Request) string {
			return "Suggest three possible interview times based on availability in the next 7 days. " +
				"Format the response as a list of options in the following format: \n" +
				"1. Date: <YYYY-MM-DD>, Time: <HH:MM AM/PM>\n" +
				"2. Date: <YYYY-MM-DD>, Time: <HH:MM AM/PM>\n" +
				"3. Date: <YYYY-MM-DD>, Time: <HH:MM AM/PM>"
		},
	},
}

// Topics lists the supported topics in lexical order.
func Topics() []Topic {
	result := make([]Topic, 0, len(topics))
	for t := range topics {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// ParseTopic resolves a topic name, case-insensitively.
func ParseTopic(name string) (Topic, error) {
	t := Topic(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := topics[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTopic, name)
	}
	return t, nil
}

// Advisor sends topic prompts to a generator.
type Advisor struct {
	generator ai.Generator
	logger    *zap.Logger
	maxLogLen int
}

func New(generator ai.Generator, log *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Advisor{
		generator: generator,
		logger:    logger.WithFields(log),
		maxLogLen: maxLogLength,
	}
}

// Ask runs one topic and returns the trimmed answer.
func (a *Advisor) Ask(ctx context.Context, t Topic, req Request) (string, error) {
	def, ok := topics[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTopic, t)
	}
	if a == nil || a.generator == nil {
		return "", errors.New("advisor has no text generator")
	}

	for _, in := range def.requires {
		if strings.TrimSpace(in.value(req)) == "" {
			return "", fmt.Errorf("%w: %s is required for %s", ErrMissingInput, in.name, t)
		}
	}

	prompt := def.prompt(req)
	a.logger.Debug("advice request",
		zap.String("topic", string(t)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, a.maxLogLen)),
	)

	raw, err := a.generator.GenerateContent(ctx, def.system, prompt)
	if err != nil {
		return "", fmt.Errorf("%s: %w", t, err)
	}

	answer := strings.TrimSpace(raw)
	if answer == "" {
		return "", fmt.Errorf("%s: %w", t, ErrEmptyResponse)
	}

	a.logger.Debug("advice response",
		zap.String("topic", string(t)),
		zap.Int("response_length", utf8.RuneCountInString(answer)),
		zap.String("response_preview", utils.TruncateForLog(answer, a.maxLogLen)),
	)

	return answer, nil
}

// EnhanceApplication rewrites the resume for the job description and then
// writes a cover letter from the rewritten resume.
func (a *Advisor) EnhanceApplication(ctx context.Context, req Request) (Application, error) {
	resume, err := a.Ask(ctx, TopicEnhanceResume, req)
	if err != nil {
		return Application{}, err
	}

	letterReq := req
	letterReq.Resume = resume
	letter, err := a.Ask(ctx, TopicCoverLetter, letterReq)
	if err != nil {
		return Application{}, err
	}

	return Application{Resume: resume, CoverLetter: letter}, nil
}

// Lines splits a list-style answer into its non-blank lines, dropping any
// surrounding markdown code fence.
func Lines(answer string) []string {
	answer = stripFence(answer)

	var lines []string
	for _, line := range strings.Split(answer, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func stripFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	raw = strings.TrimPrefix(raw, "```")
	if idx := strings.Index(raw, "\n"); idx != -1 {
		raw = raw[idx+1:]
	}
	if idx := strings.LastIndex(raw, "```"); idx != -1 {
		raw = raw[:idx]
	}
	return strings.TrimSpace(raw)
}
