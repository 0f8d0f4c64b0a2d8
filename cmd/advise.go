package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DeGlorio/AI-Job-Matching/internal/advisor"
	"github.com/DeGlorio/AI-Job-Matching/internal/ai"
	"github.com/DeGlorio/AI-Job-Matching/internal/ai/gemini"
	"github.com/DeGlorio/AI-Job-Matching/internal/secrets"
)

const geminiAPIKeyEnv = "GEMINI_API_KEY"

type adviceResult struct {
	Topic  advisor.Topic `json:"topic"`
	Answer string        `json:"answer,omitempty"`
	Lines  []string      `json:"lines,omitempty"`
}

var adviseCmd = &cobra.Command{
	Use:   "advise <topic>",
	Short: "Ask the text generator for career advice",
	Long: "Ask the text generator for career advice. Topics: " +
		strings.Join(topicNames(), ", ") + ".",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		advise(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(adviseCmd)

	adviseCmd.Flags().String("resume", "", "resume text")
	adviseCmd.Flags().String("resume-file", "", "read the resume text from a plain-text file")
	adviseCmd.Flags().String("job-description", "", "job description text")
	adviseCmd.Flags().String("role", "", "role for salary and career-path topics")
	adviseCmd.Flags().String("scenario", "", "scenario for the star topic")
	adviseCmd.Flags().String("answer", "", "interview answer for the evaluate-answer topic")
	adviseCmd.Flags().String("offer", "", "offer details for the offer topic")
	adviseCmd.Flags().Bool("with-cover-letter", false, "for enhance-resume, also write a cover letter from the enhanced resume")
}

func advise(cmd *cobra.Command, name string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	topic, err := advisor.ParseTopic(name)
	if err != nil {
		logger.Fatal("parsing topic", zap.Error(err), zap.Strings("topics", topicNames()))
	}

	req, err := adviceRequest(cmd)
	if err != nil {
		logger.Fatal("reading advice inputs", zap.Error(err))
	}

	if config.AI == nil || !config.AI.Enabled {
		logger.Fatal("ai is disabled", zap.String("hint", "set ai.enabled to true in the configuration file"))
	}

	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("building text generator",
			zap.Error(err),
			zap.String("hint", "set GEMINI_API_KEY_FILE environment variable or the 'ai.gemini.api-key-file' key in the configuration file"),
		)
	}

	adv := advisor.New(generator, logger, config.AI.Gemini.MaxLogLength)

	withLetter, _ := cmd.Flags().GetBool("with-cover-letter")
	if err := runAdvice(ctx, os.Stdout, adv, topic, req, withLetter); err != nil {
		logger.Fatal("getting advice", zap.Error(err), zap.String("topic", string(topic)))
	}
}

func runAdvice(ctx context.Context, out io.Writer, adv *advisor.Advisor, topic advisor.Topic, req advisor.Request, withLetter bool) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	if topic == advisor.TopicEnhanceResume && withLetter {
		application, err := adv.EnhanceApplication(ctx, req)
		if err != nil {
			return err
		}
		return enc.Encode(application)
	}

	answer, err := adv.Ask(ctx, topic, req)
	if err != nil {
		return err
	}

	result := adviceResult{Topic: topic}
	switch topic {
	case advisor.TopicInterviewQuestions, advisor.TopicInterviewSlots:
		result.Lines = advisor.Lines(answer)
	default:
		result.Answer = answer
	}

	return enc.Encode(result)
}

func adviceRequest(cmd *cobra.Command) (advisor.Request, error) {
	get := func(name string) string {
		v, _ := cmd.Flags().GetString(name)
		return v
	}

	req := advisor.Request{
		Resume:         get("resume"),
		JobDescription: get("job-description"),
		Role:           get("role"),
		Scenario:       get("scenario"),
		Answer:         get("answer"),
		OfferDetails:   get("offer"),
	}

	if file := strings.TrimSpace(get("resume-file")); file != "" {
		if req.Resume != "" {
			return advisor.Request{}, fmt.Errorf("pass either --resume or --resume-file, not both")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return advisor.Request{}, err
		}
		req.Resume = string(data)
	}

	return req, nil
}

func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != providerGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: cfg.Gemini.APIKey,
		File:  cfg.Gemini.APIKeyFile,
		Env:   geminiAPIKeyEnv,
	})
	if err != nil {
		return nil, err
	}

	genLogger := logger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries))

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries, genLogger)
	if err != nil {
		return nil, err
	}
	generator.SetRateLimit(cfg.Gemini.RequestsPerMinute)

	return generator, nil
}

func topicNames() []string {
	topics := advisor.Topics()
	names := make([]string, 0, len(topics))
	for _, t := range topics {
		names = append(names, string(t))
	}
	return names
}
