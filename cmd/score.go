package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DeGlorio/AI-Job-Matching/internal/matching"
)

type scoreResult struct {
	Skill     string  `json:"skill"`
	Score     float64 `json:"score"`
	Threshold float64 `json:"threshold"`
	Mode      string  `json:"mode"`
	Match     bool    `json:"match"`
}

var scoreCmd = &cobra.Command{
	Use:   "score <skill> [resume-text]",
	Short: "Print the similarity of a skill to a resume and whether it matches",
	Args:  cobra.RangeArgs(1, 2),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd.Flags(), map[string]string{
			"matching.threshold": "threshold",
			"matching.mode":      "mode",
		})
	},
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		resumeFile, _ := cmd.Flags().GetString("resume-file")
		text, err := resumeArg(args, resumeFile)
		if err != nil {
			logger.Fatal("reading resume", zap.Error(err))
		}

		if err := score(os.Stdout, config.Matching, args[0], text); err != nil {
			logger.Fatal("scoring", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().Float64P("threshold", "t", matching.DefaultThreshold, "similarity a skill must exceed to match")
	scoreCmd.Flags().StringP("mode", "m", string(matching.ModeWholeText), "matching mode: whole-text or tokenized")
	scoreCmd.Flags().String("resume-file", "", "read the resume text from a plain-text file instead of an argument")
}

func resumeArg(args []string, file string) (string, error) {
	switch {
	case len(args) == 2 && file != "":
		return "", errors.New("pass either resume text or --resume-file, not both")
	case len(args) == 2:
		return args[1], nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", errors.New("resume text or --resume-file is required")
	}
}

func score(out io.Writer, cfg *MatchingConfig, skill, text string) error {
	matcher, err := matching.New(cfg.Threshold, matching.Mode(cfg.Mode))
	if err != nil {
		return err
	}

	result := scoreResult{
		Skill:     skill,
		Score:     matcher.Score(skill, text),
		Threshold: matcher.Threshold(),
		Mode:      string(matcher.Mode()),
		Match:     matcher.IsMatch(skill, text),
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding score: %w", err)
	}
	return nil
}
