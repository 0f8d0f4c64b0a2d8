package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/DeGlorio/AI-Job-Matching/internal/dataset"
	"github.com/DeGlorio/AI-Job-Matching/internal/jobmatch"
	"github.com/DeGlorio/AI-Job-Matching/internal/matching"
	"github.com/DeGlorio/AI-Job-Matching/internal/model"
	"github.com/DeGlorio/AI-Job-Matching/internal/registry"
)

const (
	PromptPrintMatches    = "Print matches"
	PromptReportByPosting = "Report by posting"
	PromptMatchesToFile   = "Dump matches to file"
	PromptExit            = "Exit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptPrintMatches, PromptReportByPosting, PromptMatchesToFile, PromptExit},
}

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Register the dataset's seekers and postings and print the matches",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return bindFlags(cmd.Flags(), map[string]string{
			"dataset":            "dataset",
			"matching.threshold": "threshold",
			"matching.mode":      "mode",
			"matching.details":   "details",
		})
	},
	Run: func(cmd *cobra.Command, _ []string) {
		match(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().StringP("dataset", "f", "", "a YAML, JSON or TOML file with seekers and postings")
	matchCmd.Flags().Float64P("threshold", "t", matching.DefaultThreshold, "similarity a skill must exceed to match")
	matchCmd.Flags().StringP("mode", "m", string(matching.ModeWholeText), "matching mode: whole-text or tokenized")
	matchCmd.Flags().Bool("details", false, "attach matched skills and their scores to every result")
	matchCmd.Flags().BoolP("yes", "y", false, "print the matches and exit without asking")
}

func match(cmd *cobra.Command) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger := newLogger()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobmatch", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if strings.TrimSpace(config.Dataset) == "" {
		logger.Fatal("dataset is required",
			zap.String("hint", "pass --dataset or set the 'dataset' key in the configuration file"),
		)
	}

	matches, err := computeMatches(ctx, config, logger)
	if err != nil {
		logger.Fatal("computing matches", zap.Error(err))
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if yes || matches.Len() == 0 {
		if err := writeMatches(os.Stdout, matches); err != nil {
			logger.Fatal("printing matches", zap.Error(err))
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, os.Stdout, logger, matches); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func computeMatches(ctx context.Context, config *Config, logger *zap.Logger) (model.Matches, error) {
	ds, err := dataset.Load(config.Dataset)
	if err != nil {
		return nil, err
	}

	logger.Info("dataset loaded",
		zap.String("dataset", ds.Path),
		zap.Int("seekers", len(ds.Seekers)),
		zap.Int("postings", len(ds.Postings)),
	)

	matcher, err := matching.New(config.Matching.Threshold, matching.Mode(config.Matching.Mode))
	if err != nil {
		return nil, err
	}

	svc := jobmatch.New(registry.New(), matcher, logger)
	if err := ds.Register(svc); err != nil {
		return nil, fmt.Errorf("registering dataset: %w", err)
	}

	return svc.ComputeMatchesWith(ctx, matching.Options{Details: config.Matching.Details})
}

func handleAction(action string, out io.Writer, logger *zap.Logger, matches model.Matches) error {
	switch action {
	case PromptPrintMatches:
		return writeMatches(out, matches)
	case PromptReportByPosting:
		pretty, _ := json.MarshalIndent(matches.ReportByPosting(), "", "  ")
		logger.Info(string(pretty), zap.Int("matches count", matches.Len()))
		return nil
	case PromptMatchesToFile:
		filename, err := matches.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// writeMatches prints {"matches": [...]}; an empty result is an empty list.
func writeMatches(out io.Writer, matches model.Matches) error {
	if matches == nil {
		matches = model.Matches{}
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]model.Matches{"matches": matches})
}
