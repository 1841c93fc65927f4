package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacesedan/sentiview/internal/analysis"
	"github.com/spacesedan/sentiview/internal/clients"
	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/sentiment"
)

var (
	analyzeCSV    bool
	analyzeAI     bool
	analyzeRemote bool
)

var errNoFeedback = errors.New("no feedback to analyze")

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeCSV, "csv", false, "Input is a CSV export with a review/feedback/text column")
	analyzeCmd.Flags().BoolVar(&analyzeAI, "ai", false, "Analyze with the OpenAI compatible model, falling back to local analysis")
	analyzeCmd.Flags().BoolVar(&analyzeRemote, "remote", false, "Send the feedback to the feedback backend instead of analyzing locally")
	analyzeCmd.MarkFlagsMutuallyExclusive("ai", "remote")
	RootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze customer feedback and render the report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	var reviews []string
	if analyzeCSV {
		if reviews, err = analysis.ExtractCSVFeedback(bytes.NewReader(data)); err != nil {
			return err
		}
	} else {
		reviews = analysis.ParseFeedbacks(string(data))
	}
	if len(reviews) == 0 || (len(reviews) == 1 && strings.TrimSpace(reviews[0]) == "") {
		return errNoFeedback
	}

	for i, r := range reviews {
		slog.Debug("[Analyze] Parsed feedback",
			slog.Int("index", i+1),
			slog.String("quick_sentiment", sentiment.Quick(r)))
	}

	filename := "upload.csv"
	if len(args) > 0 && args[0] != "-" {
		filename = filepath.Base(args[0])
	}
	report, err := analyzeReviews(contextOf(cmd), reviews, data, filename)
	if err != nil {
		return err
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}
	return writeResponse(cmd.OutOrStdout(), renderer.Render(report))
}

// analyzeReviews returns the markdown report for reviews from the selected
// backend.
func analyzeReviews(ctx context.Context, reviews []string, raw []byte, filename string) (string, error) {
	if analyzeRemote {
		api := clients.NewFeedbackAPIClient(appConfig.FeedbackAPIURL, appConfig.FeedbackAPIToken)
		if analyzeCSV {
			resp, err := api.UploadCSV(ctx, filename, raw, "")
			if err != nil {
				return "", err
			}
			if resp.Analysis != nil && resp.Analysis.ChatResponse != "" {
				return resp.Analysis.ChatResponse, nil
			}
			return resp.Response, nil
		}
		a, err := api.AnalyzeText(ctx, models.TextAnalysisRequest{Reviews: reviews})
		if err != nil {
			return "", err
		}
		return a.ChatResponse, nil
	}

	var analyzer analysis.Analyzer = analysis.LocalAnalyzer{}
	if analyzeAI {
		ai, err := clients.NewOpenAIClient(clients.OpenAIConfig{
			APIKey:  appConfig.OpenAIAPIKey,
			BaseURL: appConfig.OpenAIBaseURL,
			Model:   appConfig.OpenAIModel,
		})
		if err != nil {
			return "", err
		}
		analyzer = analysis.WithFallback(ai)
	}

	a, err := analyzer.Analyze(ctx, reviews)
	if err != nil {
		return "", err
	}
	slog.Info("[Analyze] Analysis complete",
		slog.Int("feedbacks", a.TotalFeedbacksAnalyzed),
		slog.String("overall_sentiment", a.OverallSentiment))
	return a.ChatResponse, nil
}
