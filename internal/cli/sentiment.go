package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacesedan/sentiview/internal/clients"
	"github.com/spacesedan/sentiview/internal/render"
	"github.com/spacesedan/sentiview/internal/sentiment"
)

var sentimentRemote bool

func init() {
	sentimentCmd.Flags().BoolVar(&sentimentRemote, "remote", false, "Also ask the feedback backend's quick-sentiment endpoint")
	RootCmd.AddCommand(sentimentCmd)
}

var sentimentCmd = &cobra.Command{
	Use:   "sentiment <text>",
	Short: "Classify text with every local classifier",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSentiment,
}

func runSentiment(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	out := cmd.OutOrStdout()

	label, confidence := sentiment.QuickScore(text)
	score, vaderLabel := sentiment.AnalyzeWithVADER(text)

	fmt.Fprintf(out, "reply:       %s\n", render.Classify(text))
	fmt.Fprintf(out, "quick:       %s\n", sentiment.Quick(text))
	fmt.Fprintf(out, "quick-score: %s (%.2f)\n", label, confidence)
	fmt.Fprintf(out, "vader:       %s (%.3f)\n", vaderLabel, score)

	if !sentimentRemote {
		return nil
	}

	api := clients.NewFeedbackAPIClient(appConfig.FeedbackAPIURL, appConfig.FeedbackAPIToken)
	resp, err := api.QuickSentiment(contextOf(cmd), text)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "remote:      %s (%.2f)\n", resp.Sentiment, resp.Confidence)
	return nil
}
