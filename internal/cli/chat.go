package cli

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spacesedan/sentiview/internal/analysis"
	"github.com/spacesedan/sentiview/internal/clients"
	"github.com/spacesedan/sentiview/internal/models"
)

var (
	chatConversation string
	chatMock         bool
)

func init() {
	chatCmd.Flags().StringVar(&chatConversation, "conversation", "", "Continue an existing conversation")
	chatCmd.Flags().BoolVar(&chatMock, "mock", false, "Answer with a canned reply instead of calling the backend")
	RootCmd.AddCommand(chatCmd)
}

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send a message to the feedback analyst and render the reply",
	RunE:  runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, m := range analysis.WelcomeMessages {
			fmt.Fprintln(out, m)
		}
		return nil
	}

	renderer, err := newRenderer()
	if err != nil {
		return err
	}

	message := strings.Join(args, " ")
	slog.Debug("[Chat] Routing message",
		slog.Bool("is_question", analysis.IsQuestion(message)),
		slog.Bool("is_new_feedback", analysis.IsNewFeedback(message)))

	var reply string
	if chatMock {
		samples := analysis.Samples()
		reply = samples[rand.IntN(len(samples))]
	} else {
		api := clients.NewFeedbackAPIClient(appConfig.FeedbackAPIURL, appConfig.FeedbackAPIToken)
		resp, err := api.Chat(contextOf(cmd), models.ChatRequest{
			Message:        message,
			ConversationID: chatConversation,
		})
		if err != nil {
			return err
		}
		reply = resp.Response
		if reply == "" && resp.Analysis != nil {
			reply = resp.Analysis.ChatResponse
		}
		slog.Info("[Chat] Reply received",
			slog.String("conversation_id", resp.ConversationID),
			slog.Bool("is_question", resp.IsQuestion))
	}

	return writeResponse(out, renderer.Render(reply))
}
