package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/sentiview/config"
	"github.com/spacesedan/sentiview/internal/models"
	"github.com/spacesedan/sentiview/internal/render"
)

func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		presetName, stylesPath = "", ""
		format, theme, width, verbose = formatJSON, "notty", 80, false
		analyzeCSV, analyzeAI, analyzeRemote = false, false, false
		chatConversation, chatMock = "", false
		sentimentRemote = false
		appConfig = config.AppConfig{Preset: render.PresetClassic}
	}
	reset()
	t.Cleanup(reset)
}

func newTestCmd(stdin string) (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	return cmd, &out
}

func decodeResponse(t *testing.T, data []byte) render.Response {
	t.Helper()
	var resp render.Response
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

func TestRunRenderJSON(t *testing.T) {
	resetFlags(t)
	cmd, out := newTestCmd("Analyzed 3 feedbacks. Negative sentiment.\n\n**Main Issues:** Slow checkout.")

	require.NoError(t, runRender(cmd, nil))

	resp := decodeResponse(t, out.Bytes())
	assert.Equal(t, render.Negative, resp.Sentiment)
	require.Len(t, resp.Sections, 2)
	assert.Equal(t, "issues", resp.Sections[1].Rule)
}

func TestRunRenderFileAndPreset(t *testing.T) {
	resetFlags(t)
	presetName = render.PresetExtended
	path := filepath.Join(t.TempDir(), "reply.md")
	require.NoError(t, os.WriteFile(path, []byte("### How to Use\nPaste feedback."), 0o644))
	cmd, out := newTestCmd("")

	require.NoError(t, runRender(cmd, []string{path}))

	resp := decodeResponse(t, out.Bytes())
	require.Len(t, resp.Sections, 1)
	assert.Equal(t, "getting-started", resp.Sections[0].Rule)
}

func TestRunRenderStylesFromConfig(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "styles.toml")
	require.NoError(t, os.WriteFile(path, []byte("[negative]\nicon = \"!!\"\n"), 0o644))
	appConfig.StylesPath = path
	cmd, out := newTestCmd("Analyzed 2 feedbacks. Negative sentiment.")

	require.NoError(t, runRender(cmd, nil))

	resp := decodeResponse(t, out.Bytes())
	require.NotNil(t, resp.Sections[0].Icon)
	assert.Equal(t, "!!", *resp.Sections[0].Icon)
}

func TestRunRenderErrors(t *testing.T) {
	resetFlags(t)
	presetName = "fancy"
	cmd, _ := newTestCmd("text")
	assert.ErrorIs(t, runRender(cmd, nil), render.ErrUnknownPreset)

	resetFlags(t)
	format = "pdf"
	cmd, _ = newTestCmd("text")
	assert.Error(t, runRender(cmd, nil))
}

func TestRunRenderFormats(t *testing.T) {
	resetFlags(t)
	format = formatHTML
	cmd, out := newTestCmd("**Breakdown:** even")
	require.NoError(t, runRender(cmd, nil))
	assert.Contains(t, out.String(), "Sentiment Distribution")

	format = formatTerm
	cmd, out = newTestCmd("**Breakdown:** even")
	require.NoError(t, runRender(cmd, nil))
	assert.Contains(t, out.String(), "SENTIMENT DISTRIBUTION")
}

func TestRunSamples(t *testing.T) {
	resetFlags(t)
	format = formatTerm
	cmd, out := newTestCmd("")

	require.NoError(t, runSamples(cmd, nil))

	assert.Equal(t, 8, strings.Count(out.String(), "── sample"))
}

func TestRunSentiment(t *testing.T) {
	resetFlags(t)
	cmd, out := newTestCmd("")

	require.NoError(t, runSentiment(cmd, []string{"I", "love", "how", "fast", "it", "is"}))

	assert.Contains(t, out.String(), "quick:       positive")
	assert.Contains(t, out.String(), "vader:       positive")
}

func TestRunAnalyzeLocal(t *testing.T) {
	resetFlags(t)
	cmd, out := newTestCmd("Checkout is terrible and slow\nSupport was great, love the team")

	require.NoError(t, runAnalyze(cmd, nil))

	resp := decodeResponse(t, out.Bytes())
	require.NotEmpty(t, resp.Sections)
	assert.Equal(t, "analysis", resp.Sections[0].Rule)
	assert.Contains(t, resp.Sections[0].Raw, "Analyzed 2 feedbacks.")
}

func TestRunAnalyzeCSV(t *testing.T) {
	resetFlags(t)
	analyzeCSV = true
	cmd, out := newTestCmd("id,review\n1,The app crashes on every launch\n2,Terrible update, broken sync\n")

	require.NoError(t, runAnalyze(cmd, nil))

	resp := decodeResponse(t, out.Bytes())
	assert.Contains(t, resp.Sections[0].Raw, "Analyzed 2 feedbacks. Negative sentiment")
}

func TestRunAnalyzeEmpty(t *testing.T) {
	resetFlags(t)
	cmd, _ := newTestCmd("   ")

	assert.ErrorIs(t, runAnalyze(cmd, nil), errNoFeedback)
}

func TestRunAnalyzeAIWithoutKey(t *testing.T) {
	resetFlags(t)
	analyzeAI = true
	cmd, _ := newTestCmd("Great product overall")

	assert.Error(t, runAnalyze(cmd, nil))
}

func TestRunAnalyzeRemote(t *testing.T) {
	resetFlags(t)
	analyzeRemote = true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/analyze/text", r.URL.Path)
		_ = json.NewEncoder(w).Encode(models.FeedbackAnalysis{ChatResponse: "**Expected Impact:** Happier users."})
	}))
	defer srv.Close()
	appConfig.FeedbackAPIURL = srv.URL
	cmd, out := newTestCmd("Great product overall")

	require.NoError(t, runAnalyze(cmd, nil))

	resp := decodeResponse(t, out.Bytes())
	require.Len(t, resp.Sections, 1)
	assert.Equal(t, "expected-impact", resp.Sections[0].Rule)
}

func TestRunChat(t *testing.T) {
	resetFlags(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.ChatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "what are the top complaints?", req.Message)
		assert.Equal(t, "conv-1", req.ConversationID)
		_ = json.NewEncoder(w).Encode(models.ChatResponse{
			ConversationID: "conv-1",
			Response:       "**Main Issues:** Shipping delays.",
			IsQuestion:     true,
		})
	}))
	defer srv.Close()
	appConfig.FeedbackAPIURL = srv.URL
	chatConversation = "conv-1"
	cmd, out := newTestCmd("")

	require.NoError(t, runChat(cmd, []string{"what", "are", "the", "top", "complaints?"}))

	resp := decodeResponse(t, out.Bytes())
	require.Len(t, resp.Sections, 1)
	assert.Equal(t, "Shipping delays.", resp.Sections[0].Body)
}

func TestRunChatMockAndWelcome(t *testing.T) {
	resetFlags(t)
	chatMock = true
	cmd, out := newTestCmd("")

	require.NoError(t, runChat(cmd, []string{"hello"}))
	resp := decodeResponse(t, out.Bytes())
	assert.NotEmpty(t, resp.Sections)

	cmd, out = newTestCmd("")
	require.NoError(t, runChat(cmd, nil))
	assert.Contains(t, out.String(), "AI feedback analyst")
}
