package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/postdigest/pkg/config"
	"github.com/umputun/postdigest/pkg/domain"
)

// newTestOracle starts a fake chat completion api answering with content and recording the user prompt
func newTestOracle(t *testing.T, status int, content string) (oracle *Oracle, prompts *[]string) {
	t.Helper()
	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req openai.ChatCompletionRequest
		require.NoError(t, json.Unmarshal(body, &req))
		require.Len(t, req.Messages, 2)
		got = append(got, req.Messages[1].Content)

		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		resp := openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content}},
		}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)

	cfg := config.LLMConfig{Endpoint: server.URL + "/v1", APIKey: "test-key", Model: "gpt-4o-mini",
		Temperature: 0.3, MaxTokens: 500, Topic: "AI"}
	return NewOracle(cfg, "Chinese"), &got
}

func TestOracle_Analyze(t *testing.T) {
	inputs := []domain.AnalysisInput{
		{ExternalID: "101", Text: "GPT-5 is out"},
		{ExternalID: "102", Text: "my cat is cute", Context: "cat pictures"},
	}

	t.Run("json array inside prose", func(t *testing.T) {
		oracle, prompts := newTestOracle(t, http.StatusOK, "Sure, here you go:\n```json\n"+`[
  {"id": "101", "is_relevant": true, "relevance_score": 9, "summary": " OpenAI ships GPT-5. ", "topics": ["GPT", " OpenAI ", ""]},
  {"id": 102, "is_relevant": false, "relevance_score": 0},
  {"id": "999", "is_relevant": true, "relevance_score": 10}
]`+"\n```")
		res := oracle.Analyze(context.Background(), inputs)
		require.Equal(t, domain.ResultOK, res.Kind, "err: %v", res.Err)
		require.NoError(t, res.Err)
		require.Len(t, res.Judgments, 2, "unknown id dropped")

		assert.Equal(t, domain.Judgment{ExternalID: "101", Relevant: true, RelevanceScore: 9,
			Summary: "OpenAI ships GPT-5.", Topics: []string{"GPT", "OpenAI"}}, res.Judgments[0])
		assert.Equal(t, "102", res.Judgments[1].ExternalID)
		assert.Equal(t, 1, res.Judgments[1].Position)
		assert.False(t, res.Judgments[1].Relevant)

		require.Len(t, *prompts, 1)
		assert.Contains(t, (*prompts)[0], "Post 1 (ID: 101):\nGPT-5 is out")
		assert.Contains(t, (*prompts)[0], "Linked page: cat pictures")
	})

	t.Run("scores clamped", func(t *testing.T) {
		oracle, _ := newTestOracle(t, http.StatusOK,
			`[{"id":"101","is_relevant":true,"relevance_score":15},{"id":"102","relevance_score":-2}]`)
		res := oracle.Analyze(context.Background(), inputs)
		require.Equal(t, domain.ResultOK, res.Kind)
		assert.InDelta(t, 10.0, res.Judgments[0].RelevanceScore, 1e-9)
		assert.InDelta(t, 0.0, res.Judgments[1].RelevanceScore, 1e-9)
	})

	t.Run("missing ids are kept for positional matching", func(t *testing.T) {
		oracle, _ := newTestOracle(t, http.StatusOK, `[{"is_relevant":true,"relevance_score":5}]`)
		res := oracle.Analyze(context.Background(), inputs)
		require.Equal(t, domain.ResultOK, res.Kind)
		require.Len(t, res.Judgments, 1)
		assert.Empty(t, res.Judgments[0].ExternalID)
	})

	t.Run("positions survive dropped unknown ids", func(t *testing.T) {
		three := append(inputs, domain.AnalysisInput{ExternalID: "103", Text: "new model release"})
		oracle, _ := newTestOracle(t, http.StatusOK, `[
  {"id": "bogus", "is_relevant": true, "relevance_score": 7},
  {"is_relevant": false, "relevance_score": 1},
  {"is_relevant": true, "relevance_score": 9, "summary": "second"}
]`)
		res := oracle.Analyze(context.Background(), three)
		require.Equal(t, domain.ResultOK, res.Kind)
		require.Len(t, res.Judgments, 2)
		assert.Equal(t, 1, res.Judgments[0].Position)
		assert.False(t, res.Judgments[0].Relevant)
		assert.Equal(t, 2, res.Judgments[1].Position)
		assert.Equal(t, "second", res.Judgments[1].Summary)
	})

	t.Run("no array is a parse error", func(t *testing.T) {
		oracle, _ := newTestOracle(t, http.StatusOK, "I can't help with that")
		res := oracle.Analyze(context.Background(), inputs)
		assert.Equal(t, domain.ResultParseError, res.Kind)
		require.Error(t, res.Err)
		assert.Contains(t, res.Err.Error(), "no json array")
		assert.Nil(t, res.Judgments)
	})

	t.Run("broken json is a parse error", func(t *testing.T) {
		oracle, _ := newTestOracle(t, http.StatusOK, `[{"id": "101", "is_relevant": tru]`)
		res := oracle.Analyze(context.Background(), inputs)
		assert.Equal(t, domain.ResultParseError, res.Kind)
	})

	t.Run("http failure is a transport error", func(t *testing.T) {
		oracle, _ := newTestOracle(t, http.StatusInternalServerError, "")
		res := oracle.Analyze(context.Background(), inputs)
		assert.Equal(t, domain.ResultTransportError, res.Kind)
		require.Error(t, res.Err)
	})

	t.Run("empty batch skips the call", func(t *testing.T) {
		oracle, prompts := newTestOracle(t, http.StatusOK, "[]")
		res := oracle.Analyze(context.Background(), nil)
		assert.Equal(t, domain.ResultOK, res.Kind)
		assert.Empty(t, res.Judgments)
		assert.Empty(t, *prompts)
	})
}

func TestOracle_Translate(t *testing.T) {
	oracle, prompts := newTestOracle(t, http.StatusOK, "  GPT-5 发布了  \n")
	res, err := oracle.Translate(context.Background(), "GPT-5 is out")
	require.NoError(t, err)
	assert.Equal(t, "GPT-5 发布了", res)
	assert.Contains(t, (*prompts)[0], "to Chinese")
	assert.Contains(t, (*prompts)[0], "GPT-5 is out")

	_, err = oracle.Translate(context.Background(), "  ")
	require.Error(t, err)

	failing, _ := newTestOracle(t, http.StatusBadGateway, "")
	_, err = failing.Translate(context.Background(), "text")
	require.Error(t, err)

	empty, _ := newTestOracle(t, http.StatusOK, "   ")
	_, err = empty.Translate(context.Background(), "text")
	require.Error(t, err)
}

func TestOracle_Generate(t *testing.T) {
	oracle, prompts := newTestOracle(t, http.StatusOK, "\n## Today\n\nbig news\n\n")
	res, err := oracle.Generate(context.Background(), "write the report")
	require.NoError(t, err)
	assert.Equal(t, "## Today\n\nbig news", res)
	assert.Equal(t, []string{"write the report"}, *prompts)

	failing, _ := newTestOracle(t, http.StatusInternalServerError, "")
	_, err = failing.Generate(context.Background(), "prompt")
	require.Error(t, err)
}

func TestNewOracle_SystemPrompt(t *testing.T) {
	o := NewOracle(config.LLMConfig{Topic: "robotics"}, "")
	assert.Contains(t, o.systemMsg, "relevance to robotics")
	assert.Equal(t, "English", o.language)

	o = NewOracle(config.LLMConfig{SystemPrompt: "custom"}, "German")
	assert.Equal(t, "custom", o.systemMsg)
	assert.Equal(t, "German", o.language)
}
