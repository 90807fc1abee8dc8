// Package llm wraps an OpenAI-compatible chat API as the relevance, translation and narrative oracle.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/postdigest/pkg/config"
	"github.com/umputun/postdigest/pkg/domain"
)

// errNoChoices is returned when the api answered without any completion
var errNoChoices = errors.New("no response from llm")

// Oracle uses an LLM to judge relevance, translate posts and write narratives
type Oracle struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
	language  string
}

// NewOracle creates a new LLM oracle. Language is the translation target.
func NewOracle(cfg config.LLMConfig, language string) *Oracle {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}

	// use custom system prompt if provided, otherwise use default
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = fmt.Sprintf(defaultSystemPrompt, cfg.Topic)
	}
	if language == "" {
		language = "English"
	}

	return &Oracle{
		client:    openai.NewClientWithConfig(clientConfig),
		config:    cfg,
		systemMsg: systemMsg,
		language:  language,
	}
}

// default system prompt for relevance analysis, %s is the configured topic
const defaultSystemPrompt = `You are an analyst who screens social media posts for relevance to %s.
For each post return an object with:
- id: the post id exactly as given
- is_relevant: true if the post is about the subject, false otherwise
- relevance_score: 0-10, how central the subject is to the post (0 = unrelated, 10 = major announcement)
- summary: 1-2 sentences in English describing the post, only when relevant
- topics: 2-4 short topic tags, e.g. ["GPT", "OpenAI", "LLM"], only when relevant

Respond with a JSON array of objects, one per post, in the order given. No other text.`

// Analyze judges a batch of posts. Transport failures and unparsable answers are
// reported through the result kind, never as partial judgments.
func (o *Oracle) Analyze(ctx context.Context, inputs []domain.AnalysisInput) domain.AnalysisResult {
	if len(inputs) == 0 {
		return domain.AnalysisResult{Kind: domain.ResultOK, Judgments: []domain.Judgment{}}
	}

	content, err := o.chat(ctx, o.systemMsg, buildAnalyzePrompt(inputs), o.config.MaxTokens)
	if err != nil {
		return domain.AnalysisResult{Kind: domain.ResultTransportError, Err: err}
	}

	judgments, err := parseJudgments(content, inputs)
	if err != nil {
		return domain.AnalysisResult{Kind: domain.ResultParseError, Err: err}
	}
	return domain.AnalysisResult{Kind: domain.ResultOK, Judgments: judgments}
}

// Translate translates post text into the configured language
func (o *Oracle) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty text")
	}
	prompt := fmt.Sprintf("Translate the following post to %s. Keep technical terms, product names and "+
		"handles in English when appropriate.\n\nPost:\n%s\n\nProvide only the translation, no explanations.",
		o.language, text)
	res, err := o.chat(ctx, "You are a professional translator of technology news.", prompt, 1000)
	if err != nil {
		return "", fmt.Errorf("translate: %w", err)
	}
	res = strings.TrimSpace(res)
	if res == "" {
		return "", fmt.Errorf("translate: empty translation")
	}
	return res, nil
}

// Generate returns the raw completion of a free-form prompt, trimmed
func (o *Oracle) Generate(ctx context.Context, prompt string) (string, error) {
	res, err := o.chat(ctx, "You are the editor-in-chief of a daily industry newsletter.", prompt, o.config.MaxTokens)
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return strings.TrimSpace(res), nil
}

func (o *Oracle) chat(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if o.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.config.Timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       o.config.Model,
		Temperature: float32(o.config.Temperature),
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// buildAnalyzePrompt lists posts with their ids and optional linked page text
func buildAnalyzePrompt(inputs []domain.AnalysisInput) string {
	var sb strings.Builder
	sb.WriteString("Analyze these posts:\n\n")
	for i, in := range inputs {
		sb.WriteString(fmt.Sprintf("Post %d (ID: %s):\n%s\n", i+1, in.ExternalID, in.Text))
		if in.Context != "" {
			sb.WriteString(fmt.Sprintf("Linked page: %s\n", in.Context))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Respond with a JSON array of judgment objects.")
	return sb.String()
}

// judgmentJSON accepts both numeric and string ids
type judgmentJSON struct {
	ID             json.RawMessage `json:"id"`
	Relevant       bool            `json:"is_relevant"`
	RelevanceScore float64         `json:"relevance_score"`
	Summary        string          `json:"summary"`
	Topics         []string        `json:"topics"`
}

// parseJudgments extracts the JSON array from the answer and validates it against the inputs.
// Judgments with an id not present in the batch are dropped, the rest keep their position
// in the response. Scores are clamped to 0..10.
func parseJudgments(content string, inputs []domain.AnalysisInput) ([]domain.Judgment, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start == -1 || end == -1 || start >= end {
		return nil, fmt.Errorf("no json array found in response")
	}

	var raw []judgmentJSON
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse json array response: %w", err)
	}

	ids := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		ids[in.ExternalID] = true
	}

	res := make([]domain.Judgment, 0, len(raw))
	for i, r := range raw {
		id := rawID(r.ID)
		if id != "" && !ids[id] {
			continue
		}
		score := r.RelevanceScore
		if score < 0 {
			score = 0
		} else if score > 10 {
			score = 10
		}
		topics := make([]string, 0, len(r.Topics))
		for _, t := range r.Topics {
			if t = strings.TrimSpace(t); t != "" {
				topics = append(topics, t)
			}
		}
		res = append(res, domain.Judgment{
			ExternalID:     id,
			Relevant:       r.Relevant,
			RelevanceScore: score,
			Summary:        strings.TrimSpace(r.Summary),
			Topics:         topics,
			Position:       i,
		})
	}
	return res, nil
}

func rawID(v json.RawMessage) string {
	if len(v) == 0 || string(v) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(v)) // numeric id
}
