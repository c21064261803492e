package reasoning

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"stature/internal/dao"
	"stature/internal/knowledge"
	"stature/pkg/log"
)

// UpstreamError is any failure of the reasoning upstream: transport error,
// non-JSON reply or a reply missing required report fields. A malformed
// report is a hard failure, never forwarded as if authoritative.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("reasoning upstream: %s", e.Message)
}

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// Client sends the assembled dossier plus the reference knowledge base to an
// OpenAI-compatible reasoning upstream and parses its JSON-only reply.
type Client struct {
	api  *openai.Client
	conf Config
}

func NewClient(conf Config) *Client {
	if conf.Model == "" {
		conf.Model = "gpt-4o-mini"
	}
	if conf.Timeout <= 0 {
		conf.Timeout = 60 * time.Second
	}
	clientConfig := openai.DefaultConfig(conf.APIKey)
	if conf.BaseURL != "" {
		clientConfig.BaseURL = conf.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{Timeout: conf.Timeout}
	return &Client{
		api:  openai.NewClientWithConfig(clientConfig),
		conf: conf,
	}
}

// Reason runs one fusion call and returns the validated report.
func (c *Client) Reason(ctx context.Context, dossier *dao.Dossier, kb *knowledge.Base) (*dao.AnalysisReport, error) {
	prompt, err := buildFusionPrompt(dossier, kb)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.conf.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fusionSystemPrompt},
			{Role: openai.ChatMessageRoleAssistant, Content: engineReadyReply},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: c.conf.Temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return nil, &UpstreamError{Message: "no choices in reply"}
	}
	log.GetLogger(ctx).Debugf("reasoning call used %d tokens", resp.Usage.TotalTokens)

	content := stripFence(strings.TrimSpace(resp.Choices[0].Message.Content))
	report := &dao.AnalysisReport{}
	if err := json.Unmarshal([]byte(content), report); err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("reply is not valid JSON: %v", err)}
	}
	if report.Estimation == "" || report.Methodology == "" || report.ConfidenceScore == "" {
		return nil, &UpstreamError{Message: "reply missing required report fields"}
	}
	return report, nil
}

// Some models wrap JSON-mode output in a markdown code fence anyway.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
