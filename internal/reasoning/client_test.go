package reasoning

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stature/internal/dao"
	"stature/internal/knowledge"
)

func testDossier() *dao.Dossier {
	return &dao.Dossier{Images: []dao.ImageAnalysis{
		{
			SourceImageIndex: 0,
			Detections: []dao.Detection{
				{SourceImageIndex: 0, Label: "person", Box: dao.BoundingBox{X: 1, Y: 2, W: 100, H: 400}},
				{SourceImageIndex: 0, Label: "credit_card", Box: dao.BoundingBox{X: 120, Y: 300, W: 40, H: 25}},
			},
		},
	}}
}

func testKB(t *testing.T) *knowledge.Base {
	t.Helper()
	kb, err := knowledge.Load("")
	require.NoError(t, err)
	return kb
}

const goodReport = `{
  "estimation": "178 cm (5ft 10in)",
  "methodology": "Used the credit_card (TIER_S, 85.60mm wide) to establish scale.",
  "postureCorrection": "Subject upright, no correction applied.",
  "confidenceScore": "88%",
  "caveats": ["minor perspective distortion"],
  "visualizationData": {
    "sourceImageIndex": 0,
    "personBox": {"x": 1, "y": 2, "w": 100, "h": 400},
    "referenceBox": {"x": 120, "y": 300, "w": 40, "h": 25}
  }
}`

type recordedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat *struct {
		Type string `json:"type"`
	} `json:"response_format"`
}

func chatServer(t *testing.T, content string, recorded *recordedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		if recorded != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(recorded))
		}
		reply := map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test-model",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]interface{}{"role": "assistant", "content": content},
				},
			},
			"usage": map[string]interface{}{"prompt_tokens": 5, "completion_tokens": 7, "total_tokens": 12},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(reply))
	}))
}

func TestReasonParsesReport(t *testing.T) {
	var recorded recordedRequest
	ts := chatServer(t, goodReport, &recorded)
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, APIKey: "test", Model: "test-model"})
	report, err := client.Reason(context.Background(), testDossier(), testKB(t))
	require.NoError(t, err)

	assert.Equal(t, "178 cm (5ft 10in)", report.Estimation)
	assert.Equal(t, "88%", report.ConfidenceScore)
	require.NotNil(t, report.VisualizationData)
	assert.Equal(t, 0, report.VisualizationData.SourceImageIndex)
	assert.Equal(t, 400, report.VisualizationData.PersonBox.H)

	// The prompt carries both the dossier and the knowledge base.
	assert.Equal(t, "test-model", recorded.Model)
	require.Len(t, recorded.Messages, 3)
	assert.Equal(t, "system", recorded.Messages[0].Role)
	assert.Contains(t, recorded.Messages[2].Content, "credit_card")
	assert.Contains(t, recorded.Messages[2].Content, "TIER_S")
	require.NotNil(t, recorded.ResponseFormat)
	assert.Equal(t, "json_object", recorded.ResponseFormat.Type)
}

func TestReasonAcceptsFencedReply(t *testing.T) {
	ts := chatServer(t, "```json\n"+goodReport+"\n```", nil)
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, APIKey: "test"})
	report, err := client.Reason(context.Background(), testDossier(), testKB(t))
	require.NoError(t, err)
	assert.Equal(t, "178 cm (5ft 10in)", report.Estimation)
}

func TestReasonRejectsNonJSON(t *testing.T) {
	ts := chatServer(t, "I cannot produce a report right now.", nil)
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, APIKey: "test"})
	_, err := client.Reason(context.Background(), testDossier(), testKB(t))
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Contains(t, upstreamErr.Message, "not valid JSON")
}

func TestReasonRejectsMissingFields(t *testing.T) {
	ts := chatServer(t, `{"methodology": "scale from card"}`, nil)
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, APIKey: "test"})
	_, err := client.Reason(context.Background(), testDossier(), testKB(t))
	require.Error(t, err)

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Contains(t, upstreamErr.Message, "missing required")
}

func TestReasonUpstreamFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewClient(Config{BaseURL: ts.URL, APIKey: "test"})
	_, err := client.Reason(context.Background(), testDossier(), testKB(t))

	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
}
