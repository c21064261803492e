package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stature/internal/dao"
)

const analyzePath = "vision/v3.2/analyze"

// UpstreamError is any failure of the detection upstream: transport error,
// non-success status or an undecodable body. The HTTP layer logs Message but
// never forwards it to the caller.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("vision upstream status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("vision upstream: %s", e.Message)
}

type Config struct {
	Endpoint string
	Key      string
	Timeout  time.Duration
}

// Client sends single images to the detection upstream and normalizes its
// response into the canonical detection shape. One outbound call per
// invocation, no retries.
type Client struct {
	conf    Config
	httpCli *http.Client
}

func NewClient(conf Config) *Client {
	if conf.Timeout <= 0 {
		conf.Timeout = 30 * time.Second
	}
	return &Client{
		conf: conf,
		httpCli: &http.Client{
			Timeout: conf.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Provider response shape. Objects and faces use different rectangle field
// names upstream; both map onto dao.BoundingBox.
type analyzeResponse struct {
	Objects []struct {
		Object    string `json:"object"`
		Rectangle struct {
			X int `json:"x"`
			Y int `json:"y"`
			W int `json:"w"`
			H int `json:"h"`
		} `json:"rectangle"`
		Confidence float64 `json:"confidence"`
	} `json:"objects"`
	Faces []struct {
		Age           int    `json:"age"`
		Gender        string `json:"gender"`
		FaceRectangle struct {
			Left   int `json:"left"`
			Top    int `json:"top"`
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"faceRectangle"`
	} `json:"faces"`
}

// Detect sends one image and returns its normalized analysis, tagged with
// the submission index the caller passes in. Detection order within the
// image is preserved from the upstream response.
func (c *Client) Detect(ctx context.Context, image []byte, index int) (*dao.ImageAnalysis, error) {
	apiURL := strings.TrimSuffix(c.conf.Endpoint, "/") + "/" + analyzePath
	query := url.Values{}
	query.Set("visualFeatures", "Objects,Faces")
	apiURL += "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(image))
	if err != nil {
		return nil, &UpstreamError{Message: fmt.Sprintf("create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.conf.Key)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return nil, &UpstreamError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: fmt.Sprintf("read body: %v", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: string(body)}
	}

	var parsed analyzeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &UpstreamError{Status: resp.StatusCode, Message: fmt.Sprintf("decode body: %v", err)}
	}

	analysis := &dao.ImageAnalysis{
		SourceImageIndex: index,
		Detections:       make([]dao.Detection, 0, len(parsed.Objects)),
	}
	for _, obj := range parsed.Objects {
		analysis.Detections = append(analysis.Detections, dao.Detection{
			SourceImageIndex: index,
			Label:            obj.Object,
			Box: dao.BoundingBox{
				X: obj.Rectangle.X,
				Y: obj.Rectangle.Y,
				W: obj.Rectangle.W,
				H: obj.Rectangle.H,
			},
			Confidence: obj.Confidence,
		})
	}
	for _, face := range parsed.Faces {
		analysis.Faces = append(analysis.Faces, dao.FaceDetection{
			SourceImageIndex: index,
			Age:              face.Age,
			SexLabel:         face.Gender,
			Box: dao.BoundingBox{
				X: face.FaceRectangle.Left,
				Y: face.FaceRectangle.Top,
				W: face.FaceRectangle.Width,
				H: face.FaceRectangle.Height,
			},
		})
	}
	return analysis, nil
}
