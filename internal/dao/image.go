package dao

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DecodeDataURI extracts the binary payload from a data URI (or a bare
// base64 string) and verifies it is a decodable image.
func DecodeDataURI(s string) ([]byte, error) {
	payload := s
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil, fmt.Errorf("malformed data URI")
		}
		payload = s[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image payload: %v", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty image payload")
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("unrecognized image format: %v", err)
	}
	return raw, nil
}

// DecodeImages decodes every submitted payload, preserving submission order.
func (r *AnalyzeRequest) DecodeImages() ([][]byte, error) {
	images := make([][]byte, 0, len(r.Images))
	for i, s := range r.Images {
		raw, err := DecodeDataURI(s)
		if err != nil {
			return nil, fmt.Errorf("image %d: %v", i, err)
		}
		images = append(images, raw)
	}
	return images, nil
}
