package service

import (
	"encoding/base64"
	"errors"
	"strings"
)

// decodeImageData unwraps a base64 data URI into raw image bytes. Bare
// base64 payloads without the URI prefix are accepted too.
func decodeImageData(imageData string) ([]byte, error) {
	payload := imageData
	if strings.HasPrefix(imageData, "data:") {
		idx := strings.Index(imageData, ",")
		if idx < 0 {
			return nil, errors.New("malformed image data URI")
		}
		payload = imageData[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.New("image data is not valid base64")
	}
	if len(raw) == 0 {
		return nil, errors.New("image data is empty")
	}
	return raw, nil
}
