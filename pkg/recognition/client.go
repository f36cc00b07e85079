package recognition

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client talks to a CompreFace-compatible recognition service.
// Face matching is fully delegated to that service; this process never
// runs a classifier of its own.
type Client struct {
	BaseURL          string
	APIKey           string
	DetProbThreshold float64
	httpClient       *http.Client
}

func NewClient(baseURL, apiKey string, detProbThreshold float64, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL:          baseURL,
		APIKey:           apiKey,
		DetProbThreshold: detProbThreshold,
		httpClient:       &http.Client{Timeout: timeout},
	}
}

// RegisterFaceResult is the response of adding an example image to a subject.
type RegisterFaceResult struct {
	ImageId string `json:"image_id"`
	Subject string `json:"subject"`
}

// SubjectMatch is one candidate identity for a detected face.
type SubjectMatch struct {
	Subject    string  `json:"subject"`
	Similarity float64 `json:"similarity"`
}

// DetectedFace is one face found in a recognition request.
type DetectedFace struct {
	Subjects       []SubjectMatch `json:"subjects"`
	DetProbability float64        `json:"det_probability"`
}

type recognizeResponse struct {
	Result []DetectedFace `json:"result"`
}

type subjectsResponse struct {
	Subjects []string `json:"subjects"`
}

// RegisterFace uploads a JPEG as an example image for the given subject.
func (c *Client) RegisterFace(ctx context.Context, subject string, imageJPEG []byte) (*RegisterFaceResult, error) {
	params := url.Values{}
	params.Set("subject", subject)
	params.Set("det_prob_threshold", strconv.FormatFloat(c.DetProbThreshold, 'f', -1, 64))

	endpoint := fmt.Sprintf("%s/api/v1/recognition/faces?%s", c.BaseURL, params.Encode())

	body, contentType, err := buildImageForm(imageJPEG)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("recognition service register error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result RegisterFaceResult
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Recognize submits a JPEG and returns the detected faces with subject candidates.
func (c *Client) Recognize(ctx context.Context, imageJPEG []byte) ([]DetectedFace, error) {
	params := url.Values{}
	params.Set("limit", "1")
	params.Set("det_prob_threshold", strconv.FormatFloat(c.DetProbThreshold, 'f', -1, 64))

	endpoint := fmt.Sprintf("%s/api/v1/recognition/recognize?%s", c.BaseURL, params.Encode())

	body, contentType, err := buildImageForm(imageJPEG)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognition service recognize error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result recognizeResponse
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, err
	}
	return result.Result, nil
}

// DeleteSubject removes a subject and all its example images.
func (c *Client) DeleteSubject(ctx context.Context, subject string) error {
	endpoint := fmt.Sprintf("%s/api/v1/recognition/subjects/%s", c.BaseURL, url.PathEscape(subject))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("recognition service delete error (%d): %s", resp.StatusCode, string(bodyBytes))
	}
	return nil
}

// Subjects lists all registered subject names.
func (c *Client) Subjects(ctx context.Context) ([]string, error) {
	endpoint := fmt.Sprintf("%s/api/v1/recognition/subjects", c.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("recognition service subjects error (%d): %s", resp.StatusCode, string(bodyBytes))
	}

	var result subjectsResponse
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return nil, err
	}
	return result.Subjects, nil
}

func buildImageForm(imageJPEG []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", "image.jpg")
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(imageJPEG); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}
