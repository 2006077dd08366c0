package extract

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// DocAIClient implements Remote against the Google Document AI REST API.
type DocAIClient struct {
	project     string
	location    string
	processorID string
	tokenSource oauth2.TokenSource
	httpClient  *http.Client
}

// NewDocAIClient constructs a Document AI client. All three processor
// coordinates are required; credentials come from application default
// credentials.
func NewDocAIClient(ctx context.Context, project, location, processorID string) (*DocAIClient, error) {
	if strings.TrimSpace(project) == "" || strings.TrimSpace(location) == "" || strings.TrimSpace(processorID) == "" {
		return nil, fmt.Errorf("DOCAI_PROJECT, DOCAI_LOCATION, and DOCAI_PROCESSOR_ID are required")
	}
	ts, err := google.DefaultTokenSource(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, fmt.Errorf("document ai credentials: %w", err)
	}
	return &DocAIClient{
		project:     project,
		location:    location,
		processorID: processorID,
		tokenSource: ts,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type processRequest struct {
	RawDocument rawDocument `json:"rawDocument"`
}

type rawDocument struct {
	Content  string `json:"content"`
	MimeType string `json:"mimeType"`
}

type processResponse struct {
	Document *struct {
		Text string `json:"text"`
	} `json:"document"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Process sends the payload to the processor and returns the extracted text.
func (c *DocAIClient) Process(ctx context.Context, data []byte, mimeType string) (string, error) {
	endpoint := fmt.Sprintf(
		"https://%s-documentai.googleapis.com/v1/projects/%s/locations/%s/processors/%s:process",
		c.location, c.project, c.location, c.processorID,
	)

	payload, err := json.Marshal(processRequest{
		RawDocument: rawDocument{
			Content:  base64.StdEncoding.EncodeToString(data),
			MimeType: mimeType,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	token, err := c.tokenSource.Token()
	if err != nil {
		return "", fmt.Errorf("document ai token: %w", err)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("document ai request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed processResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("document ai response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("document ai error: %s (%s)", parsed.Error.Message, parsed.Error.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("document ai http status %d", resp.StatusCode)
	}
	if parsed.Document == nil {
		return "", fmt.Errorf("document ai returned no document")
	}
	return parsed.Document.Text, nil
}

var _ Remote = (*DocAIClient)(nil)
