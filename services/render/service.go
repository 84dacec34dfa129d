package render

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"coursegen/models"
)

// Service proxies finished documents to the external renderer, which turns
// them into PDF or PPTX bytes.
type Service struct {
	baseURL string
	client  *http.Client
}

func NewService(baseURL string) *Service {
	return &Service{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type renderRequest struct {
	Content  *models.LectureContent `json:"content"`
	Language string                 `json:"language"`
}

func (s *Service) RenderPDF(ctx context.Context, content *models.LectureContent, language string) ([]byte, error) {
	return s.render(ctx, "/render/pdf", content, language)
}

func (s *Service) RenderPPTX(ctx context.Context, content *models.LectureContent, language string) ([]byte, error) {
	return s.render(ctx, "/render/pptx", content, language)
}

func (s *Service) render(ctx context.Context, path string, content *models.LectureContent, language string) ([]byte, error) {
	if s.baseURL == "" {
		return nil, fmt.Errorf("renderer URL is not configured")
	}

	body, err := json.Marshal(renderRequest{Content: content, Language: language})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal render request: %w", err)
	}

	log.Printf("[INFO] Rendering %q via %s", content.Title, path)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build render request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("renderer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		message, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("renderer returned status %d: %s", resp.StatusCode, string(message))
	}

	document, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rendered document: %w", err)
	}

	log.Printf("[INFO] Rendered %q: %d bytes", content.Title, len(document))
	return document, nil
}
