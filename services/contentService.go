package services

import (
	"fmt"
	"log"
	"strings"

	"coursegen/db"
	"coursegen/models"
)

type ContentService struct {
	repo db.ContentRepository
}

func NewContentService(repo db.ContentRepository) *ContentService {
	return &ContentService{repo: repo}
}

func (s *ContentService) SaveContent(req *models.CreateContentRequest) (*models.StoredContent, error) {
	log.Printf("[INFO] Saving generated content: %s", req.Content.Title)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	content := &models.StoredContent{
		Title:    req.Content.Title,
		Language: req.Language,
		Content:  req.Content,
	}
	if err := s.repo.CreateContent(content); err != nil {
		return nil, fmt.Errorf("failed to save content: %w", err)
	}

	log.Printf("[INFO] Saved content with ID: %d", content.ID)
	return content, nil
}

func (s *ContentService) GetContentByID(id int) (*models.StoredContent, error) {
	log.Printf("[INFO] Getting content with ID: %d", id)
	content, err := s.repo.GetContentByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get content %d: %w", id, err)
	}
	return content, nil
}

func (s *ContentService) GetAllContents() ([]*models.StoredContent, error) {
	log.Printf("[INFO] Getting all saved contents")
	contents, err := s.repo.GetAllContents()
	if err != nil {
		return nil, fmt.Errorf("failed to get contents: %w", err)
	}
	return contents, nil
}

func (s *ContentService) DeleteContent(id int) error {
	log.Printf("[INFO] Deleting content with ID: %d", id)
	if err := s.repo.DeleteContent(id); err != nil {
		return fmt.Errorf("failed to delete content %d: %w", id, err)
	}
	return nil
}

func (s *ContentService) validateCreateRequest(req *models.CreateContentRequest) error {
	if strings.TrimSpace(req.Content.Title) == "" {
		return fmt.Errorf("content title is required")
	}
	if req.Language != models.LanguageEnglish && req.Language != models.LanguageIndonesian {
		return fmt.Errorf("language must be %q or %q", models.LanguageEnglish, models.LanguageIndonesian)
	}
	return nil
}
