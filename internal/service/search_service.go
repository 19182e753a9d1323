package service

import (
	"fmt"

	"github.com/meilisearch/meilisearch-go"
	"go.uber.org/zap"

	"github.com/sevasetu/volunteerhub/internal/model"
)

const eventsIndex = "events"

// SearchService keeps the event search index in sync and serves queries.
// Indexing is best-effort; the database remains the source of truth.
type SearchService interface {
	IndexEvent(event *model.Event) error
	DeleteEvent(id string) error
	SearchEvents(query string, limit int) ([]map[string]interface{}, error)
}

type searchService struct {
	client meilisearch.ServiceManager
}

func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{client: client}
	s.initIndex()
	return s
}

func (s *searchService) initIndex() {
	if s.client == nil {
		return
	}
	if _, err := s.client.Index(eventsIndex).UpdateSearchableAttributes(&[]string{"name", "description", "category"}); err != nil {
		zap.L().Warn("failed to configure events index", zap.Error(err))
	}
	if _, err := s.client.Index(eventsIndex).UpdateFilterableAttributes(&[]interface{}{"status", "category"}); err != nil {
		zap.L().Warn("failed to configure events index filters", zap.Error(err))
	}
}

func (s *searchService) IndexEvent(event *model.Event) error {
	if s.client == nil {
		return nil
	}

	doc := map[string]interface{}{
		"id":          event.ID.String(),
		"name":        event.Name,
		"description": event.Description,
		"category":    event.Category.Name,
		"status":      event.Status,
		"start_date":  event.StartDate.Unix(),
	}

	if _, err := s.client.Index(eventsIndex).AddDocuments([]map[string]interface{}{doc}, nil); err != nil {
		return fmt.Errorf("failed to index event: %w", err)
	}
	return nil
}

func (s *searchService) DeleteEvent(id string) error {
	if s.client == nil {
		return nil
	}
	if _, err := s.client.Index(eventsIndex).DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to delete event from index: %w", err)
	}
	return nil
}

func (s *searchService) SearchEvents(query string, limit int) ([]map[string]interface{}, error) {
	if s.client == nil {
		return nil, nil
	}
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	resp, err := s.client.Index(eventsIndex).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var hits []map[string]interface{}
	if err := resp.Hits.DecodeInto(&hits); err != nil {
		return nil, fmt.Errorf("failed to decode search hits: %w", err)
	}
	return hits, nil
}
