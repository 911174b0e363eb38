package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/averaldo/permissions-app/internal/permission"
	"github.com/elastic/go-elasticsearch/v8"
)

// Service mirrors permission records into an Elasticsearch index. The mirror
// is eventually consistent with the store and never authoritative.
type Service struct {
	client *elasticsearch.Client
	index  string
	logger *slog.Logger
}

func NewService(client *elasticsearch.Client, index string, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		index:  index,
		logger: logger,
	}
}

// EnsureIndex creates the backing index if it does not exist yet. Safe to call
// on every process start.
func (s *Service) EnsureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists(
		[]string{s.index},
		s.client.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to check index existence: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusOK {
		s.logger.Debug("search index already exists", "index", s.index)
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("unexpected status checking index %s: %s", s.index, res.Status())
	}

	createRes, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", s.index, err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		return fmt.Errorf("failed to create index %s: %s", s.index, createRes.String())
	}

	s.logger.Info("search index created", "index", s.index)
	return nil
}

// IndexPermission upserts a permission document keyed by its ID.
func (s *Service) IndexPermission(ctx context.Context, p *permission.Permission) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal permission %d: %w", p.ID, err)
	}

	res, err := s.client.Index(
		s.index,
		bytes.NewReader(body),
		s.client.Index.WithDocumentID(strconv.FormatInt(p.ID, 10)),
		s.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index permission %d: %w", p.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index permission %d: %s", p.ID, res.String())
	}

	s.logger.Debug("permission indexed", "permission_id", p.ID, "index", s.index)
	return nil
}

// SearchPermissions runs a multi_match query over the employee name fields.
func (s *Service) SearchPermissions(ctx context.Context, term string) ([]*permission.Permission, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  term,
				"fields": []string{"employeeName", "employeeLastName"},
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search request failed: %s", res.String())
	}

	var response struct {
		Hits struct {
			Hits []struct {
				Source permission.Permission `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]*permission.Permission, len(response.Hits.Hits))
	for i := range response.Hits.Hits {
		results[i] = &response.Hits.Hits[i].Source
	}
	return results, nil
}
