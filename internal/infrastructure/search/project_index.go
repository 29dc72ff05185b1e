package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/portfolio-api/internal/domain/entity"
)

const (
	requestTimeout = 3 * time.Second
	defaultSize    = 10
	maxSize        = 50
)

const projectMapping = `{
  "mappings": {
    "properties": {
      "id":           {"type": "keyword"},
      "title":        {"type": "text"},
      "description":  {"type": "text"},
      "technologies": {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "github_url":   {"type": "keyword", "index": false},
      "live_url":     {"type": "keyword", "index": false},
      "image_url":    {"type": "keyword", "index": false},
      "user_id":      {"type": "keyword"},
      "created_at":   {"type": "date"},
      "updated_at":   {"type": "date"}
    }
  }
}`

// ProjectIndex mirrors projects into Elasticsearch and serves full-text
// search over them.
type ProjectIndex struct {
	ES        *elasticsearch.Client
	IndexName string
	Logger    logrus.FieldLogger
}

func NewProjectIndex(es *elasticsearch.Client, index string, logger logrus.FieldLogger) *ProjectIndex {
	return &ProjectIndex{ES: es, IndexName: index, Logger: logger}
}

// EnsureIndex creates the index with its mapping when it does not exist.
func (p *ProjectIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := p.ES.Indices.Exists([]string{p.IndexName}, p.ES.Indices.Exists.WithContext(c))
	if err != nil {
		return err
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	res, err = p.ES.Indices.Create(p.IndexName,
		p.ES.Indices.Create.WithContext(c),
		p.ES.Indices.Create.WithBody(strings.NewReader(projectMapping)))
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", p.IndexName, res.Status())
	}
	return nil
}

func projectDoc(rec *entity.Project) map[string]any {
	return map[string]any{
		"id":           rec.ID,
		"title":        rec.Title,
		"description":  rec.Description,
		"technologies": rec.Technologies,
		"github_url":   rec.GithubURL,
		"live_url":     rec.LiveURL,
		"image_url":    rec.ImageURL,
		"user_id":      rec.UserID,
		"created_at":   rec.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":   rec.UpdatedAt.Format(time.RFC3339Nano),
	}
}

func (p *ProjectIndex) Index(ctx context.Context, rec *entity.Project) {
	b, _ := json.Marshal(projectDoc(rec))
	req := esapi.IndexRequest{Index: p.IndexName, DocumentID: rec.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, p.ES)
	if err != nil {
		p.Logger.WithError(err).WithField("project_id", rec.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		p.Logger.WithField("status", res.Status()).WithField("project_id", rec.ID).Warn("es index response error")
	}
}

func (p *ProjectIndex) Remove(ctx context.Context, id string) {
	req := esapi.DeleteRequest{Index: p.IndexName, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, p.ES)
	if err != nil {
		p.Logger.WithError(err).WithField("project_id", id).Warn("es delete failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		p.Logger.WithField("status", res.Status()).WithField("project_id", id).Warn("es delete response error")
	}
}

// Search performs a multi_match query over title, description and technologies.
func (p *ProjectIndex) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     q,
				"fields":    []string{"title^3", "technologies^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := p.ES.Search(
		p.ES.Search.WithContext(c),
		p.ES.Search.WithIndex(p.IndexName),
		p.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Score  float64        `json:"_score"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		if h.Source == nil {
			h.Source = map[string]any{}
		}
		h.Source["id"] = h.ID
		h.Source["score"] = h.Score
		out = append(out, h.Source)
	}
	return out, nil
}
