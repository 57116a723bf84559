// File: internal/platform/elasticsearch/index.go
package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"go.uber.org/zap"
)

const LocalsIndexName = "locals"

// Document is one search document keyed by its primary key.
type Document struct {
	ID   string
	Body []byte
}

func localsMapping() (string, error) {
	keywordSub := map[string]interface{}{"keyword": map[string]interface{}{"type": "keyword", "ignore_above": 256}}
	mapping := map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"name":           map[string]interface{}{"type": "text", "fields": keywordSub},
				"slug":           map[string]interface{}{"type": "keyword"},
				"category":       map[string]interface{}{"type": "keyword"},
				"tagline":        map[string]interface{}{"type": "text"},
				"street_address": map[string]interface{}{"type": "text"},
				"zip_code":       map[string]interface{}{"type": "keyword"},
				"img_url":        map[string]interface{}{"type": "keyword", "index": false},
				"location":       map[string]interface{}{"type": "geo_point"},
				"created_at":     map[string]interface{}{"type": "date"},
			},
		},
	}
	b, err := json.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("error marshalling locals mapping to JSON: %w", err)
	}
	return string(b), nil
}

// LocalsIndexer writes local documents into the locals index.
type LocalsIndexer struct {
	client  *ESClientWrapper
	refresh string
	logger  *zap.Logger
}

// NewLocalsIndexer returns nil when client is nil so callers can treat indexing as disabled.
func NewLocalsIndexer(client *ESClientWrapper, refresh string, logger *zap.Logger) *LocalsIndexer {
	if client == nil {
		return nil
	}
	return &LocalsIndexer{client: client, refresh: refresh, logger: logger.Named("elasticsearch_locals")}
}

// EnsureIndex creates the locals index with its mapping if it does not already exist.
func (ix *LocalsIndexer) EnsureIndex(ctx context.Context) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{LocalsIndexName}}.Do(ctx, ix.client.Client)
	if err != nil {
		return fmt.Errorf("error checking if locals index exists: %w", err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		ix.logger.Debug("Locals index already exists", zap.String("index_name", LocalsIndexName))
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("error checking if locals index exists: status %s", res.Status())
	}

	mappingJSON, err := localsMapping()
	if err != nil {
		return err
	}
	createRes, err := esapi.IndicesCreateRequest{
		Index: LocalsIndexName,
		Body:  strings.NewReader(mappingJSON),
	}.Do(ctx, ix.client.Client)
	if err != nil {
		return fmt.Errorf("error creating locals index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		ix.logger.Error("Failed to create locals index",
			zap.String("status", createRes.Status()),
			zap.String("body", responseBodyToString(createRes)),
		)
		return fmt.Errorf("failed to create locals index %s: status %s", LocalsIndexName, createRes.Status())
	}
	ix.logger.Info("Locals index created", zap.String("index_name", LocalsIndexName))
	return nil
}

// IndexDocuments bulk-indexes docs and returns how many were accepted.
func (ix *LocalsIndexer) IndexDocuments(ctx context.Context, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:     ix.client.Client,
		Index:      LocalsIndexName,
		Refresh:    ix.refresh,
		NumWorkers: 1,
		OnError: func(ctx context.Context, err error) {
			ix.logger.Error("Bulk indexer error", zap.Error(err))
		},
	})
	if err != nil {
		return 0, fmt.Errorf("error creating bulk indexer: %w", err)
	}

	for _, doc := range docs {
		doc := doc
		err := bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID,
			Body:       bytes.NewReader(doc.Body),
			OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
				ix.logger.Warn("Failed to index local",
					zap.String("id", item.DocumentID),
					zap.Int("status", res.Status),
					zap.String("reason", res.Error.Reason),
					zap.Error(err),
				)
			},
		})
		if err != nil {
			_ = bi.Close(ctx)
			return 0, fmt.Errorf("error adding document %s to bulk indexer: %w", doc.ID, err)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return 0, fmt.Errorf("error flushing bulk indexer: %w", err)
	}
	stats := bi.Stats()
	if stats.NumFailed > 0 {
		return int(stats.NumIndexed), fmt.Errorf("%d of %d documents failed to index", stats.NumFailed, stats.NumAdded)
	}
	return int(stats.NumIndexed), nil
}

func responseBodyToString(res *esapi.Response) string {
	if res == nil || res.Body == nil {
		return ""
	}
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(res.Body); err != nil {
		return fmt.Sprintf("failed to read response body: %v", err)
	}
	return buf.String()
}
