package contentsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"craft-assistant/internal/common/database"
	"craft-assistant/internal/models"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

// ElasticsearchStore searches an index whose content field is mapped as
// "wildcard" and whose content_length holds the content rune count.
type ElasticsearchStore struct {
	client *database.ElasticsearchClient
	index  string
}

func NewElasticsearchStore(client *database.ElasticsearchClient, index string) *ElasticsearchStore {
	return &ElasticsearchStore{client: client, index: index}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.ContentRecord `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func buildSearchBody(keyword string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"wildcard": map[string]interface{}{
				"content": map[string]interface{}{
					"value":            "*" + wildcardEscaper.Replace(keyword) + "*",
					"case_insensitive": true,
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"content_length": map[string]interface{}{"order": "asc"}},
		},
		"_source": []string{"title", "url", "content"},
	}
}

func (s *ElasticsearchStore) FindShortestMatch(ctx context.Context, keyword string) (*models.ContentRecord, error) {
	body, err := json.Marshal(buildSearchBody(keyword))
	if err != nil {
		return nil, fmt.Errorf("%w: encode query: %v", ErrQueryFailed, err)
	}

	size := 1
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client.Client)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("%w: %s", ErrQueryFailed, res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrQueryFailed, err)
	}
	if len(parsed.Hits.Hits) == 0 {
		return nil, nil
	}

	record := parsed.Hits.Hits[0].Source
	return &record, nil
}
