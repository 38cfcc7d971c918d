package openrouter

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/longkey1/runway/internal/runway"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// RemoteModel is a model listed by the OpenRouter catalogue
type RemoteModel struct {
	ID      string
	OwnedBy string
}

// ListModels fetches the live model catalogue through the OpenAI-compatible
// models endpoint
func (c *Client) ListModels(ctx context.Context, apiKey string) ([]RemoteModel, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, runway.ErrMissingCredential
	}

	opts := []option.RequestOption{
		option.WithBaseURL(c.baseURL + "/"),
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(c.httpClient),
		option.WithRequestTimeout(c.timeout),
		option.WithMaxRetries(0),
	}
	if c.referer != "" {
		opts = append(opts, option.WithHeader("HTTP-Referer", c.referer))
	}
	if c.title != "" {
		opts = append(opts, option.WithHeader("X-Title", c.title))
	}
	client := openai.NewClient(opts...)

	page, err := client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list OpenRouter models: %w", err)
	}

	result := make([]RemoteModel, 0, len(page.Data))
	for _, m := range page.Data {
		result = append(result, RemoteModel{ID: m.ID, OwnedBy: m.OwnedBy})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}
