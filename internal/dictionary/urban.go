package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lingodex/lingodex/internal/profanity"
)

// maxSlangDefinitions caps how many slang entries reach the response.
const maxSlangDefinitions = 3

// UrbanClient queries Urban Dictionary, the slang source of last resort.
type UrbanClient struct {
	httpClient *resty.Client
	baseURL    string
}

func NewUrbanClient(baseURL string, timeout time.Duration) *UrbanClient {
	client := resty.New()
	client.SetTimeout(timeout)
	return &UrbanClient{
		httpClient: client,
		baseURL:    baseURL,
	}
}

func (c *UrbanClient) Name() string {
	return "urban"
}

func (c *UrbanClient) Supports(lang string) bool {
	return true
}

type urbanResponse struct {
	List []urbanEntry `json:"list"`
}

type urbanEntry struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
	ThumbsUp   int    `json:"thumbs_up"`
}

// stripBrackets removes Urban Dictionary's cross-reference markers.
func stripBrackets(text string) string {
	return strings.NewReplacer("[", "", "]", "").Replace(text)
}

func (c *UrbanClient) Lookup(ctx context.Context, word, lang string) (Result, error) {
	var result Result

	res, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("term", word).
		Get(c.baseURL)
	if err != nil {
		return result, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return result, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}

	var resp urbanResponse
	if err := json.Unmarshal(res.Body(), &resp); err != nil {
		return result, fmt.Errorf("json.Unmarshal > %w", err)
	}

	filtered := make([]urbanEntry, 0, len(resp.List))
	for _, entry := range resp.List {
		if profanity.IsAppropriate(stripBrackets(entry.Definition)) {
			filtered = append(filtered, entry)
		}
	}
	// ties keep their source order
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].ThumbsUp > filtered[j].ThumbsUp
	})
	if len(filtered) > maxSlangDefinitions {
		filtered = filtered[:maxSlangDefinitions]
	}

	for _, entry := range filtered {
		def := Definition{
			Definition:   stripBrackets(entry.Definition),
			PartOfSpeech: "slang",
		}
		if entry.Example != "" {
			example := stripBrackets(entry.Example)
			if !profanity.Contains(example) {
				def.Example = example
				result.Examples = append(result.Examples, example)
			}
		}
		result.Definitions = append(result.Definitions, def)
	}
	return result, nil
}
