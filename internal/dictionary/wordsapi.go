// https://rapidapi.com/dpventures/api/wordsapi
package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lingodex/lingodex/internal/profanity"
)

// WordsAPIClient queries WordsAPI through RapidAPI, the secondary definition
// source. Without an API key the provider reports itself unsupported, so the
// chain falls through to the slang source instead of failing.
type WordsAPIClient struct {
	httpClient *resty.Client
	host       string
	apiKey     string
}

func NewWordsAPIClient(host, apiKey string, timeout time.Duration) *WordsAPIClient {
	client := resty.New()
	client.SetTimeout(timeout)
	return &WordsAPIClient{
		httpClient: client,
		host:       host,
		apiKey:     apiKey,
	}
}

func (c *WordsAPIClient) Name() string {
	return "wordsapi"
}

func (c *WordsAPIClient) Supports(lang string) bool {
	return lang == "en" && c.apiKey != ""
}

type wordsAPIResponse struct {
	Word          string               `json:"word"`
	Pronunciation wordsAPIPronunciation `json:"pronunciation"`
	Results       []wordsAPIResult     `json:"results"`
}

type wordsAPIPronunciation struct {
	All string `json:"all"`
}

// UnmarshalJSON accepts both shapes the API returns: an object with an "all"
// field, or a bare string.
func (p *wordsAPIPronunciation) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '{' {
		var all struct {
			All string `json:"all"`
		}
		if err := json.Unmarshal(data, &all); err != nil {
			return fmt.Errorf("json.Unmarshal > %w", err)
		}
		p.All = all.All
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("json.Unmarshal > %w", err)
	}
	p.All = s
	return nil
}

type wordsAPIResult struct {
	Definition   string   `json:"definition"`
	PartOfSpeech string   `json:"partOfSpeech"`
	Synonyms     []string `json:"synonyms"`
	Antonyms     []string `json:"antonyms"`
	Examples     []string `json:"examples"`
}

func (c *WordsAPIClient) Lookup(ctx context.Context, word, lang string) (Result, error) {
	var result Result

	res, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("x-rapidapi-host", c.host).
		SetHeader("x-rapidapi-key", c.apiKey).
		Get(fmt.Sprintf("https://%s/words/%s", c.host, url.PathEscape(word)))
	if err != nil {
		return result, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return result, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}

	var resp wordsAPIResponse
	if err := json.Unmarshal(res.Body(), &resp); err != nil {
		return result, fmt.Errorf("json.Unmarshal > %w", err)
	}

	if resp.Pronunciation.All != "" {
		result.Phonetics = append(result.Phonetics, Phonetic{Text: resp.Pronunciation.All})
	}

	for _, item := range resp.Results {
		if !profanity.IsAppropriate(item.Definition) {
			continue
		}
		def := Definition{
			Definition:   item.Definition,
			PartOfSpeech: item.PartOfSpeech,
		}
		if len(item.Examples) > 0 {
			example := item.Examples[0]
			if !profanity.Contains(example) {
				def.Example = example
				result.Examples = append(result.Examples, example)
			}
		}
		result.Definitions = append(result.Definitions, def)
		result.Synonyms = append(result.Synonyms, item.Synonyms...)
		result.Antonyms = append(result.Antonyms, item.Antonyms...)
	}
	return result, nil
}
