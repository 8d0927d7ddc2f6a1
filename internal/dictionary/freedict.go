package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// FreeDictClient queries the Free Dictionary API (api.dictionaryapi.dev),
// the primary definition source.
type FreeDictClient struct {
	httpClient *resty.Client
	baseURL    string
}

func NewFreeDictClient(baseURL string, timeout time.Duration) *FreeDictClient {
	client := resty.New()
	client.SetTimeout(timeout)
	return &FreeDictClient{
		httpClient: client,
		baseURL:    baseURL,
	}
}

func (c *FreeDictClient) Name() string {
	return "freedict"
}

// Supports limits the priority chain to English. Other locales reach this
// provider only through the aggregator's native-definition path.
func (c *FreeDictClient) Supports(lang string) bool {
	return lang == "en"
}

type freeDictEntry struct {
	Word      string `json:"word"`
	Phonetics []struct {
		Text  string `json:"text"`
		Audio string `json:"audio"`
	} `json:"phonetics"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
		Synonyms []string `json:"synonyms"`
		Antonyms []string `json:"antonyms"`
	} `json:"meanings"`
}

func (c *FreeDictClient) Lookup(ctx context.Context, word, lang string) (Result, error) {
	var result Result

	res, err := c.httpClient.R().
		SetContext(ctx).
		Get(fmt.Sprintf("%s/%s/%s", c.baseURL, lang, url.PathEscape(word)))
	if err != nil {
		return result, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return result, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}

	var entries []freeDictEntry
	if err := json.Unmarshal(res.Body(), &entries); err != nil {
		return result, fmt.Errorf("json.Unmarshal > %w", err)
	}
	if len(entries) == 0 {
		return result, nil
	}

	entry := entries[0]
	for _, phonetic := range entry.Phonetics {
		// first non-empty audio URL wins
		if phonetic.Audio != "" && result.AudioURL == "" {
			result.AudioURL = phonetic.Audio
		}
		result.Phonetics = append(result.Phonetics, Phonetic{Text: phonetic.Text})
	}

	for _, meaning := range entry.Meanings {
		raw := make([]rawDefinition, 0, len(meaning.Definitions))
		for _, def := range meaning.Definitions {
			raw = append(raw, rawDefinition{text: def.Definition, example: def.Example})
		}
		clean := filterDefinitions(raw, meaning.PartOfSpeech)
		result.Definitions = append(result.Definitions, clean...)
		for _, def := range clean {
			if def.Example != "" {
				result.Examples = append(result.Examples, def.Example)
			}
		}
		result.Synonyms = append(result.Synonyms, meaning.Synonyms...)
		result.Antonyms = append(result.Antonyms, meaning.Antonyms...)
	}
	return result, nil
}
