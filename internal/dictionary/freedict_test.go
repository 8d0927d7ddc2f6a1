package dictionary

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const freeDictSample = `[
  {
    "word": "serendipity",
    "phonetics": [
      {"text": "/ˌsɛ.ɹən.ˈdɪ.pɪ.ti/", "audio": ""},
      {"text": "/ˌsɛɹ.ənˈdɪp.ɪ.ti/", "audio": "https://example.com/serendipity-us.mp3"},
      {"text": "", "audio": "https://example.com/serendipity-uk.mp3"}
    ],
    "meanings": [
      {
        "partOfSpeech": "noun",
        "definitions": [
          {"definition": "An unsought, unintended, and/or unexpected, but fortunate, discovery.", "example": "Many scientific breakthroughs happened by serendipity."},
          {"definition": "too short"}
        ],
        "synonyms": ["luck", "fortuity"],
        "antonyms": ["misfortune"]
      }
    ]
  }
]`

func TestFreeDictClient_Lookup(t *testing.T) {
	t.Run("extracts phonetics definitions and relations", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(freeDictSample))
		}))
		defer server.Close()

		client := NewFreeDictClient(server.URL, time.Second)
		result, err := client.Lookup(context.Background(), "serendipity", "en")
		require.NoError(t, err)

		assert.Equal(t, "/en/serendipity", gotPath)
		require.Len(t, result.Definitions, 1)
		assert.Equal(t, "noun", result.Definitions[0].PartOfSpeech)
		assert.NotEmpty(t, result.Definitions[0].Example)
		assert.Len(t, result.Phonetics, 3)
		// first non-empty audio wins
		assert.Equal(t, "https://example.com/serendipity-us.mp3", result.AudioURL)
		assert.Equal(t, []string{"luck", "fortuity"}, result.Synonyms)
		assert.Equal(t, []string{"misfortune"}, result.Antonyms)
		assert.Equal(t, []string{"Many scientific breakthroughs happened by serendipity."}, result.Examples)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"title":"No Definitions Found"}`))
		}))
		defer server.Close()

		client := NewFreeDictClient(server.URL, time.Second)
		_, err := client.Lookup(context.Background(), "zzzz", "en")
		assert.Error(t, err)
	})

	t.Run("invalid payload is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		defer server.Close()

		client := NewFreeDictClient(server.URL, time.Second)
		_, err := client.Lookup(context.Background(), "word", "en")
		assert.Error(t, err)
	})
}

func TestFreeDictClient_Supports(t *testing.T) {
	client := NewFreeDictClient("https://api.dictionaryapi.dev/api/v2/entries", time.Second)
	assert.True(t, client.Supports("en"))
	assert.False(t, client.Supports("es"))
}
