// Package translation wraps a LibreTranslate backend.
package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// Translation is the outcome of a single translate call.
type Translation struct {
	Text           string
	SourceLanguage string
}

// Client talks to a LibreTranslate server. Calls flow through a circuit
// breaker so a dead backend trips open instead of stalling every request.
type Client struct {
	httpClient *resty.Client
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

// NewClient pings the backend's language list before returning, so an
// unreachable server fails initialization instead of every later request.
func NewClient(baseURL string, timeout time.Duration, logger *logrus.Logger) (*Client, error) {
	httpClient := resty.New()
	httpClient.SetTimeout(timeout)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "libretranslate",
			Timeout: 30 * time.Second,
		}),
		logger: logger,
	}

	res, err := httpClient.R().Get(baseURL + "/languages")
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}
	return client, nil
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	TranslatedText   string `json:"translatedText"`
	DetectedLanguage struct {
		Language   string  `json:"language"`
		Confidence float64 `json:"confidence"`
	} `json:"detectedLanguage"`
}

// backendCode maps the service's language table onto LibreTranslate codes.
func backendCode(lang string) string {
	if lang == "zh-cn" {
		return "zh"
	}
	return lang
}

// Translate translates text into targetLang, detecting the source language.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (Translation, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		return c.translate(ctx, text, targetLang)
	})
	if err != nil {
		return Translation{}, err
	}
	return out.(Translation), nil
}

func (c *Client) translate(ctx context.Context, text, targetLang string) (Translation, error) {
	var translation Translation

	res, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(translateRequest{
			Q:      text,
			Source: "auto",
			Target: backendCode(targetLang),
			Format: "text",
		}).
		Post(c.baseURL + "/translate")
	if err != nil {
		return translation, fmt.Errorf("client.R.Post > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return translation, fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
	}

	var resp translateResponse
	if err := json.Unmarshal(res.Body(), &resp); err != nil {
		return translation, fmt.Errorf("json.Unmarshal > %w", err)
	}

	translation.Text = resp.TranslatedText
	translation.SourceLanguage = resp.DetectedLanguage.Language
	if translation.SourceLanguage == "" {
		translation.SourceLanguage = "en"
	}
	return translation, nil
}
