// Package speech provides pronunciation synthesis and speech recognition
// backed by the OpenAI audio APIs.
package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// speechAPI is the slice of the OpenAI client the synthesizer uses.
type speechAPI interface {
	CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error)
}

const saveRetryAttempts = 3

// Synthesizer turns text into base64-encoded MP3 audio. The synthesis
// response is streamed to a uniquely named scratch file and read back, which
// is what the backend's streaming API shape requires.
type Synthesizer struct {
	api        speechAPI
	model      string
	voice      string
	scratchDir string
	logger     *logrus.Logger
}

func NewSynthesizer(apiKey, model, voice string, timeout time.Duration, logger *logrus.Logger) *Synthesizer {
	return &Synthesizer{
		api:        newSpeechClient(apiKey, timeout),
		model:      model,
		voice:      voice,
		scratchDir: os.TempDir(),
		logger:     logger,
	}
}

// newSpeechClient builds an OpenAI client whose HTTP calls are bounded by
// timeout.
func newSpeechClient(apiKey string, timeout time.Duration) *openai.Client {
	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}
	return openai.NewClientWithConfig(clientConfig)
}

// Synthesize returns base64 MP3 audio for text, or "" with no error when
// text or lang is empty. The voice model detects the language from the text
// itself; lang gates the call and is logged for trace purposes.
func (s *Synthesizer) Synthesize(ctx context.Context, text, lang string) (string, error) {
	if text == "" || lang == "" {
		return "", nil
	}

	response, err := s.api.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(s.model),
		Input:          text,
		Voice:          openai.SpeechVoice(s.voice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
	})
	if err != nil {
		return "", fmt.Errorf("api.CreateSpeech > %w", err)
	}
	defer func() {
		_ = response.Close()
	}()

	audio, err := io.ReadAll(response)
	if err != nil {
		return "", fmt.Errorf("io.ReadAll > %w", err)
	}

	// unique name so concurrent syntheses never share a scratch file
	scratchPath := filepath.Join(s.scratchDir, fmt.Sprintf("lingodex_tts_%s.mp3", uuid.NewString()))
	if err := s.saveWithRetry(scratchPath, audio); err != nil {
		return "", fmt.Errorf("s.saveWithRetry > %w", err)
	}

	contents, err := os.ReadFile(scratchPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile > %w", err)
	}

	if err := os.Remove(scratchPath); err != nil {
		s.logger.WithField("path", scratchPath).WithError(err).Warn("could not remove scratch audio file")
	}

	return base64.StdEncoding.EncodeToString(contents), nil
}

// saveWithRetry writes the audio with a bounded number of attempts and an
// escalating delay between them.
func (s *Synthesizer) saveWithRetry(path string, audio []byte) error {
	return retry.Do(
		func() error {
			return os.WriteFile(path, audio, 0o644)
		},
		retry.Attempts(saveRetryAttempts),
		retry.Delay(100*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
}
