package speech

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpeechAPI struct {
	audio string
	err   error
	calls int
	input string
}

func (f *fakeSpeechAPI) CreateSpeech(ctx context.Context, request openai.CreateSpeechRequest) (openai.RawResponse, error) {
	f.calls++
	f.input = request.Input
	if f.err != nil {
		return openai.RawResponse{}, f.err
	}
	return openai.RawResponse{ReadCloser: io.NopCloser(strings.NewReader(f.audio))}, nil
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestSynthesizer(t *testing.T, api speechAPI) *Synthesizer {
	t.Helper()
	return &Synthesizer{
		api:        api,
		model:      "tts-1",
		voice:      "alloy",
		scratchDir: t.TempDir(),
		logger:     newTestLogger(),
	}
}

func TestSynthesizer_Synthesize(t *testing.T) {
	t.Run("round trips audio through the scratch file", func(t *testing.T) {
		api := &fakeSpeechAPI{audio: "mp3-bytes"}
		s := newTestSynthesizer(t, api)

		got, err := s.Synthesize(context.Background(), "serendipity", "en")
		require.NoError(t, err)

		decoded, err := base64.StdEncoding.DecodeString(got)
		require.NoError(t, err)
		assert.Equal(t, "mp3-bytes", string(decoded))
		assert.Equal(t, "serendipity", api.input)

		// scratch file is gone afterwards
		entries, err := os.ReadDir(s.scratchDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("empty text is a silent no-op", func(t *testing.T) {
		api := &fakeSpeechAPI{audio: "unused"}
		s := newTestSynthesizer(t, api)

		got, err := s.Synthesize(context.Background(), "", "en")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, api.calls)
	})

	t.Run("empty lang is a silent no-op", func(t *testing.T) {
		api := &fakeSpeechAPI{audio: "unused"}
		s := newTestSynthesizer(t, api)

		got, err := s.Synthesize(context.Background(), "hello", "")
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, api.calls)
	})

	t.Run("backend failure propagates", func(t *testing.T) {
		api := &fakeSpeechAPI{err: errors.New("rate limited")}
		s := newTestSynthesizer(t, api)

		_, err := s.Synthesize(context.Background(), "hello", "en")
		assert.Error(t, err)
	})

	t.Run("unwritable scratch dir exhausts retries", func(t *testing.T) {
		api := &fakeSpeechAPI{audio: "mp3-bytes"}
		s := newTestSynthesizer(t, api)
		s.scratchDir = "/nonexistent/path"

		_, err := s.Synthesize(context.Background(), "hello", "en")
		assert.Error(t, err)
	})
}
