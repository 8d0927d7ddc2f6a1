package speech

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnintelligible means the backend could not make out any speech.
	ErrUnintelligible = errors.New("could not understand audio")
	// ErrBackend means the recognition service itself is unreachable or failing.
	ErrBackend = errors.New("speech recognition service unavailable")
)

type transcriptionAPI interface {
	CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error)
}

// Recognizer transcribes recorded audio files.
type Recognizer struct {
	api    transcriptionAPI
	model  string
	logger *logrus.Logger
}

func NewRecognizer(apiKey, model string, timeout time.Duration, logger *logrus.Logger) *Recognizer {
	return &Recognizer{
		api:    newSpeechClient(apiKey, timeout),
		model:  model,
		logger: logger,
	}
}

// Transcribe converts the audio file at path to text. It returns
// ErrUnintelligible when the audio carries no recognizable speech and
// ErrBackend when the service cannot be reached.
func (r *Recognizer) Transcribe(ctx context.Context, path string) (string, error) {
	response, err := r.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    r.model,
		FilePath: path,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusBadRequest {
			return "", fmt.Errorf("%w: %s", ErrUnintelligible, apiErr.Message)
		}
		r.logger.WithError(err).Error("speech recognition request failed")
		return "", fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if response.Text == "" {
		return "", ErrUnintelligible
	}
	return response.Text, nil
}
