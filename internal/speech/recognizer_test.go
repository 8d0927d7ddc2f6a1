package speech

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTranscriptionAPI struct {
	text string
	err  error
}

func (f *fakeTranscriptionAPI) CreateTranscription(ctx context.Context, request openai.AudioRequest) (openai.AudioResponse, error) {
	if f.err != nil {
		return openai.AudioResponse{}, f.err
	}
	return openai.AudioResponse{Text: f.text}, nil
}

func TestRecognizer_Transcribe(t *testing.T) {
	newRecognizer := func(api transcriptionAPI) *Recognizer {
		return &Recognizer{api: api, model: "whisper-1", logger: newTestLogger()}
	}

	t.Run("returns transcript", func(t *testing.T) {
		r := newRecognizer(&fakeTranscriptionAPI{text: "hello world"})
		got, err := r.Transcribe(context.Background(), "/tmp/audio.wav")
		require.NoError(t, err)
		assert.Equal(t, "hello world", got)
	})

	t.Run("bad request means unintelligible audio", func(t *testing.T) {
		r := newRecognizer(&fakeTranscriptionAPI{
			err: &openai.APIError{HTTPStatusCode: http.StatusBadRequest, Message: "invalid file format"},
		})
		_, err := r.Transcribe(context.Background(), "/tmp/audio.wav")
		assert.ErrorIs(t, err, ErrUnintelligible)
	})

	t.Run("empty transcript means unintelligible audio", func(t *testing.T) {
		r := newRecognizer(&fakeTranscriptionAPI{text: ""})
		_, err := r.Transcribe(context.Background(), "/tmp/audio.wav")
		assert.ErrorIs(t, err, ErrUnintelligible)
	})

	t.Run("transport failure means backend unavailable", func(t *testing.T) {
		r := newRecognizer(&fakeTranscriptionAPI{err: errors.New("connection refused")})
		_, err := r.Transcribe(context.Background(), "/tmp/audio.wav")
		assert.ErrorIs(t, err, ErrBackend)
	})
}
