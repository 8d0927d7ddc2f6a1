package bootstrap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApp_Run(t *testing.T) {
	t.Run("returns the run function's error", func(t *testing.T) {
		app := New()
		wantErr := errors.New("listen failed")
		err := app.Run(context.Background(), func(ctx context.Context) error {
			return wantErr
		})
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("runs hooks in reverse order on context cancellation", func(t *testing.T) {
		app := New()
		var order []string
		app.AddShutdownHook(func(ctx context.Context) error {
			order = append(order, "first")
			return nil
		})
		app.AddShutdownHook(func(ctx context.Context) error {
			order = append(order, "second")
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := app.Run(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, []string{"second", "first"}, order)
	})

	t.Run("collects hook errors", func(t *testing.T) {
		app := New()
		hookErr := errors.New("close failed")
		app.AddShutdownHook(func(ctx context.Context) error {
			return hookErr
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := app.Run(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		})
		assert.ErrorIs(t, err, hookErr)
	})
}
