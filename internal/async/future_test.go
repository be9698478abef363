package async

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGo_Value(t *testing.T) {
	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})

	v, err := f.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestGo_Error(t *testing.T) {
	wantErr := errors.New("boom")
	f := Go(context.Background(), func(ctx context.Context) (string, error) {
		return "", wantErr
	})

	_, err := f.Await(context.Background())
	assert.ErrorIs(t, err, wantErr)
}

func TestAwait_ContextDone(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	f := Go(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestResolved(t *testing.T) {
	f := Resolved("done", nil)
	v, err := f.Await(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "done", v)
}
