package ipc

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLoopDispatch(t *testing.T) {
	input := strings.Join([]string{
		`{"unitInformation":[]}`,
		`garbage`,
		`{"turnInfo":[0,0,-1]}`,
		`{"turnInfo":[1,0,0]}`,
		`{"turnInfo":[1,0,1]}`,
		`{"turnInfo":[2,0,2]}`,
		`{"turnInfo":[0,1,-1]}`,
	}, "\n")

	var out bytes.Buffer
	var seen []string
	record := func(_ context.Context, env Envelope) error {
		seen = append(seen, env.Type)
		return nil
	}
	c := NewConnection(strings.NewReader(input), &out, nil)
	c.RegisterHandler(TypeConfig, record)
	c.RegisterHandler(TypeTurn, func(_ context.Context, env Envelope) error {
		seen = append(seen, env.Type)
		return c.Send([]int{})
	})
	c.RegisterHandler(TypeActionFrame, func(_ context.Context, env Envelope) error {
		seen = append(seen, env.Type)
		return errors.New("handler failures do not stop the loop")
	})
	c.RegisterHandler(TypeEndGame, record)

	require.NoError(t, c.ReadLoop(context.Background()))
	assert.Equal(t, []string{TypeConfig, TypeTurn, TypeActionFrame, TypeActionFrame, TypeEndGame}, seen)
	assert.Equal(t, "[]\n", out.String())
}

func TestReadLoopEOF(t *testing.T) {
	c := NewConnection(strings.NewReader(`{"turnInfo":[1,0,0]}`), &bytes.Buffer{}, nil)
	assert.NoError(t, c.ReadLoop(context.Background()))
}

func TestReadLoopCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewConnection(strings.NewReader(`{"turnInfo":[0,0,-1]}`), &bytes.Buffer{}, nil)
	assert.ErrorIs(t, c.ReadLoop(ctx), context.Canceled)
}
