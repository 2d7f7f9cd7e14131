package ipc

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
)

// Handler processes one classified message. Replies, if any, go out through
// Connection.Send.
type Handler func(ctx context.Context, env Envelope) error

// Connection is the bot's side of the engine's stdin/stdout pipe.
type Connection struct {
	in       *Reader
	out      *bufio.Writer
	handlers map[string]Handler
}

func NewConnection(r io.Reader, w io.Writer, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		in:       NewReader(r),
		out:      bufio.NewWriter(w),
		handlers: handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

// Send writes v as one line and flushes, since the engine waits on it.
func (c *Connection) Send(v any) error {
	if err := WriteLine(c.out, v); err != nil {
		return err
	}
	return c.out.Flush()
}

// ReadLoop dispatches messages until the end-of-game message, EOF or ctx is
// cancelled. Bad lines and handler errors are logged and skipped.
func (c *Connection) ReadLoop(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := c.in.ReadLine()
		if errors.Is(err, io.EOF) {
			slog.Info("engine closed the stream")
			return nil
		}
		if err != nil {
			return err
		}

		env, err := Classify(line)
		if err != nil {
			slog.Warn("dropping message", "error", err)
			continue
		}

		if handler, ok := c.handlers[env.Type]; ok {
			if err := handler(ctx, env); err != nil {
				slog.Error("handler error", "type", env.Type, "error", err)
			}
		} else {
			slog.Debug("no handler for message type", "type", env.Type)
		}

		if env.Type == TypeEndGame {
			return nil
		}
	}
}
