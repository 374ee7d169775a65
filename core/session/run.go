package session

import (
	"context"
	"errors"
	"io"

	"github.com/confluo-ai/confluo/chat"
	"github.com/confluo-ai/confluo/core/frame"
	"github.com/confluo-ai/confluo/providers/observability"
)

// Run drives the session from a raw line source until the terminal control
// signal, end of input, or a terminal error. Frames are pulled one at a time
// and processed synchronously, which is what gives the caller natural
// backpressure: the next frame is only read once the current one is fully
// processed and its callbacks delivered.
//
// Cancellation is checked between frames; there is no timeout logic here,
// that belongs to the transport owning the reader.
func (s *Session) Run(ctx context.Context, reader io.Reader) (*chat.ChatResponse, error) {
	observer := observability.ObserverFromContext(ctx)
	if observer != nil {
		observer.Trace(ctx, "stream session started",
			observability.String(observability.AttrStreamSessionID, s.id),
		)
	}

	lines := frame.NewLineReader(reader)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		line, err := lines.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken line source is a transport failure, not a frame error.
			return nil, err
		}

		if err := s.ProcessLine(ctx, line); err != nil {
			if observer != nil {
				observer.Warn(ctx, "stream session aborted",
					observability.String(observability.AttrStreamSessionID, s.id),
					observability.Error(err),
				)
			}
			return nil, err
		}

		if s.closeSeen {
			break
		}
	}

	return s.Finish(ctx)
}
