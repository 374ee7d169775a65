// Command replay assembles a recorded event-stream transcript into a final
// chat response. It reads SSE-style lines from a file or stdin, prints the
// callback events as they fire, and emits the assembled response as JSON.
//
// Usage:
//
//	replay [-file transcript.txt] [-think think] [-answer ""] [-fail-fast] [-quiet]
//
// Log verbosity is controlled with CONFLUO_LOG_LEVEL (or LOG_LEVEL), read
// from the environment or a .env file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/confluo-ai/confluo/core/dispatch"
	"github.com/confluo-ai/confluo/core/frame"
	"github.com/confluo-ai/confluo/core/session"
	"github.com/confluo-ai/confluo/core/toolcall"
	"github.com/confluo-ai/confluo/internal/utils"
	"github.com/confluo-ai/confluo/providers/observability"
	obslog "github.com/confluo-ai/confluo/providers/observability/slog"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	var (
		file     = flag.String("file", "", "transcript file to replay (default: stdin)")
		thinkTag = flag.String("think", "", "reasoning tag name, e.g. \"think\" for <think>...</think>")
		answer   = flag.String("answer", "", "answer tag name when the model wraps the final answer too")
		failFast = flag.Bool("fail-fast", false, "stop at the first malformed frame or upstream error")
		quiet    = flag.Bool("quiet", false, "suppress per-event output, print only the final response")
	)
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: obslog.GetLogLevelFromEnv(),
	}))
	observer := obslog.New(logger)
	ctx := observability.ContextWithObserver(context.Background(), observer)

	var input io.Reader = os.Stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open transcript: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}

	handler := eventPrinter(*quiet)

	opts := []session.Option{}
	if *thinkTag != "" {
		opts = append(opts, session.WithThinkTags(*thinkTag, *answer))
	}
	if *failFast {
		opts = append(opts, session.WithFailFast())
	}

	s := session.New(handler, opts...)

	timer := utils.NewTimer()
	response, err := s.Run(ctx, input)
	timer.Stop()

	observer.Histogram(observability.MetricStreamSessionDuration).Record(ctx,
		timer.GetDuration().Seconds(),
		observability.String(observability.AttrStreamSessionID, s.ID()),
	)

	if err != nil {
		fmt.Fprintf(os.Stderr, "replay failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(utils.JSONToString(response, true))
}

// eventPrinter builds the handler printing per-event lines to stderr so the
// final JSON on stdout stays pipeable.
func eventPrinter(quiet bool) dispatch.Handler {
	if quiet {
		return dispatch.HandlerFuncs{
			Error: func(err error) {
				fmt.Fprintf(os.Stderr, "event error %v\n", err)
			},
		}
	}
	return dispatch.HandlerFuncs{
		PartialThinking: func(text string, _ *frame.ChunkRecord) {
			fmt.Fprintf(os.Stderr, "event thinking %q\n", text)
		},
		PartialResponse: func(text string, _ *frame.ChunkRecord) {
			fmt.Fprintf(os.Stderr, "event answer   %q\n", text)
		},
		PartialToolCall: func(partial dispatch.PartialToolCall) {
			fmt.Fprintf(os.Stderr, "event tool     #%d %s %q\n", partial.Index, partial.Name, partial.Arguments)
		},
		CompleteToolCall: func(completed toolcall.Completed) {
			fmt.Fprintf(os.Stderr, "event call     %s %s %s\n", completed.ID, completed.Name, completed.Arguments)
		},
		Error: func(err error) {
			fmt.Fprintf(os.Stderr, "event error    %v\n", err)
		},
	}
}
