package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"lunchbot/internal/domain"
	"lunchbot/internal/metrics"

	"github.com/chzyer/readline"
)

const (
	transportConsole    = "console"
	consoleConversation = "console"
)

// ConsoleService talks to a single local user through a readline prompt. It
// is meant for trying the bot without a Slack workspace.
type ConsoleService struct {
	processor   CommandProcessor
	dispatcher  *Dispatcher
	historyFile string
	stdin       io.ReadCloser
	stdout      io.Writer
}

type ConsoleOption func(*ConsoleService)

func WithHistoryFile(path string) ConsoleOption {
	return func(c *ConsoleService) { c.historyFile = path }
}

func WithIO(in io.ReadCloser, out io.Writer) ConsoleOption {
	return func(c *ConsoleService) {
		c.stdin = in
		c.stdout = out
	}
}

func NewConsoleService(processor CommandProcessor, opts ...ConsoleOption) *ConsoleService {
	c := &ConsoleService{
		processor:  processor,
		dispatcher: NewDispatcher(transportConsole),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ConsoleService) Run(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "lunchbot> ",
		HistoryFile:     c.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           c.stdin,
		Stdout:          c.stdout,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		_ = rl.Close()
	}()

	out := &consoleResponder{w: rl.Stdout()}
	c.dispatcher.Deliver(ctx, consoleConversation, out, c.processor.Greeting())

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				// ^C on an empty prompt abandons pending replies
				cancel()
				break
			}
			continue
		}
		if err != nil || strings.TrimSpace(line) == "exit" {
			break
		}
		c.handleLine(ctx, out, line)
	}

	// EOF and exit let paced replies finish; ^C and a cancelled ctx cut them short.
	c.dispatcher.Wait()
	return nil
}

func (c *ConsoleService) handleLine(ctx context.Context, out domain.Responder, line string) {
	metrics.EventsTotal.WithLabelValues(transportConsole, "message").Inc()

	replies, err := c.processor.Process(ctx, line)
	if err != nil {
		slog.Warn("command finished with error", "error", err)
	}
	c.dispatcher.Deliver(ctx, consoleConversation, out, replies)
}

type consoleResponder struct {
	mu sync.Mutex
	w  io.Writer
}

func (r *consoleResponder) Reply(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := fmt.Fprintln(r.w, strings.TrimRight(text, "\n"))
	return err
}
