package transport

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lunchbot/internal/command"
	"lunchbot/internal/domain"
	"lunchbot/internal/metrics"
)

// Dispatcher sends the replies of one command in order, waiting each reply's
// delay first. Deliveries that share a conversation key run one after another
// in submission order; different conversations never wait on each other.
type Dispatcher struct {
	transport string
	wg        sync.WaitGroup

	mu    sync.Mutex
	tails map[string]chan struct{}
}

func NewDispatcher(transport string) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		tails:     make(map[string]chan struct{}),
	}
}

// Deliver queues replies behind any delivery still pending for the same
// conversation key.
func (d *Dispatcher) Deliver(ctx context.Context, conversation string, r domain.Responder, replies []command.Reply) {
	if len(replies) == 0 {
		return
	}

	done := make(chan struct{})

	d.mu.Lock()
	prev := d.tails[conversation]
	d.tails[conversation] = done
	d.mu.Unlock()

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.release(conversation, done)

		if prev != nil {
			select {
			case <-prev:
			case <-ctx.Done():
				slog.Debug("reply delivery cancelled", "transport", d.transport, "remaining", len(replies))
				return
			}
		}
		d.send(ctx, r, replies)
	}()
}

// Wait blocks until every pending delivery has finished or been cancelled.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) release(conversation string, done chan struct{}) {
	close(done)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.tails[conversation] == done {
		delete(d.tails, conversation)
	}
}

func (d *Dispatcher) send(ctx context.Context, r domain.Responder, replies []command.Reply) {
	for i, reply := range replies {
		if ctx.Err() != nil {
			slog.Debug("reply delivery cancelled", "transport", d.transport, "remaining", len(replies)-i)
			return
		}
		if reply.Delay > 0 {
			timer := time.NewTimer(reply.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				slog.Debug("reply delivery cancelled", "transport", d.transport, "remaining", len(replies)-i)
				return
			case <-timer.C:
			}
		}

		if err := r.Reply(ctx, reply.Text); err != nil {
			metrics.RepliesTotal.WithLabelValues(d.transport, "error").Inc()
			slog.Error("failed to send reply", "transport", d.transport, "error", err)
			return
		}
		metrics.RepliesTotal.WithLabelValues(d.transport, "success").Inc()
	}
}
