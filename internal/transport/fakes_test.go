package transport

import (
	"context"
	"errors"
	"sync"

	"lunchbot/internal/command"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

type recordingResponder struct {
	mu      sync.Mutex
	texts   []string
	failOn  int
	replies int
}

func (r *recordingResponder) Reply(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies++
	if r.failOn > 0 && r.replies == r.failOn {
		return errors.New("post failed")
	}
	r.texts = append(r.texts, text)
	return nil
}

func (r *recordingResponder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.texts...)
}

type postedMessage struct {
	channel string
	options int
}

type fakePoster struct {
	mu     sync.Mutex
	posted []postedMessage
}

func (p *fakePoster) PostMessageContext(_ context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.posted = append(p.posted, postedMessage{channel: channelID, options: len(options)})
	return channelID, "1700000000.000100", nil
}

func (p *fakePoster) Posted() []postedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]postedMessage(nil), p.posted...)
}

type fakeAcker struct {
	acked []string
}

func (a *fakeAcker) Ack(req socketmode.Request, _ ...interface{}) {
	a.acked = append(a.acked, req.EnvelopeID)
}

type fakeProcessor struct {
	mu       sync.Mutex
	received []string
	replies  []command.Reply
	err      error
}

func (p *fakeProcessor) Process(_ context.Context, text string) ([]command.Reply, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.received = append(p.received, text)
	return p.replies, p.err
}

func (p *fakeProcessor) Greeting() []command.Reply {
	return []command.Reply{{Text: "hello"}}
}

func (p *fakeProcessor) Received() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.received...)
}

// sequenceProcessor answers successive commands with successive reply sets.
type sequenceProcessor struct {
	mu      sync.Mutex
	replies [][]command.Reply
}

func (p *sequenceProcessor) Process(context.Context, string) ([]command.Reply, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.replies) == 0 {
		return nil, nil
	}
	next := p.replies[0]
	p.replies = p.replies[1:]
	return next, nil
}

func (p *sequenceProcessor) Greeting() []command.Reply { return nil }

// textPoster keeps the rendered text of every posted message.
type textPoster struct {
	mu    sync.Mutex
	texts []string
}

func (p *textPoster) PostMessageContext(_ context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	_, values, err := slack.UnsafeApplyMsgOptions("", channelID, "", options...)
	if err != nil {
		return "", "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.texts = append(p.texts, values.Get("text"))
	return channelID, "1700000000.000100", nil
}

func (p *textPoster) Texts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.texts...)
}
