package transport

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lunchbot/internal/command"
	"lunchbot/internal/configuration/properties"
	"lunchbot/internal/metrics"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
)

const transportSlack = "slack"

type CommandProcessor interface {
	Process(ctx context.Context, text string) ([]command.Reply, error)
	Greeting() []command.Reply
}

type slackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type socketAcker interface {
	Ack(req socketmode.Request, payload ...interface{})
}

type SlackService struct {
	api        *slack.Client
	client     *socketmode.Client
	poster     slackPoster
	acker      socketAcker
	processor  CommandProcessor
	dispatcher *Dispatcher
	botUserID  string
}

func NewSlackService(cfg *properties.SlackConfigProperties, processor CommandProcessor) *SlackService {
	logger := slog.NewLogLogger(slog.Default().Handler(), slog.LevelDebug)

	api := slack.New(
		cfg.BotToken,
		slack.OptionAppLevelToken(cfg.AppToken),
		slack.OptionDebug(cfg.Debug),
		slack.OptionLog(logger),
	)
	client := socketmode.New(
		api,
		socketmode.OptionDebug(cfg.Debug),
		socketmode.OptionLog(logger),
	)

	return &SlackService{
		api:        api,
		client:     client,
		poster:     api,
		acker:      client,
		processor:  processor,
		dispatcher: NewDispatcher(transportSlack),
	}
}

// Run blocks until ctx is cancelled or the socket mode connection fails for
// good. Pending replies are flushed or cancelled before it returns.
func (s *SlackService) Run(ctx context.Context) error {
	auth, err := s.api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth test: %w", err)
	}
	s.botUserID = auth.UserID
	slog.Info("authenticated with slack", "team", auth.Team, "user", auth.User, "userId", auth.UserID)

	go s.consume(ctx)

	err = s.client.RunContext(ctx)
	s.dispatcher.Wait()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("socket mode: %w", err)
	}
	return nil
}

func (s *SlackService) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-s.client.Events:
			if !ok {
				return
			}
			s.handleEvent(ctx, evt)
		}
	}
}

func (s *SlackService) handleEvent(ctx context.Context, evt socketmode.Event) {
	metrics.EventsTotal.WithLabelValues(transportSlack, string(evt.Type)).Inc()

	switch evt.Type {
	case socketmode.EventTypeConnecting:
		slog.Info("connecting to slack with socket mode")
	case socketmode.EventTypeConnected:
		slog.Info("socket mode connection established")
	case socketmode.EventTypeConnectionError:
		slog.Warn("socket mode connection failed, retrying", "data", evt.Data)
	case socketmode.EventTypeDisconnect:
		slog.Warn("socket mode connection closed")
	case socketmode.EventTypeInvalidAuth:
		slog.Error("slack rejected the app token")
	case socketmode.EventTypeEventsAPI:
		// ack before anything else, otherwise slack redelivers the envelope
		if evt.Request != nil {
			s.acker.Ack(*evt.Request)
		}
		apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			slog.Warn("unexpected events api payload", "type", fmt.Sprintf("%T", evt.Data))
			return
		}
		s.handleEventsAPI(ctx, apiEvent)
	default:
		slog.Debug("ignored socket mode event", "type", evt.Type)
	}
}

func (s *SlackService) handleEventsAPI(ctx context.Context, apiEvent slackevents.EventsAPIEvent) {
	if apiEvent.Type != slackevents.CallbackEvent {
		return
	}

	switch ev := apiEvent.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		if ev.BotID != "" {
			return
		}
		s.handleMessage(ctx, ev.Channel, ev.User, ev.Text)

	case *slackevents.MessageEvent:
		// channel messages only count when they mention the bot, which arrives as app_mention
		if ev.ChannelType != "im" || ev.BotID != "" || ev.SubType != "" || ev.User == s.botUserID {
			return
		}
		s.handleMessage(ctx, ev.Channel, ev.User, ev.Text)

	case *slackevents.MemberJoinedChannelEvent:
		if ev.User != s.botUserID {
			return
		}
		slog.Info("joined channel", "channel", ev.Channel)
		s.dispatcher.Deliver(ctx, ev.Channel, s.responder(ev.Channel), s.processor.Greeting())

	default:
		slog.Debug("ignored events api event", "type", apiEvent.InnerEvent.Type)
	}
}

func (s *SlackService) handleMessage(ctx context.Context, channel, user, text string) {
	text = StripMention(text, s.botUserID)
	slog.Debug("received message", "channel", channel, "user", user, "text", text)

	replies, err := s.processor.Process(ctx, text)
	if err != nil {
		slog.Warn("command finished with error", "channel", channel, "error", err)
	}
	s.dispatcher.Deliver(ctx, channel, s.responder(channel), replies)
}

func (s *SlackService) responder(channel string) *slackResponder {
	return &slackResponder{poster: s.poster, channel: channel}
}

type slackResponder struct {
	poster  slackPoster
	channel string
}

func (r *slackResponder) Reply(ctx context.Context, text string) error {
	_, _, err := r.poster.PostMessageContext(ctx, r.channel, slack.MsgOptionText(text, false))
	return err
}

func mention(userID string) string {
	return "<@" + userID + ">"
}

// StripMention removes a leading "<@BOT>" (and an optional colon) so
// "@lunchbot adaug X" routes like "adaug X".
func StripMention(text, botUserID string) string {
	if botUserID == "" {
		return text
	}

	trimmed := strings.TrimLeft(text, " \t")
	if !strings.HasPrefix(trimmed, mention(botUserID)) {
		return text
	}

	rest := strings.TrimPrefix(trimmed, mention(botUserID))
	rest = strings.TrimPrefix(rest, ":")
	return strings.TrimLeft(rest, " \t")
}
