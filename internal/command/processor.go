package command

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"lunchbot/internal/configuration/properties"
	"lunchbot/internal/domain"
	"lunchbot/internal/metrics"
	"lunchbot/internal/registry"
)

const (
	RouteHelp      = "help"
	RouteAdd       = "add"
	RouteRemove    = "remove"
	RouteList      = "list"
	RouteChoose    = "choose"
	RouteIncrement = "increment"
)

type Processor struct {
	router *Router
}

func NewProcessor(router *Router) *Processor {
	slog.Info("command processor initialized", "routes", len(router.routes))
	return &Processor{router: router}
}

// NewDefaultRouter wires the bot's command table.
func NewDefaultRouter(reg domain.Registry, src domain.RandomSource, cfg *properties.CommandConfigProperties) *Router {
	r := NewRouter()
	r.Handle(RouteHelp, &HelpHandler{}, "help")
	r.Handle(RouteAdd, NewAddHandler(reg), "adaug ")
	r.Handle(RouteRemove, NewRemoveHandler(reg), "sterg ")
	r.Handle(RouteList, NewListHandler(reg), "lista")
	r.Handle(RouteChoose, NewChooseHandler(reg, src, cfg.AnnounceDuration(), cfg.RevealDuration()),
		"ce mancam azi", "Ce mancam azi")
	r.Handle(RouteIncrement, NewIncrementHandler(reg), "am mancat la ")
	return r
}

// Process routes one command. Text that matches no route yields no replies.
// The returned error is non-nil only when the command failed for a reason the
// user cannot fix, such as a snapshot write failing; the replies still carry a
// message for the user in that case.
func (p *Processor) Process(ctx context.Context, text string) ([]Reply, error) {
	route, arg, ok := p.router.Match(text)
	if !ok {
		slog.Debug("no route for message", "text", text)
		metrics.CommandsTotal.WithLabelValues("unmatched", "ignored").Inc()
		return nil, nil
	}

	start := time.Now()
	metrics.CommandsInFlight.Inc()
	defer metrics.CommandsInFlight.Dec()

	slog.Debug("processing command", "route", route.Name, "arg", arg)

	replies, err := route.Handler.Handle(ctx, arg)

	metrics.CommandDuration.WithLabelValues(route.Name).Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.CommandsTotal.WithLabelValues(route.Name, "success").Inc()
		return replies, nil
	case isUserError(err):
		slog.Debug("command rejected", "route", route.Name, "arg", arg, "reason", err)
		metrics.CommandsTotal.WithLabelValues(route.Name, "rejected").Inc()
		return replies, nil
	default:
		slog.Error("command failed", "route", route.Name, "arg", arg, "error", err)
		metrics.CommandsTotal.WithLabelValues(route.Name, "error").Inc()
		return replies, err
	}
}

func (p *Processor) Greeting() []Reply {
	metrics.CommandsTotal.WithLabelValues("greeting", "success").Inc()
	return text(greetingMessage)
}

func isUserError(err error) bool {
	return errors.Is(err, registry.ErrNotFound) ||
		errors.Is(err, registry.ErrAlreadyExists) ||
		errors.Is(err, registry.ErrEmptyRegistry)
}
