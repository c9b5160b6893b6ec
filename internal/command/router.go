package command

import (
	"context"
	"strings"
	"time"
)

// Reply is one outbound message. Delay is measured from the previous reply of
// the same command.
type Reply struct {
	Text  string
	Delay time.Duration
}

type Handler interface {
	Handle(ctx context.Context, arg string) ([]Reply, error)
}

type HandlerFunc func(ctx context.Context, arg string) ([]Reply, error)

func (f HandlerFunc) Handle(ctx context.Context, arg string) ([]Reply, error) {
	return f(ctx, arg)
}

type Route struct {
	Name     string
	Prefixes []string
	Handler  Handler
}

// Router matches text against routes in registration order. The first route
// with a matching prefix wins; the rest of the text is the argument.
type Router struct {
	routes []Route
}

func NewRouter(routes ...Route) *Router {
	return &Router{routes: routes}
}

func (r *Router) Handle(name string, h Handler, prefixes ...string) {
	r.routes = append(r.routes, Route{Name: name, Prefixes: prefixes, Handler: h})
}

func (r *Router) Match(text string) (Route, string, bool) {
	for _, route := range r.routes {
		for _, p := range route.Prefixes {
			if strings.HasPrefix(text, p) {
				return route, text[len(p):], true
			}
		}
	}
	return Route{}, "", false
}

func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}
