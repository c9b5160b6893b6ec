package command

import (
	"context"
	"errors"
	"time"

	"lunchbot/internal/domain"
	"lunchbot/internal/registry"
)

type HelpHandler struct{}

type AddHandler struct {
	registry domain.Registry
}

type RemoveHandler struct {
	registry domain.Registry
}

type ListHandler struct {
	registry domain.Registry
}

type IncrementHandler struct {
	registry domain.Registry
}

type ChooseHandler struct {
	registry      domain.Registry
	src           domain.RandomSource
	announceDelay time.Duration
	revealDelay   time.Duration
}

func NewAddHandler(r domain.Registry) *AddHandler {
	return &AddHandler{registry: r}
}

func NewRemoveHandler(r domain.Registry) *RemoveHandler {
	return &RemoveHandler{registry: r}
}

func NewListHandler(r domain.Registry) *ListHandler {
	return &ListHandler{registry: r}
}

func NewIncrementHandler(r domain.Registry) *IncrementHandler {
	return &IncrementHandler{registry: r}
}

func NewChooseHandler(r domain.Registry, src domain.RandomSource, announceDelay, revealDelay time.Duration) *ChooseHandler {
	return &ChooseHandler{
		registry:      r,
		src:           src,
		announceDelay: announceDelay,
		revealDelay:   revealDelay,
	}
}

func (h *HelpHandler) Handle(context.Context, string) ([]Reply, error) {
	return text(helpMessage), nil
}

func (h *AddHandler) Handle(_ context.Context, name string) ([]Reply, error) {
	err := h.registry.Add(name)
	switch {
	case err == nil:
		return text(addedReply(name)), nil
	case errors.Is(err, registry.ErrAlreadyExists):
		return text(alreadyExistsReply(name)), err
	default:
		return text(persistFailedReply), err
	}
}

func (h *RemoveHandler) Handle(_ context.Context, name string) ([]Reply, error) {
	err := h.registry.Remove(name)
	switch {
	case err == nil:
		return text(removedReply(name)), nil
	case errors.Is(err, registry.ErrNotFound):
		return text(notFoundReply(name)), err
	default:
		return text(persistFailedReply), err
	}
}

func (h *ListHandler) Handle(context.Context, string) ([]Reply, error) {
	records := h.registry.List()
	if len(records) == 0 {
		return text(emptyRegistryReply), nil
	}
	return text(listReply(records)), nil
}

func (h *IncrementHandler) Handle(_ context.Context, name string) ([]Reply, error) {
	_, err := h.registry.Increment(name)
	switch {
	case err == nil:
		return text(incrementedReply(name)), nil
	case errors.Is(err, registry.ErrNotFound):
		return text(notFoundReply(name)), err
	default:
		return text(persistFailedReply), err
	}
}

// Handle draws immediately and paces the announcement over the two delays.
func (h *ChooseHandler) Handle(context.Context, string) ([]Reply, error) {
	if h.registry.IsEmpty() {
		return text(emptyRegistryReply), registry.ErrEmptyRegistry
	}

	chosen, err := h.registry.Choose(h.src)
	if err != nil {
		// emptied between the check and the draw
		return text(emptyRegistryReply), err
	}

	return []Reply{
		{Text: chooseAckReply},
		{Text: chooseAnnounceReply, Delay: h.announceDelay},
		{Text: chosenReply(chosen.Name), Delay: h.revealDelay},
	}, nil
}

func text(s string) []Reply {
	return []Reply{{Text: s}}
}
