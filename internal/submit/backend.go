package submit

import (
	"context"

	"github.com/quickcashhomes/offer-platform/internal/lead"
	"github.com/quickcashhomes/offer-platform/internal/offer"
)

// Backend handles one validated submission. The email notifier and the offer
// generator are interchangeable implementations selected at composition time;
// a future CRM webhook would slot in the same way.
type Backend interface {
	Name() string
	Handle(ctx context.Context, sub *lead.Submission) (*Outcome, error)
}

// Notifier delivers a lead to the sales inbox.
type Notifier interface {
	Notify(ctx context.Context, sub *lead.Submission) error
}

// OfferGenerator produces a cash offer for a lead.
type OfferGenerator interface {
	Generate(ctx context.Context, sub *lead.Submission) (*offer.CashOffer, error)
}

type notifierBackend struct {
	notifier Notifier
}

// NewNotifierBackend wraps an email notifier as a submission backend.
func NewNotifierBackend(n Notifier) Backend {
	return &notifierBackend{notifier: n}
}

func (b *notifierBackend) Name() string { return "email" }

func (b *notifierBackend) Handle(ctx context.Context, sub *lead.Submission) (*Outcome, error) {
	if err := b.notifier.Notify(ctx, sub); err != nil {
		return nil, err
	}
	return &Outcome{Message: MsgLeadReceived}, nil
}

type generatorBackend struct {
	generator OfferGenerator
}

// NewGeneratorBackend wraps an offer generator as a submission backend.
func NewGeneratorBackend(g OfferGenerator) Backend {
	return &generatorBackend{generator: g}
}

func (b *generatorBackend) Name() string { return "offer" }

func (b *generatorBackend) Handle(ctx context.Context, sub *lead.Submission) (*Outcome, error) {
	result, err := b.generator.Generate(ctx, sub)
	if err != nil {
		return nil, err
	}
	return &Outcome{Offer: result, Message: MsgOfferReady}, nil
}
