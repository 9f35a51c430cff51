package submit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quickcashhomes/offer-platform/internal/lead"
	"github.com/quickcashhomes/offer-platform/internal/offer"
	"github.com/quickcashhomes/offer-platform/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spyBackend struct {
	calls   []*lead.Submission
	outcome *Outcome
	err     error
	delay   time.Duration
}

func (s *spyBackend) Name() string { return "spy" }

func (s *spyBackend) Handle(ctx context.Context, sub *lead.Submission) (*Outcome, error) {
	s.calls = append(s.calls, sub)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.outcome, nil
}

func validValues() map[string]string {
	return map[string]string{
		lead.FieldFullName:      "Jane Seller",
		lead.FieldEmailAddress:  "jane@example.com",
		lead.FieldPhoneNumber:   "(512) 555-0100",
		lead.FieldStreetAddress: "100 Congress Ave",
		lead.FieldCity:          "Austin",
		lead.FieldState:         "TX",
		lead.FieldZipCode:       "73301",
	}
}

func newTestService(backend Backend) *Service {
	return NewService(backend, 0, nil, logging.New("error"))
}

func TestSubmit_InvalidNeverReachesBackend(t *testing.T) {
	backend := &spyBackend{}
	svc := newTestService(backend)

	values := validValues()
	values[lead.FieldEmailAddress] = "john@example"

	result := svc.Submit(context.Background(), values)

	require.NotNil(t, result)
	assert.Equal(t, MsgInvalid, result.Message)
	assert.NotEmpty(t, result.Errors[lead.FieldEmailAddress])
	assert.Nil(t, result.Offer)
	assert.False(t, result.Success)
	assert.Empty(t, backend.calls, "backend must not be invoked with invalid data")
}

func TestSubmit_BackendInvokedExactlyOnce(t *testing.T) {
	backend := &spyBackend{outcome: &Outcome{Message: MsgLeadReceived}}
	svc := newTestService(backend)

	result := svc.Submit(context.Background(), validValues())

	require.Len(t, backend.calls, 1)
	assert.Equal(t, "100 Congress Ave, Austin, TX 73301", backend.calls[0].PropertyAddress())
	assert.True(t, result.Success)
	assert.Equal(t, MsgLeadReceived, result.Message)
	assert.Nil(t, result.Errors)
	assert.Nil(t, result.Offer)
}

func TestSubmit_GeneratorOutcome(t *testing.T) {
	generated := &offer.CashOffer{OfferAmount: 250000, MarketAnalysis: "Comparable sales support this range."}
	backend := &spyBackend{outcome: &Outcome{Offer: generated, Message: MsgOfferReady}}
	svc := newTestService(backend)

	result := svc.Submit(context.Background(), validValues())

	require.NotNil(t, result.Offer)
	assert.Equal(t, float64(250000), result.Offer.OfferAmount)
	assert.Equal(t, MsgOfferReady, result.Message)
	assert.False(t, result.Success)
	assert.Nil(t, result.Errors)
}

func TestSubmit_BackendFailure(t *testing.T) {
	backend := &spyBackend{err: errors.New("provider down")}
	svc := newTestService(backend)

	result := svc.Submit(context.Background(), validValues())

	assert.Equal(t, MsgFailure, result.Message)
	assert.Nil(t, result.Errors, "backend failures carry no field attribution")
	assert.Nil(t, result.Offer)
	assert.False(t, result.Success)
}

func TestSubmit_TimeoutResolvesToFailure(t *testing.T) {
	backend := &spyBackend{delay: 200 * time.Millisecond, outcome: &Outcome{Message: MsgLeadReceived}}
	svc := NewService(backend, 10*time.Millisecond, nil, logging.New("error"))

	result := svc.Submit(context.Background(), validValues())

	assert.Equal(t, MsgFailure, result.Message)
	assert.Nil(t, result.Errors)
}

func TestSubmit_BoundaryValidName(t *testing.T) {
	backend := &spyBackend{outcome: &Outcome{Message: MsgLeadReceived}}
	svc := newTestService(backend)

	values := validValues()
	values[lead.FieldFullName] = "Jo"

	result := svc.Submit(context.Background(), values)

	assert.True(t, result.Success)
	require.Len(t, backend.calls, 1)
	assert.Equal(t, "Jo", backend.calls[0].FullName)
}

func TestNotifierBackend(t *testing.T) {
	n := &fakeNotifier{}
	backend := NewNotifierBackend(n)

	assert.Equal(t, "email", backend.Name())

	sub, errs := lead.Parse(validValues())
	require.Nil(t, errs)

	outcome, err := backend.Handle(context.Background(), sub)
	require.NoError(t, err)
	assert.Nil(t, outcome.Offer)
	assert.Equal(t, MsgLeadReceived, outcome.Message)
	assert.Equal(t, 1, n.calls)

	n.err = errors.New("smtp reject")
	_, err = backend.Handle(context.Background(), sub)
	assert.Error(t, err)
}

func TestGeneratorBackend(t *testing.T) {
	g := &fakeGenerator{result: &offer.CashOffer{OfferAmount: 185000, MarketAnalysis: "Steady demand."}}
	backend := NewGeneratorBackend(g)

	assert.Equal(t, "offer", backend.Name())

	sub, errs := lead.Parse(validValues())
	require.Nil(t, errs)

	outcome, err := backend.Handle(context.Background(), sub)
	require.NoError(t, err)
	require.NotNil(t, outcome.Offer)
	assert.Equal(t, float64(185000), outcome.Offer.OfferAmount)
	assert.Equal(t, MsgOfferReady, outcome.Message)

	g.err = errors.New("model error")
	_, err = backend.Handle(context.Background(), sub)
	assert.Error(t, err)
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) Notify(context.Context, *lead.Submission) error {
	f.calls++
	return f.err
}

type fakeGenerator struct {
	result *offer.CashOffer
	err    error
}

func (f *fakeGenerator) Generate(context.Context, *lead.Submission) (*offer.CashOffer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}
