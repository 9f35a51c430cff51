package submit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/quickcashhomes/offer-platform/internal/lead"
	"github.com/quickcashhomes/offer-platform/internal/observability/metrics"
	"github.com/quickcashhomes/offer-platform/pkg/logging"
)

// Service orchestrates one submission: re-validate, invoke the single
// configured backend once, map the outcome to a Result. It never lets a
// backend error escape; every path resolves to a Result value.
type Service struct {
	backend Backend
	timeout time.Duration
	metrics *metrics.SubmissionMetrics
	logger  *logging.Logger
}

// NewService creates the submission orchestrator. timeout bounds the backend
// call per submission; zero disables the bound and relies on the external
// client's own timeout.
func NewService(backend Backend, timeout time.Duration, m *metrics.SubmissionMetrics, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		backend: backend,
		timeout: timeout,
		metrics: m,
		logger:  logger,
	}
}

// Submit validates raw form values and hands the normalized submission to the
// backend. Validation failure short-circuits: the backend is never invoked
// with invalid data.
func (s *Service) Submit(ctx context.Context, values map[string]string) *Result {
	submissionID := uuid.NewString()

	sub, fieldErrs := lead.Parse(values)
	if fieldErrs != nil {
		s.logger.Info("submission rejected", "submission_id", submissionID, "invalid_fields", len(fieldErrs))
		s.metrics.ObserveSubmission("invalid")
		return &Result{
			Errors:  fieldErrs,
			Message: MsgInvalid,
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	outcome, err := s.backend.Handle(ctx, sub)
	s.metrics.ObserveBackendLatency(s.backend.Name(), time.Since(start).Seconds())

	if err != nil {
		s.logger.Error("backend failed",
			"error", err,
			"submission_id", submissionID,
			"backend", s.backend.Name(),
			"address", sub.PropertyAddress(),
		)
		s.metrics.ObserveSubmission("failure")
		return &Result{Message: MsgFailure}
	}

	s.logger.Info("submission handled",
		"submission_id", submissionID,
		"backend", s.backend.Name(),
		"address", sub.PropertyAddress(),
	)
	s.metrics.ObserveSubmission("success")

	result := &Result{
		Offer:   outcome.Offer,
		Message: outcome.Message,
	}
	if outcome.Offer == nil {
		result.Success = true
	}
	return result
}
