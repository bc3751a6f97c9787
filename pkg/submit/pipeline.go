package submit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/goliatone/go-joinform/pkg/formstate"
	"github.com/goliatone/go-joinform/pkg/validation"
)

// Notifier surfaces the outcome of a submission to the user.
type Notifier interface {
	Notify(ctx context.Context, outcome Outcome)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, outcome Outcome)

// Notify calls fn.
func (fn NotifierFunc) Notify(ctx context.Context, outcome Outcome) {
	fn(ctx, outcome)
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Outcome) {}

// TransitionHook observes every state change.
type TransitionHook func(from, to State)

// Pipeline runs validation and sending for the record held in a store.
type Pipeline struct {
	store    *formstate.Store
	sender   Sender
	notifier Notifier
	logger   *zap.Logger
	hook     TransitionHook

	inFlight atomic.Bool
	mu       sync.RWMutex
	state    State
}

// PipelineOption customises a Pipeline.
type PipelineOption func(*Pipeline)

// WithNotifier sets the Notifier that receives every finished outcome.
func WithNotifier(notifier Notifier) PipelineOption {
	return func(p *Pipeline) {
		if notifier != nil {
			p.notifier = notifier
		}
	}
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithTransitionHook registers fn to observe state changes.
func WithTransitionHook(fn TransitionHook) PipelineOption {
	return func(p *Pipeline) {
		p.hook = fn
	}
}

// NewPipeline wires a store to a sender.
func NewPipeline(store *formstate.Store, sender Sender, options ...PipelineOption) *Pipeline {
	p := &Pipeline{
		store:    store,
		sender:   sender,
		notifier: nopNotifier{},
		logger:   zap.NewNop(),
		state:    StateIdle,
	}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Store returns the store the pipeline reads from.
func (p *Pipeline) Store() *formstate.Store {
	return p.store
}

// State returns the current lifecycle state.
func (p *Pipeline) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Submit validates the current record and, when it passes, sends it once.
// A successful send resets the store; every failure leaves it untouched.
// Calls made while a submission is running return ErrSubmissionInFlight
// without side effects.
func (p *Pipeline) Submit(ctx context.Context) Outcome {
	if !p.inFlight.CompareAndSwap(false, true) {
		return Outcome{
			State:   p.State(),
			Kind:    KindInFlight,
			Message: MessageInFlight,
			Err:     ErrSubmissionInFlight,
		}
	}
	defer p.inFlight.Store(false)

	p.transition(StateValidating)
	record := p.store.Get()

	result := validation.Validate(record)
	if !result.Valid {
		return p.finish(ctx, Outcome{
			State:      StateFailed,
			Kind:       Kind(result.Kind),
			Message:    result.Message,
			Validation: result,
		})
	}

	p.transition(StateSubmitting)
	receipt, err := p.sender.Send(ctx, record)
	if err != nil {
		outcome := Outcome{
			State:      StateFailed,
			Kind:       KindTransportFailure,
			Message:    MessageSendFailure,
			Validation: result,
			Err:        err,
			RequestID:  receipt.RequestID,
			StatusCode: receipt.StatusCode,
		}
		var rejection *RejectionError
		if errors.As(err, &rejection) {
			outcome.Kind = KindServerRejection
			outcome.StatusCode = rejection.StatusCode
		}
		p.logger.Warn("submission failed",
			zap.String("request_id", receipt.RequestID),
			zap.String("kind", string(outcome.Kind)),
			zap.Int("status_code", outcome.StatusCode),
			zap.Duration("duration", receipt.Duration),
			zap.Error(err))
		return p.finish(ctx, outcome)
	}

	p.store.Reset()
	p.logger.Info("submission accepted",
		zap.String("request_id", receipt.RequestID),
		zap.Int("status_code", receipt.StatusCode),
		zap.Duration("duration", receipt.Duration))
	return p.finish(ctx, Outcome{
		State:      StateSucceeded,
		Kind:       KindNone,
		Message:    MessageSuccess,
		Validation: result,
		RequestID:  receipt.RequestID,
		StatusCode: receipt.StatusCode,
	})
}

func (p *Pipeline) finish(ctx context.Context, outcome Outcome) Outcome {
	if outcome.ValidationFailed() {
		p.logger.Debug("submission blocked by validation",
			zap.String("kind", string(outcome.Kind)),
			zap.String("field", outcome.Validation.Field))
	}
	p.transition(outcome.State)
	p.notifier.Notify(ctx, outcome)
	p.transition(StateIdle)
	return outcome
}

func (p *Pipeline) transition(to State) {
	p.mu.Lock()
	from := p.state
	p.state = to
	hook := p.hook
	p.mu.Unlock()
	if hook != nil {
		hook(from, to)
	}
}
