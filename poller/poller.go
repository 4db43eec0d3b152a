package poller

import (
	"context"
	"errors"
	"sync"
	"time"

	"eventsite/clients"
)

const (
	defaultInterval    = 2 * time.Second
	defaultMaxAttempts = 30
)

type Phase string

const (
	PhasePending   Phase = "pending"
	PhaseVerified  Phase = "verified_pending_fulfillment"
	PhaseFulfilled Phase = "fulfilled"
	PhaseError     Phase = "error"
	PhaseTimedOut  Phase = "timed_out"
)

func (p Phase) Terminal() bool {
	return p == PhaseFulfilled || p == PhaseError || p == PhaseTimedOut
}

// API is the slice of the backend the poller needs.
type API interface {
	PaymentStatus(ctx context.Context, merchantOrderID string) (clients.PaymentStatus, error)
	FulfillPayment(ctx context.Context, merchantOrderID string) (clients.FulfillResult, error)
}

type State struct {
	OrderID  string `json:"order_id"`
	Status   string `json:"status"`
	Verified bool   `json:"verified"`
	Attempts int    `json:"attempts"`
	Phase    Phase  `json:"phase"`
	Message  string `json:"message"`
}

type Config struct {
	Interval    time.Duration
	MaxAttempts int
	// OnUpdate observes every state change, from the polling goroutine.
	OnUpdate func(State)
}

// Handle is a running poll for one order. Ticks are strictly sequential: the
// next status check is only scheduled after the previous tick, including any
// fulfillment sub-call, has fully resolved. Cancel stops the loop and no
// state mutation happens afterwards.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	canceled bool
	state    State
}

// Start begins polling the payment status for orderID. An empty orderID is
// immediately terminal.
func Start(ctx context.Context, api API, orderID string, cfg Config) *Handle {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}

	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		cancel: cancel,
		done:   make(chan struct{}),
		state: State{
			OrderID: orderID,
			Phase:   PhasePending,
		},
	}

	if orderID == "" {
		h.update(cfg, func(s *State) {
			s.Phase = PhaseError
			s.Message = "Missing order id"
		})
		cancel()
		close(h.done)
		return h
	}

	go h.run(ctx, api, orderID, cfg)

	return h
}

// Cancel tears the poll down. It is the only cancellation path; there is no
// partial pause.
func (h *Handle) Cancel() {
	h.mu.Lock()
	h.canceled = true
	h.mu.Unlock()
	h.cancel()
}

// Done closes once the poll reached a terminal state or was canceled.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// update applies fn to the state unless the handle was canceled. Teardown
// must prevent any in-flight tick from mutating state afterwards.
func (h *Handle) update(cfg Config, fn func(*State)) {
	h.mu.Lock()
	if h.canceled {
		h.mu.Unlock()
		return
	}
	fn(&h.state)
	snapshot := h.state
	h.mu.Unlock()

	if cfg.OnUpdate != nil {
		cfg.OnUpdate(snapshot)
	}
}

func (h *Handle) run(ctx context.Context, api API, orderID string, cfg Config) {
	defer close(h.done)
	defer h.cancel()

	for attempt := 1; ; attempt++ {
		if ctx.Err() != nil {
			return
		}

		terminal := h.tick(ctx, api, orderID, cfg, attempt)
		if terminal {
			return
		}

		if attempt >= cfg.MaxAttempts {
			h.update(cfg, func(s *State) {
				s.Phase = PhaseTimedOut
				s.Message = "Timed out waiting for payment. You can refresh to check again."
			})
			return
		}

		select {
		case <-time.After(cfg.Interval):
		case <-ctx.Done():
			return
		}
	}
}

// tick performs one status check and, on verification, the one-shot
// fulfillment call. It reports whether the poll reached a terminal state.
func (h *Handle) tick(ctx context.Context, api API, orderID string, cfg Config, attempt int) bool {
	status, err := api.PaymentStatus(ctx, orderID)

	var remoteErr clients.RemoteError
	switch {
	case errors.As(err, &remoteErr):
		h.update(cfg, func(s *State) {
			s.Attempts = attempt
			if remoteErr.Detail != "" {
				s.Message = remoteErr.Detail
			} else {
				s.Message = "status check failed"
			}
		})
		return false

	case err != nil:
		h.update(cfg, func(s *State) {
			s.Attempts = attempt
			s.Message = "Network error checking payment status"
		})
		return false
	}

	if !status.Verified {
		h.update(cfg, func(s *State) {
			s.Attempts = attempt
			s.Status = status.Status
			s.Message = "Payment pending — checking again..."
		})
		return false
	}

	h.update(cfg, func(s *State) {
		s.Attempts = attempt
		s.Status = status.Status
		s.Verified = true
		s.Phase = PhaseVerified
		s.Message = "Payment verified — finalizing..."
	})

	result, err := api.FulfillPayment(ctx, orderID)
	if err != nil {
		detail := err.Error()
		if errors.As(err, &remoteErr) && remoteErr.Detail != "" {
			detail = remoteErr.Detail
		}
		h.update(cfg, func(s *State) {
			s.Phase = PhaseError
			s.Message = "Payment verified but fulfill failed: " + detail
		})
		return true
	}

	h.update(cfg, func(s *State) {
		s.Phase = PhaseFulfilled
		switch {
		case result.AlreadySent():
			s.Message = "Payment successful. Receipt already sent."
		case result.ReceiptSent:
			s.Message = "Payment successful. Receipt sent to email."
		default:
			s.Message = "Payment successful. No receipt was sent."
		}
	})
	return true
}
