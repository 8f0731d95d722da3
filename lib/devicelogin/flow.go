// Copyright 2026 The Buybot Authors
// SPDX-License-Identifier: Apache-2.0

package devicelogin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/zinc-io/buybot/lib/buybot"
	"github.com/zinc-io/buybot/lib/clock"
	"github.com/zinc-io/buybot/lib/credential"
)

const (
	// DefaultInterval is the pause between polls.
	DefaultInterval = 5 * time.Second
	// DefaultPollTimeout bounds each poll request.
	DefaultPollTimeout = 31 * time.Second
)

// ErrSave wraps a failure to persist the issued credential.
var ErrSave = errors.New("devicelogin: saving credential")

// State is a position in the login state machine.
type State int

const (
	StateInit State = iota
	StateRequestSent
	StatePolling
	StateAuthorized
	StateRejected
	StateError
	StateTimedOut
)

var stateNames = [...]string{
	StateInit:        "init",
	StateRequestSent: "request_sent",
	StatePolling:     "polling",
	StateAuthorized:  "authorized",
	StateRejected:    "rejected",
	StateError:       "error",
	StateTimedOut:    "timed_out",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Terminal reports whether the flow stops in s.
func (s State) Terminal() bool {
	return s == StateAuthorized || s == StateRejected || s == StateTimedOut
}

// API is the subset of *buybot.Client the flow needs.
type API interface {
	StartDeviceLogin(ctx context.Context, hostname string) (*buybot.DeviceAuthorization, error)
	PollDeviceLogin(ctx context.Context, pollURL string) (*buybot.PollResult, error)
}

// CredentialSaver persists the credential issued on authorization.
type CredentialSaver interface {
	Save(credential.Credential) error
}

// Observer receives user-facing progress. Calls happen on the flow's
// goroutine.
type Observer interface {
	// AuthorizationStarted delivers the URL the user must visit.
	AuthorizationStarted(browserURL string)
	// Pending is called for each poll that reports authorization is
	// still pending.
	Pending()
	// Anomaly is called for each unrecognized poll response, before
	// polling resumes.
	Anomaly(reason string)
}

// Config configures a Flow.
type Config struct {
	API      API
	Store    CredentialSaver
	Observer Observer

	// Hostname identifies this machine to the service.
	Hostname string

	// Clock drives the poll interval and deadline. Nil means the real
	// clock.
	Clock clock.Clock
	// Interval is the pause between polls. Zero means DefaultInterval.
	Interval time.Duration
	// PollTimeout bounds each poll request. Zero means
	// DefaultPollTimeout.
	PollTimeout time.Duration
	// Deadline bounds the whole polling phase. Zero means unbounded.
	Deadline time.Duration

	Logger *slog.Logger
}

// Result is the terminal state of a completed flow.
type Result struct {
	State      State
	Credential credential.Credential
	// Polls counts poll requests issued. Anomalies counts the
	// unrecognized responses among them.
	Polls     int
	Anomalies int
}

// Flow is a single device login. It is not reusable.
type Flow struct {
	config Config
	clock  clock.Clock
	logger *slog.Logger
	state  State
}

// New validates config and returns a Flow in StateInit.
func New(config Config) (*Flow, error) {
	if config.API == nil {
		return nil, errors.New("devicelogin: API is required")
	}
	if config.Store == nil {
		return nil, errors.New("devicelogin: Store is required")
	}
	if config.Observer == nil {
		return nil, errors.New("devicelogin: Observer is required")
	}
	if config.Hostname == "" {
		return nil, errors.New("devicelogin: Hostname is required")
	}
	if config.Interval <= 0 {
		config.Interval = DefaultInterval
	}
	if config.PollTimeout <= 0 {
		config.PollTimeout = DefaultPollTimeout
	}
	if config.Deadline < 0 {
		return nil, fmt.Errorf("devicelogin: negative deadline %v", config.Deadline)
	}

	flowClock := config.Clock
	if flowClock == nil {
		flowClock = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Flow{
		config: config,
		clock:  flowClock,
		logger: logger,
		state:  StateInit,
	}, nil
}

// State returns the current state. It is only meaningful between calls
// to Run or after Run returns.
func (f *Flow) State() State { return f.state }

func (f *Flow) transition(next State) {
	if next == f.state {
		return
	}
	f.logger.Debug("device login state change", "from", f.state, "to", next)
	f.state = next
}

// Run drives the flow to a terminal state. It returns a Result with
// State Authorized, Rejected, or TimedOut, or an error when the flow
// cannot continue: the login request failed, a poll request failed,
// the credential could not be saved, or ctx was cancelled.
func (f *Flow) Run(ctx context.Context) (Result, error) {
	var result Result
	if f.state != StateInit {
		return result, fmt.Errorf("devicelogin: flow already run (state %s)", f.state)
	}

	authorization, err := f.config.API.StartDeviceLogin(ctx, f.config.Hostname)
	if err != nil {
		f.transition(StateError)
		return result, fmt.Errorf("requesting device login: %w", err)
	}
	f.transition(StateRequestSent)
	f.config.Observer.AuthorizationStarted(authorization.BrowserURL)

	var deadline time.Time
	if f.config.Deadline > 0 {
		deadline = f.clock.Now().Add(f.config.Deadline)
	}

	f.transition(StatePolling)
	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !deadline.IsZero() && !f.clock.Now().Before(deadline) {
			f.transition(StateTimedOut)
			result.State = StateTimedOut
			return result, nil
		}

		poll, err := f.poll(ctx, authorization.PollURL)
		result.Polls++
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			f.transition(StateError)
			return result, fmt.Errorf("polling device login: %w", err)
		}

		switch {
		case poll.StatusCode == http.StatusNotFound:
			f.transition(StateRejected)
			result.State = StateRejected
			return result, nil

		case poll.StatusCode == http.StatusOK && poll.DecodeError == nil && poll.Body.Token != "" && poll.Body.UserID != "":
			issued := credential.Credential{UserID: poll.Body.UserID, Token: poll.Body.Token}
			if err := f.config.Store.Save(issued); err != nil {
				f.transition(StateError)
				return result, fmt.Errorf("%w: %w", ErrSave, err)
			}
			f.transition(StateAuthorized)
			result.State = StateAuthorized
			result.Credential = issued
			return result, nil

		case poll.StatusCode == http.StatusOK && poll.DecodeError == nil && poll.Body.Pending:
			f.config.Observer.Pending()

		default:
			reason := anomalyReason(poll)
			result.Anomalies++
			f.transition(StateError)
			f.logger.Warn("unexpected device login poll response", "reason", reason, "poll", result.Polls)
			f.config.Observer.Anomaly(reason)
			f.transition(StatePolling)
		}

		select {
		case <-ctx.Done():
			return result, ctx.Err()
		case <-f.clock.After(f.config.Interval):
		}
	}
}

func (f *Flow) poll(ctx context.Context, pollURL string) (*buybot.PollResult, error) {
	pollContext, cancel := context.WithTimeout(ctx, f.config.PollTimeout)
	defer cancel()
	return f.config.API.PollDeviceLogin(pollContext, pollURL)
}

func anomalyReason(poll *buybot.PollResult) string {
	switch {
	case poll.StatusCode != http.StatusOK:
		return fmt.Sprintf("status %d", poll.StatusCode)
	case poll.DecodeError != nil:
		return "malformed response body"
	case poll.Body.Token != "" || poll.Body.UserID != "":
		return "incomplete credential in response"
	default:
		return "unrecognized response"
	}
}
