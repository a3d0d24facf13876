package schedule

import (
	"errors"
	"sync"
	"time"
)

// FlowState is the position of a direct-booking flow.
type FlowState int

const (
	StateSelecting FlowState = iota
	StateReviewing
	StateFinalized
)

func (s FlowState) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateReviewing:
		return "reviewing"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

var (
	ErrInvalidDuration    = errors.New("duration must be one of 4, 8 or 12 hours")
	ErrInvalidStartHour   = errors.New("start hour is outside the bookable window")
	ErrPastDate           = errors.New("date is in the past")
	ErrNoSelection        = errors.New("no slot selected")
	ErrNotReviewing       = errors.New("flow is not at the review step")
	ErrAlreadyFinalized   = errors.New("flow is already finalized")
	ErrSubmissionInFlight = errors.New("a submission is already in flight")
)

// BookingFlow is the Selecting -> Reviewing -> Finalized state machine
// for one booking attempt. It holds only in-memory selection state:
// nothing is written anywhere until Finalize's submit succeeds, so
// abandoning the flow at any point leaves no orphaned state.
//
// The busy flag is the double-submit guard: while a Finalize submission
// is in flight no second Finalize (and no Back) can start. The guard is
// released on completion or failure; a failed submission returns the
// flow to Reviewing untouched.
type BookingFlow struct {
	mu    sync.Mutex
	state FlowState
	busy  bool

	today time.Time

	date      string
	startHour int
	duration  int
	totalCost int
}

// NewBookingFlow starts a flow at the selection step. today is injected
// for the past-date check, matching the calendar's convention.
func NewBookingFlow(today time.Time) *BookingFlow {
	return &BookingFlow{state: StateSelecting, today: today, duration: Durations[0]}
}

// Select records the chosen day, start slot and duration. Only legal at
// the selection step; validation failures never advance the flow.
func (f *BookingFlow) Select(date string, startHour, duration int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSelecting {
		return ErrAlreadyFinalized
	}
	day, err := ParseDateKey(date)
	if err != nil {
		return err
	}
	if IsPastDay(day, f.today) {
		return ErrPastDate
	}
	if !ValidStartHour(startHour) {
		return ErrInvalidStartHour
	}
	if !ValidDuration(duration) {
		return ErrInvalidDuration
	}

	f.date = date
	f.startHour = startHour
	f.duration = duration
	return nil
}

// Review moves to the confirmation step, computing the total from the
// machine's hourly rate.
func (f *BookingFlow) Review(hourlyRate int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateSelecting {
		return 0, ErrAlreadyFinalized
	}
	if f.date == "" {
		return 0, ErrNoSelection
	}
	f.totalCost = BaseCost(hourlyRate, f.duration)
	f.state = StateReviewing
	return f.totalCost, nil
}

// Back returns from review to selection. Refused while a submission is
// in flight: there is no reentry into Selecting once the write started.
func (f *BookingFlow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy {
		return ErrSubmissionInFlight
	}
	if f.state != StateReviewing {
		return ErrNotReviewing
	}
	f.state = StateSelecting
	return nil
}

// Finalize runs submit under the double-submit guard. On success the
// flow becomes Finalized; on failure it stays at Reviewing with the
// guard released so the user can re-trigger.
func (f *BookingFlow) Finalize(submit func(date string, startHour, duration, totalCost int) error) error {
	f.mu.Lock()
	if f.state == StateFinalized {
		f.mu.Unlock()
		return ErrAlreadyFinalized
	}
	if f.state != StateReviewing {
		f.mu.Unlock()
		return ErrNotReviewing
	}
	if f.busy {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	f.busy = true
	date, start, dur, total := f.date, f.startHour, f.duration, f.totalCost
	f.mu.Unlock()

	err := submit(date, start, dur, total)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	if err != nil {
		return err
	}
	f.state = StateFinalized
	return nil
}

// State reports the current flow position.
func (f *BookingFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Selection returns the current date, start hour, duration and total.
func (f *BookingFlow) Selection() (date string, startHour, duration, totalCost int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.date, f.startHour, f.duration, f.totalCost
}
