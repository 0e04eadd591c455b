package dialog

import (
	"context"
	"strconv"

	"github.com/projects-showcase/reservation-bot/internal/locker"
	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
	"github.com/projects-showcase/reservation-bot/internal/reservation/service"
)

// StartCommand resets any dialog to its entry point.
const StartCommand = "/start"

// Button is an inline keyboard button attached to an outgoing message.
type Button struct {
	Label string
	Data  string
}

// Gateway is the slice of the chat transport the dialog needs.
type Gateway interface {
	SendMessage(ctx context.Context, userID int64, text string) error
	SendHTML(ctx context.Context, userID int64, text string, buttons ...Button) error
}

// State is one conversational phase. OnEnter runs the phase's entry
// behavior and may cascade into another phase; Reply handles one user
// message while the phase is active.
type State interface {
	Tag() domain.DialogState
	OnEnter(ctx context.Context) error
	Reply(ctx context.Context, text string) error
}

// Dialog is the per-user state machine. It owns only the transient
// conversational state; everything durable lives in the store behind
// the reservation engine.
type Dialog struct {
	UserID  int64
	Gateway Gateway
	Engine  *service.ReservationService
	Locks   *locker.Locker
	State   State
}

// New creates a dialog for one user with no active state.
func New(userID int64, gateway Gateway, engine *service.ReservationService, locks *locker.Locker) *Dialog {
	return &Dialog{
		UserID:  userID,
		Gateway: gateway,
		Engine:  engine,
		Locks:   locks,
	}
}

// UserKey is the user's id as stored in the users and teams sheets.
func (d *Dialog) UserKey() string {
	return strconv.FormatInt(d.UserID, 10)
}

// SetState transitions the dialog. The new state is persisted before
// its entry behavior runs, so a crash between the two resumes in the
// new phase rather than replaying the old one.
func (d *Dialog) SetState(ctx context.Context, state State) error {
	d.State = state
	if _, err := d.Engine.UpdateUserState(ctx, d.UserKey(), state.Tag()); err != nil {
		return err
	}
	return state.OnEnter(ctx)
}

// Reply routes one user message to the active state.
func (d *Dialog) Reply(ctx context.Context, text string) error {
	if d.State == nil {
		return d.Gateway.SendMessage(ctx, d.UserID, MsgUseStart)
	}
	return d.State.Reply(ctx, text)
}

// StateFor builds the state object for a persisted dialog-state tag.
func (d *Dialog) StateFor(tag domain.DialogState) State {
	switch tag {
	case domain.StateRegistration:
		return &registrationState{dialog: d}
	case domain.StateProjectSelection:
		return &projectSelectionState{dialog: d}
	case domain.StateCompletedSelection:
		return &completedState{dialog: d}
	default:
		return &startState{dialog: d}
	}
}
