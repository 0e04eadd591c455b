package dialog

import (
	"context"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
)

// startState re-derives the user's real position from the store: no
// team means registration, a team without a project means selection, a
// team with a project means the flow is already complete.
type startState struct {
	dialog *Dialog
}

func (s *startState) Tag() domain.DialogState {
	return domain.StateStart
}

func (s *startState) OnEnter(ctx context.Context) error {
	d := s.dialog

	team, err := d.Engine.Team(ctx, d.UserKey())
	if err != nil {
		return err
	}

	if team != nil {
		if team.ProjectNumber == "" {
			if err := d.Gateway.SendMessage(ctx, d.UserID, msgAlreadyRegisteredPickProject); err != nil {
				return err
			}
			return d.SetState(ctx, &projectSelectionState{dialog: d})
		}

		if err := d.Gateway.SendMessage(ctx, d.UserID, msgAlreadyCompleted); err != nil {
			return err
		}
		return d.SetState(ctx, &completedState{dialog: d})
	}

	return d.SetState(ctx, &registrationState{dialog: d})
}

func (s *startState) Reply(ctx context.Context, text string) error {
	d := s.dialog

	if text != StartCommand {
		return d.Gateway.SendMessage(ctx, d.UserID, MsgUseStart)
	}
	return d.SetState(ctx, &registrationState{dialog: d})
}
