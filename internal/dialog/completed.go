package dialog

import (
	"context"
	"fmt"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
)

// completedState is terminal: the reservation is final and any further
// message only restates it.
type completedState struct {
	dialog *Dialog
}

func (s *completedState) Tag() domain.DialogState {
	return domain.StateCompletedSelection
}

func (s *completedState) OnEnter(ctx context.Context) error {
	return nil
}

func (s *completedState) Reply(ctx context.Context, text string) error {
	d := s.dialog

	projectName, found, err := d.Engine.ReservedProjectName(ctx, d.UserKey())
	if err != nil {
		return err
	}
	if !found {
		return d.Gateway.SendMessage(ctx, d.UserID, msgCompletedNoTeam)
	}
	return d.Gateway.SendMessage(ctx, d.UserID, fmt.Sprintf(msgChoiceFinal, projectName))
}
