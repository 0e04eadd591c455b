package dialog

import (
	"context"
	"fmt"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
)

// registrationState collects the leader's credentials and registers
// the team once they validate and the group still has room.
type registrationState struct {
	dialog *Dialog
}

func (s *registrationState) Tag() domain.DialogState {
	return domain.StateRegistration
}

func (s *registrationState) OnEnter(ctx context.Context) error {
	d := s.dialog
	return d.Gateway.SendHTML(ctx, d.UserID, msgRegistrationPrompt)
}

func (s *registrationState) Reply(ctx context.Context, text string) error {
	d := s.dialog

	creds, ok := ParseCredentials(text)
	if !ok {
		return d.Gateway.SendMessage(ctx, d.UserID, msgBadCredentials)
	}

	// Two leaders registering into one group are serialized here so
	// the last slot under the group cap cannot be granted twice.
	release, err := d.Locks.Acquire(ctx, "group:"+creds.GroupName)
	if err != nil {
		return err
	}
	defer release()

	maxTeamsPerGroup, err := d.Engine.MaxTeamsPerGroupCount(ctx)
	if err != nil {
		return err
	}
	groupTeams, err := d.Engine.GroupTeamsCount(ctx, creds.GroupName)
	if err != nil {
		return err
	}
	if groupTeams >= maxTeamsPerGroup {
		return d.Gateway.SendMessage(ctx, d.UserID, fmt.Sprintf(msgGroupLimitReached, maxTeamsPerGroup))
	}

	registered, err := d.Engine.TryRegisterTeam(ctx, d.UserKey(), creds.FullName, creds.PhoneNumber, creds.GroupName)
	if err != nil {
		return err
	}
	if !registered {
		return d.Gateway.SendMessage(ctx, d.UserID, msgAlreadyRegistered)
	}

	if err := d.Gateway.SendMessage(ctx, d.UserID, msgRegistered); err != nil {
		return err
	}
	return d.SetState(ctx, &projectSelectionState{dialog: d})
}
