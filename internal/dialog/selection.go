package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
)

// Telegram caps a message at 4096 characters; the catalogue listing is
// split into as many messages as needed without breaking a line.
const maxMessageLength = 4096

// projectSelectionState shows the catalogue and turns a submitted
// project number into a reservation.
type projectSelectionState struct {
	dialog *Dialog
}

func (s *projectSelectionState) Tag() domain.DialogState {
	return domain.StateProjectSelection
}

func (s *projectSelectionState) OnEnter(ctx context.Context) error {
	d := s.dialog

	projects, err := d.Engine.AllProjects(ctx)
	if err != nil {
		return err
	}

	noSuitableButton := Button{
		Label: noSuitableProjectsLabel,
		Data:  CallbackNoSuitableProjects,
	}
	if err := d.Gateway.SendHTML(ctx, d.UserID, msgSelectionIntro, noSuitableButton); err != nil {
		return err
	}

	for _, chunk := range chunkProjectList(projects) {
		if err := d.Gateway.SendMessage(ctx, d.UserID, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (s *projectSelectionState) Reply(ctx context.Context, text string) error {
	d := s.dialog

	valid, err := d.Engine.IsProjectNumberValid(ctx, text)
	if err != nil {
		return err
	}
	if !valid {
		return d.Gateway.SendMessage(ctx, d.UserID, msgNoSuchProject)
	}

	// The capacity check and the commit are two round trips to the
	// sheet; the per-project lease keeps a second team from slipping
	// into the last slot between them.
	release, err := d.Locks.Acquire(ctx, "project:"+text)
	if err != nil {
		return err
	}
	defer release()

	projectTeams, err := d.Engine.ProjectTeamsCount(ctx, text)
	if err != nil {
		return err
	}
	sameGroupTeams, registered, err := d.Engine.ProjectTeamsSameGroupCount(ctx, text, d.UserKey())
	if err != nil {
		return err
	}
	if !registered {
		return d.Gateway.SendMessage(ctx, d.UserID, msgNotRegistered)
	}

	maxReservations, err := d.Engine.MaxProjectReservationsCount(ctx)
	if err != nil {
		return err
	}
	maxSameGroup, err := d.Engine.MaxProjectReservationsSameGroupCount(ctx)
	if err != nil {
		return err
	}
	if projectTeams >= maxReservations || sameGroupTeams >= maxSameGroup {
		return d.Gateway.SendMessage(ctx, d.UserID, msgProjectTaken)
	}

	reserved, err := d.Engine.TryReserveProject(ctx, text, d.UserKey())
	if err != nil {
		return err
	}
	if !reserved {
		return d.Gateway.SendMessage(ctx, d.UserID, msgNotRegistered)
	}

	projectName, _, err := d.Engine.ProjectName(ctx, text)
	if err != nil {
		return err
	}
	if err := d.Gateway.SendMessage(ctx, d.UserID, fmt.Sprintf(msgReserved, projectName)); err != nil {
		return err
	}
	return d.SetState(ctx, &completedState{dialog: d})
}

// chunkProjectList renders "number - \"name\"" lines into messages of
// at most maxMessageLength characters, never splitting one line across
// two messages.
func chunkProjectList(projects []domain.Project) []string {
	var chunks []string
	var b strings.Builder

	for _, p := range projects {
		line := fmt.Sprintf("%s - \"%s\"\n", p.Number, p.Name)
		if b.Len() > 0 && b.Len()+len(line) > maxMessageLength {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		b.WriteString(line)
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}
