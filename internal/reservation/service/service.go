package service

import (
	"context"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
)

// TabularStore is the slice of the store the reservation engine needs.
// Implemented by repository.SheetsStore; tests use an in-memory fake.
type TabularStore interface {
	Users(ctx context.Context) ([]domain.User, error)
	AppendUser(ctx context.Context, user domain.User) error
	UpdateUserState(ctx context.Context, userID string, state domain.DialogState) (bool, error)
	Teams(ctx context.Context) ([]domain.Team, error)
	AppendTeam(ctx context.Context, team domain.Team) error
	SetTeamProject(ctx context.Context, leaderID, projectNumber string) (bool, error)
	Projects(ctx context.Context) ([]domain.Project, error)
	Constraints(ctx context.Context) (domain.Constraints, error)
}

// ReservationService is the reservation engine: capacity queries,
// one-time team registration and one-time project reservation. Every
// operation is a check-then-commit sequence over a fresh snapshot; the
// engine never loops or retries — a failed attempt surfaces as false
// and the caller decides the user-facing message.
type ReservationService struct {
	store TabularStore
}

// NewReservationService creates a new reservation engine over a store.
func NewReservationService(store TabularStore) *ReservationService {
	return &ReservationService{store: store}
}

// User returns the user with the given id, or nil if unseen.
func (s *ReservationService) User(ctx context.Context, userID string) (*domain.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == userID {
			return &users[i], nil
		}
	}
	return nil, nil
}

// TryCreateUser appends a new user row. Returns false when a row for
// that id already exists.
func (s *ReservationService) TryCreateUser(ctx context.Context, userID string, state domain.DialogState) (bool, error) {
	existing, err := s.User(ctx, userID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if err := s.store.AppendUser(ctx, domain.User{ID: userID, State: state}); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateUserState persists a dialog-state transition. Returns false
// when no user row carries that id.
func (s *ReservationService) UpdateUserState(ctx context.Context, userID string, state domain.DialogState) (bool, error) {
	return s.store.UpdateUserState(ctx, userID, state)
}

// Team returns the team led by the given user, or nil if none exists.
func (s *ReservationService) Team(ctx context.Context, leaderID string) (*domain.Team, error) {
	teams, err := s.store.Teams(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teams {
		if teams[i].LeaderID == leaderID {
			return &teams[i], nil
		}
	}
	return nil, nil
}

// TryRegisterTeam appends a team row with an empty project number.
// Returns false when the leader already has a team; registration is a
// one-time action.
func (s *ReservationService) TryRegisterTeam(ctx context.Context, leaderID, fullName, phone, groupName string) (bool, error) {
	existing, err := s.Team(ctx, leaderID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	team := domain.Team{
		LeaderID:          leaderID,
		LeaderFullName:    fullName,
		LeaderPhoneNumber: phone,
		GroupName:         groupName,
	}
	if err := s.store.AppendTeam(ctx, team); err != nil {
		return false, err
	}
	return true, nil
}

// TryReserveProject sets the project number on the leader's team row.
// Returns false when no team row exists for the leader. Capacity is
// checked by the caller before committing; the commit itself only
// resolves the row and writes.
func (s *ReservationService) TryReserveProject(ctx context.Context, projectNumber, leaderID string) (bool, error) {
	return s.store.SetTeamProject(ctx, leaderID, projectNumber)
}

// GroupTeamsCount counts registered teams in one group.
func (s *ReservationService) GroupTeamsCount(ctx context.Context, groupName string) (int, error) {
	teams, err := s.store.Teams(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, t := range teams {
		if t.GroupName == groupName {
			count++
		}
	}
	return count, nil
}

// ProjectTeamsCount counts teams that reserved the given project.
func (s *ReservationService) ProjectTeamsCount(ctx context.Context, projectNumber string) (int, error) {
	teams, err := s.store.Teams(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, t := range teams {
		if t.ProjectNumber == projectNumber {
			count++
		}
	}
	return count, nil
}

// ProjectTeamsSameGroupCount counts teams from the leader's own group
// that reserved the given project. found is false when the leader has
// no team row, which the dialog treats as stale client state rather
// than a zero count.
func (s *ReservationService) ProjectTeamsSameGroupCount(ctx context.Context, projectNumber, leaderID string) (count int, found bool, err error) {
	team, err := s.Team(ctx, leaderID)
	if err != nil {
		return 0, false, err
	}
	if team == nil {
		return 0, false, nil
	}

	teams, err := s.store.Teams(ctx)
	if err != nil {
		return 0, false, err
	}
	for _, t := range teams {
		if t.ProjectNumber != "" && t.ProjectNumber == projectNumber && t.GroupName == team.GroupName {
			count++
		}
	}
	return count, true, nil
}

// MaxTeamsPerGroupCount returns the per-group team cap.
func (s *ReservationService) MaxTeamsPerGroupCount(ctx context.Context) (int, error) {
	c, err := s.store.Constraints(ctx)
	if err != nil {
		return 0, err
	}
	return c.MaxTeamsPerGroup, nil
}

// MaxProjectReservationsCount returns the per-project reservation cap.
func (s *ReservationService) MaxProjectReservationsCount(ctx context.Context) (int, error) {
	c, err := s.store.Constraints(ctx)
	if err != nil {
		return 0, err
	}
	return c.MaxProjectReservations, nil
}

// MaxProjectReservationsSameGroupCount returns the per-project cap for
// teams sharing one group.
func (s *ReservationService) MaxProjectReservationsSameGroupCount(ctx context.Context) (int, error) {
	c, err := s.store.Constraints(ctx)
	if err != nil {
		return 0, err
	}
	return c.MaxProjectReservationsSameGroup, nil
}

// AllProjects returns the full project catalogue.
func (s *ReservationService) AllProjects(ctx context.Context) ([]domain.Project, error) {
	return s.store.Projects(ctx)
}

// IsProjectNumberValid reports whether a project with the given number
// exists in the catalogue.
func (s *ReservationService) IsProjectNumberValid(ctx context.Context, projectNumber string) (bool, error) {
	projects, err := s.store.Projects(ctx)
	if err != nil {
		return false, err
	}
	for _, p := range projects {
		if p.Number == projectNumber {
			return true, nil
		}
	}
	return false, nil
}

// ProjectName resolves a project name by number. found is false when
// no such project exists.
func (s *ReservationService) ProjectName(ctx context.Context, projectNumber string) (string, bool, error) {
	projects, err := s.store.Projects(ctx)
	if err != nil {
		return "", false, err
	}
	for _, p := range projects {
		if p.Number == projectNumber {
			return p.Name, true, nil
		}
	}
	return "", false, nil
}

// ReservedProjectName resolves the name of the project reserved by the
// leader's team. found is false when the leader has no team or the
// reserved number no longer exists in the catalogue.
func (s *ReservationService) ReservedProjectName(ctx context.Context, leaderID string) (string, bool, error) {
	team, err := s.Team(ctx, leaderID)
	if err != nil {
		return "", false, err
	}
	if team == nil {
		return "", false, nil
	}
	return s.ProjectName(ctx, team.ProjectNumber)
}
