// Package storetest provides an in-memory TabularStore for tests. A
// spreadsheet has no local mock the way Postgres has sqlmock, so the
// engine and dialog tests run against this fake instead.
package storetest

import (
	"context"
	"sync"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
)

// MemStore implements service.TabularStore over slices. All methods
// are safe for concurrent use, matching the store's role in
// concurrency tests.
type MemStore struct {
	mu          sync.Mutex
	users       []domain.User
	teams       []domain.Team
	projects    []domain.Project
	constraints *domain.Constraints
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) SeedUsers(users ...domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, users...)
}

func (m *MemStore) SeedTeams(teams ...domain.Team) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams = append(m.teams, teams...)
}

func (m *MemStore) SeedProjects(projects ...domain.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.projects = append(m.projects, projects...)
}

func (m *MemStore) SetConstraints(c domain.Constraints) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.constraints = &c
}

// UserByID returns a copy of the stored user, or nil.
func (m *MemStore) UserByID(id string) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			user := u
			return &user
		}
	}
	return nil
}

// TeamByLeader returns a copy of the stored team, or nil.
func (m *MemStore) TeamByLeader(leaderID string) *domain.Team {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.teams {
		if t.LeaderID == leaderID {
			team := t
			return &team
		}
	}
	return nil
}

func (m *MemStore) Ping(ctx context.Context) error {
	return nil
}

func (m *MemStore) Users(ctx context.Context) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.User(nil), m.users...), nil
}

func (m *MemStore) AppendUser(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, user)
	return nil
}

func (m *MemStore) UpdateUserState(ctx context.Context, userID string, state domain.DialogState) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.users {
		if m.users[i].ID == userID {
			m.users[i].State = state
			return true, nil
		}
	}
	return false, nil
}

func (m *MemStore) Teams(ctx context.Context) ([]domain.Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Team(nil), m.teams...), nil
}

func (m *MemStore) AppendTeam(ctx context.Context, team domain.Team) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams = append(m.teams, team)
	return nil
}

func (m *MemStore) SetTeamProject(ctx context.Context, leaderID, projectNumber string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.teams {
		if m.teams[i].LeaderID == leaderID {
			m.teams[i].ProjectNumber = projectNumber
			return true, nil
		}
	}
	return false, nil
}

func (m *MemStore) Projects(ctx context.Context) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Project(nil), m.projects...), nil
}

func (m *MemStore) Constraints(ctx context.Context) (domain.Constraints, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.constraints == nil {
		return domain.DefaultConstraints(), nil
	}
	return *m.constraints, nil
}
