package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
	"github.com/projects-showcase/reservation-bot/internal/reservation/service"
	"github.com/projects-showcase/reservation-bot/internal/reservation/storetest"
)

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	store := storetest.NewMemStore()
	engine := service.NewReservationService(store)

	t.Run("unseen user resolves to nil", func(t *testing.T) {
		user, err := engine.User(ctx, "42")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("creates a user once", func(t *testing.T) {
		created, err := engine.TryCreateUser(ctx, "42", domain.StateStart)
		require.NoError(t, err)
		assert.True(t, created)

		created, err = engine.TryCreateUser(ctx, "42", domain.StateStart)
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("persists state transitions", func(t *testing.T) {
		updated, err := engine.UpdateUserState(ctx, "42", domain.StateRegistration)
		require.NoError(t, err)
		assert.True(t, updated)

		user, err := engine.User(ctx, "42")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, domain.StateRegistration, user.State)
	})

	t.Run("updating an unknown user reports false", func(t *testing.T) {
		updated, err := engine.UpdateUserState(ctx, "999", domain.StateRegistration)
		require.NoError(t, err)
		assert.False(t, updated)
	})
}

func TestTryRegisterTeam(t *testing.T) {
	ctx := context.Background()
	store := storetest.NewMemStore()
	engine := service.NewReservationService(store)

	registered, err := engine.TryRegisterTeam(ctx, "42", "Иванов Иван Иванович", "+7 123 456-78-90", "УЭИ-123")
	require.NoError(t, err)
	assert.True(t, registered)

	team, err := engine.Team(ctx, "42")
	require.NoError(t, err)
	require.NotNil(t, team)
	assert.Equal(t, "УЭИ-123", team.GroupName)
	assert.Empty(t, team.ProjectNumber, "a fresh team starts unassigned")

	// registration is a one-time action
	registered, err = engine.TryRegisterTeam(ctx, "42", "Иванов Иван Иванович", "+7 123 456-78-90", "УЭИ-123")
	require.NoError(t, err)
	assert.False(t, registered)
}

func TestReservationRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storetest.NewMemStore()
	store.SeedProjects(domain.Project{Number: "7", Name: "Цифровой диспетчер"})
	engine := service.NewReservationService(store)

	registered, err := engine.TryRegisterTeam(ctx, "42", "Иванов Иван Иванович", "+7 123 456-78-90", "УЭИ-123")
	require.NoError(t, err)
	require.True(t, registered)

	reserved, err := engine.TryReserveProject(ctx, "7", "42")
	require.NoError(t, err)
	assert.True(t, reserved)

	name, found, err := engine.ReservedProjectName(ctx, "42")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Цифровой диспетчер", name)
}

func TestTryReserveProjectWithoutTeam(t *testing.T) {
	ctx := context.Background()
	store := storetest.NewMemStore()
	engine := service.NewReservationService(store)

	reserved, err := engine.TryReserveProject(ctx, "7", "42")
	require.NoError(t, err)
	assert.False(t, reserved)
}

func TestCapacityQueries(t *testing.T) {
	ctx := context.Background()
	store := storetest.NewMemStore()
	store.SeedTeams(
		domain.Team{LeaderID: "1", GroupName: "УЭИ-123", ProjectNumber: "7"},
		domain.Team{LeaderID: "2", GroupName: "УЭИ-123", ProjectNumber: "8"},
		domain.Team{LeaderID: "3", GroupName: "ТЛТ-201", ProjectNumber: "7"},
		domain.Team{LeaderID: "4", GroupName: "ТЛТ-201"},
	)
	engine := service.NewReservationService(store)

	t.Run("group teams count", func(t *testing.T) {
		n, err := engine.GroupTeamsCount(ctx, "УЭИ-123")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("project teams count", func(t *testing.T) {
		n, err := engine.ProjectTeamsCount(ctx, "7")
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("same-group count sees only the leader's group", func(t *testing.T) {
		n, found, err := engine.ProjectTeamsSameGroupCount(ctx, "7", "1")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, 1, n)
	})

	t.Run("same-group count distinguishes unregistered leaders", func(t *testing.T) {
		_, found, err := engine.ProjectTeamsSameGroupCount(ctx, "7", "999")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestConstraintDefaults(t *testing.T) {
	ctx := context.Background()
	store := storetest.NewMemStore()
	engine := service.NewReservationService(store)

	perGroup, err := engine.MaxTeamsPerGroupCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, perGroup)

	perProject, err := engine.MaxProjectReservationsCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, perProject)

	sameGroup, err := engine.MaxProjectReservationsSameGroupCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sameGroup)
}

func TestProjectLookups(t *testing.T) {
	ctx := context.Background()
	store := storetest.NewMemStore()
	store.SeedProjects(
		domain.Project{Number: "1", Name: "Первый"},
		domain.Project{Number: "2", Name: "Второй"},
	)
	engine := service.NewReservationService(store)

	valid, err := engine.IsProjectNumberValid(ctx, "2")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = engine.IsProjectNumberValid(ctx, "3")
	require.NoError(t, err)
	assert.False(t, valid)

	name, found, err := engine.ProjectName(ctx, "1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Первый", name)

	_, found, err = engine.ProjectName(ctx, "3")
	require.NoError(t, err)
	assert.False(t, found)

	projects, err := engine.AllProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

// Sequentially driven check-then-commit sequences must never exceed
// the configured limits.
func TestSequentialCapacityInvariant(t *testing.T) {
	ctx := context.Background()
	store := storetest.NewMemStore()
	store.SeedProjects(domain.Project{Number: "7", Name: "Проект"})
	store.SetConstraints(domain.Constraints{
		MaxTeamsPerGroup:                7,
		MaxProjectReservations:          3,
		MaxProjectReservationsSameGroup: 1,
	})
	engine := service.NewReservationService(store)

	for i := 0; i < 10; i++ {
		leader := fmt.Sprintf("leader-%d", i)
		group := fmt.Sprintf("ГРП-%03d", i)
		registered, err := engine.TryRegisterTeam(ctx, leader, "Лидер", "+7 000 000-00-00", group)
		require.NoError(t, err)
		require.True(t, registered)

		// the caller's pre-check, as the dialog performs it
		count, err := engine.ProjectTeamsCount(ctx, "7")
		require.NoError(t, err)
		limit, err := engine.MaxProjectReservationsCount(ctx)
		require.NoError(t, err)
		if count >= limit {
			continue
		}

		reserved, err := engine.TryReserveProject(ctx, "7", leader)
		require.NoError(t, err)
		require.True(t, reserved)
	}

	final, err := engine.ProjectTeamsCount(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, 3, final)
}
