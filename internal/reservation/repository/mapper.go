package repository

import (
	"fmt"
	"strconv"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
)

// cellString reads a cell from a sheet row, tolerating rows shorter
// than the expected column count.
func cellString(row []interface{}, i int) string {
	if i >= len(row) {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprint(row[i])
}

func usersFromRows(rows [][]interface{}) []domain.User {
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		users = append(users, domain.User{
			ID:    cellString(row, 0),
			State: domain.ParseDialogState(cellString(row, 1)),
		})
	}
	return users
}

func rowFromUser(u domain.User) []interface{} {
	return []interface{}{u.ID, string(u.State)}
}

func teamsFromRows(rows [][]interface{}) []domain.Team {
	teams := make([]domain.Team, 0, len(rows))
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		teams = append(teams, domain.Team{
			LeaderID:          cellString(row, 0),
			LeaderFullName:    cellString(row, 1),
			LeaderPhoneNumber: cellString(row, 2),
			GroupName:         cellString(row, 3),
			ProjectNumber:     cellString(row, 4),
		})
	}
	return teams
}

func rowFromTeam(t domain.Team) []interface{} {
	return []interface{}{
		t.LeaderID,
		t.LeaderFullName,
		t.LeaderPhoneNumber,
		t.GroupName,
		t.ProjectNumber,
	}
}

func projectsFromRows(rows [][]interface{}) []domain.Project {
	projects := make([]domain.Project, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		projects = append(projects, domain.Project{
			Number: cellString(row, 0),
			Name:   cellString(row, 1),
		})
	}
	return projects
}

// constraintsFromRows parses the three limit cells, falling back to the
// built-in defaults for any cell that is missing or not a number.
func constraintsFromRows(rows [][]interface{}) domain.Constraints {
	c := domain.DefaultConstraints()
	if v, err := strconv.Atoi(constraintCell(rows, 0)); err == nil {
		c.MaxTeamsPerGroup = v
	}
	if v, err := strconv.Atoi(constraintCell(rows, 1)); err == nil {
		c.MaxProjectReservations = v
	}
	if v, err := strconv.Atoi(constraintCell(rows, 2)); err == nil {
		c.MaxProjectReservationsSameGroup = v
	}
	return c
}

func constraintCell(rows [][]interface{}, i int) string {
	if i >= len(rows) || len(rows[i]) == 0 {
		return ""
	}
	return cellString(rows[i], 0)
}
