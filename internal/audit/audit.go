package audit

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
)

// Store is the read-only slice of the tabular store the audit needs.
type Store interface {
	Teams(ctx context.Context) ([]domain.Team, error)
	Constraints(ctx context.Context) (domain.Constraints, error)
}

// Auditor periodically rescans the teams sheet and logs every capacity
// limit that is exceeded. Reservation leases expire instead of rolling
// back, so a crashed handler can leave a project transiently over its
// limit; the audit makes that visible to operators.
type Auditor struct {
	store Store
	cron  *cron.Cron
}

// New creates an auditor over a store.
func New(store Store) *Auditor {
	return &Auditor{store: store, cron: cron.New()}
}

// Start schedules the audit with a cron expression (e.g. "@hourly").
func (a *Auditor) Start(schedule string) error {
	if _, err := a.cron.AddFunc(schedule, a.runOnce); err != nil {
		return fmt.Errorf("schedule audit: %w", err)
	}
	a.cron.Start()
	log.Printf("audit: capacity audit scheduled (%s)", schedule)
	return nil
}

// Stop stops the schedule; a running audit finishes on its own.
func (a *Auditor) Stop() {
	a.cron.Stop()
}

func (a *Auditor) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	violations, err := a.Check(ctx)
	if err != nil {
		log.Printf("audit: scan failed: %v", err)
		return
	}
	if len(violations) == 0 {
		log.Println("audit: all capacity limits hold")
		return
	}
	for _, v := range violations {
		log.Printf("audit: %s", v)
	}
}

// Check returns a description of every violated capacity limit in the
// current teams snapshot.
func (a *Auditor) Check(ctx context.Context) ([]string, error) {
	teams, err := a.store.Teams(ctx)
	if err != nil {
		return nil, err
	}
	constraints, err := a.store.Constraints(ctx)
	if err != nil {
		return nil, err
	}

	perGroup := map[string]int{}
	perProject := map[string]int{}
	perProjectGroup := map[string]int{}
	for _, t := range teams {
		perGroup[t.GroupName]++
		if t.ProjectNumber != "" {
			perProject[t.ProjectNumber]++
			perProjectGroup[t.ProjectNumber+"|"+t.GroupName]++
		}
	}

	var violations []string
	for group, n := range perGroup {
		if n > constraints.MaxTeamsPerGroup {
			violations = append(violations,
				fmt.Sprintf("group %s has %d teams (limit %d)", group, n, constraints.MaxTeamsPerGroup))
		}
	}
	for project, n := range perProject {
		if n > constraints.MaxProjectReservations {
			violations = append(violations,
				fmt.Sprintf("project %s has %d reservations (limit %d)", project, n, constraints.MaxProjectReservations))
		}
	}
	for key, n := range perProjectGroup {
		if n > constraints.MaxProjectReservationsSameGroup {
			violations = append(violations,
				fmt.Sprintf("project/group %s has %d reservations (limit %d)", key, n, constraints.MaxProjectReservationsSameGroup))
		}
	}
	return violations, nil
}
