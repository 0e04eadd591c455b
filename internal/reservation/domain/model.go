package domain

// DialogState is the conversational phase a user occupies. It is
// persisted in the users sheet so a dialog survives process restarts.
type DialogState string

const (
	StateStart              DialogState = "Start"
	StateRegistration       DialogState = "Registration"
	StateProjectSelection   DialogState = "ProjectSelection"
	StateCompletedSelection DialogState = "CompletedSelection"
)

// ParseDialogState maps a stored cell value back to a DialogState.
// Unknown values fall back to StateStart so a corrupted cell never
// strands a user.
func ParseDialogState(s string) DialogState {
	switch DialogState(s) {
	case StateStart, StateRegistration, StateProjectSelection, StateCompletedSelection:
		return DialogState(s)
	default:
		return StateStart
	}
}

// User is one chat participant and their current dialog state.
type User struct {
	ID    string
	State DialogState
}

// Team is the unit of registration: one leader, a group affiliation and
// at most one reserved project. An empty ProjectNumber means the team
// has not reserved yet.
type Team struct {
	LeaderID          string
	LeaderFullName    string
	LeaderPhoneNumber string
	GroupName         string
	ProjectNumber     string
}

// Project is a catalogue entry a team can reserve.
type Project struct {
	Number string
	Name   string
}

// Constraints holds the capacity limits read from the constraints
// sheet.
type Constraints struct {
	MaxTeamsPerGroup                int
	MaxProjectReservations          int
	MaxProjectReservationsSameGroup int
}

// DefaultConstraints returns the built-in limits used when the
// constraints sheet is absent or unparseable.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxTeamsPerGroup:                7,
		MaxProjectReservations:          3,
		MaxProjectReservationsSameGroup: 1,
	}
}
