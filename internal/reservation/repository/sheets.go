package repository

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/projects-showcase/reservation-bot/internal/reservation/domain"
)

// Sheet names inside the showcase spreadsheet.
const (
	projectsSheet    = "Проекты"
	teamsSheet       = "Команды"
	constraintsSheet = "Ограничения"
	usersSheet       = "База пользователей"
)

// SheetsStore persists users, teams, projects and constraints in a
// Google spreadsheet. Rows are positional: targeted updates rescan the
// id column immediately before each write, so no row index is ever
// cached across calls.
type SheetsStore struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetsStore builds a store from a service-account credentials file
// with spreadsheet scope.
func NewSheetsStore(ctx context.Context, credentialsFile, spreadsheetID string) (*SheetsStore, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	conf, err := google.JWTConfigFromJSON(data, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets client: %w", err)
	}

	return &SheetsStore{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Ping verifies the spreadsheet is reachable.
func (s *SheetsStore) Ping(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	return err
}

// Users returns every row of the users sheet.
func (s *SheetsStore) Users(ctx context.Context) ([]domain.User, error) {
	rows, err := s.getValues(ctx, usersSheet+"!A2:B")
	if err != nil {
		return nil, err
	}
	return usersFromRows(rows), nil
}

// AppendUser appends a new user row.
func (s *SheetsStore) AppendUser(ctx context.Context, user domain.User) error {
	return s.appendRow(ctx, usersSheet+"!A2:B", rowFromUser(user))
}

// UpdateUserState rewrites the state cell of the user with the given
// id. Returns false when no row carries that id.
func (s *SheetsStore) UpdateUserState(ctx context.Context, userID string, state domain.DialogState) (bool, error) {
	row, found, err := s.findRow(ctx, usersSheet, userID)
	if err != nil || !found {
		return false, err
	}
	return true, s.updateCell(ctx, fmt.Sprintf("%s!B%d", usersSheet, row), string(state))
}

// Teams returns every row of the teams sheet.
func (s *SheetsStore) Teams(ctx context.Context) ([]domain.Team, error) {
	rows, err := s.getValues(ctx, teamsSheet+"!A2:E")
	if err != nil {
		return nil, err
	}
	return teamsFromRows(rows), nil
}

// AppendTeam appends a new team row.
func (s *SheetsStore) AppendTeam(ctx context.Context, team domain.Team) error {
	return s.appendRow(ctx, teamsSheet+"!A2:E", rowFromTeam(team))
}

// SetTeamProject rewrites the project-number cell of the team led by
// the given user. Returns false when no team row carries that leader.
func (s *SheetsStore) SetTeamProject(ctx context.Context, leaderID, projectNumber string) (bool, error) {
	row, found, err := s.findRow(ctx, teamsSheet, leaderID)
	if err != nil || !found {
		return false, err
	}
	return true, s.updateCell(ctx, fmt.Sprintf("%s!E%d", teamsSheet, row), projectNumber)
}

// Projects returns the read-only project catalogue.
func (s *SheetsStore) Projects(ctx context.Context) ([]domain.Project, error) {
	rows, err := s.getValues(ctx, projectsSheet+"!A2:B")
	if err != nil {
		return nil, err
	}
	return projectsFromRows(rows), nil
}

// Constraints reads the capacity limits, substituting the built-in
// 7/3/1 defaults for any absent or unparseable cell.
func (s *SheetsStore) Constraints(ctx context.Context) (domain.Constraints, error) {
	rows, err := s.getValues(ctx, constraintsSheet+"!B1:B3")
	if err != nil {
		return domain.Constraints{}, err
	}
	return constraintsFromRows(rows), nil
}

func (s *SheetsStore) getValues(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", readRange, err)
	}
	return resp.Values, nil
}

func (s *SheetsStore) appendRow(ctx context.Context, appendRange string, row []interface{}) error {
	body := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, appendRange, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %s: %w", appendRange, err)
	}
	return nil
}

func (s *SheetsStore) updateCell(ctx context.Context, cell string, value string) error {
	body := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, cell, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update %s: %w", cell, err)
	}
	return nil
}

// findRow scans column A of a sheet for the given id and returns the
// 1-based sheet row of the last match. The scan is repeated on every
// call: indices must never be reused across round trips.
func (s *SheetsStore) findRow(ctx context.Context, sheet, id string) (int, bool, error) {
	rows, err := s.getValues(ctx, sheet+"!A:A")
	if err != nil {
		return 0, false, err
	}

	rowIndex := 0
	found := false
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if cellString(row, 0) == id {
			rowIndex = i + 1
			found = true
		}
	}
	return rowIndex, found, nil
}
