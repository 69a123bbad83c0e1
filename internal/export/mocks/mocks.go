package mocks

import (
	"context"

	"trpg_json/internal/app"
	"trpg_json/internal/auth"
)

// MockCredentialProvider is a test double for auth.Manager
type MockCredentialProvider struct {
	// Responses to return
	LoadCredentialsResponse *auth.Credentials
	AuthenticateResponse    *auth.Credentials

	// Errors to return
	LoadCredentialsError  error
	AuthenticateError     error
	ClearCredentialsError error

	// Call tracking
	LoadCredentialsCalled  bool
	AuthenticateCalled     bool
	ClearCredentialsCalled bool
}

func (m *MockCredentialProvider) LoadCredentials() (*auth.Credentials, error) {
	m.LoadCredentialsCalled = true
	return m.LoadCredentialsResponse, m.LoadCredentialsError
}

func (m *MockCredentialProvider) Authenticate(ctx context.Context) (*auth.Credentials, error) {
	m.AuthenticateCalled = true
	return m.AuthenticateResponse, m.AuthenticateError
}

func (m *MockCredentialProvider) ClearCredentials() error {
	m.ClearCredentialsCalled = true
	return m.ClearCredentialsError
}

// MockMonsterAppender is a test double for sheets.Client
type MockMonsterAppender struct {
	// AppendError is returned once FailAt creatures have been appended.
	// A zero FailAt fails the first call.
	AppendError error
	FailAt      int

	// Call parameters tracking
	LastSpreadsheetID string
	LastSheetName     string
	Appended          []string

	LogCallSummaryCalled bool
}

func (m *MockMonsterAppender) AppendMonsterData(ctx context.Context, spreadsheetID, sheetName string, creature *app.Creature) error {
	m.LastSpreadsheetID = spreadsheetID
	m.LastSheetName = sheetName
	if m.AppendError != nil && len(m.Appended) >= m.FailAt {
		return m.AppendError
	}
	m.Appended = append(m.Appended, creature.Name)
	return nil
}

func (m *MockMonsterAppender) LogCallSummary() {
	m.LogCallSummaryCalled = true
}
