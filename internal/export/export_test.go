package export_test

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"trpg_json/internal/app"
	"trpg_json/internal/auth"
	"trpg_json/internal/export"
	"trpg_json/internal/export/mocks"

	"github.com/goccy/go-json"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func intPtr(i int) *int {
	return &i
}

func testCreatures() []app.Creature {
	return []app.Creature{
		{
			Name:     "ゴブリン",
			Category: "蛮族",
			Level:    1,
			MoveIn:   10,
			MoveOn:   app.NoMovement,
			Parts: []app.Part{
				{HP: intPtr(16), MP: 12, Core: true, Hit: intPtr(9), Dodge: intPtr(10), Damage: intPtr(3), PartCount: 1, Armor: 2},
			},
			Weakness:      "命中力+1",
			WeaknessValue: 12,
		},
		{
			Name:     "ヒュドラ",
			Category: "幻獣",
			Level:    9,
			MoveIn:   15,
			MoveOn:   15,
			Parts: []app.Part{
				{HP: intPtr(60), MP: 20, Name: "胴体", Core: true, Hit: intPtr(15), Dodge: intPtr(14), Damage: intPtr(10), PartCount: 1, Armor: 8},
				{HP: intPtr(40), MP: app.UnknownMP, Name: "首", Hit: intPtr(16), Dodge: intPtr(15), Damage: intPtr(12), PartCount: 1, Armor: 6},
				{HP: intPtr(40), MP: app.UnknownMP, Name: "首", Hit: intPtr(16), Dodge: intPtr(15), Damage: intPtr(12), PartCount: 1, Armor: 6},
			},
		},
	}
}

func validCreds() *auth.Credentials {
	return &auth.Credentials{AccessToken: "token", TokenType: "Bearer", ExpiresAt: 1 << 40}
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		input    string
		expected export.Format
		wantErr  bool
	}{
		{"json", export.FormatJSON, false},
		{"JSON", export.FormatJSON, false},
		{"sheets", export.FormatSheets, false},
		{"Google-Sheets", export.FormatSheets, false},
		{"googlesheets", export.FormatSheets, false},
		{"udonarium", export.FormatUdonarium, false},
		{"csv", 0, true},
		{"", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			format, err := export.ParseFormat(tc.input)
			if tc.wantErr {
				if !errors.Is(err, export.ErrUnsupportedFormat) {
					t.Fatalf("Expected unsupported format error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if format != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, format)
			}
		})
	}
}

func TestUnsupportedFormatMessage(t *testing.T) {
	_, err := export.ParseFormat("csv")
	expected := "Unknown export format: 'csv'. Supported: json, sheets, udonarium"
	if err == nil || !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected message %q, got %v", expected, err)
	}
}

func TestErrorKinds(t *testing.T) {
	cause := errors.New("disk full")
	err := &export.Error{Kind: export.KindIO, Message: "failed to write", Cause: cause}

	if !errors.Is(err, export.ErrIO) {
		t.Error("Expected error to match its kind")
	}
	if errors.Is(err, export.ErrRemoteAPI) {
		t.Error("Expected error to not match another kind")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected cause to be reachable through Unwrap")
	}
	if err.Error() != "IO error: failed to write: disk full" {
		t.Errorf("Unexpected message %q", err.Error())
	}
}

func TestNewExporterNames(t *testing.T) {
	testCases := []struct {
		format   export.Format
		expected string
	}{
		{export.FormatJSON, "JSON Exporter"},
		{export.FormatSheets, "Google Sheets Exporter"},
		{export.FormatUdonarium, "Udonarium Exporter"},
	}

	for _, tc := range testCases {
		exporter, err := export.NewExporter(tc.format, export.Dependencies{})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if exporter.Name() != tc.expected {
			t.Errorf("Expected %q, got %q", tc.expected, exporter.Name())
		}
	}

	if _, err := export.NewExporter(export.Format(42), export.Dependencies{}); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Errorf("Expected unsupported format error, got %v", err)
	}
}

func TestJSONExport(t *testing.T) {
	coordinator := export.NewCoordinator(export.Dependencies{})
	ctx := context.Background()

	t.Run("RoundTrip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.json")
		creatures := testCreatures()

		if err := coordinator.Export(ctx, creatures, export.Config{Destination: path, Format: "json"}); err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read output: %v", err)
		}
		if !strings.Contains(string(data), "\n  ") {
			t.Error("Expected pretty-printed output")
		}

		var decoded []app.Creature
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("Failed to decode output: %v", err)
		}
		if len(decoded) != len(creatures) {
			t.Fatalf("Expected %d creatures, got %d", len(creatures), len(decoded))
		}
		for i := range creatures {
			if decoded[i].Name != creatures[i].Name || decoded[i].Level != creatures[i].Level {
				t.Errorf("Creature %d changed: %+v", i, decoded[i])
			}
			if len(decoded[i].Parts) != len(creatures[i].Parts) {
				t.Errorf("Creature %d lost parts", i)
			}
		}
	})

	t.Run("EmptyList", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		if err := coordinator.Export(ctx, nil, export.Config{Destination: path, Format: "json"}); err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read output: %v", err)
		}
		if strings.TrimSpace(string(data)) != "[]" {
			t.Errorf("Expected [], got %q", data)
		}
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.json")
		err := coordinator.Export(ctx, testCreatures(), export.Config{Destination: path, Format: "json"})
		if !errors.Is(err, export.ErrInvalidDestination) {
			t.Fatalf("Expected invalid destination error, got %v", err)
		}
		if !strings.Contains(err.Error(), "Output directory does not exist") {
			t.Errorf("Unexpected message %q", err.Error())
		}
	})
}

func TestJSONExportRoundTripProperties(t *testing.T) {
	exporter := &export.JSONExporter{}
	path := filepath.Join(t.TempDir(), "prop.json")

	properties := gopter.NewProperties(nil)

	properties.Property("names and levels survive a JSON export", prop.ForAll(
		func(names []string, levels []int) bool {
			n := len(names)
			if len(levels) < n {
				n = len(levels)
			}
			if n == 0 {
				return true
			}

			creatures := make([]app.Creature, n)
			for i := 0; i < n; i++ {
				creatures[i] = app.Creature{
					Name:   names[i],
					Level:  levels[i],
					MoveIn: app.Movement(levels[i]),
					MoveOn: app.NoMovement,
					Parts: []app.Part{
						{HP: intPtr(levels[i] * 5), MP: app.UnknownMP, Core: true, PartCount: 1},
					},
				}
			}

			if err := exporter.Export(context.Background(), creatures, export.Config{Destination: path}); err != nil {
				return false
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return false
			}
			var decoded []app.Creature
			if err := json.Unmarshal(data, &decoded); err != nil {
				return false
			}

			if len(decoded) != n {
				return false
			}
			for i := range creatures {
				if decoded[i].Name != creatures[i].Name || decoded[i].Level != creatures[i].Level {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.UnicodeString(unicode.Katakana)).SuchThat(func(v []string) bool { return len(v) > 0 }),
		gen.SliceOf(gen.IntRange(0, 20)).SuchThat(func(v []int) bool { return len(v) > 0 }),
	))

	properties.TestingRun(t)
}

func TestCoordinatorRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("UnknownFormat", func(t *testing.T) {
		coordinator := export.NewCoordinator(export.Dependencies{})
		err := coordinator.Export(ctx, testCreatures(), export.Config{Destination: "x", Format: "csv"})
		if !errors.Is(err, export.ErrUnsupportedFormat) {
			t.Errorf("Expected unsupported format error, got %v", err)
		}
	})

	t.Run("EmptyListBeforeSideEffects", func(t *testing.T) {
		creds := &mocks.MockCredentialProvider{}
		coordinator := export.NewCoordinator(export.Dependencies{Credentials: creds})

		for _, format := range []string{"sheets", "udonarium"} {
			err := coordinator.Export(ctx, nil, export.Config{Destination: "1234567890abcdef", Format: format})
			if !errors.Is(err, export.ErrInvalidDestination) {
				t.Errorf("%s: expected invalid destination error, got %v", format, err)
			}
		}
		if creds.LoadCredentialsCalled {
			t.Error("Credentials must not be touched for an empty list")
		}
	})
}

func TestSheetsExport(t *testing.T) {
	ctx := context.Background()
	const spreadsheetID = "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"

	newDeps := func(creds *mocks.MockCredentialProvider, appender *mocks.MockMonsterAppender) (export.Dependencies, *[]*auth.Credentials) {
		var received []*auth.Credentials
		return export.Dependencies{
			Credentials: creds,
			NewAppender: func(ctx context.Context, c *auth.Credentials) (export.MonsterAppender, error) {
				received = append(received, c)
				return appender, nil
			},
		}, &received
	}

	t.Run("StoredCredentials", func(t *testing.T) {
		creds := &mocks.MockCredentialProvider{LoadCredentialsResponse: validCreds()}
		appender := &mocks.MockMonsterAppender{}
		deps, received := newDeps(creds, appender)

		err := export.NewCoordinator(deps).Export(ctx, testCreatures(), export.Config{Destination: spreadsheetID, Format: "sheets"})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		if creds.AuthenticateCalled {
			t.Error("Expected stored credentials to be used without authenticating")
		}
		if len(*received) != 1 || (*received)[0].AccessToken != "token" {
			t.Errorf("Expected appender built from stored credentials, got %v", *received)
		}
		if len(appender.Appended) != 2 || appender.Appended[0] != "ゴブリン" || appender.Appended[1] != "ヒュドラ" {
			t.Errorf("Expected creatures appended in order, got %v", appender.Appended)
		}
		if appender.LastSheetName != app.DefaultSheetName {
			t.Errorf("Expected default sheet name, got %q", appender.LastSheetName)
		}
		if appender.LastSpreadsheetID != spreadsheetID {
			t.Errorf("Expected spreadsheet id %q, got %q", spreadsheetID, appender.LastSpreadsheetID)
		}
		if !appender.LogCallSummaryCalled {
			t.Error("Expected call summary to be logged")
		}
	})

	t.Run("MissingCredentialsAuthenticates", func(t *testing.T) {
		creds := &mocks.MockCredentialProvider{
			LoadCredentialsError: auth.ErrMissingCredentials,
			AuthenticateResponse: validCreds(),
		}
		appender := &mocks.MockMonsterAppender{}
		deps, _ := newDeps(creds, appender)

		err := export.NewCoordinator(deps).Export(ctx, testCreatures()[:1], export.Config{
			Destination: spreadsheetID,
			Format:      "sheets",
			SheetName:   "bestiary",
		})
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		if !creds.AuthenticateCalled {
			t.Error("Expected OAuth flow to run")
		}
		if creds.ClearCredentialsCalled {
			t.Error("Missing credentials must not be cleared")
		}
		if appender.LastSheetName != "bestiary" {
			t.Errorf("Expected configured sheet name, got %q", appender.LastSheetName)
		}
	})

	t.Run("CorruptCredentialsCleared", func(t *testing.T) {
		creds := &mocks.MockCredentialProvider{LoadCredentialsError: errors.New("failed to parse credentials")}
		appender := &mocks.MockMonsterAppender{}
		deps, received := newDeps(creds, appender)

		err := export.NewCoordinator(deps).Export(ctx, testCreatures(), export.Config{Destination: spreadsheetID, Format: "sheets"})
		if !errors.Is(err, export.ErrAuthentication) {
			t.Fatalf("Expected authentication error, got %v", err)
		}
		if !creds.ClearCredentialsCalled {
			t.Error("Expected invalid credentials to be cleared")
		}
		if creds.AuthenticateCalled {
			t.Error("Expected no OAuth flow after a load failure")
		}
		if len(*received) != 0 {
			t.Error("Expected no appender to be built")
		}
	})

	t.Run("AuthenticationFails", func(t *testing.T) {
		creds := &mocks.MockCredentialProvider{
			LoadCredentialsError: auth.ErrMissingCredentials,
			AuthenticateError:    auth.ErrAuthenticationFailed,
		}
		deps, _ := newDeps(creds, &mocks.MockMonsterAppender{})

		err := export.NewCoordinator(deps).Export(ctx, testCreatures(), export.Config{Destination: spreadsheetID, Format: "sheets"})
		if !errors.Is(err, export.ErrAuthentication) {
			t.Errorf("Expected authentication error, got %v", err)
		}
		if !errors.Is(err, auth.ErrAuthenticationFailed) {
			t.Error("Expected cause to be preserved")
		}
	})

	t.Run("InvalidSpreadsheetID", func(t *testing.T) {
		creds := &mocks.MockCredentialProvider{LoadCredentialsResponse: validCreds()}
		deps, _ := newDeps(creds, &mocks.MockMonsterAppender{})

		err := export.NewCoordinator(deps).Export(ctx, testCreatures(), export.Config{Destination: "short", Format: "sheets"})
		if !errors.Is(err, export.ErrInvalidDestination) {
			t.Errorf("Expected invalid destination error, got %v", err)
		}
		if creds.LoadCredentialsCalled {
			t.Error("Expected id validation before loading credentials")
		}
	})

	t.Run("FirstFailureAborts", func(t *testing.T) {
		creds := &mocks.MockCredentialProvider{LoadCredentialsResponse: validCreds()}
		appender := &mocks.MockMonsterAppender{AppendError: errors.New("quota exceeded"), FailAt: 1}
		deps, _ := newDeps(creds, appender)

		creatures := append(testCreatures(), testCreatures()...)
		err := export.NewCoordinator(deps).Export(ctx, creatures, export.Config{Destination: spreadsheetID, Format: "sheets"})
		if !errors.Is(err, export.ErrRemoteAPI) {
			t.Fatalf("Expected remote API error, got %v", err)
		}
		if !strings.Contains(err.Error(), "ヒュドラ") {
			t.Errorf("Expected failing creature in message, got %q", err.Error())
		}
		if len(appender.Appended) != 1 {
			t.Errorf("Expected export to stop after first failure, got %v", appender.Appended)
		}
	})
}

func TestUdonariumExport(t *testing.T) {
	ctx := context.Background()
	coordinator := export.NewCoordinator(export.Dependencies{})

	t.Run("WritesOneSheetPerPart", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dir", "monsters.zip")

		if err := coordinator.Export(ctx, testCreatures(), export.Config{Destination: path, Format: "udonarium"}); err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		reader, err := zip.OpenReader(path)
		if err != nil {
			t.Fatalf("Failed to open archive: %v", err)
		}
		defer reader.Close()

		expected := []string{"ゴブリン.xml", "ヒュドラ_胴体.xml", "ヒュドラ_首_0.xml", "ヒュドラ_首_1.xml"}
		if len(reader.File) != len(expected) {
			names := make([]string, 0, len(reader.File))
			for _, f := range reader.File {
				names = append(names, f.Name)
			}
			t.Fatalf("Expected %v, got %v", expected, names)
		}

		found := map[string]bool{}
		for _, f := range reader.File {
			found[f.Name] = true
		}
		for _, name := range expected {
			if !found[name] {
				t.Errorf("Missing entry %s", name)
			}
		}
	})

	t.Run("EmptyPath", func(t *testing.T) {
		err := coordinator.Export(ctx, testCreatures(), export.Config{Format: "udonarium"})
		if !errors.Is(err, export.ErrInvalidDestination) {
			t.Errorf("Expected invalid destination error, got %v", err)
		}
	})
}
