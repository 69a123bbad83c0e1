package monster

import (
	"fmt"
	"testing"

	"trpg_json/internal/app"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func testPart(name string, core bool) app.Part {
	hp := 50
	return app.Part{HP: &hp, MP: 50, Name: name, Core: app.Flag(core), Armor: 5}
}

func TestPartNamer(t *testing.T) {
	testCases := []struct {
		name             string
		creature         string
		parts            []app.Part
		expectedFiles    []string
		expectedDisplays []string
	}{
		{
			name:             "SingleUnnamedCore",
			creature:         "ゴブリン",
			parts:            []app.Part{testPart("", true)},
			expectedFiles:    []string{"ゴブリン"},
			expectedDisplays: []string{"ゴブリン"},
		},
		{
			name:             "SingleNamed",
			creature:         "ゴブリン",
			parts:            []app.Part{testPart("頭部", true)},
			expectedFiles:    []string{"ゴブリン_頭部"},
			expectedDisplays: []string{"ゴブリン\n(頭部)"},
		},
		{
			name:             "UniqueNames",
			creature:         "トレント",
			parts:            []app.Part{testPart("幹", true), testPart("根", false)},
			expectedFiles:    []string{"トレント_幹", "トレント_根"},
			expectedDisplays: []string{"トレント\n(幹)", "トレント\n(根)"},
		},
		{
			name:             "DuplicateNames",
			creature:         "トレント",
			parts:            []app.Part{testPart("根", true), testPart("根", false), testPart("根", false)},
			expectedFiles:    []string{"トレント_根_0", "トレント_根_1", "トレント_根_2"},
			expectedDisplays: []string{"トレント\n(根)", "トレント\n(根)", "トレント\n(根)"},
		},
		{
			name:             "UnnamedNonCore",
			creature:         "スライム",
			parts:            []app.Part{testPart("", true), testPart("", false), testPart("", false)},
			expectedFiles:    []string{"スライム", "スライム_1", "スライム_2"},
			expectedDisplays: []string{"スライム", "スライム_1", "スライム_2"},
		},
		{
			name:             "MixedDuplicatesInterleaved",
			creature:         "ヒドラ",
			parts:            []app.Part{testPart("胴体", true), testPart("首", false), testPart("尾", false), testPart("首", false)},
			expectedFiles:    []string{"ヒドラ_胴体", "ヒドラ_首_0", "ヒドラ_尾", "ヒドラ_首_1"},
			expectedDisplays: []string{"ヒドラ\n(胴体)", "ヒドラ\n(首)", "ヒドラ\n(尾)", "ヒドラ\n(首)"},
		},
		{
			name:             "NoCorePart",
			creature:         "群体",
			parts:            []app.Part{testPart("", false)},
			expectedFiles:    []string{"群体_0"},
			expectedDisplays: []string{"群体_0"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			names := NewPartNamer(tc.parts).Names(tc.parts, tc.creature)

			if len(names) != len(tc.parts) {
				t.Fatalf("Expected %d names, got %d", len(tc.parts), len(names))
			}

			for i := range names {
				if names[i].FileName != tc.expectedFiles[i] {
					t.Errorf("Part %d: expected file name %q, got %q", i, tc.expectedFiles[i], names[i].FileName)
				}
				if names[i].DisplayName != tc.expectedDisplays[i] {
					t.Errorf("Part %d: expected display name %q, got %q", i, tc.expectedDisplays[i], names[i].DisplayName)
				}
			}
		})
	}
}

func TestNameParts(t *testing.T) {
	creature := &app.Creature{Name: "トレント", Parts: []app.Part{testPart("根", true), testPart("根", false)}}

	names := NameParts(creature)
	if len(names) != 2 || names[1].FileName != "トレント_根_1" {
		t.Errorf("Unexpected names: %+v", names)
	}
}

// TestPartNamerProperties checks that named parts never collide on file name
func TestPartNamerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("named parts get distinct file names", prop.ForAll(
		func(picks []int) bool {
			pool := []string{"頭部", "胴体", "腕", "根"}
			parts := make([]app.Part, len(picks))
			for i, p := range picks {
				parts[i] = testPart(pool[p], i == 0)
			}

			seen := map[string]bool{}
			for _, n := range NewPartNamer(parts).Names(parts, "テスト") {
				if seen[n.FileName] {
					return false
				}
				seen[n.FileName] = true
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 3)),
	))

	properties.Property("display name ignores duplicates", prop.ForAll(
		func(count int) bool {
			parts := make([]app.Part, count)
			for i := range parts {
				parts[i] = testPart("根", i == 0)
			}
			for i, n := range NewPartNamer(parts).Names(parts, "トレント") {
				if n.DisplayName != "トレント\n(根)" {
					return false
				}
				if count > 1 && n.FileName != fmt.Sprintf("トレント_根_%d", i) {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 8),
	))

	properties.TestingRun(t)
}
