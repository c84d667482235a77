package eligibility

import (
	"testing"
	"time"

	"github.com/laurab04-design/fossedata-render/internal/profile"
	"github.com/laurab04-design/fossedata-render/internal/show"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testProfile(t *testing.T) *profile.Profile {
	t.Helper()
	p, err := profile.New("Delia", date("2024-05-15"), false, false, false,
		nil, nil,
		[]string{"cc", "challenge certificate"},
		[]string{"rcc", "reserve cc"})
	if err != nil {
		t.Fatalf("building profile: %v", err)
	}
	return p
}

func contains(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}

func TestComputeAgeGatedClasses(t *testing.T) {
	schedule := "Baby Puppy Dog\nMinor Puppy Dog\nPuppy Dog\nJunior Dog\nYearling Dog\nVeteran Dog\nSpecial Veteran Dog"

	tests := []struct {
		name     string
		showDate string
		want     []string
		notWant  []string
	}{
		{
			name:     "five months old",
			showDate: "2024-10-20",
			want:     []string{"baby puppy"},
			notWant:  []string{"minor puppy", "puppy", "junior", "yearling"},
		},
		{
			name:     "eight months old",
			showDate: "2025-01-15",
			want:     []string{"minor puppy", "puppy", "junior"},
			notWant:  []string{"baby puppy", "yearling"},
		},
		{
			name:     "ten months old",
			showDate: "2025-03-15",
			want:     []string{"puppy", "junior"},
			notWant:  []string{"minor puppy", "baby puppy"},
		},
		{
			name:     "fourteen months old",
			showDate: "2025-07-15",
			want:     []string{"junior", "yearling"},
			notWant:  []string{"puppy"},
		},
		{
			name:     "two years old",
			showDate: "2026-05-15",
			want:     []string{},
			notWant:  []string{"junior", "yearling", "puppy"},
		},
		{
			name:     "veteran at seven years",
			showDate: "2031-05-15",
			want:     []string{"veteran"},
			notWant:  []string{"special veteran", "yearling"},
		},
		{
			name:     "special veteran at ten years",
			showDate: "2034-05-15",
			want:     []string{"veteran", "special veteran"},
			notWant:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(Input{
				ScheduleText: schedule,
				ShowType:     show.TypeOpen,
				ShowDate:     date(tt.showDate),
			}, testProfile(t), nil)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}

			for _, want := range tt.want {
				if !contains(result.AllEligible, want) {
					t.Errorf("expected %q in AllEligible, got %v", want, result.AllEligible)
				}
			}
			for _, notWant := range tt.notWant {
				if contains(result.AllEligible, notWant) {
					t.Errorf("did not expect %q in AllEligible, got %v", notWant, result.AllEligible)
				}
			}
		})
	}
}

func TestComputeMonthGranularity(t *testing.T) {
	// Age is whole calendar months ignoring day-of-month: a show on the
	// 1st of the birthday month already counts the full month.
	result, err := Compute(Input{
		ScheduleText: "Puppy Dog",
		ShowType:     show.TypeOpen,
		ShowDate:     date("2025-05-01"), // 14 days before first birthday
	}, testProfile(t), nil)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	// 12 whole months: puppy (6-12) is closed despite the birthday being ahead.
	if contains(result.AllEligible, "puppy") {
		t.Errorf("expected puppy ineligible at computed age 12 months, got %v", result.AllEligible)
	}
}

func TestComputeWinGatedClasses(t *testing.T) {
	schedule := "Maiden\nNovice\nUndergraduate\nGraduate\nPost Graduate\nMid Limit\nLimit\nOpen"
	showDate := date("2026-05-15")

	win := func(n int) profile.WinLog {
		log := make(profile.WinLog, 0, n)
		for i := 0; i < n; i++ {
			log = append(log, profile.WinRecord{Class: "graduate", Award: "1st", ShowDate: "2025-01-01"})
		}
		return log
	}

	tests := []struct {
		name    string
		wins    profile.WinLog
		want    []string
		notWant []string
	}{
		{
			name: "no wins",
			wins: nil,
			want: []string{"maiden", "novice", "undergraduate", "graduate", "post graduate", "mid limit", "limit", "open"},
		},
		{
			name:    "one win closes maiden",
			wins:    win(1),
			want:    []string{"novice", "undergraduate", "graduate", "limit"},
			notWant: []string{"maiden"},
		},
		{
			name:    "three wins",
			wins:    win(3),
			want:    []string{"graduate", "post graduate", "limit"},
			notWant: []string{"maiden", "novice", "undergraduate", "mid limit"},
		},
		{
			name:    "five wins",
			wins:    win(5),
			want:    []string{"limit"},
			notWant: []string{"graduate", "post graduate"},
		},
		{
			name:    "seven wins closes limit",
			wins:    win(7),
			want:    []string{"open"},
			notWant: []string{"limit"},
		},
		{
			name: "puppy class wins do not count",
			wins: profile.WinLog{
				{Class: "Puppy Dog", Award: "1st", ShowDate: "2025-01-01"},
				{Class: "Baby Puppy", Award: "1st", ShowDate: "2025-01-01"},
				{Class: "Any Variety Open", Award: "1st", ShowDate: "2025-01-01"},
			},
			want: []string{"maiden", "novice"},
		},
		{
			name: "non-first placements do not count",
			wins: profile.WinLog{
				{Class: "graduate", Award: "2nd", ShowDate: "2025-01-01"},
				{Class: "graduate", Award: "3rd", ShowDate: "2025-01-01"},
			},
			want: []string{"maiden"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(Input{
				ScheduleText: schedule,
				ShowType:     show.TypeOpen,
				ShowDate:     showDate,
			}, testProfile(t), tt.wins)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}

			for _, want := range tt.want {
				if !contains(result.AllEligible, want) {
					t.Errorf("expected %q in AllEligible, got %v", want, result.AllEligible)
				}
			}
			for _, notWant := range tt.notWant {
				if contains(result.AllEligible, notWant) {
					t.Errorf("did not expect %q in AllEligible, got %v", notWant, result.AllEligible)
				}
			}
		})
	}
}

func TestComputeTopAwardClosesWinGatedClasses(t *testing.T) {
	schedule := "Maiden\nNovice\nLimit\nOpen"

	tests := []struct {
		name      string
		wins      profile.WinLog
		qualified bool
	}{
		{
			name: "three CCs qualify",
			wins: profile.WinLog{
				{Class: "open", Award: "CC", ShowDate: "2025-01-01"},
				{Class: "open", Award: "CC", ShowDate: "2025-02-01"},
				{Class: "open", Award: "CC", ShowDate: "2025-03-01"},
			},
			qualified: true,
		},
		{
			name: "two CCs and five reserves qualify",
			wins: profile.WinLog{
				{Class: "open", Award: "CC", ShowDate: "2025-01-01"},
				{Class: "open", Award: "CC", ShowDate: "2025-02-01"},
				{Class: "open", Award: "RCC", ShowDate: "2025-03-01"},
				{Class: "open", Award: "RCC", ShowDate: "2025-04-01"},
				{Class: "open", Award: "RCC", ShowDate: "2025-05-01"},
				{Class: "open", Award: "RCC", ShowDate: "2025-06-01"},
				{Class: "open", Award: "RCC", ShowDate: "2025-07-01"},
			},
			qualified: true,
		},
		{
			name: "two CCs and four reserves do not qualify",
			wins: profile.WinLog{
				{Class: "open", Award: "CC", ShowDate: "2025-01-01"},
				{Class: "open", Award: "CC", ShowDate: "2025-02-01"},
				{Class: "open", Award: "RCC", ShowDate: "2025-03-01"},
				{Class: "open", Award: "RCC", ShowDate: "2025-04-01"},
				{Class: "open", Award: "RCC", ShowDate: "2025-05-01"},
				{Class: "open", Award: "RCC", ShowDate: "2025-06-01"},
			},
			qualified: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Compute(Input{
				ScheduleText: schedule,
				ShowType:     show.TypeChampionship,
				ShowDate:     date("2026-05-15"),
			}, testProfile(t), tt.wins)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}

			hasWinGated := contains(result.AllEligible, "maiden") ||
				contains(result.AllEligible, "novice") ||
				contains(result.AllEligible, "limit")

			if tt.qualified && hasWinGated {
				t.Errorf("top-award dog should lose win-gated classes, got %v", result.AllEligible)
			}
			if !tt.qualified && !hasWinGated {
				t.Errorf("non-qualified dog should keep win-gated classes, got %v", result.AllEligible)
			}
			// Open never closes.
			if !contains(result.AllEligible, "open") {
				t.Errorf("open class should always be eligible, got %v", result.AllEligible)
			}
		})
	}
}

func TestComputeSpecialClasses(t *testing.T) {
	schedule := "Special Beginners\nSpecial Working\nGood Citizen Dog Scheme"

	tests := []struct {
		name         string
		handlerHasCC bool
		workingQual  bool
		goodCitizen  bool
		want         []string
		notWant      []string
	}{
		{
			name:    "no awards",
			want:    []string{"special beginners"},
			notWant: []string{"special working", "good citizen"},
		},
		{
			name:         "handler CC closes special beginners",
			handlerHasCC: true,
			notWant:      []string{"special beginners"},
		},
		{
			name:        "working qualification opens special working",
			workingQual: true,
			want:        []string{"special beginners", "special working"},
		},
		{
			name:        "good citizen award opens good citizen",
			goodCitizen: true,
			want:        []string{"special beginners", "good citizen"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prof, err := profile.New("Delia", date("2024-05-15"),
				tt.handlerHasCC, tt.workingQual, tt.goodCitizen,
				nil, nil, []string{"cc"}, []string{"rcc"})
			if err != nil {
				t.Fatalf("building profile: %v", err)
			}

			result, err := Compute(Input{
				ScheduleText: schedule,
				ShowType:     show.TypeOpen,
				ShowDate:     date("2025-06-15"),
			}, prof, nil)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}

			for _, want := range tt.want {
				if !contains(result.AllEligible, want) {
					t.Errorf("expected %q in AllEligible, got %v", want, result.AllEligible)
				}
			}
			for _, notWant := range tt.notWant {
				if contains(result.AllEligible, notWant) {
					t.Errorf("did not expect %q in AllEligible, got %v", notWant, result.AllEligible)
				}
			}
		})
	}
}

func TestComputeExclusionsAndAlwaysInclude(t *testing.T) {
	prof, err := profile.New("Delia", date("2024-05-15"), false, false, false,
		[]string{"Junior"}, []string{"brace"}, []string{"cc"}, []string{"rcc"})
	if err != nil {
		t.Fatalf("building profile: %v", err)
	}

	result, err := Compute(Input{
		ScheduleText:     "Puppy Dog\nJunior Dog\nBrace\nOpen Dog",
		ShowType:         show.TypeOpen,
		ShowDate:         date("2025-01-15"),
		ManualExclusions: []string{"OPEN"},
	}, prof, nil)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	// Forced class is present despite matching no predicate.
	if !contains(result.AllEligible, "brace") {
		t.Errorf("expected always-include class in AllEligible, got %v", result.AllEligible)
	}

	// Exclusions are case-insensitive and only affect ToEnter.
	if !contains(result.AllEligible, "junior") || !contains(result.AllEligible, "open") {
		t.Errorf("exclusions must not remove classes from AllEligible, got %v", result.AllEligible)
	}
	if contains(result.ToEnter, "junior") {
		t.Errorf("profile exclusion should remove junior from ToEnter, got %v", result.ToEnter)
	}
	if contains(result.ToEnter, "open") {
		t.Errorf("manual exclusion should remove open from ToEnter, got %v", result.ToEnter)
	}

	// Subset invariant.
	for _, c := range result.ToEnter {
		if !contains(result.AllEligible, c) {
			t.Errorf("ToEnter contains %q which is not in AllEligible", c)
		}
	}
}

func TestComputeClassMustAppearInText(t *testing.T) {
	result, err := Compute(Input{
		ScheduleText: "Puppy Dog only",
		ShowType:     show.TypeOpen,
		ShowDate:     date("2025-01-15"), // junior-age dog
	}, testProfile(t), nil)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if contains(result.AllEligible, "junior") {
		t.Errorf("junior is not scheduled, must not be eligible: %v", result.AllEligible)
	}
	if !contains(result.AllEligible, "puppy") {
		t.Errorf("expected puppy eligible, got %v", result.AllEligible)
	}
}

func TestComputeValidation(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"zero show date", Input{ScheduleText: "Puppy", ShowType: show.TypeOpen}},
		{"show before birth", Input{ScheduleText: "Puppy", ShowType: show.TypeOpen, ShowDate: date("2020-01-01")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compute(tt.in, testProfile(t), nil); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestComputePostalCloseDateFiltersWins(t *testing.T) {
	// A win dated after the postal close date must not count.
	wins := profile.WinLog{
		{Class: "graduate", Award: "1st", ShowDate: "2025-06-01"},
	}

	result, err := Compute(Input{
		ScheduleText:    "Maiden",
		ShowType:        show.TypeOpen,
		ShowDate:        date("2025-07-15"),
		PostalCloseDate: date("2025-05-01"),
	}, testProfile(t), wins)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if !contains(result.AllEligible, "maiden") {
		t.Errorf("win after close date should not close maiden, got %v", result.AllEligible)
	}

	// With no close date, all wins count.
	result, err = Compute(Input{
		ScheduleText: "Maiden",
		ShowType:     show.TypeOpen,
		ShowDate:     date("2025-07-15"),
	}, testProfile(t), wins)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if contains(result.AllEligible, "maiden") {
		t.Errorf("with unknown close date the win counts, maiden should close, got %v", result.AllEligible)
	}
}

func TestComputeEightMonthOldEntersBothClasses(t *testing.T) {
	// DOB 2024-05-15, show 2025-01-15: eight months old; both puppy and
	// junior are scheduled and in age range.
	result, err := Compute(Input{
		ScheduleText: "Puppy Dog Class\nJunior Dog Class",
		ShowType:     show.TypeOpen,
		ShowDate:     date("2025-01-15"),
	}, testProfile(t), nil)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if !contains(result.AllEligible, "puppy") || !contains(result.AllEligible, "junior") {
		t.Fatalf("expected puppy and junior eligible, got %v", result.AllEligible)
	}
	if len(result.ToEnter) != 2 {
		t.Errorf("expected 2 classes to enter, got %v", result.ToEnter)
	}
}

func TestComputeDeterministicOrder(t *testing.T) {
	in := Input{
		ScheduleText: "Yearling\nJunior\nPuppy",
		ShowType:     show.TypeOpen,
		ShowDate:     date("2025-07-15"), // 14 months: junior + yearling
	}

	first, err := Compute(in, testProfile(t), nil)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	second, err := Compute(in, testProfile(t), nil)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if len(first.AllEligible) != len(second.AllEligible) {
		t.Fatalf("repeated runs differ: %v vs %v", first.AllEligible, second.AllEligible)
	}
	for i := range first.AllEligible {
		if first.AllEligible[i] != second.AllEligible[i] {
			t.Errorf("output order not stable: %v vs %v", first.AllEligible, second.AllEligible)
		}
	}
}
