package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUpdateFinance(t *testing.T) {
	money, amount := 500.0, 25.0
	tests := map[string]struct {
		payload UpdateFinancePayload
		want    float64
	}{
		"absolute":          {payload: UpdateFinancePayload{Money: &money}, want: 500},
		"delta":             {payload: UpdateFinancePayload{Amount: &amount}, want: 1025},
		"absolute wins":     {payload: UpdateFinancePayload{Money: &money, Amount: &amount}, want: 500},
		"neither is a noop": {payload: UpdateFinancePayload{}, want: 1000},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Reduce(worldWithMoney(1000), Action{Type: TypeUpdateFinance, Payload: tc.payload})
			if got.Money != tc.want {
				t.Fatalf("money = %v, want %v", got.Money, tc.want)
			}
		})
	}
}

func TestMoraleAndReputationClamped(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{in: -5, want: 0},
		{in: 0, want: 0},
		{in: 42.5, want: 42.5},
		{in: 100, want: 100},
		{in: 180, want: 100},
	}
	for _, tc := range tests {
		w := Reduce(DefaultWorld(), UpdateMorale(tc.in))
		if w.Morale != tc.want {
			t.Fatalf("morale(%v) = %v, want %v", tc.in, w.Morale, tc.want)
		}
		w = Reduce(w, UpdateReputation(tc.in))
		if w.Reputation != tc.want {
			t.Fatalf("reputation(%v) = %v, want %v", tc.in, w.Reputation, tc.want)
		}
	}
}

func TestTimeActions(t *testing.T) {
	w := DefaultWorld()
	w.CurrentDate = GameDate{Year: 1999, Month: 12, Day: 30}

	got := Reduce(w, AdvanceTime(3))
	if want := (GameDate{Year: 2000, Month: 1, Day: 2}); got.CurrentDate != want {
		t.Fatalf("date = %+v, want %+v", got.CurrentDate, want)
	}
	if same := Reduce(w, AdvanceTime(0)); same.CurrentDate != w.CurrentDate {
		t.Fatal("advancing zero days moved the calendar")
	}

	month := 6
	got = Reduce(w, UpdateTime(DateUpdate{Month: &month}))
	if want := (GameDate{Year: 1999, Month: 6, Day: 30}); got.CurrentDate != want {
		t.Fatalf("date = %+v, want %+v", got.CurrentDate, want)
	}

	leap := GameDate{Year: 2024, Month: 2, Day: 28}.AddDays(1)
	if leap != (GameDate{Year: 2024, Month: 2, Day: 29}) {
		t.Fatalf("leap day = %+v", leap)
	}
}

func TestUnlocks(t *testing.T) {
	w := DefaultWorld()
	got := Reduce(w, UnlockPlatform("console"))
	got = Reduce(got, UnlockGenre("rpg"))
	got = Reduce(got, UnlockTechnology("3d-engine"))
	got = Reduce(got, UnlockTechnology("3d-engine"))

	for _, p := range got.Platforms {
		if p.ID == "console" && !p.Unlocked {
			t.Fatal("console still locked")
		}
	}
	for _, g := range got.Genres {
		if g.ID == "rpg" && !g.Unlocked {
			t.Fatal("rpg still locked")
		}
	}
	if diff := cmp.Diff([]string{"3d-engine", "3d-engine"}, got.Technologies); diff != "" {
		t.Fatalf("technologies mismatch (-want +got):\n%s", diff)
	}
	for _, p := range w.Platforms {
		if p.ID == "console" && p.Unlocked {
			t.Fatal("previous world was mutated")
		}
	}

	same := Reduce(w, UnlockPlatform("hologram"))
	if diff := cmp.Diff(w, same); diff != "" {
		t.Fatalf("unknown platform changed state (-want +got):\n%s", diff)
	}
}

func TestScalarStudioActions(t *testing.T) {
	total := 7
	w := Reduce(DefaultWorld(), SetStudioLevel(3))
	w = Reduce(w, ToggleGameSpeed(-2.5))
	w = Reduce(w, UpdateStats(StatsUpdate{TotalProjectsCompleted: &total}))

	if w.StudioLevel != 3 || w.GameSpeed != -2.5 || w.Stats.TotalProjectsCompleted != 7 {
		t.Fatalf("world = level %d speed %v stats %+v", w.StudioLevel, w.GameSpeed, w.Stats)
	}
}
