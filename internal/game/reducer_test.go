package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func busyWorld() World {
	w := DefaultWorld()
	w = Reduce(w, AddProject(Project{ID: "p1", Name: "Blaster", RequiredPoints: 200}))
	w = Reduce(w, HireEmployee(Employee{ID: "e1", Skills: map[string]float64{"art": 20}}, 1000))
	w = Reduce(w, AssignEmployee("e1", "p1"))
	w = Reduce(w, BuyStock("NIMBUS", 10, 95))
	w = Reduce(w, AddNotification(Notification{ID: "n1", Title: "Welcome"}))
	w = Reduce(w, UnlockAchievement(Achievement{ID: "first-hire", Reward: 500}))
	w = Reduce(w, AdvanceTime(40))
	w = Reduce(w, UnlockTechnology("sprites"))
	return w
}

func TestResetReturnsDefaultWorld(t *testing.T) {
	for name, w := range map[string]World{
		"default": DefaultWorld(),
		"busy":    busyWorld(),
		"zero":    {},
	} {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(DefaultWorld(), Reduce(w, ResetGame())); diff != "" {
				t.Fatalf("reset mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnknownActionIsNoop(t *testing.T) {
	w := busyWorld()
	for name, a := range map[string]Action{
		"unknown type":  {Type: "UNKNOWN_ACTION_TYPE", Payload: RawPayload(`{"x":1}`)},
		"empty type":    {},
		"nil payload":   {Type: TypeBuyStock},
		"wrong payload": {Type: TypeBuyStock, Payload: UnlockGenrePayload("rpg")},
	} {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(w, Reduce(w, a)); diff != "" {
				t.Fatalf("state changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRouterComposesOverlappingDomains(t *testing.T) {
	const bonus ActionType = "BONUS"
	double := Domain{Name: "double", Types: []ActionType{bonus}, Reduce: func(w World, _ Action) World {
		w.Money *= 2
		return w
	}}
	add := Domain{Name: "add", Types: []ActionType{bonus}, Reduce: func(w World, _ Action) World {
		w.Money += 10
		return w
	}}

	w := worldWithMoney(5)
	if got := NewRouter(double, add).Reduce(w, Action{Type: bonus}); got.Money != 20 {
		t.Fatalf("double then add = %v, want 20", got.Money)
	}
	if got := NewRouter(add, double).Reduce(w, Action{Type: bonus}); got.Money != 30 {
		t.Fatalf("add then double = %v, want 30", got.Money)
	}

	r := NewRouter(double, add)
	if diff := cmp.Diff([]string{"double", "add"}, r.Owners(bonus)); diff != "" {
		t.Fatalf("owners mismatch (-want +got):\n%s", diff)
	}
	if r.Claims(TypeBuyStock) {
		t.Fatal("router claims a type no domain registered")
	}
}

func TestResetBypassesDomains(t *testing.T) {
	poison := Domain{Name: "poison", Types: []ActionType{TypeResetGame}, Reduce: func(w World, _ Action) World {
		w.Money = -1
		return w
	}}
	got := NewRouter(poison).Reduce(busyWorld(), ResetGame())
	if got.Money != StartingMoney {
		t.Fatalf("money = %v, reset must not reach domain reducers", got.Money)
	}
}

func TestDefaultRouterClaimsCatalogue(t *testing.T) {
	r := DefaultRouter()
	for typ := range payloadDecoders {
		if !r.Claims(typ) {
			t.Fatalf("%s not claimed", typ)
		}
	}
	if got, want := len(r.Types()), len(payloadDecoders); got != want {
		t.Fatalf("types = %d, want %d", got, want)
	}
}

func TestDefaultWorldFreshContainers(t *testing.T) {
	a, b := DefaultWorld(), DefaultWorld()
	a.Stocks[0].Price = -1
	a.Platforms[1].Unlocked = true
	if b.Stocks[0].Price == -1 || b.Platforms[1].Unlocked {
		t.Fatal("DefaultWorld shares containers between calls")
	}
	if b.Employees == nil || b.Portfolio.Holdings == nil || b.Notifications == nil {
		t.Fatal("collections should start empty, not nil")
	}
}
