package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHireEmployee(t *testing.T) {
	w := worldWithMoney(1000)
	skills := map[string]float64{"programming": 40}
	got := Reduce(w, HireEmployee(Employee{Name: "Maya Lee", Skills: skills}, 1500))

	if len(got.Employees) != 1 || got.Employees[0].ID == "" {
		t.Fatalf("employees = %+v", got.Employees)
	}
	// No affordability check: money may go negative.
	if got.Money != -500 {
		t.Fatalf("money = %v, want -500", got.Money)
	}
	if got.Stats.TotalEmployeesHired != 1 {
		t.Fatalf("totalEmployeesHired = %d, want 1", got.Stats.TotalEmployeesHired)
	}

	skills["programming"] = 99
	if got.Employees[0].Skills["programming"] != 40 {
		t.Fatal("employee shares the caller's skills map")
	}
}

func TestUpdateAndFireEmployee(t *testing.T) {
	w := Reduce(DefaultWorld(), HireEmployee(Employee{ID: "e1", Name: "Arun", Role: "programmer", Skills: map[string]float64{"programming": 10}}, 0))

	role := "designer"
	updated := Reduce(w, UpdateEmployee("e1", EmployeeUpdate{Role: &role, Skills: map[string]float64{"design": 60}}))
	e := updated.Employees[0]
	if e.Name != "Arun" || e.Role != "designer" {
		t.Fatalf("employee = %+v", e)
	}
	if diff := cmp.Diff(map[string]float64{"design": 60}, e.Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
	if w.Employees[0].Role != "programmer" {
		t.Fatal("previous world was mutated")
	}

	fired := Reduce(updated, FireEmployee("e1"))
	if len(fired.Employees) != 0 {
		t.Fatalf("employees = %+v", fired.Employees)
	}
	if fired.Stats.TotalEmployeesHired != 1 {
		t.Fatal("firing must not decrement hire stats")
	}
}

func TestAssignEmployeeDanglingReference(t *testing.T) {
	w := DefaultWorld()
	w = Reduce(w, AddProject(Project{ID: "p1", RequiredPoints: 10}))
	w = Reduce(w, HireEmployee(Employee{ID: "e1"}, 0))
	w = Reduce(w, AssignEmployee("e1", "p1"))

	if p, ok := w.AssignedProject(w.Employees[0]); !ok || p.ID != "p1" {
		t.Fatalf("assigned = %+v, %v", p, ok)
	}

	w = Reduce(w, DeleteProject("p1"))
	if w.Employees[0].AssignedProjectID != "p1" {
		t.Fatal("reference should be kept as-is")
	}
	if _, ok := w.AssignedProject(w.Employees[0]); ok {
		t.Fatal("dangling reference must read as unassigned")
	}
	// Developing with a dangling assignment is harmless.
	w = Reduce(w, DevelopProjects(3))

	w = Reduce(w, AssignEmployee("e1", ""))
	if w.Employees[0].AssignedProjectID != "" {
		t.Fatal("empty project id should clear the assignment")
	}
}
