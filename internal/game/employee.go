package game

import (
	"maps"
	"slices"
)

// EmployeeTypes lists the action types owned by the employee domain.
func EmployeeTypes() []ActionType {
	return []ActionType{
		TypeHireEmployee,
		TypeFireEmployee,
		TypeUpdateEmployee,
		TypeAssignEmployee,
	}
}

// ReduceEmployees applies an employee action.
//
// Hiring does not check affordability and assignment does not check that the
// project exists; both are the caller's job.
func ReduceEmployees(w World, a Action) World {
	switch p := a.Payload.(type) {
	case HireEmployeePayload:
		e := p.Employee
		if e.ID == "" || slices.ContainsFunc(w.Employees, employeeID(e.ID)) {
			return w
		}
		e.Skills = maps.Clone(e.Skills)
		w.Employees = appendCopy(w.Employees, e)
		w.Money -= p.HiringCost
		w.Stats.TotalEmployeesHired++

	case FireEmployeePayload:
		employees, ok := removeAll(w.Employees, employeeID(string(p)))
		if !ok {
			return w
		}
		w.Employees = employees

	case UpdateEmployeePayload:
		employees, ok := replaceFirst(w.Employees, employeeID(p.ID), p.Updates.apply)
		if !ok {
			return w
		}
		w.Employees = employees

	case AssignEmployeePayload:
		employees, ok := replaceFirst(w.Employees, employeeID(p.EmployeeID), func(e Employee) Employee {
			e.AssignedProjectID = p.ProjectID
			return e
		})
		if !ok {
			return w
		}
		w.Employees = employees
	}
	return w
}

func (u EmployeeUpdate) apply(e Employee) Employee {
	if u.Name != nil {
		e.Name = *u.Name
	}
	if u.Role != nil {
		e.Role = *u.Role
	}
	if u.Skills != nil {
		e.Skills = maps.Clone(u.Skills)
	}
	if u.SkillPoints != nil {
		e.SkillPoints = *u.SkillPoints
	}
	if u.Personality != nil {
		e.Personality = *u.Personality
	}
	if u.Salary != nil {
		e.Salary = *u.Salary
	}
	return e
}
