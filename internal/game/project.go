package game

import (
	"math"
	"slices"
)

// Growth applied per fully-developed project's worth of points.
const (
	qualityPerProject    = 10.0
	popularityPerProject = 5.0
)

// ProjectTypes lists the action types owned by the project domain.
func ProjectTypes() []ActionType {
	return []ActionType{
		TypeAddProject,
		TypeUpdateProject,
		TypeCompleteProject,
		TypeDeleteProject,
		TypeDevelopProjects,
	}
}

// ReduceProjects applies a project action.
func ReduceProjects(w World, a Action) World {
	switch p := a.Payload.(type) {
	case AddProjectPayload:
		project := Project(p)
		if project.ID == "" || w.projectExists(project.ID) {
			return w
		}
		w.Projects = appendCopy(w.Projects, project)

	case UpdateProjectPayload:
		projects, ok := replaceFirst(w.Projects, projectID(p.ID), p.Updates.apply)
		if !ok {
			return w
		}
		w.Projects = projects

	case CompleteProjectPayload:
		// The payload is appended even when the id is not in progress; callers
		// guard against completing twice.
		project := Project(p)
		w.Projects, _ = removeAll(w.Projects, projectID(project.ID))
		w.CompletedProjects = appendCopy(w.CompletedProjects, project)
		w.Money += project.Revenue
		w.Stats.TotalProjectsCompleted++
		w.Stats.TotalRevenue += project.Revenue

	case DeleteProjectPayload:
		projects, ok := removeAll(w.Projects, projectID(string(p)))
		if !ok {
			return w
		}
		w.Projects = projects

	case DevelopProjectsPayload:
		return developProjects(w, p.Ticks)
	}
	return w
}

func (w World) projectExists(id string) bool {
	return slices.ContainsFunc(w.Projects, projectID(id)) ||
		slices.ContainsFunc(w.CompletedProjects, projectID(id))
}

func (u ProjectUpdate) apply(p Project) Project {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Platform != nil {
		p.Platform = *u.Platform
	}
	if u.Genre != nil {
		p.Genre = *u.Genre
	}
	if u.Size != nil {
		p.Size = *u.Size
	}
	if u.Progress != nil {
		p.Progress = *u.Progress
	}
	if u.Quality != nil {
		p.Quality = *u.Quality
	}
	if u.Popularity != nil {
		p.Popularity = *u.Popularity
	}
	if u.Revenue != nil {
		p.Revenue = *u.Revenue
	}
	if u.Shipped != nil {
		p.Shipped = *u.Shipped
	}
	return p
}

// developProjects credits every assigned employee's average skill, times
// ticks, to the project they work on. Progress stops at RequiredPoints.
func developProjects(w World, ticks float64) World {
	if ticks <= 0 {
		return w
	}
	points := map[string]float64{}
	for _, e := range w.Employees {
		if e.AssignedProjectID != "" {
			points[e.AssignedProjectID] += e.AverageSkill() * ticks
		}
	}
	if len(points) == 0 {
		return w
	}

	projects := make([]Project, len(w.Projects))
	changed := false
	for i, p := range w.Projects {
		projects[i] = p
		gained := points[p.ID]
		if gained <= 0 || p.Shipped || p.RequiredPoints <= 0 || p.Progress >= p.RequiredPoints {
			continue
		}
		gained = math.Min(gained, p.RequiredPoints-p.Progress)
		share := gained / p.RequiredPoints
		p.Progress += gained
		p.Quality = math.Min(100, p.Quality+share*qualityPerProject)
		p.Popularity = math.Min(100, p.Popularity+share*popularityPerProject)
		projects[i] = p
		changed = true
	}
	if !changed {
		return w
	}
	w.Projects = projects
	return w
}
