package game

import "slices"

// Reducer is a pure state transition.
type Reducer func(World, Action) World

// Domain pairs the action types a slice of the World answers to with the
// reducer that owns that slice.
type Domain struct {
	Name   string
	Types  []ActionType
	Reduce Reducer
}

// Domains returns the built-in domains in dispatch order.
func Domains() []Domain {
	return []Domain{
		{Name: "project", Types: ProjectTypes(), Reduce: ReduceProjects},
		{Name: "employee", Types: EmployeeTypes(), Reduce: ReduceEmployees},
		{Name: "stock", Types: StockTypes(), Reduce: ReduceStocks},
		{Name: "notification", Types: NotificationTypes(), Reduce: ReduceNotifications},
		{Name: "studio", Types: StudioTypes(), Reduce: ReduceStudio},
	}
}

type route struct {
	name   string
	types  map[ActionType]struct{}
	reduce Reducer
}

// Router threads an action through every domain claiming its type, in the
// order the domains were given. Two domains may claim the same type; the
// result is then the composition of both.
type Router struct {
	routes []route
}

func NewRouter(domains ...Domain) *Router {
	r := &Router{routes: make([]route, 0, len(domains))}
	for _, d := range domains {
		types := make(map[ActionType]struct{}, len(d.Types))
		for _, t := range d.Types {
			types[t] = struct{}{}
		}
		r.routes = append(r.routes, route{name: d.Name, types: types, reduce: d.Reduce})
	}
	return r
}

// Reduce applies a to w. RESET_GAME short-circuits to DefaultWorld.
func (r *Router) Reduce(w World, a Action) World {
	if a.Type == TypeResetGame {
		return DefaultWorld()
	}
	for _, rt := range r.routes {
		if _, ok := rt.types[a.Type]; ok {
			w = rt.reduce(w, a)
		}
	}
	return w
}

// Owners names the domains claiming t, in dispatch order.
func (r *Router) Owners(t ActionType) []string {
	var out []string
	for _, rt := range r.routes {
		if _, ok := rt.types[t]; ok {
			out = append(out, rt.name)
		}
	}
	return out
}

// Claims reports whether any domain handles t.
func (r *Router) Claims(t ActionType) bool {
	return len(r.Owners(t)) > 0
}

// Types returns every claimed action type, sorted.
func (r *Router) Types() []ActionType {
	seen := map[ActionType]struct{}{}
	for _, rt := range r.routes {
		for t := range rt.types {
			seen[t] = struct{}{}
		}
	}
	out := make([]ActionType, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

var defaultRouter = NewRouter(Domains()...)

// DefaultRouter is the router over the built-in domains.
func DefaultRouter() *Router { return defaultRouter }

// Reduce applies a to w through the built-in domains.
func Reduce(w World, a Action) World {
	return defaultRouter.Reduce(w, a)
}

// Replay folds actions over start in order.
func Replay(start World, actions []Action) World {
	w := start
	for _, a := range actions {
		w = Reduce(w, a)
	}
	return w
}
