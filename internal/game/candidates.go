package game

import "fmt"

// Candidate is a job applicant offered to the player, with the one-off cost
// of hiring them.
type Candidate struct {
	Employee   Employee `json:"employee"`
	HiringCost float64  `json:"hiringCost"`
}

var (
	candidateFirst  = []string{"Maya", "Arun", "Iris", "Noah", "Tara", "Kian", "Lea", "Ravi", "Nora", "Evan", "Zara", "Omar", "Lina", "Kade", "Ava", "Dion", "Sana", "Milo", "Rhea", "Theo"}
	candidateLast   = []string{"Lee", "Vale", "Knox", "Pike", "Sol", "Moss", "Rowe", "Jain", "Park", "Reid", "Cross", "Quill", "Stone", "Wren", "Bose", "Cho", "Kent", "Ford", "Hart", "Yoon"}
	candidateRoles  = []string{"programmer", "designer", "artist", "sound", "producer", "tester"}
	candidateTraits = []string{"disciplined", "innovative", "charismatic", "conservative", "visionary", "resilient", "strategic", "meticulous", "adaptive", "ambitious"}
)

// skillsFor maps a role to the skills it rates.
var skillsFor = map[string][]string{
	"programmer": {"programming", "design"},
	"designer":   {"design", "writing"},
	"artist":     {"art", "design"},
	"sound":      {"sound", "art"},
	"producer":   {"management", "writing"},
	"tester":     {"programming", "management"},
}

// Candidates returns a deterministic pool of n applicants. The same n always
// yields the same people, minus ids, which are minted on hire.
func Candidates(n int) []Candidate {
	out := make([]Candidate, 0, n)
	for i := range n {
		role := candidateRoles[i%len(candidateRoles)]
		base := float64(20 + (i*13)%60)
		skills := map[string]float64{}
		for j, s := range skillsFor[role] {
			skills[s] = base - float64(j*10)
		}
		salary := float64(400 + (i%15)*95)
		out = append(out, Candidate{
			Employee: Employee{
				Name:        fmt.Sprintf("%s %s", candidateFirst[i%len(candidateFirst)], candidateLast[(i*7)%len(candidateLast)]),
				Role:        role,
				Skills:      skills,
				Personality: candidateTraits[(i*3)%len(candidateTraits)],
				Salary:      salary,
			},
			HiringCost: salary * 2,
		})
	}
	return out
}
