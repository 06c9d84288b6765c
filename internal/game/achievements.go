package game

// AchievementRule pairs an achievement with the condition that unlocks it.
type AchievementRule struct {
	Achievement Achievement
	Condition   func(World) bool
}

// AchievementRules returns the achievement catalogue in display order.
func AchievementRules() []AchievementRule {
	return []AchievementRule{
		{
			Achievement: Achievement{ID: "first-game", Title: "First Release", Description: "Ship your first game.", Reward: 1000},
			Condition:   func(w World) bool { return w.Stats.TotalProjectsCompleted >= 1 },
		},
		{
			Achievement: Achievement{ID: "first-hire", Title: "Not Alone", Description: "Hire your first employee.", Reward: 500},
			Condition:   func(w World) bool { return w.Stats.TotalEmployeesHired >= 1 },
		},
		{
			Achievement: Achievement{ID: "team-builder", Title: "Team Builder", Description: "Have five employees on staff.", Reward: 2500},
			Condition:   func(w World) bool { return len(w.Employees) >= 5 },
		},
		{
			Achievement: Achievement{ID: "investor", Title: "Investor", Description: "Own shares in any company.", Reward: 500},
			Condition:   func(w World) bool { return len(w.Portfolio.Holdings) > 0 },
		},
		{
			Achievement: Achievement{ID: "market-maven", Title: "Market Maven", Description: "Realize 10,000 in trading gains.", Reward: 5000},
			Condition:   func(w World) bool { return w.Portfolio.RealizedGainLoss >= 10000 },
		},
		{
			Achievement: Achievement{ID: "hit-maker", Title: "Hit Maker", Description: "Ship ten games.", Reward: 10000},
			Condition:   func(w World) bool { return w.Stats.TotalProjectsCompleted >= 10 },
		},
		{
			Achievement: Achievement{ID: "millionaire", Title: "Millionaire", Description: "Hold 1,000,000 in cash.", Reward: 0},
			Condition:   func(w World) bool { return w.Money >= 1_000_000 },
		},
	}
}

// PendingAchievements lists achievements whose condition holds but which
// have not been unlocked yet.
func PendingAchievements(w World) []Achievement {
	var out []Achievement
	for _, r := range AchievementRules() {
		if !w.HasAchievement(r.Achievement.ID) && r.Condition(w) {
			out = append(out, r.Achievement)
		}
	}
	return out
}
