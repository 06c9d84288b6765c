package game

// StudioTypes lists the action types owned by the studio domain. RESET_GAME
// is claimed here but handled by the Router, which swaps in DefaultWorld.
func StudioTypes() []ActionType {
	return []ActionType{
		TypeSetStudioLevel,
		TypeUpdateTime,
		TypeAdvanceTime,
		TypeUpdateFinance,
		TypeUpdateMorale,
		TypeUpdateReputation,
		TypeUpdateStats,
		TypeUnlockPlatform,
		TypeUnlockGenre,
		TypeUnlockTechnology,
		TypeToggleGameSpeed,
		TypeResetGame,
	}
}

// ReduceStudio applies a studio-wide scalar action.
func ReduceStudio(w World, a Action) World {
	switch p := a.Payload.(type) {
	case SetStudioLevelPayload:
		w.StudioLevel = int(p)

	case UpdateTimePayload:
		if p.Year != nil {
			w.CurrentDate.Year = *p.Year
		}
		if p.Month != nil {
			w.CurrentDate.Month = *p.Month
		}
		if p.Day != nil {
			w.CurrentDate.Day = *p.Day
		}

	case AdvanceTimePayload:
		if p.Days <= 0 {
			return w
		}
		w.CurrentDate = w.CurrentDate.AddDays(p.Days)

	case UpdateFinancePayload:
		switch {
		case p.Money != nil:
			w.Money = *p.Money
		case p.Amount != nil:
			w.Money += *p.Amount
		}

	case UpdateMoralePayload:
		w.Morale = clamp(float64(p), 0, 100)

	case UpdateReputationPayload:
		w.Reputation = clamp(float64(p), 0, 100)

	case UpdateStatsPayload:
		if p.TotalProjectsCompleted != nil {
			w.Stats.TotalProjectsCompleted = *p.TotalProjectsCompleted
		}
		if p.TotalRevenue != nil {
			w.Stats.TotalRevenue = *p.TotalRevenue
		}
		if p.TotalEmployeesHired != nil {
			w.Stats.TotalEmployeesHired = *p.TotalEmployeesHired
		}

	case UnlockPlatformPayload:
		if list, ok := replaceFirst(w.Platforms, func(x Platform) bool { return x.ID == string(p) }, func(x Platform) Platform {
			x.Unlocked = true
			return x
		}); ok {
			w.Platforms = list
		}

	case UnlockGenrePayload:
		if list, ok := replaceFirst(w.Genres, func(x Genre) bool { return x.ID == string(p) }, func(x Genre) Genre {
			x.Unlocked = true
			return x
		}); ok {
			w.Genres = list
		}

	case UnlockTechnologyPayload:
		// Duplicates are kept.
		w.Technologies = appendCopy(w.Technologies, string(p))

	case ToggleGameSpeedPayload:
		w.GameSpeed = float64(p)
	}
	return w
}
