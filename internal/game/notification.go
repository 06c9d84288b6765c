package game

import "slices"

// MaxNotifications bounds the notification history; the oldest entries are
// dropped first.
const MaxNotifications = 50

// NotificationTypes lists the action types owned by the notification domain.
func NotificationTypes() []ActionType {
	return []ActionType{
		TypeAddNotification,
		TypeRemoveNotification,
		TypeClearAllNotifications,
		TypeUnlockAchievement,
	}
}

// ReduceNotifications applies a notification or achievement action.
func ReduceNotifications(w World, a Action) World {
	switch p := a.Payload.(type) {
	case AddNotificationPayload:
		n := Notification(p)
		if n.ID == "" || slices.ContainsFunc(w.Notifications, func(x Notification) bool { return x.ID == n.ID }) {
			return w
		}
		list := appendCopy(w.Notifications, n)
		if over := len(list) - MaxNotifications; over > 0 {
			list = slices.Clone(list[over:])
		}
		w.Notifications = list

	case RemoveNotificationPayload:
		list, ok := removeAll(w.Notifications, func(x Notification) bool { return x.ID == string(p) })
		if !ok {
			return w
		}
		w.Notifications = list

	case ClearAllNotificationsPayload:
		w.Notifications = []Notification{}

	case UnlockAchievementPayload:
		ach := Achievement(p)
		if w.HasAchievement(ach.ID) {
			return w
		}
		ach.Unlocked = true
		w.Achievements = appendCopy(w.Achievements, ach)
		w.Money += ach.Reward
	}
	return w
}

// HasAchievement reports whether the achievement was already unlocked.
func (w World) HasAchievement(id string) bool {
	return slices.ContainsFunc(w.Achievements, func(a Achievement) bool { return a.ID == id })
}
