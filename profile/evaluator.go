package profile

import "strings"

func filled(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// IsComplete evaluates whether every question applicable to the member's
// religious background has a non-blank answer. Evaluation is pure; callers
// fetch fresh profiles and apply this at decision time.
func IsComplete(m Model) bool {
	a := m.Answers()
	if !filled(a.MarriageUnderstanding, a.LifeGoals, a.PartnerTraits, a.HobbiesInterests) {
		return false
	}
	switch m.Background() {
	case BackgroundMuslim:
		return filled(a.ReligiousPracticeImportance, a.SpiritualGrowth, a.SectPreference)
	case BackgroundNonReligious, BackgroundOther:
		return filled(a.ChildrenPreference, a.ConflictResolution)
	default:
		return false
	}
}

// BothComplete evaluates mutual compatibility completion for a pairing
func BothComplete(a Model, b Model) bool {
	return IsComplete(a) && IsComplete(b)
}
