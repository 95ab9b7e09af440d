package profile

// ReligiousBackground selects which compatibility questions apply to a member
type ReligiousBackground string

const (
	BackgroundMuslim       ReligiousBackground = "MUSLIM"
	BackgroundNonReligious ReligiousBackground = "NON_RELIGIOUS"
	BackgroundOther        ReligiousBackground = "OTHER"
)

// ValidBackground returns true for a recognized religious background value
func ValidBackground(b ReligiousBackground) bool {
	switch b {
	case BackgroundMuslim, BackgroundNonReligious, BackgroundOther:
		return true
	default:
		return false
	}
}

// Answers holds the free-text compatibility answers. The first four apply to
// every member; the remainder apply based on religious background.
type Answers struct {
	MarriageUnderstanding       string
	LifeGoals                   string
	PartnerTraits               string
	HobbiesInterests            string
	ReligiousPracticeImportance string
	SpiritualGrowth             string
	SectPreference              string
	ChildrenPreference          string
	ConflictResolution          string
}

// Model is an immutable view of a member's compatibility profile
type Model struct {
	memberId   uint32
	background ReligiousBackground
	answers    Answers
}

func (m Model) MemberId() uint32 {
	return m.memberId
}

func (m Model) Background() ReligiousBackground {
	return m.background
}

func (m Model) Answers() Answers {
	return m.answers
}

// NewModel creates a compatibility profile model
func NewModel(memberId uint32, background ReligiousBackground, answers Answers) Model {
	return Model{
		memberId:   memberId,
		background: background,
		answers:    answers,
	}
}
