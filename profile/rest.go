package profile

import "strconv"

// RestModel is the JSON:API representation of a compatibility profile served
// by the profile store.
type RestModel struct {
	MemberId                    uint32 `json:"-"`
	ReligiousBackground         string `json:"religiousBackground"`
	MarriageUnderstanding       string `json:"marriageUnderstanding,omitempty"`
	LifeGoals                   string `json:"lifeGoals,omitempty"`
	PartnerTraits               string `json:"partnerTraits,omitempty"`
	HobbiesInterests            string `json:"hobbiesInterests,omitempty"`
	ReligiousPracticeImportance string `json:"religiousPracticeImportance,omitempty"`
	SpiritualGrowth             string `json:"spiritualGrowth,omitempty"`
	SectPreference              string `json:"sectPreference,omitempty"`
	ChildrenPreference          string `json:"childrenPreference,omitempty"`
	ConflictResolution          string `json:"conflictResolution,omitempty"`
}

func (r RestModel) GetName() string {
	return "compatibility-profiles"
}

func (r RestModel) GetID() string {
	return strconv.Itoa(int(r.MemberId))
}

func (r *RestModel) SetID(id string) error {
	memberId, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return err
	}
	r.MemberId = uint32(memberId)
	return nil
}

// Extract converts a rest model to the domain model
func Extract(rm RestModel) Model {
	return NewModel(rm.MemberId, ReligiousBackground(rm.ReligiousBackground), Answers{
		MarriageUnderstanding:       rm.MarriageUnderstanding,
		LifeGoals:                   rm.LifeGoals,
		PartnerTraits:               rm.PartnerTraits,
		HobbiesInterests:            rm.HobbiesInterests,
		ReligiousPracticeImportance: rm.ReligiousPracticeImportance,
		SpiritualGrowth:             rm.SpiritualGrowth,
		SectPreference:              rm.SectPreference,
		ChildrenPreference:          rm.ChildrenPreference,
		ConflictResolution:          rm.ConflictResolution,
	})
}

// Transform converts a domain model to its rest representation
func Transform(m Model) RestModel {
	a := m.Answers()
	return RestModel{
		MemberId:                    m.MemberId(),
		ReligiousBackground:         string(m.Background()),
		MarriageUnderstanding:       a.MarriageUnderstanding,
		LifeGoals:                   a.LifeGoals,
		PartnerTraits:               a.PartnerTraits,
		HobbiesInterests:            a.HobbiesInterests,
		ReligiousPracticeImportance: a.ReligiousPracticeImportance,
		SpiritualGrowth:             a.SpiritualGrowth,
		SectPreference:              a.SectPreference,
		ChildrenPreference:          a.ChildrenPreference,
		ConflictResolution:          a.ConflictResolution,
	}
}
