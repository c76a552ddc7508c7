package models

// CaseStatus is the lifecycle state of a Case.
type CaseStatus string

const (
	CaseStatusOpen       CaseStatus = "open"
	CaseStatusInProgress CaseStatus = "in_progress"
	CaseStatusClosed     CaseStatus = "closed"
	CaseStatusArchived   CaseStatus = "archived"
)

// CasePriority is the urgency assigned to a Case.
type CasePriority string

const (
	CasePriorityLow      CasePriority = "low"
	CasePriorityMedium   CasePriority = "medium"
	CasePriorityHigh     CasePriority = "high"
	CasePriorityCritical CasePriority = "critical"
)

// CaseCategory classifies the incident behind a Case.
type CaseCategory string

const (
	CaseCategoryTheft      CaseCategory = "theft"
	CaseCategoryAssault    CaseCategory = "assault"
	CaseCategoryFraud      CaseCategory = "fraud"
	CaseCategoryTraffic    CaseCategory = "traffic"
	CaseCategoryDomestic   CaseCategory = "domestic"
	CaseCategoryDrug       CaseCategory = "drug"
	CaseCategoryCybercrime CaseCategory = "cybercrime"
	CaseCategoryOther      CaseCategory = "other"
)

// Rank is a Personnel rank, lowest first.
type Rank string

const (
	RankOfficer    Rank = "officer"
	RankSergeant   Rank = "sergeant"
	RankLieutenant Rank = "lieutenant"
	RankCaptain    Rank = "captain"
	RankMajor      Rank = "major"
	RankChief      Rank = "chief"
)

// PersonnelStatus is the employment status of a Personnel record.
type PersonnelStatus string

const (
	PersonnelStatusActive    PersonnelStatus = "active"
	PersonnelStatusInactive  PersonnelStatus = "inactive"
	PersonnelStatusSuspended PersonnelStatus = "suspended"
	PersonnelStatusRetired   PersonnelStatus = "retired"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var (
	CaseStatuses      = []CaseStatus{CaseStatusOpen, CaseStatusInProgress, CaseStatusClosed, CaseStatusArchived}
	CasePriorities    = []CasePriority{CasePriorityLow, CasePriorityMedium, CasePriorityHigh, CasePriorityCritical}
	CaseCategories    = []CaseCategory{CaseCategoryTheft, CaseCategoryAssault, CaseCategoryFraud, CaseCategoryTraffic, CaseCategoryDomestic, CaseCategoryDrug, CaseCategoryCybercrime, CaseCategoryOther}
	Ranks             = []Rank{RankOfficer, RankSergeant, RankLieutenant, RankCaptain, RankMajor, RankChief}
	PersonnelStatuses = []PersonnelStatus{PersonnelStatusActive, PersonnelStatusInactive, PersonnelStatusSuspended, PersonnelStatusRetired}
	Genders           = []Gender{GenderMale, GenderFemale, GenderOther}
)

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func (s CaseStatus) Valid() bool { return contains(CaseStatuses, s) }
func (p CasePriority) Valid() bool { return contains(CasePriorities, p) }
func (c CaseCategory) Valid() bool { return contains(CaseCategories, c) }
func (r Rank) Valid() bool { return contains(Ranks, r) }
func (s PersonnelStatus) Valid() bool { return contains(PersonnelStatuses, s) }
func (g Gender) Valid() bool { return contains(Genders, g) }
