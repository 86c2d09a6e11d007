package assessment

import (
	"strings"
	"time"
)

// Condition is one of the closed set of screening outcomes.
type Condition string

const (
	ConditionDepression         Condition = "Depression"
	ConditionAnxiety            Condition = "Anxiety"
	ConditionStress             Condition = "Stress"
	ConditionADHD               Condition = "ADHD"
	ConditionPTSD               Condition = "PTSD"
	ConditionOCD                Condition = "OCD"
	ConditionBipolar            Condition = "Bipolar Disorder"
	ConditionEatingDisorder     Condition = "Eating Disorder"
	ConditionAdjustmentDisorder Condition = "Adjustment Disorder"
	ConditionNormal             Condition = "Normal"
)

var allConditions = []Condition{
	ConditionDepression,
	ConditionAnxiety,
	ConditionStress,
	ConditionADHD,
	ConditionPTSD,
	ConditionOCD,
	ConditionBipolar,
	ConditionEatingDisorder,
	ConditionAdjustmentDisorder,
	ConditionNormal,
}

// AllConditions returns the ten conditions in screening priority order,
// ending with Normal.
func AllConditions() []Condition {
	out := make([]Condition, len(allConditions))
	copy(out, allConditions)
	return out
}

// Valid reports whether c belongs to the closed condition set.
func (c Condition) Valid() bool {
	for _, known := range allConditions {
		if c == known {
			return true
		}
	}
	return false
}

func (c Condition) String() string { return string(c) }

// Academic is the self-reported academic performance category.
type Academic string

const (
	AcademicPoor    Academic = "Poor"
	AcademicAverage Academic = "Average"
	AcademicGood    Academic = "Good"
)

// AcademicOptions returns the categories in ordinal order (Poor=0, Average=1, Good=2).
func AcademicOptions() []Academic {
	return []Academic{AcademicPoor, AcademicAverage, AcademicGood}
}

// Ordinal returns the 0/1/2 coding used by numeric clients, or -1 when the
// value is not a known category.
func (a Academic) Ordinal() int {
	for i, opt := range AcademicOptions() {
		if a == opt {
			return i
		}
	}
	return -1
}

// Known reports whether a is one of Poor, Average or Good.
func (a Academic) Known() bool { return a.Ordinal() >= 0 }

func (a Academic) String() string { return string(a) }

// FeatureRecord is the ten self-reported lifestyle indicators for one student.
type FeatureRecord struct {
	SleepHours          int      `json:"sleep_hours" validate:"min=2,max=12"`
	AcademicPerformance Academic `json:"academic_performance" validate:"required"`
	Bullied             bool     `json:"bullied"`
	HasCloseFriends     bool     `json:"has_close_friends"`
	HomesickLevel       int      `json:"homesick_level" validate:"min=1,max=5"`
	MessFoodRating      int      `json:"mess_food_rating" validate:"min=1,max=5"`
	SportsParticipation bool     `json:"sports_participation"`
	SocialActivities    int      `json:"social_activities" validate:"min=0,max=5"`
	StudyHours          int      `json:"study_hours" validate:"min=0,max=10"`
	ScreenTime          int      `json:"screen_time" validate:"min=1,max=12"`
}

// FeatureColumns lists the record fields in training column order.
var FeatureColumns = []string{
	"sleep_hours",
	"academic_performance",
	"bullied",
	"has_close_friends",
	"homesick_level",
	"mess_food_rating",
	"sports_participation",
	"social_activities",
	"study_hours",
	"screen_time",
}

// Result is the outcome of a single assessment.
type Result struct {
	ID             string    `json:"id,omitempty"`
	Condition      Condition `json:"condition"`
	Recommendation string    `json:"recommendation"`
	Strategy       string    `json:"strategy,omitempty"`
	MatchedRule    string    `json:"matched_rule,omitempty"` // empty unless the rule cascade produced it
	Note           string    `json:"note,omitempty"`         // optional coach note
	Timestamp      time.Time `json:"timestamp"`
}

// ParseAcademic normalizes case and whitespace for known categories.
// Unknown values are returned trimmed but otherwise untouched so that
// downstream encoders can report them.
func ParseAcademic(s string) Academic {
	trimmed := strings.TrimSpace(s)
	for _, opt := range AcademicOptions() {
		if strings.EqualFold(trimmed, string(opt)) {
			return opt
		}
	}
	return Academic(trimmed)
}

// AcademicFromOrdinal maps the numeric 0/1/2 coding back to a category.
func AcademicFromOrdinal(n int) (Academic, bool) {
	opts := AcademicOptions()
	if n < 0 || n >= len(opts) {
		return "", false
	}
	return opts[n], true
}

// ParseYesNo accepts yes/y/true/1 and no/n/false/0, case-insensitively.
func ParseYesNo(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "y", "true", "1":
		return true, true
	case "no", "n", "false", "0":
		return false, true
	}
	return false, false
}
