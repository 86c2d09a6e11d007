package assessment

import "fmt"

// Kind is the answer type of a questionnaire item.
type Kind int

const (
	KindInt Kind = iota
	KindBool
	KindAcademic
)

// Question is one questionnaire item shared by the interactive shells.
type Question struct {
	Field string // wire name, as in FeatureColumns
	Text  string
	Kind  Kind
	Min   int // KindInt only
	Max   int // KindInt only
}

// Questions lists the items in the order the shells ask them.
var Questions = []Question{
	{Field: "sleep_hours", Text: "How many hours do you sleep per night?", Kind: KindInt, Min: 2, Max: 12},
	{Field: "academic_performance", Text: "How is your academic performance?", Kind: KindAcademic},
	{Field: "bullied", Text: "Have you been bullied recently?", Kind: KindBool},
	{Field: "has_close_friends", Text: "Do you have close friends at school?", Kind: KindBool},
	{Field: "homesick_level", Text: "How homesick do you feel? (1=Not at all, 5=Extremely)", Kind: KindInt, Min: 1, Max: 5},
	{Field: "mess_food_rating", Text: "How do you rate the mess food? (1=Very bad, 5=Excellent)", Kind: KindInt, Min: 1, Max: 5},
	{Field: "sports_participation", Text: "Do you participate in sports?", Kind: KindBool},
	{Field: "social_activities", Text: "How do you rate your social activities?", Kind: KindInt, Min: 0, Max: 5},
	{Field: "study_hours", Text: "How many hours do you study per day?", Kind: KindInt, Min: 0, Max: 10},
	{Field: "screen_time", Text: "How many hours do you spend on screens per day?", Kind: KindInt, Min: 1, Max: 12},
}

// SetInt stores n into the integer field named field.
func (r *FeatureRecord) SetInt(field string, n int) error {
	switch field {
	case "sleep_hours":
		r.SleepHours = n
	case "homesick_level":
		r.HomesickLevel = n
	case "mess_food_rating":
		r.MessFoodRating = n
	case "social_activities":
		r.SocialActivities = n
	case "study_hours":
		r.StudyHours = n
	case "screen_time":
		r.ScreenTime = n
	default:
		return fmt.Errorf("no integer field %q", field)
	}
	return nil
}

// SetBool stores b into the yes/no field named field.
func (r *FeatureRecord) SetBool(field string, b bool) error {
	switch field {
	case "bullied":
		r.Bullied = b
	case "has_close_friends":
		r.HasCloseFriends = b
	case "sports_participation":
		r.SportsParticipation = b
	default:
		return fmt.Errorf("no yes/no field %q", field)
	}
	return nil
}
