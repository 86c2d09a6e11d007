package rules

import "github.com/abhisek/mindcheck/internal/assessment"

func depression(r *assessment.FeatureRecord) bool {
	return (r.SleepHours <= 5 && r.ScreenTime >= 7) ||
		(r.Bullied && !r.HasCloseFriends) ||
		(r.AcademicPerformance == assessment.AcademicPoor && r.SocialActivities <= 2)
}

func anxiety(r *assessment.FeatureRecord) bool {
	return (r.HomesickLevel >= 4 && r.Bullied) ||
		(r.AcademicPerformance == assessment.AcademicPoor && r.SleepHours <= 6) ||
		(r.ScreenTime >= 8 && r.SocialActivities <= 2)
}

func stress(r *assessment.FeatureRecord) bool {
	return r.StudyHours >= 7 ||
		(r.SleepHours <= 5 && r.AcademicPerformance == assessment.AcademicPoor) ||
		(r.HomesickLevel >= 4 && r.StudyHours >= 6)
}

func adhd(r *assessment.FeatureRecord) bool {
	poor := r.AcademicPerformance == assessment.AcademicPoor
	return (r.StudyHours <= 2 && r.ScreenTime >= 8 && poor) ||
		(r.SocialActivities >= 4 && poor)
}

func ptsd(r *assessment.FeatureRecord) bool {
	return r.Bullied && r.SleepHours <= 5 && r.HomesickLevel >= 4
}

func ocd(r *assessment.FeatureRecord) bool {
	return (r.StudyHours >= 7 && r.SocialActivities <= 1) ||
		(r.AcademicPerformance == assessment.AcademicGood && r.MessFoodRating <= 2 && r.StudyHours >= 6)
}

func bipolar(r *assessment.FeatureRecord) bool {
	irregularSleep := r.SleepHours <= 4 || r.SleepHours >= 9
	active := r.SocialActivities >= 4 || r.SportsParticipation
	return irregularSleep && active && r.ScreenTime >= 8
}

func eatingDisorder(r *assessment.FeatureRecord) bool {
	return r.MessFoodRating <= 2 && r.SleepHours <= 5 && r.HomesickLevel >= 4
}

func adjustmentDisorder(r *assessment.FeatureRecord) bool {
	return r.HomesickLevel >= 4 &&
		r.AcademicPerformance == assessment.AcademicAverage &&
		r.SleepHours >= 5 && r.SleepHours <= 7
}
