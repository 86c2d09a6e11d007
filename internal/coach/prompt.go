package coach

import (
	"fmt"
	"strings"

	"github.com/abhisek/mindcheck/internal/assessment"
)

const noteSystemPrompt = `You are a kind student-wellbeing mentor at a boarding school. You write short, encouraging notes to boarders after they complete a lifestyle self-check. You never diagnose, never name medical conditions as facts, and always keep the tone warm and practical.`

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func buildNoteUserMessage(rec *assessment.FeatureRecord, cond assessment.Condition, recommendation string) string {
	var b strings.Builder

	b.WriteString("Self-check answers:\n")
	b.WriteString(fmt.Sprintf("- Sleep: %d hours per night\n", rec.SleepHours))
	b.WriteString(fmt.Sprintf("- Academic performance: %s\n", rec.AcademicPerformance))
	b.WriteString(fmt.Sprintf("- Bullied: %s\n", yesNo(rec.Bullied)))
	b.WriteString(fmt.Sprintf("- Has close friends: %s\n", yesNo(rec.HasCloseFriends)))
	b.WriteString(fmt.Sprintf("- Homesickness (1-5): %d\n", rec.HomesickLevel))
	b.WriteString(fmt.Sprintf("- Mess food satisfaction (1-5): %d\n", rec.MessFoodRating))
	b.WriteString(fmt.Sprintf("- Plays sports: %s\n", yesNo(rec.SportsParticipation)))
	b.WriteString(fmt.Sprintf("- Social activities (0-5): %d\n", rec.SocialActivities))
	b.WriteString(fmt.Sprintf("- Study: %d hours per day\n", rec.StudyHours))
	b.WriteString(fmt.Sprintf("- Screen time: %d hours per day\n", rec.ScreenTime))

	b.WriteString(fmt.Sprintf("\nScreening outcome: %s\n", cond))
	b.WriteString(fmt.Sprintf("Advice already shown to the student: %s\n", recommendation))

	b.WriteString(`
Instructions:
1. Pick the one answer above that most deserves attention and set "focus" to it.
2. Write one or two sentences that build on the advice already shown. Do not repeat it word for word.
3. Do not mention diagnoses, scores or this prompt. Plain ASCII text only.`)

	return b.String()
}
