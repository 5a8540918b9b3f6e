package pipeline

import (
	"github.com/stresswell/stress-backend/pkg/models"
)

// Наборы полей входной записи. Порядок фиксирован: он определяет порядок
// колонок итогового вектора признаков и не должен меняться между обучением
// и инференсом.
var (
	CategoricalFields = []string{
		"Gender", "Occupation", "Marital_Status",
		"Smoking_Habit", "Meditation_Practice", "Exercise_Type",
	}

	NumericFields = []string{
		"Age", "Sleep_Duration", "Sleep_Quality", "Physical_Activity",
		"Screen_Time", "Caffeine_Intake", "Alcohol_Intake",
		"Work_Hours", "Travel_Time", "Social_Interactions",
		"Blood_Pressure", "Cholesterol_Level", "Blood_Sugar_Level",
	}

	TimeFields = []string{"Wake_Up_Time", "Bed_Time"}
)

// TargetField — колонка с меткой класса в обучающем датасете
const TargetField = "Stress_Detection"

// Record — одна плоская запись на входе пайплайна. Отсутствие ключа в карте
// означает отсутствие поля в запросе (это не то же самое, что пустое значение).
type Record struct {
	Categorical map[string]string
	Numeric     map[string]float64
	Times       map[string]string
}

// FromAssessment преобразует валидируемый API-вход в запись пайплайна.
// nil-поля не попадают в карты, чтобы Apply мог отличить
// "поле не прислали" от "прислали нулевое значение".
func FromAssessment(in *models.AssessmentInput) Record {
	rec := Record{
		Categorical: make(map[string]string),
		Numeric:     make(map[string]float64),
		Times:       make(map[string]string),
	}

	setStr := func(field string, v *string) {
		if v != nil {
			rec.Categorical[field] = *v
		}
	}
	setNum := func(field string, v *float64) {
		if v != nil {
			rec.Numeric[field] = *v
		}
	}

	setStr("Gender", in.Gender)
	setStr("Occupation", in.Occupation)
	setStr("Marital_Status", in.MaritalStatus)
	setStr("Smoking_Habit", in.SmokingHabit)
	setStr("Meditation_Practice", in.MeditationPractice)
	setStr("Exercise_Type", in.ExerciseType)

	setNum("Age", in.Age)
	setNum("Sleep_Duration", in.SleepDuration)
	setNum("Sleep_Quality", in.SleepQuality)
	setNum("Physical_Activity", in.PhysicalActivity)
	setNum("Screen_Time", in.ScreenTime)
	setNum("Caffeine_Intake", in.CaffeineIntake)
	setNum("Alcohol_Intake", in.AlcoholIntake)
	setNum("Work_Hours", in.WorkHours)
	setNum("Travel_Time", in.TravelTime)
	setNum("Social_Interactions", in.SocialInteractions)
	setNum("Blood_Pressure", in.BloodPressure)
	setNum("Cholesterol_Level", in.CholesterolLevel)
	setNum("Blood_Sugar_Level", in.BloodSugarLevel)

	if in.WakeUpTime != nil {
		rec.Times["Wake_Up_Time"] = *in.WakeUpTime
	}
	if in.BedTime != nil {
		rec.Times["Bed_Time"] = *in.BedTime
	}

	return rec
}
