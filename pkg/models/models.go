package models

import (
	"encoding/json"
	"time"
)

// Уровни стресса, которые возвращает классификатор
const (
	StressLevelLow    = "Low"
	StressLevelMedium = "Medium"
	StressLevelHigh   = "High"
)

// User представляет зарегистрированного пользователя
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// PredictionRecord представляет одно предсказание в истории пользователя.
// Запись неизменяемая: после создания она только читается.
type PredictionRecord struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	StressLevel   string             `json:"stress_level"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	InputData     json.RawMessage    `json:"input_data,omitempty"`
	CreatedAt     time.Time          `json:"prediction_date"`
}

// JournalEntry представляет запись в дневнике настроения
type JournalEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Mood      string    `json:"mood"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"entry_date"`
}

// ===== Запросы / ответы API =====

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
}

// AssessmentInput — валидируемый вход предсказания. Поля-указатели, чтобы
// отличать отсутствующее поле от нулевого значения.
type AssessmentInput struct {
	Age                *float64 `json:"Age,omitempty"`
	Gender             *string  `json:"Gender,omitempty"`
	Occupation         *string  `json:"Occupation,omitempty"`
	MaritalStatus      *string  `json:"Marital_Status,omitempty"`
	SleepDuration      *float64 `json:"Sleep_Duration,omitempty"`
	SleepQuality       *float64 `json:"Sleep_Quality,omitempty"`
	WakeUpTime         *string  `json:"Wake_Up_Time,omitempty"`
	BedTime            *string  `json:"Bed_Time,omitempty"`
	PhysicalActivity   *float64 `json:"Physical_Activity,omitempty"`
	ScreenTime         *float64 `json:"Screen_Time,omitempty"`
	CaffeineIntake     *float64 `json:"Caffeine_Intake,omitempty"`
	AlcoholIntake      *float64 `json:"Alcohol_Intake,omitempty"`
	SmokingHabit       *string  `json:"Smoking_Habit,omitempty"`
	WorkHours          *float64 `json:"Work_Hours,omitempty"`
	TravelTime         *float64 `json:"Travel_Time,omitempty"`
	SocialInteractions *float64 `json:"Social_Interactions,omitempty"`
	MeditationPractice *string  `json:"Meditation_Practice,omitempty"`
	ExerciseType       *string  `json:"Exercise_Type,omitempty"`
	BloodPressure      *float64 `json:"Blood_Pressure,omitempty"`
	CholesterolLevel   *float64 `json:"Cholesterol_Level,omitempty"`
	BloodSugarLevel    *float64 `json:"Blood_Sugar_Level,omitempty"`
}

// PredictRequest — тело POST /api/predict: опциональный user_id плюс
// поля оценки в плоском виде (как присылает фронтенд)
type PredictRequest struct {
	UserID string `json:"user_id,omitempty"`
	AssessmentInput
}

type PredictResponse struct {
	StressLevel   string             `json:"stress_level"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	Message       string             `json:"message"`
}

type Trigger struct {
	Factor         string `json:"factor"`
	Impact         string `json:"impact"`
	Recommendation string `json:"recommendation"`
}

type TriggersResponse struct {
	Triggers      []Trigger `json:"triggers"`
	TotalTriggers int       `json:"total_triggers"`
}

type ForecastRequest struct {
	UserID string `json:"user_id"`
}

type ForecastResponse struct {
	Forecast     string `json:"forecast"`
	AverageLevel string `json:"average_level,omitempty"`
	Message      string `json:"message"`
	DataPoints   int    `json:"data_points"`
}

type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type RecommendationsResponse struct {
	StressLevel     string           `json:"stress_level"`
	Recommendations []Recommendation `json:"recommendations"`
	Count           int              `json:"count"`
}

type EmergencyTip struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type EmergencyTipsResponse struct {
	Tips    []EmergencyTip `json:"tips"`
	Message string         `json:"message"`
}

type JournalRequest struct {
	UserID string `json:"user_id"`
	Mood   string `json:"mood"`
	Notes  string `json:"notes,omitempty"`
}

type JournalCreatedResponse struct {
	Message string `json:"message"`
	EntryID string `json:"entry_id"`
}

type JournalListResponse struct {
	Entries []*JournalEntry `json:"entries"`
	Count   int             `json:"count"`
}

// Report — недельный или месячный отчет по истории предсказаний
type Report struct {
	Period           string              `json:"period"`
	TotalAssessments int                 `json:"total_assessments"`
	Distribution     map[string]int      `json:"distribution"`
	Percentages      map[string]float64  `json:"percentages"`
	DominantLevel    string              `json:"dominant_level,omitempty"`
	Data             []*PredictionRecord `json:"data"`
	Message          string              `json:"message,omitempty"`
}

type LevelSnapshot struct {
	Level string    `json:"level"`
	Date  time.Time `json:"date"`
}

type BeforeAfterReport struct {
	Before      *LevelSnapshot `json:"before"`
	After       *LevelSnapshot `json:"after"`
	Improvement string         `json:"improvement"`
	Message     string         `json:"message"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
	AIPowered bool      `json:"ai_powered"`
	Note      string    `json:"note,omitempty"`
}

type HistoryResponse struct {
	History []*PredictionRecord `json:"history"`
	Count   int                 `json:"count"`
}

type HealthResponse struct {
	Status      string    `json:"status"`
	ModelLoaded bool      `json:"model_loaded"`
	Storage     string    `json:"storage"`
	Timestamp   time.Time `json:"timestamp"`
}

// ===== События для WebSocket =====

type EventType string

const (
	EventTypePrediction EventType = "prediction"
	EventTypeJournal    EventType = "journal"
)

// Event — сообщение, рассылаемое подключенным клиентам через WebSocket
type Event struct {
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}
