package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stresswell/stress-backend/internal/auth"
	"github.com/stresswell/stress-backend/internal/model"
	"github.com/stresswell/stress-backend/internal/pipeline"
	"github.com/stresswell/stress-backend/internal/storage"
	"github.com/stresswell/stress-backend/pkg/models"
)

// Ошибки уровня сервиса. Обработчик HTTP отображает их в статусы,
// не заглядывая внутрь.
var (
	ErrModelUnavailable   = errors.New("model unavailable")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation error")
)

// Число записей истории для прогноза и выдачи по умолчанию
const (
	forecastWindow  = 10
	historyLimit    = 50
	fullHistoryScan = 1000
)

// Repository — хранилище пользователей, истории и дневника
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	SavePrediction(ctx context.Context, record *models.PredictionRecord) error
	ListPredictions(ctx context.Context, userID string, limit int) ([]*models.PredictionRecord, error)
	ListPredictionsSince(ctx context.Context, userID string, since time.Time) ([]*models.PredictionRecord, error)
	CreateJournalEntry(ctx context.Context, entry *models.JournalEntry) error
	ListJournalEntries(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error)
	Ping(ctx context.Context) error
	Name() string
	Close() error
}

// Cache — необязательный кэш последнего предсказания и отчетов
type Cache interface {
	SetLatestPrediction(ctx context.Context, record *models.PredictionRecord) error
	GetCachedReport(ctx context.Context, userID, period string) (*models.Report, error)
	SetCachedReport(ctx context.Context, userID, period string, report *models.Report) error
	InvalidateReports(ctx context.Context, userID string) error
}

// EventBroadcaster рассылает события подключенным WebSocket клиентам
type EventBroadcaster interface {
	BroadcastEvent(event models.Event)
}

// Predictor — обученная модель классификации стресса
type Predictor interface {
	Predict(rec pipeline.Record) (*model.Prediction, error)
}

// ChatBot отвечает на сообщения пользователя
type ChatBot interface {
	Reply(ctx context.Context, message string) *models.ChatResponse
}

// WellnessService — прикладная логика приложения: регистрация, предсказания,
// отчеты, дневник и чат. Кэш, предиктор и рассылка событий необязательны:
// при nil соответствующая функциональность деградирует, но сервис работает.
type WellnessService struct {
	repo      Repository
	cache     Cache
	events    EventBroadcaster
	predictor Predictor
	bot       ChatBot
}

func NewWellnessService(
	repo Repository,
	cache Cache,
	events EventBroadcaster,
	predictor Predictor,
	bot ChatBot,
) *WellnessService {
	return &WellnessService{
		repo:      repo,
		cache:     cache,
		events:    events,
		predictor: predictor,
		bot:       bot,
	}
}

// ModelLoaded сообщает, загружена ли модель
func (s *WellnessService) ModelLoaded() bool {
	return s.predictor != nil
}

// ===== Регистрация и вход =====

func (s *WellnessService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(req.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("[INFO] Registered user %s", user.ID)

	return &models.AuthResponse{
		Message: "Registration successful",
		UserID:  user.ID,
		Name:    user.Name,
	}, nil
}

func (s *WellnessService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return &models.AuthResponse{
		Message: "Login successful",
		UserID:  user.ID,
		Name:    user.Name,
		Email:   user.Email,
	}, nil
}

// ===== Предсказание =====

// Сообщения для каждого уровня стресса
var levelMessages = map[string]string{
	models.StressLevelLow:    "Great! Your stress level is low. Keep up your healthy habits.",
	models.StressLevelMedium: "Your stress level is moderate. Consider some relaxation techniques.",
	models.StressLevelHigh:   "Your stress level is high. Please take care of yourself and consider seeking support.",
}

// Predict классифицирует одну оценку. Если передан user_id, результат
// добавляется в историю; сбои кэша и рассылки событий не ломают запрос.
func (s *WellnessService) Predict(ctx context.Context, req *models.PredictRequest) (*models.PredictResponse, error) {
	if s.predictor == nil {
		return nil, ErrModelUnavailable
	}

	rec := pipeline.FromAssessment(&req.AssessmentInput)

	prediction, err := s.predictor.Predict(rec)
	if err != nil {
		return nil, err
	}

	if req.UserID != "" {
		inputJSON, err := json.Marshal(req.AssessmentInput)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal input: %w", err)
		}

		record := &models.PredictionRecord{
			ID:            uuid.New().String(),
			UserID:        req.UserID,
			StressLevel:   prediction.Level,
			Probabilities: prediction.Probabilities,
			InputData:     inputJSON,
			CreatedAt:     time.Now().UTC(),
		}

		if err := s.repo.SavePrediction(ctx, record); err != nil {
			return nil, fmt.Errorf("failed to save prediction: %w", err)
		}

		if s.cache != nil {
			if err := s.cache.SetLatestPrediction(ctx, record); err != nil {
				log.Printf("[WARN] Failed to cache prediction for user %s: %v", req.UserID, err)
			}
			if err := s.cache.InvalidateReports(ctx, req.UserID); err != nil {
				log.Printf("[WARN] Failed to invalidate reports for user %s: %v", req.UserID, err)
			}
		}

		if s.events != nil {
			s.events.BroadcastEvent(models.Event{
				Type:      models.EventTypePrediction,
				UserID:    req.UserID,
				Payload:   record,
				Timestamp: record.CreatedAt,
			})
		}
	}

	return &models.PredictResponse{
		StressLevel:   prediction.Level,
		Probabilities: prediction.Probabilities,
		Message:       levelMessages[prediction.Level],
	}, nil
}

// ===== Анализ триггеров =====

// AnalyzeTriggers выделяет факторы образа жизни, которые обычно поднимают
// уровень стресса. Анализ чисто пороговый и не требует модели.
func (s *WellnessService) AnalyzeTriggers(input *models.AssessmentInput) *models.TriggersResponse {
	var triggers []models.Trigger

	if input.SleepDuration != nil && *input.SleepDuration < 6 {
		triggers = append(triggers, models.Trigger{
			Factor:         "Insufficient Sleep",
			Impact:         "High",
			Recommendation: "Aim for 7-9 hours of sleep per night",
		})
	}
	if input.WorkHours != nil && *input.WorkHours > 9 {
		triggers = append(triggers, models.Trigger{
			Factor:         "Long Work Hours",
			Impact:         "High",
			Recommendation: "Try to limit work to 8-9 hours and take regular breaks",
		})
	}
	if input.ScreenTime != nil && *input.ScreenTime > 6 {
		triggers = append(triggers, models.Trigger{
			Factor:         "Excessive Screen Time",
			Impact:         "Medium",
			Recommendation: "Reduce screen time, especially before bed",
		})
	}
	if input.PhysicalActivity != nil && *input.PhysicalActivity < 30 {
		triggers = append(triggers, models.Trigger{
			Factor:         "Low Physical Activity",
			Impact:         "Medium",
			Recommendation: "Add at least 30 minutes of movement to your day",
		})
	}
	if input.CaffeineIntake != nil && *input.CaffeineIntake > 4 {
		triggers = append(triggers, models.Trigger{
			Factor:         "High Caffeine Intake",
			Impact:         "Medium",
			Recommendation: "Limit caffeine to 2-3 cups and avoid it after noon",
		})
	}
	if input.SocialInteractions != nil && *input.SocialInteractions < 2 {
		triggers = append(triggers, models.Trigger{
			Factor:         "Low Social Interaction",
			Impact:         "Medium",
			Recommendation: "Reach out to friends or family, even briefly",
		})
	}
	if input.MeditationPractice != nil && strings.EqualFold(*input.MeditationPractice, "No") {
		triggers = append(triggers, models.Trigger{
			Factor:         "No Relaxation Practice",
			Impact:         "Low",
			Recommendation: "Try 5-10 minutes of meditation or breathing exercises daily",
		})
	}

	return &models.TriggersResponse{
		Triggers:      triggers,
		TotalTriggers: len(triggers),
	}
}

// ===== Прогноз =====

var levelScores = map[string]float64{
	models.StressLevelLow:    1,
	models.StressLevelMedium: 2,
	models.StressLevelHigh:   3,
}

// Forecast оценивает тенденцию стресса по последним записям истории
func (s *WellnessService) Forecast(ctx context.Context, userID string) (*models.ForecastResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	records, err := s.repo.ListPredictions(ctx, userID, forecastWindow)
	if err != nil {
		return nil, err
	}

	if len(records) < 3 {
		return &models.ForecastResponse{
			Forecast:   "unknown",
			Message:    "Not enough data for a forecast. Complete at least 3 assessments.",
			DataPoints: len(records),
		}, nil
	}

	var total float64
	for _, record := range records {
		total += levelScores[record.StressLevel]
	}
	average := total / float64(len(records))

	// Записи идут от новых к старым: сравниваем свежую половину со старой
	half := len(records) / 2
	var recent, older float64
	for i, record := range records {
		if i < half {
			recent += levelScores[record.StressLevel]
		} else {
			older += levelScores[record.StressLevel]
		}
	}
	recentAvg := recent / float64(half)
	olderAvg := older / float64(len(records)-half)

	forecast := "stable"
	message := "Your stress level looks stable. Keep monitoring it regularly."
	switch {
	case recentAvg > olderAvg+0.2:
		forecast = "increasing"
		message = "Your stress level is trending up. Consider reviewing your triggers and taking preventive steps."
	case recentAvg < olderAvg-0.2:
		forecast = "decreasing"
		message = "Your stress level is trending down. Whatever you are doing is working."
	}

	return &models.ForecastResponse{
		Forecast:     forecast,
		AverageLevel: scoreToLevel(average),
		Message:      message,
		DataPoints:   len(records),
	}, nil
}

func scoreToLevel(score float64) string {
	switch {
	case score < 1.5:
		return models.StressLevelLow
	case score < 2.5:
		return models.StressLevelMedium
	default:
		return models.StressLevelHigh
	}
}

// ===== Дневник настроения =====

func (s *WellnessService) AddJournalEntry(ctx context.Context, req *models.JournalRequest) (*models.JournalCreatedResponse, error) {
	if req.UserID == "" || strings.TrimSpace(req.Mood) == "" {
		return nil, fmt.Errorf("%w: user_id and mood are required", ErrValidation)
	}

	entry := &models.JournalEntry{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Mood:      strings.TrimSpace(req.Mood),
		Notes:     strings.TrimSpace(req.Notes),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateJournalEntry(ctx, entry); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.BroadcastEvent(models.Event{
			Type:      models.EventTypeJournal,
			UserID:    req.UserID,
			Payload:   entry,
			Timestamp: entry.CreatedAt,
		})
	}

	return &models.JournalCreatedResponse{
		Message: "Journal entry saved",
		EntryID: entry.ID,
	}, nil
}

func (s *WellnessService) ListJournal(ctx context.Context, userID string) (*models.JournalListResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	entries, err := s.repo.ListJournalEntries(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}

	return &models.JournalListResponse{
		Entries: entries,
		Count:   len(entries),
	}, nil
}

// ===== Отчеты =====

// WeeklyReport собирает отчет за последние 7 дней
func (s *WellnessService) WeeklyReport(ctx context.Context, userID string) (*models.Report, error) {
	return s.periodReport(ctx, userID, "weekly", 7*24*time.Hour)
}

// MonthlyReport собирает отчет за последние 30 дней
func (s *WellnessService) MonthlyReport(ctx context.Context, userID string) (*models.Report, error) {
	return s.periodReport(ctx, userID, "monthly", 30*24*time.Hour)
}

func (s *WellnessService) periodReport(ctx context.Context, userID, period string, window time.Duration) (*models.Report, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	if s.cache != nil {
		if cached, err := s.cache.GetCachedReport(ctx, userID, period); err == nil {
			return cached, nil
		}
	}

	since := time.Now().UTC().Add(-window)
	records, err := s.repo.ListPredictionsSince(ctx, userID, since)
	if err != nil {
		return nil, err
	}

	report := buildReport(period, records)

	if s.cache != nil {
		if err := s.cache.SetCachedReport(ctx, userID, period, report); err != nil {
			log.Printf("[WARN] Failed to cache %s report for user %s: %v", period, userID, err)
		}
	}

	return report, nil
}

func buildReport(period string, records []*models.PredictionRecord) *models.Report {
	report := &models.Report{
		Period:           period,
		TotalAssessments: len(records),
		Distribution:     make(map[string]int),
		Percentages:      make(map[string]float64),
		Data:             records,
	}

	if len(records) == 0 {
		report.Message = "No assessments in this period"
		return report
	}

	for _, record := range records {
		report.Distribution[record.StressLevel]++
	}

	dominant := ""
	for level, count := range report.Distribution {
		report.Percentages[level] = math.Round(float64(count)/float64(len(records))*10000) / 100
		if dominant == "" || count > report.Distribution[dominant] {
			dominant = level
		}
	}
	report.DominantLevel = dominant

	return report
}

// BeforeAfter сравнивает первую и последнюю запись истории
func (s *WellnessService) BeforeAfter(ctx context.Context, userID string) (*models.BeforeAfterReport, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	records, err := s.repo.ListPredictions(ctx, userID, fullHistoryScan)
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return &models.BeforeAfterReport{
			Message: "Not enough data for comparison. Complete at least 2 assessments.",
		}, nil
	}

	// Записи идут от новых к старым
	newest := records[0]
	oldest := records[len(records)-1]

	improvement := "stable"
	message := "Your stress level has not changed significantly."
	diff := levelScores[newest.StressLevel] - levelScores[oldest.StressLevel]
	switch {
	case diff < 0:
		improvement = "improved"
		message = "Your stress level has improved since your first assessment. Great progress!"
	case diff > 0:
		improvement = "worsened"
		message = "Your stress level has increased since your first assessment. Consider reviewing your habits."
	}

	return &models.BeforeAfterReport{
		Before:      &models.LevelSnapshot{Level: oldest.StressLevel, Date: oldest.CreatedAt},
		After:       &models.LevelSnapshot{Level: newest.StressLevel, Date: newest.CreatedAt},
		Improvement: improvement,
		Message:     message,
	}, nil
}

// ===== История =====

func (s *WellnessService) History(ctx context.Context, userID string) (*models.HistoryResponse, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}

	records, err := s.repo.ListPredictions(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}

	return &models.HistoryResponse{
		History: records,
		Count:   len(records),
	}, nil
}

// ===== Чат =====

func (s *WellnessService) Chat(ctx context.Context, message string) *models.ChatResponse {
	return s.bot.Reply(ctx, message)
}

// ===== Health =====

func (s *WellnessService) Health(ctx context.Context) *models.HealthResponse {
	status := "healthy"
	if err := s.repo.Ping(ctx); err != nil {
		log.Printf("[WARN] Storage ping failed: %v", err)
		status = "degraded"
	}

	return &models.HealthResponse{
		Status:      status,
		ModelLoaded: s.ModelLoaded(),
		Storage:     s.repo.Name(),
		Timestamp:   time.Now().UTC(),
	}
}
