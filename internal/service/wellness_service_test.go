package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stresswell/stress-backend/internal/model"
	"github.com/stresswell/stress-backend/internal/pipeline"
	"github.com/stresswell/stress-backend/internal/storage"
	"github.com/stresswell/stress-backend/pkg/models"
)

// ===== Фейки зависимостей =====

type fakeRepo struct {
	users       map[string]*models.User
	predictions []*models.PredictionRecord
	journal     []*models.JournalEntry
	pingErr     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*models.User)}
}

func (r *fakeRepo) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return storage.ErrEmailTaken
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *fakeRepo) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, storage.ErrNotFound
}

func (r *fakeRepo) SavePrediction(_ context.Context, record *models.PredictionRecord) error {
	r.predictions = append(r.predictions, record)
	return nil
}

func (r *fakeRepo) sorted(userID string) []*models.PredictionRecord {
	var out []*models.PredictionRecord
	for _, p := range r.predictions {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeRepo) ListPredictions(_ context.Context, userID string, limit int) ([]*models.PredictionRecord, error) {
	out := r.sorted(userID)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) ListPredictionsSince(_ context.Context, userID string, since time.Time) ([]*models.PredictionRecord, error) {
	var out []*models.PredictionRecord
	for _, p := range r.sorted(userID) {
		if !p.CreatedAt.Before(since) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateJournalEntry(_ context.Context, entry *models.JournalEntry) error {
	r.journal = append(r.journal, entry)
	return nil
}

func (r *fakeRepo) ListJournalEntries(_ context.Context, userID string, limit int) ([]*models.JournalEntry, error) {
	var out []*models.JournalEntry
	for _, e := range r.journal {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) Ping(_ context.Context) error { return r.pingErr }
func (r *fakeRepo) Name() string                 { return "fake" }
func (r *fakeRepo) Close() error                 { return nil }

type fakePredictor struct {
	level string
	err   error
}

func (p *fakePredictor) Predict(_ pipeline.Record) (*model.Prediction, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &model.Prediction{
		Level:         p.level,
		Probabilities: map[string]float64{"Low": 10, "Medium": 20, "High": 70},
	}, nil
}

type fakeBroadcaster struct {
	events []models.Event
}

func (b *fakeBroadcaster) BroadcastEvent(event models.Event) {
	b.events = append(b.events, event)
}

type fakeBot struct{}

func (fakeBot) Reply(_ context.Context, message string) *models.ChatResponse {
	return &models.ChatResponse{Response: "echo: " + message, Timestamp: time.Now()}
}

func newTestService(repo *fakeRepo, predictor Predictor) (*WellnessService, *fakeBroadcaster) {
	events := &fakeBroadcaster{}
	return NewWellnessService(repo, nil, events, predictor, fakeBot{}), events
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

// ===== Регистрация и вход =====

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), nil)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &models.RegisterRequest{Name: "Bob", Email: "Bob@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if resp.UserID == "" || resp.Name != "Bob" {
		t.Errorf("unexpected register response: %+v", resp)
	}

	// Email нормализуется к нижнему регистру
	login, err := svc.Login(ctx, &models.LoginRequest{Email: "bob@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.UserID != resp.UserID {
		t.Errorf("login user = %q, want %q", login.UserID, resp.UserID)
	}

	if _, err := svc.Login(ctx, &models.LoginRequest{Email: "bob@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, &models.LoginRequest{Email: "nobody@example.com", Password: "secret1"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), nil)
	ctx := context.Background()

	tests := []models.RegisterRequest{
		{Name: "", Email: "a@b.c", Password: "secret1"},
		{Name: "A", Email: "", Password: "secret1"},
		{Name: "A", Email: "not-an-email", Password: "secret1"},
		{Name: "A", Email: "a@b.c", Password: "short"},
	}

	for _, req := range tests {
		if _, err := svc.Register(ctx, &req); !errors.Is(err, ErrValidation) {
			t.Errorf("Register(%+v): expected ErrValidation, got %v", req, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), nil)
	ctx := context.Background()

	req := &models.RegisterRequest{Name: "A", Email: "a@b.c", Password: "secret1"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, storage.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

// ===== Предсказание =====

func TestPredictWithoutModel(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), nil)

	_, err := svc.Predict(context.Background(), &models.PredictRequest{})
	if !errors.Is(err, ErrModelUnavailable) {
		t.Errorf("expected ErrModelUnavailable, got %v", err)
	}
}

func TestPredictAnonymous(t *testing.T) {
	repo := newFakeRepo()
	svc, events := newTestService(repo, &fakePredictor{level: "High"})

	resp, err := svc.Predict(context.Background(), &models.PredictRequest{})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if resp.StressLevel != "High" {
		t.Errorf("stress level = %q, want High", resp.StressLevel)
	}
	if resp.Message == "" {
		t.Error("expected a non-empty message")
	}

	// Анонимный запрос не пишет историю и не рассылает события
	if len(repo.predictions) != 0 {
		t.Errorf("anonymous predict saved %d records", len(repo.predictions))
	}
	if len(events.events) != 0 {
		t.Errorf("anonymous predict broadcast %d events", len(events.events))
	}
}

func TestPredictWithUserSavesHistory(t *testing.T) {
	repo := newFakeRepo()
	svc, events := newTestService(repo, &fakePredictor{level: "Medium"})

	req := &models.PredictRequest{UserID: "user-1"}
	req.Age = floatPtr(30)

	if _, err := svc.Predict(context.Background(), req); err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	if len(repo.predictions) != 1 {
		t.Fatalf("saved %d records, want 1", len(repo.predictions))
	}
	record := repo.predictions[0]
	if record.UserID != "user-1" || record.StressLevel != "Medium" {
		t.Errorf("unexpected record: %+v", record)
	}
	if len(record.InputData) == 0 {
		t.Error("input data not saved")
	}

	if len(events.events) != 1 || events.events[0].Type != models.EventTypePrediction {
		t.Errorf("expected one prediction event, got %+v", events.events)
	}
}

func TestPredictPropagatesInputError(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), &fakePredictor{err: pipeline.ErrInvalidInput})

	_, err := svc.Predict(context.Background(), &models.PredictRequest{})
	if !errors.Is(err, pipeline.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

// ===== Триггеры =====

func TestAnalyzeTriggers(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), nil)

	input := &models.AssessmentInput{
		SleepDuration:      floatPtr(5),
		WorkHours:          floatPtr(11),
		ScreenTime:         floatPtr(8),
		MeditationPractice: strPtr("No"),
	}

	resp := svc.AnalyzeTriggers(input)
	if resp.TotalTriggers != 4 {
		t.Errorf("found %d triggers, want 4: %+v", resp.TotalTriggers, resp.Triggers)
	}

	// Здоровый профиль не дает триггеров
	healthy := &models.AssessmentInput{
		SleepDuration:      floatPtr(8),
		WorkHours:          floatPtr(8),
		ScreenTime:         floatPtr(2),
		PhysicalActivity:   floatPtr(60),
		CaffeineIntake:     floatPtr(1),
		SocialInteractions: floatPtr(5),
		MeditationPractice: strPtr("Yes"),
	}
	if resp := svc.AnalyzeTriggers(healthy); resp.TotalTriggers != 0 {
		t.Errorf("healthy profile produced triggers: %+v", resp.Triggers)
	}

	// Отсутствующие поля не анализируются
	if resp := svc.AnalyzeTriggers(&models.AssessmentInput{}); resp.TotalTriggers != 0 {
		t.Errorf("empty input produced triggers: %+v", resp.Triggers)
	}
}

// ===== Прогноз =====

func seedHistory(repo *fakeRepo, userID string, levels []string) {
	base := time.Now().UTC().Add(-time.Duration(len(levels)) * 24 * time.Hour)
	for i, level := range levels {
		repo.predictions = append(repo.predictions, &models.PredictionRecord{
			ID:          fmt.Sprintf("%s-%s-%d", userID, level, i),
			UserID:      userID,
			StressLevel: level,
			CreatedAt:   base.Add(time.Duration(i) * 24 * time.Hour),
		})
	}
}

func TestForecastNotEnoughData(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, nil)

	resp, err := svc.Forecast(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if resp.Forecast != "unknown" || resp.DataPoints != 0 {
		t.Errorf("unexpected forecast: %+v", resp)
	}
}

func TestForecastTrend(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, nil)

	// История от старых к новым: стресс растет
	seedHistory(repo, "user-1", []string{"Low", "Low", "Medium", "High", "High", "High"})

	resp, err := svc.Forecast(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if resp.Forecast != "increasing" {
		t.Errorf("forecast = %q, want increasing", resp.Forecast)
	}
	if resp.DataPoints != 6 {
		t.Errorf("data points = %d, want 6", resp.DataPoints)
	}

	// Обратная история: стресс падает
	seedHistory(repo, "user-2", []string{"High", "High", "High", "Medium", "Low", "Low"})
	resp, err = svc.Forecast(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if resp.Forecast != "decreasing" {
		t.Errorf("forecast = %q, want decreasing", resp.Forecast)
	}
}

func TestForecastRequiresUser(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), nil)
	if _, err := svc.Forecast(context.Background(), ""); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

// ===== Отчеты =====

func TestWeeklyReport(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, nil)

	seedHistory(repo, "user-1", []string{"Low", "Medium", "Medium", "High"})

	report, err := svc.WeeklyReport(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("WeeklyReport failed: %v", err)
	}

	if report.Period != "weekly" {
		t.Errorf("period = %q, want weekly", report.Period)
	}
	if report.TotalAssessments != 4 {
		t.Errorf("total = %d, want 4", report.TotalAssessments)
	}
	if report.Distribution["Medium"] != 2 {
		t.Errorf("distribution = %+v", report.Distribution)
	}
	if report.Percentages["Medium"] != 50 {
		t.Errorf("percentages = %+v", report.Percentages)
	}
	if report.DominantLevel != "Medium" {
		t.Errorf("dominant = %q, want Medium", report.DominantLevel)
	}
}

func TestWeeklyReportEmpty(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), nil)

	report, err := svc.WeeklyReport(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("WeeklyReport failed: %v", err)
	}
	if report.TotalAssessments != 0 || report.Message == "" {
		t.Errorf("unexpected empty report: %+v", report)
	}
}

func TestBeforeAfter(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, nil)

	seedHistory(repo, "user-1", []string{"High", "Medium", "Low"})

	resp, err := svc.BeforeAfter(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("BeforeAfter failed: %v", err)
	}

	if resp.Before.Level != "High" || resp.After.Level != "Low" {
		t.Errorf("before/after = %q/%q, want High/Low", resp.Before.Level, resp.After.Level)
	}
	if resp.Improvement != "improved" {
		t.Errorf("improvement = %q, want improved", resp.Improvement)
	}
}

func TestBeforeAfterNotEnoughData(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, nil)
	seedHistory(repo, "user-1", []string{"Low"})

	resp, err := svc.BeforeAfter(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("BeforeAfter failed: %v", err)
	}
	if resp.Before != nil || resp.Message == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

// ===== Дневник =====

func TestJournalLifecycle(t *testing.T) {
	repo := newFakeRepo()
	svc, events := newTestService(repo, nil)
	ctx := context.Background()

	created, err := svc.AddJournalEntry(ctx, &models.JournalRequest{UserID: "user-1", Mood: "calm", Notes: "good day"})
	if err != nil {
		t.Fatalf("AddJournalEntry failed: %v", err)
	}
	if created.EntryID == "" {
		t.Error("expected non-empty entry id")
	}

	if len(events.events) != 1 || events.events[0].Type != models.EventTypeJournal {
		t.Errorf("expected one journal event, got %+v", events.events)
	}

	list, err := svc.ListJournal(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListJournal failed: %v", err)
	}
	if list.Count != 1 || list.Entries[0].Mood != "calm" {
		t.Errorf("unexpected journal list: %+v", list)
	}

	if _, err := svc.AddJournalEntry(ctx, &models.JournalRequest{UserID: "", Mood: "calm"}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.AddJournalEntry(ctx, &models.JournalRequest{UserID: "user-1", Mood: "  "}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for blank mood, got %v", err)
	}
}

// ===== Рекомендации =====

func TestRecommendations(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), nil)

	for _, level := range []string{"Low", "Medium", "High"} {
		resp, err := svc.Recommendations(level)
		if err != nil {
			t.Fatalf("Recommendations(%q) failed: %v", level, err)
		}
		if resp.Count == 0 || resp.Count != len(resp.Recommendations) {
			t.Errorf("unexpected recommendations for %q: %+v", level, resp)
		}
	}

	if _, err := svc.Recommendations("Extreme"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation for unknown level, got %v", err)
	}
}

func TestEmergencyTips(t *testing.T) {
	svc, _ := newTestService(newFakeRepo(), nil)

	resp := svc.EmergencyTips()
	if len(resp.Tips) == 0 {
		t.Fatal("expected non-empty tips")
	}
	for i, tip := range resp.Tips {
		if tip.Step != i+1 {
			t.Errorf("tip %d has step %d", i, tip.Step)
		}
	}
}

// ===== Health =====

func TestHealth(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo, &fakePredictor{level: "Low"})

	health := svc.Health(context.Background())
	if health.Status != "healthy" || !health.ModelLoaded || health.Storage != "fake" {
		t.Errorf("unexpected health: %+v", health)
	}

	repo.pingErr = errors.New("down")
	svc, _ = newTestService(repo, nil)
	health = svc.Health(context.Background())
	if health.Status != "degraded" || health.ModelLoaded {
		t.Errorf("unexpected degraded health: %+v", health)
	}
}
