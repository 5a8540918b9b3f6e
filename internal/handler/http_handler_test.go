package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"

	"github.com/stresswell/stress-backend/internal/chatbot"
	"github.com/stresswell/stress-backend/internal/model"
	"github.com/stresswell/stress-backend/internal/pipeline"
	"github.com/stresswell/stress-backend/internal/service"
	"github.com/stresswell/stress-backend/internal/storage"
	"github.com/stresswell/stress-backend/pkg/models"
)

type stubPredictor struct{}

func (stubPredictor) Predict(rec pipeline.Record) (*model.Prediction, error) {
	// Обязательные категориальные поля проверяются как в настоящем пайплайне
	for _, field := range pipeline.CategoricalFields {
		if _, ok := rec.Categorical[field]; !ok {
			return nil, pipeline.ErrInvalidInput
		}
	}
	return &model.Prediction{
		Level:         models.StressLevelMedium,
		Probabilities: map[string]float64{"Low": 20, "Medium": 55, "High": 25},
	}, nil
}

func newTestRouter(t *testing.T, predictor service.Predictor) *mux.Router {
	t.Helper()

	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	svc := service.NewWellnessService(repo, nil, nil, predictor, chatbot.NewBot(nil))

	router := mux.NewRouter()
	NewHTTPHandler(svc).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func fullAssessment() map[string]interface{} {
	return map[string]interface{}{
		"Age": 30, "Gender": "Male", "Occupation": "Engineer",
		"Marital_Status": "Single", "Smoking_Habit": "No",
		"Meditation_Practice": "No", "Exercise_Type": "Walking",
		"Sleep_Duration": 7.0, "Wake_Up_Time": "7:00 AM", "Bed_Time": "11:00 PM",
	}
}

func TestRegisterLoginFlow(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/register", models.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Password: "secret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decode[models.AuthResponse](t, rec)
	if created.UserID == "" {
		t.Fatal("empty user id")
	}

	// Повторная регистрация того же email
	rec = doJSON(t, router, http.MethodPost, "/api/register", models.RegisterRequest{
		Name: "Alice2", Email: "alice@example.com", Password: "secret1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/login", models.LoginRequest{
		Email: "alice@example.com", Password: "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/api/login", models.LoginRequest{
		Email: "alice@example.com", Password: "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d", rec.Code)
	}
}

func TestPredictEndpoint(t *testing.T) {
	router := newTestRouter(t, stubPredictor{})

	rec := doJSON(t, router, http.MethodPost, "/api/predict", fullAssessment())
	if rec.Code != http.StatusOK {
		t.Fatalf("predict status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decode[models.PredictResponse](t, rec)
	if resp.StressLevel != "Medium" {
		t.Errorf("stress level = %q", resp.StressLevel)
	}
	if resp.Message == "" {
		t.Error("expected non-empty message")
	}

	// Неполный вход — 400
	rec = doJSON(t, router, http.MethodPost, "/api/predict", map[string]interface{}{"Age": 30})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("incomplete predict status = %d", rec.Code)
	}
}

func TestPredictWithoutModel(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/predict", fullAssessment())
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("predict without model status = %d", rec.Code)
	}
}

func TestPredictSavesHistory(t *testing.T) {
	router := newTestRouter(t, stubPredictor{})

	body := fullAssessment()
	body["user_id"] = "user-42"

	if rec := doJSON(t, router, http.MethodPost, "/api/predict", body); rec.Code != http.StatusOK {
		t.Fatalf("predict status = %d", rec.Code)
	}

	rec := doJSON(t, router, http.MethodGet, "/api/history?user_id=user-42", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d", rec.Code)
	}
	history := decode[models.HistoryResponse](t, rec)
	if history.Count != 1 || history.History[0].StressLevel != "Medium" {
		t.Errorf("unexpected history: %s", rec.Body.String())
	}
}

func TestAnalyzeTriggersEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/analyze-triggers", map[string]interface{}{
		"Sleep_Duration": 4.0, "Work_Hours": 12.0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[models.TriggersResponse](t, rec)
	if resp.TotalTriggers != 2 {
		t.Errorf("triggers = %d, want 2", resp.TotalTriggers)
	}
}

func TestRecommendationsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/recommendations/High", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[models.RecommendationsResponse](t, rec)
	if resp.StressLevel != "High" || resp.Count == 0 {
		t.Errorf("unexpected response: %s", rec.Body.String())
	}

	if rec := doJSON(t, router, http.MethodGet, "/api/recommendations/Extreme", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown level status = %d", rec.Code)
	}
}

func TestEmergencyTipsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodGet, "/api/emergency-tips", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decode[models.EmergencyTipsResponse](t, rec)
	if len(resp.Tips) == 0 {
		t.Error("expected non-empty tips")
	}
}

func TestJournalEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/journal", models.JournalRequest{
		UserID: "user-1", Mood: "calm", Notes: "slow morning",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("journal post status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/journal?user_id=user-1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("journal get status = %d", rec.Code)
	}
	list := decode[models.JournalListResponse](t, rec)
	if list.Count != 1 || list.Entries[0].Mood != "calm" {
		t.Errorf("unexpected journal: %s", rec.Body.String())
	}

	// Без user_id — 400
	if rec := doJSON(t, router, http.MethodGet, "/api/journal", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("journal without user status = %d", rec.Code)
	}
	if rec := doJSON(t, router, http.MethodPost, "/api/journal", models.JournalRequest{Mood: "calm"}); rec.Code != http.StatusBadRequest {
		t.Errorf("journal without user status = %d", rec.Code)
	}
}

func TestReportEndpoints(t *testing.T) {
	router := newTestRouter(t, stubPredictor{})

	body := fullAssessment()
	body["user_id"] = "user-7"
	for i := 0; i < 3; i++ {
		if rec := doJSON(t, router, http.MethodPost, "/api/predict", body); rec.Code != http.StatusOK {
			t.Fatalf("predict status = %d", rec.Code)
		}
	}

	rec := doJSON(t, router, http.MethodGet, "/api/reports/weekly?user_id=user-7", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("weekly status = %d", rec.Code)
	}
	weekly := decode[models.Report](t, rec)
	if weekly.TotalAssessments != 3 || weekly.DominantLevel != "Medium" {
		t.Errorf("unexpected weekly report: %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/reports/monthly?user_id=user-7", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("monthly status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/reports/before-after?user_id=user-7", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("before-after status = %d", rec.Code)
	}
	ba := decode[models.BeforeAfterReport](t, rec)
	if ba.Improvement != "stable" {
		t.Errorf("improvement = %q, want stable", ba.Improvement)
	}
}

func TestChatEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doJSON(t, router, http.MethodPost, "/api/chat", models.ChatRequest{Message: "I can't sleep"})
	if rec.Code != http.StatusOK {
		t.Fatalf("chat status = %d", rec.Code)
	}
	resp := decode[models.ChatResponse](t, rec)
	if resp.Response == "" {
		t.Error("expected non-empty chat response")
	}
	if resp.AIPowered {
		t.Error("fallback chat must not be AI powered")
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, stubPredictor{})

	rec := doJSON(t, router, http.MethodGet, "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
	resp := decode[models.HealthResponse](t, rec)
	if resp.Status != "healthy" || !resp.ModelLoaded || resp.Storage != "sqlite" {
		t.Errorf("unexpected health: %s", rec.Body.String())
	}
}
