package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/stresswell/stress-backend/internal/pipeline"
	"github.com/stresswell/stress-backend/internal/service"
	"github.com/stresswell/stress-backend/internal/storage"
	"github.com/stresswell/stress-backend/pkg/models"
)

type HTTPHandler struct {
	wellnessService *service.WellnessService
}

func NewHTTPHandler(wellnessService *service.WellnessService) *HTTPHandler {
	return &HTTPHandler{
		wellnessService: wellnessService,
	}
}

// RegisterRoutes регистрирует все маршруты API
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	api.HandleFunc("/predict", h.Predict).Methods(http.MethodPost)
	api.HandleFunc("/analyze-triggers", h.AnalyzeTriggers).Methods(http.MethodPost)
	api.HandleFunc("/forecast", h.Forecast).Methods(http.MethodPost)
	api.HandleFunc("/history", h.History).Methods(http.MethodGet)

	api.HandleFunc("/recommendations/{level}", h.Recommendations).Methods(http.MethodGet)
	api.HandleFunc("/emergency-tips", h.EmergencyTips).Methods(http.MethodGet)

	api.HandleFunc("/journal", h.AddJournalEntry).Methods(http.MethodPost)
	api.HandleFunc("/journal", h.ListJournal).Methods(http.MethodGet)

	api.HandleFunc("/reports/weekly", h.WeeklyReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/monthly", h.MonthlyReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/before-after", h.BeforeAfterReport).Methods(http.MethodGet)

	api.HandleFunc("/chat", h.Chat).Methods(http.MethodPost)
	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

// ===== Аутентификация =====

// Register регистрирует нового пользователя
// @Summary Зарегистрировать пользователя
// @Description Создает пользователя с именем, email и паролем
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Данные регистрации"
// @Success 201 {object} models.AuthResponse "Пользователь создан"
// @Failure 400 {object} map[string]string "Неверный запрос"
// @Router /register [post]
func (h *HTTPHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.wellnessService.Register(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// Login выполняет вход пользователя
// @Summary Войти
// @Description Проверяет email и пароль, возвращает данные пользователя
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Данные входа"
// @Success 200 {object} models.AuthResponse "Вход выполнен"
// @Failure 401 {object} map[string]string "Неверные учетные данные"
// @Router /login [post]
func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.wellnessService.Login(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// ===== Предсказание =====

// Predict классифицирует уровень стресса по оценке образа жизни
// @Summary Оценить уровень стресса
// @Description Прогоняет оценку через обученную модель; с user_id результат сохраняется в историю
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body models.PredictRequest true "Оценка образа жизни"
// @Success 200 {object} models.PredictResponse "Результат классификации"
// @Failure 400 {object} map[string]string "Неверный запрос"
// @Failure 503 {object} map[string]string "Модель не загружена"
// @Router /predict [post]
func (h *HTTPHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.wellnessService.Predict(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// AnalyzeTriggers выделяет стресс-факторы в оценке
// @Summary Проанализировать триггеры стресса
// @Description Пороговый анализ факторов образа жизни, не требует модели
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body models.AssessmentInput true "Оценка образа жизни"
// @Success 200 {object} models.TriggersResponse "Найденные триггеры"
// @Failure 400 {object} map[string]string "Неверный запрос"
// @Router /analyze-triggers [post]
func (h *HTTPHandler) AnalyzeTriggers(w http.ResponseWriter, r *http.Request) {
	var input models.AssessmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respondJSON(w, http.StatusOK, h.wellnessService.AnalyzeTriggers(&input))
}

// Forecast строит прогноз по истории пользователя
// @Summary Прогноз уровня стресса
// @Description Оценивает тенденцию по последним записям истории
// @Tags Prediction
// @Accept json
// @Produce json
// @Param request body models.ForecastRequest true "Пользователь"
// @Success 200 {object} models.ForecastResponse "Прогноз"
// @Failure 400 {object} map[string]string "Неверный запрос"
// @Router /forecast [post]
func (h *HTTPHandler) Forecast(w http.ResponseWriter, r *http.Request) {
	var req models.ForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.wellnessService.Forecast(r.Context(), req.UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// History возвращает историю предсказаний пользователя
// @Summary История предсказаний
// @Tags Prediction
// @Produce json
// @Param user_id query string true "ID пользователя"
// @Success 200 {object} models.HistoryResponse "История"
// @Failure 400 {object} map[string]string "Неверный запрос"
// @Router /history [get]
func (h *HTTPHandler) History(w http.ResponseWriter, r *http.Request) {
	resp, err := h.wellnessService.History(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// ===== Рекомендации =====

// Recommendations возвращает рекомендации для уровня стресса
// @Summary Рекомендации по уровню стресса
// @Tags Wellness
// @Produce json
// @Param level path string true "Уровень стресса (Low, Medium, High)"
// @Success 200 {object} models.RecommendationsResponse "Рекомендации"
// @Failure 400 {object} map[string]string "Неизвестный уровень"
// @Router /recommendations/{level} [get]
func (h *HTTPHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	level := mux.Vars(r)["level"]

	resp, err := h.wellnessService.Recommendations(level)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// EmergencyTips возвращает пошаговые действия при остром стрессе
// @Summary Советы при остром стрессе
// @Tags Wellness
// @Produce json
// @Success 200 {object} models.EmergencyTipsResponse "Советы"
// @Router /emergency-tips [get]
func (h *HTTPHandler) EmergencyTips(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.wellnessService.EmergencyTips())
}

// ===== Дневник настроения =====

// AddJournalEntry сохраняет запись дневника
// @Summary Добавить запись в дневник
// @Tags Journal
// @Accept json
// @Produce json
// @Param request body models.JournalRequest true "Запись дневника"
// @Success 201 {object} models.JournalCreatedResponse "Запись сохранена"
// @Failure 400 {object} map[string]string "Неверный запрос"
// @Router /journal [post]
func (h *HTTPHandler) AddJournalEntry(w http.ResponseWriter, r *http.Request) {
	var req models.JournalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.wellnessService.AddJournalEntry(r.Context(), &req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, resp)
}

// ListJournal возвращает записи дневника пользователя
// @Summary Записи дневника
// @Tags Journal
// @Produce json
// @Param user_id query string true "ID пользователя"
// @Success 200 {object} models.JournalListResponse "Записи"
// @Failure 400 {object} map[string]string "Неверный запрос"
// @Router /journal [get]
func (h *HTTPHandler) ListJournal(w http.ResponseWriter, r *http.Request) {
	resp, err := h.wellnessService.ListJournal(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// ===== Отчеты =====

// WeeklyReport возвращает отчет за 7 дней
// @Summary Недельный отчет
// @Tags Reports
// @Produce json
// @Param user_id query string true "ID пользователя"
// @Success 200 {object} models.Report "Отчет"
// @Failure 400 {object} map[string]string "Неверный запрос"
// @Router /reports/weekly [get]
func (h *HTTPHandler) WeeklyReport(w http.ResponseWriter, r *http.Request) {
	resp, err := h.wellnessService.WeeklyReport(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// MonthlyReport возвращает отчет за 30 дней
// @Summary Месячный отчет
// @Tags Reports
// @Produce json
// @Param user_id query string true "ID пользователя"
// @Success 200 {object} models.Report "Отчет"
// @Failure 400 {object} map[string]string "Неверный запрос"
// @Router /reports/monthly [get]
func (h *HTTPHandler) MonthlyReport(w http.ResponseWriter, r *http.Request) {
	resp, err := h.wellnessService.MonthlyReport(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// BeforeAfterReport сравнивает первую и последнюю оценку
// @Summary Отчет до/после
// @Tags Reports
// @Produce json
// @Param user_id query string true "ID пользователя"
// @Success 200 {object} models.BeforeAfterReport "Сравнение"
// @Failure 400 {object} map[string]string "Неверный запрос"
// @Router /reports/before-after [get]
func (h *HTTPHandler) BeforeAfterReport(w http.ResponseWriter, r *http.Request) {
	resp, err := h.wellnessService.BeforeAfter(r.Context(), r.URL.Query().Get("user_id"))
	if err != nil {
		h.handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// ===== Чат =====

// Chat отвечает на сообщение пользователя
// @Summary Чат поддержки
// @Description Основной ответ генерирует LLM, при недоступности — словарь по ключевым словам
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Сообщение"
// @Success 200 {object} models.ChatResponse "Ответ"
// @Failure 400 {object} map[string]string "Неверный запрос"
// @Router /chat [post]
func (h *HTTPHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	respondJSON(w, http.StatusOK, h.wellnessService.Chat(r.Context(), req.Message))
}

// ===== Health =====

// Health возвращает состояние сервиса
// @Summary Проверка состояния
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthResponse "Состояние сервиса"
// @Router /health [get]
func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.wellnessService.Health(r.Context()))
}

// ===== Вспомогательные =====

// handleError отображает ошибки сервиса в HTTP статусы
func (h *HTTPHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrModelUnavailable):
		respondError(w, http.StatusServiceUnavailable, "Model is not loaded, prediction is unavailable")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrValidation), errors.Is(err, pipeline.ErrInvalidInput), errors.Is(err, storage.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, "Record not found")
	default:
		log.Printf("[ERROR] Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
