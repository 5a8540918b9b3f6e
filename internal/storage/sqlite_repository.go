package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/stresswell/stress-backend/pkg/models"
)

// SQLiteRepository реализует хранилище поверх встраиваемой SQLite.
// Вариант по умолчанию: не требует внешних сервисов.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository открывает базу по пути и создает схему при
// необходимости
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite не поддерживает конкурентную запись из нескольких соединений
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &SQLiteRepository{db: db}
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *SQLiteRepository) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS stress_history (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			stress_level TEXT NOT NULL,
			probabilities TEXT,
			input_data TEXT,
			prediction_date TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stress_history_user ON stress_history (user_id, prediction_date)`,
		`CREATE TABLE IF NOT EXISTS mood_journal (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			mood TEXT NOT NULL,
			notes TEXT,
			entry_date TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mood_journal_user ON mood_journal (user_id, entry_date)`,
	}

	for _, stmt := range schema {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	return nil
}

// Close закрывает соединение с БД
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Ping проверяет доступность хранилища
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Name возвращает имя бэкенда для health-ответа
func (r *SQLiteRepository) Name() string {
	return "sqlite"
}

// ===== Пользователи =====

func (r *SQLiteRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = ?
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// ===== История предсказаний =====

func (r *SQLiteRepository) SavePrediction(ctx context.Context, record *models.PredictionRecord) error {
	probsJSON, err := json.Marshal(record.Probabilities)
	if err != nil {
		return fmt.Errorf("failed to marshal probabilities: %w", err)
	}

	query := `
		INSERT INTO stress_history (id, user_id, stress_level, probabilities, input_data, prediction_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.StressLevel,
		string(probsJSON),
		string(record.InputData),
		record.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) ListPredictions(ctx context.Context, userID string, limit int) ([]*models.PredictionRecord, error) {
	query := `
		SELECT id, user_id, stress_level, probabilities, input_data, prediction_date
		FROM stress_history
		WHERE user_id = ?
		ORDER BY prediction_date DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

func (r *SQLiteRepository) ListPredictionsSince(ctx context.Context, userID string, since time.Time) ([]*models.PredictionRecord, error) {
	query := `
		SELECT id, user_id, stress_level, probabilities, input_data, prediction_date
		FROM stress_history
		WHERE user_id = ? AND prediction_date >= ?
		ORDER BY prediction_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	return scanPredictions(rows)
}

func scanPredictions(rows *sql.Rows) ([]*models.PredictionRecord, error) {
	var records []*models.PredictionRecord

	for rows.Next() {
		var record models.PredictionRecord
		var probsJSON, inputJSON sql.NullString

		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.StressLevel,
			&probsJSON,
			&inputJSON,
			&record.CreatedAt,
		)
		if err != nil {
			continue // Пропускаем поврежденные записи
		}

		if probsJSON.Valid && probsJSON.String != "" && probsJSON.String != "null" {
			if err := json.Unmarshal([]byte(probsJSON.String), &record.Probabilities); err != nil {
				record.Probabilities = nil
			}
		}
		if inputJSON.Valid && inputJSON.String != "" {
			record.InputData = json.RawMessage(inputJSON.String)
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}

// ===== Дневник настроения =====

func (r *SQLiteRepository) CreateJournalEntry(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		INSERT INTO mood_journal (id, user_id, mood, notes, entry_date)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Mood,
		entry.Notes,
		entry.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) ListJournalEntries(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error) {
	query := `
		SELECT id, user_id, mood, notes, entry_date
		FROM mood_journal
		WHERE user_id = ?
		ORDER BY entry_date DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		var entry models.JournalEntry
		var notes sql.NullString

		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Mood, &notes, &entry.CreatedAt); err != nil {
			continue
		}
		entry.Notes = notes.String
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
