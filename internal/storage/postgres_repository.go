package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/stresswell/stress-backend/pkg/models"
)

// PostgresRepository реализует хранилище поверх PostgreSQL
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository создает репозиторий из строки подключения
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Настройки пула соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	repo := &PostgresRepository{db: db}
	if err := repo.migrate(); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *PostgresRepository) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS stress_history (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			stress_level TEXT NOT NULL,
			probabilities JSONB,
			input_data JSONB,
			prediction_date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_stress_history_user ON stress_history (user_id, prediction_date)`,
		`CREATE TABLE IF NOT EXISTS mood_journal (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			mood TEXT NOT NULL,
			notes TEXT,
			entry_date TIMESTAMPTZ NOT NULL
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
func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

// Ping проверяет доступность хранилища
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Name возвращает имя бэкенда для health-ответа
func (r *PostgresRepository) Name() string {
	return "postgres"
}

// ===== Пользователи =====

func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)

	if err != nil {
		// 23505 = unique_violation
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
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

func (r *PostgresRepository) SavePrediction(ctx context.Context, record *models.PredictionRecord) error {
	probsJSON, err := json.Marshal(record.Probabilities)
	if err != nil {
		return fmt.Errorf("failed to marshal probabilities: %w", err)
	}

	inputJSON := record.InputData
	if len(inputJSON) == 0 {
		inputJSON = json.RawMessage("null")
	}

	query := `
		INSERT INTO stress_history (id, user_id, stress_level, probabilities, input_data, prediction_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.StressLevel,
		probsJSON,
		[]byte(inputJSON),
		record.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ListPredictions(ctx context.Context, userID string, limit int) ([]*models.PredictionRecord, error) {
	query := `
		SELECT id, user_id, stress_level, probabilities, input_data, prediction_date
		FROM stress_history
		WHERE user_id = $1
		ORDER BY prediction_date DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	return scanPostgresPredictions(rows)
}

func (r *PostgresRepository) ListPredictionsSince(ctx context.Context, userID string, since time.Time) ([]*models.PredictionRecord, error) {
	query := `
		SELECT id, user_id, stress_level, probabilities, input_data, prediction_date
		FROM stress_history
		WHERE user_id = $1 AND prediction_date >= $2
		ORDER BY prediction_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer rows.Close()

	return scanPostgresPredictions(rows)
}

func scanPostgresPredictions(rows *sql.Rows) ([]*models.PredictionRecord, error) {
	var records []*models.PredictionRecord

	for rows.Next() {
		var record models.PredictionRecord
		var probsJSON, inputJSON []byte

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

		if len(probsJSON) > 0 {
			if err := json.Unmarshal(probsJSON, &record.Probabilities); err != nil {
				record.Probabilities = nil
			}
		}
		if len(inputJSON) > 0 && string(inputJSON) != "null" {
			record.InputData = json.RawMessage(inputJSON)
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}

// ===== Дневник настроения =====

func (r *PostgresRepository) CreateJournalEntry(ctx context.Context, entry *models.JournalEntry) error {
	query := `
		INSERT INTO mood_journal (id, user_id, mood, notes, entry_date)
		VALUES ($1, $2, $3, $4, $5)
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

func (r *PostgresRepository) ListJournalEntries(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error) {
	query := `
		SELECT id, user_id, mood, notes, entry_date
		FROM mood_journal
		WHERE user_id = $1
		ORDER BY entry_date DESC
		LIMIT $2
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
