package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stresswell/stress-backend/pkg/models"
)

const mongoConnectTimeout = 10 * time.Second

// MongoRepository реализует хранилище поверх MongoDB
type MongoRepository struct {
	client  *mongo.Client
	users   *mongo.Collection
	history *mongo.Collection
	journal *mongo.Collection
}

// userDocument — представление пользователя в коллекции users
type userDocument struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

type predictionDocument struct {
	ID            string             `bson:"_id"`
	UserID        string             `bson:"user_id"`
	StressLevel   string             `bson:"stress_level"`
	Probabilities map[string]float64 `bson:"probabilities,omitempty"`
	InputData     string             `bson:"input_data,omitempty"`
	CreatedAt     time.Time          `bson:"prediction_date"`
}

type journalDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Mood      string    `bson:"mood"`
	Notes     string    `bson:"notes,omitempty"`
	CreatedAt time.Time `bson:"entry_date"`
}

// NewMongoRepository подключается к MongoDB и готовит коллекции и индексы
func NewMongoRepository(uri, database string) (*MongoRepository, error) {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(database)
	repo := &MongoRepository{
		client:  client,
		users:   db.Collection("users"),
		history: db.Collection("stress_history"),
		journal: db.Collection("mood_journal"),
	}

	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}

	return repo, nil
}

func (r *MongoRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	historyIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "prediction_date", Value: -1}},
	}
	if _, err := r.history.Indexes().CreateOne(ctx, historyIndex); err != nil {
		return fmt.Errorf("failed to create history index: %w", err)
	}

	journalIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "entry_date", Value: -1}},
	}
	if _, err := r.journal.Indexes().CreateOne(ctx, journalIndex); err != nil {
		return fmt.Errorf("failed to create journal index: %w", err)
	}

	return nil
}

// Close разрывает соединение с MongoDB
func (r *MongoRepository) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoConnectTimeout)
	defer cancel()
	return r.client.Disconnect(ctx)
}

// Ping проверяет доступность хранилища
func (r *MongoRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}

// Name возвращает имя бэкенда для health-ответа
func (r *MongoRepository) Name() string {
	return "mongodb"
}

// ===== Пользователи =====

func (r *MongoRepository) CreateUser(ctx context.Context, user *models.User) error {
	doc := userDocument{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}

	if _, err := r.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *MongoRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, bson.M{"email": email})
}

func (r *MongoRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.findUser(ctx, bson.M{"_id": id})
}

func (r *MongoRepository) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &models.User{
		ID:           doc.ID,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}, nil
}

// ===== История предсказаний =====

func (r *MongoRepository) SavePrediction(ctx context.Context, record *models.PredictionRecord) error {
	doc := predictionDocument{
		ID:            record.ID,
		UserID:        record.UserID,
		StressLevel:   record.StressLevel,
		Probabilities: record.Probabilities,
		InputData:     string(record.InputData),
		CreatedAt:     record.CreatedAt,
	}

	if _, err := r.history.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}

	return nil
}

func (r *MongoRepository) ListPredictions(ctx context.Context, userID string, limit int) ([]*models.PredictionRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "prediction_date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.history.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer cursor.Close(ctx)

	return decodePredictions(ctx, cursor)
}

func (r *MongoRepository) ListPredictionsSince(ctx context.Context, userID string, since time.Time) ([]*models.PredictionRecord, error) {
	filter := bson.M{
		"user_id":         userID,
		"prediction_date": bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "prediction_date", Value: -1}})

	cursor, err := r.history.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list predictions: %w", err)
	}
	defer cursor.Close(ctx)

	return decodePredictions(ctx, cursor)
}

func decodePredictions(ctx context.Context, cursor *mongo.Cursor) ([]*models.PredictionRecord, error) {
	var records []*models.PredictionRecord

	for cursor.Next(ctx) {
		var doc predictionDocument
		if err := cursor.Decode(&doc); err != nil {
			continue // Пропускаем поврежденные записи
		}

		record := &models.PredictionRecord{
			ID:            doc.ID,
			UserID:        doc.UserID,
			StressLevel:   doc.StressLevel,
			Probabilities: doc.Probabilities,
			CreatedAt:     doc.CreatedAt,
		}
		if doc.InputData != "" {
			record.InputData = json.RawMessage(doc.InputData)
		}

		records = append(records, record)
	}

	return records, cursor.Err()
}

// ===== Дневник настроения =====

func (r *MongoRepository) CreateJournalEntry(ctx context.Context, entry *models.JournalEntry) error {
	doc := journalDocument{
		ID:        entry.ID,
		UserID:    entry.UserID,
		Mood:      entry.Mood,
		Notes:     entry.Notes,
		CreatedAt: entry.CreatedAt,
	}

	if _, err := r.journal.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create journal entry: %w", err)
	}

	return nil
}

func (r *MongoRepository) ListJournalEntries(ctx context.Context, userID string, limit int) ([]*models.JournalEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "entry_date", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.journal.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []*models.JournalEntry
	for cursor.Next(ctx) {
		var doc journalDocument
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		entries = append(entries, &models.JournalEntry{
			ID:        doc.ID,
			UserID:    doc.UserID,
			Mood:      doc.Mood,
			Notes:     doc.Notes,
			CreatedAt: doc.CreatedAt,
		})
	}

	return entries, cursor.Err()
}
