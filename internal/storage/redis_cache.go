package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stresswell/stress-backend/pkg/models"
)

// TTL кэшированных значений
const (
	latestPredictionTTL = 24 * time.Hour
	reportTTL           = 10 * time.Minute
)

// RedisCache кэширует последнее предсказание пользователя и собранные
// отчеты. Кэш необязателен: при недоступном Redis сервис работает без него.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache оборачивает подключенный клиент Redis
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// ===== Ключи Redis =====

func latestPredictionKey(userID string) string {
	return fmt.Sprintf("user:%s:prediction:latest", userID)
}

func reportKey(userID, period string) string {
	return fmt.Sprintf("user:%s:report:%s", userID, period)
}

// ===== Последнее предсказание =====

func (c *RedisCache) SetLatestPrediction(ctx context.Context, record *models.PredictionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal prediction: %w", err)
	}

	return c.client.Set(ctx, latestPredictionKey(record.UserID), data, latestPredictionTTL).Err()
}

func (c *RedisCache) GetLatestPrediction(ctx context.Context, userID string) (*models.PredictionRecord, error) {
	data, err := c.client.Get(ctx, latestPredictionKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cached prediction: %w", err)
	}

	var record models.PredictionRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached prediction: %w", err)
	}

	return &record, nil
}

// ===== Отчеты =====

func (c *RedisCache) SetCachedReport(ctx context.Context, userID, period string, report *models.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	return c.client.Set(ctx, reportKey(userID, period), data, reportTTL).Err()
}

func (c *RedisCache) GetCachedReport(ctx context.Context, userID, period string) (*models.Report, error) {
	data, err := c.client.Get(ctx, reportKey(userID, period)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cached report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached report: %w", err)
	}

	return &report, nil
}

// InvalidateReports сбрасывает кэшированные отчеты пользователя. Вызывается
// после нового предсказания, чтобы отчеты не отдавали устаревшие данные.
func (c *RedisCache) InvalidateReports(ctx context.Context, userID string) error {
	pattern := fmt.Sprintf("user:%s:report:*", userID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	pipe := c.client.Pipeline()

	for iter.Next(ctx) {
		pipe.Del(ctx, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan keys: %w", err)
	}

	_, err := pipe.Exec(ctx)
	return err
}
