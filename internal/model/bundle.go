package model

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/stresswell/stress-backend/internal/pipeline"
)

// BundleVersion — текущая версия формата бандла
const BundleVersion = 1

// Bundle — сериализуемое состояние обученной модели: трансформация
// признаков, веса классификатора и метки классов. Загрузка атомарна:
// либо весь бандл валиден, либо модель не используется вовсе.
type Bundle struct {
	Version    int                 `json:"version"`
	CreatedAt  time.Time           `json:"created_at"`
	Transform  *pipeline.Transform `json:"transform"`
	Classifier *Classifier         `json:"classifier"`
	Labels     []string            `json:"labels"`
}

// Validate проверяет внутреннюю согласованность бандла: состояние
// трансформации, веса и соответствие размерностей между ними
func (b *Bundle) Validate() error {
	if b.Version != BundleVersion {
		return fmt.Errorf("unsupported bundle version %d, want %d", b.Version, BundleVersion)
	}
	if b.Transform == nil {
		return fmt.Errorf("bundle has no transform")
	}
	if err := b.Transform.Validate(); err != nil {
		return fmt.Errorf("bundle transform is invalid: %w", err)
	}
	if b.Classifier == nil {
		return fmt.Errorf("bundle has no classifier")
	}
	if err := b.Classifier.Validate(); err != nil {
		return fmt.Errorf("bundle classifier is invalid: %w", err)
	}
	if b.Classifier.Dim() != b.Transform.Dim() {
		return fmt.Errorf("classifier expects %d features, transform produces %d", b.Classifier.Dim(), b.Transform.Dim())
	}
	if len(b.Labels) != len(b.Classifier.Classes) {
		return fmt.Errorf("bundle has %d labels for %d classes", len(b.Labels), len(b.Classifier.Classes))
	}
	for i, class := range b.Classifier.Classes {
		name, ok := pipeline.LabelName(class)
		if !ok {
			return fmt.Errorf("bundle class %d has no known label", class)
		}
		if b.Labels[i] != name {
			return fmt.Errorf("bundle label for class %d is %q, want %q", class, b.Labels[i], name)
		}
	}
	return nil
}

// Save сериализует бандл в JSON файл
func (b *Bundle) Save(path string) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid bundle: %w", err)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bundle: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bundle: %w", err)
	}
	return nil
}

// LoadBundle читает и валидирует бандл. Любая ошибка означает, что модель
// использовать нельзя — частично загруженного состояния не бывает.
func LoadBundle(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle: %w", err)
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse bundle: %w", err)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
