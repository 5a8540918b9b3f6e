package model

import (
	"fmt"
	"math"

	"github.com/stresswell/stress-backend/internal/pipeline"
)

// Prediction — результат классификации одной записи. Вероятности даны в
// процентах, округленных до двух знаков, и индексированы меткой класса.
type Prediction struct {
	Level         string
	Probabilities map[string]float64
}

// Predictor — неизменяемая обертка над валидным бандлом. Создается один раз
// при старте процесса и дальше только читается, поэтому никакой
// синхронизации не требуется.
type Predictor struct {
	bundle *Bundle
}

// NewPredictor оборачивает бандл, предварительно валидируя его
func NewPredictor(bundle *Bundle) (*Predictor, error) {
	if bundle == nil {
		return nil, fmt.Errorf("bundle is nil")
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &Predictor{bundle: bundle}, nil
}

// LoadPredictor загружает бандл из файла и оборачивает его
func LoadPredictor(path string) (*Predictor, error) {
	bundle, err := LoadBundle(path)
	if err != nil {
		return nil, err
	}
	return &Predictor{bundle: bundle}, nil
}

// Labels возвращает метки классов в порядке кодов
func (p *Predictor) Labels() []string {
	return append([]string(nil), p.bundle.Labels...)
}

// Predict прогоняет запись через трансформацию и классификатор.
// Ошибки ввода пробрасываются как pipeline.ErrInvalidInput.
func (p *Predictor) Predict(rec pipeline.Record) (*Prediction, error) {
	vector, err := p.bundle.Transform.Apply(rec)
	if err != nil {
		return nil, err
	}

	code, probs, err := p.bundle.Classifier.Predict(vector)
	if err != nil {
		return nil, err
	}

	level, ok := pipeline.LabelName(code)
	if !ok {
		return nil, fmt.Errorf("classifier returned unknown class %d", code)
	}

	result := &Prediction{
		Level:         level,
		Probabilities: make(map[string]float64, len(probs)),
	}
	for i, prob := range probs {
		result.Probabilities[p.bundle.Labels[i]] = roundPercent(prob)
	}
	return result, nil
}

// roundPercent переводит вероятность в проценты с двумя знаками
func roundPercent(p float64) float64 {
	return math.Round(p*10000) / 100
}
