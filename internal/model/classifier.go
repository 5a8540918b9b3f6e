package model

import (
	"fmt"
	"math"
)

// Classifier — мультиномиальная логистическая регрессия поверх вектора
// признаков пайплайна. Weights хранит по строке на класс; последний элемент
// строки — смещение. Веса фиксируются при обучении, Predict безопасен для
// конкурентных вызовов.
type Classifier struct {
	Classes []int       `json:"classes"`
	Weights [][]float64 `json:"weights"`
}

// TrainOptions — гиперпараметры обучения
type TrainOptions struct {
	Epochs       int
	LearningRate float64
}

// Dim возвращает ожидаемую размерность входного вектора (без смещения)
func (c *Classifier) Dim() int {
	if len(c.Weights) == 0 {
		return 0
	}
	return len(c.Weights[0]) - 1
}

// Validate проверяет согласованность загруженных весов
func (c *Classifier) Validate() error {
	if len(c.Classes) == 0 {
		return fmt.Errorf("classifier has no classes")
	}
	if len(c.Weights) != len(c.Classes) {
		return fmt.Errorf("classifier has %d weight rows for %d classes", len(c.Weights), len(c.Classes))
	}
	width := len(c.Weights[0])
	if width < 2 {
		return fmt.Errorf("classifier weight rows are too short")
	}
	for i, row := range c.Weights {
		if len(row) != width {
			return fmt.Errorf("classifier weight row %d has length %d, want %d", i, len(row), width)
		}
	}
	seen := make(map[int]bool, len(c.Classes))
	for _, class := range c.Classes {
		if seen[class] {
			return fmt.Errorf("classifier has duplicate class %d", class)
		}
		seen[class] = true
	}
	return nil
}

// Predict возвращает код предсказанного класса и вероятности в порядке
// Classes. При равных вероятностях выигрывает класс с меньшим индексом.
func (c *Classifier) Predict(vector []float64) (int, []float64, error) {
	if len(vector) != c.Dim() {
		return 0, nil, fmt.Errorf("feature vector has length %d, want %d", len(vector), c.Dim())
	}

	scores := make([]float64, len(c.Classes))
	for i, row := range c.Weights {
		s := row[len(row)-1]
		for j, v := range vector {
			s += row[j] * v
		}
		scores[i] = s
	}

	probs := softmax(scores)

	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}

	return c.Classes[best], probs, nil
}

// TrainClassifier обучает классификатор полнопакетным градиентным спуском
// по кросс-энтропии. Инициализация нулевая, поэтому результат полностью
// детерминирован для одного и того же входа.
func TrainClassifier(vectors [][]float64, labels []int, classes []int, opts TrainOptions) (*Classifier, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("empty training set")
	}
	if len(vectors) != len(labels) {
		return nil, fmt.Errorf("got %d vectors for %d labels", len(vectors), len(labels))
	}
	if opts.Epochs <= 0 || opts.LearningRate <= 0 {
		return nil, fmt.Errorf("epochs and learning rate must be positive")
	}

	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("vector %d has length %d, want %d", i, len(v), dim)
		}
	}

	classIndex := make(map[int]int, len(classes))
	for i, class := range classes {
		classIndex[class] = i
	}
	for i, label := range labels {
		if _, ok := classIndex[label]; !ok {
			return nil, fmt.Errorf("label %d at sample %d is not in class list", label, i)
		}
	}

	weights := make([][]float64, len(classes))
	for i := range weights {
		weights[i] = make([]float64, dim+1)
	}

	n := float64(len(vectors))
	scores := make([]float64, len(classes))
	grads := make([][]float64, len(classes))
	for i := range grads {
		grads[i] = make([]float64, dim+1)
	}

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		for i := range grads {
			for j := range grads[i] {
				grads[i][j] = 0
			}
		}

		for s, vector := range vectors {
			for i, row := range weights {
				z := row[dim]
				for j, v := range vector {
					z += row[j] * v
				}
				scores[i] = z
			}

			probs := softmax(scores)
			target := classIndex[labels[s]]

			for i := range weights {
				diff := probs[i]
				if i == target {
					diff -= 1
				}
				for j, v := range vector {
					grads[i][j] += diff * v
				}
				grads[i][dim] += diff
			}
		}

		for i := range weights {
			for j := range weights[i] {
				weights[i][j] -= opts.LearningRate * grads[i][j] / n
			}
		}
	}

	return &Classifier{
		Classes: append([]int(nil), classes...),
		Weights: weights,
	}, nil
}

// softmax со сдвигом на максимум для численной устойчивости
func softmax(scores []float64) []float64 {
	max := scores[0]
	for _, s := range scores[1:] {
		if s > max {
			max = s
		}
	}

	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(s - max)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
