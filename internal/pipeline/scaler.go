package pipeline

import "math"

// Порог, ниже которого стандартное отклонение считается нулевым
const minStdDev = 1e-9

// Scaler — линейное масштабирование числовых полей (v - mean) / std.
// Параметры фиксируются при обучении.
type Scaler struct {
	Fields []string           `json:"fields"`
	Mean   map[string]float64 `json:"mean"`
	Std    map[string]float64 `json:"std"`
}

// FitScaler вычисляет среднее и стандартное отклонение каждого поля
// по обучающей выборке
func FitScaler(fields []string, rows []map[string]float64) *Scaler {
	mean := make(map[string]float64, len(fields))
	std := make(map[string]float64, len(fields))

	for _, field := range fields {
		var sum float64
		var n int
		for _, row := range rows {
			if v, ok := row[field]; ok {
				sum += v
				n++
			}
		}

		if n == 0 {
			mean[field] = 0
			std[field] = 0
			continue
		}

		m := sum / float64(n)
		var sqDiff float64
		for _, row := range rows {
			if v, ok := row[field]; ok {
				d := v - m
				sqDiff += d * d
			}
		}

		mean[field] = m
		std[field] = math.Sqrt(sqDiff / float64(n))
	}

	return &Scaler{
		Fields: append([]string(nil), fields...),
		Mean:   mean,
		Std:    std,
	}
}

// Scale применяет обученные параметры к одному значению. При нулевом
// стандартном отклонении результат определен как 0, чтобы не получить
// деление на ноль.
func (s *Scaler) Scale(field string, value float64) float64 {
	std, ok := s.Std[field]
	if !ok {
		return value
	}
	if std < minStdDev {
		return 0
	}
	return (value - s.Mean[field]) / std
}
