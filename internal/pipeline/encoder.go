package pipeline

import (
	"fmt"
	"sort"
)

// Encoder — one-hot кодировщик категориальных полей. Словарь фиксируется
// при обучении и больше не меняется: повторная подгонка на запросе молча
// изменила бы смысл закодированных колонок.
type Encoder struct {
	Fields     []string            `json:"fields"`
	Vocabulary map[string][]string `json:"vocabulary"`
}

// FitEncoder строит словарь: для каждого поля — отсортированное множество
// различных значений, встреченных в обучающих данных.
func FitEncoder(fields []string, rows []map[string]string) *Encoder {
	vocab := make(map[string][]string, len(fields))

	for _, field := range fields {
		seen := make(map[string]struct{})
		for _, row := range rows {
			if v, ok := row[field]; ok {
				seen[v] = struct{}{}
			}
		}

		values := make([]string, 0, len(seen))
		for v := range seen {
			values = append(values, v)
		}
		sort.Strings(values)
		vocab[field] = values
	}

	return &Encoder{
		Fields:     append([]string(nil), fields...),
		Vocabulary: vocab,
	}
}

// Width возвращает суммарное число индикаторных колонок
func (e *Encoder) Width() int {
	total := 0
	for _, field := range e.Fields {
		total += len(e.Vocabulary[field])
	}
	return total
}

// ColumnNames возвращает имена индикаторных колонок в порядке,
// зафиксированном при обучении: Field_Value
func (e *Encoder) ColumnNames() []string {
	names := make([]string, 0, e.Width())
	for _, field := range e.Fields {
		for _, value := range e.Vocabulary[field] {
			names = append(names, fmt.Sprintf("%s_%s", field, value))
		}
	}
	return names
}

// Encode возвращает индикаторный блок для одного поля. Значение, которого
// не было при обучении, дает нулевой блок: у классификатора нет сигнала для
// невиданных категорий, поэтому нулевой вектор — определенный fallback,
// а не ошибка.
func (e *Encoder) Encode(field, value string) []float64 {
	values := e.Vocabulary[field]
	block := make([]float64, len(values))
	for i, v := range values {
		if v == value {
			block[i] = 1
			break
		}
	}
	return block
}
