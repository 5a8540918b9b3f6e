package pipeline

import (
	"errors"
	"fmt"
)

// ErrInvalidInput помечает ошибки клиентского ввода: отсутствующее
// обязательное поле, неверная форма записи. Такие ошибки должны попадать
// к вызывающему как 400, а не как сбой сервиса.
var ErrInvalidInput = errors.New("invalid input")

// Transform — обученное состояние пайплайна: словарь one-hot кодировщика,
// параметры масштабирования и итоговый порядок колонок. Состояние
// неизменяемо после Fit и безопасно для конкурентного чтения.
type Transform struct {
	Encoder *Encoder `json:"encoder"`
	Scaler  *Scaler  `json:"scaler"`
	Columns []string `json:"columns"`
}

// Fit строит обученное состояние по обучающей выборке: словарь категорий,
// среднее/отклонение числовых полей (включая оба поля времени после
// конвертации в минуты) и фиксированный порядок колонок.
func Fit(records []Record) (*Transform, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty training set", ErrInvalidInput)
	}

	catRows := make([]map[string]string, len(records))
	numRows := make([]map[string]float64, len(records))
	for i, rec := range records {
		catRows[i] = rec.Categorical
		numRows[i] = numericValues(rec)
	}

	encoder := FitEncoder(CategoricalFields, catRows)
	scaler := FitScaler(scalerFields(), numRows)

	t := &Transform{
		Encoder: encoder,
		Scaler:  scaler,
	}
	t.Columns = t.deriveColumns()

	return t, nil
}

// Dim возвращает размерность итогового вектора признаков
func (t *Transform) Dim() int {
	return len(t.Columns)
}

// Apply преобразует одну запись в вектор признаков фиксированной длины.
// Преобразование чистое и детерминированное: одинаковый вход при одном и
// том же обученном состоянии дает побитово идентичный вектор.
func (t *Transform) Apply(rec Record) ([]float64, error) {
	// Обязательные категориальные поля: отсутствие поля — ошибка ввода,
	// в отличие от неизвестного значения внутри существующего поля
	for _, field := range CategoricalFields {
		if _, ok := rec.Categorical[field]; !ok {
			return nil, fmt.Errorf("%w: missing required categorical field %q", ErrInvalidInput, field)
		}
	}

	nums := numericValues(rec)

	vector := make([]float64, 0, t.Dim())

	// Числовые поля масштабируются только если присутствуют; отсутствующее
	// поле дает 0 (то есть среднее обучающей выборки в исходной шкале)
	for _, field := range t.Scaler.Fields {
		if v, ok := nums[field]; ok {
			vector = append(vector, t.Scaler.Scale(field, v))
		} else {
			vector = append(vector, 0)
		}
	}

	for _, field := range t.Encoder.Fields {
		vector = append(vector, t.Encoder.Encode(field, rec.Categorical[field])...)
	}

	return vector, nil
}

// Validate проверяет согласованность загруженного состояния. Любое
// расхождение между сохраненным порядком колонок и порядком, выводимым из
// словаря и параметров масштабирования, молча испортило бы каждое
// предсказание — поэтому оно отлавливается при загрузке.
func (t *Transform) Validate() error {
	if t.Encoder == nil || t.Scaler == nil {
		return errors.New("transform is missing encoder or scaler")
	}
	if len(t.Columns) == 0 {
		return errors.New("transform has no columns")
	}

	for _, field := range t.Encoder.Fields {
		if _, ok := t.Encoder.Vocabulary[field]; !ok {
			return fmt.Errorf("encoder vocabulary is missing field %q", field)
		}
	}
	for _, field := range t.Scaler.Fields {
		if _, ok := t.Scaler.Mean[field]; !ok {
			return fmt.Errorf("scaler mean is missing field %q", field)
		}
		if _, ok := t.Scaler.Std[field]; !ok {
			return fmt.Errorf("scaler std is missing field %q", field)
		}
	}

	derived := t.deriveColumns()
	if len(derived) != len(t.Columns) {
		return fmt.Errorf("column order mismatch: stored %d columns, derived %d", len(t.Columns), len(derived))
	}
	for i, name := range derived {
		if t.Columns[i] != name {
			return fmt.Errorf("column order mismatch at %d: stored %q, derived %q", i, t.Columns[i], name)
		}
	}

	return nil
}

// deriveColumns выводит порядок колонок из состояния: сначала числовые поля
// в порядке датасета, затем индикаторные блоки по каждому категориальному полю
func (t *Transform) deriveColumns() []string {
	columns := make([]string, 0, len(t.Scaler.Fields)+t.Encoder.Width())
	columns = append(columns, t.Scaler.Fields...)
	columns = append(columns, t.Encoder.ColumnNames()...)
	return columns
}

// scalerFields — числовые поля плюс оба поля времени (после конвертации
// в минуты они масштабируются наравне с остальными)
func scalerFields() []string {
	fields := make([]string, 0, len(NumericFields)+len(TimeFields))
	fields = append(fields, NumericFields...)
	fields = append(fields, TimeFields...)
	return fields
}

// numericValues собирает числовые значения записи. Поля времени
// присутствуют всегда: отсутствующее или нечитаемое время дает дефолт.
// Прочие числовые поля попадают в карту только если присутствуют в записи.
func numericValues(rec Record) map[string]float64 {
	nums := make(map[string]float64, len(rec.Numeric)+len(TimeFields))
	for _, field := range NumericFields {
		if v, ok := rec.Numeric[field]; ok {
			nums[field] = v
		}
	}
	for _, field := range TimeFields {
		nums[field] = float64(ClockToMinutes(rec.Times[field]))
	}
	return nums
}
