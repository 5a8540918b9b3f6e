package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/stresswell/stress-backend/pkg/models"
)

// Фиксированная биекция код класса <-> метка. Одинакова для всех вариантов
// хранилища и не должна меняться: она сохраняется в бандле вместе с моделью.
var (
	classCodes = map[string]int{
		models.StressLevelLow:    1,
		models.StressLevelMedium: 2,
		models.StressLevelHigh:   3,
	}
	classNames = map[int]string{
		1: models.StressLevelLow,
		2: models.StressLevelMedium,
		3: models.StressLevelHigh,
	}
)

// LabelCode возвращает код класса для текстовой метки
func LabelCode(label string) (int, bool) {
	code, ok := classCodes[strings.TrimSpace(label)]
	return code, ok
}

// LabelName возвращает текстовую метку для кода класса
func LabelName(code int) (string, bool) {
	name, ok := classNames[code]
	return name, ok
}

// ClassCodes возвращает коды классов в фиксированном порядке
func ClassCodes() []int {
	return []int{1, 2, 3}
}

// ClassNames возвращает метки классов в том же порядке, что и ClassCodes
func ClassNames() []string {
	return []string{models.StressLevelLow, models.StressLevelMedium, models.StressLevelHigh}
}

// Dataset — размеченная обучающая выборка
type Dataset struct {
	Records []Record
	Labels  []int
}

// LoadCSV читает обучающий датасет из CSV файла. Первая строка — заголовок
// с именами полей. Строки с нечитаемой меткой класса пропускаются с
// предупреждением, как и строки с неполным числом колонок.
func LoadCSV(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV разбирает датасет из произвольного io.Reader
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if len(rows) < 2 {
		return nil, fmt.Errorf("dataset has no data rows")
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	columnIndex := make(map[string]int, len(header))
	for i, name := range header {
		columnIndex[name] = i
	}

	targetIdx, ok := columnIndex[TargetField]
	if !ok {
		return nil, fmt.Errorf("dataset is missing target column %q", TargetField)
	}

	ds := &Dataset{}
	skipped := 0

	for lineNo, row := range rows[1:] {
		if len(row) != len(header) {
			log.Printf("[WARN] Skipping dataset line %d: expected %d columns, got %d", lineNo+2, len(header), len(row))
			skipped++
			continue
		}

		label, ok := LabelCode(row[targetIdx])
		if !ok {
			log.Printf("[WARN] Skipping dataset line %d: unknown label %q", lineNo+2, row[targetIdx])
			skipped++
			continue
		}

		rec := Record{
			Categorical: make(map[string]string),
			Numeric:     make(map[string]float64),
			Times:       make(map[string]string),
		}

		for _, field := range CategoricalFields {
			if idx, ok := columnIndex[field]; ok {
				rec.Categorical[field] = strings.TrimSpace(row[idx])
			}
		}
		for _, field := range TimeFields {
			if idx, ok := columnIndex[field]; ok {
				rec.Times[field] = strings.TrimSpace(row[idx])
			}
		}
		for _, field := range NumericFields {
			idx, ok := columnIndex[field]
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
			if err != nil {
				// Отсутствующее числовое значение допустимо: поле просто
				// не попадет в запись
				continue
			}
			rec.Numeric[field] = v
		}

		ds.Records = append(ds.Records, rec)
		ds.Labels = append(ds.Labels, label)
	}

	if len(ds.Records) == 0 {
		return nil, fmt.Errorf("no valid samples found in dataset (%d rows skipped)", skipped)
	}

	if skipped > 0 {
		log.Printf("[WARN] Dataset loaded with %d skipped rows", skipped)
	}

	return ds, nil
}
