package pipeline

import "math/rand"

// Balance выравнивает классы обучающей выборки: каждый класс прореживается
// без возвращения до размера наименьшего. Выборка воспроизводима при одном
// и том же seed. На инференс балансировка не влияет.
func Balance(records []Record, labels []int, seed int64) ([]Record, []int) {
	byClass := make(map[int][]int)
	classOrder := make([]int, 0)
	for i, label := range labels {
		if _, ok := byClass[label]; !ok {
			classOrder = append(classOrder, label)
		}
		byClass[label] = append(byClass[label], i)
	}

	if len(byClass) == 0 {
		return nil, nil
	}

	minCount := -1
	for _, indices := range byClass {
		if minCount < 0 || len(indices) < minCount {
			minCount = len(indices)
		}
	}

	rng := rand.New(rand.NewSource(seed))

	balancedRecords := make([]Record, 0, minCount*len(byClass))
	balancedLabels := make([]int, 0, minCount*len(byClass))

	// Классы обрабатываются в порядке первого появления, чтобы результат
	// не зависел от порядка обхода карты
	for _, class := range classOrder {
		indices := byClass[class]
		perm := rng.Perm(len(indices))
		for _, p := range perm[:minCount] {
			idx := indices[p]
			balancedRecords = append(balancedRecords, records[idx])
			balancedLabels = append(balancedLabels, labels[idx])
		}
	}

	return balancedRecords, balancedLabels
}
