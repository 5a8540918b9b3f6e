package pipeline

import "testing"

func labeledSet(counts map[int]int) ([]Record, []int) {
	var records []Record
	var labels []int
	for _, class := range []int{1, 2, 3} {
		for i := 0; i < counts[class]; i++ {
			records = append(records, Record{
				Categorical: map[string]string{"Gender": "Male"},
				Numeric:     map[string]float64{"Age": float64(class*100 + i)},
			})
			labels = append(labels, class)
		}
	}
	return records, labels
}

func TestBalanceDownsamplesToSmallestClass(t *testing.T) {
	records, labels := labeledSet(map[int]int{1: 10, 2: 4, 3: 7})

	balRecords, balLabels := Balance(records, labels, 42)

	if len(balRecords) != 12 || len(balLabels) != 12 {
		t.Fatalf("balanced size = %d/%d, want 12/12", len(balRecords), len(balLabels))
	}

	counts := make(map[int]int)
	for _, label := range balLabels {
		counts[label]++
	}
	for _, class := range []int{1, 2, 3} {
		if counts[class] != 4 {
			t.Errorf("class %d count = %d, want 4", class, counts[class])
		}
	}
}

func TestBalanceSamplesWithoutReplacement(t *testing.T) {
	records, labels := labeledSet(map[int]int{1: 10, 2: 4, 3: 7})

	balRecords, _ := Balance(records, labels, 42)

	seen := make(map[float64]bool)
	for _, rec := range balRecords {
		age := rec.Numeric["Age"]
		if seen[age] {
			t.Fatalf("record with Age=%v sampled twice", age)
		}
		seen[age] = true
	}
}

func TestBalanceIsDeterministic(t *testing.T) {
	records, labels := labeledSet(map[int]int{1: 10, 2: 4, 3: 7})

	firstRecords, firstLabels := Balance(records, labels, 42)
	secondRecords, secondLabels := Balance(records, labels, 42)

	if len(firstRecords) != len(secondRecords) {
		t.Fatalf("run sizes differ: %d vs %d", len(firstRecords), len(secondRecords))
	}
	for i := range firstRecords {
		if firstRecords[i].Numeric["Age"] != secondRecords[i].Numeric["Age"] {
			t.Errorf("records differ at %d", i)
		}
		if firstLabels[i] != secondLabels[i] {
			t.Errorf("labels differ at %d", i)
		}
	}
}

func TestBalanceEmptyInput(t *testing.T) {
	records, labels := Balance(nil, nil, 42)
	if records != nil || labels != nil {
		t.Errorf("expected nil results for empty input, got %v / %v", records, labels)
	}
}
