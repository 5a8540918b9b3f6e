// Команда train обучает классификатор стресса на CSV датасете и сохраняет
// бандл модели для сервера. Обучение полностью детерминировано при
// фиксированном seed.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/stresswell/stress-backend/internal/model"
	"github.com/stresswell/stress-backend/internal/pipeline"
)

func main() {
	dataPath := flag.String("data", "", "path to the training CSV dataset")
	outPath := flag.String("out", "model.json", "path to write the model bundle")
	epochs := flag.Int("epochs", 500, "number of training epochs")
	learningRate := flag.Float64("lr", 0.1, "gradient descent learning rate")
	seed := flag.Int64("seed", 42, "seed for balancing and the train/test split")
	testShare := flag.Float64("test", 0.2, "share of samples held out for evaluation")
	flag.Parse()

	if *dataPath == "" {
		fmt.Fprintln(os.Stderr, "usage: train -data dataset.csv [-out model.json] [-epochs N] [-lr F] [-seed N] [-test F]")
		os.Exit(2)
	}
	if *testShare < 0 || *testShare >= 1 {
		log.Fatalf("[ERROR] -test must be in [0, 1), got %v", *testShare)
	}

	start := time.Now()

	ds, err := pipeline.LoadCSV(*dataPath)
	if err != nil {
		log.Fatalf("[ERROR] Failed to load dataset: %v", err)
	}
	log.Printf("[INFO] Loaded %d samples from %s", len(ds.Records), *dataPath)

	// Балансировка классов прореживанием до размера наименьшего
	records, labels := pipeline.Balance(ds.Records, ds.Labels, *seed)
	log.Printf("[INFO] Balanced dataset: %d samples (%d per class)", len(records), len(records)/len(pipeline.ClassCodes()))

	transform, err := pipeline.Fit(records)
	if err != nil {
		log.Fatalf("[ERROR] Failed to fit transform: %v", err)
	}
	log.Printf("[INFO] Feature vector dimension: %d", transform.Dim())

	vectors := make([][]float64, len(records))
	for i, rec := range records {
		vectors[i], err = transform.Apply(rec)
		if err != nil {
			log.Fatalf("[ERROR] Failed to vectorize sample %d: %v", i, err)
		}
	}

	trainVec, trainLabels, testVec, testLabels := splitDataset(vectors, labels, *testShare, *seed)
	log.Printf("[INFO] Split: %d train / %d test samples", len(trainVec), len(testVec))

	clf, err := model.TrainClassifier(trainVec, trainLabels, pipeline.ClassCodes(), model.TrainOptions{
		Epochs:       *epochs,
		LearningRate: *learningRate,
	})
	if err != nil {
		log.Fatalf("[ERROR] Training failed: %v", err)
	}
	log.Printf("[INFO] Trained classifier: %d epochs, lr=%v", *epochs, *learningRate)

	if len(testVec) > 0 {
		evaluate(clf, testVec, testLabels)
	}

	bundle := &model.Bundle{
		Version:    model.BundleVersion,
		CreatedAt:  time.Now().UTC(),
		Transform:  transform,
		Classifier: clf,
		Labels:     pipeline.ClassNames(),
	}

	if err := bundle.Save(*outPath); err != nil {
		log.Fatalf("[ERROR] Failed to save bundle: %v", err)
	}

	log.Printf("[INFO] Model bundle saved to %s (took %v)", *outPath, time.Since(start).Round(time.Millisecond))
}

// splitDataset делит выборку на обучающую и тестовую части после
// воспроизводимого перемешивания
func splitDataset(vectors [][]float64, labels []int, testShare float64, seed int64) ([][]float64, []int, [][]float64, []int) {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(vectors))

	testCount := int(float64(len(vectors)) * testShare)
	trainCount := len(vectors) - testCount

	trainVec := make([][]float64, 0, trainCount)
	trainLabels := make([]int, 0, trainCount)
	testVec := make([][]float64, 0, testCount)
	testLabels := make([]int, 0, testCount)

	for i, p := range perm {
		if i < trainCount {
			trainVec = append(trainVec, vectors[p])
			trainLabels = append(trainLabels, labels[p])
		} else {
			testVec = append(testVec, vectors[p])
			testLabels = append(testLabels, labels[p])
		}
	}

	return trainVec, trainLabels, testVec, testLabels
}

// evaluate печатает точность и матрицу ошибок на отложенной выборке
func evaluate(clf *model.Classifier, vectors [][]float64, labels []int) {
	classes := pipeline.ClassCodes()
	index := make(map[int]int, len(classes))
	for i, class := range classes {
		index[class] = i
	}

	confusion := make([][]int, len(classes))
	for i := range confusion {
		confusion[i] = make([]int, len(classes))
	}

	correct := 0
	for i, vector := range vectors {
		predicted, _, err := clf.Predict(vector)
		if err != nil {
			log.Fatalf("[ERROR] Evaluation failed: %v", err)
		}
		if predicted == labels[i] {
			correct++
		}
		confusion[index[labels[i]]][index[predicted]]++
	}

	accuracy := float64(correct) / float64(len(vectors)) * 100
	log.Printf("[INFO] Test accuracy: %.2f%% (%d/%d)", accuracy, correct, len(vectors))

	log.Printf("[INFO] Confusion matrix (rows = actual, columns = predicted):")
	header := "          "
	for _, class := range classes {
		name, _ := pipeline.LabelName(class)
		header += fmt.Sprintf("%8s", name)
	}
	log.Println(header)
	for i, class := range classes {
		name, _ := pipeline.LabelName(class)
		row := fmt.Sprintf("%10s", name)
		for j := range classes {
			row += fmt.Sprintf("%8d", confusion[i][j])
		}
		log.Println(row)
	}
}
