package classifier

import (
	"errors"
	"math"
	"sort"

	"bookrec/internal/adapter/analyzer"
	"bookrec/internal/adapter/index"
)

// ErrTooFewClasses is returned when training data carries fewer than two
// distinct labels; a single-class model cannot discriminate anything.
var ErrTooFewClasses = errors.New("classifier: need at least two distinct genres to train")

var errNoClasses = errors.New("classifier: model has no classes")

// NaiveBayes is a multinomial Naive Bayes model over tf-idf features,
// trained on each book's primary genre. It predicts a single label with a
// posterior probability.
type NaiveBayes struct {
	features *index.Index
	classes  []string
	logPrior []float64
	// logLikelihood[c][t] is log theta for term t under class c,
	// Laplace-smoothed over summed tf-idf weights.
	logLikelihood [][]float64
}

// TrainNaiveBayes fits a model on parallel slices of raw texts and labels.
// Returns ErrTooFewClasses when labels contain fewer than two distinct values.
func TrainNaiveBayes(texts, labels []string, normalizer *analyzer.Normalizer, maxFeatures int) (*NaiveBayes, error) {
	if maxFeatures <= 0 {
		maxFeatures = 10000
	}

	classIndex := make(map[string]int)
	var classes []string
	for _, label := range labels {
		if _, ok := classIndex[label]; !ok {
			classIndex[label] = len(classes)
			classes = append(classes, label)
		}
	}
	if len(classes) < 2 {
		return nil, ErrTooFewClasses
	}
	sort.Strings(classes)
	for i, c := range classes {
		classIndex[c] = i
	}

	features := index.Build(texts, normalizer, index.Options{MaxFeatures: maxFeatures, Bigrams: true})
	vocabSize := features.VocabSize()

	// Accumulate per-class feature mass and document counts.
	classCounts := make([]float64, len(classes))
	featureMass := make([][]float64, len(classes))
	for c := range featureMass {
		featureMass[c] = make([]float64, vocabSize)
	}
	for i, text := range texts {
		c := classIndex[labels[i]]
		classCounts[c]++
		for term, w := range features.Vectorize(text) {
			featureMass[c][term] += w
		}
	}

	const alpha = 1.0
	nb := &NaiveBayes{
		features:      features,
		classes:       classes,
		logPrior:      make([]float64, len(classes)),
		logLikelihood: make([][]float64, len(classes)),
	}
	total := float64(len(texts))
	for c := range classes {
		nb.logPrior[c] = math.Log(classCounts[c] / total)

		var mass float64
		for _, w := range featureMass[c] {
			mass += w
		}
		denom := math.Log(mass + alpha*float64(vocabSize))
		nb.logLikelihood[c] = make([]float64, vocabSize)
		for t, w := range featureMass[c] {
			nb.logLikelihood[c][t] = math.Log(w+alpha) - denom
		}
	}

	return nb, nil
}

// Classes returns the sorted label set the model was trained on.
func (nb *NaiveBayes) Classes() []string {
	return nb.classes
}

// Predict returns the most probable genre for the text and its posterior
// probability in [0,1]. Text with no in-vocabulary terms falls back to the
// class priors alone.
func (nb *NaiveBayes) Predict(text string) (string, float64, error) {
	if len(nb.classes) == 0 {
		return "", 0, errNoClasses
	}

	vec := nb.features.Vectorize(text)

	logPost := make([]float64, len(nb.classes))
	for c := range nb.classes {
		score := nb.logPrior[c]
		for term, w := range vec {
			score += w * nb.logLikelihood[c][term]
		}
		logPost[c] = score
	}

	// Softmax with the usual max-shift for stability.
	best, maxLog := 0, logPost[0]
	for c, lp := range logPost {
		if lp > maxLog {
			best, maxLog = c, lp
		}
	}
	var sum float64
	for _, lp := range logPost {
		sum += math.Exp(lp - maxLog)
	}

	return nb.classes[best], 1 / sum, nil
}
