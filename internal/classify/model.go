package classify

import (
	"fmt"
	"math"
	"os"

	"github.com/jbrukh/bayesian"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/common"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/model"
)

// Model is a trained TF-IDF naive Bayes classifier over a fixed set of
// category labels. Inference is a bounded single-threaded call safe to make
// inline; the zero Model is not usable, construct via Load or Train.
type Model struct {
	cl *bayesian.Classifier
}

// Load reads a trained model artifact from disk. A missing artifact is
// reported as common.ErrClassifierUnavailable so callers can degrade to
// manual category selection instead of failing.
func Load(path string) (*Model, error) {
	cl, err := bayesian.NewClassifierFromFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: model artifact %s not found", common.ErrClassifierUnavailable, path)
		}
		return nil, fmt.Errorf("%w: loading %s: %v", common.ErrClassifierUnavailable, path, err)
	}
	return &Model{cl: cl}, nil
}

// Save writes the model artifact to disk.
func (m *Model) Save(path string) error {
	if err := m.cl.WriteToFile(path); err != nil {
		return fmt.Errorf("failed to save model to %s: %w", path, err)
	}
	return nil
}

// Labels returns the model's category labels in training order.
func (m *Model) Labels() []string {
	labels := make([]string, len(m.cl.Classes))
	for i, class := range m.cl.Classes {
		labels[i] = string(class)
	}
	return labels
}

// Predict classifies a description, returning the arg-max label, its
// confidence, and the full probability distribution over all labels. Empty or
// non-text input yields a zero-confidence prediction without error.
func (m *Model) Predict(text string) (model.Prediction, error) {
	terms := Features(text)
	if len(terms) == 0 {
		return model.Prediction{Distribution: map[string]float64{}}, nil
	}

	scores, best, _ := m.cl.LogScores(terms)
	probs := softmax(scores)

	distribution := make(map[string]float64, len(probs))
	for i, class := range m.cl.Classes {
		distribution[string(class)] = probs[i]
	}

	return model.Prediction{
		Category:     string(m.cl.Classes[best]),
		Confidence:   probs[best],
		Distribution: distribution,
	}, nil
}

// PredictWithThreshold classifies a description and applies a confidence
// threshold: below it, no category is returned and confident is false.
func (m *Model) PredictWithThreshold(text string, threshold float64) (string, float64, bool, error) {
	prediction, err := m.Predict(text)
	if err != nil {
		return "", 0, false, err
	}
	if prediction.Confidence >= threshold {
		return prediction.Category, prediction.Confidence, true, nil
	}
	return "", prediction.Confidence, false, nil
}

// softmax normalizes log scores into a probability distribution using the
// log-sum-exp trick to stay stable for strongly negative scores.
func softmax(scores []float64) []float64 {
	maxScore := scores[0]
	for _, s := range scores[1:] {
		if s > maxScore {
			maxScore = s
		}
	}

	probs := make([]float64, len(scores))
	var sum float64
	for i, s := range scores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}
