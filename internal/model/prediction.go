package model

// Prediction is the classifier output for one description.
type Prediction struct {
	// Distribution maps every known category label to its probability.
	// Values sum to 1 within floating tolerance, except for the zero
	// prediction returned on empty input, where it is empty.
	Distribution map[string]float64
	// Category is the arg-max label. It is populated even when the caller's
	// threshold would reject it; threshold policy belongs to the caller.
	Category   string
	Confidence float64
}
