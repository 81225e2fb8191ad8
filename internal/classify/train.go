package classify

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jbrukh/bayesian"
	"github.com/schollz/progressbar/v3"
)

// Sample is one labeled training example.
type Sample struct {
	Description string
	Category    string
}

// Train fits a TF-IDF naive Bayes model on labeled samples. At least two
// distinct categories are required.
func Train(samples []Sample) (*Model, error) {
	return train(samples, nil)
}

// train is the single fitting path. progress, when non-nil, is called once
// per sample; learning is per-sample, so it tracks real work even though the
// TF-IDF conversion at the end is a single step.
func train(samples []Sample, progress func()) (*Model, error) {
	classSet := make(map[string]struct{})
	for _, s := range samples {
		if s.Description == "" || s.Category == "" {
			continue
		}
		classSet[s.Category] = struct{}{}
	}
	if len(classSet) < 2 {
		return nil, fmt.Errorf("need at least 2 categories to train, got %d", len(classSet))
	}

	classes := make([]bayesian.Class, 0, len(classSet))
	for name := range classSet {
		classes = append(classes, bayesian.Class(name))
	}

	cl := bayesian.NewClassifierTfIdf(classes...)
	for _, s := range samples {
		if s.Description != "" && s.Category != "" {
			terms := Features(s.Description)
			if len(terms) > 0 {
				cl.Learn(terms, bayesian.Class(s.Category))
			}
		}
		if progress != nil {
			progress()
		}
	}
	cl.ConvertTermsFreqToTfIdf()

	slog.Info("model trained", "samples", len(samples), "categories", len(classes))
	return &Model{cl: cl}, nil
}

// TrainCSV fits a model from a CSV file with description and category
// columns, in either order, identified by the header row. Rows with missing
// values are skipped. Progress is rendered when showProgress is set.
func TrainCSV(path string, showProgress bool) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open training data: %w", err)
	}
	defer f.Close()

	samples, err := readSamples(f)
	if err != nil {
		return nil, fmt.Errorf("bad training data %s: %w", path, err)
	}

	var progress func()
	if showProgress {
		bar := progressbar.Default(int64(len(samples)), "training")
		progress = func() { _ = bar.Add(1) }
	}

	m, err := train(samples, progress)
	if err != nil {
		return nil, fmt.Errorf("training data %s: %w", path, err)
	}
	return m, nil
}

// readSamples parses CSV rows, locating the description and category columns
// from the header.
func readSamples(r io.Reader) ([]Sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	descCol, catCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "description":
			descCol = i
		case "category":
			catCol = i
		}
	}
	if descCol < 0 || catCol < 0 {
		return nil, fmt.Errorf("csv must have description and category columns, got %v", header)
	}

	var samples []Sample
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		if descCol >= len(record) || catCol >= len(record) {
			continue
		}
		desc := strings.TrimSpace(record[descCol])
		cat := strings.TrimSpace(record[catCol])
		if desc == "" || cat == "" {
			continue
		}
		samples = append(samples, Sample{Description: desc, Category: cat})
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("no usable training rows found")
	}
	return samples, nil
}
