package classify

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/common"
)

func trainTestModel(t *testing.T) *Model {
	t.Helper()

	samples := []Sample{
		{"кофе в старбакс", "Кафе"},
		{"кофе с собой", "Кафе"},
		{"капучино и круассан", "Кафе"},
		{"обед в кафе", "Кафе"},
		{"латте в кофейне", "Кафе"},
		{"такси до работы", "Транспорт"},
		{"такси домой", "Транспорт"},
		{"метро проездной", "Транспорт"},
		{"автобус билет", "Транспорт"},
		{"бензин на заправке", "Транспорт"},
		{"продукты в магазине", "Продукты"},
		{"продукты на неделю", "Продукты"},
		{"молоко хлеб овощи", "Продукты"},
		{"супермаркет продукты", "Продукты"},
	}

	m, err := Train(samples)
	require.NoError(t, err)
	return m
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int // token count; stems themselves depend on the stemmer
	}{
		{name: "plain words", input: "кофе старбакс", want: 2},
		{name: "punctuation stripped", input: "кофе, в «старбаксе»!", want: 2},
		{name: "stop words removed", input: "кофе в на и старбакс", want: 2},
		{name: "empty", input: "", want: 0},
		{name: "only stop words", input: "в на и с", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, Tokens(tt.input), tt.want)
		})
	}
}

func TestTokens_Deterministic(t *testing.T) {
	// Train/inference parity depends on normalization being a pure function.
	a := Tokens("Кофе в Старбаксе 2024!")
	b := Tokens("Кофе в Старбаксе 2024!")
	assert.Equal(t, a, b)
}

func TestFeatures_IncludesBigrams(t *testing.T) {
	features := Features("такси до работы")
	tokens := Tokens("такси до работы")

	require.NotEmpty(t, tokens)
	assert.Len(t, features, len(tokens)+len(tokens)-1)
	// Bigrams join adjacent tokens.
	assert.Contains(t, features, tokens[0]+"_"+tokens[1])
}

func TestModel_Predict(t *testing.T) {
	m := trainTestModel(t)

	tests := []struct {
		input string
		want  string
	}{
		{"кофе в старбакс", "Кафе"},
		{"такси до работы", "Транспорт"},
		{"продукты в магазине", "Продукты"},
	}

	for _, tt := range tests {
		prediction, err := m.Predict(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, prediction.Category, "input %q", tt.input)
		assert.Greater(t, prediction.Confidence, 0.0)
		assert.LessOrEqual(t, prediction.Confidence, 1.0)
	}
}

func TestModel_Predict_DistributionSumsToOne(t *testing.T) {
	m := trainTestModel(t)

	for _, input := range []string{"кофе", "такси", "что-то непонятное совсем"} {
		prediction, err := m.Predict(input)
		require.NoError(t, err)

		var sum float64
		for _, p := range prediction.Distribution {
			assert.GreaterOrEqual(t, p, 0.0)
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-6, "input %q", input)
		assert.Len(t, prediction.Distribution, len(m.Labels()))
	}
}

func TestModel_Predict_EmptyInput(t *testing.T) {
	m := trainTestModel(t)

	for _, input := range []string{"", "   ", "в на и"} {
		prediction, err := m.Predict(input)
		require.NoError(t, err)
		assert.Empty(t, prediction.Category)
		assert.Zero(t, prediction.Confidence)
		assert.Empty(t, prediction.Distribution)
	}
}

func TestModel_PredictWithThreshold(t *testing.T) {
	m := trainTestModel(t)

	// Threshold zero: always confident.
	category, confidence, confident, err := m.PredictWithThreshold("такси до работы", 0)
	require.NoError(t, err)
	assert.True(t, confident)
	assert.Equal(t, "Транспорт", category)
	assert.Greater(t, confidence, 0.0)

	// Impossible threshold: never confident, category withheld, confidence
	// still reported.
	category, confidence, confident, err = m.PredictWithThreshold("такси до работы", 1.1)
	require.NoError(t, err)
	assert.False(t, confident)
	assert.Empty(t, category)
	assert.Greater(t, confidence, 0.0)
}

func TestModel_SaveLoad(t *testing.T) {
	m := trainTestModel(t)
	path := filepath.Join(t.TempDir(), "model.gob")

	require.NoError(t, m.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, m.Labels(), loaded.Labels())

	before, err := m.Predict("такси до работы")
	require.NoError(t, err)
	after, err := loaded.Predict("такси до работы")
	require.NoError(t, err)

	assert.Equal(t, before.Category, after.Category)
	assert.False(t, math.IsNaN(after.Confidence))
	assert.InDelta(t, before.Confidence, after.Confidence, 1e-9)
}

func TestLoad_MissingArtifact(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.gob"))
	assert.ErrorIs(t, err, common.ErrClassifierUnavailable)
}

func TestTrain_RequiresTwoCategories(t *testing.T) {
	_, err := Train([]Sample{
		{"кофе", "Кафе"},
		{"латте", "Кафе"},
	})
	assert.Error(t, err)
}

func TestTrainCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	data := "description,category\n" +
		"кофе в старбакс,Кафе\n" +
		"такси до работы,Транспорт\n" +
		"метро проездной,Транспорт\n" +
		"обед в кафе,Кафе\n" +
		",Кафе\n" + // skipped: empty description
		"без категории,\n" // skipped: empty category
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	m, err := TrainCSV(path, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Кафе", "Транспорт"}, m.Labels())
}

func TestTrainCSV_MatchesTrain(t *testing.T) {
	samples := []Sample{
		{"кофе в старбакс", "Кафе"},
		{"такси до работы", "Транспорт"},
		{"метро проездной", "Транспорт"},
		{"обед в кафе", "Кафе"},
	}

	path := filepath.Join(t.TempDir(), "train.csv")
	data := "description,category\n"
	for _, s := range samples {
		data += s.Description + "," + s.Category + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	direct, err := Train(samples)
	require.NoError(t, err)
	fromCSV, err := TrainCSV(path, false)
	require.NoError(t, err)

	assert.ElementsMatch(t, direct.Labels(), fromCSV.Labels())
	for _, text := range []string{"такси до аэропорта", "капучино с собой"} {
		a, err := direct.Predict(text)
		require.NoError(t, err)
		b, err := fromCSV.Predict(text)
		require.NoError(t, err)
		assert.Equal(t, a.Category, b.Category)
		assert.InDelta(t, a.Confidence, b.Confidence, 1e-9)
	}
}

func TestTrainCSV_BadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\nx,y\n"), 0o600))

	_, err := TrainCSV(path, false)
	assert.Error(t, err)
}
