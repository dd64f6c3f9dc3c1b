package scoring

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"

	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/crashlens/core/model"
)

// Network dimensions.
const (
	InputSize  = model.FeatureVectorLen
	HiddenSize = 16
	OutputSize = 3
)

// DefaultSeed is used when no seed or weights file is configured.
const DefaultSeed uint64 = 20240601

// Weights are the frozen parameters of the two dense layers.
type Weights struct {
	W1 *mat.Dense    // InputSize x HiddenSize
	B1 *mat.VecDense // HiddenSize
	W2 *mat.Dense    // HiddenSize x OutputSize
	B2 *mat.VecDense // OutputSize
}

// SeededWeights draws uniform weights in +-1/sqrt(fan_in) from a PCG source
// seeded with seed. Equal seeds give equal weights.
func SeededWeights(seed uint64) Weights {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	fill := func(n int, fanIn int) []float64 {
		bound := 1 / math.Sqrt(float64(fanIn))
		out := make([]float64, n)
		for i := range out {
			out[i] = (rng.Float64()*2 - 1) * bound
		}
		return out
	}
	return Weights{
		W1: mat.NewDense(InputSize, HiddenSize, fill(InputSize*HiddenSize, InputSize)),
		B1: mat.NewVecDense(HiddenSize, fill(HiddenSize, InputSize)),
		W2: mat.NewDense(HiddenSize, OutputSize, fill(HiddenSize*OutputSize, HiddenSize)),
		B2: mat.NewVecDense(OutputSize, fill(OutputSize, HiddenSize)),
	}
}

// Validate checks every matrix has the expected shape.
func (w Weights) Validate() error {
	if w.W1 == nil || w.B1 == nil || w.W2 == nil || w.B2 == nil {
		return fmt.Errorf("%w: missing layer", ErrWeightShape)
	}
	if r, c := w.W1.Dims(); r != InputSize || c != HiddenSize {
		return fmt.Errorf("%w: w1 is %dx%d, want %dx%d", ErrWeightShape, r, c, InputSize, HiddenSize)
	}
	if n := w.B1.Len(); n != HiddenSize {
		return fmt.Errorf("%w: b1 has %d values, want %d", ErrWeightShape, n, HiddenSize)
	}
	if r, c := w.W2.Dims(); r != HiddenSize || c != OutputSize {
		return fmt.Errorf("%w: w2 is %dx%d, want %dx%d", ErrWeightShape, r, c, HiddenSize, OutputSize)
	}
	if n := w.B2.Len(); n != OutputSize {
		return fmt.Errorf("%w: b2 has %d values, want %d", ErrWeightShape, n, OutputSize)
	}
	return nil
}

type weightsFile struct {
	W1 [][]float64 `json:"w1"`
	B1 []float64   `json:"b1"`
	W2 [][]float64 `json:"w2"`
	B2 []float64   `json:"b2"`
}

// ReadWeights decodes weights from JSON: {"w1": [[..]], "b1": [..], "w2":
// [[..]], "b2": [..]} with row-major matrices.
func ReadWeights(r io.Reader) (Weights, error) {
	var f weightsFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return Weights{}, fmt.Errorf("decode weights: %w", err)
	}
	w1, err := denseFromRows(f.W1, InputSize, HiddenSize, "w1")
	if err != nil {
		return Weights{}, err
	}
	w2, err := denseFromRows(f.W2, HiddenSize, OutputSize, "w2")
	if err != nil {
		return Weights{}, err
	}
	if len(f.B1) != HiddenSize {
		return Weights{}, fmt.Errorf("%w: b1 has %d values, want %d", ErrWeightShape, len(f.B1), HiddenSize)
	}
	if len(f.B2) != OutputSize {
		return Weights{}, fmt.Errorf("%w: b2 has %d values, want %d", ErrWeightShape, len(f.B2), OutputSize)
	}
	return Weights{W1: w1, B1: mat.NewVecDense(HiddenSize, f.B1), W2: w2, B2: mat.NewVecDense(OutputSize, f.B2)}, nil
}

// LoadWeights reads a weights file from disk.
func LoadWeights(path string) (Weights, error) {
	f, err := os.Open(path)
	if err != nil {
		return Weights{}, err
	}
	defer f.Close()
	return ReadWeights(f)
}

// WriteWeights encodes w in the format accepted by ReadWeights.
func WriteWeights(out io.Writer, w Weights) error {
	if err := w.Validate(); err != nil {
		return err
	}
	f := weightsFile{
		W1: rowsOf(w.W1),
		B1: mat.Col(nil, 0, w.B1),
		W2: rowsOf(w.W2),
		B2: mat.Col(nil, 0, w.B2),
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

func denseFromRows(rows [][]float64, r, c int, name string) (*mat.Dense, error) {
	if len(rows) != r {
		return nil, fmt.Errorf("%w: %s has %d rows, want %d", ErrWeightShape, name, len(rows), r)
	}
	data := make([]float64, 0, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("%w: %s row %d has %d values, want %d", ErrWeightShape, name, i, len(row), c)
		}
		data = append(data, row...)
	}
	return mat.NewDense(r, c, data), nil
}

func rowsOf(m *mat.Dense) [][]float64 {
	r, _ := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}
