package scoring

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/crashlens/core/model"
)

func TestSoftmax_Stable(t *testing.T) {
	out := softmax([]float64{1000, 1000, 999})
	for _, v := range out {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
	assert.InDelta(t, 1.0, out[0]+out[1]+out[2], tol)
	assert.InDelta(t, out[0], out[1], tol)
	assert.Greater(t, out[0], out[2])
}

func TestNetwork_OutputIsDistribution(t *testing.T) {
	n, err := NewNetwork(SeededWeights(DefaultSeed))
	require.NoError(t, err)
	for _, fv := range []model.FeatureVector{
		vec(0, 0, 0, 0, 0, 0),
		vec(60, 50, 0, 0, 14, 0),
		vec(200, 0, 7, 3, 23, 5),
	} {
		d := n.Score(fv)
		assert.True(t, d.Valid(tol), "fv %v -> %+v", fv, d)
	}
}

func TestNetwork_Deterministic(t *testing.T) {
	a, err := NewNetwork(SeededWeights(7))
	require.NoError(t, err)
	b, err := NewNetwork(SeededWeights(7))
	require.NoError(t, err)
	c, err := NewNetwork(SeededWeights(8))
	require.NoError(t, err)

	fv := vec(80, 35, 1, 3, 22, 1)
	assert.Equal(t, a.Score(fv), a.Score(fv))
	assert.Equal(t, a.Score(fv), b.Score(fv))
	assert.NotEqual(t, a.Score(fv), c.Score(fv))
}

func TestNetwork_KnownWeights(t *testing.T) {
	// Only speed1 reaches the hidden layer and only hidden unit 0 reaches
	// logit A, so the output is softmax([speed1, 0, 0]).
	w := Weights{
		W1: mat.NewDense(InputSize, HiddenSize, nil),
		B1: mat.NewVecDense(HiddenSize, nil),
		W2: mat.NewDense(HiddenSize, OutputSize, nil),
		B2: mat.NewVecDense(OutputSize, nil),
	}
	w.W1.Set(model.IdxSpeed1, 0, 1)
	w.W2.Set(0, 0, 1)
	n, err := NewNetwork(w)
	require.NoError(t, err)

	out := n.Forward(vec(2, 0, 0, 0, 0, 0))
	e := math.Exp(2)
	assert.InDelta(t, e/(e+2), out[0], tol)
	assert.InDelta(t, 1/(e+2), out[1], tol)
	assert.InDelta(t, 1/(e+2), out[2], tol)
}

func TestNetwork_ConcurrentScores(t *testing.T) {
	n, err := NewNetwork(SeededWeights(DefaultSeed))
	require.NoError(t, err)
	fv := vec(90, 30, 2, 0, 2, 1)
	want := n.Score(fv)

	var wg sync.WaitGroup
	errs := make(chan model.Distribution, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := n.Score(fv); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Errorf("concurrent score differs: %+v", got)
	}
}

func TestWeights_RoundTrip(t *testing.T) {
	w := SeededWeights(42)
	var buf bytes.Buffer
	require.NoError(t, WriteWeights(&buf, w))

	got, err := ReadWeights(&buf)
	require.NoError(t, err)
	assert.True(t, mat.Equal(w.W1, got.W1))
	assert.True(t, mat.Equal(w.B1, got.B1))
	assert.True(t, mat.Equal(w.W2, got.W2))
	assert.True(t, mat.Equal(w.B2, got.B2))
}

func TestWeights_BadShape(t *testing.T) {
	_, err := ReadWeights(strings.NewReader(`{"w1": [[1,2]], "b1": [], "w2": [], "b2": []}`))
	assert.True(t, errors.Is(err, ErrWeightShape), "got %v", err)

	_, err = NewNetwork(Weights{})
	assert.True(t, errors.Is(err, ErrWeightShape), "got %v", err)
}
