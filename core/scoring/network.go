package scoring

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kilianp07/crashlens/core/model"
)

// Network computes softmax(W2ᵀ·relu(W1ᵀ·x + b1) + b2) with frozen weights.
// The weights are only read after construction, so a Network is safe for
// concurrent use.
type Network struct {
	w Weights
}

// NewNetwork validates the weights and returns a Network.
func NewNetwork(w Weights) (*Network, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &Network{w: w}, nil
}

// Name implements Named.
func (n *Network) Name() string { return "network" }

// Forward returns the softmax output for fv.
func (n *Network) Forward(fv model.FeatureVector) []float64 {
	x := mat.NewVecDense(InputSize, fv.Slice())

	hidden := mat.NewVecDense(HiddenSize, nil)
	hidden.MulVec(n.w.W1.T(), x)
	hidden.AddVec(hidden, n.w.B1)
	for i := 0; i < HiddenSize; i++ {
		hidden.SetVec(i, relu(hidden.AtVec(i)))
	}

	logits := mat.NewVecDense(OutputSize, nil)
	logits.MulVec(n.w.W2.T(), hidden)
	logits.AddVec(logits, n.w.B2)
	return softmax(mat.Col(nil, 0, logits))
}

// Predict implements Predictor.
func (n *Network) Predict(fv model.FeatureVector) ([]float64, error) {
	return n.Forward(fv), nil
}

// Score implements Scorer.
func (n *Network) Score(fv model.FeatureVector) model.Distribution {
	out := n.Forward(fv)
	return model.DistributionOf(Normalize([3]float64{out[0], out[1], out[2]}))
}
