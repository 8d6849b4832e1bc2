package nn

import (
	"fmt"
	"math/rand"

	"github.com/auris-ml/auris/internal/tensor"
)

// Dropout randomly zeroes elements during training.
//
// Each element is dropped independently with probability `rate`; survivors
// are scaled by 1/(1-rate) so the expected activation is unchanged
// (inverted dropout). In inference mode Forward is the identity.
//
// Modules owning a Dropout propagate their training flag through
// SetTraining; the zero value is inference mode.
type Dropout[B tensor.Backend] struct {
	rate     float32
	training bool
}

// NewDropout creates a new Dropout module.
//
// rate is the probability of zeroing an element, in [0, 1).
func NewDropout[B tensor.Backend](rate float32) *Dropout[B] {
	if rate < 0 || rate >= 1 {
		panic(fmt.Sprintf("Dropout: rate must be in [0, 1), got %v", rate))
	}
	return &Dropout[B]{rate: rate}
}

// SetTraining toggles between training (stochastic) and inference (identity) mode.
func (d *Dropout[B]) SetTraining(training bool) {
	d.training = training
}

// Training reports whether the module is in training mode.
func (d *Dropout[B]) Training() bool {
	return d.training
}

// Rate returns the drop probability.
func (d *Dropout[B]) Rate() float32 {
	return d.rate
}

// Forward applies dropout.
//
// In inference mode, or with rate 0, the input is returned unchanged.
func (d *Dropout[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	if !d.training || d.rate == 0 {
		return input
	}

	scale := 1.0 / (1.0 - d.rate)
	maskData := make([]float32, input.NumElements())
	for i := range maskData {
		//nolint:gosec // math/rand for stochastic regularization (not security-critical)
		if rand.Float32() >= d.rate {
			maskData[i] = scale
		}
	}

	mask, err := tensor.FromSlice[float32, B](maskData, input.Shape(), input.Backend())
	if err != nil {
		panic(fmt.Sprintf("Dropout: failed to create mask tensor: %v", err))
	}
	return input.Mul(mask)
}

// Parameters returns an empty slice (Dropout has no trainable parameters).
func (d *Dropout[B]) Parameters() []*Parameter[B] {
	return nil
}
