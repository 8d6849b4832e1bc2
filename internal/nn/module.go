// Package nn implements the neural network modules of the Auris speech frontend.
//
// This package provides the building blocks of the input-embedding pipeline:
//   - Module interface: base interface for all NN components
//   - Parameter: trainable parameters
//   - Linear, Conv2D, LayerNorm, Dropout: primitive layers
//   - PositionalEncoding / ScaledPositionalEncoding: sinusoidal position signals
//   - Conv2DSubsampler: strided time reduction for long feature sequences
//   - InputLayer: the complete feature-to-embedding frontend
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/auris-ml/auris/internal/tensor"
)

// Module is the base interface for single-input neural network components.
//
// Every module must implement:
//   - Forward: compute output from input
//   - Parameters: return all trainable parameters
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B]

	// Parameters returns all trainable parameters of this module.
	// Returns an empty slice for modules without trainable parameters.
	Parameters() []*Parameter[B]
}
