package nn

import (
	"github.com/auris-ml/auris/internal/tensor"
)

// ReLUBackend is an interface for backends that support a fused ReLU kernel.
type ReLUBackend interface {
	ReLU(*tensor.RawTensor) *tensor.RawTensor
}

// ReLU is a Rectified Linear Unit activation module.
//
// Applies the element-wise function: f(x) = max(0, x)
type ReLU[B tensor.Backend] struct{}

// NewReLU creates a new ReLU activation module.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return &ReLU[B]{}
}

// Forward applies ReLU activation: f(x) = max(0, x).
func (r *ReLU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	backend := input.Backend()

	if reluBackend, ok := any(backend).(ReLUBackend); ok {
		resultRaw := reluBackend.ReLU(input.Raw())
		return tensor.New[float32, B](resultRaw, backend)
	}

	panic("ReLU: backend must implement ReLU operation")
}

// Parameters returns an empty slice (ReLU has no trainable parameters).
func (r *ReLU[B]) Parameters() []*Parameter[B] {
	return nil
}

// GELU is a Gaussian Error Linear Unit activation module.
//
// Uses the tanh approximation:
//
//	GELU(x) ≈ 0.5 * x * (1 + tanh(sqrt(2/pi) * (x + 0.044715 * x^3)))
//
// GELU is the smooth activation used after the normalized projection in the
// frontend (and in BERT, GPT-2, and other transformers).
type GELU[B tensor.Backend] struct{}

// NewGELU creates a new GELU activation module.
func NewGELU[B tensor.Backend]() *GELU[B] {
	return &GELU[B]{}
}

// Forward applies the GELU activation.
func (g *GELU[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return GELUFunc(input)
}

// Parameters returns an empty slice (GELU has no trainable parameters).
func (g *GELU[B]) Parameters() []*Parameter[B] {
	return nil
}

// GELUFunc applies GELU activation using the tanh approximation.
func GELUFunc[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	const (
		sqrt2OverPi = 0.7978845608028654 // sqrt(2/pi)
		coeff       = 0.044715
	)

	// inner = sqrt(2/pi) * (x + 0.044715 * x^3)
	x3 := x.Mul(x).Mul(x)
	inner := x.Add(x3.MulScalar(coeff)).MulScalar(sqrt2OverPi)

	// 0.5 * x * (1 + tanh(inner))
	return x.Mul(inner.Tanh().AddScalar(1.0)).MulScalar(0.5)
}
