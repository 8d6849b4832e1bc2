package nn

import (
	"github.com/auris-ml/auris/internal/tensor"
)

// Frontend is the interface shared by the input-embedding pipelines.
//
// Forward maps a feature sequence and its validity mask to model-dimension
// embeddings and the mask aligned with the (possibly shorter) output time
// axis. A nil mask means every position is valid; implementations that do
// not change the time length pass the mask through unchanged.
type Frontend[B tensor.Backend] interface {
	Forward(x *tensor.Tensor[float32, B], mask *tensor.Tensor[bool, B]) (*tensor.Tensor[float32, B], *tensor.Tensor[bool, B])

	// SetTraining toggles training-only behavior such as dropout.
	SetTraining(training bool)

	// Parameters returns all trainable parameters.
	Parameters() []*Parameter[B]
}

// LinearEmbedding projects raw per-frame features to the model dimension
// and adds scaled positional encodings.
//
// Pipeline: Linear(inputSize -> dModel) with Xavier-normal weights, then
// ScaledPositionalEncoding. Time length is unchanged, so the mask passes
// through untouched.
type LinearEmbedding[B tensor.Backend] struct {
	linear *Linear[B]
	pos    *ScaledPositionalEncoding[B]
}

// NewLinearEmbedding creates a plain linear frontend.
func NewLinearEmbedding[B tensor.Backend](inputSize, dModel int, dropoutRate float32, backend B) *LinearEmbedding[B] {
	linear := NewLinear(inputSize, dModel, backend)
	linear.Weight().SetTensor(XavierNormal(inputSize, dModel, tensor.Shape{dModel, inputSize}, backend))

	return &LinearEmbedding[B]{
		linear: linear,
		pos:    NewScaledPositionalEncoding(dModel, dropoutRate, DefaultMaxLen, backend),
	}
}

// Forward projects features and adds positional information.
//
// Input:  x [batch, time, inputSize], mask [batch, time] or nil
// Output: features [batch, time, dModel], mask unchanged
func (l *LinearEmbedding[B]) Forward(
	x *tensor.Tensor[float32, B],
	mask *tensor.Tensor[bool, B],
) (*tensor.Tensor[float32, B], *tensor.Tensor[bool, B]) {
	return l.pos.Forward(l.linear.Forward(x)), mask
}

// SetTraining toggles training-only behavior (dropout in the encoder).
func (l *LinearEmbedding[B]) SetTraining(training bool) {
	l.pos.SetTraining(training)
}

// PositionalEncoder returns the scaled positional encoder.
func (l *LinearEmbedding[B]) PositionalEncoder() *ScaledPositionalEncoding[B] {
	return l.pos
}

// Parameters returns all trainable parameters.
func (l *LinearEmbedding[B]) Parameters() []*Parameter[B] {
	return append(append([]*Parameter[B]{}, l.linear.Parameters()...), l.pos.Parameters()...)
}

// NormalizedLinearEmbedding is the normalized variant of LinearEmbedding.
//
// Pipeline: Linear, LayerNorm over the feature axis, Dropout, GELU, then
// ScaledPositionalEncoding. Mask passes through unchanged.
type NormalizedLinearEmbedding[B tensor.Backend] struct {
	linear  *Linear[B]
	norm    *LayerNorm[B]
	dropout *Dropout[B]
	gelu    *GELU[B]
	pos     *ScaledPositionalEncoding[B]
}

// NewNormalizedLinearEmbedding creates a normalized linear frontend.
func NewNormalizedLinearEmbedding[B tensor.Backend](inputSize, dModel int, dropoutRate float32, backend B) *NormalizedLinearEmbedding[B] {
	linear := NewLinear(inputSize, dModel, backend)
	linear.Weight().SetTensor(XavierNormal(inputSize, dModel, tensor.Shape{dModel, inputSize}, backend))

	return &NormalizedLinearEmbedding[B]{
		linear:  linear,
		norm:    NewLayerNorm(dModel, 1e-5, backend),
		dropout: NewDropout[B](dropoutRate),
		gelu:    NewGELU[B](),
		pos:     NewScaledPositionalEncoding(dModel, dropoutRate, DefaultMaxLen, backend),
	}
}

// Forward projects, normalizes, and positionally encodes the features.
//
// Input:  x [batch, time, inputSize], mask [batch, time] or nil
// Output: features [batch, time, dModel], mask unchanged
func (n *NormalizedLinearEmbedding[B]) Forward(
	x *tensor.Tensor[float32, B],
	mask *tensor.Tensor[bool, B],
) (*tensor.Tensor[float32, B], *tensor.Tensor[bool, B]) {
	h := n.linear.Forward(x)
	h = n.norm.Forward(h)
	h = n.dropout.Forward(h)
	h = n.gelu.Forward(h)
	return n.pos.Forward(h), mask
}

// SetTraining toggles training-only behavior (both dropouts).
func (n *NormalizedLinearEmbedding[B]) SetTraining(training bool) {
	n.dropout.SetTraining(training)
	n.pos.SetTraining(training)
}

// Parameters returns all trainable parameters.
func (n *NormalizedLinearEmbedding[B]) Parameters() []*Parameter[B] {
	params := append([]*Parameter[B]{}, n.linear.Parameters()...)
	params = append(params, n.norm.Parameters()...)
	return append(params, n.pos.Parameters()...)
}

// InputMode selects the frontend pipeline at construction time.
type InputMode int

// Available frontend pipelines.
const (
	// LinearInput projects each frame with a linear embedding
	// (time length unchanged).
	LinearInput InputMode = iota
	// Conv2DInput subsamples time by ~4x with strided convolutions.
	Conv2DInput
)

// String returns a human-readable mode name.
func (m InputMode) String() string {
	switch m {
	case LinearInput:
		return "linear"
	case Conv2DInput:
		return "conv2d"
	default:
		return "unknown"
	}
}

// InputLayer is the complete input frontend: a pipeline selected once at
// construction, followed by masking of padded positions.
//
// Forward delegates to the selected core, then returns a fresh feature
// tensor with every row zeroed where the (possibly subsampled) mask is
// false. Rows at valid positions are untouched.
//
// Precondition: mask must not be nil. The masking step is meaningless
// without one, so a nil mask is a caller error and panics; use the core
// pipelines directly when no padding information exists.
type InputLayer[B tensor.Backend] struct {
	mode    InputMode
	core    Frontend[B]
	backend B
}

// NewInputLayer creates an input layer whose linear mode uses the plain
// LinearEmbedding projector.
func NewInputLayer[B tensor.Backend](inputSize, dModel int, dropoutRate float32, mode InputMode, backend B) *InputLayer[B] {
	var core Frontend[B]
	switch mode {
	case LinearInput:
		core = NewLinearEmbedding(inputSize, dModel, dropoutRate, backend)
	default:
		core = NewConv2DSubsampler(inputSize, dModel, dropoutRate, backend)
	}
	return &InputLayer[B]{mode: mode, core: core, backend: backend}
}

// NewNormalizedInputLayer creates an input layer whose linear mode uses the
// NormalizedLinearEmbedding projector (LayerNorm + Dropout + GELU).
func NewNormalizedInputLayer[B tensor.Backend](inputSize, dModel int, dropoutRate float32, mode InputMode, backend B) *InputLayer[B] {
	var core Frontend[B]
	switch mode {
	case LinearInput:
		core = NewNormalizedLinearEmbedding(inputSize, dModel, dropoutRate, backend)
	default:
		core = NewConv2DSubsampler(inputSize, dModel, dropoutRate, backend)
	}
	return &InputLayer[B]{mode: mode, core: core, backend: backend}
}

// Forward runs the selected pipeline and zeroes padded positions.
//
// Input:  x [batch, time, features], mask [batch, time] (required)
// Output: features [batch, time', dModel], mask [batch, time']
func (il *InputLayer[B]) Forward(
	x *tensor.Tensor[float32, B],
	mask *tensor.Tensor[bool, B],
) (*tensor.Tensor[float32, B], *tensor.Tensor[bool, B]) {
	if mask == nil {
		panic("InputLayer: mask must not be nil (use the core pipeline directly for unmasked input)")
	}

	features, newMask := il.core.Forward(x, mask)

	zeros := tensor.Zeros[float32](features.Shape(), il.backend)
	masked := tensor.Where(newMask, features, zeros)
	return masked, newMask
}

// Mode returns the pipeline selected at construction.
func (il *InputLayer[B]) Mode() InputMode {
	return il.mode
}

// Core returns the underlying pipeline.
func (il *InputLayer[B]) Core() Frontend[B] {
	return il.core
}

// SetTraining toggles training-only behavior in the core pipeline.
func (il *InputLayer[B]) SetTraining(training bool) {
	il.core.SetTraining(training)
}

// Parameters returns all trainable parameters of the core pipeline.
func (il *InputLayer[B]) Parameters() []*Parameter[B] {
	return il.core.Parameters()
}

// ensure the pipelines satisfy Frontend
var (
	_ Frontend[tensor.Backend] = (*LinearEmbedding[tensor.Backend])(nil)
	_ Frontend[tensor.Backend] = (*NormalizedLinearEmbedding[tensor.Backend])(nil)
	_ Frontend[tensor.Backend] = (*Conv2DSubsampler[tensor.Backend])(nil)
)
