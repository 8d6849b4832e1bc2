// Copyright 2025 Auris Speech Frontend. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/auris-ml/auris/internal/nn"
	"github.com/auris-ml/auris/internal/tensor"
)

// Module interface defines the common interface for all neural network modules.
type Module[B tensor.Backend] = nn.Module[B]

// Parameter represents a trainable parameter in a neural network.
type Parameter[B tensor.Backend] = nn.Parameter[B]

// NewParameter creates a new parameter with the given name and tensor.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[float32, B]) *Parameter[B] {
	return nn.NewParameter(name, t)
}

// Layers

// Linear represents a fully connected (dense) layer.
type Linear[B tensor.Backend] = nn.Linear[B]

// NewLinear creates a new linear layer with Xavier initialization.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(40, 256, backend)
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	return nn.NewLinear(inFeatures, outFeatures, backend)
}

// Conv2D represents a 2D convolutional layer.
type Conv2D[B tensor.Backend] = nn.Conv2D[B]

// NewConv2D creates a new 2D convolutional layer with Kaiming-normal initialization.
//
// Example:
//
//	backend := cpu.New()
//	conv := nn.NewConv2D(1, 32, 3, 3, 2, 0, backend)  // in=1, out=32, kernel=3x3, stride=2, padding=0
func NewConv2D[B tensor.Backend](
	inChannels, outChannels int,
	kernelH, kernelW int,
	stride, padding int,
	backend B,
) *Conv2D[B] {
	return nn.NewConv2D(inChannels, outChannels, kernelH, kernelW, stride, padding, backend)
}

// LayerNorm represents Layer Normalization.
type LayerNorm[B tensor.Backend] = nn.LayerNorm[B]

// NewLayerNorm creates a new LayerNorm layer.
//
// Example:
//
//	norm := nn.NewLayerNorm[B](256, 1e-5, backend)
//	output := norm.Forward(input)  // [..., 256] -> [..., 256]
func NewLayerNorm[B tensor.Backend](normalizedShape int, epsilon float32, backend B) *LayerNorm[B] {
	return nn.NewLayerNorm(normalizedShape, epsilon, backend)
}

// Dropout randomly zeroes elements during training.
type Dropout[B tensor.Backend] = nn.Dropout[B]

// NewDropout creates a new Dropout module with the given drop rate.
func NewDropout[B tensor.Backend](rate float32) *Dropout[B] {
	return nn.NewDropout[B](rate)
}

// Activations

// ReLU represents the Rectified Linear Unit activation function.
type ReLU[B tensor.Backend] = nn.ReLU[B]

// NewReLU creates a new ReLU activation layer.
func NewReLU[B tensor.Backend]() *ReLU[B] {
	return nn.NewReLU[B]()
}

// GELU represents the Gaussian Error Linear Unit activation function.
type GELU[B tensor.Backend] = nn.GELU[B]

// NewGELU creates a new GELU activation layer.
func NewGELU[B tensor.Backend]() *GELU[B] {
	return nn.NewGELU[B]()
}

// GELUFunc applies GELU activation using the tanh approximation.
func GELUFunc[B tensor.Backend](x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	return nn.GELUFunc(x)
}

// Positional encodings

// DefaultMaxLen is the initial positional-table capacity used by the
// frontend constructors.
const DefaultMaxLen = nn.DefaultMaxLen

// PositionalTable caches sinusoidal positional encodings and extends the
// cache lazily on demand.
type PositionalTable[B tensor.Backend] = nn.PositionalTable[B]

// NewPositionalTable creates a table with an initial capacity.
func NewPositionalTable[B tensor.Backend](dim, initialLen int, backend B) *PositionalTable[B] {
	return nn.NewPositionalTable[B](dim, initialLen, backend)
}

// PositionalEncoding adds fixed sinusoidal positional encodings scaled by sqrt(d_model).
type PositionalEncoding[B tensor.Backend] = nn.PositionalEncoding[B]

// NewPositionalEncoding creates an unscaled positional encoder.
func NewPositionalEncoding[B tensor.Backend](dModel int, dropoutRate float32, maxLen int, backend B) *PositionalEncoding[B] {
	return nn.NewPositionalEncoding(dModel, dropoutRate, maxLen, backend)
}

// ScaledPositionalEncoding adds positional encodings blended by a learnable alpha.
type ScaledPositionalEncoding[B tensor.Backend] = nn.ScaledPositionalEncoding[B]

// NewScaledPositionalEncoding creates a scaled positional encoder with alpha = 1.0.
func NewScaledPositionalEncoding[B tensor.Backend](dModel int, dropoutRate float32, maxLen int, backend B) *ScaledPositionalEncoding[B] {
	return nn.NewScaledPositionalEncoding(dModel, dropoutRate, maxLen, backend)
}

// Frontend pipelines

// Frontend is the interface shared by the input-embedding pipelines.
type Frontend[B tensor.Backend] = nn.Frontend[B]

// LinearEmbedding projects per-frame features and adds scaled positional encodings.
type LinearEmbedding[B tensor.Backend] = nn.LinearEmbedding[B]

// NewLinearEmbedding creates a plain linear frontend.
func NewLinearEmbedding[B tensor.Backend](inputSize, dModel int, dropoutRate float32, backend B) *LinearEmbedding[B] {
	return nn.NewLinearEmbedding(inputSize, dModel, dropoutRate, backend)
}

// NormalizedLinearEmbedding adds LayerNorm, Dropout and GELU to the linear frontend.
type NormalizedLinearEmbedding[B tensor.Backend] = nn.NormalizedLinearEmbedding[B]

// NewNormalizedLinearEmbedding creates a normalized linear frontend.
func NewNormalizedLinearEmbedding[B tensor.Backend](inputSize, dModel int, dropoutRate float32, backend B) *NormalizedLinearEmbedding[B] {
	return nn.NewNormalizedLinearEmbedding(inputSize, dModel, dropoutRate, backend)
}

// Conv2DSubsampler reduces sequence length ~4x via two strided convolutions.
type Conv2DSubsampler[B tensor.Backend] = nn.Conv2DSubsampler[B]

// NewConv2DSubsampler creates a subsampling frontend.
func NewConv2DSubsampler[B tensor.Backend](idim, odim int, dropoutRate float32, backend B) *Conv2DSubsampler[B] {
	return nn.NewConv2DSubsampler(idim, odim, dropoutRate, backend)
}

// InputMode selects the frontend pipeline at construction time.
type InputMode = nn.InputMode

// Available frontend pipelines.
const (
	LinearInput = nn.LinearInput
	Conv2DInput = nn.Conv2DInput
)

// InputLayer is the complete input frontend with final masking.
type InputLayer[B tensor.Backend] = nn.InputLayer[B]

// NewInputLayer creates an input layer whose linear mode uses the plain projector.
//
// Example:
//
//	backend := cpu.New()
//	frontend := nn.NewInputLayer(40, 256, 0.1, nn.LinearInput, backend)
//	features, mask := frontend.Forward(frames, mask)
func NewInputLayer[B tensor.Backend](inputSize, dModel int, dropoutRate float32, mode InputMode, backend B) *InputLayer[B] {
	return nn.NewInputLayer(inputSize, dModel, dropoutRate, mode, backend)
}

// NewNormalizedInputLayer creates an input layer whose linear mode uses the
// normalized projector (LayerNorm + Dropout + GELU).
func NewNormalizedInputLayer[B tensor.Backend](inputSize, dModel int, dropoutRate float32, mode InputMode, backend B) *InputLayer[B] {
	return nn.NewNormalizedInputLayer(inputSize, dModel, dropoutRate, mode, backend)
}

// Initialization functions

// Xavier initializes a tensor using Xavier/Glorot uniform initialization.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Xavier(fanIn, fanOut, shape, backend)
}

// XavierNormal initializes a tensor from N(0, 2/(fan_in + fan_out)).
func XavierNormal[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.XavierNormal(fanIn, fanOut, shape, backend)
}

// KaimingNormal initializes a tensor from N(0, 2/fan_in).
func KaimingNormal[B tensor.Backend](fanIn int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.KaimingNormal(fanIn, shape, backend)
}

// Zeros initializes a tensor with zeros (for biases).
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Zeros(shape, backend)
}

// Ones initializes a tensor with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Ones(shape, backend)
}

// Randn initializes a tensor with random values from N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return nn.Randn(shape, backend)
}
