package nn

import (
	"fmt"

	"github.com/auris-ml/auris/internal/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [..., in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [..., out_features]
//
// Leading dimensions are preserved, so sequence inputs of shape
// [batch, time, in_features] map to [batch, time, out_features].
//
// Weights are initialized with Xavier/Glorot uniform, biases with zeros.
//
// Example:
//
//	backend := cpu.New()
//	layer := nn.NewLinear(40, 256, backend)
//	output := layer.Forward(frames) // [1, 10, 40] -> [1, 10, 256]
type Linear[B tensor.Backend] struct {
	inFeatures  int
	outFeatures int
	weight      *Parameter[B] // [out_features, in_features]
	bias        *Parameter[B] // [out_features]
	backend     B
}

// NewLinear creates a new Linear layer with Xavier uniform initialization.
func NewLinear[B tensor.Backend](inFeatures, outFeatures int, backend B) *Linear[B] {
	if inFeatures <= 0 || outFeatures <= 0 {
		panic(fmt.Sprintf("Linear: invalid features in=%d, out=%d", inFeatures, outFeatures))
	}

	weightShape := tensor.Shape{outFeatures, inFeatures}
	weight := NewParameter("weight", Xavier(inFeatures, outFeatures, weightShape, backend))
	bias := NewParameter("bias", Zeros(tensor.Shape{outFeatures}, backend))

	return &Linear[B]{
		inFeatures:  inFeatures,
		outFeatures: outFeatures,
		weight:      weight,
		bias:        bias,
		backend:     backend,
	}
}

// Forward computes y = x @ W.T + b.
//
// Input shape: [..., in_features]
// Output shape: [..., out_features]
func (l *Linear[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	inputShape := input.Shape()
	if len(inputShape) < 2 {
		panic(fmt.Sprintf("Linear.Forward: expected at least 2D input [..., features], got shape %v", inputShape))
	}
	if inputShape[len(inputShape)-1] != l.inFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d",
			l.inFeatures, inputShape[len(inputShape)-1]))
	}

	// Flatten leading dimensions into one batch axis for the matmul.
	rows := 1
	for _, dim := range inputShape[:len(inputShape)-1] {
		rows *= dim
	}
	x2d := input.Reshape(rows, l.inFeatures)

	// [rows, in] @ [in, out] = [rows, out]
	wT := l.weight.Tensor().T()
	output := x2d.MatMul(wT)

	// Broadcast bias over rows.
	bReshaped := l.bias.Tensor().Reshape(1, l.outFeatures)
	output = output.Add(bReshaped)

	outShape := append(inputShape[:len(inputShape)-1].Clone(), l.outFeatures)
	return output.Reshape(outShape...)
}

// Parameters returns the trainable parameters [weight, bias].
func (l *Linear[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{l.weight, l.bias}
}

// Weight returns the weight parameter.
func (l *Linear[B]) Weight() *Parameter[B] {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear[B]) Bias() *Parameter[B] {
	return l.bias
}

// InFeatures returns the number of input features.
func (l *Linear[B]) InFeatures() int {
	return l.inFeatures
}

// OutFeatures returns the number of output features.
func (l *Linear[B]) OutFeatures() int {
	return l.outFeatures
}
