package nn

import (
	"fmt"

	"github.com/auris-ml/auris/internal/tensor"
)

// Conv2DSubsampler reduces sequence length to roughly 1/4 via two strided
// convolutions, then projects to the model dimension and adds positional
// encodings.
//
// Pipeline for input [batch, time, freq] (e.g. log-mel frames):
//  1. Treat the sequence as a single-channel 2D grid: [batch, 1, time, freq].
//  2. Conv2D(1 -> odim, kernel 3, stride 2) + ReLU.
//  3. Conv2D(odim -> odim, kernel 3, stride 2) + ReLU.
//  4. Flatten channels x freq per remaining time step, Linear -> odim.
//  5. Unscaled PositionalEncoding.
//
// Each conv stage maps length n to (n-3)/2+1, so time shrinks by ~4x and
// inputs shorter than 7 frames are rejected by the convolution (fatal).
//
// The validity mask is reduced with the same drop-last-two, stride-two rule
// applied twice, independent of the convolution arithmetic; the resulting
// mask length always equals the output time length. A nil mask (all
// positions valid) passes through as nil - no mask is fabricated.
type Conv2DSubsampler[B tensor.Backend] struct {
	idim int
	odim int

	conv1 *Conv2D[B]
	conv2 *Conv2D[B]
	relu  *ReLU[B]
	out   *Linear[B]
	pos   *PositionalEncoding[B]
}

// NewConv2DSubsampler creates a subsampling frontend.
//
// Parameters:
//   - idim: input feature dimension (freq bins per frame)
//   - odim: output model dimension
//   - dropoutRate: dropout rate inside the positional encoder
//   - backend: computation backend
//
// Convolution kernels use Kaiming-normal initialization, biases zero.
func NewConv2DSubsampler[B tensor.Backend](idim, odim int, dropoutRate float32, backend B) *Conv2DSubsampler[B] {
	// Freq dimension after the two stride-2 convolutions.
	freqOut := ((idim-1)/2 - 1) / 2
	if freqOut <= 0 {
		panic(fmt.Sprintf("Conv2DSubsampler: input dim %d too small for two stride-2 convolutions", idim))
	}

	return &Conv2DSubsampler[B]{
		idim:  idim,
		odim:  odim,
		conv1: NewConv2D(1, odim, 3, 3, 2, 0, backend),
		conv2: NewConv2D(odim, odim, 3, 3, 2, 0, backend),
		relu:  NewReLU[B](),
		out:   NewLinear(odim*freqOut, odim, backend),
		pos:   NewPositionalEncoding(odim, dropoutRate, DefaultMaxLen, backend),
	}
}

// OutputLength returns the time length produced for an input of length t:
// (t-3)/2+1 applied twice. Meaningful for t >= 7; shorter inputs make a
// convolution output dimension non-positive and Forward panics.
func (c *Conv2DSubsampler[B]) OutputLength(t int) int {
	t = (t-3)/2 + 1
	return (t-3)/2 + 1
}

// Forward subsamples the feature sequence and reduces its mask.
//
// Input:  x [batch, time, freq], mask [batch, time] or nil
// Output: features [batch, time', odim], mask [batch, time'] or nil
func (c *Conv2DSubsampler[B]) Forward(
	x *tensor.Tensor[float32, B],
	mask *tensor.Tensor[bool, B],
) (*tensor.Tensor[float32, B], *tensor.Tensor[bool, B]) {
	shape := x.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("Conv2DSubsampler: expected 3D input [batch, time, freq], got shape %v", shape))
	}
	if shape[2] != c.idim {
		panic(fmt.Sprintf("Conv2DSubsampler: expected %d input features, got %d", c.idim, shape[2]))
	}

	// [b, t, f] -> [b, 1, t, f]
	h := x.Unsqueeze(1)
	h = c.relu.Forward(c.conv1.Forward(h))
	h = c.relu.Forward(c.conv2.Forward(h))

	// [b, c, t', f'] -> [b, t', c*f']
	hShape := h.Shape()
	b, ch, tOut, fOut := hShape[0], hShape[1], hShape[2], hShape[3]
	h = h.Transpose(0, 2, 1, 3).Reshape(b, tOut, ch*fOut)

	features := c.pos.Forward(c.out.Forward(h))

	if mask == nil {
		return features, nil
	}
	reduced := subsampleMask(subsampleMask(mask))
	return features, reduced
}

// SetTraining toggles training-only behavior (dropout in the encoder).
func (c *Conv2DSubsampler[B]) SetTraining(training bool) {
	c.pos.SetTraining(training)
}

// Parameters returns all trainable parameters.
func (c *Conv2DSubsampler[B]) Parameters() []*Parameter[B] {
	params := append([]*Parameter[B]{}, c.conv1.Parameters()...)
	params = append(params, c.conv2.Parameters()...)
	params = append(params, c.out.Parameters()...)
	return append(params, c.pos.Parameters()...)
}

// subsampleMask drops the last two time steps and keeps every second
// remaining one (mask[:, :-2:2] semantics), mirroring one stride-2
// convolution stage: length n maps to (n-1)/2.
func subsampleMask[B tensor.Backend](mask *tensor.Tensor[bool, B]) *tensor.Tensor[bool, B] {
	shape := mask.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("subsampleMask: expected 2D mask [batch, time], got shape %v", shape))
	}
	batch, timeLen := shape[0], shape[1]
	outLen := (timeLen - 1) / 2
	if outLen <= 0 {
		panic(fmt.Sprintf("subsampleMask: mask length %d too short to subsample", timeLen))
	}

	src := mask.Data()
	dst := make([]bool, batch*outLen)
	for b := 0; b < batch; b++ {
		for j := 0; j < outLen; j++ {
			dst[b*outLen+j] = src[b*timeLen+2*j]
		}
	}

	out, err := tensor.FromSlice[bool, B](dst, tensor.Shape{batch, outLen}, mask.Backend())
	if err != nil {
		panic(fmt.Sprintf("subsampleMask: failed to create mask tensor: %v", err))
	}
	return out
}
