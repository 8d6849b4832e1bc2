package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auris-ml/auris/internal/backend/cpu"
	"github.com/auris-ml/auris/internal/tensor"
)

// TestLinearEmbedding_Shapes verifies projection to the model dimension with
// the time axis and mask untouched.
func TestLinearEmbedding_Shapes(t *testing.T) {
	backend := cpu.New()
	emb := NewLinearEmbedding[Backend](40, 64, 0, backend)

	x := tensor.Randn[float32](tensor.Shape{2, 10, 40}, backend)
	mask := tensor.Ones[bool](tensor.Shape{2, 10}, backend)

	features, outMask := emb.Forward(x, mask)

	require.True(t, features.Shape().Equal(tensor.Shape{2, 10, 64}))
	assert.Same(t, mask, outMask, "linear frontend must pass the mask through")
}

// TestLinearEmbedding_NilMaskPassthrough verifies nil stays nil.
func TestLinearEmbedding_NilMaskPassthrough(t *testing.T) {
	backend := cpu.New()
	emb := NewLinearEmbedding[Backend](40, 64, 0, backend)

	x := tensor.Randn[float32](tensor.Shape{1, 5, 40}, backend)
	features, outMask := emb.Forward(x, nil)

	require.True(t, features.Shape().Equal(tensor.Shape{1, 5, 64}))
	assert.Nil(t, outMask)
}

// TestNormalizedLinearEmbedding_Shapes verifies the normalized pipeline
// keeps the same shape contract as the plain one.
func TestNormalizedLinearEmbedding_Shapes(t *testing.T) {
	backend := cpu.New()
	emb := NewNormalizedLinearEmbedding[Backend](40, 64, 0.1, backend)

	x := tensor.Randn[float32](tensor.Shape{2, 10, 40}, backend)
	mask := tensor.Ones[bool](tensor.Shape{2, 10}, backend)

	features, outMask := emb.Forward(x, mask)

	require.True(t, features.Shape().Equal(tensor.Shape{2, 10, 64}))
	assert.Same(t, mask, outMask)
}

func TestInputMode_String(t *testing.T) {
	assert.Equal(t, "linear", LinearInput.String())
	assert.Equal(t, "conv2d", Conv2DInput.String())
	assert.Equal(t, "unknown", InputMode(99).String())
}

// TestInputLayer_LinearEndToEnd runs the full linear frontend on an
// all-valid batch.
func TestInputLayer_LinearEndToEnd(t *testing.T) {
	backend := cpu.New()
	layer := NewInputLayer[Backend](40, 256, 0, LinearInput, backend)

	x := tensor.Randn[float32](tensor.Shape{1, 10, 40}, backend)
	mask := tensor.Ones[bool](tensor.Shape{1, 10}, backend)

	features, outMask := layer.Forward(x, mask)

	require.True(t, features.Shape().Equal(tensor.Shape{1, 10, 256}))
	require.True(t, outMask.Shape().Equal(tensor.Shape{1, 10}))

	// All positions valid, so masking must leave the core output intact.
	want, _ := layer.Core().Forward(x, mask)
	assert.Equal(t, want.Data(), features.Data())
}

// TestInputLayer_MaskZeroesPaddedRows verifies padded rows come out all-zero
// while valid rows match the unmasked pipeline exactly.
func TestInputLayer_MaskZeroesPaddedRows(t *testing.T) {
	backend := cpu.New()

	const (
		timeLen = 6
		dModel  = 16
	)
	layer := NewInputLayer[Backend](40, dModel, 0, LinearInput, backend)

	raw := []bool{true, true, false, true, false, false}
	mask, err := tensor.FromSlice[bool](raw, tensor.Shape{1, timeLen}, backend)
	require.NoError(t, err)

	x := tensor.Randn[float32](tensor.Shape{1, timeLen, 40}, backend)

	features, outMask := layer.Forward(x, mask)
	want, _ := layer.Core().Forward(x, mask)

	require.True(t, features.Shape().Equal(tensor.Shape{1, timeLen, dModel}))
	assert.Same(t, mask, outMask)

	for pos := 0; pos < timeLen; pos++ {
		for d := 0; d < dModel; d++ {
			if raw[pos] {
				assert.Equal(t, want.At(0, pos, d), features.At(0, pos, d),
					"valid row %d must be untouched", pos)
			} else {
				assert.Equal(t, float32(0), features.At(0, pos, d),
					"padded row %d must be zeroed", pos)
			}
		}
	}
}

// TestInputLayer_Conv2DEndToEnd runs the subsampling frontend and checks the
// feature and mask time axes stay aligned.
func TestInputLayer_Conv2DEndToEnd(t *testing.T) {
	backend := cpu.New()
	layer := NewInputLayer[Backend](40, 32, 0, Conv2DInput, backend)

	const timeLen = 20
	x := tensor.Randn[float32](tensor.Shape{1, timeLen, 40}, backend)
	mask := tensor.Ones[bool](tensor.Shape{1, timeLen}, backend)

	features, outMask := layer.Forward(x, mask)

	require.True(t, features.Shape().Equal(tensor.Shape{1, 4, 32}))
	require.True(t, outMask.Shape().Equal(tensor.Shape{1, 4}))
}

// TestInputLayer_NilMaskPanics covers the required-mask precondition.
func TestInputLayer_NilMaskPanics(t *testing.T) {
	backend := cpu.New()
	layer := NewInputLayer[Backend](40, 32, 0, LinearInput, backend)

	x := tensor.Randn[float32](tensor.Shape{1, 5, 40}, backend)
	require.Panics(t, func() { layer.Forward(x, nil) })
}

// TestInputLayer_ModeSelection verifies the pipeline chosen at construction.
func TestInputLayer_ModeSelection(t *testing.T) {
	backend := cpu.New()

	linear := NewInputLayer[Backend](40, 32, 0, LinearInput, backend)
	assert.Equal(t, LinearInput, linear.Mode())
	_, ok := linear.Core().(*LinearEmbedding[Backend])
	assert.True(t, ok)

	conv := NewInputLayer[Backend](40, 32, 0, Conv2DInput, backend)
	assert.Equal(t, Conv2DInput, conv.Mode())
	_, ok = conv.Core().(*Conv2DSubsampler[Backend])
	assert.True(t, ok)

	norm := NewNormalizedInputLayer[Backend](40, 32, 0.1, LinearInput, backend)
	_, ok = norm.Core().(*NormalizedLinearEmbedding[Backend])
	assert.True(t, ok)
}

// TestInputLayer_Parameters verifies parameters surface from the core:
// linear weight+bias plus the positional alpha.
func TestInputLayer_Parameters(t *testing.T) {
	backend := cpu.New()
	layer := NewInputLayer[Backend](40, 32, 0, LinearInput, backend)

	assert.Len(t, layer.Parameters(), 3)
}
