package nn

import (
	"math"
	"testing"

	"github.com/auris-ml/auris/internal/backend/cpu"
	"github.com/auris-ml/auris/internal/tensor"
)

func TestLayerNorm_NormalizesLastDim(t *testing.T) {
	backend := cpu.New()
	norm := NewLayerNorm[Backend](4, 1e-5, backend)

	x, err := tensor.FromSlice[float32](
		[]float32{1, 2, 3, 4, 10, 20, 30, 40},
		tensor.Shape{2, 4},
		backend,
	)
	if err != nil {
		t.Fatalf("input tensor: %v", err)
	}

	out := norm.Forward(x)

	// With gamma=1 and beta=0 every row should have mean ~0 and variance ~1.
	for row := 0; row < 2; row++ {
		var sum, sumSq float64
		for col := 0; col < 4; col++ {
			v := float64(out.At(row, col))
			sum += v
			sumSq += v * v
		}
		mean := sum / 4
		variance := sumSq/4 - mean*mean

		if math.Abs(mean) > 1e-4 {
			t.Errorf("row %d mean = %v, want ~0", row, mean)
		}
		if math.Abs(variance-1) > 1e-3 {
			t.Errorf("row %d variance = %v, want ~1", row, variance)
		}
	}
}

func TestLayerNorm_GammaBeta(t *testing.T) {
	backend := cpu.New()
	norm := NewLayerNorm[Backend](2, 1e-5, backend)

	norm.Gamma.Tensor().Data()[0] = 2
	norm.Gamma.Tensor().Data()[1] = 2
	norm.Beta.Tensor().Data()[0] = 3
	norm.Beta.Tensor().Data()[1] = 3

	x, err := tensor.FromSlice[float32]([]float32{-1, 1}, tensor.Shape{1, 2}, backend)
	if err != nil {
		t.Fatalf("input tensor: %v", err)
	}

	out := norm.Forward(x)

	// Normalized input is [-1, 1] (already zero-mean unit-variance), so the
	// output should be gamma*[-1, 1] + beta = [1, 5].
	want := []float32{1, 5}
	for i, w := range want {
		if math.Abs(float64(out.Data()[i]-w)) > 1e-2 {
			t.Errorf("output[%d] = %v, want %v", i, out.Data()[i], w)
		}
	}
}

func TestLayerNorm_3DInput(t *testing.T) {
	backend := cpu.New()
	norm := NewLayerNorm[Backend](8, 1e-5, backend)

	x := tensor.Randn[float32](tensor.Shape{2, 5, 8}, backend)
	out := norm.Forward(x)

	if !out.Shape().Equal(x.Shape()) {
		t.Errorf("expected shape %v, got %v", x.Shape(), out.Shape())
	}

	// Each time step is normalized independently.
	for b := 0; b < 2; b++ {
		for pos := 0; pos < 5; pos++ {
			var sum float64
			for d := 0; d < 8; d++ {
				sum += float64(out.At(b, pos, d))
			}
			if math.Abs(sum/8) > 1e-4 {
				t.Errorf("batch %d pos %d mean = %v, want ~0", b, pos, sum/8)
			}
		}
	}
}

func TestLayerNorm_Parameters(t *testing.T) {
	backend := cpu.New()
	norm := NewLayerNorm[Backend](16, 1e-5, backend)

	params := norm.Parameters()
	if len(params) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(params))
	}
	for _, v := range params[0].Tensor().Data() {
		if v != 1 {
			t.Fatal("gamma must initialize to ones")
		}
	}
	for _, v := range params[1].Tensor().Data() {
		if v != 0 {
			t.Fatal("beta must initialize to zeros")
		}
	}
}
