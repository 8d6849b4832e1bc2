package nn

import (
	"math"
	"testing"

	"github.com/auris-ml/auris/internal/backend/cpu"
	"github.com/auris-ml/auris/internal/tensor"
)

func TestReLU_Forward(t *testing.T) {
	backend := cpu.New()
	relu := NewReLU[Backend]()

	x, err := tensor.FromSlice[float32](
		[]float32{-2, -0.5, 0, 0.5, 2},
		tensor.Shape{1, 5},
		backend,
	)
	if err != nil {
		t.Fatalf("input tensor: %v", err)
	}

	out := relu.Forward(x)

	want := []float32{0, 0, 0, 0.5, 2}
	for i, w := range want {
		if out.Data()[i] != w {
			t.Errorf("relu[%d] = %v, want %v", i, out.Data()[i], w)
		}
	}
}

func TestGELU_Forward(t *testing.T) {
	backend := cpu.New()
	gelu := NewGELU[Backend]()

	inputs := []float32{-3, -1, -0.5, 0, 0.5, 1, 3}
	x, err := tensor.FromSlice[float32](inputs, tensor.Shape{1, len(inputs)}, backend)
	if err != nil {
		t.Fatalf("input tensor: %v", err)
	}

	out := gelu.Forward(x)

	for i, v := range inputs {
		want := geluRef(float64(v))
		got := float64(out.Data()[i])
		if math.Abs(got-want) > 1e-4 {
			t.Errorf("gelu(%v) = %v, want %v", v, got, want)
		}
	}

	// GELU(0) = 0 exactly.
	if out.Data()[3] != 0 {
		t.Errorf("gelu(0) = %v, want 0", out.Data()[3])
	}
}

// geluRef is the tanh approximation computed in float64.
func geluRef(x float64) float64 {
	inner := math.Sqrt(2.0/math.Pi) * (x + 0.044715*x*x*x)
	return 0.5 * x * (1 + math.Tanh(inner))
}
