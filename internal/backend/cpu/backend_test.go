package cpu

import (
	"math"
	"testing"

	"github.com/auris-ml/auris/internal/tensor"
)

func fromSlice(t *testing.T, data []float32, shape tensor.Shape, b *CPUBackend) *tensor.Tensor[float32, *CPUBackend] {
	t.Helper()
	out, err := tensor.FromSlice[float32](data, shape, b)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	return out
}

func TestBinaryOps(t *testing.T) {
	backend := New()

	a := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	b := fromSlice(t, []float32{4, 3, 2, 1}, tensor.Shape{2, 2}, backend)

	tests := []struct {
		name string
		got  []float32
		want []float32
	}{
		{"add", a.Add(b).Data(), []float32{5, 5, 5, 5}},
		{"sub", a.Sub(b).Data(), []float32{-3, -1, 1, 3}},
		{"mul", a.Mul(b).Data(), []float32{4, 6, 6, 4}},
		{"div", a.Div(b).Data(), []float32{0.25, 2.0 / 3.0, 1.5, 4}},
	}
	for _, tt := range tests {
		for i := range tt.want {
			if math.Abs(float64(tt.got[i]-tt.want[i])) > 1e-6 {
				t.Errorf("%s[%d] = %v, want %v", tt.name, i, tt.got[i], tt.want[i])
			}
		}
	}
}

func TestAdd_BroadcastRow(t *testing.T) {
	backend := New()

	// [2, 3] + [1, 3]: the row is added to both rows.
	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	row := fromSlice(t, []float32{10, 20, 30}, tensor.Shape{1, 3}, backend)

	out := a.Add(row)

	want := []float32{11, 22, 33, 14, 25, 36}
	for i := range want {
		if out.Data()[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out.Data()[i], want[i])
		}
	}
}

func TestAdd_BroadcastBatch(t *testing.T) {
	backend := New()

	// [2, 2, 2] + [1, 2, 2]: the positional-encoding pattern.
	a := fromSlice(t, []float32{1, 1, 1, 1, 2, 2, 2, 2}, tensor.Shape{2, 2, 2}, backend)
	pe := fromSlice(t, []float32{10, 20, 30, 40}, tensor.Shape{1, 2, 2}, backend)

	out := a.Add(pe)

	want := []float32{11, 21, 31, 41, 12, 22, 32, 42}
	for i := range want {
		if out.Data()[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out.Data()[i], want[i])
		}
	}
}

func TestAdd_IncompatibleShapesPanic(t *testing.T) {
	backend := New()

	a := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
	b := tensor.Zeros[float32](tensor.Shape{2, 4}, backend)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for incompatible shapes")
		}
	}()
	a.Add(b)
}

func TestMatMul(t *testing.T) {
	backend := New()

	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	b := fromSlice(t, []float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2}, backend)

	out := a.MatMul(b)

	if !out.Shape().Equal(tensor.Shape{2, 2}) {
		t.Fatalf("shape = %v, want [2 2]", out.Shape())
	}
	want := []float32{58, 64, 139, 154}
	for i := range want {
		if out.Data()[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out.Data()[i], want[i])
		}
	}
}

func TestMatMul_DimensionMismatchPanics(t *testing.T) {
	backend := New()

	a := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
	b := tensor.Zeros[float32](tensor.Shape{4, 2}, backend)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for inner dimension mismatch")
		}
	}()
	a.MatMul(b)
}

func TestTranspose2D(t *testing.T) {
	backend := New()

	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	out := a.T()

	if !out.Shape().Equal(tensor.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", out.Shape())
	}
	want := []float32{1, 4, 2, 5, 3, 6}
	for i := range want {
		if out.Data()[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out.Data()[i], want[i])
		}
	}
}

func TestTranspose4D(t *testing.T) {
	backend := New()

	// The [b, c, t, f] -> [b, t, c, f] permutation used by the subsampler.
	a := tensor.Randn[float32](tensor.Shape{2, 3, 4, 5}, backend)
	out := a.Transpose(0, 2, 1, 3)

	if !out.Shape().Equal(tensor.Shape{2, 4, 3, 5}) {
		t.Fatalf("shape = %v, want [2 4 3 5]", out.Shape())
	}
	for b := 0; b < 2; b++ {
		for c := 0; c < 3; c++ {
			for tt := 0; tt < 4; tt++ {
				for f := 0; f < 5; f++ {
					if out.At(b, tt, c, f) != a.At(b, c, tt, f) {
						t.Fatalf("mismatch at [%d %d %d %d]", b, c, tt, f)
					}
				}
			}
		}
	}
}

func TestReshapeSharesBuffer(t *testing.T) {
	backend := New()

	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	view := a.Reshape(3, 2)

	view.Data()[0] = 99
	if a.Data()[0] != 99 {
		t.Error("reshape must return a view over the same buffer")
	}
}

func TestUnsqueeze(t *testing.T) {
	backend := New()

	a := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)

	if !a.Unsqueeze(0).Shape().Equal(tensor.Shape{1, 2, 3}) {
		t.Error("unsqueeze(0) failed")
	}
	if !a.Unsqueeze(1).Shape().Equal(tensor.Shape{2, 1, 3}) {
		t.Error("unsqueeze(1) failed")
	}
	if !a.Unsqueeze(-1).Shape().Equal(tensor.Shape{2, 3, 1}) {
		t.Error("unsqueeze(-1) failed")
	}
}

func TestScalarAndUnaryOps(t *testing.T) {
	backend := New()

	a := fromSlice(t, []float32{1, 4, 9, 16}, tensor.Shape{4}, backend)

	mul := a.MulScalar(2)
	for i, want := range []float32{2, 8, 18, 32} {
		if mul.Data()[i] != want {
			t.Errorf("mulScalar[%d] = %v, want %v", i, mul.Data()[i], want)
		}
	}

	add := a.AddScalar(1)
	for i, want := range []float32{2, 5, 10, 17} {
		if add.Data()[i] != want {
			t.Errorf("addScalar[%d] = %v, want %v", i, add.Data()[i], want)
		}
	}

	sqrt := a.Sqrt()
	for i, want := range []float32{1, 2, 3, 4} {
		if math.Abs(float64(sqrt.Data()[i]-want)) > 1e-6 {
			t.Errorf("sqrt[%d] = %v, want %v", i, sqrt.Data()[i], want)
		}
	}

	rsqrt := a.Rsqrt()
	for i, want := range []float32{1, 0.5, 1.0 / 3.0, 0.25} {
		if math.Abs(float64(rsqrt.Data()[i]-want)) > 1e-6 {
			t.Errorf("rsqrt[%d] = %v, want %v", i, rsqrt.Data()[i], want)
		}
	}
}

func TestTanh(t *testing.T) {
	backend := New()

	a := fromSlice(t, []float32{-2, 0, 2}, tensor.Shape{3}, backend)
	out := a.Tanh()

	for i, v := range []float64{-2, 0, 2} {
		want := math.Tanh(v)
		if math.Abs(float64(out.Data()[i])-want) > 1e-6 {
			t.Errorf("tanh[%d] = %v, want %v", i, out.Data()[i], want)
		}
	}
}

func TestReLU(t *testing.T) {
	backend := New()

	raw, err := tensor.NewRaw(tensor.Shape{4}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	copy(raw.AsFloat32(), []float32{-1, 0, 0.5, 3})

	out := backend.ReLU(raw)

	want := []float32{0, 0, 0.5, 3}
	for i := range want {
		if out.AsFloat32()[i] != want[i] {
			t.Errorf("relu[%d] = %v, want %v", i, out.AsFloat32()[i], want[i])
		}
	}
}

func TestMeanDim(t *testing.T) {
	backend := New()

	a := fromSlice(t, []float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)

	last := a.MeanDim(-1, true)
	if !last.Shape().Equal(tensor.Shape{2, 1}) {
		t.Fatalf("shape = %v, want [2 1]", last.Shape())
	}
	for i, want := range []float32{2, 5} {
		if last.Data()[i] != want {
			t.Errorf("meanDim(-1)[%d] = %v, want %v", i, last.Data()[i], want)
		}
	}

	first := a.MeanDim(0, false)
	if !first.Shape().Equal(tensor.Shape{3}) {
		t.Fatalf("shape = %v, want [3]", first.Shape())
	}
	for i, want := range []float32{2.5, 3.5, 4.5} {
		if first.Data()[i] != want {
			t.Errorf("meanDim(0)[%d] = %v, want %v", i, first.Data()[i], want)
		}
	}
}

func TestConv2D_Stride2(t *testing.T) {
	backend := New()

	// 1x1x5x5 input of ones, 1x1x3x3 kernel of ones, stride 2: every output
	// is the 3x3 window sum, 9.
	input, err := tensor.NewRaw(tensor.Shape{1, 1, 5, 5}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	kernel, err := tensor.NewRaw(tensor.Shape{1, 1, 3, 3}, tensor.Float32, tensor.CPU)
	if err != nil {
		t.Fatalf("NewRaw: %v", err)
	}
	for i := range input.AsFloat32() {
		input.AsFloat32()[i] = 1
	}
	for i := range kernel.AsFloat32() {
		kernel.AsFloat32()[i] = 1
	}

	out := backend.Conv2D(input, kernel, 2, 0)

	if !out.Shape().Equal(tensor.Shape{1, 1, 2, 2}) {
		t.Fatalf("shape = %v, want [1 1 2 2]", out.Shape())
	}
	for i, v := range out.AsFloat32() {
		if v != 9 {
			t.Errorf("out[%d] = %v, want 9", i, v)
		}
	}
}

func TestConv2D_InvalidOutputPanics(t *testing.T) {
	backend := New()

	input, _ := tensor.NewRaw(tensor.Shape{1, 1, 2, 2}, tensor.Float32, tensor.CPU)
	kernel, _ := tensor.NewRaw(tensor.Shape{1, 1, 3, 3}, tensor.Float32, tensor.CPU)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-positive output dimensions")
		}
	}()
	backend.Conv2D(input, kernel, 2, 0)
}

func TestWhere_FullShape(t *testing.T) {
	backend := New()

	cond, err := tensor.FromSlice[bool]([]bool{true, false, false, true}, tensor.Shape{2, 2}, backend)
	if err != nil {
		t.Fatalf("FromSlice: %v", err)
	}
	x := fromSlice(t, []float32{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	y := fromSlice(t, []float32{-1, -2, -3, -4}, tensor.Shape{2, 2}, backend)

	out := tensor.Where(cond, x, y)

	want := []float32{1, -2, -3, 4}
	for i := range want {
		if out.Data()[i] != want[i] {
			t.Errorf("out[%d] = %v, want %v", i, out.Data()[i], want[i])
		}
	}
}

func TestName(t *testing.T) {
	backend := New()
	if backend.Name() != "CPU" {
		t.Errorf("Name() = %q, want CPU", backend.Name())
	}
	if backend.Device() != tensor.CPU {
		t.Errorf("Device() = %v, want CPU", backend.Device())
	}
}
