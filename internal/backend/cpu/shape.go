package cpu

import (
	"fmt"

	"github.com/auris-ml/auris/internal/tensor"
)

// Reshape returns a view of the tensor with a new shape.
// The new shape must describe the same number of elements.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if err := newShape.Validate(); err != nil {
		panic(fmt.Sprintf("reshape: invalid shape: %v", err))
	}
	if t.NumElements() != newShape.NumElements() {
		panic(fmt.Sprintf("reshape: incompatible shapes: %v -> %v (different number of elements)",
			t.Shape(), newShape))
	}
	return t.WithShape(newShape)
}

// Transpose permutes the tensor's dimensions.
// With no axes, all dimensions are reversed.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)

	if len(axes) == 0 {
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = ndim - 1 - i
		}
	}
	if len(axes) != ndim {
		panic(fmt.Sprintf("transpose: axes length %d != ndim %d", len(axes), ndim))
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim {
			panic(fmt.Sprintf("transpose: invalid axis %d for %dD tensor", ax, ndim))
		}
		if seen[ax] {
			panic(fmt.Sprintf("transpose: duplicate axis %d", ax))
		}
		seen[ax] = true
	}

	newShape := make(tensor.Shape, ndim)
	for i, ax := range axes {
		newShape[i] = shape[ax]
	}

	if t.DType() != tensor.Float32 {
		panic(fmt.Sprintf("transpose: unsupported dtype %s", t.DType()))
	}
	result, err := tensor.NewRaw(newShape, t.DType(), t.Device())
	if err != nil {
		panic(fmt.Sprintf("transpose: %v", err))
	}

	src := t.AsFloat32()
	dst := result.AsFloat32()
	srcStrides := t.Strides()
	dstStrides := newShape.ComputeStrides()

	for i := range dst {
		// Map the flat destination index back to a source offset through the
		// axis permutation.
		srcIdx := 0
		rem := i
		for d := 0; d < ndim; d++ {
			coord := rem / dstStrides[d]
			rem %= dstStrides[d]
			srcIdx += coord * srcStrides[axes[d]]
		}
		dst[i] = src[srcIdx]
	}

	return result
}

// Unsqueeze inserts a dimension of size 1 at the given position.
func (cpu *CPUBackend) Unsqueeze(t *tensor.RawTensor, dim int) *tensor.RawTensor {
	shape := t.Shape()
	if dim < 0 {
		dim += len(shape) + 1
	}
	if dim < 0 || dim > len(shape) {
		panic(fmt.Sprintf("unsqueeze: invalid dim %d for %dD tensor", dim, len(shape)))
	}

	newShape := make(tensor.Shape, 0, len(shape)+1)
	newShape = append(newShape, shape[:dim]...)
	newShape = append(newShape, 1)
	newShape = append(newShape, shape[dim:]...)

	return t.WithShape(newShape)
}

// Where selects elements from x where condition is true, otherwise from y.
//
// x and y must share a shape. The condition must either match that shape or
// be a leading prefix of it (e.g. [B, T] against [B, T, D]); in the prefix
// case each condition element governs a contiguous block of features.
func (cpu *CPUBackend) Where(condition, x, y *tensor.RawTensor) *tensor.RawTensor {
	if condition.DType() != tensor.Bool {
		panic(fmt.Sprintf("where: condition dtype must be bool, got %s", condition.DType()))
	}
	if !x.Shape().Equal(y.Shape()) {
		panic(fmt.Sprintf("where: x and y shapes differ: %v vs %v", x.Shape(), y.Shape()))
	}
	if x.DType() != tensor.Float32 || y.DType() != tensor.Float32 {
		panic(fmt.Sprintf("where: unsupported dtypes %s, %s", x.DType(), y.DType()))
	}

	condShape := condition.Shape()
	xShape := x.Shape()
	if len(condShape) > len(xShape) || !condShape.Equal(xShape[:len(condShape)]) {
		panic(fmt.Sprintf("where: condition shape %v is not a prefix of %v", condShape, xShape))
	}
	group := 1
	for _, dim := range xShape[len(condShape):] {
		group *= dim
	}

	result, err := tensor.NewRaw(xShape, x.DType(), cpu.device)
	if err != nil {
		panic(fmt.Sprintf("where: failed to create result tensor: %v", err))
	}

	cond := condition.AsBool()
	xData := x.AsFloat32()
	yData := y.AsFloat32()
	dst := result.AsFloat32()

	for i, keep := range cond {
		lo, hi := i*group, (i+1)*group
		if keep {
			copy(dst[lo:hi], xData[lo:hi])
		} else {
			copy(dst[lo:hi], yData[lo:hi])
		}
	}

	return result
}
