package cpu

import (
	"fmt"

	"github.com/auris-ml/auris/internal/tensor"
)

// MeanDim computes the mean along a dimension.
// Negative dim counts from the end (-1 is the last dimension).
func (cpu *CPUBackend) MeanDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	if x.DType() != tensor.Float32 {
		panic(fmt.Sprintf("meandim: unsupported dtype %s", x.DType()))
	}

	shape := x.Shape()
	ndim := len(shape)
	if dim < 0 {
		dim += ndim
	}
	if dim < 0 || dim >= ndim {
		panic(fmt.Sprintf("meandim: invalid dim %d for %dD tensor", dim, ndim))
	}

	// View the tensor as [outer, reduced, inner].
	outer, inner := 1, 1
	for d := 0; d < dim; d++ {
		outer *= shape[d]
	}
	for d := dim + 1; d < ndim; d++ {
		inner *= shape[d]
	}
	reduced := shape[dim]

	outShape := make(tensor.Shape, 0, ndim)
	for d := 0; d < ndim; d++ {
		switch {
		case d != dim:
			outShape = append(outShape, shape[d])
		case keepDim:
			outShape = append(outShape, 1)
		}
	}
	if len(outShape) == 0 {
		outShape = tensor.Shape{1}
	}

	result, err := tensor.NewRaw(outShape, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("meandim: failed to create result tensor: %v", err))
	}

	src := x.AsFloat32()
	dst := result.AsFloat32()
	scale := 1.0 / float32(reduced)

	for o := 0; o < outer; o++ {
		for in := 0; in < inner; in++ {
			sum := float32(0)
			for r := 0; r < reduced; r++ {
				sum += src[(o*reduced+r)*inner+in]
			}
			dst[o*inner+in] = sum * scale
		}
	}

	return result
}
