package cpu

import (
	"fmt"

	"github.com/auris-ml/auris/internal/parallel"
	"github.com/auris-ml/auris/internal/tensor"
)

// MatMul performs 2D matrix multiplication: (M, K) @ (K, N) -> (M, N).
//
// Rows of the result are computed independently, so large inputs are split
// across worker goroutines.
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: expected 2D tensors, got %dD and %dD", len(aShape), len(bShape)))
	}
	if aShape[1] != bShape[0] {
		panic(fmt.Sprintf("matmul: inner dimensions must match: %v @ %v", aShape, bShape))
	}
	if a.DType() != tensor.Float32 || b.DType() != tensor.Float32 {
		panic(fmt.Sprintf("matmul: unsupported dtypes %s, %s", a.DType(), b.DType()))
	}

	M, K, N := aShape[0], aShape[1], bShape[1]

	result, err := tensor.NewRaw(tensor.Shape{M, N}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("matmul: failed to create result tensor: %v", err))
	}

	aData := a.AsFloat32()
	bData := b.AsFloat32()
	outData := result.AsFloat32()

	// ikj loop order keeps the inner loop streaming over contiguous rows of b.
	parallel.For(M, func(i int) {
		outRow := outData[i*N : (i+1)*N]
		for k := 0; k < K; k++ {
			av := aData[i*K+k]
			if av == 0 {
				continue
			}
			bRow := bData[k*N : (k+1)*N]
			for j := range bRow {
				outRow[j] += av * bRow[j]
			}
		}
	}, cpu.parallel)

	return result
}
