package nn

import (
	"math"
	"math/rand"

	"github.com/auris-ml/auris/internal/tensor"
)

// Xavier (Glorot) uniform initialization for weights.
//
// Initializes weights with values drawn from a uniform distribution:
// U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out)))
//
// This initialization helps maintain variance of activations across layers
// with symmetric activations.
func Xavier[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
	return randomFill(shape, backend, func() float64 {
		//nolint:gosec // math/rand for weight initialization (not security-critical)
		return (rand.Float64()*2.0 - 1.0) * bound
	})
}

// XavierNormal initializes weights from N(0, 2/(fan_in + fan_out)).
//
// The normal-distribution variant of Xavier/Glorot initialization, used for
// projection weights feeding symmetric or smooth activations.
func XavierNormal[B tensor.Backend](fanIn, fanOut int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	std := math.Sqrt(2.0 / float64(fanIn+fanOut))
	return randomFill(shape, backend, func() float64 {
		//nolint:gosec // math/rand for weight initialization (not security-critical)
		return rand.NormFloat64() * std
	})
}

// KaimingNormal initializes weights from N(0, 2/fan_in).
//
// He initialization, the variance-scaling scheme suited to rectifier
// activations (He et al., 2015). Used for convolution kernels followed
// by ReLU.
func KaimingNormal[B tensor.Backend](fanIn int, shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	std := math.Sqrt(2.0 / float64(fanIn))
	return randomFill(shape, backend, func() float64 {
		//nolint:gosec // math/rand for weight initialization (not security-critical)
		return rand.NormFloat64() * std
	})
}

// Zeros creates a tensor filled with zeros.
// This is commonly used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Zeros[float32](shape, backend)
}

// Ones creates a tensor filled with ones.
func Ones[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Ones[float32](shape, backend)
}

// Randn creates a tensor with random values from N(0, 1).
func Randn[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[float32, B] {
	return tensor.Randn[float32](shape, backend)
}

func randomFill[B tensor.Backend](shape tensor.Shape, backend B, sample func() float64) *tensor.Tensor[float32, B] {
	t := tensor.Zeros[float32](shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = float32(sample())
	}
	return t
}
