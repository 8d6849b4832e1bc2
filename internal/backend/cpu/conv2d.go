package cpu

import (
	"fmt"

	"github.com/auris-ml/auris/internal/parallel"
	"github.com/auris-ml/auris/internal/tensor"
)

// Conv2D performs 2D convolution using the im2col algorithm.
//
// Input shape:  [batch, in_channels, height, width]
// Kernel shape: [out_channels, in_channels, kernel_h, kernel_w]
// Output shape: [batch, out_channels, out_h, out_w]
//
// Where:
//
//	out_h = (height + 2*padding - kernel_h) / stride + 1
//	out_w = (width + 2*padding - kernel_w) / stride + 1
//
// Im2col converts the convolution into a matrix multiplication: input
// patches become rows of a column buffer, the kernel becomes a
// [C_out, C_in*K_h*K_w] matrix, and each output position is a dot product.
func (cpu *CPUBackend) Conv2D(input, kernel *tensor.RawTensor, stride, padding int) *tensor.RawTensor {
	inputShape := input.Shape()
	kernelShape := kernel.Shape()

	if len(inputShape) != 4 {
		panic(fmt.Sprintf("conv2d: input must be 4D [N,C,H,W], got %dD", len(inputShape)))
	}
	if len(kernelShape) != 4 {
		panic(fmt.Sprintf("conv2d: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", len(kernelShape)))
	}
	if input.DType() != tensor.Float32 || kernel.DType() != tensor.Float32 {
		panic(fmt.Sprintf("conv2d: unsupported dtypes %s, %s", input.DType(), kernel.DType()))
	}

	N := inputShape[0]
	cIn := inputShape[1]
	H := inputShape[2]
	W := inputShape[3]
	cOut := kernelShape[0]
	kh := kernelShape[2]
	kw := kernelShape[3]

	if cIn != kernelShape[1] {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", cIn, kernelShape[1]))
	}

	// Padded input must cover the kernel; the explicit check matters because
	// truncated division would round a negative numerator up to 0.
	hOut := (H+2*padding-kh)/stride + 1
	wOut := (W+2*padding-kw)/stride + 1
	if H+2*padding < kh || W+2*padding < kw || hOut <= 0 || wOut <= 0 {
		panic(fmt.Sprintf("conv2d: invalid output dimensions: out_h=%d, out_w=%d (input %dx%d too small for kernel %dx%d stride %d)",
			hOut, wOut, H, W, kh, kw, stride))
	}

	output, err := tensor.NewRaw(tensor.Shape{N, cOut, hOut, wOut}, tensor.Float32, cpu.device)
	if err != nil {
		panic(fmt.Sprintf("conv2d: failed to create output tensor: %v", err))
	}

	inputData := input.AsFloat32()
	kernelData := kernel.AsFloat32()
	outputData := output.AsFloat32()

	// Im2col buffers: one row per output position, one column per kernel
	// weight, one buffer per batch element so stages can run concurrently.
	colWidth := cIn * kh * kw
	colBufs := make([][]float32, N)
	parallel.For(N, func(n int) {
		colBufs[n] = make([]float32, hOut*wOut*colWidth)
		im2col(colBufs[n], inputData[n*cIn*H*W:(n+1)*cIn*H*W], cIn, H, W, kh, kw, hOut, wOut, stride, padding)
	}, cpu.parallel)

	// kernelData is already laid out as [C_out, C_in*K_h*K_w] row-major.
	// output[n, c, p] = sum_k kernel[c, k] * colBuf[n][p, k]
	parallel.ForBatch(N, cOut, func(n, c int) {
		colBuf := colBufs[n]
		kRow := kernelData[c*colWidth : (c+1)*colWidth]
		outPlane := outputData[(n*cOut+c)*hOut*wOut : (n*cOut+c+1)*hOut*wOut]
		for p := range outPlane {
			row := colBuf[p*colWidth : (p+1)*colWidth]
			sum := float32(0)
			for k := range row {
				sum += kRow[k] * row[k]
			}
			outPlane[p] = sum
		}
	}, cpu.parallel)

	return output
}

// im2col extracts input patches for one batch element into colBuf.
//
// src is a single [C, H, W] image; colBuf receives [h_out*w_out, C*K_h*K_w].
// Out-of-bounds reads (padding region) yield zero.
func im2col(colBuf, src []float32, C, H, W, kh, kw, hOut, wOut, stride, padding int) {
	colWidth := C * kh * kw
	row := 0

	for outH := 0; outH < hOut; outH++ {
		for outW := 0; outW < wOut; outW++ {
			hStart := outH*stride - padding
			wStart := outW*stride - padding
			bufIdx := row * colWidth

			for c := 0; c < C; c++ {
				for y := 0; y < kh; y++ {
					for x := 0; x < kw; x++ {
						h := hStart + y
						w := wStart + x
						if h >= 0 && h < H && w >= 0 && w < W {
							colBuf[bufIdx] = src[c*H*W+h*W+w]
						} else {
							colBuf[bufIdx] = 0
						}
						bufIdx++
					}
				}
			}
			row++
		}
	}
}
