// Copyright 2025 Auris Speech Frontend. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the neural network modules of the Auris speech frontend.
//
// The package covers the input-embedding pipeline of a speech transformer:
// linear or convolutional-subsampling projection of raw feature frames into
// model-dimension embeddings, sinusoidal positional encodings (fixed and
// learnable-scale variants), and validity-mask handling.
//
// # Basic Usage
//
//	backend := cpu.New()
//
//	// 40 mel bins -> 256-dim embeddings, no time reduction
//	frontend := nn.NewInputLayer(40, 256, 0.1, nn.LinearInput, backend)
//	features, mask := frontend.Forward(frames, frameMask)
//
//	// ~4x time reduction via strided convolutions
//	sub := nn.NewInputLayer(40, 256, 0.1, nn.Conv2DInput, backend)
//	features, mask = sub.Forward(frames, frameMask)
//
// Every frontend Forward takes (features, mask) and returns (features, mask);
// any transform that changes the time length transforms the mask to match.
package nn
