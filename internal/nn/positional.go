package nn

import (
	"fmt"
	"math"

	"github.com/auris-ml/auris/internal/tensor"
)

// DefaultMaxLen is the initial positional-table capacity used by the
// frontend constructors. Longer inputs extend the table lazily.
const DefaultMaxLen = 5000

// PositionalTable caches sinusoidal positional encodings and extends the
// cache lazily on demand.
//
// Mathematical formulation (Vaswani et al., 2017):
//
//	PE(pos, 2i)   = sin(pos / 10000^(2i/d))
//	PE(pos, 2i+1) = cos(pos / 10000^(2i/d))
//
// The table is rebuilt in full whenever a request exceeds the cached
// capacity, then swapped in atomically; it is never merged incrementally.
// Instances assume single-writer access: callers needing concurrent use
// must serialize EnsureCapacity.
type PositionalTable[B tensor.Backend] struct {
	dim      int
	capacity int
	table    *tensor.Tensor[float32, B] // [1, capacity, dim]
	backend  B
}

// NewPositionalTable creates a table with an initial capacity.
//
// dim must be positive and even (sin/cos pairs fill adjacent columns).
func NewPositionalTable[B tensor.Backend](dim, initialLen int, backend B) *PositionalTable[B] {
	if dim <= 0 || dim%2 != 0 {
		panic(fmt.Sprintf("PositionalTable: dim must be positive and even, got %d", dim))
	}
	if initialLen <= 0 {
		panic(fmt.Sprintf("PositionalTable: initial length must be positive, got %d", initialLen))
	}

	t := &PositionalTable[B]{
		dim:     dim,
		backend: backend,
	}
	t.rebuild(initialLen)
	return t
}

// Dim returns the feature dimension.
func (t *PositionalTable[B]) Dim() int {
	return t.dim
}

// Capacity returns the number of positions currently cached.
func (t *PositionalTable[B]) Capacity() int {
	return t.capacity
}

// EnsureCapacity guarantees the table covers at least minLen positions.
//
// A request within the current capacity is a pure cache hit and leaves the
// table untouched. Otherwise the whole table is recomputed from position 0
// and replaces the cached one.
func (t *PositionalTable[B]) EnsureCapacity(minLen int) {
	if minLen <= 0 {
		panic(fmt.Sprintf("PositionalTable: minLen must be positive, got %d", minLen))
	}
	if minLen <= t.capacity {
		return
	}
	t.rebuild(minLen)
}

// Slice returns the first `length` positions as a [1, length, dim] tensor
// ready to broadcast over a batch.
//
// Precondition: length <= Capacity(). Callers extend first via
// EnsureCapacity; violating the precondition is a contract breach and panics.
func (t *PositionalTable[B]) Slice(length int) *tensor.Tensor[float32, B] {
	if length <= 0 || length > t.capacity {
		panic(fmt.Sprintf("PositionalTable: slice length %d outside cached capacity %d", length, t.capacity))
	}

	data := t.table.Data()[:length*t.dim]
	out := make([]float32, length*t.dim)
	copy(out, data)

	sliced, err := tensor.FromSlice[float32, B](out, tensor.Shape{1, length, t.dim}, t.backend)
	if err != nil {
		panic(fmt.Sprintf("PositionalTable: failed to create slice tensor: %v", err))
	}
	return sliced
}

func (t *PositionalTable[B]) rebuild(length int) {
	data := make([]float32, length*t.dim)

	for i := 0; i < t.dim/2; i++ {
		// omega_i = 10000^(-2i/d)
		omega := math.Exp(float64(2*i) * -(math.Log(10000.0) / float64(t.dim)))
		for pos := 0; pos < length; pos++ {
			angle := float64(pos) * omega
			data[pos*t.dim+2*i] = float32(math.Sin(angle))
			data[pos*t.dim+2*i+1] = float32(math.Cos(angle))
		}
	}

	table, err := tensor.FromSlice[float32, B](data, tensor.Shape{1, length, t.dim}, t.backend)
	if err != nil {
		panic(fmt.Sprintf("PositionalTable: failed to build table: %v", err))
	}
	t.table = table
	t.capacity = length
}

// PositionalEncoding adds fixed sinusoidal positional encodings with a
// constant input scale.
//
// Combination rule: output = input * sqrt(d_model) + PE[:time]
//
// The sqrt(d_model) factor keeps input and positional magnitudes comparable
// before any learning happens. Dropout regularizes the sum during training.
type PositionalEncoding[B tensor.Backend] struct {
	dModel  int
	xscale  float32
	table   *PositionalTable[B]
	dropout *Dropout[B]
}

// NewPositionalEncoding creates an unscaled positional encoder.
//
// maxLen sets the initial table capacity; longer sequences extend it lazily.
func NewPositionalEncoding[B tensor.Backend](dModel int, dropoutRate float32, maxLen int, backend B) *PositionalEncoding[B] {
	return &PositionalEncoding[B]{
		dModel:  dModel,
		xscale:  float32(math.Sqrt(float64(dModel))),
		table:   NewPositionalTable[B](dModel, maxLen, backend),
		dropout: NewDropout[B](dropoutRate),
	}
}

// Forward adds positional encodings.
//
// Input shape: [batch, time, d_model]
// Output shape: [batch, time, d_model]
func (p *PositionalEncoding[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	timeLen := p.checkInput(x)
	p.table.EnsureCapacity(timeLen)

	out := x.MulScalar(p.xscale).Add(p.table.Slice(timeLen))
	return p.dropout.Forward(out)
}

// SetTraining toggles dropout between training and inference behavior.
func (p *PositionalEncoding[B]) SetTraining(training bool) {
	p.dropout.SetTraining(training)
}

// Table returns the owned positional table.
func (p *PositionalEncoding[B]) Table() *PositionalTable[B] {
	return p.table
}

// Parameters returns an empty slice (the table is fixed, not learned).
func (p *PositionalEncoding[B]) Parameters() []*Parameter[B] {
	return nil
}

func (p *PositionalEncoding[B]) checkInput(x *tensor.Tensor[float32, B]) int {
	shape := x.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("PositionalEncoding: expected 3D input [batch, time, d_model], got shape %v", shape))
	}
	if shape[2] != p.dModel {
		panic(fmt.Sprintf("PositionalEncoding: expected d_model %d, got %d", p.dModel, shape[2]))
	}
	return shape[1]
}

// ScaledPositionalEncoding adds sinusoidal positional encodings blended by a
// learnable scalar.
//
// Combination rule: output = input + alpha * PE[:time]
//
// Alpha starts at 1.0 and is trainable, letting the model adapt how strongly
// position information perturbs content embeddings. See Sec. 3.2 of
// "Neural Speech Synthesis with Transformer Network" (arXiv:1809.08895).
//
// Shares the table mechanics with PositionalEncoding by composing the same
// PositionalTable, not by inheritance.
type ScaledPositionalEncoding[B tensor.Backend] struct {
	dModel  int
	alpha   *Parameter[B] // scalar blend weight
	table   *PositionalTable[B]
	dropout *Dropout[B]
	backend B
}

// NewScaledPositionalEncoding creates a scaled positional encoder with
// alpha initialized to 1.0.
func NewScaledPositionalEncoding[B tensor.Backend](dModel int, dropoutRate float32, maxLen int, backend B) *ScaledPositionalEncoding[B] {
	return &ScaledPositionalEncoding[B]{
		dModel:  dModel,
		alpha:   NewParameter("alpha", Ones(tensor.Shape{1}, backend)),
		table:   NewPositionalTable[B](dModel, maxLen, backend),
		dropout: NewDropout[B](dropoutRate),
		backend: backend,
	}
}

// Forward adds alpha-scaled positional encodings.
//
// Input shape: [batch, time, d_model]
// Output shape: [batch, time, d_model]
func (s *ScaledPositionalEncoding[B]) Forward(x *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	shape := x.Shape()
	if len(shape) != 3 {
		panic(fmt.Sprintf("ScaledPositionalEncoding: expected 3D input [batch, time, d_model], got shape %v", shape))
	}
	if shape[2] != s.dModel {
		panic(fmt.Sprintf("ScaledPositionalEncoding: expected d_model %d, got %d", s.dModel, shape[2]))
	}
	timeLen := shape[1]
	s.table.EnsureCapacity(timeLen)

	scaled := s.table.Slice(timeLen).Mul(s.alpha.Tensor())
	return s.dropout.Forward(x.Add(scaled))
}

// ResetParameters restores alpha to its initial value of 1.0.
func (s *ScaledPositionalEncoding[B]) ResetParameters() {
	s.alpha.SetTensor(Ones(tensor.Shape{1}, s.backend))
}

// Alpha returns the learnable blend weight.
func (s *ScaledPositionalEncoding[B]) Alpha() *Parameter[B] {
	return s.alpha
}

// SetTraining toggles dropout between training and inference behavior.
func (s *ScaledPositionalEncoding[B]) SetTraining(training bool) {
	s.dropout.SetTraining(training)
}

// Table returns the owned positional table.
func (s *ScaledPositionalEncoding[B]) Table() *PositionalTable[B] {
	return s.table
}

// Parameters returns the trainable parameters (alpha).
func (s *ScaledPositionalEncoding[B]) Parameters() []*Parameter[B] {
	return []*Parameter[B]{s.alpha}
}
