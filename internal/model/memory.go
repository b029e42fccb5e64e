package model

import (
	"github.com/ember-ml/ember/internal/layer"
	"github.com/ember-ml/ember/internal/tensor"
)

// Memory planning. Every layer reports the exact size it needs, the model
// rounds each request up to cfg.Alignment and hands out consecutive
// sub-ranges of a single caller buffer. Sizes are only valid for the shapes
// in effect; after CalcResultShapes the plan must be made again.
//
// Buffers should start on an aligned address; tensor.AlignedBytes returns
// such a buffer.

// SizeofParameterMemory returns the bytes needed for all trainable parameters.
func (m *Model) SizeofParameterMemory() int {
	n := 0
	for _, l := range m.layers {
		n += m.cfg.align(l.SizeofParamem())
	}
	return n
}

// DistributeParameterMemory binds the trainable parameters of every layer
// to sub-ranges of buf. Parameter values are not initialized.
func (m *Model) DistributeParameterMemory(buf []byte) error {
	size := m.SizeofParameterMemory()
	if len(buf) < size {
		return ErrBufferTooSmall
	}
	off := 0
	for _, l := range m.layers {
		n := l.SizeofParamem()
		if n > 0 {
			l.SetParamem(buf[off : off+n : off+n])
		}
		off += m.cfg.align(n)
	}
	m.cfg.Logger.Debug("parameter memory distributed", "bytes", size)
	return nil
}

// SizeofTrainingMemory returns the bytes needed for a backward pass:
// gradients of every layer, deltas of every layer after the input layer,
// and one scratch buffer shared by all layers that need one.
func (m *Model) SizeofTrainingMemory() int {
	n := 0
	for i, l := range m.layers {
		n += m.cfg.align(l.SizeofTrainmem())
		if i > 0 {
			n += m.cfg.align(tensor.Sizeof(&l.Base().Deltas))
		}
	}
	return n + m.cfg.align(m.sizeofScratch())
}

// ScheduleTrainingMemory binds gradients, deltas and scratch memory to
// sub-ranges of buf. The gradient seeded by Backward is bound separately.
func (m *Model) ScheduleTrainingMemory(buf []byte) error {
	size := m.SizeofTrainingMemory()
	if len(buf) < size {
		return ErrBufferTooSmall
	}
	off := 0
	for i, l := range m.layers {
		if n := l.SizeofTrainmem(); n > 0 {
			l.SetTrainmem(buf[off : off+n : off+n])
			off += m.cfg.align(n)
		}
		if i == 0 {
			continue
		}
		deltas := &l.Base().Deltas
		n := tensor.SizeofData(deltas)
		p := tensor.SizeofParams(deltas)
		deltas.Bind(buf[off:off+n], buf[off+n:off+n+p])
		off += m.cfg.align(n + p)
	}

	scratch := buf[off : off+m.sizeofScratch()]
	for _, l := range m.layers {
		if s, ok := l.(layer.Scratcher); ok {
			s.SetScratch(scratch)
		}
	}
	m.cfg.Logger.Debug("training memory scheduled", "bytes", size, "scratch", len(scratch))
	return nil
}

// sizeofScratch returns the largest scratch request.
func (m *Model) sizeofScratch() int {
	n := 0
	for _, l := range m.layers {
		if s, ok := l.(layer.Scratcher); ok {
			n = max(n, s.SizeofScratch())
		}
	}
	return n
}

// SizeofInferenceMemory returns the bytes needed for the results of every
// layer after the input layer. The input layer's result is the caller's data.
func (m *Model) SizeofInferenceMemory() int {
	n := 0
	for _, l := range m.layers[1:] {
		n += m.cfg.align(tensor.Sizeof(&l.Base().Result))
	}
	return n
}

// ScheduleInferenceMemory binds the results of every layer after the input
// layer to sub-ranges of buf.
func (m *Model) ScheduleInferenceMemory(buf []byte) error {
	size := m.SizeofInferenceMemory()
	if len(buf) < size {
		return ErrBufferTooSmall
	}
	off := 0
	for _, l := range m.layers[1:] {
		result := &l.Base().Result
		n := tensor.SizeofData(result)
		p := tensor.SizeofParams(result)
		result.Bind(buf[off:off+n], buf[off+n:off+n+p])
		off += m.cfg.align(n + p)
	}
	m.cfg.Logger.Debug("inference memory scheduled", "bytes", size)
	return nil
}
