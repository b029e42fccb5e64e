package tensor

import "fmt"

// Tensor is a typed, shaped view over caller-owned memory.
//
// A Tensor owns nothing: Data and Params are slices into buffers handed out
// by whoever planned the memory. Shape and DType are fixed when the owning
// layer is constructed; Data and Params are bound afterwards, once the
// memory requirements of the whole graph are known, and are not reallocated
// during forward or backward passes.
type Tensor struct {
	DType  *DataType
	Shape  *Shape
	Data   []byte
	Params []byte
}

// Dim returns the number of axes.
func (t *Tensor) Dim() int {
	return t.Shape.Dim()
}

// NumElements returns the number of elements described by the shape.
func (t *Tensor) NumElements() int {
	return t.Shape.NumElements()
}

// DataSize returns the exact number of bytes the element storage must hold.
func (t *Tensor) DataSize() int {
	return SizeofData(t)
}

// ParamsSize returns the exact number of bytes of the parameter block.
func (t *Tensor) ParamsSize() int {
	return SizeofParams(t)
}

// Bind attaches element storage and a parameter block to the tensor.
// The slices are truncated to the exact sizes the tensor needs; callers
// must hand in at least that much.
func (t *Tensor) Bind(data, params []byte) {
	t.Data = data[:SizeofData(t):SizeofData(t)]
	if n := SizeofParams(t); n > 0 {
		t.Params = params[:n:n]
	} else {
		t.Params = nil
	}
}

// Bound reports whether the tensor has storage attached.
func (t *Tensor) Bound() bool {
	return len(t.Data) >= SizeofData(t) && len(t.Params) >= SizeofParams(t)
}

// String describes the tensor without printing its contents.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor(%s, %s)", t.DType, t.Shape)
}

// SizeofData returns the byte size of the element storage of t,
// derived from the shape and the data type only.
func SizeofData(t *Tensor) int {
	return t.Shape.NumElements() * t.DType.Size
}

// SizeofParams returns the byte size of the parameter block of t,
// derived from the data type only.
func SizeofParams(t *Tensor) int {
	return t.DType.ParamsSize
}

// Sizeof returns SizeofData(t) + SizeofParams(t).
func Sizeof(t *Tensor) int {
	return SizeofData(t) + SizeofParams(t)
}
