package layer

import "github.com/ember-ml/ember/internal/tensor"

// scratch is a temporary tensor with the shape and type of a layer's
// input, bound to memory handed out by the planner. It is only valid
// during one Backward call.
type scratch struct {
	t tensor.Tensor
}

// sizeofScratch returns the exact memory a scratch copy of x needs.
func sizeofScratch(x *tensor.Tensor) int {
	return tensor.Sizeof(x)
}

func (s *scratch) bind(x *tensor.Tensor, mem []byte) {
	s.t.DType = x.DType
	s.t.Shape = x.Shape
	n, size := tensor.SizeofData(x), sizeofScratch(x)
	s.t.Bind(mem[:n:n], mem[n:size:size])
}
