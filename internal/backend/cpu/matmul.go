package cpu

import (
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/floats"

	"github.com/ember-ml/ember/internal/tensor"
)

// Dense layer kernels. Matrices are row-major 2D tensors. Results must not
// alias an input.
//
// Only level-1 routines are used: gonum's gemm hands large products to
// worker goroutines and allocates their channels, and a pass must stay on
// the caller's goroutine without allocating.

// vec32 views s as a unit-stride vector.
func vec32(s []float32) blas32.Vector {
	return blas32.Vector{N: len(s), Inc: 1, Data: s}
}

// linearFloat32 computes result[m,n] = a[m,k]·b[k,n] + c[1,n].
func linearFloat32(a, b, c, result *tensor.Tensor) {
	m, k := a.Shape.At(0), a.Shape.At(1)
	n := b.Shape.At(1)
	as, bs, cs := a.AsFloat32(), b.AsFloat32(), c.AsFloat32()
	dst := result.AsFloat32()

	for i := 0; i < m; i++ {
		row := dst[i*n : (i+1)*n]
		copy(row, cs)
		for p := 0; p < k; p++ {
			blas32.Axpy(as[i*k+p], vec32(bs[p*n:(p+1)*n]), vec32(row))
		}
	}
}

// matMulATFloat32 computes result[k,n] = a[m,k]ᵀ·b[m,n].
func matMulATFloat32(a, b, result *tensor.Tensor) {
	m, k := a.Shape.At(0), a.Shape.At(1)
	n := b.Shape.At(1)
	as, bs := a.AsFloat32(), b.AsFloat32()
	dst := result.AsFloat32()

	clear(dst)
	for r := 0; r < m; r++ {
		brow := vec32(bs[r*n : (r+1)*n])
		for i := 0; i < k; i++ {
			blas32.Axpy(as[r*k+i], brow, vec32(dst[i*n:(i+1)*n]))
		}
	}
}

// matMulBTFloat32 computes result[m,p] = a[m,n]·b[p,n]ᵀ.
func matMulBTFloat32(a, b, result *tensor.Tensor) {
	m, n := a.Shape.At(0), a.Shape.At(1)
	p := b.Shape.At(0)
	as, bs := a.AsFloat32(), b.AsFloat32()
	dst := result.AsFloat32()

	for i := 0; i < m; i++ {
		arow := vec32(as[i*n : (i+1)*n])
		for j := 0; j < p; j++ {
			dst[i*p+j] = blas32.Dot(arow, vec32(bs[j*n:(j+1)*n]))
		}
	}
}

// sumRowsFloat32 computes result[1,n] = Σ_i a[i,:].
func sumRowsFloat32(a, result *tensor.Tensor) {
	m, n := a.Shape.At(0), a.Shape.At(1)
	as := a.AsFloat32()
	dst := vec32(result.AsFloat32())

	clear(dst.Data)
	for i := 0; i < m; i++ {
		blas32.Axpy(1, vec32(as[i*n:(i+1)*n]), dst)
	}
}

// linearFloat64 computes result[m,n] = a[m,k]·b[k,n] + c[1,n].
func linearFloat64(a, b, c, result *tensor.Tensor) {
	m, k := a.Shape.At(0), a.Shape.At(1)
	n := b.Shape.At(1)
	as, bs, cs := a.AsFloat64(), b.AsFloat64(), c.AsFloat64()
	dst := result.AsFloat64()

	for i := 0; i < m; i++ {
		row := dst[i*n : (i+1)*n]
		copy(row, cs)
		for p := 0; p < k; p++ {
			floats.AddScaled(row, as[i*k+p], bs[p*n:(p+1)*n])
		}
	}
}

// matMulATFloat64 computes result[k,n] = a[m,k]ᵀ·b[m,n].
func matMulATFloat64(a, b, result *tensor.Tensor) {
	m, k := a.Shape.At(0), a.Shape.At(1)
	n := b.Shape.At(1)
	as, bs := a.AsFloat64(), b.AsFloat64()
	dst := result.AsFloat64()

	clear(dst)
	for r := 0; r < m; r++ {
		brow := bs[r*n : (r+1)*n]
		for i := 0; i < k; i++ {
			floats.AddScaled(dst[i*n:(i+1)*n], as[r*k+i], brow)
		}
	}
}

// matMulBTFloat64 computes result[m,p] = a[m,n]·b[p,n]ᵀ.
func matMulBTFloat64(a, b, result *tensor.Tensor) {
	m, n := a.Shape.At(0), a.Shape.At(1)
	p := b.Shape.At(0)
	as, bs := a.AsFloat64(), b.AsFloat64()
	dst := result.AsFloat64()

	for i := 0; i < m; i++ {
		arow := as[i*n : (i+1)*n]
		for j := 0; j < p; j++ {
			dst[i*p+j] = floats.Dot(arow, bs[j*n:(j+1)*n])
		}
	}
}

// sumRowsFloat64 computes result[1,n] = Σ_i a[i,:].
func sumRowsFloat64(a, result *tensor.Tensor) {
	m, n := a.Shape.At(0), a.Shape.At(1)
	as := a.AsFloat64()
	dst := result.AsFloat64()

	clear(dst)
	for i := 0; i < m; i++ {
		floats.Add(dst, as[i*n:(i+1)*n])
	}
}
