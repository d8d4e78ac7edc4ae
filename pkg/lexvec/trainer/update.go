package trainer

import "github.com/cognicore/lexvec/pkg/lexvec/sigmoid"

// update applies one SGNS-style gradient step for a single (input row,
// output row) pair with the given label (1 for a positive draw, 0 for a
// negative draw) and scale factor, accumulating the input-side gradient
// into h and applying the output-side update in place (§4.6).
//
// The two accumulations are deliberately unfused: h is updated from the
// pre-update rowO, then rowO is updated from rowI, mirroring the source's
// two-pass structure rather than folding them into one loop body. rowI
// itself is left unchanged here; the caller adds h to it afterwards.
func (tr *Trainer) update(rowI, rowO []float32, label, scale, alpha float32, h []float32) {
	z := dot(rowI, rowO)
	g := alpha * scale * (label - tr.sig.At(z))
	for k := range h {
		h[k] += g * rowO[k]
	}
	for k := range rowO {
		rowO[k] += g * rowI[k]
	}
}

// updatePositiveSaturating applies a positive-only (label=1) update for a
// strong- or weak-pair draw, scaled by beta, short-circuiting when the
// dot product already exceeds the sigmoid table's saturation bound — at
// that point the gradient is zero to table precision, so skipping avoids
// the wasted pass over h and rowO (§4.6 Pass B/C).
func (tr *Trainer) updatePositiveSaturating(rowI, rowO []float32, beta, alpha float32, h []float32) {
	z := dot(rowI, rowO)
	if z > float32(sigmoid.Bound) {
		return
	}
	g := alpha * beta * (1 - tr.sig.At(z))
	for k := range h {
		h[k] += g * rowO[k]
	}
	for k := range rowO {
		rowO[k] += g * rowI[k]
	}
}

// dot computes the inner product of two equal-length rows.
func dot(a, b []float32) float32 {
	var s float32
	for i, v := range a {
		s += v * b[i]
	}
	return s
}
