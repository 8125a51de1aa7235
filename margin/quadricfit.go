package margin

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// localFrame is a tangent-plane basis (u, w) and normal n at a vertex,
// estimated from the PCA of its neighborhood.
type localFrame struct {
	normal r3.Vector
	u, w   r3.Vector
}

// estimateNormalFrame computes the PCA-based normal and an orthonormal
// tangent basis from a vertex's position and its neighbors' positions. The
// normal is the eigenvector of the smallest eigenvalue of the neighborhood
// covariance — the same construction as a plain point-cloud normal estimate,
// generalized here to also hand back a tangent basis for the quadric fit.
func estimateNormalFrame(center r3.Vector, neighbors []r3.Vector) (localFrame, error) {
	if len(neighbors) < 3 {
		return localFrame{}, ErrDegenerateGeometry
	}

	var cx, cy, cz float64
	pts := append([]r3.Vector{center}, neighbors...)
	for _, p := range pts {
		cx += p.X
		cy += p.Y
		cz += p.Z
	}
	n := float64(len(pts))
	centroid := r3.Vector{X: cx / n, Y: cy / n, Z: cz / n}

	var cov [9]float64
	for _, p := range pts {
		d := p.Sub(centroid)
		cov[0] += d.X * d.X
		cov[1] += d.X * d.Y
		cov[2] += d.X * d.Z
		cov[4] += d.Y * d.Y
		cov[5] += d.Y * d.Z
		cov[8] += d.Z * d.Z
	}
	cov[3], cov[6], cov[7] = cov[1], cov[2], cov[5]
	for i := range cov {
		cov[i] /= n
	}

	covMat := mat.NewSymDense(3, []float64{
		cov[0], cov[1], cov[2],
		cov[3], cov[4], cov[5],
		cov[6], cov[7], cov[8],
	})

	var eigen mat.EigenSym
	if !eigen.Factorize(covMat, true) {
		return localFrame{}, ErrSingularMatrix
	}
	var vecs mat.Dense
	eigen.VectorsTo(&vecs)

	// Eigenvalues ascending; column 0 is the smallest-eigenvalue eigenvector (normal).
	normal := r3.Vector{X: vecs.At(0, 0), Y: vecs.At(1, 0), Z: vecs.At(2, 0)}
	if normal.Norm() < 1e-12 {
		return localFrame{}, ErrDegenerateGeometry
	}
	normal = normal.Normalize()

	// Build an orthonormal tangent basis from the other two eigenvectors.
	u := r3.Vector{X: vecs.At(0, 1), Y: vecs.At(1, 1), Z: vecs.At(2, 1)}
	u = u.Sub(normal.Mul(normal.Dot(u))).Normalize()
	w := normal.Cross(u).Normalize()

	return localFrame{normal: normal, u: u, w: w}, nil
}

// quadricCoeffs are the coefficients of a local height-field fit
// z = a*x^2 + b*x*y + c*y^2 + d*x + e*y over the tangent plane.
type quadricCoeffs struct {
	a, b, c, d, e float64
}

// fitQuadric least-squares fits a quadric height field to neighbor points
// expressed in the tangent frame at center, via QR decomposition — the same
// solve pattern used for algebraic sphere fitting, generalized from a 4
// unknown linear system to a 5 unknown quadric system.
func fitQuadric(center r3.Vector, frame localFrame, neighbors []r3.Vector) (quadricCoeffs, error) {
	n := len(neighbors)
	if n < 5 {
		return quadricCoeffs{}, ErrDegenerateGeometry
	}

	A := mat.NewDense(n, 5, nil)
	b := mat.NewVecDense(n, nil)
	for i, p := range neighbors {
		d := p.Sub(center)
		x := d.Dot(frame.u)
		y := d.Dot(frame.w)
		z := d.Dot(frame.normal)
		A.Set(i, 0, x*x)
		A.Set(i, 1, x*y)
		A.Set(i, 2, y*y)
		A.Set(i, 3, x)
		A.Set(i, 4, y)
		b.SetVec(i, z)
	}

	var qr mat.QR
	qr.Factorize(A)
	var x mat.VecDense
	if err := qr.SolveVecTo(&x, false, b); err != nil {
		return quadricCoeffs{}, ErrSingularMatrix
	}

	return quadricCoeffs{
		a: x.AtVec(0),
		b: x.AtVec(1),
		c: x.AtVec(2),
		d: x.AtVec(3),
		e: x.AtVec(4),
	}, nil
}

// principalFromQuadric eigendecomposes the quadric's shape operator
// [[2a, b], [b, 2c]] to recover the principal curvatures (k1 >= k2) and
// their directions, mapped from the 2-D tangent frame back into R3.
func principalFromQuadric(frame localFrame, q quadricCoeffs) (k1, k2 float64, d1, d2 r3.Vector, err error) {
	shape := mat.NewSymDense(2, []float64{
		2 * q.a, q.b,
		q.b, 2 * q.c,
	})

	var eigen mat.EigenSym
	if !eigen.Factorize(shape, true) {
		return 0, 0, r3.Vector{}, r3.Vector{}, ErrSingularMatrix
	}
	vals := eigen.Values(nil)
	var vecs mat.Dense
	eigen.VectorsTo(&vecs)

	// Eigenvalues ascending: index 1 is k1 (max), index 0 is k2 (min).
	k1 = vals[1]
	k2 = vals[0]
	d1 = toTangentVector(frame, vecs.At(0, 1), vecs.At(1, 1))
	d2 = toTangentVector(frame, vecs.At(0, 0), vecs.At(1, 0))
	return k1, k2, d1, d2, nil
}

func toTangentVector(frame localFrame, x, y float64) r3.Vector {
	v := frame.u.Mul(x).Add(frame.w.Mul(y))
	n := v.Norm()
	if n < 1e-12 {
		return frame.u
	}
	return v.Mul(1.0 / n)
}

// cotangent returns cot(angle at vertex o opposite edge a-b), clamped to a
// generous range to avoid blow-up near degenerate (near-collinear) triangles.
func cotangent(o, a, b r3.Vector) float64 {
	u := a.Sub(o)
	v := b.Sub(o)
	cross := u.Cross(v).Norm()
	if cross < 1e-12 {
		return 0
	}
	cot := u.Dot(v) / cross
	const clamp = 1e3
	if cot > clamp {
		return clamp
	}
	if cot < -clamp {
		return -clamp
	}
	return cot
}

// triangleAngle returns the interior angle at vertex o of triangle (o, a, b).
func triangleAngle(o, a, b r3.Vector) float64 {
	u := a.Sub(o).Normalize()
	v := b.Sub(o).Normalize()
	cos := u.Dot(v)
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// triangleArea returns the area of triangle (a, b, c).
func triangleArea(a, b, c r3.Vector) float64 {
	return 0.5 * b.Sub(a).Cross(c.Sub(a)).Norm()
}
