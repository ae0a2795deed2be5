package logreg

import (
	"context"
	"math"
)

const (
	armijoC1     = 1e-4
	maxLineSteps = 40
	minCurvature = 1e-10
	// relative function decrease below which the solve is considered done
	ftol = 2.220446049250313e-09
)

type lbfgsResult struct {
	x          []float64
	f          float64
	iterations int
	converged  bool
}

// lbfgs minimizes o from the zero vector with limited-memory BFGS and backtracking Armijo steps
func lbfgs(ctx context.Context, o *objective, history, maxIter int, tol float64) (lbfgsResult, error) {
	n := o.dim + 1
	x := make([]float64, n)
	g := make([]float64, n)
	xNew := make([]float64, n)
	gNew := make([]float64, n)
	dir := make([]float64, n)

	f, err := o.eval(ctx, x, g)
	if err != nil {
		return lbfgsResult{}, err
	}

	var (
		ss, ys [][]float64
		rhos   []float64
		alphas = make([]float64, history)
	)
	res := lbfgsResult{}

	for res.iterations < maxIter {
		if maxAbs(g) <= tol {
			res.converged = true
			break
		}
		if err := ctx.Err(); err != nil {
			return lbfgsResult{}, err
		}

		twoLoop(dir, g, ss, ys, rhos, alphas)
		gd := dot(g, dir)
		if gd >= 0 {
			// not a descent direction; restart from steepest descent
			ss, ys, rhos = ss[:0], ys[:0], rhos[:0]
			for i := range dir {
				dir[i] = -g[i]
			}
			gd = dot(g, dir)
		}

		step := 1.0
		if len(ss) == 0 {
			step = math.Min(1, 1/math.Sqrt(-gd))
		}
		accepted := false
		var fNew float64
		for range maxLineSteps {
			for i := range xNew {
				xNew[i] = x[i] + step*dir[i]
			}
			fNew, err = o.eval(ctx, xNew, gNew)
			if err != nil {
				return lbfgsResult{}, err
			}
			if fNew <= f+armijoC1*step*gd {
				accepted = true
				break
			}
			step *= 0.5
		}
		if !accepted {
			break
		}

		s := make([]float64, n)
		y := make([]float64, n)
		for i := range s {
			s[i] = xNew[i] - x[i]
			y[i] = gNew[i] - g[i]
		}
		if sy := dot(s, y); sy > minCurvature {
			if len(ss) == history {
				ss, ys, rhos = ss[1:], ys[1:], rhos[1:]
			}
			ss = append(ss, s)
			ys = append(ys, y)
			rhos = append(rhos, 1/sy)
		}

		decrease := f - fNew
		scale := math.Max(math.Max(math.Abs(f), math.Abs(fNew)), 1)
		x, xNew = xNew, x
		g, gNew = gNew, g
		f = fNew
		res.iterations++
		if decrease <= ftol*scale {
			res.converged = true
			break
		}
	}
	if !res.converged && maxAbs(g) <= tol {
		res.converged = true
	}
	res.x, res.f = x, f
	return res, nil
}

// twoLoop writes -H*g into dir using the stored curvature pairs (oldest first)
func twoLoop(dir, g []float64, ss, ys [][]float64, rhos, alphas []float64) {
	copy(dir, g)
	k := len(ss)
	for i := k - 1; i >= 0; i-- {
		alphas[i] = rhos[i] * dot(ss[i], dir)
		axpy(-alphas[i], ys[i], dir)
	}
	if k > 0 {
		gamma := dot(ss[k-1], ys[k-1]) / dot(ys[k-1], ys[k-1])
		for i := range dir {
			dir[i] *= gamma
		}
	}
	for i := 0; i < k; i++ {
		beta := rhos[i] * dot(ys[i], dir)
		axpy(alphas[i]-beta, ss[i], dir)
	}
	for i := range dir {
		dir[i] = -dir[i]
	}
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func axpy(alpha float64, x, y []float64) {
	for i := range x {
		y[i] += alpha * x[i]
	}
}

func maxAbs(a []float64) float64 {
	var m float64
	for _, v := range a {
		m = math.Max(m, math.Abs(v))
	}
	return m
}
