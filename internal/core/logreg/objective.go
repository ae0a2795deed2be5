package logreg

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"phishguard/internal/core/textvec"
)

// blockRows is the fixed shard size for loss/gradient evaluation
// It must not depend on the worker count or results stop being reproducible
const blockRows = 256

// objective is mean log-loss plus an L2 penalty on the weights (not the intercept)
// parameters are laid out as [w_0 .. w_{dim-1}, b]
type objective struct {
	x       []textvec.Vector
	y       []float64
	dim     int
	lambda  float64
	workers int

	blocks [][2]int
	bufs   [][]float64
	losses []float64
}

func newObjective(x []textvec.Vector, y []float64, dim int, c float64, workers int) *objective {
	n := len(x)
	o := &objective{
		x:       x,
		y:       y,
		dim:     dim,
		lambda:  1 / (c * float64(n)),
		workers: workers,
	}
	for lo := 0; lo < n; lo += blockRows {
		hi := min(lo+blockRows, n)
		o.blocks = append(o.blocks, [2]int{lo, hi})
	}
	o.bufs = make([][]float64, len(o.blocks))
	for i := range o.bufs {
		o.bufs[i] = make([]float64, dim+1)
	}
	o.losses = make([]float64, len(o.blocks))
	return o
}

// eval writes the gradient at theta into grad and returns the objective value
func (o *objective) eval(ctx context.Context, theta, grad []float64) (float64, error) {
	w, b := theta[:o.dim], theta[o.dim]

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for bi, blk := range o.blocks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			buf := o.bufs[bi]
			clear(buf)
			var loss float64
			for i := blk[0]; i < blk[1]; i++ {
				row, yi := o.x[i], o.y[i]
				z := row.Dot(w) + b
				loss += log1pexp(z) - yi*z
				r := sigmoid(z) - yi
				for k, j := range row.Indices {
					buf[j] += r * row.Values[k]
				}
				buf[o.dim] += r
			}
			o.losses[bi] = loss
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	// reduce in block order so the sum is identical for any worker count
	clear(grad)
	var f float64
	for bi := range o.blocks {
		f += o.losses[bi]
		for j, v := range o.bufs[bi] {
			grad[j] += v
		}
	}
	inv := 1 / float64(len(o.x))
	f *= inv
	for j := range grad {
		grad[j] *= inv
	}
	var ww float64
	for j, wj := range w {
		ww += wj * wj
		grad[j] += o.lambda * wj
	}
	f += 0.5 * o.lambda * ww
	return f, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// log1pexp is log(1+e^z) without overflow
func log1pexp(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}
