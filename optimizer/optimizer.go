package optimizer

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Momentum applies v = momentum*v - lr*grad; w += v.
// The velocity is allocated on the first Train call and reused afterwards.
type Momentum struct {
	Momentum float64
	Velocity []float64
}

func (opt *Momentum) Train(w, grad []float64, lr float64) error {
	if len(w) != len(grad) {
		return fmt.Errorf("optimizer: len(w) = %d, len(grad) = %d", len(w), len(grad))
	}
	if opt.Velocity == nil {
		opt.Velocity = make([]float64, len(w))
	}
	if len(opt.Velocity) != len(w) {
		return fmt.Errorf("optimizer: velocity has %d entries, want %d", len(opt.Velocity), len(w))
	}

	floats.Scale(opt.Momentum, opt.Velocity)
	floats.AddScaled(opt.Velocity, -lr, grad)
	floats.Add(w, opt.Velocity)
	return nil
}

func (opt *Momentum) Reset() {
	opt.Velocity = nil
}
