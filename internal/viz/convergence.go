// Package viz renders optimization progress for the terminal.
package viz

import (
	"math"

	"github.com/guptarohit/asciigraph"
)

// Convergence plots the distance history on a log10 axis, which is the only
// scale on which the tail of a converging run is visible.
func Convergence(history []float64, height int) string {
	if len(history) == 0 {
		return "no history"
	}
	if height <= 0 {
		height = 12
	}

	data := make([]float64, len(history))
	for i, f := range history {
		if f <= 0 {
			f = 1e-16
		}
		data[i] = math.Log10(f)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Caption("log10 distance vs accepted step"),
	)
}
