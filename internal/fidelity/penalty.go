package fidelity

// AmplitudePenalty discourages large control amplitudes with a quadratic
// term weight * sum(x_i^2). Attach it to a metric via WithPenalty or by
// embedding it in a Core.
type AmplitudePenalty struct {
	Weight float64
}

func (p AmplitudePenalty) Penalty(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return p.Weight * sum
}

func (p AmplitudePenalty) PenaltyGradient(x []float64) []float64 {
	g := make([]float64, len(x))
	for i, v := range x {
		g[i] = 2 * p.Weight * v
	}
	return g
}
