package cascade

// Step is a snapshot of the alive counts at the end of one iteration.
type Step struct {
	AliveA int `json:"alive_a"`
	AliveB int `json:"alive_b"`
	MCGC   int `json:"mcgc"` // alive in both layers
}

// Result is the outcome of one cascade run. It is never modified after Run returns.
type Result struct {
	// FinalAlive marks nodes alive in both layers at the fixed point.
	FinalAlive []bool `json:"final_alive"`
	// MInfty is the surviving fraction of the node space, 0 for an empty system.
	MInfty float64 `json:"m_infty"`
	// History holds one Step per iteration, including the converged one.
	History []Step `json:"history"`
}

// Iterations returns the number of iterations executed.
func (r *Result) Iterations() int {
	return len(r.History)
}

// SurvivorCount returns the number of nodes alive in both layers.
func (r *Result) SurvivorCount() int {
	n := 0
	for _, ok := range r.FinalAlive {
		if ok {
			n++
		}
	}
	return n
}

// Survivors returns the indices of surviving nodes in ascending order.
func (r *Result) Survivors() []int {
	out := make([]int, 0, r.SurvivorCount())
	for i, ok := range r.FinalAlive {
		if ok {
			out = append(out, i)
		}
	}
	return out
}
