package frameworkops

import (
	"math"
	"sort"

	"github.com/turtacn/StratFit-Intelligence/internal/domain/factor"
)

// trend multipliers applied to a force's effective strength
const (
	trendUpFactor   = 1.1
	trendDownFactor = 0.9
)

const degenerateNorm = 1e-12

// Competitive builds the directed influence graph over the force nodes,
// reduces it to eigen-centrality weights via power iteration, and combines
// each node's normalized strength with its centrality into an industry
// attractiveness scalar.  A graph whose influence weights are all zero
// falls back to uniform centrality with eigenvalue 0 instead of producing
// NaN.
func (o *operatorsImpl) Competitive(nodes []*factor.ForceNode) *CompetitiveResult {
	ordered := orderedNodes(nodes)
	n := len(ordered)
	if n == 0 {
		return &CompetitiveResult{
			Attractiveness: 0.5,
			Score:          0,
			Centrality:     map[factor.Force]float64{},
			Degenerate:     true,
		}
	}

	adj := buildInfluenceMatrix(ordered)
	centrality, eigenvalue, degenerate := powerIteration(adj, o.cfg.PowerIterations)

	// Influence-weighted force pressure in [0,1]: each force's normalized
	// strength (trend-adjusted) weighted by its centrality share.
	var pressure, centralitySum float64
	for i, node := range ordered {
		strength := node.NormalizedStrength() * trendFactor(node.Trend)
		if strength > 1 {
			strength = 1
		}
		pressure += centrality[i] * strength
		centralitySum += centrality[i]
	}
	if centralitySum > 0 {
		pressure /= centralitySum
	}

	attractiveness := 1 - pressure

	result := &CompetitiveResult{
		Attractiveness: attractiveness,
		Score:          2*attractiveness - 1,
		Centrality:     make(map[factor.Force]float64, n),
		Eigenvalue:     eigenvalue,
		Degenerate:     degenerate,
	}
	for i, node := range ordered {
		result.Centrality[node.Force] = centrality[i]
	}
	return result
}

// orderedNodes sorts nodes by force identifier so the reduction is
// independent of extraction order.
func orderedNodes(nodes []*factor.ForceNode) []*factor.ForceNode {
	out := make([]*factor.ForceNode, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Force < out[j].Force })
	return out
}

// buildInfluenceMatrix assembles the directed adjacency matrix: a node's own
// influence map wins, missing edges receive the structural defaults.
func buildInfluenceMatrix(ordered []*factor.ForceNode) [][]float64 {
	n := len(ordered)
	adj := make([][]float64, n)
	for i, from := range ordered {
		adj[i] = make([]float64, n)
		for j, to := range ordered {
			if i == j {
				continue
			}
			if w, ok := from.Influence[to.Force]; ok {
				adj[i][j] = w
			} else {
				adj[i][j] = factor.StructuralInfluence(from.Force, to.Force)
			}
		}
	}
	return adj
}

func trendFactor(t factor.Trend) float64 {
	switch t {
	case factor.TrendIncreasing:
		return trendUpFactor
	case factor.TrendDecreasing:
		return trendDownFactor
	default:
		return 1
	}
}

// powerIteration computes the dominant eigenvector of adjᵀ (incoming
// influence) over a fixed iteration count.  It returns the centrality
// vector, the dominant eigenvalue estimate, and whether the iteration
// collapsed to the uniform fallback.
func powerIteration(adj [][]float64, iterations int) (centrality []float64, eigenvalue float64, degenerate bool) {
	n := len(adj)
	if iterations < 1 {
		iterations = 1
	}

	v := uniformVector(n)
	for iter := 0; iter < iterations; iter++ {
		next := make([]float64, n)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				// incoming influence: edge j→i contributes to node i
				next[i] += adj[j][i] * v[j]
			}
		}
		norm := l2norm(next)
		if norm < degenerateNorm {
			return uniformVector(n), 0, true
		}
		for i := range next {
			next[i] /= norm
		}
		eigenvalue = norm
		v = next
	}
	return v, eigenvalue, false
}

func uniformVector(n int) []float64 {
	v := make([]float64, n)
	if n == 0 {
		return v
	}
	u := 1 / math.Sqrt(float64(n))
	for i := range v {
		v[i] = u
	}
	return v
}

func l2norm(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}
