package form

type visitState uint8

const (
	stateVisiting visitState = iota + 1
	stateDone
)

// dependencyGraph indexes fields by position; deps[i] are the fields i reads.
type dependencyGraph struct {
	deps       [][]int
	dependents [][]int
}

func newDependencyGraph(deps [][]int) *dependencyGraph {
	g := &dependencyGraph{
		deps:       deps,
		dependents: make([][]int, len(deps)),
	}
	for owner, list := range deps {
		for _, dep := range list {
			g.dependents[dep] = append(g.dependents[dep], owner)
		}
	}
	return g
}

// order returns a topological order (dependencies first). On a cycle it
// returns the index of a node on the cycle and false.
func (g *dependencyGraph) order() ([]int, int, bool) {
	states := make([]visitState, len(g.deps))
	order := make([]int, 0, len(g.deps))

	var visit func(n int) (int, bool)
	visit = func(n int) (int, bool) {
		switch states[n] {
		case stateVisiting:
			return n, false
		case stateDone:
			return 0, true
		}

		states[n] = stateVisiting
		for _, dep := range g.deps[n] {
			if at, ok := visit(dep); !ok {
				return at, false
			}
		}
		states[n] = stateDone
		order = append(order, n)
		return 0, true
	}

	for n := range g.deps {
		if at, ok := visit(n); !ok {
			return nil, at, false
		}
	}
	return order, 0, true
}

// downstream returns every transitive dependent of n, listed in topo order.
func (g *dependencyGraph) downstream(n int, topo []int) []int {
	reached := make([]bool, len(g.deps))
	stack := append([]int(nil), g.dependents[n]...)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[cur] {
			continue
		}
		reached[cur] = true
		stack = append(stack, g.dependents[cur]...)
	}

	var out []int
	for _, idx := range topo {
		if reached[idx] && idx != n {
			out = append(out, idx)
		}
	}
	return out
}
