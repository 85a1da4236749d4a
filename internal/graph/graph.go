// Package graph provides the in-memory dependency graph used for cycle
// detection and readiness queries. A graph is built per scope: task
// dependencies within one epic, or dependencies between epics. It operates
// on snapshots loaded from the record store and never mutates storage.
package graph

import "sort"

// Graph is a directed dependency graph. An edge id -> dep means id depends
// on dep (dep must be done before id may start).
type Graph struct {
	ids  []string
	deps map[string][]string
}

// New builds a graph from dependency declarations. Edges referencing nodes
// outside the map are kept for Satisfied but skipped during traversal;
// missing-dependency reporting belongs to the validator, not the graph.
func New(deps map[string][]string) *Graph {
	g := &Graph{deps: make(map[string][]string, len(deps))}
	for id, ds := range deps {
		g.ids = append(g.ids, id)
		sorted := make([]string, len(ds))
		copy(sorted, ds)
		sort.Strings(sorted)
		g.deps[id] = sorted
	}
	// Sorted node order keeps cycle detection and ready sets deterministic.
	sort.Strings(g.ids)
	return g
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.ids) }

// DetectCycle returns the path of the first cycle found, with the starting
// node repeated at the end ("a -> b -> a"), or nil if the graph is acyclic.
// Uses DFS with three-color marking: white (unvisited), gray (in progress),
// black (done).
func (g *Graph) DetectCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	color := make(map[string]int, len(g.ids))
	parent := make(map[string]string, len(g.ids))

	var dfs func(node string) []string
	dfs = func(node string) []string {
		color[node] = gray
		for _, next := range g.deps[node] {
			if _, ok := g.deps[next]; !ok {
				continue
			}
			if color[next] == gray {
				// Walk back through the DFS parents to reconstruct the cycle.
				cycle := []string{next, node}
				cur := node
				for cur != next {
					cur = parent[cur]
					cycle = append(cycle, cur)
				}
				for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
					cycle[i], cycle[j] = cycle[j], cycle[i]
				}
				return cycle
			}
			if color[next] == white {
				parent[next] = node
				if cycle := dfs(next); cycle != nil {
					return cycle
				}
			}
		}
		color[node] = black
		return nil
	}

	for _, id := range g.ids {
		if color[id] == white {
			if cycle := dfs(id); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// Satisfied reports whether every dependency of id is in done.
func (g *Graph) Satisfied(id string, done map[string]bool) bool {
	for _, dep := range g.deps[id] {
		if !done[dep] {
			return false
		}
	}
	return true
}

// ReadySet returns the nodes eligible to start: not done, not in progress,
// and with every dependency in done. The result is sorted.
func (g *Graph) ReadySet(done, inProgress map[string]bool) []string {
	var ready []string
	for _, id := range g.ids {
		if done[id] || inProgress[id] {
			continue
		}
		if g.Satisfied(id, done) {
			ready = append(ready, id)
		}
	}
	return ready
}
