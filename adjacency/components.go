package adjacency

// Components returns the weakly connected components of g: edges are
// followed in both directions. Components appear in the first-seen order of
// their first id and list ids in BFS order.
//
// Time O(V+E), memory O(V+E).
func (g *Graph) Components() [][]string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	undirected := g.undirected()
	seen := make(map[string]bool, len(g.ids))
	var comps [][]string

	for _, start := range g.ids {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue := []string{start}
		for qi := 0; qi < len(queue); qi++ {
			for _, nb := range undirected[queue[qi]] {
				if !seen[nb] {
					seen[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		comps = append(comps, queue)
	}

	return comps
}

// Reach runs a multi-source BFS against the direction values flow during
// interpolation: a row draws on its neighbours, so information moves from
// a neighbour to the rows that list it. The result maps every reachable id
// to the hop count at which it first sees a source value; sources map to 0.
// Sources unknown to g are still reported at 0.
//
// Under the default interpolation policy a missing row at hop k is
// guaranteed a value after k rounds; rows absent from the result never get one.
func (g *Graph) Reach(sources []string) map[string]int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	// reverse[u] lists every v with u in NeighboursOf(v), in first-seen order of v.
	reverse := make(map[string][]string, len(g.ids))
	for _, v := range g.ids {
		for _, u := range g.adj[v] {
			reverse[u] = append(reverse[u], v)
		}
	}

	dist := make(map[string]int, len(g.ids))
	queue := make([]string, 0, len(sources))
	for _, s := range sources {
		if _, ok := dist[s]; ok {
			continue
		}
		dist[s] = 0
		queue = append(queue, s)
	}
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, v := range reverse[u] {
			if _, ok := dist[v]; !ok {
				dist[v] = dist[u] + 1
				queue = append(queue, v)
			}
		}
	}

	return dist
}

// undirected builds a deduplicated two-way neighbour view; caller holds mu.
func (g *Graph) undirected() map[string][]string {
	out := make(map[string][]string, len(g.ids))
	seen := make(map[[2]string]bool)
	add := func(a, b string) {
		if seen[[2]string{a, b}] {
			return
		}
		seen[[2]string{a, b}] = true
		out[a] = append(out[a], b)
	}
	for _, v := range g.ids {
		for _, u := range g.adj[v] {
			add(v, u)
			add(u, v)
		}
	}

	return out
}
