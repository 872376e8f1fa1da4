package cluster

// ClusterID returns the compound node ID owning a task.
func ClusterID(task string) string { return ClusterPrefix + task }

// Clusterize wraps every task in a compound cluster node and parents each
// key-value to the cluster of the first task it is linked to. The result
// lists cluster nodes first, then the original nodes, then edges. Existing
// cluster nodes in the input are dropped and rebuilt.
func Clusterize(elements []Element) []Element {
	var clusters, nodes, edges []Element
	tasks := make(map[string]bool)
	for _, e := range elements {
		switch {
		case e.IsEdge():
			edges = append(edges, e)
		case e.IsCluster():
		default:
			if e.Data.Kind == KindTask {
				tasks[e.Data.ID] = true
				clusters = append(clusters, Element{
					Group: GroupNodes,
					Data:  Data{ID: ClusterID(e.Data.ID), Label: "Cluster " + e.Data.Label, Kind: KindCluster},
				})
			}
			nodes = append(nodes, e)
		}
	}

	owner := make(map[string]string)
	for _, e := range edges {
		s, t := e.Data.Source, e.Data.Target
		switch {
		case tasks[s] && !tasks[t]:
			if _, ok := owner[t]; !ok {
				owner[t] = s
			}
		case tasks[t] && !tasks[s]:
			if _, ok := owner[s]; !ok {
				owner[s] = t
			}
		}
	}

	for i, n := range nodes {
		n.Data.Parent = ""
		if tasks[n.Data.ID] {
			n.Data.Parent = ClusterID(n.Data.ID)
		} else if task, ok := owner[n.Data.ID]; ok && n.Data.Kind == KindKeyValue {
			n.Data.Parent = ClusterID(task)
		}
		nodes[i] = n
	}

	out := make([]Element, 0, len(clusters)+len(nodes)+len(edges))
	out = append(out, clusters...)
	out = append(out, nodes...)
	return append(out, edges...)
}

// Members returns the IDs of the nodes parented to cluster.
func Members(elements []Element, cluster string) []string {
	var ids []string
	for _, e := range elements {
		if e.IsNode() && e.Data.Parent == cluster {
			ids = append(ids, e.Data.ID)
		}
	}
	return ids
}

// Collapsed tracks which clusters are folded into a single node.
type Collapsed map[string]bool

// Toggle flips cluster between collapsed and expanded and reports the new
// state. IDs that are not clusters are ignored.
func (c Collapsed) Toggle(elements []Element, id string) bool {
	i, ok := Index(elements)[id]
	if !ok || !elements[i].IsCluster() {
		return false
	}
	c[id] = !c[id]
	if !c[id] {
		delete(c, id)
	}
	return c[id]
}

// Hidden reports whether id is hidden inside a collapsed cluster.
func (c Collapsed) Hidden(elements []Element, id string) bool {
	if len(c) == 0 {
		return false
	}
	i, ok := Index(elements)[id]
	if !ok {
		return false
	}
	return c[elements[i].Data.Parent]
}
