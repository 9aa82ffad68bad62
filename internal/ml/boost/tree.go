package boost

// Node is one node of a regression tree stored in a flat slice. Internal
// nodes route a row left when its feature value is below Threshold.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Value     float64 `json:"value"`
	Leaf      bool    `json:"leaf"`
}

// Tree is a single regression tree. Nodes[0] is the root.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Predict returns the leaf value reached by the row.
func (t *Tree) Predict(row []float64) float64 {
	i := 0
	for {
		n := &t.Nodes[i]
		if n.Leaf {
			return n.Value
		}
		if row[n.Feature] < n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Depth returns the length of the longest root-to-leaf path.
func (t *Tree) Depth() int {
	var walk func(i int) int
	walk = func(i int) int {
		n := t.Nodes[i]
		if n.Leaf {
			return 0
		}
		return 1 + max(walk(n.Left), walk(n.Right))
	}
	return walk(0)
}

// NumLeaves returns the number of leaf nodes.
func (t *Tree) NumLeaves() int {
	leaves := 0
	for _, n := range t.Nodes {
		if n.Leaf {
			leaves++
		}
	}
	return leaves
}
