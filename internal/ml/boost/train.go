package boost

import (
	"cmp"
	"context"
	"fmt"
	"math/rand/v2"
	"slices"

	"golang.org/x/sync/errgroup"
)

const (
	// minHessian keeps leaf weights finite when predictions saturate.
	minHessian = 1e-16

	// splitEpsilon is the smallest loss reduction that justifies a split.
	splitEpsilon = 1e-6
)

// RoundFunc is called after each boosting round with the 1-based round number.
type RoundFunc func(round, total int)

// Option configures a training run.
type Option func(*trainer)

// WithRoundCallback registers a function called after every boosting round.
func WithRoundCallback(fn RoundFunc) Option {
	return func(t *trainer) {
		t.onRound = fn
	}
}

type trainer struct {
	ds      *Dataset
	onRound RoundFunc
	rng     *rand.Rand
	order   [][]int
	grad    []float64
	hess    []float64
	params  Params
}

// Train fits a booster on the dataset. Training is deterministic for a given
// dataset and Params.Seed.
func Train(ctx context.Context, ds *Dataset, params Params, opts ...Option) (*Booster, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if ds == nil || ds.Len() == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDataset)
	}

	t := &trainer{
		ds:     ds,
		params: params,
		rng:    rand.New(rand.NewPCG(params.Seed, params.Seed^0x9e3779b97f4a7c15)),
		grad:   make([]float64, ds.Len()),
		hess:   make([]float64, ds.Len()),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.presort()

	b := &Booster{
		Params:       params,
		FeatureNames: ds.featureNames,
		BaseMargin:   logit(params.BaseScore),
		NumFeatures:  ds.NumFeatures(),
		Trees:        make([]Tree, 0, params.NumBoostRound),
	}

	margin := make([]float64, ds.Len())
	for i := range margin {
		margin[i] = b.BaseMargin
	}

	for round := 0; round < params.NumBoostRound; round++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("boost: training cancelled at round %d: %w", round, err)
		}

		for i, m := range margin {
			p := sigmoid(m)
			t.grad[i] = p - ds.labels[i]
			t.hess[i] = max(p*(1-p), minHessian)
		}

		tree, err := t.growTree(ctx, t.sampleRows(), t.sampleFeatures())
		if err != nil {
			return nil, err
		}
		for i := range margin {
			margin[i] += tree.Predict(ds.features[i])
		}
		b.Trees = append(b.Trees, tree)

		if t.onRound != nil {
			t.onRound(round+1, params.NumBoostRound)
		}
	}

	return b, nil
}

// presort orders row indices by value once per feature so that split search
// at every level is a linear sweep.
func (t *trainer) presort() {
	n, m := t.ds.Len(), t.ds.NumFeatures()
	t.order = make([][]int, m)
	for f := 0; f < m; f++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		slices.SortStableFunc(idx, func(a, b int) int {
			return cmp.Compare(t.ds.features[a][f], t.ds.features[b][f])
		})
		t.order[f] = idx
	}
}

func (t *trainer) sampleRows() []bool {
	inBag := make([]bool, t.ds.Len())
	for i := range inBag {
		inBag[i] = t.params.Subsample >= 1 || t.rng.Float64() < t.params.Subsample
	}
	return inBag
}

func (t *trainer) sampleFeatures() []int {
	m := t.ds.NumFeatures()
	if t.params.ColsampleByTree >= 1 {
		all := make([]int, m)
		for f := range all {
			all[f] = f
		}
		return all
	}
	k := max(1, int(t.params.ColsampleByTree*float64(m)))
	picked := t.rng.Perm(m)[:k]
	slices.Sort(picked)
	return picked
}

type gradStats struct {
	g, h float64
}

type split struct {
	feature   int
	threshold float64
	gain      float64
	left      gradStats
}

// growTree builds one tree level by level. pos[i] holds the frontier node a
// row belongs to, or -1 once the row is out of bag or sits in a finished leaf.
func (t *trainer) growTree(ctx context.Context, inBag []bool, features []int) (Tree, error) {
	n := t.ds.Len()
	pos := make([]int, n)
	var root gradStats
	for i := 0; i < n; i++ {
		if !inBag[i] {
			pos[i] = -1
			continue
		}
		root.g += t.grad[i]
		root.h += t.hess[i]
	}

	tree := Tree{Nodes: []Node{{Leaf: true}}}
	stats := []gradStats{root}
	frontier := []int{0}

	for depth := 0; depth < t.params.MaxDepth && len(frontier) > 0; depth++ {
		best, err := t.findSplits(ctx, pos, len(tree.Nodes), stats, features)
		if err != nil {
			return Tree{}, err
		}

		var next []int
		for _, nid := range frontier {
			s := best[nid]
			if s == nil {
				continue
			}
			left, right := len(tree.Nodes), len(tree.Nodes)+1
			tree.Nodes[nid] = Node{Feature: s.feature, Threshold: s.threshold, Left: left, Right: right}
			tree.Nodes = append(tree.Nodes, Node{Leaf: true}, Node{Leaf: true})
			parent := stats[nid]
			stats = append(stats, s.left, gradStats{g: parent.g - s.left.g, h: parent.h - s.left.h})
			next = append(next, left, right)
		}

		for i, nid := range pos {
			if nid < 0 {
				continue
			}
			node := tree.Nodes[nid]
			switch {
			case node.Leaf:
				pos[i] = -1
			case t.ds.features[i][node.Feature] < node.Threshold:
				pos[i] = node.Left
			default:
				pos[i] = node.Right
			}
		}
		frontier = next
	}

	for nid := range tree.Nodes {
		if tree.Nodes[nid].Leaf {
			tree.Nodes[nid].Value = t.params.Eta * t.leafWeight(stats[nid])
		}
	}
	return tree, nil
}

// findSplits returns the best split per node id (nil when a node should stay
// a leaf). Features are scanned in parallel; results are merged in feature
// order so ties resolve the same way on every run.
func (t *trainer) findSplits(ctx context.Context, pos []int, numNodes int, stats []gradStats, features []int) ([]*split, error) {
	perFeature := make([][]*split, len(features))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(t.params.workers())
	for k, f := range features {
		g.Go(func() error {
			perFeature[k] = t.scanFeature(f, pos, numNodes, stats)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	best := make([]*split, numNodes)
	for _, candidates := range perFeature {
		for nid, s := range candidates {
			if s != nil && (best[nid] == nil || s.gain > best[nid].gain) {
				best[nid] = s
			}
		}
	}
	return best, nil
}

type scanState struct {
	best *split
	acc  gradStats
	last float64
	seen bool
}

func (t *trainer) scanFeature(f int, pos []int, numNodes int, stats []gradStats) []*split {
	states := make([]scanState, numNodes)
	mcw := t.params.MinChildWeight

	for _, i := range t.order[f] {
		nid := pos[i]
		if nid < 0 {
			continue
		}
		st := &states[nid]
		x := t.ds.features[i][f]

		if st.seen && x != st.last {
			total := stats[nid]
			right := gradStats{g: total.g - st.acc.g, h: total.h - st.acc.h}
			if st.acc.h >= mcw && right.h >= mcw {
				gain := 0.5*(t.score(st.acc)+t.score(right)-t.score(total)) - t.params.Gamma
				if gain > splitEpsilon && (st.best == nil || gain > st.best.gain) {
					st.best = &split{
						feature:   f,
						threshold: st.last + (x-st.last)/2,
						gain:      gain,
						left:      st.acc,
					}
				}
			}
		}

		st.acc.g += t.grad[i]
		st.acc.h += t.hess[i]
		st.last = x
		st.seen = true
	}

	out := make([]*split, numNodes)
	for nid := range states {
		out[nid] = states[nid].best
	}
	return out
}

func (t *trainer) score(s gradStats) float64 {
	d := s.h + t.params.Lambda
	if d <= 0 {
		return 0
	}
	return s.g * s.g / d
}

func (t *trainer) leafWeight(s gradStats) float64 {
	d := s.h + t.params.Lambda
	if d <= 0 {
		return 0
	}
	return -s.g / d
}
