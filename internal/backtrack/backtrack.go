package backtrack

import (
	"context"
	"fmt"
	"iter"

	"github.com/hupe1980/subsetsum/internal/table"
	"github.com/hupe1980/subsetsum/model"
)

// Options configures a Backtracker.
type Options struct {
	// MaxSubsetLength caps the number of indices per subset. 0 means unlimited.
	MaxSubsetLength int

	// Verify re-checks every emitted subset against the weights and target.
	Verify bool

	// CheckInterval is the number of expanded states between context checks.
	CheckInterval int
}

// DefaultOptions contains the default configuration for a Backtracker.
var DefaultOptions = Options{
	CheckInterval: 4096,
}

// Root is the starting point of a (partial) descent.
type Root struct {
	// Level is the number of leading weights still undecided.
	Level int
	// Remaining is the sum the undecided weights must still contribute.
	Remaining int64
	// Includes lists indices already included, in decision order
	// (strictly descending, all >= Level).
	Includes []int
}

// Backtracker enumerates subsets from a reachability table.
type Backtracker struct {
	t    *table.Table
	opts Options
}

// New creates a Backtracker over t.
func New(t *table.Table, optFns ...func(o *Options)) *Backtracker {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.CheckInterval <= 0 {
		opts.CheckInterval = DefaultOptions.CheckInterval
	}
	return &Backtracker{t: t, opts: opts}
}

// Table returns the underlying table.
func (b *Backtracker) Table() *table.Table { return b.t }

// MaxSubsetLength returns the configured subset length cap (0 = unlimited).
func (b *Backtracker) MaxSubsetLength() int { return b.opts.MaxSubsetLength }

// FullRoot returns the root of the complete search space.
func (b *Backtracker) FullRoot() Root {
	return Root{Level: b.t.Len(), Remaining: b.t.Target()}
}

// node is one included index. Nodes are never mutated after creation.
type node struct {
	index int
	depth int
	next  *node
}

func (n *node) len() int {
	if n == nil {
		return 0
	}
	return n.depth
}

func (n *node) push(index int) *node {
	return &node{index: index, depth: n.len() + 1, next: n}
}

// subset copies the path into a fresh ascending Subset.
// The head is always the lowest included index.
func (n *node) subset() model.Subset {
	out := make(model.Subset, n.len())
	for k, p := 0, n; p != nil; k, p = k+1, p.next {
		out[k] = p.index
	}
	return out
}

type frame struct {
	level     int
	remaining int64
	path      *node
}

// Walk enumerates every subset below root, calling yield for each one in
// include-first order. It stops early, returning nil, when yield returns false.
// It returns ctx.Err() if ctx is done, or an *InvariantError when verification
// is enabled and fails.
func (b *Backtracker) Walk(ctx context.Context, root Root, yield func(model.Subset) bool) error {
	head, err := b.rootPath(root)
	if err != nil {
		return err
	}
	if !b.t.Reachable(root.Level, root.Remaining) {
		return nil
	}
	limit := b.opts.MaxSubsetLength
	if limit > 0 && head.len() > limit {
		return nil
	}

	stack := []frame{{level: root.Level, remaining: root.Remaining, path: head}}
	steps := 0

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		steps++
		if steps%b.opts.CheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		// With no zero weight left below, the only way to add 0 is to
		// exclude everything, so emit without walking down to row 0.
		if f.remaining == 0 && (f.level == 0 || b.t.ZerosIn(f.level) == 0) {
			s := f.path.subset()
			if b.opts.Verify {
				if err := b.verify(s); err != nil {
					return err
				}
			}
			if !yield(s) {
				return nil
			}
			continue
		}

		i := f.level
		if i == 0 {
			continue
		}

		// Exclude is pushed first so that include is explored first.
		if b.t.CanExclude(i, f.remaining) {
			stack = append(stack, frame{level: i - 1, remaining: f.remaining, path: f.path})
		}
		if b.t.CanInclude(i, f.remaining) && (limit == 0 || f.path.len() < limit) {
			stack = append(stack, frame{
				level:     i - 1,
				remaining: f.remaining - b.t.Weight(i-1),
				path:      f.path.push(i - 1),
			})
		}
	}

	return nil
}

// All returns a lazy sequence over every subset that sums to the target.
// An unreachable target yields nothing. A non-nil error is yielded at most
// once, as the final element.
func (b *Backtracker) All(ctx context.Context) iter.Seq2[model.Subset, error] {
	return func(yield func(model.Subset, error) bool) {
		stopped := false
		err := b.Walk(ctx, b.FullRoot(), func(s model.Subset) bool {
			if !yield(s, nil) {
				stopped = true
				return false
			}
			return true
		})
		if err != nil && !stopped {
			yield(nil, err)
		}
	}
}

// Collect returns every subset below root as a slice.
// The slice is empty, not nil, when no subset exists.
func (b *Backtracker) Collect(ctx context.Context, root Root) ([]model.Subset, error) {
	out := []model.Subset{}
	err := b.Walk(ctx, root, func(s model.Subset) bool {
		out = append(out, s)
		return true
	})
	return out, err
}

func (b *Backtracker) rootPath(root Root) (*node, error) {
	if root.Level < 0 || root.Level > b.t.Len() {
		return nil, fmt.Errorf("%w: level %d outside [0, %d]", ErrInvalidRoot, root.Level, b.t.Len())
	}
	var head *node
	prev := b.t.Len()
	for _, idx := range root.Includes {
		if idx < root.Level || idx >= prev {
			return nil, fmt.Errorf("%w: include %d out of order at level %d", ErrInvalidRoot, idx, root.Level)
		}
		head = head.push(idx)
		prev = idx
	}
	return head, nil
}

func (b *Backtracker) verify(s model.Subset) error {
	if !s.Valid(b.t.Len()) {
		return &InvariantError{Subset: s, Reason: "indices are not distinct, ascending and in range"}
	}
	var sum int64
	for _, idx := range s {
		sum += b.t.Weight(idx)
	}
	if sum != b.t.Target() {
		return &InvariantError{Subset: s, Reason: fmt.Sprintf("sum %d does not match target %d", sum, b.t.Target())}
	}
	return nil
}
