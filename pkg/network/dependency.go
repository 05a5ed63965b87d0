package network

// NewDependencyMapping validates and copies a pair of dependency arrays.
// Both must have the same length, contain only in-range indices, and be
// mutual inverses: BToA[AToB[i]] == i for every i.
func NewDependencyMapping(aToB, bToA []int) (*DependencyMapping, error) {
	n := len(aToB)
	if len(bToA) != n {
		return nil, NewError("NewDependencyMapping").Dependency().
			Contextf("len(a_to_b)=%d, len(b_to_a)=%d", len(aToB), len(bToA)).
			Cause(ErrInvalidDependency).Err()
	}

	for i := 0; i < n; i++ {
		if aToB[i] < 0 || aToB[i] >= n {
			return nil, NewError("NewDependencyMapping").Dependency().
				Contextf("a_to_b[%d]=%d out of range", i, aToB[i]).
				Cause(ErrInvalidDependency).Err()
		}
		if bToA[i] < 0 || bToA[i] >= n {
			return nil, NewError("NewDependencyMapping").Dependency().
				Contextf("b_to_a[%d]=%d out of range", i, bToA[i]).
				Cause(ErrInvalidDependency).Err()
		}
	}

	for i := 0; i < n; i++ {
		if bToA[aToB[i]] != i {
			return nil, NewError("NewDependencyMapping").Dependency().
				Contextf("b_to_a[a_to_b[%d]]=%d", i, bToA[aToB[i]]).
				Cause(ErrInvalidDependency).Err()
		}
	}

	return &DependencyMapping{
		AToB: append([]int(nil), aToB...),
		BToA: append([]int(nil), bToA...),
	}, nil
}

// IdentityDependency pairs node i of layer A with node i of layer B.
func IdentityDependency(n int) *DependencyMapping {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = i
	}
	return &DependencyMapping{
		AToB: ids,
		BToA: append([]int(nil), ids...),
	}
}

// DependencyPair links layer-A node A to layer-B node B.
type DependencyPair struct {
	A int
	B int
}

// DependencyFromPairs builds a mapping from explicit (a, b) pairs.
// The pairs must cover every node of both layers exactly once.
func DependencyFromPairs(n int, pairs []DependencyPair) (*DependencyMapping, error) {
	if len(pairs) != n {
		return nil, NewError("DependencyFromPairs").Dependency().
			Contextf("%d pairs for %d nodes", len(pairs), n).
			Cause(ErrInvalidDependency).Err()
	}

	aToB := make([]int, n)
	bToA := make([]int, n)
	for i := 0; i < n; i++ {
		aToB[i] = -1
		bToA[i] = -1
	}

	for _, p := range pairs {
		if p.A < 0 || p.A >= n || p.B < 0 || p.B >= n {
			return nil, NewError("DependencyFromPairs").Dependency().
				Contextf("pair (%d, %d) out of range", p.A, p.B).
				Cause(ErrInvalidDependency).Err()
		}
		if aToB[p.A] >= 0 || bToA[p.B] >= 0 {
			return nil, NewError("DependencyFromPairs").Dependency().
				Contextf("pair (%d, %d) reuses a node", p.A, p.B).
				Cause(ErrInvalidDependency).Err()
		}
		aToB[p.A] = p.B
		bToA[p.B] = p.A
	}

	// n distinct pairs over n slots leave no gaps, so the arrays are inverses.
	return &DependencyMapping{AToB: aToB, BToA: bToA}, nil
}

// Len returns the number of dependency pairs.
func (d *DependencyMapping) Len() int {
	return len(d.AToB)
}
