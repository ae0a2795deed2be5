package pipeline

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"

	perr "phishguard/internal/platform/errors"
)

// StratifiedSplit partitions row indices into train and test sets preserving class proportions
// The test set holds ceil(testSize*n) rows apportioned by largest remainder; every class keeps
// at least one training row. Both returned slices are ascending.
func StratifiedSplit(labels []string, testSize float64, seed uint64) (train, test []int, err error) {
	n := len(labels)
	byClass := map[string][]int{}
	for i, l := range labels {
		byClass[l] = append(byClass[l], i)
	}
	classes := make([]string, 0, len(byClass))
	for c := range byClass {
		classes = append(classes, c)
	}
	sort.Strings(classes)

	if len(classes) < 2 {
		return nil, nil, perr.InsufficientDataf("pipeline: need at least 2 classes, got %d", len(classes))
	}
	for _, c := range classes {
		if len(byClass[c]) < 2 {
			return nil, nil, perr.InsufficientDataf("pipeline: class %q has %d example(s), need at least 2", c, len(byClass[c]))
		}
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	nTrain := n - nTest
	if nTest < len(classes) || nTrain < len(classes) {
		return nil, nil, perr.InsufficientDataf(
			"pipeline: %d rows split %d/%d leaves a partition smaller than %d classes",
			n, nTrain, nTest, len(classes))
	}

	alloc := allocate(classes, byClass, nTest, n)

	r := rand.New(rand.NewPCG(seed, seed))
	for i, c := range classes {
		idx := slices.Clone(byClass[c])
		r.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		test = append(test, idx[:alloc[i]]...)
		train = append(train, idx[alloc[i]:]...)
	}
	slices.Sort(train)
	slices.Sort(test)
	return train, test, nil
}

// allocate apportions nTest across classes by largest remainder, capped at size-1 per class
func allocate(classes []string, byClass map[string][]int, nTest, n int) []int {
	type share struct {
		i    int
		frac float64
	}
	alloc := make([]int, len(classes))
	shares := make([]share, len(classes))
	given := 0
	for i, c := range classes {
		exact := float64(nTest) * float64(len(byClass[c])) / float64(n)
		whole := int(math.Floor(exact))
		whole = min(whole, len(byClass[c])-1)
		alloc[i] = whole
		given += whole
		shares[i] = share{i: i, frac: exact - math.Floor(exact)}
	}
	// stable keeps class order for equal remainders
	sort.SliceStable(shares, func(a, b int) bool { return shares[a].frac > shares[b].frac })
	for given < nTest {
		progressed := false
		for _, s := range shares {
			if given == nTest {
				break
			}
			if alloc[s.i] < len(byClass[classes[s.i]])-1 {
				alloc[s.i]++
				given++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return alloc
}
