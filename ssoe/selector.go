package ssoe

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/sartorproj/gosmooth/stats"
)

// runTrials estimates every variant. With Parallel set the trials run
// concurrently; results are stored by index so the order never depends on
// scheduling.
func (est *estimator) runTrials(variants []Intermittency) ([]*trial, error) {
	trials := make([]*trial, len(variants))
	if !est.cfg.Parallel || len(variants) == 1 {
		for i, v := range variants {
			tr, err := est.fitTrial(v)
			if err != nil {
				return nil, err
			}
			trials[i] = tr
		}
		return trials, nil
	}

	var g errgroup.Group
	for i, v := range variants {
		g.Go(func() error {
			tr, err := est.fitTrial(v)
			if err != nil {
				return err
			}
			trials[i] = tr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return trials, nil
}

// selectTrial returns the index of the trial with the lowest criterion,
// ties going to the lowest index. When every cost is exactly zero and the
// intermittent variants tie, the non-intermittent trial is excluded.
func selectTrial(trials []*trial, criterion stats.CriterionKind) int {
	scores := make([]float64, len(trials))
	for i, tr := range trials {
		scores[i] = tr.ic.Select(criterion)
	}
	if len(trials) > 1 && trials[0].variant == IntermittentNone && allZeroCost(trials) && tied(scores[1:]) {
		scores[0] = math.Inf(1)
	}

	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] < scores[best] || (math.IsNaN(scores[best]) && !math.IsNaN(scores[i])) {
			best = i
		}
	}
	return best
}

func allZeroCost(trials []*trial) bool {
	for _, tr := range trials {
		if tr.sol.F != 0 {
			return false
		}
	}
	return true
}

func tied(scores []float64) bool {
	for _, s := range scores[1:] {
		if s != scores[0] {
			return false
		}
	}
	return true
}
