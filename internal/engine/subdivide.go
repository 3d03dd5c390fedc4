package engine

import (
	"sync"

	"github.com/golang/glog"
)

// Report summarises one subdivision run.
type Report struct {
	Parcels             int     `json:"parcels"`
	Splits              int     `json:"splits"`
	Leaves              int     `json:"leaves"`
	DegenerateSplits    int     `json:"degenerate_splits"`
	MalformedBoundaries int     `json:"malformed_boundaries"`
	Anomalies           []error `json:"-"`
}

func (r *Report) record(p *Parcel, err error) {
	r.Parcels++
	switch p.Outcome {
	case OutcomeSplit:
		r.Splits++
	case OutcomeDegenerateSplit:
		r.DegenerateSplits++
	case OutcomeMalformedBoundary:
		r.MalformedBoundaries++
	}
	if p.IsLeaf() {
		r.Leaves++
	}
	if err != nil {
		r.Anomalies = append(r.Anomalies, err)
	}
}

// Merge adds the counts of other to r.
func (r *Report) Merge(other Report) {
	r.Parcels += other.Parcels
	r.Splits += other.Splits
	r.Leaves += other.Leaves
	r.DegenerateSplits += other.DegenerateSplits
	r.MalformedBoundaries += other.MalformedBoundaries
	r.Anomalies = append(r.Anomalies, other.Anomalies...)
}

// workUnit is a parcel waiting to be split with its remaining depth.
type workUnit struct {
	parcel *Parcel
	depth  int
}

// Subdivide splits root repeatedly until depth levels are exhausted or a
// parcel turns terminal. It uses an explicit work stack; with Workers > 1
// each tree level is fanned out over a worker pool. The resulting tree does
// not depend on the worker count.
func (pr *Parceller) Subdivide(root *Parcel, depth int) Report {
	root.Iteration = depth
	if pr.Settings.Workers > 1 {
		return pr.subdivideParallel(root, depth)
	}

	var report Report
	stack := []workUnit{{parcel: root, depth: depth}}
	for len(stack) > 0 {
		n := len(stack) - 1
		wu := stack[n]
		stack = stack[:n]

		err := pr.Split(wu.parcel, wu.depth)
		report.record(wu.parcel, err)
		for i := len(wu.parcel.Children) - 1; i >= 0; i-- {
			stack = append(stack, workUnit{parcel: wu.parcel.Children[i], depth: wu.depth - 1})
		}
	}
	glog.V(1).Infof("subdivided %s: %d parcels, %d leaves, %d anomalies",
		root.Name, report.Parcels, report.Leaves, len(report.Anomalies))
	return report
}

func (pr *Parceller) subdivideParallel(root *Parcel, depth int) Report {
	var (
		report Report
		mu     sync.Mutex
	)

	level := []workUnit{{parcel: root, depth: depth}}
	for len(level) > 0 {
		work := make(chan workUnit, pr.Settings.Workers*5)
		var wg sync.WaitGroup
		for i := 0; i < pr.Settings.Workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for wu := range work {
					err := pr.Split(wu.parcel, wu.depth)
					mu.Lock()
					report.record(wu.parcel, err)
					mu.Unlock()
				}
			}()
		}
		for _, wu := range level {
			work <- wu
		}
		close(work)
		wg.Wait()

		var next []workUnit
		for _, wu := range level {
			for _, c := range wu.parcel.Children {
				next = append(next, workUnit{parcel: c, depth: wu.depth - 1})
			}
		}
		level = next
	}
	glog.V(1).Infof("subdivided %s with %d workers: %d parcels, %d leaves, %d anomalies",
		root.Name, pr.Settings.Workers, report.Parcels, report.Leaves, len(report.Anomalies))
	return report
}
