package scan

import (
	"iter"
	"sync"

	"github.com/lexandro/kondo/project"
)

// Results is a scan partitioned into discovered projects and errors. Each
// list keeps arrival order; the interleaving between them is not kept.
type Results struct {
	Projects []project.Project
	Errors   []error
}

// add folds one sequence element into r.
func (r *Results) add(p project.Project, err error) {
	if err != nil {
		r.Errors = append(r.Errors, err)
		return
	}
	r.Projects = append(r.Projects, p)
}

// merge appends other after r's own entries.
func (r *Results) merge(other Results) {
	r.Projects = append(r.Projects, other.Projects...)
	r.Errors = append(r.Errors, other.Errors...)
}

// Collect drains seq into a Results.
func Collect(seq iter.Seq2[project.Project, error]) Results {
	var r Results
	for p, err := range seq {
		r.add(p, err)
	}
	return r
}

// ScanAll scans every root concurrently. Each root fills its own buffer; the
// buffers are merged in root order once all scans have finished.
func ScanAll(roots []string, opts Options) Results {
	buffers := make([]Results, len(roots))

	var wg sync.WaitGroup
	for i, root := range roots {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buffers[i] = Collect(Scan(root, opts))
		}()
	}
	wg.Wait()

	var all Results
	for _, buffer := range buffers {
		all.merge(buffer)
	}
	return all
}
