package version

import "sort"

// Solver finds the highest available version satisfying a requirement (or
// a conjunction of requirements) among a set of available releases; the
// `oxide version solve` command is its caller in this module.
type Solver struct {
	available []Version // sorted descending
}

// NewSolver builds a Solver over the given available versions. The input
// slice is copied and sorted descending (newest first); callers may mutate
// their own slice after this returns.
func NewSolver(available []Version) *Solver {
	sorted := make([]Version, len(available))
	copy(sorted, available)
	sort.Slice(sorted, func(i, j int) bool { return sorted[j].Less(sorted[i]) })
	return &Solver{available: sorted}
}

// Solve returns the highest available version matching req, if any.
func (s *Solver) Solve(req VersionReq) (Version, bool) {
	for _, v := range s.available {
		if req.Matches(v) {
			return v, true
		}
	}
	return Version{}, false
}

// SolveAll returns every available version matching req, highest first.
func (s *Solver) SolveAll(req VersionReq) []Version {
	var out []Version
	for _, v := range s.available {
		if req.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}

// SolveMulti returns the highest available version matching every
// requirement in reqs.
func (s *Solver) SolveMulti(reqs []VersionReq) (Version, bool) {
	for _, v := range s.available {
		ok := true
		for _, req := range reqs {
			if !req.Matches(v) {
				ok = false
				break
			}
		}
		if ok {
			return v, true
		}
	}
	return Version{}, false
}

// HasSolution reports whether SolveMulti would succeed for reqs.
func (s *Solver) HasSolution(reqs []VersionReq) bool {
	_, ok := s.SolveMulti(reqs)
	return ok
}

// Available returns the solver's version list, sorted descending.
func (s *Solver) Available() []Version {
	out := make([]Version, len(s.available))
	copy(out, s.available)
	return out
}
