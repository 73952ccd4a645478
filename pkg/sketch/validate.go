package sketch

import "fmt"

// Finding describes the state of one constraint after a validation
// pass.
type Finding struct {
	ConstraintID ConstraintID
	Kind         ConstraintKind
	Residual     float64
	Satisfied    bool
}

func (f Finding) String() string {
	state := "unsatisfied"
	if f.Satisfied {
		state = "satisfied"
	}
	return fmt.Sprintf("[%s] %s %s (residual %.6g)", state, f.ConstraintID, f.Kind, f.Residual)
}

// ValidationResult bundles the findings of a full constraint pass.
type ValidationResult struct {
	Findings    []Finding
	Unsatisfied int
}

// AllSatisfied reports whether every constraint held.
func (r ValidationResult) AllSatisfied() bool { return r.Unsatisfied == 0 }

// Validate recomputes the Satisfied flag of every constraint against
// current geometry and returns the per-constraint findings in
// constraint order. It never mutates geometry: solving the system is
// the job of an external solver, this pass only measures it.
func Validate(d *Document) ValidationResult {
	var result ValidationResult
	for _, c := range d.Constraints() {
		residual := c.Residual(d)
		c.Satisfied = residual < SatisfiedTolerance
		if !c.Satisfied {
			result.Unsatisfied++
		}
		result.Findings = append(result.Findings, Finding{
			ConstraintID: c.ID,
			Kind:         c.Kind,
			Residual:     residual,
			Satisfied:    c.Satisfied,
		})
	}
	return result
}
