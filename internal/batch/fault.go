package batch

import "github.com/automat-io/automat/internal/models"

// FailProgress is where a rejected upload's progress bar stops.
const FailProgress = 85

// FaultPolicy decides whether a job that reached the end of its upload is
// rejected instead of succeeding.
type FaultPolicy interface {
	ShouldFail(job models.Job) bool
}

// FaultFunc adapts a plain function to FaultPolicy.
type FaultFunc func(job models.Job) bool

// ShouldFail implements FaultPolicy.
func (f FaultFunc) ShouldFail(job models.Job) bool { return f(job) }

// NoFault lets every job succeed.
type NoFault struct{}

// ShouldFail implements FaultPolicy.
func (NoFault) ShouldFail(models.Job) bool { return false }

// NameFault rejects jobs whose name matches exactly.
type NameFault map[string]struct{}

// FailByName returns a NameFault for the given names.
func FailByName(names ...string) NameFault {
	f := make(NameFault, len(names))
	for _, n := range names {
		f[n] = struct{}{}
	}
	return f
}

// ShouldFail implements FaultPolicy.
func (f NameFault) ShouldFail(job models.Job) bool {
	_, ok := f[job.Name]
	return ok
}

// DefaultFault rejects the 7-Zip package, which the simulated tenant has no
// upload permission for.
func DefaultFault() FaultPolicy {
	return FailByName("7-Zip")
}

// RulesFromSettings builds tick rules from the simulation settings. A nil
// FailNames keeps DefaultFault; an empty list disables faults.
func RulesFromSettings(sim models.SimulationConfig) Rules {
	rules := DefaultRules()
	if sim.TickStep > 0 {
		rules.Step = sim.TickStep
	}
	if sim.ChatterProbability >= 0 {
		rules.ChatterProbability = sim.ChatterProbability
	}
	if sim.FailNames != nil {
		rules.Fault = FailByName(sim.FailNames...)
	}
	return rules
}
