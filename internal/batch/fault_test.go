package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/automat-io/automat/internal/models"
)

func TestFaultPolicies(t *testing.T) {
	zip := models.Job{Name: "7-Zip"}
	chrome := models.Job{Name: "Google Chrome"}

	tests := []struct {
		name   string
		policy FaultPolicy
		job    models.Job
		want   bool
	}{
		{"default rejects 7-Zip", DefaultFault(), zip, true},
		{"default accepts others", DefaultFault(), chrome, false},
		{"no fault", NoFault{}, zip, false},
		{"by name", FailByName("Google Chrome"), chrome, true},
		{"by name is exact", FailByName("google chrome"), chrome, false},
		{"func", FaultFunc(func(models.Job) bool { return true }), chrome, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.policy.ShouldFail(tt.job))
		})
	}
}

func TestRulesFromSettings(t *testing.T) {
	sim := models.NewSettings().Simulation
	zip := models.Job{Name: "7-Zip"}

	rules := RulesFromSettings(sim)
	assert.Equal(t, DefaultStep, rules.Step)
	assert.True(t, rules.Fault.ShouldFail(zip))

	sim.FailNames = []string{}
	sim.TickStep = 0
	rules = RulesFromSettings(sim)
	assert.Equal(t, DefaultStep, rules.Step)
	assert.False(t, rules.Fault.ShouldFail(zip))

	sim.FailNames = nil
	sim.ChatterProbability = -1
	rules = RulesFromSettings(sim)
	assert.True(t, rules.Fault.ShouldFail(zip))
	assert.Equal(t, DefaultChatterProbability, rules.ChatterProbability)
}
