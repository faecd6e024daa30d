package repositories

import (
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/database"
)

// Repositories bundles one CRUD gateway per entity of the simulation
// schema. All repositories share the same connection pool; composite
// writes (calendar+intervals, gateway+flows) each run in their own fresh
// transaction so they stay atomic and isolated even when the adapter
// layer performs many of them in sequence.
type Repositories struct {
	SimulationModel              SimulationModelRepository
	Calendar                     CalendarRepository
	Distribution                 DistributionRepository
	Gateway                      GatewayRepository
	CaseArrival                  CaseArrivalRepository
	Activity                     ActivityRepository
	Resource                     ResourceRepository
	ResourceProfile              ResourceProfileRepository
	ActivityResourceDistribution ActivityResourceDistributionRepository
}

// NewRepositories creates all repositories over one database handle.
func NewRepositories(db *database.DB) *Repositories {
	return &Repositories{
		SimulationModel:              NewSimulationModelRepository(db),
		Calendar:                     NewCalendarRepository(db),
		Distribution:                 NewDistributionRepository(db),
		Gateway:                      NewGatewayRepository(db),
		CaseArrival:                  NewCaseArrivalRepository(db),
		Activity:                     NewActivityRepository(db),
		Resource:                     NewResourceRepository(db),
		ResourceProfile:              NewResourceProfileRepository(db),
		ActivityResourceDistribution: NewActivityResourceDistributionRepository(db),
	}
}
