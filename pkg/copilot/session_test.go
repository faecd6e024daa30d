package copilot

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/adapters"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/apperrors"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/models"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/simulator"
)

// emptyModelReader serves a simulation model with no sub-components,
// enough to drive the export step of the run pipeline.
type emptyModelReader struct{ modelID int64 }

func (r *emptyModelReader) GetSimulationModel(_ context.Context, modelID int64) (*models.SimulationModel, error) {
	if modelID != r.modelID {
		return nil, nil
	}
	return &models.SimulationModel{ID: modelID}, nil
}

func (r *emptyModelReader) GetCalendar(context.Context, int64) (*models.Calendar, error) {
	return nil, nil
}

func (r *emptyModelReader) GetDistribution(context.Context, int64) (*models.Distribution, error) {
	return nil, nil
}

func (r *emptyModelReader) GetActivity(context.Context, int64) (*models.Activity, error) {
	return nil, nil
}

// recordingRunner captures the run request and returns a canned report.
type recordingRunner struct {
	report       string
	req          simulator.RunRequest
	scenarioSeen bool
}

func (r *recordingRunner) Run(_ context.Context, req simulator.RunRequest) (string, error) {
	r.req = req
	_, err := os.Stat(req.ScenarioPath)
	r.scenarioSeen = err == nil
	return r.report, nil
}

const cannedReport = `started_at,ended_at
2024-01-01 09:00:00,2024-01-05 17:00:00
""
Resource name,Utilization Ratio
Clerk,0.8
""
Name,Count
Approve,100
""
KPI,Min,Max,Average
cycle time,3600.0,7200.0,5400.0
`

const improvedReport = `started_at,ended_at
2024-01-01 09:00:00,2024-01-04 12:00:00
""
Resource name,Utilization Ratio
Clerk,0.4
""
Name,Count
Approve,100
""
KPI,Min,Max,Average
cycle time,1800.0,3600.0,2700.0
`

func TestNewSessionDefaults(t *testing.T) {
	first := NewSession(nil, nil, 0, nil)
	second := NewSession(nil, nil, 500, nil)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Zero(t, first.ModelID)

	assert.Equal(t, 100, first.totalCases)
	assert.Equal(t, 500, second.totalCases)
}

func TestSessionBaseline(t *testing.T) {
	session := NewSession(nil, nil, 100, nil)
	assert.Empty(t, session.Baseline())

	session.SetBaseline("Resource name,Utilization Ratio\nClerk,0.8")
	assert.Equal(t, "Resource name,Utilization Ratio\nClerk,0.8", session.Baseline())

	// A later run replaces the baseline wholesale.
	session.SetBaseline("updated")
	assert.Equal(t, "updated", session.Baseline())
}

func TestSessionRunSimulation(t *testing.T) {
	runner := &recordingRunner{report: cannedReport}
	session := NewSession(nil, runner, 25, nil)
	session.exporter = adapters.NewToSimulator(&emptyModelReader{modelID: 7}, nil)

	summary, err := session.RunSimulation(context.Background(), 7, "loan-process.bpmn")
	require.NoError(t, err)

	// The engine's raw report comes back condensed to utilization plus
	// overall statistics.
	assert.True(t, strings.HasPrefix(summary, "Resource name"))
	assert.Contains(t, summary, "cycle time")
	assert.NotContains(t, summary, "started_at")
	assert.NotContains(t, summary, "Approve")

	assert.Equal(t, "loan-process.bpmn", runner.req.BpmnPath)
	assert.Equal(t, 25, runner.req.TotalCases)
	assert.True(t, strings.HasSuffix(runner.req.ReportPath, ".csv"))

	// The scenario is serialized before the engine runs and the scratch
	// directory is gone afterwards.
	assert.True(t, runner.scenarioSeen)
	_, err = os.Stat(runner.req.ScenarioPath)
	assert.True(t, os.IsNotExist(err))
}

func TestSessionRunSimulationUnknownModel(t *testing.T) {
	runner := &recordingRunner{report: cannedReport}
	session := NewSession(nil, runner, 10, nil)
	session.exporter = adapters.NewToSimulator(&emptyModelReader{modelID: 3}, nil)

	_, err := session.RunSimulation(context.Background(), 99, "process.bpmn")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// The engine never fires when the export fails.
	assert.Empty(t, runner.req.BpmnPath)
}

func TestSessionCompareToBaseline(t *testing.T) {
	runner := &recordingRunner{report: cannedReport}
	session := NewSession(nil, runner, 10, nil)
	session.exporter = adapters.NewToSimulator(&emptyModelReader{modelID: 3}, nil)

	first, err := session.CompareToBaseline(context.Background(), 3, "process.bpmn")
	require.NoError(t, err)

	// The first run establishes the reference point.
	assert.Equal(t, first.Current, first.Baseline)
	assert.Equal(t, first.Current, session.Baseline())
	assert.Contains(t, first.Baseline, "Clerk,0.8")

	runner.report = improvedReport
	second, err := session.CompareToBaseline(context.Background(), 3, "process.bpmn")
	require.NoError(t, err)

	// Later runs keep measuring against the original baseline.
	assert.Equal(t, first.Baseline, second.Baseline)
	assert.Contains(t, second.Current, "Clerk,0.4")
	assert.NotEqual(t, second.Baseline, second.Current)
	assert.Equal(t, first.Baseline, session.Baseline())
}
