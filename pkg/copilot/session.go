// Package copilot ties the store, the adapters, and the engine runner
// into one conversation-scoped session. The session object replaces the
// process-wide mutable state the workflow would otherwise need: the store
// handle, the model being edited, and the baseline performance report all
// live here and are passed explicitly.
package copilot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/adapters"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/bpmn"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/services"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/simulator"
)

// Session is one conversation's handle on a simulation model. A session
// serves a single caller; concurrent mutation of the same model id is
// not supported.
type Session struct {
	ID      string
	Service services.SimulationService

	// ModelID is the simulation model this session edits. Zero until a
	// model is imported or created.
	ModelID int64

	exporter   *adapters.ToSimulator
	importer   *adapters.FromSimulator
	runner     simulator.Runner
	totalCases int
	logger     *zap.Logger

	baselineReport string
}

// NewSession creates a session over the given service and engine runner.
func NewSession(service services.SimulationService, runner simulator.Runner, totalCases int, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if totalCases <= 0 {
		totalCases = 100
	}
	return &Session{
		ID:         uuid.NewString(),
		Service:    service,
		exporter:   adapters.NewToSimulator(service, logger),
		importer:   adapters.NewFromSimulator(service, logger),
		runner:     runner,
		totalCases: totalCases,
		logger:     logger,
	}
}

// ImportModel loads a scenario document and its process model into the
// store and makes the resulting model the session's current one.
func (s *Session) ImportModel(ctx context.Context, scenarioPath, bpmnPath string) (int64, error) {
	scenario, err := simulator.ReadFile(scenarioPath)
	if err != nil {
		return 0, err
	}
	activities, err := bpmn.ParseActivitiesFile(bpmnPath)
	if err != nil {
		return 0, err
	}
	model, err := s.importer.Import(ctx, scenario, activities)
	if err != nil {
		return 0, err
	}
	s.ModelID = model.ID
	s.logger.Info("imported simulation model",
		zap.String("session_id", s.ID),
		zap.Int64("model_id", model.ID))
	return model.ID, nil
}

// ExportModel projects a stored model into a scenario referencing the
// given process model path.
func (s *Session) ExportModel(ctx context.Context, modelID int64, bpmnPath string) (*simulator.Model, error) {
	scenario, err := s.exporter.Export(ctx, modelID)
	if err != nil {
		return nil, err
	}
	scenario.ProcessModel = bpmnPath
	return scenario, nil
}

// RunSimulation exports the model, hands it to the engine, and returns
// the condensed performance report (resource utilization plus overall
// statistics). The engine call blocks until the run finishes.
func (s *Session) RunSimulation(ctx context.Context, modelID int64, bpmnPath string) (string, error) {
	scenario, err := s.ExportModel(ctx, modelID, bpmnPath)
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "simulation-copilot-")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch directory: %w", err)
	}
	defer os.RemoveAll(dir)

	scenarioPath := filepath.Join(dir, "scenario.json")
	if err := simulator.WriteFile(scenario, scenarioPath); err != nil {
		return "", err
	}

	report, err := s.runner.Run(ctx, simulator.RunRequest{
		BpmnPath:     bpmnPath,
		ScenarioPath: scenarioPath,
		TotalCases:   s.totalCases,
		ReportPath:   strings.TrimSuffix(scenarioPath, ".json") + ".csv",
	})
	if err != nil {
		return "", err
	}
	return simulator.ReportSummary(report)
}

// Comparison pairs the session's baseline report with the report of a
// fresh run, the two documents the conversation layer contrasts to judge
// whether an edit to the model helped.
type Comparison struct {
	Baseline string
	Current  string
}

// CompareToBaseline simulates the model and pairs the fresh condensed
// report with the recorded baseline. When no baseline is recorded yet,
// the fresh report becomes the baseline: the first call establishes the
// reference point and later calls measure edits against it.
func (s *Session) CompareToBaseline(ctx context.Context, modelID int64, bpmnPath string) (Comparison, error) {
	current, err := s.RunSimulation(ctx, modelID, bpmnPath)
	if err != nil {
		return Comparison{}, err
	}
	if s.baselineReport == "" {
		s.baselineReport = current
	}
	return Comparison{Baseline: s.baselineReport, Current: current}, nil
}

// SetBaseline records the report the session compares later runs against.
func (s *Session) SetBaseline(report string) {
	s.baselineReport = report
}

// Baseline returns the recorded baseline report, empty when none is set.
func (s *Session) Baseline() string {
	return s.baselineReport
}
