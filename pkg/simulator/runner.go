package simulator

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"go.uber.org/zap"
)

// RunRequest describes one simulation run handed to the engine.
type RunRequest struct {
	BpmnPath     string
	ScenarioPath string
	TotalCases   int
	ReportPath   string
}

// Runner invokes the external simulation engine. The run is a blocking,
// non-cancelable external call beyond the passed context; no timeout is
// imposed at this layer.
type Runner interface {
	// Run executes the simulation and returns the raw performance report.
	Run(ctx context.Context, req RunRequest) (string, error)
}

// CommandRunner runs the Prosimos CLI as a subprocess.
type CommandRunner struct {
	// Binary is the engine executable, "prosimos" by default.
	Binary string
	logger *zap.Logger
}

// NewCommandRunner creates a CommandRunner for the given executable.
func NewCommandRunner(binary string, logger *zap.Logger) *CommandRunner {
	if binary == "" {
		binary = "prosimos"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommandRunner{Binary: binary, logger: logger}
}

var _ Runner = (*CommandRunner)(nil)

func (r *CommandRunner) Run(ctx context.Context, req RunRequest) (string, error) {
	cmd := exec.CommandContext(ctx, r.Binary, "start-simulation",
		"--bpmn_path", req.BpmnPath,
		"--json_path", req.ScenarioPath,
		"--total_cases", strconv.Itoa(req.TotalCases),
		"--stat_out_path", req.ReportPath,
	)
	r.logger.Info("running simulation",
		zap.String("bpmn", req.BpmnPath),
		zap.String("scenario", req.ScenarioPath),
		zap.Int("total_cases", req.TotalCases))

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("simulation engine failed: %w: %s", err, output)
	}

	report, err := os.ReadFile(req.ReportPath)
	if err != nil {
		return "", fmt.Errorf("failed to read performance report: %w", err)
	}
	return string(report), nil
}
