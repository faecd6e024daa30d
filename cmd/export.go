package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/adapters"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/repositories"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/services"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/simulator"
)

var (
	exportModelID  int64
	exportBpmnPath string
	exportOutPath  string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Project a stored model into a Prosimos scenario file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		ctx := cmd.Context()
		db, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		service := services.NewSimulationService(repositories.NewRepositories(db), logger)
		exporter := adapters.NewToSimulator(service, logger)

		scenario, err := exporter.Export(ctx, exportModelID)
		if err != nil {
			return err
		}
		scenario.ProcessModel = exportBpmnPath

		if err := simulator.WriteFile(scenario, exportOutPath); err != nil {
			return err
		}
		logger.Info("scenario exported",
			zap.Int64("model_id", exportModelID),
			zap.String("path", exportOutPath))
		return nil
	},
}

func init() {
	exportCmd.Flags().Int64Var(&exportModelID, "model", 0, "Simulation model id to export")
	exportCmd.Flags().StringVar(&exportBpmnPath, "bpmn", "", "Process model path recorded in the scenario")
	exportCmd.Flags().StringVar(&exportOutPath, "out", "scenario.json", "Output path for the scenario JSON")
	exportCmd.MarkFlagRequired("model") //nolint:errcheck
}
