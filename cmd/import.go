package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/copilot"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/repositories"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/services"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/simulator"
)

var (
	importScenarioPath string
	importBpmnPath     string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a Prosimos scenario and its BPMN model into the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		if err := fileMustExist(importScenarioPath, "scenario"); err != nil {
			return err
		}
		if err := fileMustExist(importBpmnPath, "process model"); err != nil {
			return err
		}

		ctx := cmd.Context()
		db, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		service := services.NewSimulationService(repositories.NewRepositories(db), logger)
		runner := simulator.NewCommandRunner(cfg.Simulator.Binary, logger)
		session := copilot.NewSession(service, runner, cfg.Simulator.TotalCases, logger)

		modelID, err := session.ImportModel(ctx, importScenarioPath, importBpmnPath)
		if err != nil {
			return err
		}
		logger.Info("scenario imported", zap.Int64("model_id", modelID))
		fmt.Println(modelID)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importScenarioPath, "scenario", "", "Path to the Prosimos scenario JSON")
	importCmd.Flags().StringVar(&importBpmnPath, "bpmn", "", "Path to the BPMN process model")
	importCmd.MarkFlagRequired("scenario") //nolint:errcheck
	importCmd.MarkFlagRequired("bpmn")     //nolint:errcheck
}
