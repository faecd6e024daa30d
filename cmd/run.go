package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/copilot"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/repositories"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/services"
	"github.com/AutomatedProcessImprovement/simulation-copilot/pkg/simulator"
)

var (
	runModelID  int64
	runBpmnPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate a stored model and print the condensed performance report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		if err := fileMustExist(runBpmnPath, "process model"); err != nil {
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

		report, err := session.RunSimulation(ctx, runModelID, runBpmnPath)
		if err != nil {
			return err
		}
		fmt.Println(report)
		return nil
	},
}

func init() {
	runCmd.Flags().Int64Var(&runModelID, "model", 0, "Simulation model id to simulate")
	runCmd.Flags().StringVar(&runBpmnPath, "bpmn", "", "Path to the BPMN process model")
	runCmd.MarkFlagRequired("model") //nolint:errcheck
	runCmd.MarkFlagRequired("bpmn")  //nolint:errcheck
}
