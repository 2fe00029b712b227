package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"craft-assistant/internal/common/logger"
	"craft-assistant/internal/models"
	"craft-assistant/internal/pipeline"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var askTimeout time.Duration

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a single question and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().DurationVar(&askTimeout, "timeout", 90*time.Second, "overall timeout")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	color.NoColor = color.NoColor || noColor

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := "error"
	if verbose {
		level = "debug"
	}
	log := logger.NewStructured(level, "console")

	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	deps, err := buildDependencies(ctx, cfg, log, 1)
	if err != nil {
		return err
	}
	defer deps.Close()

	result := pipeline.New(deps.chain, log, deps.pipelineOptions()...).Resolve(ctx, strings.Join(args, " "))
	printResult(result)

	if !result.OK() {
		return fmt.Errorf("query not answered: %s", result.Status)
	}
	return nil
}

func printResult(result *models.ResolutionResult) {
	label := color.New(color.FgCyan, color.Bold)
	switch result.Status {
	case models.StatusOK:
		fmt.Println(result.Answer)
	case models.StatusValidationFailed:
		color.Yellow("%s", result.Answer)
	default:
		color.Red("%s", result.Answer)
	}

	label.Print("resolver: ")
	fmt.Println(result.Resolver)
	if result.SourceURL != "" {
		label.Print("source:   ")
		fmt.Println(result.SourceURL)
	}
	label.Print("query id: ")
	fmt.Println(result.QueryID)
}
