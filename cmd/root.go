// Package cmd implements the escriba command line interface.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/escriba-ai/escriba/internal/app"
	"github.com/escriba-ai/escriba/internal/config"
	"github.com/escriba-ai/escriba/internal/i18n"
	"github.com/escriba-ai/escriba/internal/log"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "escriba",
	Short: "Escriba - gerador de trabalhos escolares com IA",
	Long: `Escriba gera trabalhos escolares e apresentações através de um agente
de IA, controlado por um saldo local de pontos. Cada geração concluída
é arquivada em um histórico pesquisável.

Executar escriba sem argumentos entra no modo de trabalho interativo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWork(cmd, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newWorkCmd())
	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newBalanceCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// loadApp loads configuration, initializes i18n and builds the
// application container. Callers must Close() the returned App.
func loadApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf(i18n.T("error.config"), err)
	}

	i18n.Init(cfg.Language)

	level := slog.LevelInfo
	if debugFlag || cfg.Debug {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{Level: level})

	return app.New(cmd.Context(), cfg, logger)
}
