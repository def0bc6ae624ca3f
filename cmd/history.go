package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/escriba-ai/escriba/internal/history"
	"github.com/escriba-ai/escriba/internal/i18n"
)

func newHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Consulta o histórico de trabalhos gerados",
	}

	historyCmd.AddCommand(newHistoryListCmd())
	historyCmd.AddCommand(newHistorySearchCmd())
	return historyCmd
}

func newHistoryListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista os trabalhos mais recentes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			entries := a.Archive.Recent(limit)
			if len(entries) == 0 {
				fmt.Println(i18n.T("notice.history.empty"))
				return nil
			}
			printEntries(entries)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "número máximo de trabalhos a listar")
	return cmd
}

func newHistorySearchCmd() *cobra.Command {
	var (
		search string
		level  string
		format string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Busca trabalhos por tema, nível e formato",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			entries := a.Archive.Filter(search, level, format)
			if len(entries) == 0 {
				fmt.Println(i18n.T("notice.history.empty"))
				return nil
			}
			printEntries(entries)
			return nil
		},
	}
	cmd.Flags().StringVarP(&search, "query", "q", "", "texto a buscar no tema")
	cmd.Flags().StringVar(&level, "level", history.FilterAll, "nível escolar (Fundamental, Medio, Tecnico, Faculdade ou all)")
	cmd.Flags().StringVar(&format, "format", history.FilterAll, "formato (documento, slides ou all)")
	return cmd
}
