package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/escriba-ai/escriba/internal/i18n"
)

func newBalanceCmd() *cobra.Command {
	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Mostra o saldo de pontos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			fmt.Println(i18n.Sprintf("notice.balance", a.Ledger.Balance()))
			return nil
		},
	}

	balanceCmd.AddCommand(newBalanceAddCmd())
	return balanceCmd
}

func newBalanceAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <pontos>",
		Short: "Adiciona pontos ao saldo (fluxo de compra)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[0])
			if err != nil || amount <= 0 {
				return fmt.Errorf("quantidade de pontos inválida: %q", args[0])
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			a.Ledger.Credit(cmd.Context(), amount)
			fmt.Println(i18n.Sprintf("notice.credited", amount, a.Ledger.Balance()))
			return nil
		},
	}
}
