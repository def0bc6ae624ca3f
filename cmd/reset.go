package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/escriba-ai/escriba/internal/i18n"
)

func newResetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Apaga o histórico e reinicia o saldo de pontos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !force && !confirm("Apagar todo o histórico e reiniciar o saldo? [s/N] ") {
				return nil
			}

			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			a.Reset(cmd.Context())
			fmt.Println(i18n.T("notice.reset.done"))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "não pede confirmação")
	return cmd
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "s" || answer == "sim" || answer == "y" || answer == "yes"
}
