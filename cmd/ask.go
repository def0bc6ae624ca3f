package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/escriba-ai/escriba/internal/i18n"
)

func newAskCmd() *cobra.Command {
	var copyToClipboard bool

	cmd := &cobra.Command{
		Use:   "ask <tema do trabalho>",
		Short: "Gera um único trabalho e encerra",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, args, copyToClipboard)
		},
	}
	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "copia o conteúdo gerado para a área de transferência")
	return cmd
}

func runAsk(cmd *cobra.Command, args []string, copyToClipboard bool) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if _, err := a.Orchestrator.NewWork(ctx); err != nil {
		return err
	}

	prompt := strings.Join(args, " ")
	fmt.Println(i18n.T("work.sending"))

	res, err := a.Orchestrator.Submit(ctx, prompt)
	if err != nil {
		printSubmitError(err)
		return nil
	}

	fmt.Println(res.Reply.Content)
	printFiles(res.Reply.Files)
	fmt.Println(i18n.Sprintf("notice.success", res.Entry.PointCost))
	fmt.Println(i18n.Sprintf("notice.balance", a.Orchestrator.Balance()))

	if copyToClipboard {
		if a.Clipboard.Copy(res.Reply.Content) {
			fmt.Println(i18n.T("notice.copied"))
		} else {
			fmt.Println(i18n.T("notice.copy.failed"))
		}
	}
	return nil
}
