package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/escriba-ai/escriba/internal/i18n"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Mostra a versão do escriba",
		Run: func(*cobra.Command, []string) {
			fmt.Println(i18n.Sprintf("app.version", Version))
		},
	}
}
