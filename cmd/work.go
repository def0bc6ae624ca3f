package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/escriba-ai/escriba/internal/i18n"
	"github.com/escriba-ai/escriba/internal/work"
)

func newWorkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "work",
		Short: "Inicia uma sessão de trabalho interativa",
		RunE:  runWork,
	}
}

func runWork(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	if _, err := a.Orchestrator.NewWork(ctx); err != nil {
		return err
	}

	fmt.Println(i18n.T("work.started"))
	fmt.Println(i18n.T("work.help"))
	fmt.Println(i18n.Sprintf("notice.balance", a.Orchestrator.Balance()))

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print(i18n.T("work.prompt"))
		if !scanner.Scan() {
			fmt.Println()
			fmt.Println(i18n.T("work.goodbye"))
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/sair", "/exit", "/quit":
			fmt.Println(i18n.T("work.goodbye"))
			return nil
		case "/novo", "/new":
			if _, err := a.Orchestrator.NewWork(ctx); err != nil {
				printSubmitError(err)
				continue
			}
			fmt.Println(i18n.T("work.started"))
			continue
		}

		fmt.Println(i18n.T("work.sending"))
		res, err := a.Orchestrator.Submit(ctx, line)
		if err != nil {
			printSubmitError(err)
			continue
		}

		fmt.Printf("%s%s\n", i18n.T("work.assistant"), res.Reply.Content)
		printFiles(res.Reply.Files)
		fmt.Println(i18n.Sprintf("notice.success", res.Entry.PointCost))
		fmt.Println(i18n.Sprintf("notice.balance", a.Orchestrator.Balance()))
	}
}

// printSubmitError converts an orchestrator error into its
// user-facing notice. Every error is terminal here; none aborts the
// loop or the process.
func printSubmitError(err error) {
	switch {
	case errors.Is(err, work.ErrInsufficientBalance):
		fmt.Println(i18n.T("error.insufficient"))
	case errors.Is(err, work.ErrGenerationInFlight):
		fmt.Println(i18n.T("error.busy"))
	case errors.Is(err, work.ErrEmptyPrompt):
		fmt.Println(i18n.T("error.empty"))
	case errors.Is(err, work.ErrTransportFailure):
		fmt.Println(i18n.T("error.transport"))
	case errors.Is(err, work.ErrGenerationFailed):
		if msg := collaboratorMessage(err); msg != "" {
			fmt.Println(i18n.Sprintf("error.generation", msg))
		} else {
			fmt.Println(i18n.T("error.generation.generic"))
		}
	default:
		fmt.Println(i18n.Sprintf("error.generation", err))
	}
}

// collaboratorMessage extracts the collaborator-provided text from a
// wrapped ErrGenerationFailed, if any.
func collaboratorMessage(err error) string {
	full := err.Error()
	prefix := work.ErrGenerationFailed.Error()
	if full == prefix {
		return ""
	}
	return strings.TrimPrefix(strings.TrimPrefix(full, prefix), ": ")
}
