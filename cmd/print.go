package cmd

import (
	"fmt"

	"github.com/escriba-ai/escriba/internal/history"
	"github.com/escriba-ai/escriba/internal/i18n"
	"github.com/escriba-ai/escriba/internal/session"
)

func printFiles(files []session.ArtifactFile) {
	if len(files) == 0 {
		return
	}
	fmt.Println(i18n.T("notice.files"))
	for _, f := range files {
		fmt.Printf("  %s\n", f.FileURL)
	}
}

func printEntries(entries []history.Entry) {
	fmt.Println(i18n.T("history.title"))
	for _, e := range entries {
		fmt.Println(i18n.Sprintf("history.item", e.Date, e.Level, e.Format, e.Topic, e.PointCost))
	}
	fmt.Println(i18n.Sprintf("history.amount", len(entries)))
}
