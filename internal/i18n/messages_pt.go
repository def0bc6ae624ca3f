package i18n

// loadPortugueseMessages loads all Brazilian Portuguese translations.
func loadPortugueseMessages() {
	messages[LangPtBR] = map[string]string{
		// Common
		"app.name":        "Escriba",
		"app.description": "Gerador de trabalhos escolares com IA",
		"app.version":     "Escriba v%s",

		// Work session
		"work.started":   "Nova sessão de trabalho iniciada.",
		"work.prompt":    "Você> ",
		"work.assistant": "Escriba> ",
		"work.sending":   "Gerando trabalho...",
		"work.goodbye":   "Até logo!",
		"work.help":      "Digite o tema do trabalho, /novo para recomeçar, /sair para encerrar.",

		// Notices
		"notice.success":       "Trabalho gerado com sucesso! %d pontos debitados.",
		"notice.files":         "Arquivos gerados:",
		"notice.copied":        "Conteúdo copiado para a área de transferência.",
		"notice.copy.failed":   "Não foi possível copiar para a área de transferência.",
		"notice.balance":       "Saldo atual: %d pontos.",
		"notice.credited":      "%d pontos adicionados. Saldo atual: %d pontos.",
		"notice.reset.done":    "Histórico e saldo reiniciados.",
		"notice.history.empty": "Nenhum trabalho no histórico ainda.",

		// Errors
		"error.insufficient":       "Pontos insuficientes para gerar este trabalho. Adquira mais pontos para continuar.",
		"error.generation":         "Não foi possível gerar o trabalho: %s",
		"error.generation.generic": "Não foi possível gerar o trabalho. Tente novamente.",
		"error.transport":          "Falha de conexão com o serviço de geração. Verifique sua internet e tente novamente.",
		"error.busy":               "Já existe uma geração em andamento. Aguarde a conclusão.",
		"error.empty":              "Digite o tema do trabalho antes de enviar.",
		"error.config":             "falha ao carregar configuração: %v",

		// History listing
		"history.title":  "Trabalhos gerados (mais recentes primeiro):",
		"history.item":   "%s  [%s/%s]  %s  (%d pontos)",
		"history.amount": "%d trabalho(s) encontrado(s).",
	}
}
