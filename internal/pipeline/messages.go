package pipeline

// User-facing messages returned in ProcessResult.
const (
	MsgEmptyInput       = "O texto do extrato está vazio."
	MsgMissingUser      = "Usuário não identificado."
	MsgMissingStore     = "Armazenamento de transações não configurado."
	MsgUnsupportedFile  = "Tipo de arquivo não suportado. Envie um arquivo .txt, .csv, .ofx ou .pdf."
	MsgUnreadableFile   = "Não foi possível ler o arquivo do extrato."
	MsgNoTransactions   = "Nenhuma transação encontrada no texto."
	MsgAIUnavailable    = "Não foi possível interpretar o extrato e a leitura por IA não está configurada. Envie as linhas no formato DD/MM/AAAA,valor,identificador,descrição."
	MsgAIOverloaded     = "O serviço de IA está sobrecarregado no momento. Tente novamente em alguns minutos ou envie o extrato no formato estruturado (DD/MM/AAAA,valor,identificador,descrição)."
	MsgAIFailed         = "Falha ao interpretar o extrato com a IA. Tente novamente ou use o formato estruturado."
	MsgAllDuplicates    = "Todas as transações deste extrato já foram importadas."
	MsgStorageRead      = "Erro ao consultar as transações existentes. Nenhuma transação foi salva."
	MsgStorageFailure   = "Erro ao salvar as transações. Nenhuma transação foi salva."
	msgImported         = "%d transação(ões) importada(s)."
	msgImportedWithDups = "%d transação(ões) importada(s), %d duplicada(s) ignorada(s)."
)
