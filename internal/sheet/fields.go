package sheet

// Logical-field alias and fuzzy tables shared by the sync and dashboard
// paths. Aliases are exact normalized headers seen in the wild; fuzzy
// substrings catch the long tail (see the extractor contract in record.go).

var (
	NameAliases = []string{"full_name", "nome", "nome_completo", "name"}
	NameFuzzy   = []string{"nome", "name"}

	StatusAliases = []string{"lead_status", "status", "etapa", "estagio"}
	StatusFuzzy   = []string{"status", "etapa", "estagio", "stage"}

	QualifiedAliases = []string{"qualificado", "validacao", "qualificacao"}
	QualifiedFuzzy   = []string{"qualific", "validac"}

	CampaignAliases = []string{"nome_da_campanha", "campanha", "campaign_name", "campaign"}
	CampaignFuzzy   = []string{"campanha", "campaign"}

	AdAliases = []string{"nome_do_anuncio", "anuncio", "ad_name"}
	AdFuzzy   = []string{"anuncio", "ad_name", "criativo"}

	AudienceAliases = []string{"publico", "conjunto_de_anuncios", "adset_name"}
	AudienceFuzzy   = []string{"publico", "conjunto", "adset", "audience"}

	ResponsibleAliases = []string{"responsavel", "vendedor", "closer", "atendente"}
	ResponsibleFuzzy   = []string{"responsavel", "vendedor", "closer"}

	DateAliases = []string{"data", "data_de_entrada", "created_time", "data_de_criacao"}
	DateFuzzy   = []string{"data", "date", "created"}

	EmailAliases = []string{"email", "e_mail", "e-mail"}
	EmailFuzzy   = []string{"email", "e_mail"}

	WhatsAppAliases = []string{"whatsapp", "telefone", "celular", "phone_number"}
	WhatsAppFuzzy   = []string{"whatsapp", "telefone", "celular", "phone", "fone", "contato"}

	InstagramAliases = []string{"instagram", "insta"}
	InstagramFuzzy   = []string{"instagram", "insta", "@"}
)
