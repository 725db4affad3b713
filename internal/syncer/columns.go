package syncer

import "github.com/Leonardotrentini/vestogestao-sub000/internal/sheet"

// columnSpec fixes a default board column and how its value is pulled out
// of a lead row.
type columnSpec struct {
	Title    string
	Type     string
	Position int32
	Settings string

	aliases []string
	fuzzy   []string
}

const statusSettings = `{"labels":{"Novo":"#579bfc","Qualificado":"#00c875","Agendado":"#fdab3d","Compareceu":"#784bd1","Venda":"#037f4c","Perdido":"#e2445c"}}`

// The fixed column set every synced board carries. WhatsApp and Instagram
// lean hard on fuzzy matching because ad platforms invent a new header for
// them on every form.
var defaultColumns = []columnSpec{
	{Title: "Status", Type: "status", Position: 1, Settings: statusSettings, aliases: sheet.StatusAliases, fuzzy: sheet.StatusFuzzy},
	{Title: "WhatsApp", Type: "text", Position: 2, aliases: sheet.WhatsAppAliases, fuzzy: sheet.WhatsAppFuzzy},
	{Title: "Instagram", Type: "text", Position: 3, aliases: sheet.InstagramAliases, fuzzy: sheet.InstagramFuzzy},
	{Title: "Email", Type: "email", Position: 4, aliases: sheet.EmailAliases, fuzzy: sheet.EmailFuzzy},
	{Title: "Origem", Type: "text", Position: 5, aliases: sheet.CampaignAliases, fuzzy: sheet.CampaignFuzzy},
	{Title: "Data de Entrada", Type: "date", Position: 6, aliases: sheet.DateAliases, fuzzy: sheet.DateFuzzy},
	{Title: "Responsável", Type: "text", Position: 7, aliases: sheet.ResponsibleAliases, fuzzy: sheet.ResponsibleFuzzy},
}
