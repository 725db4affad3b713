package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Leonardotrentini/vestogestao-sub000/internal/sheet"
)

// Notifier receives the leads a sync materialized for the first time.
// Fire-and-forget: implementations report errors, callers only log them and
// never roll anything back.
type Notifier interface {
	NotifyNewLeads(ctx context.Context, leads []*sheet.LeadRecord) error
}

// LogNotifier writes each new lead to the log. Stands in for the real
// email/WhatsApp transports, which live outside this service.
type LogNotifier struct {
	log *logrus.Entry
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{log: logrus.WithField("component", "notifier")}
}

func (n *LogNotifier) NotifyNewLeads(ctx context.Context, leads []*sheet.LeadRecord) error {
	for i, lead := range leads {
		n.log.WithFields(logrus.Fields{
			"name":     lead.Extract(sheet.NameAliases, sheet.NameFuzzy),
			"whatsapp": lead.Extract(sheet.WhatsAppAliases, sheet.WhatsAppFuzzy),
			"index":    i,
		}).Info("new lead")
	}
	return nil
}
