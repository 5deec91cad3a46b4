package worker

// email_worker.go
// Consumes QueueEmail jobs: order receipts to clients and payroll receipts
// to mechanics, with the generated PDF attached when present.

import (
	"context"
	"encoding/json"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the envelope the services enqueue on QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var job EmailJobPayload
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Err(err).Msg("email_worker: payload invalido")
		return
	}
	// Clients without a registered email still generate jobs from some
	// flows; drop them quietly instead of failing the send.
	if job.ToEmail == "" {
		log.Warn().Str("subject", job.Subject).Msg("email_worker: destinatario vacio, job descartado")
		return
	}

	if err := w.mailer.Send(job.ToEmail, job.Subject, job.Body, job.PDFPath); err != nil {
		log.Error().Err(err).Str("to", job.ToEmail).Msg("email_worker: envio fallido")
		return
	}
	log.Info().Str("to", job.ToEmail).Str("subject", job.Subject).Msg("email_worker: correo enviado")
}
