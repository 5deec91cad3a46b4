package worker

// recordatorio_worker.go
// Processes maintenance-reminder jobs from QueueRecordatorio. A job carries a
// vehicle whose evaluation flagged at least one rule vencido or proximo; the
// worker composes the reminder and mails it to the vehicle's owner.

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/oscaralejandrotorressierra-bit/medinautos-system/internal/infra"

	"github.com/rs/zerolog/log"
)

// RecordatorioJobPayload is the job envelope sent to QueueRecordatorio.
type RecordatorioJobPayload struct {
	ToEmail       string   `json:"to_email"`
	ClienteNombre string   `json:"cliente_nombre"`
	Placa         string   `json:"placa"`
	Vencidos      []string `json:"vencidos"`
	Proximos      []string `json:"proximos"`
	TallerNombre  string   `json:"taller_nombre"`
	TallerTelefono string  `json:"taller_telefono"`
}

type RecordatorioWorker struct {
	mailer *infra.Mailer
}

func NewRecordatorioWorker(mailer *infra.Mailer) *RecordatorioWorker {
	return &RecordatorioWorker{mailer: mailer}
}

func (w *RecordatorioWorker) Process(_ context.Context, raw json.RawMessage) {
	var payload RecordatorioJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("recordatorio_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Str("placa", payload.Placa).Msg("recordatorio_worker: cliente sin email — skipping")
		return
	}

	subject := fmt.Sprintf("Mantenimiento pendiente para su vehículo %s", payload.Placa)
	body := composeBody(payload)

	if err := w.mailer.Send(payload.ToEmail, subject, body, ""); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("recordatorio_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("placa", payload.Placa).Msg("recordatorio_worker: reminder sent")
}

func composeBody(p RecordatorioJobPayload) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Estimado/a %s,\n\n", p.ClienteNombre)
	fmt.Fprintf(&b, "Su vehículo de placa %s tiene mantenimientos por atender:\n\n", p.Placa)
	if len(p.Vencidos) > 0 {
		b.WriteString("VENCIDOS:\n")
		for _, v := range p.Vencidos {
			fmt.Fprintf(&b, "  - %s\n", v)
		}
		b.WriteString("\n")
	}
	if len(p.Proximos) > 0 {
		b.WriteString("PRÓXIMOS A VENCER:\n")
		for _, v := range p.Proximos {
			fmt.Fprintf(&b, "  - %s\n", v)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Agende su cita en %s. Tel: %s\n", p.TallerNombre, p.TallerTelefono)
	return b.String()
}
