package inscription

import (
	"time"

	inscriptionDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/inscription"
)

type Inscription struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	EventID   int64           `json:"event_id"`
	CreatedAt time.Time       `json:"created_at"`
	Responses []FieldResponse `json:"responses,omitempty"`
}

type FieldResponse struct {
	ID               int64  `json:"id"`
	InscriptionID    int64  `json:"inscription_id"`
	FormFieldID      int64  `json:"form_field_id"`
	ResponseText     string `json:"response_text,omitempty"`
	ResponseFilePath string `json:"response_file_path,omitempty"`
}

func FromDataModel(row *inscriptionDatamodel.Inscription) *Inscription {
	ins := &Inscription{
		ID:        row.ID,
		UserID:    row.UserID,
		EventID:   row.EventID,
		CreatedAt: row.CreatedAt,
	}
	for _, r := range row.Responses {
		ins.Responses = append(ins.Responses, FieldResponse{
			ID:               r.ID,
			InscriptionID:    r.InscriptionID,
			FormFieldID:      r.FormFieldID,
			ResponseText:     r.ResponseText,
			ResponseFilePath: r.ResponseFilePath,
		})
	}
	return ins
}

func FromDataModelSlice(rows []*inscriptionDatamodel.Inscription) []*Inscription {
	out := make([]*Inscription, len(rows))
	for i, row := range rows {
		out[i] = FromDataModel(row)
	}
	return out
}
