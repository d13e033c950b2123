package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mfauzanap/event-registration/internal"
	inscriptionDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/inscription"
	"github.com/mfauzanap/event-registration/internal/inscription"
)

// InscriptionRepository implements inscription.Repository using GORM.
type InscriptionRepository struct {
	db *gorm.DB
}

func NewInscriptionRepository(db *gorm.DB) inscription.Repository {
	return &InscriptionRepository{db: db}
}

func (r *InscriptionRepository) Create(ins *inscription.Inscription) error {
	row := &inscriptionDatamodel.Inscription{
		UserID:  ins.UserID,
		EventID: ins.EventID,
	}
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	ins.ID = row.ID
	ins.CreatedAt = row.CreatedAt
	return nil
}

func (r *InscriptionRepository) GetByID(id int64) (*inscription.Inscription, error) {
	var row inscriptionDatamodel.Inscription
	err := r.db.Preload("Responses").First(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInscriptionNotFound
		}
		return nil, err
	}
	return inscription.FromDataModel(&row), nil
}

func (r *InscriptionRepository) GetByUserAndEvent(userID, eventID int64) (*inscription.Inscription, error) {
	var row inscriptionDatamodel.Inscription
	err := r.db.Where("user_id = ? AND event_id = ?", userID, eventID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrInscriptionNotFound
		}
		return nil, err
	}
	return inscription.FromDataModel(&row), nil
}

func (r *InscriptionRepository) ListByEvent(eventID int64) ([]*inscription.Inscription, error) {
	var rows []*inscriptionDatamodel.Inscription
	err := r.db.Preload("Responses").
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return inscription.FromDataModelSlice(rows), nil
}

// Delete removes the inscription and its responses in one transaction.
func (r *InscriptionRepository) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("inscription_id = ?", id).
			Delete(&inscriptionDatamodel.FieldResponse{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&inscriptionDatamodel.Inscription{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrInscriptionNotFound
		}
		return nil
	})
}

func (r *InscriptionRepository) CreateResponse(resp *inscription.FieldResponse) error {
	row := &inscriptionDatamodel.FieldResponse{
		InscriptionID:    resp.InscriptionID,
		FormFieldID:      resp.FormFieldID,
		ResponseText:     resp.ResponseText,
		ResponseFilePath: resp.ResponseFilePath,
	}
	if err := r.db.Create(row).Error; err != nil {
		return err
	}
	resp.ID = row.ID
	return nil
}

func (r *InscriptionRepository) GetResponse(inscriptionID, fieldID int64) (*inscription.FieldResponse, error) {
	var row inscriptionDatamodel.FieldResponse
	err := r.db.Where("inscription_id = ? AND form_field_id = ?", inscriptionID, fieldID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &inscription.FieldResponse{
		ID:               row.ID,
		InscriptionID:    row.InscriptionID,
		FormFieldID:      row.FormFieldID,
		ResponseText:     row.ResponseText,
		ResponseFilePath: row.ResponseFilePath,
	}, nil
}

func (r *InscriptionRepository) UpdateResponse(resp *inscription.FieldResponse) error {
	return r.db.Model(&inscriptionDatamodel.FieldResponse{}).
		Where("id = ?", resp.ID).
		Updates(map[string]interface{}{
			"response_text":      resp.ResponseText,
			"response_file_path": resp.ResponseFilePath,
		}).Error
}
