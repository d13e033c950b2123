package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mfauzanap/event-registration/internal"
	eventDatamodel "github.com/mfauzanap/event-registration/internal/core/datamodel/event"
	"github.com/mfauzanap/event-registration/internal/formschema"
)

// SchemaRepository implements formschema.Repository using GORM.
type SchemaRepository struct {
	db *gorm.DB
}

func NewSchemaRepository(db *gorm.DB) formschema.Repository {
	return &SchemaRepository{db: db}
}

func (r *SchemaRepository) ListFieldTypes() ([]formschema.FieldType, error) {
	var rows []eventDatamodel.FieldType
	if err := r.db.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]formschema.FieldType, len(rows))
	for i, row := range rows {
		out[i] = formschema.FieldType{ID: row.ID, Name: row.Name}
	}
	return out, nil
}

// GetFieldType resolves a type by id when given, by name otherwise.
func (r *SchemaRepository) GetFieldType(id int64, name string) (*formschema.FieldType, error) {
	var row eventDatamodel.FieldType
	q := r.db
	switch {
	case id > 0:
		q = q.Where("id = ?", id)
	case name != "":
		q = q.Where("name = ?", name)
	default:
		return nil, internal.NewValidationError("field type id or name is required", internal.ErrCodeUnknownFieldType)
	}
	if err := q.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.NewValidationError("unknown field type", internal.ErrCodeUnknownFieldType)
		}
		return nil, err
	}
	return &formschema.FieldType{ID: row.ID, Name: row.Name}, nil
}

func (r *SchemaRepository) EventExists(eventID int64) (bool, error) {
	var count int64
	err := r.db.Model(&eventDatamodel.Event{}).
		Where("id = ? AND is_deleted = false", eventID).
		Count(&count).Error
	return count > 0, err
}

func (r *SchemaRepository) ListByEvent(eventID int64) ([]*formschema.FormField, error) {
	rows, err := r.fieldsByEvent(r.db, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]*formschema.FormField, len(rows))
	for i := range rows {
		out[i] = fieldFromRow(&rows[i])
	}
	return out, nil
}

// ReplaceAll wipes the event's fields and their options, then inserts the new
// set, all inside one transaction. Any failure rolls the whole swap back.
func (r *SchemaRepository) ReplaceAll(eventID int64, fields []*formschema.FormField) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		existing, err := r.fieldsByEvent(tx, eventID)
		if err != nil {
			return err
		}

		if len(existing) > 0 {
			ids := make([]int64, len(existing))
			for i, f := range existing {
				ids[i] = f.ID
			}
			if err := tx.Where("form_field_id IN ?", ids).
				Delete(&eventDatamodel.DropdownOption{}).Error; err != nil {
				return err
			}
			if err := tx.Where("event_id = ?", eventID).
				Delete(&eventDatamodel.FormField{}).Error; err != nil {
				return err
			}
		}

		for _, f := range fields {
			if err := createFieldTx(tx, f); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SchemaRepository) CreateField(f *formschema.FormField) error {
	return createFieldTx(r.db, f)
}

func (r *SchemaRepository) GetFieldByID(id int64) (*formschema.FormField, error) {
	var row eventDatamodel.FormField
	err := r.db.Preload("FieldType").Preload("Options").
		Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrFieldNotFound
		}
		return nil, err
	}
	return fieldFromRow(&row), nil
}

// UpdateField persists the field and replaces its options wholesale.
func (r *SchemaRepository) UpdateField(f *formschema.FormField) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"field_type_id":       f.FieldType.ID,
			"label":               f.Label,
			"required":            f.Required,
			"accepted_file_types": f.AcceptedFileTypes,
		}
		if err := tx.Model(&eventDatamodel.FormField{}).
			Where("id = ?", f.ID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("form_field_id = ?", f.ID).
			Delete(&eventDatamodel.DropdownOption{}).Error; err != nil {
			return err
		}
		for _, o := range f.Options {
			opt := eventDatamodel.DropdownOption{FormFieldID: f.ID, Value: o.Value, IsDefault: o.IsDefault}
			if err := tx.Create(&opt).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteField removes the field's options first, then the field. The restrict
// constraint from field_responses blocks deletion of answered fields.
func (r *SchemaRepository) DeleteField(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_field_id = ?", id).
			Delete(&eventDatamodel.DropdownOption{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&eventDatamodel.FormField{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrFieldNotFound
		}
		return nil
	})
}

func (r *SchemaRepository) fieldsByEvent(tx *gorm.DB, eventID int64) ([]eventDatamodel.FormField, error) {
	var rows []eventDatamodel.FormField
	err := tx.Preload("FieldType").Preload("Options").
		Where("event_id = ?", eventID).
		Order("sequence ASC").
		Find(&rows).Error
	return rows, err
}

func createFieldTx(tx *gorm.DB, f *formschema.FormField) error {
	row := eventDatamodel.FormField{
		EventID:           f.EventID,
		FieldTypeID:       f.FieldType.ID,
		Label:             f.Label,
		Required:          f.Required,
		Sequence:          f.Sequence,
		AcceptedFileTypes: f.AcceptedFileTypes,
	}
	if err := tx.Create(&row).Error; err != nil {
		return err
	}
	f.ID = row.ID

	for _, o := range f.Options {
		opt := eventDatamodel.DropdownOption{FormFieldID: row.ID, Value: o.Value, IsDefault: o.IsDefault}
		if err := tx.Create(&opt).Error; err != nil {
			return err
		}
	}
	return nil
}

func fieldFromRow(row *eventDatamodel.FormField) *formschema.FormField {
	f := &formschema.FormField{
		ID:                row.ID,
		EventID:           row.EventID,
		Label:             row.Label,
		Required:          row.Required,
		Sequence:          row.Sequence,
		AcceptedFileTypes: row.AcceptedFileTypes,
		FieldType:         formschema.FieldType{ID: row.FieldType.ID, Name: row.FieldType.Name},
		Options:           []formschema.Option{},
	}
	for _, opt := range row.Options {
		f.Options = append(f.Options, formschema.Option{Value: opt.Value, IsDefault: opt.IsDefault})
	}
	return f
}
