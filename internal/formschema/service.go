package formschema

import (
	"fmt"
	"log/slog"

	"github.com/mfauzanap/event-registration/internal"
)

// Repository defines the data access methods for field types and form fields.
// ReplaceAll must be transactional: on any failure the event keeps its
// previous field set.
type Repository interface {
	ListFieldTypes() ([]FieldType, error)
	GetFieldType(id int64, name string) (*FieldType, error)
	EventExists(eventID int64) (bool, error)
	ListByEvent(eventID int64) ([]*FormField, error)
	ReplaceAll(eventID int64, fields []*FormField) error
	CreateField(f *FormField) error
	GetFieldByID(id int64) (*FormField, error)
	UpdateField(f *FormField) error
	DeleteField(id int64) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) ListFieldTypes() ([]FieldType, error) {
	return s.repo.ListFieldTypes()
}

func (s *Service) ListFields(eventID int64) ([]*FormField, error) {
	exists, err := s.repo.EventExists(eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.ErrEventNotFound
	}
	return s.repo.ListByEvent(eventID)
}

// ReplaceFields builds the complete new field set from the incoming
// definitions and swaps it in atomically. The array order is authoritative:
// field N gets sequence N. An unknown type anywhere fails the whole
// operation and leaves the previous set untouched.
func (s *Service) ReplaceFields(eventID int64, dto ReplaceFieldsDTO) ([]*FormField, error) {
	exists, err := s.repo.EventExists(eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.ErrEventNotFound
	}

	fields := make([]*FormField, 0, len(dto.Fields))
	for i, def := range dto.Fields {
		f, err := s.buildField(eventID, i, def)
		if err != nil {
			s.logger.Warn("field replace rejected", "event_id", eventID, "position", i, "error", err)
			return nil, err
		}
		fields = append(fields, f)
	}

	if err := s.repo.ReplaceAll(eventID, fields); err != nil {
		s.logger.Error("field replace failed", "error", err, "event_id", eventID)
		return nil, err
	}

	s.logger.Info("form fields replaced", "event_id", eventID, "count", len(fields))

	return s.repo.ListByEvent(eventID)
}

// CreateField adds one field after the event's current last sequence.
func (s *Service) CreateField(eventID int64, def FieldDefinitionDTO) (*FormField, error) {
	exists, err := s.repo.EventExists(eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, internal.ErrEventNotFound
	}

	existing, err := s.repo.ListByEvent(eventID)
	if err != nil {
		return nil, err
	}

	f, err := s.buildField(eventID, len(existing), def)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateField(f); err != nil {
		s.logger.Error("failed to create form field", "error", err, "event_id", eventID)
		return nil, err
	}

	return s.repo.GetFieldByID(f.ID)
}

// UpdateField patches one field. A type change re-derives whether accepted
// file types are kept; new options replace the old set wholesale.
func (s *Service) UpdateField(fieldID int64, dto UpdateFieldDTO) (*FormField, error) {
	f, err := s.repo.GetFieldByID(fieldID)
	if err != nil {
		return nil, err
	}

	if dto.FieldTypeID != nil || dto.FieldType != nil {
		var id int64
		var name string
		if dto.FieldTypeID != nil {
			id = *dto.FieldTypeID
		}
		if dto.FieldType != nil {
			name = *dto.FieldType
		}
		t, err := s.repo.GetFieldType(id, name)
		if err != nil {
			return nil, err
		}
		f.FieldType = *t
	}

	if dto.Label != nil {
		if *dto.Label == "" {
			return nil, internal.NewValidationFieldError("label", "label cannot be empty", internal.ErrCodeValidationFailed)
		}
		f.Label = *dto.Label
	}
	if dto.Required != nil {
		f.Required = *dto.Required
	}
	if dto.AcceptedFileTypes != nil {
		f.AcceptedFileTypes = *dto.AcceptedFileTypes
	}

	// Accepted file types only mean something for file fields.
	if !f.FieldType.IsFile() {
		f.AcceptedFileTypes = ""
	}

	if dto.Options != nil {
		clean := FieldDefinitionDTO{Options: *dto.Options}.CleanOptions()
		if f.FieldType.HasOptions() {
			f.Options = clean
		} else {
			f.Options = []Option{}
		}
	} else if !f.FieldType.HasOptions() {
		f.Options = []Option{}
	}

	if err := s.repo.UpdateField(f); err != nil {
		s.logger.Error("failed to update form field", "error", err, "field_id", fieldID)
		return nil, err
	}

	return s.repo.GetFieldByID(fieldID)
}

func (s *Service) DeleteField(fieldID int64) error {
	if _, err := s.repo.GetFieldByID(fieldID); err != nil {
		return err
	}
	if err := s.repo.DeleteField(fieldID); err != nil {
		s.logger.Error("failed to delete form field", "error", err, "field_id", fieldID)
		return err
	}
	s.logger.Info("form field deleted", "field_id", fieldID)
	return nil
}

func (s *Service) buildField(eventID int64, position int, def FieldDefinitionDTO) (*FormField, error) {
	if def.Label == "" {
		return nil, internal.NewValidationFieldError("label",
			fmt.Sprintf("field at position %d has no label", position),
			internal.ErrCodeValidationFailed)
	}

	t, err := s.repo.GetFieldType(def.FieldTypeID, def.FieldType)
	if err != nil {
		return nil, internal.NewValidationError(
			fmt.Sprintf("field %q names an unknown type", def.Label),
			internal.ErrCodeUnknownFieldType)
	}

	f := &FormField{
		EventID:   eventID,
		Label:     def.Label,
		Required:  def.Required,
		Sequence:  position,
		FieldType: *t,
		Options:   []Option{},
	}

	if t.IsFile() {
		f.AcceptedFileTypes = def.AcceptedFileTypes
	}
	if t.HasOptions() {
		f.Options = def.CleanOptions()
	}

	return f, nil
}
