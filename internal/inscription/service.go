package inscription

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"

	"github.com/mfauzanap/event-registration/internal"
	"github.com/mfauzanap/event-registration/internal/core/events"
	"github.com/mfauzanap/event-registration/internal/event"
	"github.com/mfauzanap/event-registration/internal/formschema"
)

// Repository defines the data access methods for inscriptions and responses.
type Repository interface {
	Create(ins *Inscription) error
	GetByID(id int64) (*Inscription, error)
	GetByUserAndEvent(userID, eventID int64) (*Inscription, error)
	ListByEvent(eventID int64) ([]*Inscription, error)
	Delete(id int64) error
	CreateResponse(resp *FieldResponse) error
	GetResponse(inscriptionID, fieldID int64) (*FieldResponse, error)
	UpdateResponse(resp *FieldResponse) error
}

// EventReader resolves non-deleted events.
type EventReader interface {
	GetEvent(id int64) (*event.Event, error)
}

// SchemaReader loads an event's form fields.
type SchemaReader interface {
	ListFields(eventID int64) ([]*formschema.FormField, error)
}

// FileStore persists uploaded answer files.
type FileStore interface {
	Save(fh *multipart.FileHeader, acceptedTypes string) (string, error)
}

// Publisher is the slice of the event bus the service needs.
type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   Repository
	evts   EventReader
	schema SchemaReader
	files  FileStore
	bus    Publisher
	logger *slog.Logger
}

func NewService(repo Repository, evts EventReader, schema SchemaReader, files FileStore, bus Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		evts:   evts,
		schema: schema,
		files:  files,
		bus:    bus,
		logger: logger,
	}
}

// CreateInscription registers a user for an event with the answers from the
// registration form. Validation is all-or-nothing; persistence of individual
// responses after the inscription row exists is best-effort.
func (s *Service) CreateInscription(ctx context.Context, userID, eventID int64, dto CreateInscriptionDTO) (*CreateResult, error) {
	ev, err := s.evts.GetEvent(eventID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByUserAndEvent(userID, eventID); err == nil && existing != nil {
		s.logger.Warn("duplicate registration attempt", "user_id", userID, "event_id", eventID)
		return nil, internal.ErrAlreadyRegistered
	}

	fields, err := s.schema.ListFields(eventID)
	if err != nil {
		return nil, err
	}
	fieldsByID := make(map[int64]*formschema.FormField, len(fields))
	for _, f := range fields {
		fieldsByID[f.ID] = f
	}

	warnings := append([]string{}, dto.SkippedKeys...)

	// Drop answers for fields that do not belong to this event.
	answers := map[int64]answer{}
	for id, text := range dto.TextValues {
		if _, ok := fieldsByID[id]; !ok {
			warnings = append(warnings, fmt.Sprintf("field_%d does not belong to this event", id))
			continue
		}
		answers[id] = answer{text: text}
	}
	for id, fh := range dto.Files {
		if _, ok := fieldsByID[id]; !ok {
			warnings = append(warnings, fmt.Sprintf("field_%d does not belong to this event", id))
			continue
		}
		// A file answer supersedes a text answer for the same field.
		answers[id] = answer{file: fh}
	}

	// Every required field needs an answer before anything is persisted.
	for _, f := range fields {
		if !f.Required {
			continue
		}
		a, ok := answers[f.ID]
		if !ok || (a.file == nil && a.text == "") {
			return nil, internal.NewValidationError(
				fmt.Sprintf("required field %q has no answer", f.Label),
				internal.ErrCodeMissingResponse)
		}
	}

	ins := &Inscription{UserID: userID, EventID: eventID}
	if err := s.repo.Create(ins); err != nil {
		s.logger.Error("failed to create inscription", "error", err, "user_id", userID, "event_id", eventID)
		return nil, err
	}

	// Per-response failures are reported back, never rolled back.
	for id, a := range answers {
		resp := &FieldResponse{InscriptionID: ins.ID, FormFieldID: id}
		if a.file != nil {
			path, err := s.files.Save(a.file, fieldsByID[id].AcceptedFileTypes)
			if err != nil {
				s.logger.Error("failed to store response file", "error", err, "inscription_id", ins.ID, "field_id", id)
				warnings = append(warnings, fmt.Sprintf("field_%d: %v", id, err))
				continue
			}
			resp.ResponseFilePath = path
		} else {
			resp.ResponseText = a.text
		}

		if err := s.repo.CreateResponse(resp); err != nil {
			s.logger.Error("failed to persist response", "error", err, "inscription_id", ins.ID, "field_id", id)
			warnings = append(warnings, fmt.Sprintf("field_%d could not be saved", id))
			continue
		}
		ins.Responses = append(ins.Responses, *resp)
	}

	s.logger.Info("inscription created",
		"inscription_id", ins.ID,
		"user_id", userID,
		"event_id", eventID,
		"responses", len(ins.Responses))

	s.bus.Publish(ctx, events.NewRegistrationConfirmedEvent(eventID, userID, ev.Title))

	return &CreateResult{Inscription: ins, Warnings: warnings}, nil
}

// GetInscription returns one inscription; non-admins may only read their own.
func (s *Service) GetInscription(id, actorID int64, isAdmin bool) (*Inscription, error) {
	ins, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && ins.UserID != actorID {
		s.logger.Warn("inscription access denied", "inscription_id", id, "actor_id", actorID, "owner_id", ins.UserID)
		return nil, internal.ErrNotOwner
	}
	return ins, nil
}

func (s *Service) ListByEvent(eventID int64) ([]*Inscription, error) {
	if _, err := s.evts.GetEvent(eventID); err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(eventID)
}

// SubmitResponses upserts answers on an existing inscription with per-entry
// outcomes. Entries whose field belongs to a different event are skipped.
func (s *Service) SubmitResponses(id, actorID int64, isAdmin bool, dto SubmitResponsesDTO) (*SubmitResult, error) {
	ins, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && ins.UserID != actorID {
		return nil, internal.ErrNotOwner
	}

	fields, err := s.schema.ListFields(ins.EventID)
	if err != nil {
		return nil, err
	}
	fieldsByID := make(map[int64]*formschema.FormField, len(fields))
	for _, f := range fields {
		fieldsByID[f.ID] = f
	}

	result := &SubmitResult{}
	for _, entry := range dto.Responses {
		outcome := ResponseOutcome{FieldID: entry.FieldID, Status: "ok"}

		if _, ok := fieldsByID[entry.FieldID]; !ok {
			outcome.Status = "failed"
			outcome.Error = "field does not belong to this inscription's event"
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}

		if err := s.upsertResponse(ins.ID, entry); err != nil {
			s.logger.Error("response upsert failed", "error", err, "inscription_id", id, "field_id", entry.FieldID)
			outcome.Status = "failed"
			outcome.Error = err.Error()
		}
		result.Outcomes = append(result.Outcomes, outcome)
	}

	return result, nil
}

// CancelInscription deletes the registration and, by cascade, its responses,
// so the user can register again later.
func (s *Service) CancelInscription(id, actorID int64, isAdmin bool) error {
	ins, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if !isAdmin && ins.UserID != actorID {
		return internal.ErrNotOwner
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete inscription", "error", err, "inscription_id", id)
		return err
	}

	s.logger.Info("inscription cancelled", "inscription_id", id, "user_id", ins.UserID, "event_id", ins.EventID)
	return nil
}

func (s *Service) upsertResponse(inscriptionID int64, entry ResponseEntryDTO) error {
	existing, err := s.repo.GetResponse(inscriptionID, entry.FieldID)
	if err == nil && existing != nil {
		existing.ResponseText = entry.ResponseText
		existing.ResponseFilePath = entry.ResponseFilePath
		return s.repo.UpdateResponse(existing)
	}

	return s.repo.CreateResponse(&FieldResponse{
		InscriptionID:    inscriptionID,
		FormFieldID:      entry.FieldID,
		ResponseText:     entry.ResponseText,
		ResponseFilePath: entry.ResponseFilePath,
	})
}

type answer struct {
	text string
	file *multipart.FileHeader
}
