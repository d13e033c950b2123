package formschema_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mfauzanap/event-registration/internal"
	"github.com/mfauzanap/event-registration/internal/formschema"
)

func TestFormSchema(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "FormSchema Suite")
}

type mockSchemaRepository struct {
	types        map[string]formschema.FieldType
	fields       map[int64][]*formschema.FormField
	eventIDs     map[int64]bool
	replaceError error
	nextID       int64
}

func newMockSchemaRepository() *mockSchemaRepository {
	m := &mockSchemaRepository{
		types:    make(map[string]formschema.FieldType),
		fields:   make(map[int64][]*formschema.FormField),
		eventIDs: map[int64]bool{1: true},
		nextID:   1,
	}
	for i, name := range []string{
		formschema.TypeText,
		formschema.TypeNumber,
		formschema.TypeFile,
		formschema.TypeDate,
		formschema.TypeCheckbox,
		formschema.TypeRadio,
	} {
		m.types[name] = formschema.FieldType{ID: int64(i + 1), Name: name}
	}
	return m
}

func (m *mockSchemaRepository) ListFieldTypes() ([]formschema.FieldType, error) {
	out := make([]formschema.FieldType, 0, len(m.types))
	for _, t := range m.types {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockSchemaRepository) GetFieldType(id int64, name string) (*formschema.FieldType, error) {
	for _, t := range m.types {
		if (id > 0 && t.ID == id) || (name != "" && t.Name == name) {
			copied := t
			return &copied, nil
		}
	}
	return nil, errors.New("field type not found")
}

func (m *mockSchemaRepository) EventExists(eventID int64) (bool, error) {
	return m.eventIDs[eventID], nil
}

func (m *mockSchemaRepository) ListByEvent(eventID int64) ([]*formschema.FormField, error) {
	return m.fields[eventID], nil
}

func (m *mockSchemaRepository) ReplaceAll(eventID int64, fields []*formschema.FormField) error {
	if m.replaceError != nil {
		return m.replaceError
	}
	for _, f := range fields {
		f.ID = m.nextID
		m.nextID++
	}
	m.fields[eventID] = fields
	return nil
}

func (m *mockSchemaRepository) CreateField(f *formschema.FormField) error {
	f.ID = m.nextID
	m.nextID++
	m.fields[f.EventID] = append(m.fields[f.EventID], f)
	return nil
}

func (m *mockSchemaRepository) GetFieldByID(id int64) (*formschema.FormField, error) {
	for _, fields := range m.fields {
		for _, f := range fields {
			if f.ID == id {
				return f, nil
			}
		}
	}
	return nil, internal.ErrFieldNotFound
}

func (m *mockSchemaRepository) UpdateField(f *formschema.FormField) error {
	for eventID, fields := range m.fields {
		for i, existing := range fields {
			if existing.ID == f.ID {
				m.fields[eventID][i] = f
				return nil
			}
		}
	}
	return internal.ErrFieldNotFound
}

func (m *mockSchemaRepository) DeleteField(id int64) error {
	for eventID, fields := range m.fields {
		for i, f := range fields {
			if f.ID == id {
				m.fields[eventID] = append(fields[:i], fields[i+1:]...)
				return nil
			}
		}
	}
	return internal.ErrFieldNotFound
}

var _ = Describe("SchemaService", func() {
	var (
		svc      *formschema.Service
		mockRepo *mockSchemaRepository
	)

	BeforeEach(func() {
		mockRepo = newMockSchemaRepository()
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = formschema.NewService(mockRepo, lg)
	})

	Describe("ReplaceFields", func() {
		It("assigns sequences from array order", func() {
			fields, err := svc.ReplaceFields(1, formschema.ReplaceFieldsDTO{
				Fields: []formschema.FieldDefinitionDTO{
					{FieldType: formschema.TypeText, Label: "Name"},
					{FieldType: formschema.TypeNumber, Label: "Age"},
					{FieldType: formschema.TypeFile, Label: "CV", AcceptedFileTypes: ".pdf"},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(fields).To(HaveLen(3))
			for i, f := range fields {
				Expect(f.Sequence).To(Equal(i))
			}
			Expect(fields[2].AcceptedFileTypes).To(Equal(".pdf"))
		})

		It("fails whole operation on an unknown type, naming the label", func() {
			_, err := svc.ReplaceFields(1, formschema.ReplaceFieldsDTO{
				Fields: []formschema.FieldDefinitionDTO{
					{FieldType: formschema.TypeText, Label: "Name"},
					{FieldType: "dropdown", Label: "Shirt Size"},
				},
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("Shirt Size"))

			// Nothing was persisted.
			Expect(mockRepo.fields[1]).To(BeEmpty())
		})

		It("keeps options only for checkbox and radio", func() {
			fields, err := svc.ReplaceFields(1, formschema.ReplaceFieldsDTO{
				Fields: []formschema.FieldDefinitionDTO{
					{FieldType: formschema.TypeRadio, Label: "Size", Options: []formschema.OptionDTO{
						{Value: " S "}, {Value: "M", IsDefault: true}, {Value: ""}, {Value: "L"},
					}},
					{FieldType: formschema.TypeText, Label: "Notes", Options: []formschema.OptionDTO{{Value: "ignored"}}},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(fields[0].Options).To(Equal([]formschema.Option{
				{Value: "S"}, {Value: "M", IsDefault: true}, {Value: "L"},
			}))
			Expect(fields[1].Options).To(BeEmpty())
		})

		It("clears accepted file types for non-file fields", func() {
			fields, err := svc.ReplaceFields(1, formschema.ReplaceFieldsDTO{
				Fields: []formschema.FieldDefinitionDTO{
					{FieldType: formschema.TypeText, Label: "Name", AcceptedFileTypes: ".pdf"},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(fields[0].AcceptedFileTypes).To(BeEmpty())
		})

		It("resolves types by id as well as by name", func() {
			textType, err := mockRepo.GetFieldType(0, formschema.TypeText)
			Expect(err).NotTo(HaveOccurred())

			fields, err := svc.ReplaceFields(1, formschema.ReplaceFieldsDTO{
				Fields: []formschema.FieldDefinitionDTO{
					{FieldTypeID: textType.ID, Label: "By ID"},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(fields[0].FieldType.Name).To(Equal(formschema.TypeText))
		})

		It("is a 404 for an unknown event", func() {
			_, err := svc.ReplaceFields(99, formschema.ReplaceFieldsDTO{})
			Expect(errors.Is(err, internal.ErrEventNotFound)).To(BeTrue())
		})
	})

	Describe("CreateField", func() {
		It("appends after the current last sequence", func() {
			_, err := svc.ReplaceFields(1, formschema.ReplaceFieldsDTO{
				Fields: []formschema.FieldDefinitionDTO{
					{FieldType: formschema.TypeText, Label: "Name"},
				},
			})
			Expect(err).NotTo(HaveOccurred())

			created, err := svc.CreateField(1, formschema.FieldDefinitionDTO{
				FieldType: formschema.TypeNumber,
				Label:     "Age",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.Sequence).To(Equal(1))
		})
	})

	Describe("UpdateField", func() {
		var fileField *formschema.FormField

		BeforeEach(func() {
			var err error
			fileField, err = svc.CreateField(1, formschema.FieldDefinitionDTO{
				FieldType:         formschema.TypeFile,
				Label:             "CV",
				AcceptedFileTypes: ".pdf,.docx",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("drops accepted file types when the type stops being file", func() {
			textName := formschema.TypeText
			updated, err := svc.UpdateField(fileField.ID, formschema.UpdateFieldDTO{
				FieldType: &textName,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.FieldType.Name).To(Equal(formschema.TypeText))
			Expect(updated.AcceptedFileTypes).To(BeEmpty())
		})

		It("replaces options wholesale for option types", func() {
			radioName := formschema.TypeRadio
			opts := []formschema.OptionDTO{{Value: "A", IsDefault: true}, {Value: "B"}}
			updated, err := svc.UpdateField(fileField.ID, formschema.UpdateFieldDTO{
				FieldType: &radioName,
				Options:   &opts,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Options).To(Equal([]formschema.Option{
				{Value: "A", IsDefault: true}, {Value: "B"},
			}))
		})

		It("rejects an empty label", func() {
			empty := ""
			_, err := svc.UpdateField(fileField.ID, formschema.UpdateFieldDTO{Label: &empty})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("DeleteField", func() {
		It("is a 404 for a missing field", func() {
			err := svc.DeleteField(999)
			Expect(errors.Is(err, internal.ErrFieldNotFound)).To(BeTrue())
		})
	})
})
