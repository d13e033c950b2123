package formschema

// Field type names. Options are only meaningful for checkbox and radio;
// accepted file types only for file.
const (
	TypeText     = "text"
	TypeNumber   = "number"
	TypeFile     = "file"
	TypeDate     = "date"
	TypeCheckbox = "checkbox"
	TypeRadio    = "radio"
)

type FieldType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (t FieldType) HasOptions() bool {
	return t.Name == TypeCheckbox || t.Name == TypeRadio
}

func (t FieldType) IsFile() bool {
	return t.Name == TypeFile
}

// Option is one selectable value of a checkbox or radio field. Flagged
// options are pre-selected when the form is rendered.
type Option struct {
	Value     string `json:"value"`
	IsDefault bool   `json:"is_default"`
}

type FormField struct {
	ID                int64     `json:"id"`
	EventID           int64     `json:"event_id"`
	Label             string    `json:"label"`
	Required          bool      `json:"required"`
	Sequence          int       `json:"sequence"`
	AcceptedFileTypes string    `json:"accepted_file_types,omitempty"`
	FieldType         FieldType `json:"field_type"`
	Options           []Option  `json:"options"`
}

