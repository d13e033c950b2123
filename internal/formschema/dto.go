package formschema

import "strings"

// FieldDefinitionDTO is one incoming field definition. The type may be named
// by id or by name; the array position of the definition, not any client
// value, decides the stored sequence.
type FieldDefinitionDTO struct {
	FieldTypeID       int64       `json:"field_type_id,omitempty"`
	FieldType         string      `json:"field_type,omitempty"`
	Label             string      `json:"label"`
	Required          bool        `json:"required"`
	AcceptedFileTypes string      `json:"accepted_file_types,omitempty"`
	Options           []OptionDTO `json:"options,omitempty"`
}

// OptionDTO is one incoming option value with its pre-selection flag.
type OptionDTO struct {
	Value     string `json:"value"`
	IsDefault bool   `json:"is_default,omitempty"`
}

// CleanOptions returns the trimmed options, dropping empty values.
func (d FieldDefinitionDTO) CleanOptions() []Option {
	out := make([]Option, 0, len(d.Options))
	for _, o := range d.Options {
		v := strings.TrimSpace(o.Value)
		if v != "" {
			out = append(out, Option{Value: v, IsDefault: o.IsDefault})
		}
	}
	return out
}

type ReplaceFieldsDTO struct {
	Fields []FieldDefinitionDTO `json:"fields"`
}

// UpdateFieldDTO patches a single field. Supplying Options replaces the
// field's option set wholesale.
type UpdateFieldDTO struct {
	FieldTypeID       *int64       `json:"field_type_id,omitempty"`
	FieldType         *string      `json:"field_type,omitempty"`
	Label             *string      `json:"label,omitempty"`
	Required          *bool        `json:"required,omitempty"`
	AcceptedFileTypes *string      `json:"accepted_file_types,omitempty"`
	Options           *[]OptionDTO `json:"options,omitempty"`
}
