package inscription

import (
	"mime/multipart"
	"strconv"
	"strings"
)

const fieldKeyPrefix = "field_"

// CreateInscriptionDTO holds the per-field answers extracted from a multipart
// registration request: text values and uploaded files keyed by form field id.
type CreateInscriptionDTO struct {
	TextValues map[int64]string
	Files      map[int64]*multipart.FileHeader
	// SkippedKeys are request keys that looked like field answers but did
	// not parse; they are reported, not fatal.
	SkippedKeys []string
}

// ParseFieldKey extracts the form field id from a "field_<id>" request key.
func ParseFieldKey(key string) (int64, bool) {
	if !strings.HasPrefix(key, fieldKeyPrefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(key, fieldKeyPrefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ResponseEntryDTO is one entry of a batch response submission.
type ResponseEntryDTO struct {
	FieldID          int64  `json:"id_field"`
	ResponseText     string `json:"response_text,omitempty"`
	ResponseFilePath string `json:"response_file_path,omitempty"`
}

type SubmitResponsesDTO struct {
	Responses []ResponseEntryDTO `json:"responses"`
}

// ResponseOutcome reports the fate of one submitted entry.
type ResponseOutcome struct {
	FieldID int64  `json:"id_field"`
	Status  string `json:"status"` // "ok" or "failed"
	Error   string `json:"error,omitempty"`
}

type SubmitResult struct {
	Outcomes []ResponseOutcome `json:"responses"`
}

// AllSucceeded reports whether every entry went through.
func (r SubmitResult) AllSucceeded() bool {
	for _, o := range r.Outcomes {
		if o.Status != "ok" {
			return false
		}
	}
	return true
}

// CreateResult is the creation response body: the inscription plus anything
// that was skipped or failed along the way.
type CreateResult struct {
	Inscription *Inscription `json:"inscription"`
	Warnings    []string     `json:"warnings,omitempty"`
}
