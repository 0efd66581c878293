package types

import (
	"encoding/json"
	"time"
)

// Resume is an uploaded resume and the text and skills the backend parsed from it.
type Resume struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	File       string    `json:"file,omitempty"` // empty once the upload has been processed
	UploadedAt time.Time `json:"uploaded_at"`
	ParsedText string    `json:"parsed_text,omitempty"`
	Skills     []string  `json:"skills"`
	UserID     int       `json:"user_id,omitempty"`
}

func (r *Resume) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID              flexInt  `json:"id"`
		Name            string   `json:"name"`
		File            *string  `json:"file"`
		UploadedAt      *string  `json:"uploaded_at"`
		UploadedAtCamel *string  `json:"uploadedAt"`
		ParsedText      *string  `json:"parsed_text"`
		ParsedTextCamel *string  `json:"parsedText"`
		Skills          flexList `json:"skills"`
		UserID          *flexInt `json:"user_id"`
		UserIDCamel     *flexInt `json:"userId"`
		User            *flexInt `json:"user"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = Resume{
		ID:         int(raw.ID),
		Name:       raw.Name,
		File:       first(raw.File),
		UploadedAt: parseTime(first(raw.UploadedAt, raw.UploadedAtCamel)),
		ParsedText: first(raw.ParsedText, raw.ParsedTextCamel),
		Skills:     []string(raw.Skills),
		UserID:     int(first(raw.UserID, raw.UserIDCamel, raw.User)),
	}
	return nil
}
