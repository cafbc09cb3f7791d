package models

import "encoding/json"

// Report is either a contact message or a content report. Besides id and created_at every
// field is free-form: the named ones are what the frontend sends today and Extra carries
// anything else the client posted.
type Report struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Type      string `json:"type,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Message   string `json:"message,omitempty"`
	BookID    string `json:"book_id,omitempty"`
	UserID    string `json:"user_id,omitempty"`
	Reason    string `json:"reason,omitempty"`

	Extra map[string]any `json:"-"`
}

// reportKeys are the keys Report and ReportInput decode into named fields.
var reportKeys = []string{"id", "created_at", "type", "name", "email", "subject", "message", "book_id", "user_id", "reason"}

type reportFields Report

func (r Report) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(reportFields(r), r.Extra)
}

func (r *Report) UnmarshalJSON(data []byte) error {
	var f reportFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := extraKeys(data, reportKeys)
	if err != nil {
		return err
	}
	*r = Report(f)
	r.Extra = extra
	return nil
}

type ReportInput struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Email   string `json:"email" validate:"omitempty,email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	BookID  string `json:"book_id"`
	UserID  string `json:"user_id"`
	Reason  string `json:"reason"`

	// Extra is every other posted key. id and created_at are never taken from the client.
	Extra map[string]any `json:"-"`
}

type reportInputFields ReportInput

func (in ReportInput) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(reportInputFields(in), in.Extra)
}

func (in *ReportInput) UnmarshalJSON(data []byte) error {
	var f reportInputFields
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	extra, err := extraKeys(data, reportKeys)
	if err != nil {
		return err
	}
	*in = ReportInput(f)
	in.Extra = extra
	return nil
}

func (in ReportInput) NewReport(id, createdAt string) Report {
	return Report{
		ID:        id,
		CreatedAt: createdAt,
		Type:      in.Type,
		Name:      in.Name,
		Email:     in.Email,
		Subject:   in.Subject,
		Message:   in.Message,
		BookID:    in.BookID,
		UserID:    in.UserID,
		Reason:    in.Reason,
		Extra:     in.Extra,
	}
}

// extraKeys returns the members of the JSON object data whose keys are not in known, or nil
// when there are none.
func extraKeys(data []byte, known []string) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// marshalWithExtra encodes fields and merges extra into the same object. Named fields win.
func marshalWithExtra(fields any, extra map[string]any) ([]byte, error) {
	raw, err := json.Marshal(fields)
	if err != nil || len(extra) == 0 {
		return raw, err
	}
	merged := make(map[string]any, len(extra)+len(reportKeys))
	for k, v := range extra {
		merged[k] = v
	}
	var named map[string]json.RawMessage
	if err := json.Unmarshal(raw, &named); err != nil {
		return nil, err
	}
	for k, v := range named {
		merged[k] = v
	}
	return json.Marshal(merged)
}
