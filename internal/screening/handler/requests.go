package handler

import (
	"strings"

	participant "accreditation/internal/participant/models"
	id "accreditation/pkg/domain"
	dErrors "accreditation/pkg/domain-errors"
	"accreditation/pkg/platform/validation"
)

// ScreeningRequest is the registrant snapshot submitted for screening.
type ScreeningRequest struct {
	ParticipantID string            `json:"participant_id" validate:"required,uuid"`
	FirstName     string            `json:"first_name"`
	LastName      string            `json:"last_name"`
	Email         string            `json:"email" validate:"omitempty,email"`
	Phone         string            `json:"phone"`
	Extras        map[string]string `json:"extras"`
}

func (r *ScreeningRequest) Normalize() {
	if r == nil {
		return
	}
	r.ParticipantID = strings.TrimSpace(r.ParticipantID)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	if len(r.Extras) == 0 {
		return
	}
	extras := make(map[string]string, len(r.Extras))
	for k, v := range r.Extras {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		extras[k] = v
	}
	r.Extras = extras
}

// Validate checks sizes first, then required fields, then formats.
func (r *ScreeningRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if err := validation.CheckStringLength("first_name", r.FirstName, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("last_name", r.LastName, validation.MaxNameLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("email", r.Email, validation.MaxEmailLength); err != nil {
		return err
	}
	if err := validation.CheckStringLength("phone", r.Phone, validation.MaxPhoneLength); err != nil {
		return err
	}
	if err := validation.CheckMapCount("extras", len(r.Extras), validation.MaxExtras); err != nil {
		return err
	}
	if err := validation.CheckEachValueLength("extras", r.Extras, validation.MaxExtraValueLength); err != nil {
		return err
	}
	if r.FirstName == "" && r.LastName == "" && r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "a name or email is required")
	}
	return validation.Validate(r)
}

// ToSnapshot converts a prepared request into the engine's snapshot.
func (r *ScreeningRequest) ToSnapshot() (participant.Snapshot, error) {
	pid, err := id.ParseParticipantID(r.ParticipantID)
	if err != nil {
		return participant.Snapshot{}, dErrors.New(dErrors.CodeBadRequest, "invalid participant id")
	}
	snap := participant.Snapshot{
		ID:        pid,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
	if len(r.Extras) > 0 {
		snap.Extras = make(map[participant.ExtraKey]string, len(r.Extras))
		for k, v := range r.Extras {
			snap.Extras[participant.ExtraKey(k)] = v
		}
	}
	return snap, nil
}
