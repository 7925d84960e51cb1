package handler

import (
	"encoding/json"
	"strings"
	"time"
)

// --- Request / Response types ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// errorResponse documents the envelope rendered by api.NewHTTPErrorHandler.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

type profileRequest struct {
	Status         string `json:"status"         validate:"required"`
	Skills         string `json:"skills"         validate:"required"`
	Company        string `json:"company"`
	Website        string `json:"website"        validate:"omitempty,url"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	GitHubUsername string `json:"githubusername"`
	YouTube        string `json:"youtube"        validate:"omitempty,url"`
	Twitter        string `json:"twitter"        validate:"omitempty,url"`
	Facebook       string `json:"facebook"       validate:"omitempty,url"`
	LinkedIn       string `json:"linkedin"       validate:"omitempty,url"`
	Instagram      string `json:"instagram"      validate:"omitempty,url"`
}

type experienceRequest struct {
	Title       string    `json:"title"    validate:"required"`
	Company     string    `json:"company"  validate:"required"`
	Location    string    `json:"location"`
	From        *dateOnly `json:"from"     validate:"required"`
	To          *dateOnly `json:"to"`
	Current     bool      `json:"current"`
	Description string    `json:"description"`
}

type educationRequest struct {
	School       string    `json:"school"       validate:"required"`
	Degree       string    `json:"degree"       validate:"required"`
	FieldOfStudy string    `json:"fieldofstudy" validate:"required"`
	From         *dateOnly `json:"from"         validate:"required"`
	To           *dateOnly `json:"to"`
	Current      bool      `json:"current"`
	Description  string    `json:"description"`
}

type textRequest struct {
	Text string `json:"text" validate:"required"`
}

// dateOnly accepts "2006-01-02" as well as full RFC 3339 timestamps.
type dateOnly struct {
	time.Time
}

func (d *dateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t.UTC()
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	d.Time = t.UTC()
	return nil
}

// timePtr unwraps an optional date.
func (d *dateOnly) timePtr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
