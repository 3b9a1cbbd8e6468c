package client

import (
	"errors"
	"strings"

	"github.com/SaifHossain4/student-feedback-dashboard/internal/domain"
)

const defaultRating = 5

// Form holds the submission inputs.
type Form struct {
	Rating  int
	Comment string
}

// EditState is the single edit slot: at most one row is edited at a time.
type EditState struct {
	Active  bool
	ID      uint64
	Rating  int
	Comment string
}

// Session is the client's in-memory view of the feedback board: the last
// fetched list, the submission form, the edit slot, and the last error
// message. It never updates Items optimistically; every mutation is
// followed by a full reload, so Items mirror the store as of the last
// successful Load.
type Session struct {
	api *Client

	Items  []domain.Feedback
	Form   Form
	Edit   EditState
	ErrMsg string
}

func NewSession(api *Client) *Session {
	return &Session{
		api:  api,
		Form: Form{Rating: defaultRating},
		Edit: EditState{Rating: defaultRating},
	}
}

// Load replaces Items with the server's list. On failure the previous
// Items are kept and the error is surfaced.
func (s *Session) Load() {
	s.ErrMsg = ""
	items, err := s.api.List()
	if err != nil {
		s.ErrMsg = "Failed to load feedback."
		return
	}
	s.Items = items
}

// Submit posts the form. An empty comment never reaches the server; on
// success the form resets to defaults and the list reloads.
func (s *Session) Submit() {
	s.ErrMsg = ""

	if strings.TrimSpace(s.Form.Comment) == "" {
		s.ErrMsg = "Please write a comment."
		return
	}

	if _, err := s.api.Create(s.Form.Rating, s.Form.Comment); err != nil {
		s.ErrMsg = "Failed to submit feedback."
		return
	}

	s.Form = Form{Rating: defaultRating}
	s.Load()
}

// StartEdit copies the listed row's fields into the edit slot.
func (s *Session) StartEdit(id uint64) {
	s.ErrMsg = ""
	for _, item := range s.Items {
		if item.ID == id {
			s.Edit = EditState{Active: true, ID: id, Rating: item.Rating, Comment: item.Comment}
			return
		}
	}
	s.ErrMsg = "Feedback not found."
}

// CancelEdit discards the edit slot and returns its fields to defaults.
func (s *Session) CancelEdit() {
	s.Edit = EditState{Rating: defaultRating}
}

// SaveEdit puts the edited fields. On failure the edit slot stays active
// with the typed input intact, and the server's message is shown when it
// sent one.
func (s *Session) SaveEdit() {
	s.ErrMsg = ""

	if !s.Edit.Active {
		return
	}

	if strings.TrimSpace(s.Edit.Comment) == "" {
		s.ErrMsg = "Comment is required."
		return
	}

	if _, err := s.api.Update(s.Edit.ID, s.Edit.Rating, s.Edit.Comment); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			s.ErrMsg = apiErr.Message
		} else {
			s.ErrMsg = "Failed to update feedback."
		}
		return
	}

	s.CancelEdit()
	s.Load()
}

// Delete removes the row and reloads regardless of outcome. Deleting the
// row currently in the edit slot exits edit mode.
func (s *Session) Delete(id uint64) {
	s.ErrMsg = ""

	_ = s.api.Delete(id)

	if s.Edit.Active && s.Edit.ID == id {
		s.CancelEdit()
	}
	s.Load()
}

// Refresh re-issues the load, for the manual refresh control.
func (s *Session) Refresh() {
	s.Load()
}
