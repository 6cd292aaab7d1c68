package model

import (
	"fmt"
	"time"

	"github.com/EuclidesAnchundia/Tutorias/internal/errdefs"
)

type SessionStatus string

const (
	SessionPending   SessionStatus = "pendiente"
	SessionAccepted  SessionStatus = "aceptada"
	SessionRejected  SessionStatus = "rechazada"
	SessionCompleted SessionStatus = "completada"
)

func (s SessionStatus) String() string {
	return string(s)
}

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionPending, SessionAccepted, SessionRejected, SessionCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no action can leave s.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionRejected || s == SessionCompleted
}

type SessionAction string

const (
	ActionAccept   SessionAction = "accept"
	ActionReject   SessionAction = "reject"
	ActionComplete SessionAction = "complete"
)

func (a SessionAction) String() string {
	return string(a)
}

func (a SessionAction) IsValid() bool {
	return a == ActionAccept || a == ActionReject || a == ActionComplete
}

var sessionTransitions = map[SessionStatus]map[SessionAction]SessionStatus{
	SessionPending: {
		ActionAccept:   SessionAccepted,
		ActionReject:   SessionRejected,
		ActionComplete: SessionCompleted,
	},
	SessionAccepted: {
		ActionComplete: SessionCompleted,
	},
}

// NextSessionStatus is the only way a session changes state. Pairs outside
// the table, including re-entering the current state, are rejected.
func NextSessionStatus(current SessionStatus, action SessionAction) (SessionStatus, error) {
	if !action.IsValid() {
		return current, fmt.Errorf("unknown action %q: %w", action, errdefs.ErrValidation)
	}
	next, ok := sessionTransitions[current][action]
	if !ok {
		return current, fmt.Errorf("cannot %s a session that is %s: %w", action, current, errdefs.ErrInvalidTransition)
	}
	return next, nil
}

type TutoringSession struct {
	ID              string        `json:"id"`
	StudentEmail    string        `json:"estudianteEmail"`
	TutorEmail      string        `json:"tutorEmail"`
	Date            string        `json:"fecha"`
	Time            string        `json:"hora"`
	Subject         string        `json:"asunto"`
	Description     string        `json:"descripcion,omitempty"`
	Status          SessionStatus `json:"estado"`
	RequestedAt     time.Time     `json:"fechaSolicitud"`
	Observations    string        `json:"observaciones,omitempty"`
	Grade           string        `json:"calificacion,omitempty"`
	RejectionReason string        `json:"motivoRechazo,omitempty"`
}

// UpdateSessionInput never carries a status; see NextSessionStatus.
type UpdateSessionInput struct {
	Date         *string
	Time         *string
	Subject      *string
	Description  *string
	Observations *string
	Grade        *string
}

func (in *UpdateSessionInput) Apply(s TutoringSession) TutoringSession {
	if in == nil {
		return s
	}
	if in.Date != nil {
		s.Date = *in.Date
	}
	if in.Time != nil {
		s.Time = *in.Time
	}
	if in.Subject != nil {
		s.Subject = *in.Subject
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.Observations != nil {
		s.Observations = *in.Observations
	}
	if in.Grade != nil {
		s.Grade = *in.Grade
	}
	return s
}

// TransitionInput holds the fields recorded alongside a state change.
type TransitionInput struct {
	Observations    *string
	Grade           *string
	RejectionReason *string
}

func (in *TransitionInput) Apply(s TutoringSession) TutoringSession {
	if in == nil {
		return s
	}
	if in.Observations != nil {
		s.Observations = *in.Observations
	}
	if in.Grade != nil {
		s.Grade = *in.Grade
	}
	if in.RejectionReason != nil {
		s.RejectionReason = *in.RejectionReason
	}
	return s
}
