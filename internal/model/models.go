package model

import (
	"encoding/json"
	"time"
)

type Topic struct {
	ID           string     `json:"id"`
	StudentEmail string     `json:"estudianteEmail"`
	Title        string     `json:"titulo"`
	Description  string     `json:"descripcion"`
	RegisteredAt time.Time  `json:"fechaRegistro"`
	Approved     bool       `json:"aprobado"`
	Observations string     `json:"observaciones,omitempty"`
	ReviewedAt   *time.Time `json:"fechaRevision,omitempty"`
}

type UpdateTopicInput struct {
	Title        *string
	Description  *string
	Approved     *bool
	Observations *string
	ReviewedAt   *time.Time
}

func (in *UpdateTopicInput) Apply(t Topic) Topic {
	if in == nil {
		return t
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Approved != nil {
		t.Approved = *in.Approved
	}
	if in.Observations != nil {
		t.Observations = *in.Observations
	}
	if in.ReviewedAt != nil {
		reviewed := *in.ReviewedAt
		t.ReviewedAt = &reviewed
	}
	return t
}

type File struct {
	ID           string    `json:"id"`
	Name         string    `json:"nombre"`
	MimeType     string    `json:"tipo"`
	Size         int64     `json:"tamaño"`
	Content      string    `json:"contenido"`
	StudentEmail string    `json:"estudianteEmail"`
	UploadedAt   time.Time `json:"fechaSubida"`
}

type UpdateFileInput struct {
	Name       *string
	MimeType   *string
	Size       *int64
	Content    *string
	UploadedAt *time.Time
}

func (in *UpdateFileInput) Apply(f File) File {
	if in == nil {
		return f
	}
	if in.Name != nil {
		f.Name = *in.Name
	}
	if in.MimeType != nil {
		f.MimeType = *in.MimeType
	}
	if in.Size != nil {
		f.Size = *in.Size
	}
	if in.Content != nil {
		f.Content = *in.Content
	}
	if in.UploadedAt != nil {
		f.UploadedAt = *in.UploadedAt
	}
	return f
}

type Assignment struct {
	ID               string    `json:"id"`
	StudentEmail     string    `json:"estudianteEmail"`
	TutorEmail       string    `json:"tutorEmail"`
	CoordinatorEmail string    `json:"coordinadorEmail"`
	AssignedAt       time.Time `json:"fechaAsignacion"`
}

// Notification types written by the store and the workflows.
const (
	NotificationNewUser       = "NUEVO_USUARIO"
	NotificationNewRequest    = "NUEVA_SOLICITUD"
	NotificationAccepted      = "TUTORIA_ACEPTADA"
	NotificationRejected      = "TUTORIA_RECHAZADA"
	NotificationCompleted     = "TUTORIA_COMPLETADA"
	NotificationNewTopic      = "NUEVO_TEMA"
	NotificationTopicApproved = "TEMA_APROBADO"
	NotificationTopicRejected = "TEMA_RECHAZADO"
	NotificationFileUploaded  = "ARCHIVO_SUBIDO"
	NotificationFileUpdated   = "ARCHIVO_ACTUALIZADO"
	NotificationTutorAssigned = "TUTOR_ASIGNADO"
	NotificationTutorMessage  = "MENSAJE_TUTOR"
)

type Notification struct {
	ID        string          `json:"id"`
	UserEmail string          `json:"usuarioEmail"`
	Type      string          `json:"tipo"`
	Message   string          `json:"mensaje"`
	Payload   json.RawMessage `json:"datos,omitempty"`
	Read      bool            `json:"leida"`
	CreatedAt time.Time       `json:"fecha"`
}

type Stats struct {
	TotalUsers        int            `json:"totalUsers"`
	TotalStudents     int            `json:"totalStudents"`
	TotalTutors       int            `json:"totalTutors"`
	TotalCoordinators int            `json:"totalCoordinators"`
	TotalSessions     int            `json:"totalTutorias"`
	CompletedSessions int            `json:"completedTutorias"`
	TotalTopics       int            `json:"totalThemes"`
	TotalFiles        int            `json:"totalFiles"`
	FacultiesActivity map[string]int `json:"facultiesActivity"`
}
