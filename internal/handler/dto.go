package handler

import (
	"time"

	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

// userResponse is the public view of a user: no password and no security
// answer.
type userResponse struct {
	ID               string     `json:"id"`
	Names            string     `json:"nombres"`
	Surnames         string     `json:"apellidos"`
	Email            string     `json:"email"`
	Role             model.Role `json:"rol"`
	Faculty          string     `json:"facultad"`
	Major            string     `json:"carrera,omitempty"`
	Specialty        string     `json:"especialidad,omitempty"`
	SecurityQuestion string     `json:"preguntaSeguridad,omitempty"`
	RegisteredAt     time.Time  `json:"fechaRegistro"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:               u.ID,
		Names:            u.Names,
		Surnames:         u.Surnames,
		Email:            u.Email,
		Role:             u.Role(),
		Faculty:          u.Faculty(),
		Major:            u.Major(),
		Specialty:        u.Specialty(),
		SecurityQuestion: u.SecurityQuestion,
		RegisteredAt:     u.RegisteredAt,
	}
}

func toUserResponses(users []model.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

// fileResponse leaves the content out; it is served by the download route.
type fileResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"nombre"`
	MimeType     string    `json:"tipo"`
	Size         int64     `json:"tamaño"`
	StudentEmail string    `json:"estudianteEmail"`
	UploadedAt   time.Time `json:"fechaSubida"`
}

func toFileResponse(f *model.File) fileResponse {
	return fileResponse{
		ID:           f.ID,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Size:         f.Size,
		StudentEmail: f.StudentEmail,
		UploadedAt:   f.UploadedAt,
	}
}

func toFileResponses(files []model.File) []fileResponse {
	out := make([]fileResponse, 0, len(files))
	for i := range files {
		out = append(out, toFileResponse(&files[i]))
	}
	return out
}

type updateUserRequest struct {
	Names            *string `json:"nombres"`
	Surnames         *string `json:"apellidos"`
	Password         *string `json:"password"`
	Faculty          *string `json:"facultad"`
	Major            *string `json:"carrera"`
	Specialty        *string `json:"especialidad"`
	SecurityQuestion *string `json:"preguntaSeguridad"`
	SecurityAnswer   *string `json:"respuestaSeguridad"`
}

func (r *updateUserRequest) input() *model.UpdateUserInput {
	return &model.UpdateUserInput{
		Names:            r.Names,
		Surnames:         r.Surnames,
		Password:         r.Password,
		Faculty:          r.Faculty,
		Major:            r.Major,
		Specialty:        r.Specialty,
		SecurityQuestion: r.SecurityQuestion,
		SecurityAnswer:   r.SecurityAnswer,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      userResponse `json:"user"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type rejectRequest struct {
	Reason string `json:"motivo"`
}
