package model

type RegisterInput struct {
	Names                string `json:"nombres"`
	Surnames             string `json:"apellidos"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"confirmarPassword"`
	Faculty              string `json:"facultad"`
	Major                string `json:"carrera"`
	Specialty            string `json:"especialidad"`
	SecurityQuestion     string `json:"preguntaSeguridad"`
	SecurityAnswer       string `json:"respuestaSeguridad"`
}

type ResetPasswordInput struct {
	Email                string `json:"email"`
	SecurityAnswer       string `json:"respuestaSeguridad"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"confirmarPassword"`
}

type AssignTutorInput struct {
	StudentEmail string `json:"estudianteEmail"`
	TutorEmail   string `json:"tutorEmail"`
}

type RequestSessionInput struct {
	Date        string `json:"fecha"`
	Time        string `json:"hora"`
	Subject     string `json:"asunto"`
	Description string `json:"descripcion"`
}

type CompleteSessionInput struct {
	Grade        string `json:"calificacion"`
	Observations string `json:"observaciones"`
}

type SubmitTopicInput struct {
	Title       string `json:"titulo"`
	Description string `json:"descripcion"`
}

type ReviewTopicInput struct {
	Approved     bool   `json:"aprobado"`
	Observations string `json:"observaciones"`
}

type SendMessageInput struct {
	StudentEmail string `json:"estudianteEmail"`
	Message      string `json:"mensaje"`
}

// UserFilter narrows user listings; empty fields match everything.
type UserFilter struct {
	Faculty string
	Role    Role
}

func (f UserFilter) Match(u *User) bool {
	if f.Faculty != "" && u.Faculty() != f.Faculty {
		return false
	}
	return f.Role == "" || u.Role() == f.Role
}
