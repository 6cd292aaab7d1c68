package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// AdministratorFaculty is assigned to administrators at registration.
const AdministratorFaculty = "Sistema"

// Profile carries the role-specific part of a user. Exactly one variant
// exists per role, so a tutor always has a specialty and never a major.
type Profile interface {
	Role() Role
	FacultyName() string
}

type StudentProfile struct {
	Faculty string
	Major   string
}

func (StudentProfile) Role() Role { return RoleStudent }
func (p StudentProfile) FacultyName() string { return p.Faculty }

type TutorProfile struct {
	Faculty   string
	Specialty string
}

func (TutorProfile) Role() Role { return RoleTutor }
func (p TutorProfile) FacultyName() string { return p.Faculty }

type CoordinatorProfile struct {
	Faculty string
}

func (CoordinatorProfile) Role() Role { return RoleCoordinator }
func (p CoordinatorProfile) FacultyName() string { return p.Faculty }

type AdministratorProfile struct {
	Faculty string
}

func (AdministratorProfile) Role() Role { return RoleAdministrator }
func (p AdministratorProfile) FacultyName() string { return p.Faculty }

// NewProfile builds the variant for role. Fields that do not belong to the
// role are ignored.
func NewProfile(role Role, faculty, major, specialty string) (Profile, error) {
	switch role {
	case RoleStudent:
		return StudentProfile{Faculty: faculty, Major: major}, nil
	case RoleTutor:
		return TutorProfile{Faculty: faculty, Specialty: specialty}, nil
	case RoleCoordinator:
		return CoordinatorProfile{Faculty: faculty}, nil
	case RoleAdministrator:
		return AdministratorProfile{Faculty: faculty}, nil
	}
	return nil, fmt.Errorf("unknown role %q", role)
}

type User struct {
	ID               string
	Names            string
	Surnames         string
	Email            string
	Password         string
	Profile          Profile
	SecurityQuestion string
	SecurityAnswer   string
	RegisteredAt     time.Time
}

func (u *User) Role() Role {
	if u.Profile == nil {
		return ""
	}
	return u.Profile.Role()
}

func (u *User) Faculty() string {
	if u.Profile == nil {
		return ""
	}
	return u.Profile.FacultyName()
}

func (u *User) FullName() string {
	return u.Names + " " + u.Surnames
}

// Major is empty for anyone but students.
func (u *User) Major() string {
	if p, ok := u.Profile.(StudentProfile); ok {
		return p.Major
	}
	return ""
}

// Specialty is empty for anyone but tutors.
func (u *User) Specialty() string {
	if p, ok := u.Profile.(TutorProfile); ok {
		return p.Specialty
	}
	return ""
}

// userRecord is the flat persisted shape shared with the browser storage layout.
type userRecord struct {
	ID               string    `json:"id"`
	Names            string    `json:"nombres"`
	Surnames         string    `json:"apellidos"`
	Email            string    `json:"email"`
	Password         string    `json:"password"`
	Role             Role      `json:"rol"`
	Faculty          string    `json:"facultad,omitempty"`
	Major            string    `json:"carrera,omitempty"`
	Specialty        string    `json:"especialidad,omitempty"`
	SecurityQuestion string    `json:"preguntaSeguridad"`
	SecurityAnswer   string    `json:"respuestaSeguridad"`
	RegisteredAt     time.Time `json:"fechaRegistro"`
}

func (u User) MarshalJSON() ([]byte, error) {
	if u.Profile == nil {
		return nil, fmt.Errorf("user %q has no profile", u.Email)
	}
	return json.Marshal(userRecord{
		ID:               u.ID,
		Names:            u.Names,
		Surnames:         u.Surnames,
		Email:            u.Email,
		Password:         u.Password,
		Role:             u.Role(),
		Faculty:          u.Faculty(),
		Major:            u.Major(),
		Specialty:        u.Specialty(),
		SecurityQuestion: u.SecurityQuestion,
		SecurityAnswer:   u.SecurityAnswer,
		RegisteredAt:     u.RegisteredAt,
	})
}

func (u *User) UnmarshalJSON(data []byte) error {
	var rec userRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	profile, err := NewProfile(rec.Role, rec.Faculty, rec.Major, rec.Specialty)
	if err != nil {
		return err
	}
	*u = User{
		ID:               rec.ID,
		Names:            rec.Names,
		Surnames:         rec.Surnames,
		Email:            rec.Email,
		Password:         rec.Password,
		Profile:          profile,
		SecurityQuestion: rec.SecurityQuestion,
		SecurityAnswer:   rec.SecurityAnswer,
		RegisteredAt:     rec.RegisteredAt,
	}
	return nil
}

// UpdateUserInput merges into a user; nil fields are left untouched. Major
// and Specialty only apply to the matching profile variant.
type UpdateUserInput struct {
	Names            *string
	Surnames         *string
	Password         *string
	Faculty          *string
	Major            *string
	Specialty        *string
	SecurityQuestion *string
	SecurityAnswer   *string
}

func (in *UpdateUserInput) Empty() bool {
	return in == nil || (in.Names == nil && in.Surnames == nil && in.Password == nil &&
		in.Faculty == nil && in.Major == nil && in.Specialty == nil &&
		in.SecurityQuestion == nil && in.SecurityAnswer == nil)
}

// Apply returns a copy of u with the input merged.
func (in *UpdateUserInput) Apply(u User) User {
	if in == nil {
		return u
	}
	if in.Names != nil {
		u.Names = *in.Names
	}
	if in.Surnames != nil {
		u.Surnames = *in.Surnames
	}
	if in.Password != nil {
		u.Password = *in.Password
	}
	if in.SecurityQuestion != nil {
		u.SecurityQuestion = *in.SecurityQuestion
	}
	if in.SecurityAnswer != nil {
		u.SecurityAnswer = *in.SecurityAnswer
	}

	switch p := u.Profile.(type) {
	case StudentProfile:
		if in.Faculty != nil {
			p.Faculty = *in.Faculty
		}
		if in.Major != nil {
			p.Major = *in.Major
		}
		u.Profile = p
	case TutorProfile:
		if in.Faculty != nil {
			p.Faculty = *in.Faculty
		}
		if in.Specialty != nil {
			p.Specialty = *in.Specialty
		}
		u.Profile = p
	case CoordinatorProfile:
		if in.Faculty != nil {
			p.Faculty = *in.Faculty
		}
		u.Profile = p
	case AdministratorProfile:
		if in.Faculty != nil {
			p.Faculty = *in.Faculty
		}
		u.Profile = p
	}
	return u
}
