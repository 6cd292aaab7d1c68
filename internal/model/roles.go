package model

import "strings"

type Role string

const (
	RoleStudent       Role = "estudiante"
	RoleTutor         Role = "tutor"
	RoleCoordinator   Role = "coordinador"
	RoleAdministrator Role = "administrador"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleCoordinator, RoleAdministrator:
		return true
	}
	return false
}

// Roles lists every role in email-domain table order.
var Roles = []Role{RoleStudent, RoleTutor, RoleCoordinator, RoleAdministrator}

type emailDomain struct {
	role   Role
	suffix string
}

// emailDomains is checked in order and the first suffix match wins. The
// leading '@' keeps "x@coordtit.uleam.edu.ec" from matching the tutor row.
var emailDomains = []emailDomain{
	{RoleStudent, "@live.uleam.edu.ec"},
	{RoleTutor, "@uleam.edu.ec"},
	{RoleCoordinator, "@coordtit.uleam.edu.ec"},
	{RoleAdministrator, "@admin.uleam.edu.ec"},
}

// ClassifyEmail maps an institutional email to its role.
func ClassifyEmail(email string) (Role, bool) {
	for _, d := range emailDomains {
		if strings.HasSuffix(email, d.suffix) {
			return d.role, true
		}
	}
	return "", false
}

// EmailDomain returns the suffix registered for role.
func EmailDomain(role Role) (string, bool) {
	for _, d := range emailDomains {
		if d.role == role {
			return d.suffix, true
		}
	}
	return "", false
}
