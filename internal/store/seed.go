package store

import (
	"context"
	"fmt"

	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

// PasswordHasher turns a plaintext password into its stored form.
type PasswordHasher func(password string) (string, error)

const (
	facultyEngineering = "Facultad de Ingeniería, Industria y Arquitectura"
	facultyHealth      = "Facultad de Ciencias de la Salud"
	facultyBusiness    = "Facultad de Ciencias Administrativas, Contables y Comerciales"

	samplePDF = "data:application/pdf;base64,JVBERi0xLjQKJdPr6eEKMSAwIG9iago8PAovVHlwZSAvQ2F0YWxvZwovUGFnZXMgMiAwIFIKPj4KZW5kb2JqCjIgMCBvYmoKPDwKL1R5cGUgL1BhZ2VzCi9LaWRzIFszIDAgUl0KL0NvdW50IDEKPD4KZW5kb2JqCjMgMCBvYmoKPDwKL1R5cGUgL1BhZ2UKL1BhcmVudCAyIDAgUgovTWVkaWFCb3ggWzAgMCA2MTIgNzkyXQovQ29udGVudHMgNCAwIFIKPj4KZW5kb2JqCjQgMCBvYmoKPDwKL0xlbmd0aCA0NAo+PgpzdHJlYW0KQLQKMC4wNzcgMCAwIDEgNTAgNzUwIFRtCi"
)

type seedUser struct {
	names, surnames, email, password string
	profile                          model.Profile
	question, answer                 string
}

var seedUsers = []seedUser{
	{"María", "González", "maria.gonzalez@live.uleam.edu.ec", "estudiante123",
		model.StudentProfile{Faculty: facultyEngineering, Major: "Ingeniería en Sistemas"}, "mascota", "firulais"},
	{"Juan", "Pérez", "juan.perez@live.uleam.edu.ec", "estudiante123",
		model.StudentProfile{Faculty: facultyEngineering, Major: "Ingeniería Civil"}, "ciudad", "portoviejo"},
	{"Ana", "López", "ana.lopez@live.uleam.edu.ec", "estudiante123",
		model.StudentProfile{Faculty: facultyHealth, Major: "Medicina General"}, "escuela", "san jose"},
	{"Carlos", "Mendoza", "carlos.mendoza@live.uleam.edu.ec", "estudiante123",
		model.StudentProfile{Faculty: facultyBusiness, Major: "Administración de Empresas"}, "mascota", "max"},

	{"Dr. Carlos", "Rodríguez", "carlos.rodriguez@uleam.edu.ec", "tutor123",
		model.TutorProfile{Faculty: facultyEngineering, Specialty: "Desarrollo de Software"}, "ciudad", "manta"},
	{"Dra. Patricia", "Silva", "patricia.silva@uleam.edu.ec", "tutor123",
		model.TutorProfile{Faculty: facultyEngineering, Specialty: "Ingeniería Civil"}, "escuela", "uleam"},
	{"Dr. Roberto", "Vásquez", "roberto.vasquez@uleam.edu.ec", "tutor123",
		model.TutorProfile{Faculty: facultyHealth, Specialty: "Medicina Interna"}, "mascota", "toby"},
	{"Mg. Laura", "Morales", "laura.morales@uleam.edu.ec", "tutor123",
		model.TutorProfile{Faculty: facultyBusiness, Specialty: "Gestión Empresarial"}, "ciudad", "chone"},

	{"Dra. Ana", "Martínez", "ana.martinez@coordtit.uleam.edu.ec", "coordinador123",
		model.CoordinatorProfile{Faculty: facultyEngineering}, "escuela", "uleam"},
	{"Dr. Miguel", "Torres", "miguel.torres@coordtit.uleam.edu.ec", "coordinador123",
		model.CoordinatorProfile{Faculty: facultyHealth}, "mascota", "luna"},
	{"Mg. Sandra", "Ramírez", "sandra.ramirez@coordtit.uleam.edu.ec", "coordinador123",
		model.CoordinatorProfile{Faculty: facultyBusiness}, "ciudad", "bahia"},

	{"Admin", "Sistema", "admin@admin.uleam.edu.ec", "admin123",
		model.AdministratorProfile{Faculty: facultyBusiness}, "mascota", "admin"},
	{"Super", "Admin", "superadmin@admin.uleam.edu.ec", "admin123",
		model.AdministratorProfile{Faculty: "Sistemas"}, "escuela", "uleam"},
}

// Seed loads the demo dataset when there are no users yet and reports
// whether it did. hash may be nil to keep plaintext passwords.
func (s *Store) Seed(ctx context.Context, hash PasswordHasher) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.users) > 0 {
		return false, nil
	}
	snap, err := s.demoSnapshotLocked(hash)
	if err != nil {
		return false, err
	}
	if err := s.replaceAllLocked(ctx, snap); err != nil {
		return false, err
	}
	return true, nil
}

// ForceSeed replaces every collection with the demo dataset.
func (s *Store) ForceSeed(ctx context.Context, hash PasswordHasher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.demoSnapshotLocked(hash)
	if err != nil {
		return err
	}
	return s.replaceAllLocked(ctx, snap)
}

func (s *Store) demoSnapshotLocked(hash PasswordHasher) (Snapshot, error) {
	now := s.timestamp()

	users := make([]model.User, 0, len(seedUsers))
	for _, su := range seedUsers {
		password := su.password
		if hash != nil {
			hashed, err := hash(password)
			if err != nil {
				return Snapshot{}, fmt.Errorf("seed %s: %w", su.email, err)
			}
			password = hashed
		}
		users = append(users, model.User{
			ID:               s.newID(),
			Names:            su.names,
			Surnames:         su.surnames,
			Email:            su.email,
			Password:         password,
			Profile:          su.profile,
			SecurityQuestion: su.question,
			SecurityAnswer:   su.answer,
			RegisteredAt:     now,
		})
	}

	topics := []model.Topic{
		{
			StudentEmail: "maria.gonzalez@live.uleam.edu.ec",
			Title:        "Sistema Web para Gestión de Inventarios",
			Description:  "Desarrollo de una aplicación web para el control y gestión de inventarios en pequeñas y medianas empresas, utilizando tecnologías modernas como React y Node.js.",
			Approved:     true,
		},
		{
			StudentEmail: "juan.perez@live.uleam.edu.ec",
			Title:        "Análisis Estructural de Puentes Colgantes",
			Description:  "Estudio del comportamiento estructural de puentes colgantes bajo diferentes cargas y condiciones climáticas, aplicando métodos de elementos finitos.",
			Approved:     false,
		},
		{
			StudentEmail: "ana.lopez@live.uleam.edu.ec",
			Title:        "Prevalencia de Diabetes en Adultos Mayores",
			Description:  "Investigación epidemiológica sobre la prevalencia de diabetes tipo 2 en adultos mayores de 65 años en la provincia de Manabí.",
			Approved:     true,
		},
	}
	for i := range topics {
		topics[i].ID = s.newID()
		topics[i].RegisteredAt = now
	}

	assignments := []model.Assignment{
		{StudentEmail: "maria.gonzalez@live.uleam.edu.ec", TutorEmail: "carlos.rodriguez@uleam.edu.ec", CoordinatorEmail: "ana.martinez@coordtit.uleam.edu.ec"},
		{StudentEmail: "juan.perez@live.uleam.edu.ec", TutorEmail: "patricia.silva@uleam.edu.ec", CoordinatorEmail: "ana.martinez@coordtit.uleam.edu.ec"},
		{StudentEmail: "ana.lopez@live.uleam.edu.ec", TutorEmail: "roberto.vasquez@uleam.edu.ec", CoordinatorEmail: "miguel.torres@coordtit.uleam.edu.ec"},
	}
	for i := range assignments {
		assignments[i].ID = s.newID()
		assignments[i].AssignedAt = now
	}

	sessions := []model.TutoringSession{
		{
			StudentEmail: "maria.gonzalez@live.uleam.edu.ec",
			TutorEmail:   "carlos.rodriguez@uleam.edu.ec",
			Date:         "2024-02-15",
			Time:         "10:00",
			Subject:      "Revisión del Marco Teórico",
			Description:  "Revisión y corrección del marco teórico del proyecto de titulación",
			Status:       model.SessionCompleted,
			Observations: "Excelente trabajo en la investigación bibliográfica",
			Grade:        "Excelente",
		},
		{
			StudentEmail: "maria.gonzalez@live.uleam.edu.ec",
			TutorEmail:   "carlos.rodriguez@uleam.edu.ec",
			Date:         "2024-02-20",
			Time:         "14:00",
			Subject:      "Desarrollo del Prototipo",
			Description:  "Revisión del avance en el desarrollo del sistema web",
			Status:       model.SessionAccepted,
		},
		{
			StudentEmail: "juan.perez@live.uleam.edu.ec",
			TutorEmail:   "patricia.silva@uleam.edu.ec",
			Date:         "2024-02-18",
			Time:         "09:00",
			Subject:      "Metodología de Investigación",
			Description:  "Definición de la metodología para el análisis estructural",
			Status:       model.SessionPending,
		},
		{
			StudentEmail: "ana.lopez@live.uleam.edu.ec",
			TutorEmail:   "roberto.vasquez@uleam.edu.ec",
			Date:         "2024-02-12",
			Time:         "11:00",
			Subject:      "Diseño de la Investigación",
			Description:  "Planificación del estudio epidemiológico",
			Status:       model.SessionCompleted,
			Observations: "Muy buen planteamiento metodológico",
			Grade:        "Muy Bueno",
		},
	}
	for i := range sessions {
		sessions[i].ID = s.newID()
		sessions[i].RequestedAt = now
	}

	files := []model.File{
		{Name: "Marco_Teorico_v1.pdf", Size: 2048576, StudentEmail: "maria.gonzalez@live.uleam.edu.ec",
			Content: samplePDF + "hNYXJjbyBUZcOzcmljbykgVGoKRVQKZW5kc3RyZWFtCmVuZG9iago="},
		{Name: "Capitulo1_Introduccion.pdf", Size: 1536000, StudentEmail: "juan.perez@live.uleam.edu.ec",
			Content: samplePDF + "hJbnRyb2R1Y2Npw7NuKSBUagoKRVQKZW5kc3RyZWFtCmVuZG9iago="},
		{Name: "Metodologia_Investigacion.pdf", Size: 3072000, StudentEmail: "ana.lopez@live.uleam.edu.ec",
			Content: samplePDF + "hNZXRvZG9sb2fDrWEpIFRqCkVUCmVuZHN0cmVhbQplbmRvYmo="},
	}
	for i := range files {
		files[i].ID = s.newID()
		files[i].MimeType = "application/pdf"
		files[i].UploadedAt = now
	}

	notifications := []model.Notification{
		{UserEmail: "maria.gonzalez@live.uleam.edu.ec", Type: model.NotificationCompleted,
			Message: "Tu tutoría 'Revisión del Marco Teórico' ha sido completada"},
		{UserEmail: "maria.gonzalez@live.uleam.edu.ec", Type: model.NotificationAccepted,
			Message: "Tu tutoría 'Desarrollo del Prototipo' ha sido aceptada", Read: true},
		{UserEmail: "carlos.rodriguez@uleam.edu.ec", Type: model.NotificationNewRequest,
			Message: "Nueva solicitud de tutoría: Desarrollo del Prototipo"},
		{UserEmail: "juan.perez@live.uleam.edu.ec", Type: model.NotificationTutorAssigned,
			Message: "Se te ha asignado un tutor para tu proceso de titulación", Read: true},
	}
	for i := range notifications {
		notifications[i].ID = s.newID()
		notifications[i].CreatedAt = now
	}

	return Snapshot{
		Users:         users,
		Sessions:      sessions,
		Topics:        topics,
		Files:         files,
		Assignments:   assignments,
		Notifications: notifications,
	}, nil
}
