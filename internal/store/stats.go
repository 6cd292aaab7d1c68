package store

import "github.com/EuclidesAnchundia/Tutorias/internal/model"

// Stats is recomputed on every call.
func (s *Store) Stats() model.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := model.Stats{
		TotalUsers:        len(s.users),
		TotalSessions:     len(s.sessions),
		TotalTopics:       len(s.topics),
		TotalFiles:        len(s.files),
		FacultiesActivity: make(map[string]int),
	}
	for i := range s.users {
		u := &s.users[i]
		switch u.Role() {
		case model.RoleStudent:
			st.TotalStudents++
		case model.RoleTutor:
			st.TotalTutors++
		case model.RoleCoordinator:
			st.TotalCoordinators++
		}
		if f := u.Faculty(); f != "" {
			st.FacultiesActivity[f]++
		}
	}
	for _, ts := range s.sessions {
		if ts.Status == model.SessionCompleted {
			st.CompletedSessions++
		}
	}
	return st
}
