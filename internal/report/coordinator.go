// Package report renders the coordinator workbook.
package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/EuclidesAnchundia/Tutorias/internal/model"
)

const (
	SheetSummary     = "Resumen"
	SheetAssignments = "Asignaciones"
	SheetSessions    = "Tutorias"

	dateLayout = "2006-01-02"
)

type Source interface {
	Stats() model.Stats
	ListAssignments() []model.Assignment
	ListSessions() []model.TutoringSession
	FindUserByEmail(email string) (*model.User, error)
	TopicByStudent(email string) (*model.Topic, error)
}

type sheet struct {
	title  string
	header []string
	rows   [][]any
}

// Coordinator builds the workbook from the current store contents.
func Coordinator(src Source) (*excelize.File, error) {
	sheets := []sheet{
		summarySheet(src.Stats()),
		assignmentsSheet(src),
		sessionsSheet(src),
	}

	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}
	for i, s := range sheets {
		if i == 0 {
			err = f.SetSheetName("Sheet1", s.title)
		} else {
			_, err = f.NewSheet(s.title)
		}
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("sheet %s: %w", s.title, err)
		}
		if err := fill(f, s, bold); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteCoordinator streams the workbook as xlsx.
func WriteCoordinator(w io.Writer, src Source) error {
	f, err := Coordinator(src)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func fill(f *excelize.File, s sheet, headerStyle int) error {
	if err := f.SetSheetRow(s.title, "A1", &s.header); err != nil {
		return fmt.Errorf("header %s: %w", s.title, err)
	}
	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.title, cell, &row); err != nil {
			return fmt.Errorf("row %d of %s: %w", i+2, s.title, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(s.header), 1)
	if err != nil {
		return err
	}
	_ = f.SetCellStyle(s.title, "A1", last, headerStyle)
	if len(s.rows) > 0 {
		_ = f.AutoFilter(s.title, "A1:"+last, nil)
	}

	for c := range s.header {
		width := float64(len([]rune(s.header[c]))) + 2
		for _, row := range s.rows[:min(50, len(s.rows))] {
			if l := float64(len([]rune(fmt.Sprint(row[c])))); l > width {
				width = l
			}
		}
		col, _ := excelize.ColumnNumberToName(c + 1)
		_ = f.SetColWidth(s.title, col, col, min(max(width, 12), 40))
	}
	return nil
}

func summarySheet(st model.Stats) sheet {
	s := sheet{
		title:  SheetSummary,
		header: []string{"Indicador", "Valor"},
		rows: [][]any{
			{"Usuarios", st.TotalUsers},
			{"Estudiantes", st.TotalStudents},
			{"Tutores", st.TotalTutors},
			{"Coordinadores", st.TotalCoordinators},
			{"Tutorías", st.TotalSessions},
			{"Tutorías completadas", st.CompletedSessions},
			{"Temas", st.TotalTopics},
			{"Archivos", st.TotalFiles},
		},
	}
	faculties := make([]string, 0, len(st.FacultiesActivity))
	for name := range st.FacultiesActivity {
		faculties = append(faculties, name)
	}
	slices.Sort(faculties)
	for _, name := range faculties {
		s.rows = append(s.rows, []any{"Facultad: " + name, st.FacultiesActivity[name]})
	}
	return s
}

func assignmentsSheet(src Source) sheet {
	s := sheet{
		title:  SheetAssignments,
		header: []string{"Estudiante", "Tutor", "Coordinador", "Fecha de asignación", "Tema", "Tema aprobado"},
	}
	for _, a := range src.ListAssignments() {
		title, approved := "", ""
		if topic, err := src.TopicByStudent(a.StudentEmail); err == nil {
			title = topic.Title
			approved = yesNo(topic.Approved)
		}
		s.rows = append(s.rows, []any{
			displayName(src, a.StudentEmail),
			displayName(src, a.TutorEmail),
			displayName(src, a.CoordinatorEmail),
			formatDate(a.AssignedAt),
			title,
			approved,
		})
	}
	return s
}

func sessionsSheet(src Source) sheet {
	s := sheet{
		title:  SheetSessions,
		header: []string{"Estudiante", "Tutor", "Fecha", "Hora", "Asunto", "Estado", "Calificación"},
	}
	for _, ts := range src.ListSessions() {
		s.rows = append(s.rows, []any{
			displayName(src, ts.StudentEmail),
			displayName(src, ts.TutorEmail),
			ts.Date,
			ts.Time,
			ts.Subject,
			string(ts.Status),
			gradeCell(ts.Grade),
		})
	}
	return s
}

// displayName falls back to the email for users that no longer exist.
func displayName(src Source, email string) string {
	if email == "" {
		return ""
	}
	u, err := src.FindUserByEmail(email)
	if err != nil {
		return email
	}
	return u.FullName() + " <" + email + ">"
}

// gradeCell keeps numeric grades numeric in the sheet.
func gradeCell(grade string) any {
	if v, err := strconv.ParseFloat(grade, 64); err == nil {
		return v
	}
	return grade
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
