package entity

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	ClassOpen      = "open"
	ClassOngoing   = "ongoing"
	ClassCompleted = "completed"
)

// Course é a oferta do catálogo (ex: "Extensão de cílios — profissionalizante")
type Course struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	PriceCents    int    `json:"price_cents"`
	DurationHours int    `json:"duration_hours,omitempty"`
}

// CourseClass é uma turma agendada de um curso, com capacidade e roster.
// MaxStudents é um teto "soft": o core não bloqueia matrícula acima dele.
type CourseClass struct {
	ID                 string    `json:"id"`
	CourseID           string    `json:"course_id"`
	Name               string    `json:"name"`
	StartDate          time.Time `json:"start_date"`
	MaxStudents        int       `json:"max_students"`
	EnrolledStudentIDs []string  `json:"enrolled_student_ids"`
	Status             string    `json:"status"` // open | ongoing | completed
}

func NewCourseClass(courseID, name string, start time.Time, maxStudents int) *CourseClass {
	return &CourseClass{
		ID:          uuid.New().String(),
		CourseID:    courseID,
		Name:        name,
		StartDate:   start,
		MaxStudents: maxStudents,
		Status:      ClassOpen,
	}
}

// AddStudent adiciona ao roster com semântica de conjunto: repetir a mesma
// aluna nunca duplica a entrada. Retorna true se o roster mudou.
func (c *CourseClass) AddStudent(contactID string) bool {
	for _, id := range c.EnrolledStudentIDs {
		if id == contactID {
			return false
		}
	}
	c.EnrolledStudentIDs = append(c.EnrolledStudentIDs, contactID)
	return true
}

// EarliestOpenClass devolve a turma aberta do curso com a menor data de
// início (empate resolvido por quem começa primeiro). Nil se não houver.
func EarliestOpenClass(classes []CourseClass, courseID string) *CourseClass {
	var open []CourseClass
	for _, cl := range classes {
		if cl.CourseID == courseID && cl.Status == ClassOpen {
			open = append(open, cl)
		}
	}
	if len(open) == 0 {
		return nil
	}
	sort.Slice(open, func(i, j int) bool {
		return open[i].StartDate.Before(open[j].StartDate)
	})
	return &open[0]
}
