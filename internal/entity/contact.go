package entity

import (
	"time"

	"github.com/google/uuid"
)

// Kind é derivado do histórico, nunca gravado de forma independente.
const (
	KindLead    = "lead"
	KindStudent = "student"
)

// Status do pipeline de sistema (as três colunas fixas do kanban padrão)
const (
	StatusInterested = "interested"
	StatusActive     = "active"
	StatusAlumni     = "alumni"
)

const (
	EnrollmentPaid    = "paid"
	EnrollmentPending = "pending"
)

// EnrollmentRecord é uma entrada do histórico de matrículas do contato.
// ClassID vazio significa matrícula aguardando turma (ou pagamento avulso).
type EnrollmentRecord struct {
	CourseID   string    `json:"course_id"`
	ClassID    string    `json:"class_id,omitempty"`
	Date       time.Time `json:"date"`
	PaidCents  int       `json:"paid_cents"`
	Status     string    `json:"status"` // paid | pending
	Notes      string    `json:"notes,omitempty"`
}

// Contact unifica lead e aluna numa entidade só.
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
	CPF   string `json:"cpf,omitempty"`
	Photo string `json:"photo,omitempty"`

	Status     string `json:"status"` // interested | active | alumni
	PipelineID string `json:"pipeline_id,omitempty"`
	StageID    string `json:"stage_id,omitempty"`

	InterestedIn []string           `json:"interested_in,omitempty"`
	History      []EnrollmentRecord `json:"history,omitempty"`

	LastContact  *time.Time `json:"last_contact,omitempty"`
	NextFollowUp *time.Time `json:"next_follow_up,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLead cria um contato recém-captado, ainda sem matrícula
func NewLead(name, phone string) *Contact {
	now := time.Now()
	return &Contact{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		Status:    StatusInterested,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Kind deriva lead/student do histórico: vira student quando existe
// ao menos uma entrada paga. Nunca é um campo gravado.
func (c *Contact) Kind() string {
	for _, h := range c.History {
		if h.Status == EnrollmentPaid {
			return KindStudent
		}
	}
	return KindLead
}

// HasClassEntry informa se já existe entrada de histórico para a turma.
// Proteção contra replay de webhook.
func (c *Contact) HasClassEntry(classID string) bool {
	if classID == "" {
		return false
	}
	for _, h := range c.History {
		if h.ClassID == classID {
			return true
		}
	}
	return false
}

// AddInterest adiciona o curso ao interesse sem duplicar
func (c *Contact) AddInterest(courseID string) {
	for _, id := range c.InterestedIn {
		if id == courseID {
			return
		}
	}
	c.InterestedIn = append(c.InterestedIn, courseID)
}

// RemoveInterest tira o curso da lista quando o interesse vira matrícula
func (c *Contact) RemoveInterest(courseID string) {
	out := c.InterestedIn[:0]
	for _, id := range c.InterestedIn {
		if id != courseID {
			out = append(out, id)
		}
	}
	c.InterestedIn = out
}

// Clone devolve uma cópia profunda. Os usecases mutam a cópia e persistem;
// o contato original fica intacto (facilita os testes de no-op).
func (c *Contact) Clone() *Contact {
	dup := *c
	dup.InterestedIn = append([]string(nil), c.InterestedIn...)
	dup.History = append([]EnrollmentRecord(nil), c.History...)
	if c.LastContact != nil {
		t := *c.LastContact
		dup.LastContact = &t
	}
	if c.NextFollowUp != nil {
		t := *c.NextFollowUp
		dup.NextFollowUp = &t
	}
	return &dup
}
