package entity

import "errors"

var (
	ErrClassNotFound   = errors.New("turma não encontrada")
	ErrCourseNotFound  = errors.New("curso não encontrado")
	ErrProductNotFound = errors.New("produto não encontrado")
	ErrLinkNotFound    = errors.New("link de pagamento não encontrado")
)

// Settings é o estado de negócio que não vive em tabela própria: fica
// serializado como um JSON só na linha fixa de app_settings.
type Settings struct {
	Courses      []Course         `json:"courses"`
	Classes      []CourseClass    `json:"classes"`
	Pipelines    []Pipeline       `json:"pipelines"`
	Automations  []AutomationRule `json:"automations"`
	PaymentLinks []PaymentLink    `json:"payment_links"`
	Products     []Product        `json:"products"`

	// Pausa fixa entre envios do disparo em massa (anti-spam do bridge)
	BroadcastDelaySeconds int `json:"broadcast_delay_seconds"`
}

// DefaultSettings devolve o estado inicial: só o funil de sistema existe
func DefaultSettings() *Settings {
	return &Settings{
		Pipelines:             []Pipeline{*SystemPipeline()},
		BroadcastDelaySeconds: 3,
	}
}

func (s *Settings) FindCourse(id string) (*Course, error) {
	for i := range s.Courses {
		if s.Courses[i].ID == id {
			return &s.Courses[i], nil
		}
	}
	return nil, ErrCourseNotFound
}

func (s *Settings) FindClass(id string) (*CourseClass, error) {
	for i := range s.Classes {
		if s.Classes[i].ID == id {
			return &s.Classes[i], nil
		}
	}
	return nil, ErrClassNotFound
}

func (s *Settings) FindPipeline(id string) (*Pipeline, bool) {
	for i := range s.Pipelines {
		if s.Pipelines[i].ID == id {
			return &s.Pipelines[i], true
		}
	}
	return nil, false
}

func (s *Settings) FindProduct(id string) (*Product, error) {
	for i := range s.Products {
		if s.Products[i].ID == id {
			return &s.Products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

func (s *Settings) FindPaymentLink(id string) (*PaymentLink, error) {
	for i := range s.PaymentLinks {
		if s.PaymentLinks[i].ID == id {
			return &s.PaymentLinks[i], nil
		}
	}
	return nil, ErrLinkNotFound
}
