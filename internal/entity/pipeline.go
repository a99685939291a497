package entity

// Stage é uma coluna do kanban
type Stage struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Pipeline é um kanban nomeado. Exatamente um pipeline é de sistema e seus
// stages têm os ids fixos interested/active/alumni — o editor de etapas não
// pode renomear nem reordenar esses.
type Pipeline struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	IsSystem bool    `json:"is_system"`
	Stages   []Stage `json:"stages"`
}

// HasStage informa se o id de etapa existe neste pipeline
func (p *Pipeline) HasStage(stageID string) bool {
	for _, s := range p.Stages {
		if s.ID == stageID {
			return true
		}
	}
	return false
}

// SystemPipeline devolve o pipeline padrão com as três colunas fixas
func SystemPipeline() *Pipeline {
	return &Pipeline{
		ID:       "system",
		Name:     "Funil padrão",
		IsSystem: true,
		Stages: []Stage{
			{ID: StatusInterested, Name: "Interessadas"},
			{ID: StatusActive, Name: "Alunas ativas"},
			{ID: StatusAlumni, Name: "Formadas"},
		},
	}
}
