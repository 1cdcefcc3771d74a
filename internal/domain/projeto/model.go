package projeto

import "time"

// Risk is the risk level selected for a projeto.
type Risk string

const (
	RiskLow    Risk = "baixo"
	RiskMedium Risk = "medio"
	RiskHigh   Risk = "alto"
)

// Status is the lifecycle status of a projeto.
type Status string

const (
	StatusPlanned    Status = "planejado"
	StatusInProgress Status = "andamento"
	StatusDone       Status = "concluido"
	StatusCancelled  Status = "cancelado"
)

// Risks lists the known risk levels in display order.
func Risks() []Risk {
	return []Risk{RiskLow, RiskMedium, RiskHigh}
}

// Statuses lists the known statuses in display order.
func Statuses() []Status {
	return []Status{StatusPlanned, StatusInProgress, StatusDone, StatusCancelled}
}

// Projeto is the project record exchanged with the backend.
type Projeto struct {
	ID            string      `json:"_id,omitempty" yaml:"_id,omitempty"`
	Name          string      `json:"name" yaml:"name"`
	Description   string      `json:"description,omitempty" yaml:"description,omitempty"`
	Manager       string      `json:"manager,omitempty" yaml:"manager,omitempty"`
	Team          []string    `json:"team,omitempty" yaml:"team,omitempty"`
	Indicators    []Indicator `json:"indicators,omitempty" yaml:"indicators,omitempty"`
	DateStart     *time.Time  `json:"dateStart,omitempty" yaml:"dateStart,omitempty"`
	DateEnd       *time.Time  `json:"dateEnd,omitempty" yaml:"dateEnd,omitempty"`
	DatePrevision *time.Time  `json:"datePrevision,omitempty" yaml:"datePrevision,omitempty"`
	Risk          Risk        `json:"risk,omitempty" yaml:"risk,omitempty"`
	Status        Status      `json:"status,omitempty" yaml:"status,omitempty"`
}

// Indicator is a tracked metric attached to a projeto, split in phases.
type Indicator struct {
	ID     string  `json:"_id,omitempty" yaml:"_id,omitempty"`
	Name   string  `json:"name" yaml:"name"`
	Target float64 `json:"target,omitempty" yaml:"target,omitempty"`
	Phases []Phase `json:"phases,omitempty" yaml:"phases,omitempty"`
}

// Phase is one stage of an indicator.
type Phase struct {
	ID       string     `json:"_id,omitempty" yaml:"_id,omitempty"`
	Name     string     `json:"name" yaml:"name"`
	Value    float64    `json:"value,omitempty" yaml:"value,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
}

// Usuario is a user reference returned by the manager listing.
type Usuario struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// DeleteResponse is the envelope returned by a delete call.
type DeleteResponse struct {
	Message string `json:"message"`
}

// Subtype selects which resource an update is sent to.
type Subtype string

const (
	SubtypePrimary        Subtype = "projeto"
	SubtypeTeam           Subtype = "equipe"
	SubtypeIndicator      Subtype = "indicador"
	SubtypeIndicatorPhase Subtype = "indicador-fase"
)

// Resource paths relative to the API base.
const (
	PathProjeto              = "/projeto"
	PathProjetoManager       = "/projeto/manager"
	PathProjetoEquipe        = "/projeto-equipe"
	PathProjetoIndicador     = "/projeto-indicador"
	PathProjetoIndicadorFase = "/projeto-indicador-fase"
)

// Path returns the collection path updates of this subtype are sent to.
// Empty and unknown subtypes resolve to the primary resource.
func (s Subtype) Path() string {
	switch s {
	case SubtypeTeam:
		return PathProjetoEquipe
	case SubtypeIndicator:
		return PathProjetoIndicador
	case SubtypeIndicatorPhase:
		return PathProjetoIndicadorFase
	default:
		return PathProjeto
	}
}

// Subtypes lists the accepted update subtypes.
func Subtypes() []Subtype {
	return []Subtype{SubtypePrimary, SubtypeTeam, SubtypeIndicator, SubtypeIndicatorPhase}
}
