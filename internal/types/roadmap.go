package types

// Difficulty tiers a project can declare
type Difficulty string

// Difficulty constants
const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// RoadmapStatus distinguishes a disposable draft from a user-confirmed roadmap
type RoadmapStatus string

// Roadmap status constants
const (
	RoadmapDraft  RoadmapStatus = "draft"
	RoadmapActive RoadmapStatus = "active"
)

// Roadmap is a generated, ordered collection of development projects plus
// milestones. Invariant: at least one project. JSON tags match the payload
// schema the completion service is asked to produce.
type Roadmap struct {
	ID            string        `json:"id" validate:"required"`
	Title         string        `json:"title" validate:"required"`
	Description   string        `json:"description"`
	TotalDuration string        `json:"totalDuration"`
	Projects      []Project     `json:"projects" validate:"required,min=1,dive"`
	Milestones    []Milestone   `json:"milestones" validate:"dive"`
	Status        RoadmapStatus `json:"status,omitempty"`
}

// Project is a single workplace-simulation project within a roadmap
type Project struct {
	ID                 string     `json:"id" validate:"required"`
	Title              string     `json:"title" validate:"required"`
	Description        string     `json:"description"`
	TargetSkills       []string   `json:"targetSkills" validate:"required,min=1"`
	Duration           string     `json:"duration"`
	Difficulty         Difficulty `json:"difficulty" validate:"required,oneof=Beginner Intermediate Advanced"`
	Scenarios          []string   `json:"scenarios" validate:"required,min=1"`
	LearningObjectives []string   `json:"learningObjectives" validate:"required,min=1"`
	SuccessMetrics     []string   `json:"successMetrics" validate:"required,min=1"`
	AIPersonas         Personas   `json:"aiPersonas"`
}

// Personas holds the AI characters that populate a project's simulated workplace
type Personas struct {
	Manager    ManagerPersona     `json:"manager"`
	Colleagues []ColleaguePersona `json:"colleagues" validate:"required,min=1"`
}

// ManagerPersona is the single manager character per project
type ManagerPersona struct {
	Name        string `json:"name" validate:"required"`
	Personality string `json:"personality"`
	Focus       string `json:"focus"`
}

// ColleaguePersona is a coworker character within a project
type ColleaguePersona struct {
	Name        string `json:"name" validate:"required"`
	Personality string `json:"personality"`
	Role        string `json:"role"`
}

// Milestone marks an expected checkpoint within the roadmap timeline
type Milestone struct {
	Week           int      `json:"week"`
	Title          string   `json:"title"`
	ExpectedSkills []string `json:"expectedSkills"`
	AssessmentType string   `json:"assessmentType"`
}

// EnsureDefaults replaces nil list fields with empty slices so callers can
// range freely. It does not fabricate required content; that is the
// synthesizer's job.
func (r *Roadmap) EnsureDefaults() {
	if r.Projects == nil {
		r.Projects = []Project{}
	}
	if r.Milestones == nil {
		r.Milestones = []Milestone{}
	}
	for i := range r.Projects {
		r.Projects[i].ensureDefaults()
	}
	for i := range r.Milestones {
		if r.Milestones[i].ExpectedSkills == nil {
			r.Milestones[i].ExpectedSkills = []string{}
		}
	}
	if r.Status == "" {
		r.Status = RoadmapDraft
	}
}

func (p *Project) ensureDefaults() {
	if p.TargetSkills == nil {
		p.TargetSkills = []string{}
	}
	if p.Scenarios == nil {
		p.Scenarios = []string{}
	}
	if p.LearningObjectives == nil {
		p.LearningObjectives = []string{}
	}
	if p.SuccessMetrics == nil {
		p.SuccessMetrics = []string{}
	}
	if p.AIPersonas.Colleagues == nil {
		p.AIPersonas.Colleagues = []ColleaguePersona{}
	}
}
