package repository

import (
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Status is the lifecycle state of a tracked repository on the backend.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCloning   Status = "cloning"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Repository represents a tracked source-code project submitted for analysis.
// It is a read-only projection of the backend record; the CLI renders and
// re-fetches it but never mutates it.
type Repository struct {
	ID           string                 `json:"id"`
	URL          string                 `json:"url"`
	Name         string                 `json:"name,omitempty"`
	Status       Status                 `json:"status"`
	LocalPath    string                 `json:"local_path,omitempty"`
	RawAnalysis  map[string]interface{} `json:"analysis_results,omitempty"`
	OverallScore int                    `json:"overall_score"`
	Logs         []string               `json:"logs,omitempty"`
	CreatedAt    string                 `json:"created_at"`
}

// DisplayName returns the repository name, falling back to its URL.
func (r *Repository) DisplayName() string {
	if r.Name != "" {
		return r.Name
	}
	return r.URL
}

// Analysis decodes the backend's loose analysis_results payload into a typed
// struct. The backend serves it as a free-form object, so unknown keys are
// ignored rather than treated as errors; new backend fields never break older
// clients. Returns nil when no analysis has been produced yet.
func (r *Repository) Analysis() (*AnalysisResults, error) {
	if r.RawAnalysis == nil {
		return nil, nil
	}

	var results AnalysisResults
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		// JSON numbers arrive as float64 in the raw map; weak typing lets
		// them land in the int score fields.
		WeaklyTypedInput: true,
		Result:           &results,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(r.RawAnalysis); err != nil {
		return nil, errors.Wrap(err, "decoding analysis results")
	}

	return &results, nil
}

// AnalysisResults is the backend-computed report for a repository: detected
// stack, structure, score, and recommendations.
type AnalysisResults struct {
	StaticScan            StaticScan           `json:"static_scan"`
	StructuralEvaluation  StructuralEvaluation `json:"structural_evaluation"`
	ArchitecturalCritique string               `json:"architectural_critique"`
	OverallScore          int                  `json:"overall_score"`
	MaturityLabel         string               `json:"maturity_label"`
	ScoreBreakdown        ScoreBreakdown       `json:"score_breakdown"`
	ActionableRoadmap     []RoadmapStep        `json:"actionable_roadmap"`
	SecurityFindings      []SecurityFinding    `json:"security_findings"`
	AIInsights            *AIInsights          `json:"ai_insights,omitempty"`
	DependencyGraph       *DependencyGraph     `json:"dependency_graph,omitempty"`
}

// StaticScan lists the detected tech stack and infra standards.
type StaticScan struct {
	Stack     []string      `json:"stack"`
	Standards InfraStandard `json:"standards"`
	Testing   TestingReport `json:"testing"`
}

type InfraStandard struct {
	HasReadme     bool `json:"has_readme"`
	HasGitignore  bool `json:"has_gitignore"`
	HasDocker     bool `json:"has_docker"`
	HasCICD       bool `json:"has_ci_cd"`
	HasTerraform  bool `json:"has_terraform"`
	HasKubernetes bool `json:"has_kubernetes"`
	HasOpenAPI    bool `json:"has_openapi"`
	HasLinting    bool `json:"has_linting"`
}

type TestingReport struct {
	Detected   bool     `json:"detected"`
	Frameworks []string `json:"frameworks"`
}

// StructuralEvaluation describes folder hierarchy and modularity findings.
type StructuralEvaluation struct {
	PatternsDetected   []string `json:"patterns_detected"`
	ModularityScore    int      `json:"modularity_score"`
	ConcernsSeparation string   `json:"concerns_separation"`
}

// ScoreBreakdown itemizes the weighted maturity score. The security component
// is a penalty and therefore zero or negative.
type ScoreBreakdown struct {
	Infrastructure int `json:"infrastructure"`
	StandardsTests int `json:"standards_tests"`
	Architecture   int `json:"architecture"`
	Security       int `json:"security"`
}

// RoadmapStep is one actionable recommendation from the analysis.
type RoadmapStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
	Guide       string `json:"guide"`
}

// SecurityFinding is a single secret leak, SAST hit, or vulnerable dependency.
type SecurityFinding struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Label       string `json:"label"`
	File        string `json:"file"`
	Description string `json:"description"`
}

// AIInsights carries the optional LLM-generated critique.
type AIInsights struct {
	ExecutiveSummary   []string          `json:"executive_summary"`
	ScoreJustification string            `json:"score_justification"`
	EngineeringRoadmap []AIRoadmapStep   `json:"engineering_roadmap"`
	SuggestedAction    *AISuggestion     `json:"suggested_action,omitempty"`
	TechStackNotes     map[string]string `json:"tech_stack_notes"`
	TechnicalDebt      []AIDebtItem      `json:"technical_debt"`
	GraphEvaluation    string            `json:"graph_evaluation"`
	Error              string            `json:"error,omitempty"`
}

type AIRoadmapStep struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type AISuggestion struct {
	Title     string `json:"title"`
	Paragraph string `json:"paragraph"`
}

type AIDebtItem struct {
	Title     string `json:"title"`
	Paragraph string `json:"paragraph"`
}

// DependencyGraph is the optional module graph rendered alongside a report.
type DependencyGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

type GraphEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
}
