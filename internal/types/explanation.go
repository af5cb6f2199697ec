package types

// Evidence bundles the explanation artifacts stored with an application.
type Evidence struct {
	Basic    *BasicExplanation `json:"basic_explanation"`
	XAI      *XAIExplanation   `json:"xai_explanation"`
	SkillGap *SkillGapAnalysis `json:"skill_gap_analysis"`
	Graph    *EvidenceGraph    `json:"skill_evidence_graph"`
}

// KeyFactor is one factor that influenced a decision.
type KeyFactor struct {
	Factor      string `json:"factor"`
	Value       string `json:"value,omitempty"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
	Weight      string `json:"weight,omitempty"`
}

// Confidence describes how decisive the evaluation was.
type Confidence struct {
	Level       string  `json:"level"`
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// SkillAnalysis is the skill section of the basic explanation.
type SkillAnalysis struct {
	MatchPercentage float64  `json:"match_percentage"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
	ExtraSkills     []string `json:"extra_skills"`
	TotalRequired   int      `json:"total_required"`
	TotalCandidate  int      `json:"total_candidate"`
	Analysis        string   `json:"analysis"`
}

// ExperienceAnalysis is the experience section shared by both explanations.
type ExperienceAnalysis struct {
	RequiredYears   int     `json:"required_years"`
	CandidateYears  int     `json:"candidate_years"`
	GapYears        int     `json:"gap_years"`
	Status          string  `json:"status"`
	Explanation     string  `json:"explanation,omitempty"`
	Overqualified   bool    `json:"overqualified"`
	Underqualified  bool    `json:"underqualified"`
	MatchPercentage float64 `json:"match_percentage"`
}

// FraudAssessment is the fraud section of the basic explanation.
type FraudAssessment struct {
	Status         string    `json:"status"`
	RiskLevel      RiskLevel `json:"risk_level"`
	RiskFactors    []string  `json:"risk_factors,omitempty"`
	Messages       []string  `json:"messages,omitempty"`
	Message        string    `json:"message,omitempty"`
	Recommendation string    `json:"recommendation,omitempty"`
}

// BasicExplanation is the human-readable explanation of a decision.
type BasicExplanation struct {
	Decision           Decision           `json:"decision"`
	Summary            string             `json:"summary"`
	Strengths          []string           `json:"strengths"`
	Weaknesses         []string           `json:"weaknesses"`
	KeyFactors         []KeyFactor        `json:"key_factors"`
	SkillAnalysis      SkillAnalysis      `json:"skill_analysis"`
	ExperienceAnalysis ExperienceAnalysis `json:"experience_analysis"`
	FraudAssessment    FraudAssessment    `json:"fraud_assessment"`
	Recommendation     string             `json:"recommendation"`
	Confidence         Confidence         `json:"confidence_level"`
}

// ScoreInterpretation annotates one score with its weight and meaning.
type ScoreInterpretation struct {
	Value          float64 `json:"value"`
	Percentage     string  `json:"percentage"`
	Weight         string  `json:"weight,omitempty"`
	Contribution   float64 `json:"contribution,omitempty"`
	Interpretation string  `json:"interpretation"`
}

// XAIScoreBreakdown annotates every score in a bundle.
type XAIScoreBreakdown struct {
	Composite               ScoreInterpretation `json:"composite_score"`
	RoleFit                 ScoreInterpretation `json:"role_fit_score"`
	DomainCompetency        ScoreInterpretation `json:"domain_competency_score"`
	ExperienceCompatibility ScoreInterpretation `json:"experience_compatibility"`
}

// SkillGroup is a labelled list of skills.
type SkillGroup struct {
	Count       int      `json:"count"`
	Skills      []string `json:"skills"`
	Impact      string   `json:"impact"`
	Criticality string   `json:"criticality,omitempty"`
}

// XAISkillAnalysis is the skill section of the XAI explanation.
type XAISkillAnalysis struct {
	OverallMatch string            `json:"overall_match"`
	Matched      SkillGroup        `json:"matched_skills"`
	Missing      SkillGroup        `json:"missing_skills"`
	Additional   SkillGroup        `json:"additional_skills"`
	GapDetails   *SkillGapAnalysis `json:"skill_gap_details,omitempty"`
}

// XAIFraudCheck is the fraud section of the XAI explanation.
type XAIFraudCheck struct {
	FraudDetected        bool     `json:"fraud_detected"`
	SimilarityToExisting string   `json:"similarity_to_existing"`
	Status               string   `json:"status"`
	ChecksPerformed      []string `json:"checks_performed"`
	Explanation          string   `json:"explanation"`
}

// XAIExplanation is the factor-level justification of a decision.
type XAIExplanation struct {
	Decision            Decision           `json:"decision"`
	Confidence          Confidence         `json:"confidence"`
	ConfidenceLevel     string             `json:"confidence_level"`
	KeyFactors          []KeyFactor        `json:"key_factors"`
	Strengths           []string           `json:"strengths"`
	AreasForImprovement []string           `json:"areas_for_improvement"`
	ScoreBreakdown      XAIScoreBreakdown  `json:"score_breakdown"`
	SkillAnalysis       XAISkillAnalysis   `json:"skill_analysis"`
	ExperienceAnalysis  ExperienceAnalysis `json:"experience_analysis"`
	FraudCheck          XAIFraudCheck      `json:"fraud_check_explanation"`
	DecisionRationale   string             `json:"decision_rationale"`
	Recommendations     []string           `json:"recommendations"`
}

// GapSummary holds the headline numbers of a skill-gap analysis.
type GapSummary struct {
	TotalRequiredSkills     int     `json:"total_required_skills"`
	SkillsMatched           int     `json:"skills_matched"`
	SkillsMissing           int     `json:"skills_missing"`
	SkillsMissingRequired   int     `json:"skills_missing_required"`
	SkillsMissingNiceToHave int     `json:"skills_missing_nice_to_have"`
	GapPercentage           float64 `json:"gap_percentage"`
	GapPercentageRequired   float64 `json:"gap_percentage_required"`
	Severity                string  `json:"severity"`
	IsCloseable             bool    `json:"is_closeable"`
	FocusOnRequired         bool    `json:"focus_on_required"`
}

// GapBreakdown splits missing skills by how much they matter.
type GapBreakdown struct {
	Critical   SkillGroup `json:"critical_missing"`
	Important  SkillGroup `json:"important_missing"`
	NiceToHave SkillGroup `json:"nice_to_have_missing"`
}

// Transfer pairs a skill the candidate has with a missing skill it helps learn.
type Transfer struct {
	FromSkill    string `json:"from_skill"`
	ToSkill      string `json:"to_skill"`
	TransferEase string `json:"transfer_ease"`
}

// TransferableSkills lists every transfer found.
type TransferableSkills struct {
	Count  int        `json:"count"`
	Skills []Transfer `json:"skills"`
	Impact string     `json:"impact"`
}

// RoadmapStep is one entry of a learning roadmap.
type RoadmapStep struct {
	Priority          int      `json:"priority"`
	Skill             string   `json:"skill"`
	Difficulty        string   `json:"difficulty"`
	EstimatedWeeks    int      `json:"estimated_weeks"`
	LearningResources []string `json:"learning_resources"`
}

// ClosureEstimate is the estimated time to close a skill gap.
type ClosureEstimate struct {
	TotalWeeks  int      `json:"total_weeks"`
	TotalMonths float64  `json:"total_months"`
	SkillsCount int      `json:"skills_count"`
	Assumptions []string `json:"assumptions"`
}

// SkillGapAnalysis is the skill-gap roadmap artifact.
type SkillGapAnalysis struct {
	Summary         GapSummary         `json:"summary"`
	Breakdown       GapBreakdown       `json:"gap_breakdown"`
	Transferable    TransferableSkills `json:"transferable_skills"`
	Roadmap         []RoadmapStep      `json:"learning_roadmap"`
	ClosureTime     ClosureEstimate    `json:"estimated_closure_time"`
	Recommendations []string           `json:"recommendations"`
}

// GraphNode is a node of the skill evidence graph.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Size  int    `json:"size"`
	Color string `json:"color"`
}

// GraphEdge is an edge of the skill evidence graph.
type GraphEdge struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Type     string  `json:"type"`
	Strength float64 `json:"strength"`
	Color    string  `json:"color"`
	Label    string  `json:"label,omitempty"`
}

// Graph holds nodes and edges.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// GraphStatistics summarizes a graph.
type GraphStatistics struct {
	TotalNodes         int     `json:"total_nodes"`
	TotalEdges         int     `json:"total_edges"`
	MatchedSkillsCount int     `json:"matched_skills_count"`
	MissingSkillsCount int     `json:"missing_skills_count"`
	ExtraSkillsCount   int     `json:"extra_skills_count"`
	MatchRate          float64 `json:"match_rate"`
}

// VisualizationConfig carries rendering hints for graph consumers.
type VisualizationConfig struct {
	Layout      string `json:"layout"`
	ShowLabels  bool   `json:"show_labels"`
	Interactive bool   `json:"interactive"`
	ZoomEnabled bool   `json:"zoom_enabled"`
}

// EvidenceGraph is the structural skill graph for visualization.
type EvidenceGraph struct {
	Graph               Graph               `json:"graph"`
	Statistics          GraphStatistics     `json:"statistics"`
	Legend              map[string]string   `json:"legend"`
	VisualizationConfig VisualizationConfig `json:"visualization_config"`
}
