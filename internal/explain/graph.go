package explain

import (
	"fmt"

	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Node colors
const (
	colorJob       = "#3498db"
	colorMatched   = "#27ae60"
	colorMissing   = "#e74c3c"
	colorExtra     = "#9b59b6"
	colorCandidate = "#e67e22"
)

const (
	jobNodeID       = "job"
	candidateNodeID = "candidate"
)

// Graph builds the skill evidence graph: a job node linked to every matched and missing
// skill, matched skills linked on to the candidate node, and up to ten extras hanging off
// the candidate. Node IDs number skills in that order.
func Graph(m types.SkillMatch) *types.EvidenceGraph {
	nodes := []types.GraphNode{{ID: jobNodeID, Label: "Job Requirements", Type: "job", Size: 30, Color: colorJob}}
	edges := []types.GraphEdge{}
	seq := 0

	for _, skill := range m.MatchedSkills {
		seq++
		id := fmt.Sprintf("matched_%d", seq)
		nodes = append(nodes, types.GraphNode{ID: id, Label: skill, Type: "matched", Size: 20, Color: colorMatched})
		edges = append(edges,
			types.GraphEdge{Source: jobNodeID, Target: id, Type: "required", Strength: 1.0, Color: colorMatched, Label: "Matched"},
			types.GraphEdge{Source: id, Target: candidateNodeID, Type: "possessed", Strength: 1.0, Color: colorMatched},
		)
	}

	for _, skill := range m.MissingSkills {
		seq++
		id := fmt.Sprintf("missing_%d", seq)
		nodes = append(nodes, types.GraphNode{ID: id, Label: skill, Type: "missing", Size: 20, Color: colorMissing})
		edges = append(edges, types.GraphEdge{Source: jobNodeID, Target: id, Type: "required", Strength: 0.5, Color: colorMissing, Label: "Missing"})
	}

	extras := top(m.CandidateExtras, maxListedSkills)
	for _, skill := range extras {
		seq++
		id := fmt.Sprintf("extra_%d", seq)
		nodes = append(nodes, types.GraphNode{ID: id, Label: skill, Type: "extra", Size: 15, Color: colorExtra})
		edges = append(edges, types.GraphEdge{Source: candidateNodeID, Target: id, Type: "possessed", Strength: 0.7, Color: colorExtra, Label: "Bonus Skill"})
	}

	nodes = append(nodes, types.GraphNode{ID: candidateNodeID, Label: "Candidate Skills", Type: "candidate", Size: 30, Color: colorCandidate})

	matchRate := 0.0
	if total := len(m.MatchedSkills) + len(m.MissingSkills); total > 0 {
		matchRate = float64(len(m.MatchedSkills)) / float64(total)
	}

	return &types.EvidenceGraph{
		Graph: types.Graph{Nodes: nodes, Edges: edges},
		Statistics: types.GraphStatistics{
			TotalNodes:         len(nodes),
			TotalEdges:         len(edges),
			MatchedSkillsCount: len(m.MatchedSkills),
			MissingSkillsCount: len(m.MissingSkills),
			ExtraSkillsCount:   len(extras),
			MatchRate:          numeric.Round(matchRate*100, 2),
		},
		Legend: map[string]string{
			"green":  "Skills that match job requirements",
			"red":    "Skills missing from candidate profile",
			"purple": "Additional skills candidate possesses",
			"blue":   "Job requirements node",
			"orange": "Candidate skills node",
		},
		VisualizationConfig: types.VisualizationConfig{
			Layout:      "force-directed",
			ShowLabels:  true,
			Interactive: true,
			ZoomEnabled: true,
		},
	}
}
