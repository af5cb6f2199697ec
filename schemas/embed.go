// Package schemas holds the JSON Schemas for the documents the screener emits.
package schemas

import "embed"

// Files holds every *.schema.json in this directory.
//
//go:embed *.schema.json
var Files embed.FS

// Schema file names
const (
	Evaluation = "evaluation.schema.json"
	SkillSet   = "skill_set.schema.json"
	JobReport  = "job_report.schema.json"
)

// Names lists every embedded schema.
var Names = []string{Evaluation, SkillSet, JobReport}
