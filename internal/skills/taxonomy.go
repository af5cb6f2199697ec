// Package skills extracts, normalizes, classifies and matches skills in job and resume text.
package skills

import "sort"

// set is an immutable string set built once at package init.
type set map[string]struct{}

func newSet(items ...string) set {
	s := make(set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s set) has(item string) bool {
	_, ok := s[item]
	return ok
}

func (s set) sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// synonyms maps abbreviations and spelling variants to one canonical form.
var synonyms = map[string]string{
	// ML and AI
	"ml": "machine learning",
	"ai": "artificial intelligence",
	"dl": "deep learning",
	"cv": "computer vision",

	// DevOps and CI/CD
	"devops":                 "devops",
	"dev ops":                "devops",
	"dev-ops":                "devops",
	"ci/cd":                  "ci cd",
	"ci-cd":                  "ci cd",
	"cicd":                   "ci cd",
	"ci":                     "ci cd",
	"cd":                     "ci cd",
	"continuous integration": "ci cd",
	"continuous deployment":  "ci cd",
	"continuous delivery":    "ci cd",

	// REST
	"restful":      "rest api",
	"rest":         "rest api",
	"rest api":     "rest api",
	"rest apis":    "rest api",
	"restful api":  "rest api",
	"restful apis": "rest api",

	// Languages
	"js":     "javascript",
	"ts":     "typescript",
	"py":     "python",
	"golang": "go",

	// Databases
	"postgres": "postgresql",
	"mongo":    "mongodb",

	// Cloud
	"amazon web services":   "aws",
	"google cloud":          "gcp",
	"google cloud platform": "gcp",
	"k8s":                   "kubernetes",

	// Version control
	"version control": "git",

	// Operating systems
	"gnu/linux": "linux",

	// Frameworks
	"react.js": "react",
	"reactjs":  "react",
	"vue.js":   "vue",
	"vuejs":    "vue",
	"node":     "node.js",
	"nodejs":   "node.js",
}

// relationships maps a skill to the prerequisite skills its presence implies.
var relationships = map[string][]string{
	// ML and AI
	"machine learning":        {"python", "statistics", "mathematics", "numpy", "pandas"},
	"ml":                      {"python", "statistics", "mathematics", "numpy", "pandas"},
	"deep learning":           {"python", "machine learning", "ml", "tensorflow", "pytorch", "numpy"},
	"tensorflow":              {"python", "machine learning", "ml", "numpy"},
	"pytorch":                 {"python", "machine learning", "ml", "numpy"},
	"scikit-learn":            {"python", "machine learning", "ml", "numpy", "pandas"},
	"keras":                   {"python", "deep learning", "tensorflow", "numpy"},
	"nlp":                     {"python", "machine learning", "ml"},
	"computer vision":         {"python", "deep learning", "opencv", "numpy"},
	"data science":            {"python", "statistics", "sql", "pandas", "numpy"},
	"artificial intelligence": {"python", "machine learning", "ml", "statistics"},
	"ai":                      {"python", "machine learning", "ml", "statistics"},
	"pandas":                  {"python", "numpy"},
	"numpy":                   {"python"},

	// Web frameworks
	"django":  {"python", "sql", "html", "css"},
	"flask":   {"python", "html", "css"},
	"fastapi": {"python"},
	"react":   {"javascript", "html", "css"},
	"angular": {"typescript", "javascript", "html", "css"},
	"vue":     {"javascript", "html", "css"},
	"node.js": {"javascript"},
	"express": {"javascript", "node.js"},
	"spring":  {"java"},
	"asp.net": {"c#"},

	// Mobile
	"android":      {"java", "kotlin"},
	"ios":          {"swift"},
	"react native": {"javascript", "react"},
	"flutter":      {"dart"},

	// Cloud and containers
	"aws":        {"cloud", "devops"},
	"azure":      {"cloud", "devops"},
	"gcp":        {"cloud", "devops"},
	"docker":     {"devops", "linux"},
	"kubernetes": {"docker", "devops", "linux"},

	// Databases
	"mysql":      {"sql"},
	"postgresql": {"sql"},
	"oracle":     {"sql"},
	"mariadb":    {"sql"},
	"sqlite":     {"sql"},
}

// noiseTerms are tokens that look like skills but are not.
var noiseTerms = newSet(
	// Degrees
	"b.e", "b.tech", "bca", "mca", "m.tech", "b.sc", "m.sc", "mba", "phd",
	"be", "btech", "bsc", "msc", "ba", "ma", "ca",

	// Organizational words
	"hr", "it", "info", "tech", "co", "ltd", "inc", "pvt",
	"jr", "sr", "mid", "level", "entry",

	// Section headers
	"experience", "education", "skills", "summary", "description",

	// Ambiguous short tokens
	"cs", "ds", "we", "as", "is", "an", "or", "on", "in", "at", "to",

	// Company name fragments
	"company", "corporation", "enterprises", "solutions", "systems",
	"technologies", "labs", "innovations", "digital", "services",
)

// shortSkillWhitelist lists tokens of three characters or fewer that are real skills.
var shortSkillWhitelist = newSet(
	"ml", "ai", "qa", "ci", "cd", "ui", "ux", "ar", "vr", "iot", "api", "sql",
	"aws", "gcp", "nlp", "etl", "css", "git", "php", "c++", "c#", "ios", "vue",
	"xml", "llm",
)

// technicalSkills is the technical vocabulary matched against text.
var technicalSkills = newSet(
	// Languages
	"python", "java", "javascript", "typescript", "c++", "c#", "ruby", "go", "rust",
	"php", "swift", "kotlin", "scala", "r", "matlab", "perl", "shell", "bash", "dart",

	// Web
	"html", "css", "react", "angular", "vue", "node.js", "express", "django",
	"flask", "fastapi", "spring", "asp.net", "jquery", "bootstrap", "tailwind",

	// Databases
	"sql", "mysql", "postgresql", "mongodb", "redis", "cassandra", "dynamodb",
	"oracle", "sqlite", "mariadb", "elasticsearch", "neo4j",

	// Cloud and DevOps
	"aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "gitlab", "github",
	"terraform", "ansible", "ci/cd", "devops", "linux", "unix",

	// Data and ML
	"machine learning", "deep learning", "tensorflow", "pytorch", "scikit-learn",
	"pandas", "numpy", "nlp", "computer vision", "data science", "statistics",
	"ml", "ai", "neural networks", "transformers", "llm",

	// Tools and practices
	"git", "jira", "agile", "scrum", "rest api", "graphql", "microservices",
	"kafka", "rabbitmq", "spark", "hadoop", "etl", "data engineering",

	// Mobile
	"android", "ios", "react native", "flutter", "xamarin",

	// Other
	"blockchain", "solidity", "web3", "cybersecurity", "penetration testing",
	"networking", "tcp/ip", "api", "restful", "soap", "xml", "json",
)

// softSkills is the soft-skill vocabulary matched against text.
var softSkills = newSet(
	"leadership", "communication", "teamwork", "problem solving", "analytical",
	"creative", "adaptable", "time management", "project management",
	"collaboration", "critical thinking", "decision making", "mentoring",
	"presentation", "negotiation", "conflict resolution", "empathy",
)

// educationKeywords mark the presence of an education section.
var educationKeywords = []string{
	"bachelor", "master", "phd", "mba", "degree", "university", "college",
	"certification", "certified", "diploma", "doctorate", "b.tech", "m.tech",
	"b.sc", "m.sc", "b.e", "m.e", "b.a", "m.a",
}

// sortedTechnical and sortedSoft fix the scan order so extraction is deterministic.
var (
	sortedTechnical = technicalSkills.sorted()
	sortedSoft      = softSkills.sorted()
)

// Canonical returns the canonical spelling of skill, or skill itself when it has no synonym.
func Canonical(skill string) string {
	if c, ok := synonyms[skill]; ok {
		return c
	}
	return skill
}

// EducationKeywords returns the education vocabulary.
func EducationKeywords() []string {
	out := make([]string, len(educationKeywords))
	copy(out, educationKeywords)
	return out
}
