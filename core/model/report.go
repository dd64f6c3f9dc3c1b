package model

import "time"

// Analysis is the scoring section of a report: the inputs that were scored
// and the resulting distribution.
type Analysis struct {
	Intersection string       `json:"intersection_type"`
	Hour         int          `json:"hour"`
	V1Speed      float64      `json:"v1_speed"`
	V1Direction  string       `json:"v1_dir"`
	V2Speed      float64      `json:"v2_speed"`
	V2Direction  string       `json:"v2_dir"`
	Probs        Distribution `json:"probs"`
	Best         Scenario     `json:"best"`
	Backend      string       `json:"backend,omitempty"`
}

// Report is assembled once per analysis run and lives only in session memory.
type Report struct {
	ID          string          `json:"id"`
	App         string          `json:"app"`
	Accident    AccidentContext `json:"accident"`
	Parties     []Party         `json:"parties"`
	Analysis    Analysis        `json:"analysis"`
	GeneratedAt time.Time       `json:"generated_at"`
}
