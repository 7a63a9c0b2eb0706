package model

import "time"

// DatasetImport records one load of the filing export into the database.
type DatasetImport struct {
	ID             string    `json:"id"`
	Source         string    `json:"source"`
	CandidateCount int       `json:"candidateCount"`
	ReportCount    int       `json:"reportCount"`
	ImportedAt     time.Time `json:"importedAt"`
}
