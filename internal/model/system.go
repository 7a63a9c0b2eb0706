package model

import "time"

// VersionInfo contains version, feature and dataset information for the application.
type VersionInfo struct {
	AppVersion      string          `json:"app_version"`
	DbVersion       string          `json:"db_version"`
	Features        map[string]bool `json:"features"`
	DatasetSource   string          `json:"dataset_source"`
	DatasetLoadedAt time.Time       `json:"dataset_loaded_at"`
	CandidateCount  int             `json:"candidate_count"`
	RaceCount       int             `json:"race_count"`
}
