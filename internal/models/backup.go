package models

import "time"

// BackupMetadata is the summary of a single backup file on disk.
type BackupMetadata struct {
	Filename       string    `json:"filename"`
	Size           int64     `json:"size"`
	Created        time.Time `json:"created"`
	Modified       time.Time `json:"modified"`
	BackupDate     string    `json:"backupDate,omitempty"`
	PortfolioCount int       `json:"portfolioCount"`
	ServicesCount  int       `json:"servicesCount"`
}
