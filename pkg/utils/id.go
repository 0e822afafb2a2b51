package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GenerateRunID generates a run ID with a timestamp prefix for easy
// sorting in logs and result listings.
func GenerateRunID() string {
	timestamp := time.Now().Format("20060102-150405")
	return fmt.Sprintf("run-%s-%s", timestamp, uuid.NewString()[:8])
}

// GenerateExportName generates a default filename for a result export.
func GenerateExportName(molecule string) string {
	timestamp := time.Now().Format("20060102-150405")
	return fmt.Sprintf("%s_vqe_%s.json", molecule, timestamp)
}
