package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Fingerprint derives the content fingerprint for duplicate detection.
// It hashes the file bytes only, so renaming a file does not evade the check.
func Fingerprint(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// RowFingerprint identifies a single financial row within a source kind.
// Re-ingesting the same row (from a different file) is treated as a
// row-level duplicate rather than a second record.
func RowFingerprint(sourceKind string, date time.Time, amount float64, description string) string {
	key := fmt.Sprintf("%s|%s|%.2f|%s",
		sourceKind,
		date.Format("2006-01-02"),
		amount,
		strings.ToLower(strings.TrimSpace(description)),
	)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
