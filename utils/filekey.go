package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"time"
)

// GenerateShortID generates a short, URL-safe random ID
// Format: 8 characters, lowercase alphanumeric
// Example: "x7k9m2p1"
func GenerateShortID() string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	const length = 8

	result := make([]byte, length)
	for i := range result {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		result[i] = chars[num.Int64()]
	}

	return string(result)
}

// GenerateObjectKey builds a collision-resistant object store key for an
// uploaded file, scoped under the owning project.
// Format: {prefix}/{projectID}/{unixTimestamp}-{shortID}{ext}
// Example: "deliverables/3f2a.../1714650000-x7k9m2p1.zip"
func GenerateObjectKey(prefix, projectID, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s/%s/%d-%s%s", prefix, projectID, time.Now().Unix(), GenerateShortID(), ext)
}
