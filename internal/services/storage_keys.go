package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// sanitizeObjectName flattens path separators out of an original filename so
// it can be embedded as the last segment of an object path.
func sanitizeObjectName(name string) string {
	return strings.ReplaceAll(name, "/", "_")
}

// newObjectToken returns the random token that namespaces one stored object.
// Uniqueness of object paths rests on this token, not on the filename.
func newObjectToken() string {
	return uuid.New().String()
}

func intakeObjectKey(itemID uuid.UUID, fileName string) string {
	return fmt.Sprintf("intake/%s/%s-%s", itemID.String(), newObjectToken(), sanitizeObjectName(fileName))
}

func assetObjectKey(assetID uuid.UUID, fileName string) string {
	return fmt.Sprintf("assets/%s/%s-%s", assetID.String(), newObjectToken(), sanitizeObjectName(fileName))
}

// stripExtension is the filename fallback for a promoted asset's name: the
// first file's name with its extension removed.
func stripExtension(name string) string {
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[:idx]
	}
	return name
}
