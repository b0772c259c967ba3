package auth

import (
	"strings"

	"hungrylist/internal/domain/auth"
)

// NormalizeClientID maps an empty or blank address to the shared unknown
// bucket so every unidentifiable caller counts against one record.
func NormalizeClientID(clientID string) string {
	if clientID = strings.TrimSpace(clientID); clientID == "" {
		return auth.UnknownClientID
	}
	return clientID
}
