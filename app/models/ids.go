package models

import "github.com/google/uuid"

// ensureID assigns a random UUID to an unset string primary key.
func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
