package models

import "github.com/google/uuid"

// ensureID assigns a v4 id when the row has none so inserts work on drivers
// without a gen_random_uuid() column default.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
