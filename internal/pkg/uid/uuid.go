package uid

import "github.com/google/uuid"

// UUID generates UUID strings. The zero value and NewUUID give time ordered
// v7 ids, which sort by creation in object keys. NewRandomUUID gives v4 ids
// for values that must not be guessable, such as OAuth state.
type UUID struct {
	random bool
}

var _ StringID = (*UUID)(nil)

func NewUUID() *UUID {
	return &UUID{}
}

func NewRandomUUID() *UUID {
	return &UUID{random: true}
}

func (u *UUID) Generate() string {
	if u.random {
		return uuid.NewString()
	}

	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
