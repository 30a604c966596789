package service

import "github.com/google/uuid"

// UUIDGenerator backs commit ids and session tokens. Injected so tests can
// substitute deterministic ids.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

var _ IdGenerator = UUIDGenerator{}
