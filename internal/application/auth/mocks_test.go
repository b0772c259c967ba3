package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"
	"time"

	"hungrylist/internal/domain/auth"
)

type memFailureRepository struct {
	mu      sync.Mutex
	records map[string]auth.FailureRecord
	locked  int
}

func newMemFailureRepository() *memFailureRepository {
	return &memFailureRepository{records: make(map[string]auth.FailureRecord)}
}

func (m *memFailureRepository) Get(ctx context.Context, clientID string) (*auth.FailureRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[clientID]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memFailureRepository) GetForUpdate(ctx context.Context, clientID string, _ time.Time) (*auth.FailureRecord, error) {
	m.mu.Lock()
	m.locked++
	m.mu.Unlock()
	return m.Get(ctx, clientID)
}

func (m *memFailureRepository) Save(ctx context.Context, record *auth.FailureRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[record.ClientID] = *record
	return nil
}

func (m *memFailureRepository) Delete(ctx context.Context, clientID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, clientID)
	return nil
}

type memSessionRepository struct {
	mu       sync.Mutex
	sessions []*auth.Session
}

func (m *memSessionRepository) Create(ctx context.Context, session *auth.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *session
	m.sessions = append(m.sessions, &cp)
	return nil
}

func (m *memSessionRepository) FindValidByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*auth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		if s.TokenHash == tokenHash && s.IsValid(now) {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memSessionRepository) RevokeByTokenHash(ctx context.Context, tokenHash string, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.sessions {
		if s.TokenHash == tokenHash && s.IsValid(now) {
			at := now
			s.RevokedAt = &at
			n++
		}
	}
	return n, nil
}

func (m *memSessionRepository) RevokeAllValid(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, s := range m.sessions {
		if s.IsValid(now) {
			at := now
			s.RevokedAt = &at
			n++
		}
	}
	return n, nil
}

// seqTokens issues tok-1, tok-2, ... and hashes with plain sha256.
type seqTokens struct {
	n int
}

func (s *seqTokens) Generate() (string, string, error) {
	s.n++
	plain := "tok-" + strconv.Itoa(s.n)
	return plain, s.HashToken(plain), nil
}

func (s *seqTokens) HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

type staticPIN string

func (p staticPIN) Verify(candidate string) bool {
	return string(p) == candidate
}
