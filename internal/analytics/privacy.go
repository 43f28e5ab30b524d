package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"
)

// RandomToken returns 32 random bytes, hex encoded.
func RandomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Hasher hashes IP addresses with a per-process salt. Hashes are stable for
// the life of the process and cannot be joined across restarts.
type Hasher struct {
	salt string
}

// NewHasher creates a hasher with a fresh random salt.
func NewHasher() (*Hasher, error) {
	salt, err := RandomToken()
	if err != nil {
		return nil, err
	}
	return &Hasher{salt: salt}, nil
}

// HashIP returns a truncated salted SHA-256 of ip.
func (h *Hasher) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin/",
	"/favicon",
	"/privacy",
	"/healthz",
	"/functions/",
}

// ShouldTrack reports whether a request path counts as a page view.
// Visitors sending DNT: 1 are never tracked.
func ShouldTrack(path, dnt string) bool {
	if dnt == "1" {
		return false
	}
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// Tracker records page views and refine outcomes.
type Tracker struct {
	store  *Store
	hasher *Hasher
	now    func() time.Time
	async  bool
}

// NewTracker creates a tracker. When async is set, writes happen off the
// request goroutine.
func NewTracker(store *Store, hasher *Hasher, async bool) *Tracker {
	return &Tracker{store: store, hasher: hasher, now: time.Now, async: async}
}

// Store exposes the underlying store for the admin pages.
func (t *Tracker) Store() *Store { return t.store }

// HashIP hashes ip with the tracker's salt.
func (t *Tracker) HashIP(ip string) string { return t.hasher.HashIP(ip) }

// Visit records a page view.
func (t *Tracker) Visit(ip, userAgent, path string) {
	t.run(func(ctx context.Context) error {
		return t.store.RecordVisit(ctx, t.hasher.HashIP(ip), userAgent, path, t.now())
	})
}

// Refinement records a refine outcome.
func (t *Tracker) Refinement(outcome Outcome) {
	t.run(func(ctx context.Context) error {
		return t.store.RecordRefinement(ctx, outcome, t.now())
	})
}

func (t *Tracker) run(fn func(context.Context) error) {
	if !t.async {
		if err := fn(context.Background()); err != nil {
			log.Printf("Error recording analytics: %v", err)
		}
		return
	}
	go func() {
		if err := fn(context.Background()); err != nil {
			log.Printf("Error recording analytics: %v", err)
		}
	}()
}

// Cleanup removes data older than retention and logs what it removed.
func (t *Tracker) Cleanup(ctx context.Context, retention time.Duration) {
	n, err := t.store.Cleanup(ctx, retention, t.now())
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Privacy cleanup: removed %d records older than %s", n, retention)
	}
}
