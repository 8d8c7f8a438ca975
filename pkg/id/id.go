// Package id issues ULIDs for journal rows and replay sessions.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator hands out ULIDs that sort by creation time, including several
// issued within the same millisecond.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
	now     func() time.Time
}

// NewGenerator seeds a monotonic entropy source from crypto/rand.
func NewGenerator() *Generator {
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		entropy: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
		now:     time.Now,
	}
}

// New returns the next ULID at the current time.
func (g *Generator) New() string {
	return g.At(g.now())
}

// At returns the next ULID stamped with t. Replays use bar time so IDs
// follow the chart, not the wall clock.
func (g *Generator) At(t time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), g.entropy)
	if err != nil {
		// only when entropy is exhausted within one millisecond or time
		// is out of ULID range
		panic(err)
	}
	return id.String()
}

var std = NewGenerator()

// New returns a ULID from the package generator.
func New() string {
	return std.New()
}

// Time extracts the timestamp encoded in a ULID string.
func Time(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
