package sim

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
)

// IDGenerator can generate IDs
type IDGenerator interface {
	// Generate an ID
	Generate() string
}

var (
	idGeneratorMutex sync.RWMutex
	idGenerator      IDGenerator = &sequentialIDGenerator{}
)

// GetIDGenerator returns the ID generator used by the events.
func GetIDGenerator() IDGenerator {
	idGeneratorMutex.RLock()
	defer idGeneratorMutex.RUnlock()

	return idGenerator
}

// UseSequentialIDGenerator makes event IDs deterministic. This is the
// default, since the serial engine replays the same paddle script into the
// same trace.
func UseSequentialIDGenerator() {
	setIDGenerator(&sequentialIDGenerator{})
}

// UseXIDGenerator makes event IDs globally unique. Events scheduled from
// several goroutines, as with the real-time engine, do not need ordered IDs.
func UseXIDGenerator() {
	setIDGenerator(xidGenerator{})
}

func setIDGenerator(g IDGenerator) {
	idGeneratorMutex.Lock()
	idGenerator = g
	idGeneratorMutex.Unlock()
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)
	return strconv.FormatUint(idNumber, 10)
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}
