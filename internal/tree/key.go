package tree

import (
	"encoding/binary"
	"runtime"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/swiss"
)

// Key identifies a node among its siblings.
type Key uint64

// NodeID identifies a node in the whole tree. It is the keys on the path
// from the root mixed together, so it is the same for the same position on
// every rebuild and every run.
type NodeID uint64

// RootKey is the key of the implicit root node.
var RootKey = KeyOf("weft.root")

// RootID is the NodeID of the implicit root node.
var RootID = childID(0, RootKey)

var sites struct {
	mu sync.Mutex
	m  swiss.Map[uintptr, uint64]
}

func init() {
	sites.m.Init(64)
}

// callSite hashes the file and line of the caller skip frames above its
// own caller, plus the call's offset into its function so that calls
// sharing a line differ. Offsets are fixed for a given binary, unlike raw
// program counters under PIE. Hashes are cached per program counter.
func callSite(skip int) uint64 {
	var pcs [1]uintptr
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return 0
	}
	pc := pcs[0]

	sites.mu.Lock()
	h, ok := sites.m.Get(pc)
	sites.mu.Unlock()
	if ok {
		return h
	}

	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	site := frame.File + ":" + strconv.Itoa(frame.Line)
	if frame.Entry != 0 {
		site += "+" + strconv.FormatUint(uint64(frame.PC-frame.Entry), 16)
	}
	h = xxhash.Sum64String(site)

	sites.mu.Lock()
	sites.m.Put(pc, h)
	sites.mu.Unlock()
	return h
}

// ID derives a key from the call site skip frames above the caller of ID,
// mixed with disambiguators. Distinct calls get distinct keys even on one
// line, but every pass through one call (a loop body) gets the same key
// unless it is disambiguated.
func ID(skip int, disambiguators ...uint64) Key {
	return Key(mix(callSite(skip+1), disambiguators...))
}

// KeyOf derives a key from a name, mixed with disambiguators.
func KeyOf(name string, disambiguators ...uint64) Key {
	return Key(mix(xxhash.Sum64String(name), disambiguators...))
}

// Path returns the NodeID of the node reached from the root by keys.
func Path(keys ...Key) NodeID {
	id := RootID
	for _, k := range keys {
		id = childID(id, k)
	}
	return id
}

func childID(parent NodeID, k Key) NodeID {
	return NodeID(mix(uint64(parent), uint64(k)))
}

func mix(h uint64, vals ...uint64) uint64 {
	if len(vals) == 0 {
		return h
	}
	var buf [8]byte
	d := xxhash.New()
	binary.LittleEndian.PutUint64(buf[:], h)
	_, _ = d.Write(buf[:])
	for _, v := range vals {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
