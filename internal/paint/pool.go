package paint

import "sync"

// maxPooledItems bounds the lists kept for reuse. A list that grew past it
// for one unusual frame is left to the garbage collector.
const maxPooledItems = 1 << 16

var listPool = sync.Pool{
	New: func() any { return &List{} },
}

// Get returns an empty list with room for at least hint items.
func Get(hint int) *List {
	l := listPool.Get().(*List)
	if cap(l.items) < hint {
		l.items = make([]Item, 0, hint)
	}
	return l
}

// Put returns l to the pool. l must not be used afterwards.
func Put(l *List) {
	if l == nil || cap(l.items) > maxPooledItems {
		return
	}
	l.Reset()
	listPool.Put(l)
}

var bytesPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 4096)
		return &b
	},
}

func getBytes() *[]byte {
	return bytesPool.Get().(*[]byte)
}

func putBytes(b *[]byte) {
	if cap(*b) > maxPooledItems*64 {
		return
	}
	bytesPool.Put(b)
}
