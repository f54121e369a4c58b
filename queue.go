package memocache

import "github.com/skipor/memocache/internal/tag"

// queue is the age-ordered entry list. Invariants for push and detach:
// * {fakeHead, all owned entries, fakeTail} are correct doubly linked list.
// * an entry appears at most once, at the position of its insert or Set.
type queue struct {
	// Fake nodes. Real entries are between them.
	// nil <- fakeHead <-> e_0 <-> ... <-> e_(n-1) <-> fakeTail -> nil
	// Such structure prevent nil checks in code.

	// fakeHead.next is the oldest entry, the first sweep candidate.
	fakeHead *entry

	// fakeTail.prev is the newest entry. All new entries attach before fakeTail.
	fakeTail *entry
}

// For debug output.
const fakeHeadKey = " !HEAD! "
const fakeTailKey = " !TAIL! "

func newQueue() *queue {
	q := &queue{}
	q.fakeHead, q.fakeTail = &entry{}, &entry{}
	q.fakeHead.key = fakeHeadKey
	q.fakeTail.key = fakeTailKey
	link(q.fakeHead, q.fakeTail)
	return q
}

// push appends e as the newest entry.
func (q *queue) push(e *entry) {
	link(q.tail(), e)
	link(e, q.fakeTail)
}

func (q *queue) head() *entry      { return q.fakeHead.next }
func (q *queue) tail() *entry      { return q.fakeTail.prev }
func (q *queue) end(e *entry) bool { return e == q.fakeTail }
func (q *queue) empty() bool       { return q.end(q.head()) }

func (e *entry) detach() {
	link(e.prev, e.next)
	if tag.Debug {
		e.prev = nil
		e.next = nil
	}
}

func link(a, b *entry) { a.next, b.prev = b, a }
