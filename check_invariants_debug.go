//go:build debug
// +build debug

// Gomega should not be dependency in non-debug build.

package memocache

import (
	"errors"
	"log"

	"github.com/facebookgo/stackerr"
	. "github.com/onsi/gomega"
)

var _ = func() (_ struct{}) {
	RegisterFailHandler(GomegaFailHandler)
	return
}()

func GomegaFailHandler(message string, callerSkip ...int) {
	skip := callerSkip[0] + 1
	log.Fatal("FATAL: invariants are broken:", stackerr.WrapSkip(errors.New(message), skip))
}

// checkInvariants requires the write lock be acquired.
func (c *Cache) checkInvariants() {
	q := c.ages
	Expect(q.fakeHead.prev).To(BeNil())
	Expect(q.fakeTail.next).To(BeNil())
	var entries int
	for e := q.head(); !q.end(e); e = e.next {
		entries++
		Expect(e.prev.next).To(BeIdenticalTo(e))
		te, ok := c.table[e.key]
		Expect(ok).To(BeTrue(), "no table ref to entry %s", e.key)
		Expect(te).To(BeIdenticalTo(e), "table refs another entry for %s", e.key)
	}
	Expect(q.tail().next).To(BeIdenticalTo(q.fakeTail))
	Expect(entries).To(Equal(len(c.table)), "table and age list disagree")
}
