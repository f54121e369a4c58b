package memocache

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Queue", func() {
	var q *queue
	BeforeEach(func() {
		resetTestKeys()
		q = newQueue()
	})
	AfterEach(func() {
		q.ExpectInvariantsOk()
	})
	It("init", func() {
		Expect(q.empty()).To(BeTrue())
	})

	It("push", func() {
		e := testEntry()
		q.push(e)
		Expect(q.empty()).To(BeFalse())
		Expect(q.head()).To(BeIdenticalTo(e))
		Expect(q.tail()).To(BeIdenticalTo(e))
	})

	It("push keeps age order", func() {
		e1, e2, e3 := testEntry(), testEntry(), testEntry()
		for _, e := range []*entry{e1, e2, e3} {
			q.push(e)
		}
		Expect(q.entries()).To(Equal([]*entry{e1, e2, e3}))
	})

	Context("detach", func() {
		var e1, e2, e3 *entry
		BeforeEach(func() {
			e1, e2, e3 = testEntry(), testEntry(), testEntry()
			for _, e := range []*entry{e1, e2, e3} {
				q.push(e)
			}
		})
		It("head", func() {
			e1.detach()
			Expect(q.entries()).To(Equal([]*entry{e2, e3}))
		})
		It("middle", func() {
			e2.detach()
			Expect(q.entries()).To(Equal([]*entry{e1, e3}))
		})
		It("tail", func() {
			e3.detach()
			Expect(q.entries()).To(Equal([]*entry{e1, e2}))
		})
		It("all", func() {
			for _, e := range []*entry{e2, e3, e1} {
				e.detach()
			}
			Expect(q.empty()).To(BeTrue())
		})
	})
})

var _ = Describe("Entry", func() {
	It("zero deadline never expires", func() {
		e := newEntry("k", time.Time{})
		Expect(e.expired(time.Now().Add(1000 * time.Hour))).To(BeFalse())
	})
	It("expires after its deadline", func() {
		now := time.Now()
		e := newEntry("k", now.Add(time.Minute))
		Expect(e.expired(now)).To(BeFalse())
		Expect(e.expired(now.Add(2 * time.Minute))).To(BeTrue())
	})
	It("is done only after finish", func() {
		e := newEntry("k", time.Time{})
		Expect(e.done()).To(BeFalse())
		e.finish(nil) // nil is a legitimate final value
		Expect(e.done()).To(BeTrue())
		Expect(e.value).To(BeNil())
	})
})
