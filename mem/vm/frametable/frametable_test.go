package frametable

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FrameTable", func() {
	var table FrameTable

	BeforeEach(func() {
		table = NewFrameTable(3)
	})

	It("should panic without frames", func() {
		Expect(func() { NewFrameTable(0) }).To(Panic())
	})

	It("should start empty", func() {
		Expect(table.NumFrames()).To(Equal(3))
		Expect(table.NumResident()).To(Equal(0))

		for i, f := range table.Frames() {
			Expect(f.SlotID).To(Equal(i))
			Expect(f.IsValid).To(BeFalse())
		}
	})

	It("should return the first free frame", func() {
		table.Install(0, 7)

		f, ok := table.FindFree()

		Expect(ok).To(BeTrue())
		Expect(f.SlotID).To(Equal(1))
	})

	It("should report no free frame when full", func() {
		table.Install(0, 1)
		table.Install(1, 2)
		table.Install(2, 3)

		_, ok := table.FindFree()

		Expect(ok).To(BeFalse())
		Expect(table.NumResident()).To(Equal(3))
	})

	It("should find resident pages", func() {
		table.Install(1, 9)

		f, ok := table.FindResident(9)

		Expect(ok).To(BeTrue())
		Expect(f).To(Equal(Frame{SlotID: 1, Page: 9, IsValid: true}))
	})

	It("should not treat an empty frame as holding page 0", func() {
		_, ok := table.FindResident(0)

		Expect(ok).To(BeFalse())
	})

	It("should overwrite on install", func() {
		table.Install(2, 4)
		table.Install(2, 5)

		_, ok := table.FindResident(4)
		Expect(ok).To(BeFalse())
		Expect(table.Frame(2).Page).To(Equal(uint64(5)))
	})

	It("should panic when the slot is out of range", func() {
		Expect(func() { table.Install(3, 1) }).To(Panic())
		Expect(func() { table.Install(-1, 1) }).To(Panic())
		Expect(func() { table.Frame(5) }).To(Panic())
	})

	It("should not expose its internal slots", func() {
		table.Install(0, 1)

		frames := table.Frames()
		frames[0].Page = 100

		Expect(table.Frame(0).Page).To(Equal(uint64(1)))
	})

	It("should reset all frames", func() {
		table.Install(0, 1)
		table.Install(1, 2)

		table.Reset()

		Expect(table.NumResident()).To(Equal(0))
		Expect(table.Frame(1)).To(Equal(Frame{SlotID: 1}))
	})
})
