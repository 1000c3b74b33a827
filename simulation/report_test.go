package simulation

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Report", func() {
	It("should format the stream", func() {
		Expect(FormatStream([]uint64{0x1a2b, 0x0, 0xffff})).
			To(Equal("Stream: [0x1a2b, 0x0, 0xffff]"))
		Expect(FormatStream(nil)).To(Equal("Stream: []"))
	})

	It("should format a result", func() {
		r := Result{Policy: PolicyOPT, Faults: 42, References: 100}

		Expect(FormatResult(r)).To(Equal(
			"Belady's optimal algorithm simulation experienced 42 faults " +
				"over 100 virtual addresses!"))
	})
})

var _ = Describe("Policy", func() {
	DescribeTable("should parse names",
		func(name string, want Policy) {
			p, err := ParsePolicy(name)

			Expect(err).NotTo(HaveOccurred())
			Expect(p).To(Equal(want))
		},
		Entry("fifo", "fifo", PolicyFIFO),
		Entry("upper case", "LFU", PolicyLFU),
		Entry("opt", " opt ", PolicyOPT),
		Entry("belady", "belady", PolicyOPT),
	)

	It("should reject unknown names", func() {
		_, err := ParsePolicy("clock")

		Expect(err).To(HaveOccurred())
	})

	It("should parse lists", func() {
		ps, err := ParsePolicies("fifo, opt,")

		Expect(err).NotTo(HaveOccurred())
		Expect(ps).To(Equal([]Policy{PolicyFIFO, PolicyOPT}))
	})

	It("should reject empty lists", func() {
		_, err := ParsePolicies(" , ")

		Expect(err).To(HaveOccurred())
	})

	It("should use the report names", func() {
		Expect(PolicyFIFO.DisplayName()).To(Equal("FIFO simulation"))
		Expect(PolicyLFU.DisplayName()).To(Equal("LFU simulation"))
	})
})
