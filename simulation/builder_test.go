package simulation

import (
	"errors"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/mem/vm/replacement"
	"github.com/sarchlab/pagesim/stream"
)

var _ = Describe("Builder", func() {
	It("should build with the default parameters", func() {
		s, err := MakeBuilder().WithSeed(1).Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(s.Config()).To(Equal(Config{
			PageSize:       4096,
			SequenceLength: 100,
			OpenPages:      3,
			TieBreak:       "uniform",
		}))
		Expect(s.ReferenceStream()).To(HaveLen(100))
	})

	DescribeTable("should reject invalid parameters",
		func(b Builder, field string) {
			s, err := b.Build()

			Expect(s).To(BeNil())
			Expect(errors.Is(err, ErrInvalidConfiguration)).To(BeTrue())

			var cfgErr *ConfigurationError
			Expect(errors.As(err, &cfgErr)).To(BeTrue())
			Expect(cfgErr.Field).To(Equal(field))
		},
		Entry("zero page size", MakeBuilder().WithPageSize(0), "pageSize"),
		Entry("negative page size", MakeBuilder().WithPageSize(-4), "pageSize"),
		Entry("zero open pages", MakeBuilder().WithOpenPages(0), "openPages"),
		Entry("negative sequence length",
			MakeBuilder().WithSequenceLength(-1), "sequenceLength"),
		Entry("unknown tie break",
			MakeBuilder().WithTieBreak(replacement.TieBreak(9)), "tieBreak"),
	)

	It("should report every invalid parameter", func() {
		_, err := MakeBuilder().
			WithPageSize(0).
			WithOpenPages(-1).
			WithSequenceLength(-1).
			Build()

		Expect(err).To(MatchError(ContainSubstring("pageSize")))
		Expect(err).To(MatchError(ContainSubstring("openPages")))
		Expect(err).To(MatchError(ContainSubstring("sequenceLength")))
	})

	It("should accept an empty stream", func() {
		s, err := MakeBuilder().WithSequenceLength(0).Build()

		Expect(err).NotTo(HaveOccurred())
		Expect(s.RunFIFO()).To(Equal(0))
		Expect(s.RunLFU()).To(Equal(0))
		Expect(s.RunOPT()).To(Equal(0))
	})

	It("should fail when the generator cannot provide the stream", func() {
		_, err := MakeBuilder().
			WithStreamGenerator(stream.SliceGenerator{1, 2}).
			WithSequenceLength(3).
			Build()

		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, ErrInvalidConfiguration)).To(BeFalse())
	})

	It("should reject addresses outside the address space", func() {
		_, err := MakeBuilder().
			WithStreamGenerator(stream.SliceGenerator{0x10000}).
			WithSequenceLength(1).
			Build()

		Expect(errors.Is(err, stream.ErrAddressOutOfRange)).To(BeTrue())
	})

	It("should produce the same stream for the same seed", func() {
		a, _ := MakeBuilder().WithSeed(42).Build()
		b, _ := MakeBuilder().WithSeed(42).Build()

		Expect(a.ReferenceStream()).To(Equal(b.ReferenceStream()))
	})

	It("should let WithRand override WithSeed", func() {
		a, _ := MakeBuilder().WithSeed(1).WithRand(rand.New(rand.NewSource(5))).Build()
		b, _ := MakeBuilder().WithRand(rand.New(rand.NewSource(5))).Build()

		Expect(a.ReferenceStream()).To(Equal(b.ReferenceStream()))
	})

	It("should not share hooks between builders", func() {
		base := MakeBuilder().WithSeed(1)
		withHook := base.WithHook(NewReferenceTraceHook(nil))

		a, _ := base.Build()
		b, _ := withHook.Build()

		Expect(a.NumHooks()).To(Equal(0))
		Expect(b.NumHooks()).To(Equal(1))
	})
})
