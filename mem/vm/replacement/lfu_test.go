package replacement

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/mem/vm/frametable"
)

var _ = Describe("TieBreak", func() {
	It("should round trip through its name", func() {
		for _, tb := range []TieBreak{TieBreakUniform, TieBreakCoinFlip} {
			parsed, err := ParseTieBreak(tb.String())

			Expect(err).NotTo(HaveOccurred())
			Expect(parsed).To(Equal(tb))
		}
	})

	It("should reject unknown names", func() {
		_, err := ParseTieBreak("lottery")

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("LFUVictimFinder", func() {
	var (
		table  frametable.FrameTable
		finder *LFUVictimFinder
	)

	BeforeEach(func() {
		table = frametable.NewFrameTable(3)
		finder = NewLFUVictimFinder(rand.New(rand.NewSource(1)), TieBreakUniform)
	})

	It("should require a random source", func() {
		Expect(func() { NewLFUVictimFinder(nil, TieBreakUniform) }).To(Panic())
	})

	It("should count loads and hits", func() {
		load(table, finder, 0, 5)
		finder.Visit(table.Frame(0))

		Expect(finder.UseCount(5)).To(Equal(2))
		Expect(finder.UseCount(6)).To(Equal(0))
	})

	It("should evict the least used frame", func() {
		load(table, finder, 0, 10)
		load(table, finder, 1, 11)
		load(table, finder, 2, 12)
		finder.Visit(table.Frame(0))
		finder.Visit(table.Frame(2))

		Expect(finder.FindVictim(table, 0).Page).To(Equal(uint64(11)))
	})

	It("should keep use counts across residencies", func() {
		load(table, finder, 0, 10)
		finder.Visit(table.Frame(0))
		finder.Visit(table.Frame(0))

		load(table, finder, 0, 11)
		load(table, finder, 0, 10)

		Expect(finder.UseCount(10)).To(Equal(4))
	})

	It("should break ties uniformly", func() {
		load(table, finder, 0, 10)
		load(table, finder, 1, 11)
		load(table, finder, 2, 12)

		const trials = 30000
		hits := make([]int, 3)
		for i := 0; i < trials; i++ {
			hits[finder.FindVictim(table, 0).SlotID]++
		}

		for _, h := range hits {
			Expect(float64(h) / trials).To(BeNumerically("~", 1.0/3, 0.02))
		}
	})

	It("should only break ties among the lowest count", func() {
		load(table, finder, 0, 10)
		load(table, finder, 1, 11)
		load(table, finder, 2, 12)
		finder.Visit(table.Frame(1))

		for i := 0; i < 200; i++ {
			Expect(finder.FindVictim(table, 0).SlotID).NotTo(Equal(1))
		}
	})

	Context("with coin flip tie break", func() {
		BeforeEach(func() {
			finder = NewLFUVictimFinder(
				rand.New(rand.NewSource(1)), TieBreakCoinFlip)
		})

		It("should favor later slots", func() {
			load(table, finder, 0, 10)
			load(table, finder, 1, 11)
			load(table, finder, 2, 12)

			const trials = 30000
			hits := make([]int, 3)
			for i := 0; i < trials; i++ {
				hits[finder.FindVictim(table, 0).SlotID]++
			}

			Expect(float64(hits[0]) / trials).To(BeNumerically("~", 0.25, 0.02))
			Expect(float64(hits[1]) / trials).To(BeNumerically("~", 0.25, 0.02))
			Expect(float64(hits[2]) / trials).To(BeNumerically("~", 0.5, 0.02))
		})

		It("should still pick the unique minimum", func() {
			load(table, finder, 0, 10)
			load(table, finder, 1, 11)
			load(table, finder, 2, 12)
			finder.Visit(table.Frame(0))
			finder.Visit(table.Frame(1))

			for i := 0; i < 100; i++ {
				Expect(finder.FindVictim(table, 0).SlotID).To(Equal(2))
			}
		})
	})
})
