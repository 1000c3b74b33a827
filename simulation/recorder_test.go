package simulation

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"
)

var _ = Describe("ResultRecorder", func() {
	var (
		mockCtrl     *gomock.Controller
		dataRecorder *MockDataRecorder
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		dataRecorder = NewMockDataRecorder(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should record run results only", func() {
		dataRecorder.EXPECT().CreateTable(RunTableName, runEntry{})

		s := buildWithPages(1, 0, 1, 0)
		s.AcceptHook(NewResultRecorder(dataRecorder, false))

		dataRecorder.EXPECT().InsertData(RunTableName, runEntry{
			RunID:         "1",
			Policy:        "fifo",
			Faults:        3,
			NumReferences: 3,
			OpenPages:     1,
			PageSize:      testPageSize,
		})

		Expect(s.RunFIFO()).To(Equal(3))
	})

	It("should record every reference when asked", func() {
		dataRecorder.EXPECT().CreateTable(RunTableName, runEntry{})
		dataRecorder.EXPECT().CreateTable(ReferenceTableName, referenceEntry{})

		s := buildWithPages(1, 0, 1)
		s.AcceptHook(NewResultRecorder(dataRecorder, true))

		gomock.InOrder(
			dataRecorder.EXPECT().InsertData(ReferenceTableName, referenceEntry{
				RunID:    "1",
				Position: 0,
				Address:  0,
				Page:     0,
				Fault:    true,
			}),
			dataRecorder.EXPECT().InsertData(ReferenceTableName, referenceEntry{
				RunID:       "1",
				Position:    1,
				Address:     testPageSize + 1,
				Page:        1,
				PageOffset:  1,
				Fault:       true,
				Evicted:     true,
				EvictedPage: 0,
			}),
			dataRecorder.EXPECT().InsertData(RunTableName, gomock.Any()),
		)

		Expect(s.RunOPT()).To(Equal(2))
	})
})
