package util_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/squad-to-scale-migrator/internal/util"
)

var _ = Describe("Util", func() {
	DescribeTable("CalculateBucket",
		func(n, expected int) {
			Expect(util.CalculateBucket(n)).To(Equal(expected))
		},
		Entry("first issue", 1, 10000),
		Entry("last issue of first bucket", 10000, 10000),
		Entry("first issue of second bucket", 10001, 20000),
		Entry("last issue of second bucket", 20000, 20000),
		Entry("first issue of third bucket", 20001, 30000),
		Entry("round hundred thousand", 100000, 100000),
	)

	Describe("ProgressBar", func() {
		It("should render a half full bar", func() {
			bar := util.ProgressBar(5, 10, 3723*time.Second)
			Expect(bar).To(Equal(" 50% [===============>               ] 5/10 (Elapsed Time: 01:02:03)"))
		})

		It("should render a full bar", func() {
			bar := util.ProgressBar(4, 4, 0)
			Expect(bar).To(Equal("100% [==============================>] 4/4 (Elapsed Time: 00:00:00)"))
		})

		It("should render an empty bar when there is nothing to do", func() {
			bar := util.ProgressBar(0, 0, 59*time.Second)
			Expect(bar).To(HavePrefix("  0% [>"))
			Expect(bar).To(HaveSuffix("0/0 (Elapsed Time: 00:00:59)"))
		})
	})

	It("should find a string in a slice", func() {
		Expect(util.Contains([]string{"teststep", "schedule"}, "schedule")).To(BeTrue())
		Expect(util.Contains([]string{"teststep"}, "schedule")).To(BeFalse())
	})
})
