package services_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/21f1001434/Agentic-AI/internal/services"
)

var _ = Describe("Format", func() {
	DescribeTable("should render KPI values",
		func(in any, expected string) {
			Expect(services.Format(in)).To(Equal(expected))
		},
		Entry("fraction", 0.5, "0.5000"),
		Entry("negative fraction", -0.25, "-0.2500"),
		Entry("zero", 0, "0.0000"),
		Entry("small number", 12.5, "12.50"),
		Entry("hundreds", 999, "999.00"),
		Entry("thousands", 1500, "1.50K"),
		Entry("millions", 1234567, "1.23M"),
		Entry("billions", 2.5e9, "2.50B"),
		Entry("negative thousands", -1500.0, "-1.50K"),
		Entry("numeric string", "1500", "1.50K"),
		Entry("NaN", math.NaN(), "NA"),
		Entry("infinity", math.Inf(1), "NA"),
		Entry("nil", nil, "NA"),
		Entry("text", "abc", "abc"),
		Entry("true", true, "1.00"),
		Entry("false", false, "0.0000"),
	)
})
