package models_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
)

var _ = Describe("TestCaseMap", func() {
	// Given test cases created out of order
	// When we order them
	// Then they should be sorted by numeric issue id
	It("should order entries by numeric issue id", func() {
		m := models.TestCaseMap{
			{IssueID: "100", IssueKey: "P-3"}: "P-T3",
			{IssueID: "9", IssueKey: "P-1"}:   "P-T1",
			{IssueID: "abc", IssueKey: "P-9"}: "P-T9",
			{IssueID: "20", IssueKey: "P-2"}:  "P-T2",
		}

		var ids []string
		for _, e := range m.Ordered() {
			ids = append(ids, e.Source.IssueID)
		}

		Expect(ids).To(Equal([]string{"9", "20", "100", "abc"}))
	})
})

var _ = Describe("EntitiesMap", func() {
	It("should be empty until something is recorded", func() {
		e := models.NewEntitiesMap()
		Expect(e.Empty()).To(BeTrue())

		e.TestSteps.Put("P-T1", models.TestStepKey{StepID: "1", StepOrder: "1"}, nil)
		Expect(e.Empty()).To(BeFalse())
		Expect(e.TestSteps["P-T1"]).To(HaveKey(models.TestStepKey{StepID: "1", StepOrder: "1"}))
	})
})

var _ = Describe("Optional", func() {
	type payload struct {
		Version models.Optional[string] `json:"version,omitzero"`
		Name    string                  `json:"name"`
	}

	It("should omit absent values", func() {
		body, err := json.Marshal(payload{Name: "c"})
		Expect(err).NotTo(HaveOccurred())
		Expect(body).To(MatchJSON(`{"name":"c"}`))
	})

	It("should encode present values", func() {
		body, err := json.Marshal(payload{Name: "c", Version: models.Some("1.0")})
		Expect(err).NotTo(HaveOccurred())
		Expect(body).To(MatchJSON(`{"name":"c","version":"1.0"}`))
	})

	It("should decode null as absent", func() {
		var p payload
		Expect(json.Unmarshal([]byte(`{"version":null}`), &p)).To(Succeed())
		Expect(p.Version.IsZero()).To(BeTrue())
		Expect(p.Version.OrElse("none")).To(Equal("none"))

		Expect(json.Unmarshal([]byte(`{"version":"2.0"}`), &p)).To(Succeed())
		v, ok := p.Version.Get()
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("2.0"))
	})
})

var _ = Describe("FlexString", func() {
	DescribeTable("should accept strings and numbers",
		func(raw, expected string) {
			var f models.FlexString
			Expect(json.Unmarshal([]byte(raw), &f)).To(Succeed())
			Expect(f.String()).To(Equal(expected))
		},
		Entry("string", `"10001"`, "10001"),
		Entry("number", `10001`, "10001"),
		Entry("negative", `-1`, "-1"),
		Entry("null", `null`, ""),
	)
})

var _ = Describe("MigrationState", func() {
	It("should parse known states only", func() {
		s, err := models.ParseMigrationState("done")
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(models.MigrationStateDone))

		_, err = models.ParseMigrationState("paused")
		Expect(err).To(HaveOccurred())
	})
})
