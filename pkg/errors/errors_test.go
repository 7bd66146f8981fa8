package errors_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	srvErrors "github.com/kubev2v/squad-to-scale-migrator/pkg/errors"
)

var _ = Describe("Errors", func() {
	// Given typed errors wrapped with context
	// When we test them with the predicates
	// Then the type should be found through the wrapping
	DescribeTable("predicates should see through wrapping",
		func(err error, is func(error) bool) {
			wrapped := fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", err))
			Expect(is(wrapped)).To(BeTrue())
			Expect(is(errors.New("plain"))).To(BeFalse())
		},
		Entry("APIError", srvErrors.NewAPIError(400, "bad", "/x"), srvErrors.IsAPIError),
		Entry("NoAnswerError", srvErrors.NewNoAnswerError("/x", 3, nil), srvErrors.IsNoAnswerError),
		Entry("DecodingError", srvErrors.NewDecodingError("gzip", errors.New("bad header")), srvErrors.IsDecodingError),
		Entry("MissingDependentRecordError", srvErrors.NewMissingTestCaseError("PROJ-T1"), srvErrors.IsMissingDependentRecordError),
		Entry("AmbiguousUserMatchError", srvErrors.NewAmbiguousUserMatchError("jdoe", 2), srvErrors.IsAmbiguousUserMatchError),
		Entry("AttachmentNotFoundError", srvErrors.NewAttachmentNotFoundError("/a"), srvErrors.IsAttachmentNotFoundError),
		Entry("ProjectKeyUnresolvedError", srvErrors.NewProjectKeyUnresolvedError("P", []string{"A", "B"}), srvErrors.IsProjectKeyUnresolvedError),
		Entry("UnsupportedDatabaseError", srvErrors.NewUnsupportedDatabaseError("db2"), srvErrors.IsUnsupportedDatabaseError),
	)

	It("should expose the wrapped APIError", func() {
		err := fmt.Errorf("creating test case: %w", srvErrors.NewAPIError(400, "Custom field name is duplicated", "/rest/atm/1.0/customfield"))

		apiErr, ok := srvErrors.AsAPIError(err)
		Expect(ok).To(BeTrue())
		Expect(apiErr.StatusCode).To(Equal(400))
		Expect(apiErr.Body).To(ContainSubstring("duplicated"))
	})

	It("should keep the cause of NoAnswerError", func() {
		cause := errors.New("retryable status 503")
		err := srvErrors.NewNoAnswerError("/rest/api/2/search", 3, cause)

		Expect(errors.Is(err, cause)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("after 3 attempts"))
	})

	It("should describe ambiguous matches", func() {
		Expect(srvErrors.NewAmbiguousUserMatchError("jdoe", 2).Error()).To(Equal("multiple users found for the same username: jdoe"))
		Expect(srvErrors.NewAmbiguousUserMatchError("jdoe", 1).Error()).To(ContainSubstring("different user"))
	})
})
