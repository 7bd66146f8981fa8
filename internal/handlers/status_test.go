package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/kubev2v/squad-to-scale-migrator/api/v1"
	"github.com/kubev2v/squad-to-scale-migrator/internal/handlers"
	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
)

type staticStatus struct {
	status models.MigrationStatus
}

func (s staticStatus) Status() models.MigrationStatus { return s.status }

var _ = Describe("Status handler", func() {
	var router *gin.Engine

	serve := func(status models.MigrationStatus) *httptest.ResponseRecorder {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		handlers.RegisterHandlers(router.Group("/api/v1"), handlers.New(staticStatus{status: status}))

		req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	// Given a migration that has not started yet
	// When the status is requested
	// Then it should report idle without optional fields
	It("should report an idle migration", func() {
		// Act
		rec := serve(models.MigrationStatus{RunID: "run-1", State: models.MigrationStateIdle})

		// Assert
		Expect(rec.Code).To(Equal(http.StatusOK))

		var raw map[string]any
		Expect(json.Unmarshal(rec.Body.Bytes(), &raw)).To(Succeed())
		Expect(raw).To(HaveKeyWithValue("runId", "run-1"))
		Expect(raw).To(HaveKeyWithValue("state", "idle"))
		Expect(raw).NotTo(HaveKey("currentProject"))
		Expect(raw).NotTo(HaveKey("startedAt"))
		Expect(raw).NotTo(HaveKey("error"))
	})

	// Given a running migration on its second project
	// When the status is requested
	// Then it should report the project and the issue progress
	It("should report the progress of a running migration", func() {
		// Arrange
		started := time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)

		// Act
		rec := serve(models.MigrationStatus{
			RunID:           "run-2",
			State:           models.MigrationStateRunning,
			CurrentProject:  "PROJ",
			ProjectIndex:    1,
			ProjectsTotal:   3,
			IssuesProcessed: 200,
			IssuesTotal:     250,
			StartedAt:       started,
		})

		// Assert
		Expect(rec.Code).To(Equal(http.StatusOK))

		var status v1.MigrationStatus
		Expect(json.Unmarshal(rec.Body.Bytes(), &status)).To(Succeed())
		Expect(status.State).To(Equal(v1.MigrationStatusStateRunning))
		Expect(status.CurrentProject).NotTo(BeNil())
		Expect(*status.CurrentProject).To(Equal("PROJ"))
		Expect(status.ProjectIndex).To(Equal(1))
		Expect(status.ProjectsTotal).To(Equal(3))
		Expect(status.IssuesProcessed).To(Equal(200))
		Expect(status.IssuesTotal).To(Equal(250))
		Expect(status.StartedAt).NotTo(BeNil())
		Expect(status.StartedAt.Equal(started)).To(BeTrue())
	})

	// Given a failed migration
	// When the status is requested
	// Then it should carry the error message
	It("should report the failure", func() {
		// Act
		rec := serve(models.MigrationStatus{
			RunID: "run-3",
			State: models.MigrationStateError,
			Error: errors.New("boom"),
		})

		// Assert
		var status v1.MigrationStatus
		Expect(json.Unmarshal(rec.Body.Bytes(), &status)).To(Succeed())
		Expect(status.State).To(Equal(v1.MigrationStatusStateError))
		Expect(status.Error).NotTo(BeNil())
		Expect(*status.Error).To(Equal("boom"))
	})

	// Given the other migration states
	// When they are converted
	// Then each should map onto its API value
	DescribeTable("should convert migration states",
		func(state models.MigrationState, expected v1.MigrationStatusState) {
			Expect(v1.NewMigrationStatus(models.MigrationStatus{State: state}).State).To(Equal(expected))
		},
		Entry("no data", models.MigrationStateNoData, v1.MigrationStatusStateNoData),
		Entry("done", models.MigrationStateDone, v1.MigrationStatusStateDone),
		Entry("unknown", models.MigrationState("paused"), v1.MigrationStatusStateIdle),
	)
})
