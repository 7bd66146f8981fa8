package squad_test

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/httpclient"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/squad"
)

var _ = Describe("Client", func() {
	var (
		ctx    context.Context
		server *httptest.Server
		mux    *http.ServeMux
		client *squad.Client
	)

	BeforeEach(func() {
		ctx = context.Background()
		mux = http.NewServeMux()
		server = httptest.NewServer(mux)

		hc, err := httpclient.New(httpclient.Options{Host: server.URL, HTTPVersion: "1.1"})
		Expect(err).NotTo(HaveOccurred())
		client = squad.NewClient(hc)
	})

	AfterEach(func() {
		server.Close()
	})

	It("should list projects", func() {
		// Arrange
		mux.HandleFunc("/rest/zapi/latest/util/project-list", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"options":[{"hasAccessToSoftware":"true","label":"Project","type":"software","value":"10000"},{"label":"Other","value":10001}]}`))
		})

		// Act
		projects, err := client.GetAllProjects(ctx)

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(projects).To(HaveLen(2))
		Expect(projects[0].Value.String()).To(Equal("10000"))
		Expect(projects[1].Value.String()).To(Equal("10001"))
	})

	It("should fetch test steps with their attachments", func() {
		// Arrange
		mux.HandleFunc("/rest/zapi/latest/teststep/10001", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"stepBeanCollection":[
				{"id":11,"orderId":1,"htmlStep":"<p>open</p>","htmlData":"","htmlResult":"<p>opened</p>",
				 "attachmentsMap":[{"fileId":"77","fileName":"shot.png","fileSize":"20","author":"jdoe"}]}
			]}`))
		})

		// Act
		steps, err := client.FetchLatestTestSteps(ctx, "10001")

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(steps).To(HaveLen(1))
		Expect(steps[0].ID.String()).To(Equal("11"))
		Expect(steps[0].OrderID.String()).To(Equal("1"))
		Expect(steps[0].HTMLStep).To(Equal("<p>open</p>"))
		Expect(steps[0].Attachments).To(HaveLen(1))
		Expect(steps[0].Attachments[0].FileID.String()).To(Equal("77"))
	})

	Context("executions", func() {
		// Given executions with missing optional fields
		// When we fetch them
		// Then statuses should be named and missing fields defaulted
		It("should parse executions", func() {
			// Arrange
			mux.HandleFunc("/rest/zapi/latest/execution", func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Query().Get("issueId") != "10001" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				_, _ = w.Write([]byte(`{"issueId":10001,"recordsCount":3,"executions":[
					{"id":1,"executionStatus":"3","createdBy":"JIRAUSER1","createdByUserName":"jdoe",
					 "versionName":"Unscheduled","htmlComment":"<p>c</p>","cycleName":"Ad hoc",
					 "folderName":"f1","executedOn":"01/Jan/24","assignedTo":"JIRAUSER2",
					 "assignedToDisplay":"Alice","assignedToUserName":"asmith"},
					{"id":2,"executionStatus":"-1","createdBy":"JIRAUSER1","cycleName":"Ad hoc"},
					{"id":3,"executionStatus":"42","cycleName":"Ad hoc","assignedTo":"JIRAUSER3",
					 "assignedToDisplay":"Bob (Inactive)","assignedToUserName":"bob"}
				]}`))
			})

			// Act
			execs, err := client.FetchLatestExecutions(ctx, "10001")

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(execs).To(HaveLen(3))

			Expect(execs[0].ID).To(Equal("1"))
			Expect(execs[0].Status).To(Equal("WIP"))
			Expect(execs[0].VersionName).To(Equal(models.Some("Unscheduled")))
			Expect(execs[0].FolderName).To(Equal("f1"))
			Expect(execs[0].ExecutedOn).To(Equal("01/Jan/24"))
			Expect(execs[0].AssigneeUserName).To(Equal("asmith"))

			Expect(execs[1].Status).To(Equal("Unexecuted"))
			Expect(execs[1].VersionName.IsZero()).To(BeTrue())
			Expect(execs[1].FolderName).To(Equal(squad.None))
			Expect(execs[1].ExecutedOn).To(Equal(squad.None))
			Expect(execs[1].AssigneeUserName).To(Equal(squad.None))

			Expect(execs[2].Status).To(Equal("Unexecuted"))
			Expect(execs[2].AssigneeUserName).To(Equal(squad.None))
		})
	})

	It("should fetch execution attachments", func() {
		// Arrange
		mux.HandleFunc("/rest/zapi/latest/attachment/attachmentsByEntity", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("entityType") != "execution" || r.URL.Query().Get("entityId") != "5" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			_, _ = w.Write([]byte(`{"data":[{"fileId":88,"fileName":"run.log","fileSize":5,"author":"jdoe"}]}`))
		})

		// Act
		attachments, err := client.FetchExecutionAttachments(ctx, "5")

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(attachments).To(HaveLen(1))
		Expect(attachments[0].FileID.String()).To(Equal("88"))
		Expect(attachments[0].FileSize.String()).To(Equal("5"))
	})

	DescribeTable("ExecutionStatusName",
		func(id, expected string) {
			Expect(squad.ExecutionStatusName(id)).To(Equal(expected))
		},
		Entry("unexecuted", "-1", "Unexecuted"),
		Entry("pass", "1", "Pass"),
		Entry("fail", "2", "Fail"),
		Entry("wip", "3", "WIP"),
		Entry("blocked", "4", "Blocked"),
		Entry("descoped", "5", "Descoped"),
		Entry("not delivered yet", "6", "Not Delivered Yet"),
		Entry("on hold", "7", "On Hold"),
		Entry("unknown", "99", "Unexecuted"),
	)
})
