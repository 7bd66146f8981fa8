package services_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
	"github.com/kubev2v/squad-to-scale-migrator/internal/services"
)

var header = []string{
	"FILE_NAME", "FILE_SIZE", "NAME", "PROJECT_ID", "USER_KEY", "TEMPORARY",
	"CREATED_ON", "MIME_TYPE", "TEST_CASE_ID", "STEP_ID", "TEST_RESULT_ID",
}

var _ = Describe("Attachment mapping exporters", func() {
	var (
		ctx       context.Context
		dir       string
		createdOn time.Time
		caseRow   models.AttachmentAssociation
		stepRow   models.AttachmentAssociation
		execRow   models.AttachmentAssociation
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()
		createdOn = time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)

		caseRow = models.AttachmentAssociation{
			AttachmentName: "design.pdf", FileName: "300", Size: "1024", AuthorKey: "jdoe",
			CreatedOn: createdOn, ProjectID: "10000",
			DestinationType: models.DestinationTestCase, DestinationID: "501",
		}
		stepRow = models.AttachmentAssociation{
			AttachmentName: "step.png", FileName: "77", Size: "20", AuthorKey: "asmith",
			CreatedOn: createdOn, ProjectID: "10000", MimeType: models.Some("image/png"),
			DestinationType: models.DestinationTestStep, DestinationID: "8002",
		}
		execRow = models.AttachmentAssociation{
			AttachmentName: "run.log", FileName: "88", Size: "5", AuthorKey: "jdoe",
			CreatedOn: createdOn, ProjectID: "10000",
			DestinationType: models.DestinationTestExecution, DestinationID: "901",
		}
	})

	readCSV := func(path string) [][]string {
		f, err := os.Open(path)
		Expect(err).NotTo(HaveOccurred())
		defer f.Close()
		records, err := csv.NewReader(f).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		return records
	}

	Context("CSVExporter", func() {
		// Given two dumps
		// When we read the csv file
		// Then it should hold one header and every row in order
		It("should write the header once and append rows", func() {
			// Arrange
			path := filepath.Join(dir, "mapping.csv")
			exporter := services.NewCSVExporter(path)

			// Act
			Expect(exporter.Dump(ctx, []models.AttachmentAssociation{caseRow, stepRow})).To(Succeed())
			Expect(exporter.Dump(ctx, []models.AttachmentAssociation{execRow})).To(Succeed())

			// Assert
			records := readCSV(path)
			Expect(records).To(HaveLen(4))
			Expect(records[0]).To(Equal(header))
			Expect(records[1]).To(Equal([]string{"300", "1024", "design.pdf", "10000", "jdoe", "false", "2024-03-01T10:20:30.000", "", "501", "", ""}))
			Expect(records[2]).To(Equal([]string{"77", "20", "step.png", "10000", "asmith", "false", "2024-03-01T10:20:30.000", "image/png", "", "8002", ""}))
			Expect(records[3]).To(Equal([]string{"88", "5", "run.log", "10000", "jdoe", "false", "2024-03-01T10:20:30.000", "", "", "", "901"}))
		})

		// Given a mapping file left by a previous run
		// When a new exporter dumps
		// Then the file should be recreated
		It("should recreate the file left by a previous run", func() {
			// Arrange
			path := filepath.Join(dir, "mapping.csv")
			Expect(os.WriteFile(path, []byte("old,content\n"), 0o644)).To(Succeed())
			exporter := services.NewCSVExporter(path)

			// Act
			err := exporter.Dump(ctx, []models.AttachmentAssociation{caseRow})

			// Assert
			Expect(err).NotTo(HaveOccurred())
			records := readCSV(path)
			Expect(records).To(HaveLen(2))
			Expect(records[0]).To(Equal(header))
		})

		// Given an empty dump
		// When we read the csv file
		// Then it should hold the header only
		It("should create the file with its header on an empty dump", func() {
			// Arrange
			path := filepath.Join(dir, "mapping.csv")
			exporter := services.NewCSVExporter(path)

			// Act
			err := exporter.Dump(ctx, nil)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(readCSV(path)).To(Equal([][]string{header}))
		})
	})

	Context("XLSXExporter", func() {
		// Given two dumps
		// When we open the workbook
		// Then it should mirror the csv rows
		It("should mirror rows into a spreadsheet", func() {
			// Arrange
			path := filepath.Join(dir, "mapping.xlsx")
			exporter := services.NewXLSXExporter(path)

			// Act
			Expect(exporter.Dump(ctx, []models.AttachmentAssociation{caseRow})).To(Succeed())
			Expect(exporter.Dump(ctx, []models.AttachmentAssociation{execRow})).To(Succeed())
			Expect(exporter.Close()).To(Succeed())

			// Assert
			f, err := excelize.OpenFile(path)
			Expect(err).NotTo(HaveOccurred())
			defer f.Close()

			rows, err := f.GetRows("attachments")
			Expect(err).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(3))
			Expect(rows[0]).To(Equal(header))
			Expect(rows[1][0]).To(Equal("300"))
			Expect(rows[1][8]).To(Equal("501"))
			Expect(rows[2][0]).To(Equal("88"))
			Expect(rows[2][10]).To(Equal("901"))
		})
	})
})
