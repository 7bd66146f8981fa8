package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
)

const (
	createdOnLayout = "2006-01-02T15:04:05.000"
	xlsxSheet       = "attachments"
)

var attachmentMappingHeader = []string{
	"FILE_NAME", "FILE_SIZE", "NAME", "PROJECT_ID", "USER_KEY", "TEMPORARY",
	"CREATED_ON", "MIME_TYPE", "TEST_CASE_ID", "STEP_ID", "TEST_RESULT_ID",
}

func attachmentMappingRow(a models.AttachmentAssociation) []string {
	var testCaseID, stepID, testResultID string
	switch a.DestinationType {
	case models.DestinationTestCase:
		testCaseID = a.DestinationID
	case models.DestinationTestStep:
		stepID = a.DestinationID
	case models.DestinationTestExecution:
		testResultID = a.DestinationID
	}

	return []string{
		a.FileName,
		a.Size,
		a.AttachmentName,
		a.ProjectID,
		a.AuthorKey,
		strconv.FormatBool(a.Temporary),
		a.CreatedOn.Format(createdOnLayout),
		a.MimeType.OrElse(""),
		testCaseID,
		stepID,
		testResultID,
	}
}

// CSVExporter appends attachment mappings to a CSV file. The file is recreated
// with its header on the first dump of the process.
type CSVExporter struct {
	path        string
	initialized bool
	mu          sync.Mutex
}

func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{path: path}
}

func (e *CSVExporter) Dump(_ context.Context, associations []models.AttachmentAssociation) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		if err := e.setup(); err != nil {
			return err
		}
		e.initialized = true
	}

	f, err := os.OpenFile(e.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", e.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, a := range associations {
		if err := w.Write(attachmentMappingRow(a)); err != nil {
			return fmt.Errorf("failed to write attachment mapping to %s: %w", e.path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write attachment mapping to %s: %w", e.path, err)
	}
	return f.Close()
}

func (e *CSVExporter) setup() error {
	zap.S().Named("exporter").Infow("creating file for mapped attachments", "path", e.path)

	if err := os.Remove(e.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove previous mapping file %s: %w", e.path, err)
	}

	f, err := os.Create(e.path)
	if err != nil {
		return fmt.Errorf("failed to create mapping file %s: %w", e.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(attachmentMappingHeader); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// XLSXExporter mirrors the attachment mapping into a spreadsheet, saved after every dump.
type XLSXExporter struct {
	path    string
	file    *excelize.File
	nextRow int
	mu      sync.Mutex
}

func NewXLSXExporter(path string) *XLSXExporter {
	return &XLSXExporter{path: path}
}

func (e *XLSXExporter) Dump(_ context.Context, associations []models.AttachmentAssociation) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file == nil {
		if err := e.setup(); err != nil {
			return err
		}
	}

	for _, a := range associations {
		if err := e.writeRow(attachmentMappingRow(a)); err != nil {
			return err
		}
	}

	if err := e.file.SaveAs(e.path); err != nil {
		return fmt.Errorf("failed to save %s: %w", e.path, err)
	}
	return nil
}

func (e *XLSXExporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.file == nil {
		return nil
	}
	err := e.file.Close()
	e.file = nil
	return err
}

func (e *XLSXExporter) setup() error {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to prepare %s: %w", e.path, err)
	}
	e.file = f
	e.nextRow = 1
	return e.writeRow(attachmentMappingHeader)
}

func (e *XLSXExporter) writeRow(values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, e.nextRow)
	if err != nil {
		return err
	}

	row := make([]any, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := e.file.SetSheetRow(xlsxSheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", e.nextRow, e.path, err)
	}
	e.nextRow++
	return nil
}
