package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborline/stafftrack/internal/modules/repo"
	"github.com/harborline/stafftrack/internal/modules/serializer"
	"github.com/harborline/stafftrack/internal/modules/service"
)

// ExportHandler serves CSV renditions of the reports for spreadsheet
// consumers.
type ExportHandler struct {
	reports service.ReportService
	entries service.TimeEntryService
}

func NewExportHandler(reports service.ReportService, entries service.TimeEntryService) *ExportHandler {
	return &ExportHandler{reports: reports, entries: entries}
}

func writeCSV(c *gin.Context, filename string, header []string, rows [][]string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(header)
	for _, row := range rows {
		_ = w.Write(row)
	}
	w.Flush()
}

func (h *ExportHandler) ContractBurnCSV(c *gin.Context) {
	id, err := uuidParam(c, "contract_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	report, err := h.reports.ContractBurn(c.Request.Context(), actorFrom(c), id)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	rows := make([][]string, 0, len(report.Buckets))
	for _, b := range report.Buckets {
		rows = append(rows, []string{
			b.BucketEndDate,
			b.ExpectedHours.StringFixed(2),
			b.ActualHours.StringFixed(2),
			b.CumulativeExpected.StringFixed(2),
			b.CumulativeActual.StringFixed(2),
		})
	}
	writeCSV(c,
		fmt.Sprintf("contract-%s-burn.csv", id),
		[]string{"bucket_end_date", "expected_hours", "actual_hours", "cumulative_expected", "cumulative_actual"},
		rows)
}

func (h *ExportHandler) ContractTimeEntriesCSV(c *gin.Context) {
	id, err := uuidParam(c, "contract_id")
	if err != nil {
		serializer.WriteError(c, err)
		return
	}
	f := repo.TimeEntryFilter{ContractID: &id}
	if f.EntryDateFrom, err = dateQuery(c, "entry_date_from"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	if f.EntryDateTo, err = dateQuery(c, "entry_date_to"); err != nil {
		serializer.WriteError(c, err)
		return
	}
	entries, err := h.entries.List(c.Request.Context(), actorFrom(c), f)
	if err != nil {
		serializer.WriteError(c, err)
		return
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ID.String(),
			e.DeliverableID.String(),
			e.StaffID.String(),
			e.EntryDate.Format("2006-01-02"),
			e.Hours.StringFixed(2),
			e.Note,
			e.ExternalSource,
			e.ExternalID,
		})
	}
	writeCSV(c,
		fmt.Sprintf("contract-%s-time-entries.csv", id),
		[]string{"id", "deliverable_id", "staff_id", "entry_date", "hours", "note", "external_source", "external_id"},
		rows)
}
