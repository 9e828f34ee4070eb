package export

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/legal-docify/constants"
	"github.com/joseph-ayodele/legal-docify/internal/entity"
)

const (
	SummarySheet  = "Summary"
	MetadataSheet = "Metadata"
)

// Service renders a pipeline result as an XLSX workbook.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ResultXLSX returns a workbook with the raw summary on one sheet and one row
// per metadata item (Section, Item) on another.
func (s *Service) ResultXLSX(res *entity.SummaryResult) ([]byte, error) {
	if res == nil {
		return nil, fmt.Errorf("export: nil result")
	}
	start := time.Now()

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("export.xlsx.close_error", "error", err)
		}
	}()

	// The default "Sheet1" becomes the summary sheet.
	if err := f.SetSheetName(f.GetSheetName(0), SummarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(MetadataSheet); err != nil {
		return nil, err
	}

	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		return nil, err
	}
	_ = f.SetCellValue(SummarySheet, "A1", "Summary")
	_ = f.SetCellValue(SummarySheet, "A2", res.Summary)
	_ = f.SetCellStyle(SummarySheet, "A2", "A2", wrap)
	_ = f.SetColWidth(SummarySheet, "A", "A", 120)

	headers := []string{"Section", "Item"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(MetadataSheet, cell, h)
	}

	row := 2
	write := func(col int, v any) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(MetadataSheet, cell, v)
	}
	groups := []struct {
		section constants.Section
		items   []string
	}{
		{constants.KeyIssues, res.Sections.KeyIssues},
		{constants.ImportantDates, res.Sections.ImportantDates},
		{constants.RelevantParties, res.Sections.RelevantParties},
	}
	for _, g := range groups {
		for _, item := range g.items {
			write(1, string(g.section))
			write(2, item)
			row++
		}
	}
	_ = f.SetColWidth(MetadataSheet, "A", "A", 20)
	_ = f.SetColWidth(MetadataSheet, "B", "B", 90)

	idx, _ := f.GetSheetIndex(SummarySheet)
	f.SetActiveSheet(idx)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"metadata_rows", row-2,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}
