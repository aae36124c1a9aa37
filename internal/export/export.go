package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/21f1001434/Agentic-AI/internal/models"
)

const (
	DashboardFile = "dashboard.html"
	PreviewFile   = "preview.csv"
	WorkbookFile  = "report.xlsx"
	ResultFile    = "result.json"

	previewSheet = "Preview"
	kpiSheet     = "KPIs"

	defaultPreviewRows = 200
)

// Files lists the paths written by Write.
type Files struct {
	Dashboard string `json:"dashboard"`
	Preview   string `json:"preview"`
	Workbook  string `json:"workbook"`
	Result    string `json:"result"`
}

type Exporter struct {
	previewRows int
	log         *zap.SugaredLogger
}

type Option func(*Exporter)

// WithPreviewRows sets how many rows go into the CSV and the workbook.
func WithPreviewRows(n int) Option {
	return func(e *Exporter) {
		if n > 0 {
			e.previewRows = n
		}
	}
}

func New(opts ...Option) *Exporter {
	e := &Exporter{
		previewRows: defaultPreviewRows,
		log:         zap.S().Named("export"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Write saves the dashboard, preview CSV, workbook and JSON result of a
// pipeline run into dir, creating it if needed.
func (e *Exporter) Write(dir string, result *models.PipelineResult) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	files := &Files{
		Dashboard: filepath.Join(dir, DashboardFile),
		Preview:   filepath.Join(dir, PreviewFile),
		Workbook:  filepath.Join(dir, WorkbookFile),
		Result:    filepath.Join(dir, ResultFile),
	}

	if err := os.WriteFile(files.Dashboard, []byte(result.Dashboard.HTML), 0o644); err != nil {
		return nil, fmt.Errorf("write dashboard: %w", err)
	}
	if err := writeFile(files.Preview, func(w io.Writer) error {
		return e.WriteCSV(w, result.Dataset)
	}); err != nil {
		return nil, fmt.Errorf("write preview: %w", err)
	}
	if err := e.WriteWorkbook(files.Workbook, result.Dataset, result.Insights.KPIs); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := writeFile(files.Result, func(w io.Writer) error {
		return e.WriteJSON(w, result)
	}); err != nil {
		return nil, fmt.Errorf("write result: %w", err)
	}

	e.log.Infow("exported pipeline result", "dir", dir, "rows", result.Dataset.NumRows())
	return files, nil
}

// WriteCSV writes the header and the preview rows of ds. Missing cells are
// written as empty fields.
func (e *Exporter) WriteCSV(w io.Writer, ds *models.Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ds.ColumnNames()); err != nil {
		return err
	}
	for _, row := range e.preview(ds) {
		record := make([]string, ds.NumCols())
		for j := range record {
			if j < len(row) && !models.IsMissing(row[j]) {
				record[j] = models.Label(row[j])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteWorkbook saves an XLSX file with the preview rows and the KPIs on
// separate sheets.
func (e *Exporter) WriteWorkbook(path string, ds *models.Dataset, kpis []models.KPI) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.log.Warnw("failed to close workbook", "path", path, "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), previewSheet); err != nil {
		return err
	}
	if err := setRow(f, previewSheet, 1, toCells(ds.ColumnNames())); err != nil {
		return err
	}
	for i, row := range e.preview(ds) {
		cells := make([]any, ds.NumCols())
		for j := range cells {
			if j < len(row) {
				cells[j] = workbookValue(row[j])
			}
		}
		if err := setRow(f, previewSheet, i+2, cells); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(kpiSheet); err != nil {
		return err
	}
	if err := setRow(f, kpiSheet, 1, []any{"Title", "Value", "Context"}); err != nil {
		return err
	}
	for i, k := range kpis {
		if err := setRow(f, kpiSheet, i+2, []any{k.Title, k.Value, k.Context}); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

// WriteJSON writes the execution metadata, insights, dashboard metadata and
// preview records of result as indented JSON.
func (e *Exporter) WriteJSON(w io.Writer, result *models.PipelineResult) error {
	doc := resultDocument{
		Execution: result.Execution,
		Insights:  result.Insights,
		Dashboard: result.Dashboard.Meta,
		Columns:   result.Dataset.ColumnNames(),
		Preview:   result.Dataset.Records(e.previewRows),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

type resultDocument struct {
	Execution models.ExecMeta      `json:"execution"`
	Insights  models.InsightReport `json:"insights"`
	Dashboard models.DashboardMeta `json:"dashboard"`
	Columns   []string             `json:"columns"`
	Preview   []map[string]any     `json:"preview"`
}

func (e *Exporter) preview(ds *models.Dataset) [][]any {
	if ds == nil {
		return nil
	}
	if len(ds.Rows) > e.previewRows {
		return ds.Rows[:e.previewRows]
	}
	return ds.Rows
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func toCells(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = n
	}
	return out
}

// workbookValue keeps numbers and booleans native so spreadsheets can
// compute with them; everything else is written as its label.
func workbookValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case int64, bool:
		return x
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	default:
		return models.Label(x)
	}
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
