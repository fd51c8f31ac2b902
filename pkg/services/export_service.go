package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"research-brief-api/pkg/intent"
	"research-brief-api/pkg/models"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	briefsSheet  = "Briefs"
)

// ErrUnsupportedFile はxlsx/csv以外のファイルが渡された場合のエラーです。
var ErrUnsupportedFile = errors.New("サポートされていないファイル形式です。.xlsx または .csv を指定してください")

// ExportService はCaseのExcel出力と質問リストの読み込みを行います。
type ExportService struct{}

// NewExportService は新しいExportServiceを生成します。
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportCase はCaseをSummaryシートとBriefsシートを持つxlsxに変換します。
func (s *ExportService) ExportCase(c models.Case) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("シート名の設定に失敗: %w", err)
	}

	counts := make(map[intent.Intent]int)
	for _, b := range c.Briefs {
		counts[b.Mode]++
	}

	summaryRows := [][]interface{}{
		{"Case ID", c.ID},
		{"Objective", c.Objective},
		{"Created", c.CreatedAt.Format(time.RFC3339)},
		{"Updated", c.UpdatedAt.Format(time.RFC3339)},
		{"Briefs", len(c.Briefs)},
	}
	for _, mode := range intent.All() {
		summaryRows = append(summaryRows, []interface{}{intent.ModeLabel(mode), counts[mode]})
	}
	if err := writeRows(f, summarySheet, summaryRows); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(briefsSheet); err != nil {
		return nil, fmt.Errorf("シートの作成に失敗: %w", err)
	}
	briefRows := [][]interface{}{{"#", "Question", "Mode", "Summary", "Evidence", "Created"}}
	for i, b := range c.Briefs {
		briefRows = append(briefRows, []interface{}{
			i + 1,
			b.Question,
			intent.ModeLabel(b.Mode),
			b.Summary,
			strings.Join(b.Evidence, "\n"),
			b.CreatedAt.Format(time.RFC3339),
		})
	}
	if err := writeRows(f, briefsSheet, briefRows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("Excelファイルの書き出しに失敗: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("%sシートへの書き込みに失敗: %w", sheet, err)
		}
	}
	return nil
}

// ReadQuestions はxlsx（先頭シート）またはcsvの1列目から質問を読み込みます。
// 先頭行が "question" の場合はヘッダーとして読み飛ばし、空行は無視します。
func (s *ExportService) ReadQuestions(fileName string, r io.Reader) ([]string, error) {
	var rows [][]string
	lower := strings.ToLower(fileName)

	switch {
	case strings.HasSuffix(lower, ".xlsx"):
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("Excelファイルの読み込みに失敗: %w", err)
		}
		defer f.Close()
		rows, err = f.GetRows(f.GetSheetName(0))
		if err != nil {
			return nil, fmt.Errorf("Excelシートの行取得に失敗: %w", err)
		}
	case strings.HasSuffix(lower, ".csv"):
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		var err error
		rows, err = cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("CSVファイルの読み込みに失敗: %w", err)
		}
	default:
		return nil, ErrUnsupportedFile
	}

	questions := make([]string, 0, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		q := strings.TrimSpace(row[0])
		if q == "" {
			continue
		}
		if i == 0 && strings.EqualFold(q, "question") {
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}
