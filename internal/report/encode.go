package report

import (
	"bytes"
	"encoding/base64"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/css-ra/tnrange-cli/internal/model"
)

// Report holds the accumulated rows for the three workbook sheets.
type Report struct {
	TNRanges []model.Row
	CNAM     []model.Row
	TollFree []model.Row
}

// Filename returns the timestamped workbook name for a report generated at
// the given time.
func Filename(now time.Time) string {
	return "telenumber_ranges_" + now.Format("01-02-2006_15-04-05") + ".xlsx"
}

// Encode renders the report as a three-sheet XLSX workbook and returns it
// base64 encoded.
func Encode(rep *Report, layout Layout) (string, error) {
	f := xlsx.NewFile()

	sheets := []struct {
		name string
		cols []Column
		rows []model.Row
	}{
		{"TN_RANGES", layout.TNRanges, rep.TNRanges},
		{"CNAM_TN", layout.CNAM, rep.CNAM},
		{"IPTF_TN", layout.TollFree, rep.TollFree},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.cols, s.rows); err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", eris.Wrap(err, "report: write workbook")
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeSheet(f *xlsx.File, name string, cols []Column, rows []model.Row) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "report: add sheet %s", name)
	}

	header := sheet.AddRow()
	for _, col := range cols {
		header.AddCell().SetString(col.Header)
	}

	for _, row := range rows {
		out := sheet.AddRow()
		for _, col := range cols {
			out.AddCell().SetString(cellValue(row, col.Key))
		}
	}
	return nil
}

// cellValue renders a missing column as "N/A"; a present-but-empty value
// stays empty.
func cellValue(row model.Row, key string) string {
	v, ok := row[key]
	if !ok {
		return "N/A"
	}
	return v
}
