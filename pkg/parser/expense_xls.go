package parser

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/extrame/xls"
)

// maxXLSRows bounds how many rows are pulled from a workbook.
const maxXLSRows = 1 << 20

func readXLS(data []byte) (rawTable, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return rawTable{}, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(maxXLSRows)
	if len(rows) == 0 {
		return rawTable{}, fmt.Errorf("no data found in sheet")
	}
	return rawTable{records: rows, lines: sequentialLines(len(rows))}, nil
}

// excelEpoch is day zero of spreadsheet date serials.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// serialDate converts a spreadsheet day serial such as "44562" to a
// calendar day string.
func serialDate(s string) (string, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) {
		return "", false
	}
	return excelEpoch.AddDate(0, 0, int(v)).Format("2006-01-02"), true
}
