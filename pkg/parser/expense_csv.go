package parser

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
)

func readCSV(data []byte) (rawTable, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1 // allow variable columns – decode validates per row

	var raw rawTable
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return raw, nil
		}
		if err != nil {
			return rawTable{}, err
		}
		line, _ := r.FieldPos(0)
		raw.records = append(raw.records, rec)
		raw.lines = append(raw.lines, line)
	}
}
