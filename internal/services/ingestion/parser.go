package ingestion

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// RawRow is one parsed row before validation. Field values are kept as the
// raw strings from the file so a failed row can be surfaced for correction.
type RawRow struct {
	RowNumber   int
	Date        string
	Description string
	Amount      string
	Category    string
	Type        string
}

// Recognized CSV header names per field. The ledger exports we receive come
// with either English or Portuguese headers.
var headerAliases = map[string]string{
	"date":             "date",
	"transaction_date": "date",
	"data":             "date",
	"description":      "description",
	"descricao":        "description",
	"memo":             "description",
	"amount":           "amount",
	"valor":            "amount",
	"value":            "amount",
	"category":         "category",
	"categoria":        "category",
	"type":             "type",
	"tipo":             "type",
}

// ParseCSV reads all data rows, mapping columns through the header row.
// A header naming at least date, description and amount is required;
// anything less is a structural failure, not a row-level one.
func ParseCSV(content []byte) ([]RawRow, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if sample := content[:min(len(content), 1024)]; bytes.Contains(sample, []byte(";")) && !bytes.Contains(sample, []byte(",")) {
		reader.Comma = ';'
	}

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}

	columns := make(map[string]int)
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if field, ok := headerAliases[key]; ok {
			if _, taken := columns[field]; !taken {
				columns[field] = i
			}
		}
	}
	for _, required := range []string{"date", "description", "amount"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("CSV header is missing a %q column", required)
		}
	}

	pick := func(record []string, field string) string {
		i, ok := columns[field]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []RawRow
	rowNum := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row %d: %w", rowNum+1, err)
		}
		rowNum++

		if strings.Join(record, "") == "" {
			continue // blank line
		}

		rows = append(rows, RawRow{
			RowNumber:   rowNum,
			Date:        pick(record, "date"),
			Description: pick(record, "description"),
			Amount:      pick(record, "amount"),
			Category:    pick(record, "category"),
			Type:        pick(record, "type"),
		})
	}
	return rows, nil
}

// ParseOFX extracts STMTTRN blocks from an OFX/QFX statement. OFX 1.x is
// SGML, so tags are not necessarily closed; each value runs to the end of
// its line or the next tag.
func ParseOFX(content []byte) ([]RawRow, error) {
	text := string(content)
	if !strings.Contains(strings.ToUpper(text), "<OFX>") {
		return nil, fmt.Errorf("not an OFX document")
	}

	var rows []RawRow
	rest := text
	rowNum := 0
	for {
		start := strings.Index(strings.ToUpper(rest), "<STMTTRN>")
		if start < 0 {
			break
		}
		rest = rest[start+len("<STMTTRN>"):]
		block := rest
		if end := strings.Index(strings.ToUpper(rest), "</STMTTRN>"); end >= 0 {
			block = rest[:end]
			rest = rest[end:]
		} else {
			rest = ""
		}
		rowNum++

		description := ofxValue(block, "MEMO")
		if description == "" {
			description = ofxValue(block, "NAME")
		}
		rows = append(rows, RawRow{
			RowNumber:   rowNum,
			Date:        ofxValue(block, "DTPOSTED"),
			Description: description,
			Amount:      ofxValue(block, "TRNAMT"),
			Type:        strings.ToLower(ofxValue(block, "TRNTYPE")),
		})
	}
	if rowNum == 0 {
		return nil, fmt.Errorf("OFX document contains no transactions")
	}
	return rows, nil
}

func ofxValue(block, tag string) string {
	upper := strings.ToUpper(block)
	i := strings.Index(upper, "<"+tag+">")
	if i < 0 {
		return ""
	}
	v := block[i+len(tag)+2:]
	if j := strings.IndexAny(v, "<\r\n"); j >= 0 {
		v = v[:j]
	}
	return strings.TrimSpace(v)
}
