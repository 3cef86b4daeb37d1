package ingestion

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidEntry is a row that passed field-level validation and is ready to
// be persisted as a Transaction or CompanyEntry.
type ValidEntry struct {
	RowNumber   int
	Date        time.Time
	Description string
	Amount      float64
	Category    string
	Type        string
}

// IncompleteEntry is a row that failed validation, held for operator
// correction. Field values stay as submitted so the operator can edit
// them; Corrected marks rows the operator actually touched.
type IncompleteEntry struct {
	RowNumber   int    `json:"row_number"`
	Error       string `json:"error"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Corrected   bool   `json:"corrected"`
}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	time.RFC3339,
}

// ValidateRow checks the required fields (date, description, amount) and
// normalizes the optional ones. A failed row comes back as an
// IncompleteEntry whose Error names the offending field.
func ValidateRow(row RawRow) (*ValidEntry, *IncompleteEntry) {
	fail := func(reason string) (*ValidEntry, *IncompleteEntry) {
		return nil, &IncompleteEntry{
			RowNumber:   row.RowNumber,
			Error:       reason,
			Date:        row.Date,
			Description: row.Description,
			Amount:      row.Amount,
			Category:    row.Category,
			Type:        row.Type,
		}
	}

	if strings.TrimSpace(row.Date) == "" {
		return fail("missing required field: date")
	}
	date, err := parseDate(row.Date)
	if err != nil {
		return fail(fmt.Sprintf("invalid date %q", row.Date))
	}

	description := strings.TrimSpace(row.Description)
	if description == "" {
		return fail("missing required field: description")
	}

	if strings.TrimSpace(row.Amount) == "" {
		return fail("missing required field: amount")
	}
	amount, err := parseAmount(row.Amount)
	if err != nil {
		return fail(fmt.Sprintf("invalid amount %q", row.Amount))
	}
	if amount == 0 {
		return fail("amount must be non-zero")
	}

	category := strings.TrimSpace(row.Category)
	if category == "" {
		category = "uncategorized"
	}

	entryType := strings.ToLower(strings.TrimSpace(row.Type))
	if entryType == "" {
		if amount < 0 {
			entryType = "debit"
		} else {
			entryType = "credit"
		}
	}

	return &ValidEntry{
		RowNumber:   row.RowNumber,
		Date:        date,
		Description: description,
		Amount:      amount,
		Category:    category,
		Type:        entryType,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	// OFX DTPOSTED: YYYYMMDD optionally followed by time and timezone.
	if len(s) >= 8 && allDigits(s[:8]) {
		if t, err := time.Parse("20060102", s[:8]); err == nil {
			return t, nil
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)

	// Brazilian exports use "1.234,56"; plain comma decimals also appear.
	if strings.Contains(s, ",") {
		if strings.Contains(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
		}
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
