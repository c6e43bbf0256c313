// Package export serialises registrations for download.
package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"goonj/internal/domain"
)

// ErrMalformedRecord is returned when a record cannot be serialised.
var ErrMalformedRecord = errors.New("malformed registration record")

// Header is the fixed column order of the export.
var Header = []string{
	"Name", "Email", "Phone", "College", "Course", "Year", "Events", "Amount",
	"Transaction ID", "Payment Status", "Registration Date",
}

// DateLayout formats the Registration Date column.
const DateLayout = "2006-01-02 15:04:05"

// EventSeparator joins event names in the Events column.
const EventSeparator = "; "

// Filename is the suggested attachment name for an export taken at now.
func Filename(now time.Time) string {
	return "registrations-" + now.Format("20060102-150405") + ".csv"
}

// Row returns the export columns for one registration. The payment status column is
// derived from the transaction ID, not read from the stored flag.
func Row(r *domain.Registration) ([]string, error) {
	if r == nil {
		return nil, ErrMalformedRecord
	}
	date := ""
	if !r.CreatedAt.IsZero() {
		date = r.CreatedAt.UTC().Format(DateLayout)
	}
	return []string{
		r.Name,
		r.Email,
		r.Phone,
		r.College,
		r.Course,
		r.Year,
		strings.Join(r.EventNames(), EventSeparator),
		strconv.FormatInt(r.TotalAmount, 10),
		r.TransactionID,
		string(r.CurrentPaymentStatus()),
		date,
	}, nil
}

// WriteCSV writes the header and one line per record. Every field is quoted and inner quotes
// are doubled. Nothing is written when any record is malformed.
func WriteCSV(w io.Writer, records []*domain.Registration) error {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, Header)
	for i, r := range records {
		row, err := Row(r)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		rows = append(rows, row)
	}

	bw := bufio.NewWriter(w)
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				bw.WriteByte(',')
			}
			bw.WriteByte('"')
			bw.WriteString(strings.ReplaceAll(field, `"`, `""`))
			bw.WriteByte('"')
		}
		bw.WriteString("\r\n")
	}
	return bw.Flush()
}
