package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/octobees/food-recommender/internal/entity"
)

var exportHeader = []string{"name", "category", "address", "phone", "distance_m", "reasons"}

// utf8BOM lets spreadsheet tools detect the encoding of Korean text.
const utf8BOM = "\ufeff"

// WriteCSV writes the ranked venues as CSV, prefixed with a UTF-8 BOM.
func WriteCSV(w io.Writer, venues []entity.Venue) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, v := range venues {
		row := []string{
			v.Name,
			v.Category,
			v.Address,
			v.Phone,
			strconv.Itoa(v.DistanceM),
			strings.Join(v.Reasons, ", "),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportFileName names the CSV attachment for the given day.
func ExportFileName(at time.Time) string {
	return fmt.Sprintf("recommendations_%s.csv", at.In(KST).Format("20060102"))
}
