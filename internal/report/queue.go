// Package report собирает выгрузки для отправки документом в Telegram.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/telegisto-bot/internal/conversions"
)

const queueSheet = "Queue"

var queueHeader = []interface{}{
	"job_id",
	"platform",
	"title",
	"duration_sec",
	"start_sec",
	"status",
	"created_at",
	"estimate",
	"url",
}

// QueueWorkbook — xlsx с заявками пользователя, по строке на заявку.
func QueueWorkbook(jobs []conversions.Job) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), queueSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(queueSheet, "A1", &queueHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, j := range jobs {
		var start interface{} = ""
		if j.StartTimestamp != nil {
			start = *j.StartTimestamp
		}
		row := []interface{}{
			j.ID,
			j.Platform,
			j.Title,
			j.DurationSeconds,
			start,
			string(j.Status),
			j.CreatedAt.Format(time.DateTime),
			j.EstimatedTimeRemaining,
			j.SourceURL,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(queueSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// QueueFileName: queue_<user>_<YYYYMMDD_HHMMSS>.xlsx
func QueueFileName(userID int64, now time.Time) string {
	return fmt.Sprintf("queue_%d_%s.xlsx", userID, now.Format("20060102_150405"))
}
