// Package board owns the departure board view model: turning status records
// into display rows, holding the current board, and rendering it as HTML.
package board

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkordes/departure-board/internal/domain"
	"github.com/pkordes/departure-board/internal/format"
)

// TrackUnknown is shown when no track has been assigned yet.
const TrackUnknown = "TBD"

// RenderRow converts one record into a display row.
// Text fields are stripped of single quotes and upper-cased. ScheduledTime is
// rendered with format.FormatTime in loc.
//
// A DELAYED or LATE status with a non-zero whole-minute lateness becomes
// "LATE <N> MIN". Zero minutes keeps the plain status.
func RenderRow(rec domain.StatusRecord, loc *time.Location) domain.Row {
	track := clean(rec.Track)
	if track == "" {
		track = TrackUnknown
	}

	status := clean(rec.Status)
	if status == "DELAYED" || status == "LATE" {
		if mins := floorDiv(int64(rec.Lateness), 60); mins != 0 {
			status = "LATE " + strconv.FormatInt(mins, 10) + " MIN"
		}
	}

	return domain.Row{
		ScheduledTime: format.FormatTime(format.FromEpochSeconds(int64(rec.ScheduledTime), loc)),
		Origin:        clean(rec.Origin),
		Trip:          clean(rec.Trip),
		Destination:   clean(rec.Destination),
		Track:         track,
		Status:        status,
	}
}

// RenderRows renders every record of batch, preserving order.
func RenderRows(batch domain.Batch, loc *time.Location) []domain.Row {
	rows := make([]domain.Row, len(batch))
	for i, rec := range batch {
		rows[i] = RenderRow(rec, loc)
	}
	return rows
}

// RenderLabels derives the day, date and time header labels from epoch.
func RenderLabels(epoch int64, loc *time.Location, style format.DateStyle) domain.Labels {
	t := format.FromEpochSeconds(epoch, loc)
	return domain.Labels{
		Day:  format.FormatWeekdayName(t),
		Date: format.FormatDateStyle(t, style),
		Time: format.FormatTime(t),
	}
}

func clean(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, "'", ""))
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
