package export

import (
	"strings"
	"time"

	"github.com/dori/horas/internal/model"
	"github.com/dori/horas/internal/timefmt"
)

// CSVHeader is the fixed header row of the monthly report.
const CSVHeader = "Fecha,Inicio,Fin,Total(hh:mm:ss)"

// CSV renders the monthly report as plain text: the header plus one
// row per entry, every line newline-terminated including the last.
// Entries must already be ordered by day ascending then start
// ascending; that is the range query's contract and the exporter does
// not re-sort. Open entries get an empty Fin and an empty Total. No
// quoting is needed, every field is a date or time string.
func CSV(entries []model.TimeEntry, loc *time.Location) string {
	var sb strings.Builder
	sb.WriteString(CSVHeader)
	sb.WriteByte('\n')

	for _, e := range entries {
		total := ""
		if e.EndMillis != nil {
			total = timefmt.Elapsed(e.DurationMillis())
		}
		sb.WriteString(timefmt.Day(e.DateEpochDay))
		sb.WriteByte(',')
		sb.WriteString(timefmt.Clock(&e.StartMillis, loc))
		sb.WriteByte(',')
		sb.WriteString(timefmt.Clock(e.EndMillis, loc))
		sb.WriteByte(',')
		sb.WriteString(total)
		sb.WriteByte('\n')
	}

	return sb.String()
}
