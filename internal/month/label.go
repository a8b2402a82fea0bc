package month

import (
	"fmt"
)

// Spanish month names for the report labels. Kept as a fixed table so
// the label does not depend on host locale data.
var spanishMonths = [13]string{
	"",
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Label returns the display name of the month, e.g. "Agosto 2025".
func (ym YearMonth) Label() string {
	return fmt.Sprintf("%s %d", spanishMonths[int(ym.Month)], ym.Year)
}
