package projection

import (
	"fmt"

	"github.com/ecofinanzas/savings-engine/pkg/constants"
)

// TimeSpan expresses a duration as whole years plus leftover months.
type TimeSpan struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// TimeSpanFromMonths splits a month count into years and months.
func TimeSpanFromMonths(months int) TimeSpan {
	return TimeSpan{
		Years:  months / constants.MonthsPerYear,
		Months: months % constants.MonthsPerYear,
	}
}

// TotalMonths returns the span as a month count.
func (t TimeSpan) TotalMonths() int {
	return t.Years*constants.MonthsPerYear + t.Months
}

func (t TimeSpan) String() string {
	return fmt.Sprintf("%d years, %d months", t.Years, t.Months)
}
