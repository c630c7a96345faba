package report

import (
	"fmt"
	"time"

	"github.com/erazemk/bso/internal/model"
)

// Period returns the first day of (year, month) and the first day of the
// following month. December rolls over into January of the next year.
// Years are limited to four digits so stored dates compare correctly as
// strings.
func Period(year, month int) (start, next model.Date, err error) {
	if year < 1 || year > 9999 {
		return model.Date{}, model.Date{}, &model.ValidationError{
			Field:  "year",
			Reason: fmt.Sprintf("must be between 1 and 9999, got %d", year),
		}
	}
	if month < 1 || month > 12 {
		return model.Date{}, model.Date{}, &model.ValidationError{
			Field:  "month",
			Reason: fmt.Sprintf("must be between 1 and 12, got %d", month),
		}
	}

	start = model.NewDate(year, time.Month(month), 1)
	if month == 12 {
		if year == 9999 {
			return model.Date{}, model.Date{}, &model.ValidationError{
				Field:  "year",
				Reason: "period must end before year 10000",
			}
		}
		next = model.NewDate(year+1, time.January, 1)
	} else {
		next = model.NewDate(year, time.Month(month+1), 1)
	}
	return start, next, nil
}
