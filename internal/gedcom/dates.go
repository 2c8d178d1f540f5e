package gedcom

import (
	"strconv"
	"strings"
)

// DateKind classifies a parsed date value.
type DateKind int

const (
	DateExact DateKind = iota
	DateAbout
	DateCalculated
	DateEstimated
	DateBefore
	DateAfter
	DateRange  // BET x AND y
	DatePeriod // FROM x [TO y]
)

// DateValue is a structured date. Zero fields mean "not present": a bare
// year has Day == 0 and Month == 0. Range and period kinds populate the
// second triple.
type DateValue struct {
	Kind                DateKind
	Day, Month, Year    int
	Day2, Month2, Year2 int
}

// AgeValue is a structured age such as "32y 4m" or "> 60y".
type AgeValue struct {
	Years, Months, Days int
	Qualifier           string // "<", ">" or ""
}

// DateParser is the external collaborator that interprets raw date and age
// strings. Either method may report ok=false, meaning "could not parse"; the
// assembler keeps the raw text and, for individual event dates, retries the
// same text as an age.
type DateParser interface {
	ParseDate(raw string) (*DateValue, bool)
	ParseAge(raw string) (*AgeValue, bool)
}

// StdDateParser implements the common GEDCOM date grammar: exact dates,
// ABT/CAL/EST approximations, BEF/AFT bounds, BET..AND ranges and FROM/TO
// periods. Anything else (calendar escapes, free text) reports unparsed.
type StdDateParser struct{}

var _ DateParser = StdDateParser{}

var monthNumbers = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
}

// ParseDate interprets raw as a GEDCOM date.
func (StdDateParser) ParseDate(raw string) (*DateValue, bool) {
	fields := strings.Fields(strings.ToUpper(strings.TrimSpace(raw)))
	if len(fields) == 0 {
		return nil, false
	}

	dv := &DateValue{}
	switch fields[0] {
	case "ABT":
		dv.Kind, fields = DateAbout, fields[1:]
	case "CAL":
		dv.Kind, fields = DateCalculated, fields[1:]
	case "EST":
		dv.Kind, fields = DateEstimated, fields[1:]
	case "BEF":
		dv.Kind, fields = DateBefore, fields[1:]
	case "AFT":
		dv.Kind, fields = DateAfter, fields[1:]
	case "BET":
		dv.Kind = DateRange
		and := indexField(fields, "AND")
		if and < 2 {
			return nil, false
		}
		if !parseDateFields(fields[1:and], &dv.Day, &dv.Month, &dv.Year) {
			return nil, false
		}
		if !parseDateFields(fields[and+1:], &dv.Day2, &dv.Month2, &dv.Year2) {
			return nil, false
		}
		return dv, true
	case "FROM":
		dv.Kind = DatePeriod
		to := indexField(fields, "TO")
		if to < 0 {
			if !parseDateFields(fields[1:], &dv.Day, &dv.Month, &dv.Year) {
				return nil, false
			}
			return dv, true
		}
		if !parseDateFields(fields[1:to], &dv.Day, &dv.Month, &dv.Year) {
			return nil, false
		}
		if !parseDateFields(fields[to+1:], &dv.Day2, &dv.Month2, &dv.Year2) {
			return nil, false
		}
		return dv, true
	case "TO":
		dv.Kind, fields = DatePeriod, fields[1:]
	}

	if !parseDateFields(fields, &dv.Day, &dv.Month, &dv.Year) {
		return nil, false
	}
	return dv, true
}

// parseDateFields fills day/month/year from the [DD] [MMM] YYYY tail forms.
func parseDateFields(fields []string, day, month, year *int) bool {
	switch len(fields) {
	case 1:
		y, err := strconv.Atoi(fields[0])
		if err != nil || y <= 0 {
			return false
		}
		*year = y
		return true
	case 2:
		m, ok := monthNumbers[fields[0]]
		if !ok {
			return false
		}
		y, err := strconv.Atoi(fields[1])
		if err != nil || y <= 0 {
			return false
		}
		*month, *year = m, y
		return true
	case 3:
		d, err := strconv.Atoi(fields[0])
		if err != nil || d < 1 || d > 31 {
			return false
		}
		m, ok := monthNumbers[fields[1]]
		if !ok {
			return false
		}
		y, err := strconv.Atoi(fields[2])
		if err != nil || y <= 0 {
			return false
		}
		*day, *month, *year = d, m, y
		return true
	}
	return false
}

func indexField(fields []string, want string) int {
	for i, f := range fields {
		if f == want {
			return i
		}
	}
	return -1
}

// ParseAge interprets raw as a GEDCOM age: "[<|>] [Ny] [Nm] [Nd]", the
// keywords CHILD/INFANT/STILLBORN, or a bare number of years.
func (StdDateParser) ParseAge(raw string) (*AgeValue, bool) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" {
		return nil, false
	}

	av := &AgeValue{}
	switch s {
	case "CHILD":
		av.Qualifier, av.Years = "<", 8
		return av, true
	case "INFANT":
		av.Qualifier, av.Years = "<", 1
		return av, true
	case "STILLBORN":
		return av, true
	}

	if s[0] == '<' || s[0] == '>' {
		av.Qualifier = s[:1]
		s = strings.TrimSpace(s[1:])
	}

	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		av.Years = n
		return av, true
	}

	any := false
	for _, f := range strings.Fields(s) {
		if len(f) < 2 {
			return nil, false
		}
		n, err := strconv.Atoi(f[:len(f)-1])
		if err != nil || n < 0 {
			return nil, false
		}
		switch f[len(f)-1] {
		case 'Y':
			av.Years = n
		case 'M':
			av.Months = n
		case 'D':
			av.Days = n
		default:
			return nil, false
		}
		any = true
	}
	if !any {
		return nil, false
	}
	return av, true
}
