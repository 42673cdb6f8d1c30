package srec

import (
	"fmt"
	"strings"

	"github.com/moffa90/go-srec/record"
)

// Issue describes a record that failed one or more validity checks.
type Issue struct {
	// Line is the 1-based source line of the record
	Line int

	// Record is the offending record
	Record *record.Record

	// Problems lists each failed check
	Problems []string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, strings.Join(i.Problems, "; "))
}

// Validate runs the type, count and checksum checks over every record and
// returns one Issue per failing record, in source order.
func (f *File) Validate() []Issue {
	var issues []Issue
	for i, rec := range f.records {
		var problems []string

		if !rec.IsTypeValid() {
			problems = append(problems, fmt.Sprintf("unknown record type %s", rec.Type()))
		}

		if !rec.IsCountValid() {
			addrLen := 0
			if rec.Address().IsPresent() {
				addrLen = rec.AddressLen()
			}
			problems = append(problems, fmt.Sprintf("byte count 0x%02X, expected 0x%02X",
				rec.Count(), addrLen+rec.DataLen()+1))
		}

		if !rec.IsChecksumValid() {
			problems = append(problems, fmt.Sprintf("checksum 0x%02X, expected 0x%02X",
				rec.Checksum(), rec.CalcChecksum()))
		}

		if len(problems) > 0 {
			issues = append(issues, Issue{
				Line:     f.lineNums[i],
				Record:   rec,
				Problems: problems,
			})
		}
	}
	return issues
}
