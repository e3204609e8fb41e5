package types

import (
	"fmt"
	"time"
)

// DBTime scans timestamps written either natively (PostgreSQL) or as text (SQLite)
type DBTime struct {
	Time time.Time
}

var dbTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Scan implements sql.Scanner
func (d *DBTime) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
		return nil
	case time.Time:
		d.Time = v
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("types: cannot scan %T into DBTime", src)
	}
}

func (d *DBTime) parse(s string) error {
	for _, layout := range dbTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("types: unrecognized timestamp %q", s)
}
