package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	TimeOfDayLayout = "15:04:05"
)

// Date 只携带日期部分（数据库 date 列），JSON 统一为 2006-01-02
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) Value() (driver.Value, error) { return d.Format(DateLayout), nil }

func (d *Date) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*d = DateOf(x)
		return nil
	case []byte:
		parsed, err := ParseDate(string(x))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(x)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", v)
}

// AgeOn 按“过没过生日”算整岁
func (d Date) AgeOn(now time.Time) int {
	age := now.Year() - d.Year()
	if now.Month() < d.Month() || (now.Month() == d.Month() && now.Day() < d.Day()) {
		age--
	}
	return age
}

// TimeOfDay 只携带时刻部分（数据库 time 列）
type TimeOfDay struct {
	time.Time
}

func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

func (t TimeOfDay) String() string { return t.Format(TimeOfDayLayout) }

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.Format(TimeOfDayLayout) + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	parsed, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return err
	}
	*t = TimeOfDay{parsed}
	return nil
}

func (t TimeOfDay) Value() (driver.Value, error) { return t.Format(TimeOfDayLayout), nil }

func (t *TimeOfDay) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		*t = TimeOfDayOf(x)
		return nil
	case []byte:
		return t.scanString(string(x))
	case string:
		return t.scanString(x)
	}
	return fmt.Errorf("cannot scan %T into TimeOfDay", v)
}

func (t *TimeOfDay) scanString(s string) error {
	// mysql 可能带小数秒
	if i := strings.IndexByte(s, '.'); i > 0 {
		s = s[:i]
	}
	parsed, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return err
	}
	*t = TimeOfDay{parsed}
	return nil
}
