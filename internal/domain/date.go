package domain

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout 出入参统一格式 YYYY-MM-DD
const DateLayout = "2006-01-02"

// Date 只有年月日的日期，JSON 与数据库均按 YYYY-MM-DD 处理
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf 截取 t 在其所在时区的日期部分
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate 严格解析 YYYY-MM-DD（2023-02-30 之类非法日期会报错）
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

// AddYears 按年偏移；目标月份没有该日时取当月最后一天（2 月 29 日 -> 2 月 28 日）
func (d Date) AddYears(n int) Date {
	y, m, day := d.Date()
	last := time.Date(y+n, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return NewDate(y+n, m, min(day, last))
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Value 写库使用字符串形式，postgres/mysql/sqlite 的 DATE 列都可接受
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("domain.Date: unsupported scan type %T", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) >= len(DateLayout) {
		if v, err := ParseDate(s[:len(DateLayout)]); err == nil {
			*d = v
			return nil
		}
	}
	return fmt.Errorf("domain.Date: cannot scan %q", s)
}
