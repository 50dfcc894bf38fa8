// Package validate 纯输入校验：逐字段判定并拼出错误串，不碰存储。
package validate

import (
	"regexp"
	"strings"
	"time"

	"customer-groups-api/internal/domain"
)

// Field 一条待校验输入；Value 为 nil 表示请求里传的是 null
type Field struct {
	Kind  string
	Value *string
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

const missingKeyMessage = "Missing 'input' or 'input_type' in the field."

// 每种字段固定一条错误文案
var errorMessages = map[string]string{
	"first_name":        "Invalid first name. It must be a non-empty string.",
	"last_name":         "Invalid last name. It must be a non-empty string.",
	"group_name":        "Invalid group name. It must be a non-empty string.",
	"group_description": "Invalid group description. It must be a non-empty string.",
	"email":             "Invalid email. Please provide a valid email address.",
	"password":          "Invalid password. It must be at least 6 characters long.",
	"country":           "Invalid country. It must be a recognized country name.",
	"city":              "Invalid city. It must be a recognized city name.",
	"birthday":          "Invalid birthday. Use the YYYY-MM-DD format and a date not in the future.",
}

// ErrorString 聚合所有失败字段的文案，每条一行；空串即全部通过
func ErrorString(fields []Field) string {
	var b strings.Builder
	for _, f := range fields {
		if f.Kind == "" {
			b.WriteString(missingKeyMessage)
			b.WriteByte('\n')
			continue
		}
		if !Valid(f.Kind, f.Value) {
			msg, ok := errorMessages[f.Kind]
			if !ok {
				msg = "Invalid input type '" + f.Kind + "'."
			}
			b.WriteString(msg)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Valid 单字段判定；未知 kind 一律拒绝
func Valid(kind string, value *string) bool {
	switch kind {
	case "first_name", "last_name", "group_name", "group_description":
		return value != nil && len(*value) > 0
	case "email":
		return value != nil && emailPattern.MatchString(*value)
	case "password":
		return value != nil && len(*value) >= 6
	case "country":
		return value == nil || isKnownCountry(*value)
	case "city":
		return value == nil || isKnownCity(*value)
	case "birthday":
		return value == nil || validBirthday(*value, time.Now())
	}
	return false
}

// 生日必须能按 YYYY-MM-DD 解析且不晚于今天
func validBirthday(s string, now time.Time) bool {
	d, err := domain.ParseDate(s)
	if err != nil {
		return false
	}
	return !d.Time.After(domain.DateOf(now).Time)
}
