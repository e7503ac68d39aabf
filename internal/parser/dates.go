package parser

import (
	"regexp"
	"strings"
	"time"

	"cv-ai-go/pkg/utils"

	"github.com/araddon/dateparse"
)

const dateLayout = "2006-01-02"

// 常见简历日期写法，缺少"日"时按1号处理
var monthYearLayouts = []string{
	"Jan 2006",
	"January 2006",
	"Jan. 2006",
	"Jan, 2006",
	"01/2006",
	"1/2006",
	"01-2006",
	"2006/01",
	"2006-01",
	"2006",
}

var openEndRegex = regexp.MustCompile(`(?i)^(present|current|now|today|ongoing)$`)

// IsOpenEnded 判断结束日期是否为 Present/Current/Now
func IsOpenEnded(s string) bool {
	return openEndRegex.MatchString(strings.TrimSpace(s))
}

// ConvertToDate 将日期文本规范化为 YYYY-MM-DD，无法识别时返回 nil
func ConvertToDate(dateText string) *string {
	s := strings.TrimSpace(dateText)
	if s == "" || IsOpenEnded(s) {
		return nil
	}
	s = normalizeMonthName(s)

	for _, layout := range monthYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return formatDate(t)
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return nil
	}
	return formatDate(t)
}

func formatDate(t time.Time) *string {
	return utils.StringPtr(t.Format(dateLayout))
}

// normalizeMonthName 处理 "Sept" 与全大写月份
func normalizeMonthName(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	first := strings.ToLower(fields[0])
	if strings.HasPrefix(first, "sept") && !strings.HasPrefix(first, "september") {
		fields[0] = "Sep" + fields[0][4:]
	} else if len(fields[0]) > 1 {
		fields[0] = strings.ToUpper(first[:1]) + first[1:]
	}
	return strings.Join(fields, " ")
}
