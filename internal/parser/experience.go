package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"cv-ai-go/internal/types"
)

// 日期范围写法，按顺序尝试
var experienceDateRegexes = []*regexp.Regexp{
	// Jun 2020 - Dec 2021
	regexp.MustCompile(`(\w+\.?\s+\d{4})\s*(?:-|–|—|to)\s*(\w+\.?\s+\d{4})`),
	// 2020 - 2021
	regexp.MustCompile(`(\d{4})\s*(?:-|–|—|to)\s*(\d{4})`),
	// 06/2020 - 12/2021
	regexp.MustCompile(`(\d{1,2}/\d{4})\s*(?:-|–|—|to)\s*(\d{1,2}/\d{4})`),
	// Jun 2020 - Present
	regexp.MustCompile(`(?i)(\w+\.?\s+\d{4}|\d{1,2}/\d{4}|\d{4})\s*(?:-|–|—|to)\s*(present|current|now)\b`),
}

// experienceLookAhead 标题之后最多扫描的行数(含标题)
const experienceLookAhead = 10

func isBulletLine(line string) bool {
	return strings.HasPrefix(line, "•") || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*")
}

func trimBullet(line string) string {
	return strings.TrimLeft(line, "•-* ")
}

// matchDateRange 返回起止日期；结束为 Present 时 end 为 nil
func matchDateRange(line string) (start, end *string, ok bool) {
	for _, re := range experienceDateRegexes {
		if m := re.FindStringSubmatch(line); m != nil {
			return ConvertToDate(m[1]), ConvertToDate(m[2]), true
		}
	}
	return nil, nil, false
}

// ExtractExperience 从工作经历章节中提取经历：
// 标题行之后向前查找公司与日期，列表行作为描述
func ExtractExperience(sectionContent string) []types.ExperienceEntry {
	experiences := []types.ExperienceEntry{}
	if sectionContent == "" {
		return experiences
	}

	lines := nonEmptyLines(sectionContent)
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if isBulletLine(line) {
			continue
		}
		if yearRegex.MatchString(line) || utf8.RuneCountInString(line) <= 3 {
			continue
		}

		entry, consumed := lookAheadExperience(lines, i)
		if entry == nil {
			continue
		}
		experiences = append(experiences, *entry)
		i = consumed
	}

	return experiences
}

// lookAheadExperience 以 lines[titleIdx] 为标题向后收集公司、日期与描述，返回最后消费的行号
func lookAheadExperience(lines []string, titleIdx int) (*types.ExperienceEntry, int) {
	var (
		company      string
		start, end   *string
		dateFound    bool
		descriptions []string
		consumed     = titleIdx
		// 日期之后已经出现过列表行
		bulletAfterDate bool
	)

	for j := titleIdx + 1; j < len(lines); j++ {
		next := lines[j]
		complete := dateFound && company != ""

		if complete {
			// 公司与日期都已找到，只继续吸收紧随其后的列表行
			if !isBulletLine(next) {
				break
			}
			descriptions = append(descriptions, trimBullet(next))
			consumed = j
			continue
		}
		if j >= titleIdx+experienceLookAhead {
			break
		}

		if s, e, ok := matchDateRange(next); ok {
			if dateFound {
				// 第二个日期范围属于下一段经历
				break
			}
			start, end, dateFound = s, e, true
			consumed = j
			continue
		}

		if isBulletLine(next) {
			descriptions = append(descriptions, trimBullet(next))
			consumed = j
			bulletAfterDate = dateFound
			continue
		}

		if company == "" {
			if !dateFound {
				company = next
				consumed = j
				continue
			}
			if bulletAfterDate {
				// 日期和描述之后的普通行是下一段经历的标题
				break
			}
			// 紧跟日期的普通行可能是公司, 也可能是下一段经历的标题, 不计入已消费
			company = next
			continue
		}

		// 公司已确定，又遇到普通行，视为下一段经历
		break
	}

	if company == "" && start == nil {
		return nil, titleIdx
	}

	return &types.ExperienceEntry{
		Title:            lines[titleIdx],
		Company:          company,
		StartDate:        start,
		EndDate:          end,
		CurrentlyWorking: start != nil && end == nil,
		Description:      strings.Join(descriptions, ". "),
	}, consumed
}
