package parser

import (
	"regexp"
	"strconv"
	"strings"

	"cv-ai-go/internal/types"
	"cv-ai-go/pkg/utils"
)

var (
	// 完整单词按前缀匹配，缩写要求后面不是字母
	degreeRegex = regexp.MustCompile(`(?i)^(bachelor|master|diploma|certificate|phd|ph\.d|doctorate|(b\.?s\.?c?\.?|m\.?s\.?c?\.?|b\.?a\.?|m\.?a\.?|b\.?tech|m\.?tech|b\.?e\.?|m\.?e\.?)([^a-z]|$))`)

	educationExcludeRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^relevant\s+coursework`),
		regexp.MustCompile(`(?i)^coursework`),
		regexp.MustCompile(`(?i)^courses?:`),
		regexp.MustCompile(`(?i)^gpa:?`),
		regexp.MustCompile(`(?i)^grade:?`),
		regexp.MustCompile(`(?i)^activities`),
		regexp.MustCompile(`(?i)^honors?`),
		regexp.MustCompile(`(?i)^awards?`),
		regexp.MustCompile(`(?i)^achievements?`),
	}

	fieldOfStudyRegex = regexp.MustCompile(`(?i)(?:bachelor|master|diploma)\s+(?:of\s+)?(?:science\s+)?(?:arts\s+)?(?:in\s+)?([^,\n]+?)(?:\s+in\s+([^,\n]+))?$`)
	// 含逗号的写法: "Bachelor of Science in Computer Science, University of X, 2018 - 2022"
	fieldOfStudyCommaRegex = regexp.MustCompile(`(?i)(?:bachelor|master|diploma)(?:'?s)?\s+(?:of\s+)?(?:science\s+)?(?:arts\s+)?(?:in\s+)?([^,\n]+)`)
	institutionRegex       = regexp.MustCompile(`(?i)(university|college|institute|school|academy)`)

	yearRegex     = regexp.MustCompile(`\d{4}`)
	gpaRegex      = regexp.MustCompile(`(?i)\bGPA\s*:?\s*(\d+(?:\.\d+)?(?:\s*/\s*\d+(?:\.\d+)?)?)`)
	studyingRegex = regexp.MustCompile(`(?i)\b(present|current|now|ongoing|expected)\b`)
)

// ExtractEducation 从教育章节内容中提取学历信息
func ExtractEducation(sectionContent string) []types.EducationEntry {
	educations := []types.EducationEntry{}
	if sectionContent == "" {
		return educations
	}

	lines := nonEmptyLines(sectionContent)
	for i, line := range lines {
		if isExcludedEducationLine(line) {
			// GPA 单独成行时归属到上一条学历
			if len(educations) > 0 {
				attachGPA(&educations[len(educations)-1], line)
			}
			continue
		}
		if !degreeRegex.MatchString(line) {
			// 学历行之后紧跟的学校名称
			if len(educations) > 0 && i > 0 && degreeRegex.MatchString(lines[i-1]) {
				last := &educations[len(educations)-1]
				if last.University == "" && institutionRegex.MatchString(line) {
					last.University = stripTrailingYears(line)
				}
				fillYears(last, line)
			}
			continue
		}

		entry := types.EducationEntry{Degree: line}
		fillFieldAndUniversity(&entry, line)
		fillYears(&entry, line)
		attachGPA(&entry, line)
		educations = append(educations, entry)
	}

	return educations
}

func isExcludedEducationLine(line string) bool {
	for _, re := range educationExcludeRegexes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func fillFieldAndUniversity(entry *types.EducationEntry, line string) {
	if m := fieldOfStudyRegex.FindStringSubmatch(line); m != nil {
		entry.FieldOfStudy = stripTrailingYears(m[1])
		entry.University = stripTrailingYears(m[2])
		return
	}

	m := fieldOfStudyCommaRegex.FindStringSubmatch(line)
	if m == nil {
		return
	}
	entry.FieldOfStudy = stripTrailingYears(strings.TrimSpace(m[1]))
	for _, part := range strings.Split(line, ",")[1:] {
		part = strings.TrimSpace(part)
		if institutionRegex.MatchString(part) {
			entry.University = stripTrailingYears(part)
			break
		}
	}
}

func fillYears(entry *types.EducationEntry, line string) {
	if entry.StartYear != nil {
		return
	}
	years := yearRegex.FindAllString(line, -1)
	if len(years) == 0 {
		return
	}
	if y, err := strconv.Atoi(years[0]); err == nil {
		entry.StartYear = utils.IntPtr(y)
	}
	if len(years) > 1 {
		if y, err := strconv.Atoi(years[1]); err == nil {
			entry.EndYear = utils.IntPtr(y)
		}
	} else if studyingRegex.MatchString(line) {
		entry.CurrentlyStudying = true
	}
}

func attachGPA(entry *types.EducationEntry, line string) {
	if entry.GPA != nil {
		return
	}
	if m := gpaRegex.FindStringSubmatch(line); m != nil {
		entry.GPA = utils.StringPtr(strings.ReplaceAll(m[1], " ", ""))
	}
}

var trailingYearsRegex = regexp.MustCompile(`[\s(,|–—-]*\d{4}.*$`)

func stripTrailingYears(s string) string {
	return strings.TrimSpace(trailingYearsRegex.ReplaceAllString(s, ""))
}
