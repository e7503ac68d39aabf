package parser

import (
	"regexp"
	"strings"

	"cv-ai-go/internal/types"
)

// sectionPatterns 章节标题同义词，整行匹配（允许行尾空白）
var sectionPatterns = map[types.SectionType]*regexp.Regexp{
	types.SectionProfile:    regexp.MustCompile(`(?i)^(profile|summary|objective|about)\s*$`),
	types.SectionSkills:     regexp.MustCompile(`(?i)^(skills|technical skills|technologies|tools|competencies)\s*$`),
	types.SectionExperience: regexp.MustCompile(`(?i)^(experience|work experience|employment|work history|professional experience)\s*$`),
	types.SectionEducation:  regexp.MustCompile(`(?i)^(education|academic background|qualifications)\s*$`),
	types.SectionProjects:   regexp.MustCompile(`(?i)^(projects|personal projects|key projects)\s*$`),
	types.SectionLanguages:  regexp.MustCompile(`(?i)^(languages|language skills)\s*$`),
	types.SectionContact:    regexp.MustCompile(`(?i)^(contact|contact details|contact information)\s*$`),
}

// SectionBoundaries 章节 -> 标题所在行号（从0开始，包含空行）
type SectionBoundaries map[types.SectionType]int

// splitLines 按换行拆分，兼容 \r\n
func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// MatchSectionHeader 判断一行是否为章节标题
func MatchSectionHeader(line string) (types.SectionType, bool) {
	clean := strings.ToLower(strings.TrimSpace(line))
	if clean == "" {
		return "", false
	}
	for _, section := range types.AllSections {
		if sectionPatterns[section].MatchString(clean) {
			return section, true
		}
	}
	return "", false
}

// FindSectionBoundaries 查找每个章节标题所在行。同一章节出现多次时保留第一次
func FindSectionBoundaries(text string) SectionBoundaries {
	boundaries := make(SectionBoundaries)
	for i, line := range splitLines(text) {
		section, ok := MatchSectionHeader(line)
		if !ok {
			continue
		}
		if _, seen := boundaries[section]; seen {
			continue
		}
		boundaries[section] = i
	}
	return boundaries
}

// SectionContent 返回章节标题之后、下一个章节标题之前的非空行（已去除首尾空白）
func SectionContent(text string, section types.SectionType, boundaries SectionBoundaries) string {
	start, ok := boundaries[section]
	if !ok {
		return ""
	}

	lines := splitLines(text)
	end := len(lines)
	for _, lineNum := range boundaries {
		if lineNum > start && lineNum < end {
			end = lineNum
		}
	}

	var content []string
	for i := start + 1; i < end; i++ {
		if line := strings.TrimSpace(lines[i]); line != "" {
			content = append(content, line)
		}
	}
	return strings.Join(content, "\n")
}

// nonEmptyLines 拆分并去除空行
func nonEmptyLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
