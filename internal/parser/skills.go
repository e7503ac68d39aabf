package parser

import (
	"strings"
	"unicode/utf8"
)

var skillDelimiters = strings.NewReplacer(
	"•", "\x00",
	"·", "\x00",
	",", "\x00",
	"\n", "\x00",
	"|", "\x00",
	";", "\x00",
)

// skillExcludeWords 包含这些词的条目通常是标题或描述而不是技能
var skillExcludeWords = []string{"skills", "technologies", "tools", "experience", "years", "proficient"}

// ExtractSkills 从技能章节内容中拆分技能，去重后按首次出现顺序返回
func ExtractSkills(sectionContent string) []string {
	skills := []string{}
	if sectionContent == "" {
		return skills
	}

	seen := make(map[string]struct{})
	for _, raw := range strings.Split(skillDelimiters.Replace(sectionContent), "\x00") {
		skill := strings.TrimSpace(raw)
		if n := utf8.RuneCountInString(skill); n < 2 || n > 49 {
			continue
		}
		if containsAny(strings.ToLower(skill), skillExcludeWords) {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		skills = append(skills, skill)
	}
	return skills
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
