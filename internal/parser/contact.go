package parser

import (
	"regexp"
	"strings"

	"cv-ai-go/internal/types"
)

var (
	emailRegex = regexp.MustCompile(`[\w\.-]+@[\w\.-]+\.\w+`)

	// 按优先级尝试
	phoneRegexes = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}\s?\d{2}\s?\d{3}\s?\d{4}`), // +94 71 123 4567
		regexp.MustCompile(`\(\d{3}\)\s?\d{3}-\d{4}`),           // (123) 456-7890
		regexp.MustCompile(`\d{3}-\d{3}-\d{4}`),                 // 123-456-7890
		regexp.MustCompile(`\d{10,}`),
	}

	nameExcludeRegex = regexp.MustCompile(`[@\d]`)
	addressRegex     = regexp.MustCompile(`[A-Za-z][A-Za-z ]*,[ \t]*[A-Za-z][A-Za-z ]*`)

	linkedinRegex  = regexp.MustCompile(`(?i)linkedin\.com/in/[\w\-]+`)
	githubRegex    = regexp.MustCompile(`(?i)github\.com/[\w\-]+`)
	portfolioRegex = regexp.MustCompile(`(?i)(https?://[\w\-./]+|[\w\-]+\.[\w\-]+\.com)`)
)

// genericHeadings 出现在简历顶部但不是姓名的行
var genericHeadings = map[string]struct{}{
	"software engineer": {},
	"developer":         {},
	"profile":           {},
	"contact":           {},
}

var portfolioExcludes = []string{"linkedin", "github", "gmail", "email"}

const nameSearchLines = 5

// ExtractContactInfo 从全文中提取邮箱、电话、姓名与地址
func ExtractContactInfo(text string) types.ContactInfo {
	var info types.ContactInfo

	info.Email = emailRegex.FindString(text)

	for _, re := range phoneRegexes {
		if m := re.FindString(text); m != "" {
			info.Phone = m
			break
		}
	}

	lines := splitLines(text)
	if len(lines) > nameSearchLines {
		lines = lines[:nameSearchLines]
	}
	for _, line := range lines {
		clean := strings.TrimSpace(line)
		if clean == "" || len(strings.Fields(clean)) > 4 || nameExcludeRegex.MatchString(clean) {
			continue
		}
		if _, generic := genericHeadings[strings.ToLower(clean)]; generic {
			continue
		}
		info.Name = clean
		break
	}

	// 地址只在单行内匹配 "City, Country"
	for _, line := range splitLines(text) {
		if m := addressRegex.FindString(line); m != "" {
			info.Address = strings.TrimSpace(m)
			break
		}
	}

	return info
}

// ExtractSocialLinks 提取 LinkedIn、GitHub 与个人作品集链接
func ExtractSocialLinks(text string) types.SocialLinks {
	links := types.SocialLinks{
		LinkedIn: linkedinRegex.FindString(text),
		Github:   githubRegex.FindString(text),
	}

	for _, m := range portfolioRegex.FindAllString(text, -1) {
		if !containsAny(strings.ToLower(m), portfolioExcludes) {
			links.Portfolio = m
			break
		}
	}
	return links
}
