package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"cv-ai-go/internal/types"
)

var (
	projectMetadataPrefixes = []string{"Technologies:", "GitHub:", "URL:", "Demo:", "Live:", "Link:"}
	projectURLPrefixes      = []string{"URL:", "Demo:", "Live:", "Link:"}
	descriptionStarters     = []string{"built", "developed", "created", "designed", "implemented", "A ", "An ", "The "}

	httpPrefixRegex    = regexp.MustCompile(`^https?://`)
	githubPrefixRegex  = regexp.MustCompile(`^github\.com/`)
	domainPrefixRegex  = regexp.MustCompile(`^[\w\-]+\.[\w\-]+\.com`)
	githubInlineRegex  = regexp.MustCompile(`github\.com/[\w\-./]+`)
	urlInlineRegex     = regexp.MustCompile(`(https?://[\w\-./]+|[\w\-]+\.[\w\-]+\.com)`)
	techListSplitRegex = regexp.MustCompile(`[,;|]`)

	// 描述中未显式给出技术栈时，用关键词推断
	techKeywordRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(React|Angular|Vue\.js|Vue|Node\.js|Express|Django|Flask|Spring|Laravel)\b`),
		regexp.MustCompile(`(?i)\b(JavaScript|TypeScript|Python|Java|C\+\+|C#|PHP|Ruby|Go|Rust)\b`),
		regexp.MustCompile(`(?i)\b(MongoDB|MySQL|PostgreSQL|Redis|SQLite|Firebase)\b`),
		regexp.MustCompile(`(?i)\b(HTML|CSS|Bootstrap|Tailwind|SASS|SCSS|Material-UI)\b`),
		regexp.MustCompile(`(?i)\b(Git|Docker|AWS|Azure|GCP|Kubernetes|Heroku)\b`),
		regexp.MustCompile(`(?i)\b(JWT|OAuth|REST|GraphQL|API)\b`),
	}
)

const (
	projectLookAhead     = 10
	projectTitleMaxWords = 6
	projectTitleMaxLen   = 80
)

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func startsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}

func shortLine(line string, maxWords int) bool {
	return len(strings.Fields(line)) <= maxWords && utf8.RuneCountInString(line) <= projectTitleMaxLen
}

// isPotentialProjectTitle 短的非列表、非元数据、非链接行
func isPotentialProjectTitle(line string) bool {
	return line != "" &&
		!isBulletLine(line) &&
		!hasAnyPrefix(line, projectMetadataPrefixes) &&
		!httpPrefixRegex.MatchString(line) &&
		!githubPrefixRegex.MatchString(line) &&
		!domainPrefixRegex.MatchString(line) &&
		shortLine(line, projectTitleMaxWords)
}

func looksLikeDescription(line string) bool {
	return startsLower(line) || hasAnyPrefix(line, descriptionStarters)
}

func ensureHTTPS(url string) string {
	if strings.HasPrefix(url, "http") {
		return url
	}
	return "https://" + url
}

// ExtractProjects 从项目章节中提取项目：短行为标题，后续行为元数据或描述
func ExtractProjects(sectionContent string) []types.ProjectEntry {
	projects := []types.ProjectEntry{}
	if sectionContent == "" {
		return projects
	}

	lines := nonEmptyLines(sectionContent)
	i := 0
	for i < len(lines) {
		line := lines[i]
		if !isPotentialProjectTitle(line) {
			i++
			continue
		}

		// 紧跟在已识别项目后的描述性短句不作为标题
		if i > 0 && len(projects) > 0 {
			prev := lines[i-1]
			if len(strings.Fields(prev)) <= 4 && looksLikeDescription(line) {
				i++
				continue
			}
		}

		project, next := collectProject(lines, i)
		if project == nil {
			i++
			continue
		}
		projects = append(projects, *project)
		i = next
	}

	return projects
}

// collectProject 收集以 lines[titleIdx] 为标题的项目，返回下一个待处理行号
func collectProject(lines []string, titleIdx int) (*types.ProjectEntry, int) {
	var (
		descriptionParts []string
		technologies     []string
		githubURL        string
		projectURL       string
	)

	j := titleIdx + 1
	for j < len(lines) && j < titleIdx+projectLookAhead {
		next := lines[j]

		switch {
		case strings.HasPrefix(next, "Technologies:"):
			techText := strings.TrimSpace(strings.TrimPrefix(next, "Technologies:"))
			technologies = technologies[:0]
			for _, tech := range techListSplitRegex.Split(techText, -1) {
				if tech = strings.TrimSpace(tech); tech != "" {
					technologies = append(technologies, tech)
				}
			}
			j++
			continue
		case hasAnyPrefix(next, []string{"GitHub:", "Github:"}):
			githubURL = ensureHTTPS(strings.TrimSpace(strings.SplitN(next, ":", 2)[1]))
			j++
			continue
		case hasAnyPrefix(next, projectURLPrefixes):
			projectURL = strings.TrimSpace(strings.SplitN(next, ":", 2)[1])
			if !strings.HasPrefix(projectURL, "http") && strings.Contains(projectURL, ".") {
				projectURL = "https://" + projectURL
			}
			j++
			continue
		}

		if m := githubInlineRegex.FindString(next); m != "" {
			githubURL = "https://" + m
			j++
			continue
		}
		if m := urlInlineRegex.FindString(next); m != "" && !strings.Contains(m, "github.com") {
			projectURL = ensureHTTPS(m)
			j++
			continue
		}

		// 遇到下一个可能的标题时结束当前项目
		nextIsTitle := shortLine(next, projectTitleMaxWords) &&
			!isBulletLine(next) &&
			!looksLikeDescription(next)
		if nextIsTitle && j > titleIdx+1 {
			break
		}

		descriptionParts = append(descriptionParts, next)
		j++
	}

	description := strings.TrimSpace(strings.Join(descriptionParts, " "))
	if len(technologies) == 0 && description != "" {
		technologies = inferTechnologies(description)
	}

	if description == "" && len(technologies) == 0 && githubURL == "" && projectURL == "" {
		return nil, titleIdx + 1
	}

	if technologies == nil {
		technologies = []string{}
	}
	return &types.ProjectEntry{
		Title:        lines[titleIdx],
		Description:  description,
		Technologies: technologies,
		ProjectURL:   projectURL,
		GithubURL:    githubURL,
	}, j
}

// inferTechnologies 按关键词列表顺序匹配描述中的技术名词，保留原文大小写并去重
func inferTechnologies(description string) []string {
	var technologies []string
	seen := make(map[string]struct{})
	for _, re := range techKeywordRegexes {
		for _, m := range re.FindAllString(description, -1) {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			technologies = append(technologies, m)
		}
	}
	return technologies
}
