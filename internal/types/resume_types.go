package types

// SectionType 表示简历章节类型
type SectionType string

const (
	// SectionProfile 个人简介章节
	SectionProfile SectionType = "profile"
	// SectionSkills 技能章节
	SectionSkills SectionType = "skills"
	// SectionExperience 工作经历章节
	SectionExperience SectionType = "experience"
	// SectionEducation 教育经历章节
	SectionEducation SectionType = "education"
	// SectionProjects 项目经历章节
	SectionProjects SectionType = "projects"
	// SectionLanguages 语言能力章节
	SectionLanguages SectionType = "languages"
	// SectionContact 联系方式章节
	SectionContact SectionType = "contact"
)

// AllSections 按匹配优先级排列的所有章节
var AllSections = []SectionType{
	SectionProfile,
	SectionSkills,
	SectionExperience,
	SectionEducation,
	SectionProjects,
	SectionLanguages,
	SectionContact,
}

// ContactInfo 联系方式
type ContactInfo struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Name    string `json:"name"`
}

// EducationEntry 教育经历
type EducationEntry struct {
	Degree            string  `json:"degree"`
	FieldOfStudy      string  `json:"fieldOfStudy"`
	University        string  `json:"university"`
	StartYear         *int    `json:"startYear"`
	EndYear           *int    `json:"endYear"`
	CurrentlyStudying bool    `json:"currentlyStudying"`
	GPA               *string `json:"gpa"`
}

// ExperienceEntry 工作经历，日期格式为 YYYY-MM-DD
type ExperienceEntry struct {
	Title            string  `json:"title"`
	Company          string  `json:"company"`
	StartDate        *string `json:"startDate"`
	EndDate          *string `json:"endDate"`
	CurrentlyWorking bool    `json:"currentlyWorking"`
	Description      string  `json:"description"`
}

// ProjectEntry 项目经历
type ProjectEntry struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	ProjectURL   string   `json:"projectUrl"`
	GithubURL    string   `json:"githubUrl"`
	StartDate    *string  `json:"startDate"`
	EndDate      *string  `json:"endDate"`
}

// SocialLinks 社交链接
type SocialLinks struct {
	LinkedIn  string `json:"linkedin"`
	Github    string `json:"github"`
	Portfolio string `json:"portfolio"`
}

// ParsedResume 简历结构化解析结果
type ParsedResume struct {
	ContactInfo ContactInfo       `json:"contactInfo"`
	Skills      []string          `json:"skills"`
	Educations  []EducationEntry  `json:"educations"`
	Experiences []ExperienceEntry `json:"experiences"`
	Projects    []ProjectEntry    `json:"projects"`
	SocialLinks SocialLinks       `json:"socialLinks"`
}

// NewParsedResume 返回所有列表均为空切片的结果，保证序列化为 [] 而不是 null
func NewParsedResume() *ParsedResume {
	return &ParsedResume{
		Skills:      []string{},
		Educations:  []EducationEntry{},
		Experiences: []ExperienceEntry{},
		Projects:    []ProjectEntry{},
	}
}

// ParseResponse 简历解析接口的返回信封
type ParseResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *ParsedResume `json:"data,omitempty"`
}
