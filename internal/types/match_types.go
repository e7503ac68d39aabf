package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Facet 候选人用于独立向量化打分的文本维度
type Facet string

const (
	FacetSkills       Facet = "skills"
	FacetStatement    Facet = "statement"
	FacetProjects     Facet = "projects"
	FacetExperience   Facet = "experience"
	FacetFieldOfStudy Facet = "fieldOfStudy"
)

// AllFacets 固定顺序的所有维度，批量向量化时按此顺序组织输入
var AllFacets = []Facet{
	FacetSkills,
	FacetStatement,
	FacetProjects,
	FacetExperience,
	FacetFieldOfStudy,
}

// FacetWeights 各维度权重，总和为 1
var FacetWeights = map[Facet]float64{
	FacetSkills:       0.5,
	FacetProjects:     0.25,
	FacetExperience:   0.1,
	FacetStatement:    0.1,
	FacetFieldOfStudy: 0.05,
}

// JobPosting 岗位信息
type JobPosting struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	PreferredSkills []string `json:"preferredSkills"`
}

// CandidateProject 候选人项目
type CandidateProject struct {
	Title        string   `json:"title"`
	Technologies []string `json:"technologies"`
}

// CandidateExperience 候选人经历
type CandidateExperience struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CandidateProfile 候选人档案
type CandidateProfile struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Skills       []string              `json:"skills"`
	Statement    string                `json:"statement"`
	Projects     []CandidateProject    `json:"projects"`
	Experiences  []CandidateExperience `json:"experiences"`
	FieldOfStudy string                `json:"fieldOfStudy"`
}

// UnmarshalJSON 兼容数字形式的 id, 统一转为字符串
func (c *CandidateProfile) UnmarshalJSON(data []byte) error {
	type alias CandidateProfile
	aux := struct {
		ID json.RawMessage `json:"id"`
		*alias
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := decodeProfileID(aux.ID)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func decodeProfileID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("候选人id必须是字符串或数字: %s", raw)
	}
	return n.String(), nil
}

// MatchResult 单个候选人的匹配结果
type MatchResult struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Similarity float64            `json:"similarity"` // 0-100，保留两位小数
	MatchLabel string             `json:"matchLabel"`
	Details    map[string]float64 `json:"details"` // 各维度得分 x100
}

// RecommendRequest 候选人推荐请求，seekers 与 candidates 二选一
type RecommendRequest struct {
	Job        *JobPosting        `json:"job"`
	Seekers    []CandidateProfile `json:"seekers,omitempty"`
	Candidates []CandidateProfile `json:"candidates,omitempty"`
}

// Profiles 返回请求中的候选人列表
func (r *RecommendRequest) Profiles() []CandidateProfile {
	if len(r.Seekers) > 0 {
		return r.Seekers
	}
	return r.Candidates
}

// RecommendResponse 候选人推荐返回信封
type RecommendResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Data    []MatchResult `json:"data"`
}
