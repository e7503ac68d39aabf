package processor

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"time"

	"cv-ai-go/internal/tracing"
	"cv-ai-go/internal/types"
	"cv-ai-go/pkg/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var rankerTracer = otel.Tracer("cv-ai-go/processor/ranker")

// CandidateRanker 基于向量相似度对候选人排序
type CandidateRanker struct {
	embedder TextEmbedder
	jd       *JDProcessor
	logger   *log.Logger
}

// RankerOption 配置 CandidateRanker
type RankerOption func(*CandidateRanker)

// WithRankerLogger 设置日志记录器
func WithRankerLogger(logger *log.Logger) RankerOption {
	return func(r *CandidateRanker) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithJDProcessor 通过 JDProcessor 获取岗位向量(带缓存), 不设置时直接向量化
func WithJDProcessor(jd *JDProcessor) RankerOption {
	return func(r *CandidateRanker) {
		r.jd = jd
	}
}

// NewCandidateRanker 创建候选人排序器
func NewCandidateRanker(embedder TextEmbedder, opts ...RankerOption) (*CandidateRanker, error) {
	if embedder == nil {
		return nil, fmt.Errorf("TextEmbedder 不能为空")
	}
	r := &CandidateRanker{
		embedder: embedder,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// ValidateJob 岗位必须包含标题和描述
func ValidateJob(job *types.JobPosting) error {
	if job == nil {
		return NewInvalidJobError("job 不能为空")
	}
	if strings.TrimSpace(job.Title) == "" {
		return NewInvalidJobError("job.title 不能为空")
	}
	if strings.TrimSpace(job.Description) == "" {
		return NewInvalidJobError("job.description 不能为空")
	}
	return nil
}

// BuildJobText 拼接岗位文本: 标题 描述 要求与加分技能
func BuildJobText(job *types.JobPosting) string {
	skills := make([]string, 0, len(job.Requirements)+len(job.PreferredSkills))
	skills = append(skills, job.Requirements...)
	skills = append(skills, job.PreferredSkills...)
	return job.Title + " " + job.Description + " " + strings.Join(skills, " ")
}

// BuildFacetTexts 按维度生成候选人的文本
func BuildFacetTexts(c types.CandidateProfile) map[types.Facet]string {
	projects := make([]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		projects = append(projects, p.Title+" "+strings.Join(p.Technologies, " "))
	}
	experiences := make([]string, 0, len(c.Experiences))
	for _, e := range c.Experiences {
		experiences = append(experiences, e.Title+" "+e.Description)
	}

	return map[types.Facet]string{
		types.FacetSkills:       strings.Join(c.Skills, " "),
		types.FacetStatement:    c.Statement,
		types.FacetProjects:     strings.Join(projects, " "),
		types.FacetExperience:   strings.Join(experiences, " "),
		types.FacetFieldOfStudy: c.FieldOfStudy,
	}
}

// Recommend 计算每位候选人与岗位的匹配度, 按相似度降序返回(相同得分保持输入顺序)
func (r *CandidateRanker) Recommend(ctx context.Context, job *types.JobPosting, candidates []types.CandidateProfile) ([]types.MatchResult, error) {
	ctx, span := rankerTracer.Start(ctx, "CandidateRanker.Recommend")
	defer span.End()
	span.SetAttributes(attribute.Int("candidates.count", len(candidates)))

	if err := ValidateJob(job); err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeValidation)
		return nil, err
	}

	results := make([]types.MatchResult, 0, len(candidates))
	if len(candidates) == 0 {
		return results, nil
	}

	start := time.Now()
	jobVector, err := r.jobVector(ctx, BuildJobText(job))
	if err != nil {
		tracing.RecordError(span, err, tracing.ErrorTypeEmbedding)
		return nil, NewEmbeddingError("", fmt.Sprintf("岗位 %s: %v", job.ID, err))
	}

	for _, candidate := range candidates {
		result, err := r.ScoreCandidate(ctx, jobVector, candidate)
		if err != nil {
			tracing.RecordError(span, err, tracing.ErrorTypeEmbedding)
			return nil, err
		}
		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	r.logger.Printf("候选人排序完成: job=%s, candidates=%d, 用时 %s", job.ID, len(results), time.Since(start))
	return results, nil
}

func (r *CandidateRanker) jobVector(ctx context.Context, jobText string) ([]float64, error) {
	if r.jd != nil {
		return r.jd.GetJobDescriptionVector(ctx, jobText)
	}
	vectors, err := r.embedder.EmbedStrings(ctx, []string{jobText})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("岗位向量化结果为空")
	}
	return vectors[0], nil
}

// ScoreCandidate 对单个候选人打分。非空维度一次批量向量化, 空维度得分为0
func (r *CandidateRanker) ScoreCandidate(ctx context.Context, jobVector []float64, candidate types.CandidateProfile) (types.MatchResult, error) {
	texts := BuildFacetTexts(candidate)

	var (
		batch  []string
		facets []types.Facet
	)
	for _, facet := range types.AllFacets {
		if strings.TrimSpace(texts[facet]) == "" {
			continue
		}
		batch = append(batch, texts[facet])
		facets = append(facets, facet)
	}

	scores := make(map[types.Facet]float64, len(types.AllFacets))
	if len(batch) > 0 {
		vectors, err := r.embedder.EmbedStrings(ctx, batch)
		if err != nil {
			return types.MatchResult{}, NewEmbeddingError(candidate.ID, err.Error())
		}
		if len(vectors) != len(batch) {
			return types.MatchResult{}, NewEmbeddingError(candidate.ID,
				fmt.Sprintf("返回向量数量不匹配: 期望 %d, 实际 %d", len(batch), len(vectors)))
		}
		for i, facet := range facets {
			scores[facet] = CosineSimilarity(jobVector, vectors[i])
		}
	}

	weighted := WeightedScore(scores) * 100
	details := make(map[string]float64, len(types.AllFacets))
	for _, facet := range types.AllFacets {
		details[string(facet)] = utils.Round(scores[facet]*100, 2)
	}

	return types.MatchResult{
		ID:         candidate.ID,
		Name:       candidate.Name,
		Similarity: utils.Round(weighted, 2),
		MatchLabel: MatchLabel(weighted),
		Details:    details,
	}, nil
}
