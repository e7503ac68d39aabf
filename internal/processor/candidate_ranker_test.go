package processor

import (
	"context"
	"testing"

	"cv-ai-go/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJob() *types.JobPosting {
	return &types.JobPosting{
		ID:              "job-1",
		Title:           "Go Developer",
		Description:     "Build services",
		Requirements:    []string{"Go"},
		PreferredSkills: []string{"Redis"},
	}
}

func fullProfile(id string, skills ...string) types.CandidateProfile {
	return types.CandidateProfile{
		ID:           id,
		Name:         "Candidate " + id,
		Skills:       skills,
		Statement:    "Backend dev",
		Projects:     []types.CandidateProject{{Title: "Cache", Technologies: []string{"Go", "Redis"}}},
		Experiences:  []types.CandidateExperience{{Title: "Engineer", Description: "Built APIs"}},
		FieldOfStudy: "CS",
	}
}

func TestBuildJobText(t *testing.T) {
	assert.Equal(t, "Go Developer Build services Go Redis", BuildJobText(testJob()))
	assert.Equal(t, "T D ", BuildJobText(&types.JobPosting{Title: "T", Description: "D"}))
}

func TestBuildFacetTexts(t *testing.T) {
	profile := types.CandidateProfile{
		Skills:    []string{"Go", "Redis"},
		Statement: "Backend dev",
		Projects: []types.CandidateProject{
			{Title: "Cache", Technologies: []string{"Go", "Redis"}},
			{Title: "API"},
		},
		Experiences:  []types.CandidateExperience{{Title: "Engineer", Description: "Built APIs"}},
		FieldOfStudy: "CS",
	}

	texts := BuildFacetTexts(profile)
	assert.Equal(t, "Go Redis", texts[types.FacetSkills])
	assert.Equal(t, "Backend dev", texts[types.FacetStatement])
	assert.Equal(t, "Cache Go Redis API ", texts[types.FacetProjects])
	assert.Equal(t, "Engineer Built APIs", texts[types.FacetExperience])
	assert.Equal(t, "CS", texts[types.FacetFieldOfStudy])
}

func TestRecommend_ScoresAndSorting(t *testing.T) {
	embedder := &MockEmbedder{
		vectors: map[string][]float64{
			"Java": {0, 1},
		},
		fallback: []float64{1, 0},
	}
	ranker, err := NewCandidateRanker(embedder)
	require.NoError(t, err)

	candidates := []types.CandidateProfile{
		{ID: "empty", Name: "Nobody"},
		fullProfile("java", "Java"),
		fullProfile("go", "Go", "Redis"),
	}

	results, err := ranker.Recommend(context.Background(), testJob(), candidates)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "go", results[0].ID, "结果应按相似度降序排列")
	assert.Equal(t, 100.0, results[0].Similarity, "所有维度向量与岗位一致时得分应为100")
	assert.Equal(t, LabelExcellent, results[0].MatchLabel)
	for _, facet := range types.AllFacets {
		assert.Equal(t, 100.0, results[0].Details[string(facet)])
	}

	assert.Equal(t, "java", results[1].ID)
	assert.Equal(t, 50.0, results[1].Similarity, "技能维度正交时只剩其余维度的权重")
	assert.Equal(t, LabelFair, results[1].MatchLabel)
	assert.Equal(t, 0.0, results[1].Details[string(types.FacetSkills)])

	assert.Equal(t, "empty", results[2].ID)
	assert.Equal(t, 0.0, results[2].Similarity)
	assert.Equal(t, LabelPoor, results[2].MatchLabel)
	assert.Len(t, results[2].Details, len(types.AllFacets), "空维度也应出现在明细中")

	// 岗位1次 + 两位非空候选人各1次批量调用
	assert.Equal(t, 3, embedder.Calls(), "空档案不应调用向量模型")

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Similarity, results[i].Similarity)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	embedder := &MockEmbedder{
		vectors: map[string][]float64{
			"Go Developer Build services Go Redis": {0.3, 0.7, 0.2},
			"Go Redis":                             {0.4, 0.6, 0.1},
			"Backend dev":                          {0.9, 0.1, 0.3},
		},
		fallback: []float64{0.5, 0.5, 0.5},
	}
	ranker, err := NewCandidateRanker(embedder)
	require.NoError(t, err)

	candidates := []types.CandidateProfile{fullProfile("a", "Go", "Redis"), fullProfile("b", "Go", "Redis")}
	first, err := ranker.Recommend(context.Background(), testJob(), candidates)
	require.NoError(t, err)
	second, err := ranker.Recommend(context.Background(), testJob(), candidates)
	require.NoError(t, err)

	assert.Equal(t, first, second, "固定向量下结果应完全一致")
	assert.Equal(t, "a", first[0].ID, "得分相同时保持输入顺序")
	assert.Equal(t, "b", first[1].ID)
}

func TestRecommend_BatchesFacets(t *testing.T) {
	embedder := &MockEmbedder{fallback: []float64{1, 0}}
	ranker, err := NewCandidateRanker(embedder)
	require.NoError(t, err)

	profile := types.CandidateProfile{ID: "x", Skills: []string{"Go"}, FieldOfStudy: "CS"}
	_, err = ranker.Recommend(context.Background(), testJob(), []types.CandidateProfile{profile})
	require.NoError(t, err)

	require.Len(t, embedder.inputs, 2)
	assert.Equal(t, []string{"Go", "CS"}, embedder.inputs[1], "非空维度应按固定顺序一次性批量向量化")
}

func TestRecommend_Errors(t *testing.T) {
	embedder := &MockEmbedder{fallback: []float64{1, 0}}
	ranker, err := NewCandidateRanker(embedder)
	require.NoError(t, err)

	_, err = ranker.Recommend(context.Background(), &types.JobPosting{Title: "only title"}, nil)
	assert.ErrorIs(t, err, ErrInvalidJob)
	_, err = ranker.Recommend(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrInvalidJob)
	assert.Equal(t, 0, embedder.Calls(), "岗位无效时不应调用向量模型")

	results, err := ranker.Recommend(context.Background(), testJob(), nil)
	require.NoError(t, err)
	assert.NotNil(t, results, "没有候选人时返回空切片")
	assert.Empty(t, results)

	failing := &MockEmbedder{err: errMockEmbedding}
	ranker, err = NewCandidateRanker(failing)
	require.NoError(t, err)
	_, err = ranker.Recommend(context.Background(), testJob(), []types.CandidateProfile{fullProfile("a", "Go")})
	assert.ErrorIs(t, err, ErrEmbeddingFailed)
}

func TestRecommend_UsesJDProcessorCache(t *testing.T) {
	embedder := &MockEmbedder{fallback: []float64{1, 0}}
	cache := NewMockJobVectorCache()
	jd, err := NewJDProcessor(embedder, "mock:2", WithJobVectorCache(cache))
	require.NoError(t, err)
	ranker, err := NewCandidateRanker(embedder, WithJDProcessor(jd))
	require.NoError(t, err)

	candidates := []types.CandidateProfile{fullProfile("a", "Go")}
	_, err = ranker.Recommend(context.Background(), testJob(), candidates)
	require.NoError(t, err)
	assert.Equal(t, 2, embedder.Calls())

	_, err = ranker.Recommend(context.Background(), testJob(), candidates)
	require.NoError(t, err)
	assert.Equal(t, 3, embedder.Calls(), "第二次排序应从缓存获取岗位向量")
	assert.Equal(t, 1, cache.sets)
}

func TestRankError(t *testing.T) {
	err := NewEmbeddingError("c-1", "timeout")
	assert.ErrorIs(t, err, ErrEmbeddingFailed)
	assert.NotErrorIs(t, err, ErrInvalidJob)
	assert.Contains(t, err.Error(), "c-1")
	assert.Contains(t, err.Error(), "timeout")

	var rankErr *RankError
	require.ErrorAs(t, err, &rankErr)
	assert.Equal(t, "embed", rankErr.Op)
}

func TestScoreCandidate_EmptyFacetsScoreZero(t *testing.T) {
	embedder := &MockEmbedder{
		vectors:  map[string][]float64{"Go": {1, 0}},
		fallback: []float64{0, 1},
	}
	ranker, err := NewCandidateRanker(embedder)
	require.NoError(t, err)

	// 只有技能非空, 空白的自我介绍同样视为空
	profile := types.CandidateProfile{ID: "c1", Name: "Only Skills", Skills: []string{"Go"}, Statement: "   "}
	result, err := ranker.ScoreCandidate(context.Background(), []float64{1, 0}, profile)
	require.NoError(t, err)

	require.Len(t, embedder.inputs, 1)
	assert.Equal(t, []string{"Go"}, embedder.inputs[0], "空维度不应送去向量化")

	assert.Equal(t, 100.0, result.Details[string(types.FacetSkills)])
	for _, facet := range []types.Facet{types.FacetStatement, types.FacetProjects, types.FacetExperience, types.FacetFieldOfStudy} {
		assert.Equal(t, 0.0, result.Details[string(facet)], string(facet))
	}
	assert.Equal(t, 50.0, result.Similarity)
	assert.Equal(t, LabelFair, result.MatchLabel)
}

func TestScoreCandidate_AllFacetsEmpty(t *testing.T) {
	embedder := &MockEmbedder{fallback: []float64{1, 0}}
	ranker, err := NewCandidateRanker(embedder)
	require.NoError(t, err)

	result, err := ranker.ScoreCandidate(context.Background(), []float64{1, 0}, types.CandidateProfile{ID: "empty"})
	require.NoError(t, err)
	assert.Equal(t, 0, embedder.Calls(), "没有非空维度时不调用向量模型")
	assert.Equal(t, 0.0, result.Similarity)
	assert.Equal(t, LabelPoor, result.MatchLabel)
	assert.Len(t, result.Details, len(types.AllFacets))
}
