package processor

import (
	"math"

	"cv-ai-go/internal/types"
)

// 匹配等级文案
const (
	LabelExcellent = "Excellent match"
	LabelGood      = "Good match"
	LabelFair      = "Fair match"
	LabelPoor      = "Poor match"
)

// CosineSimilarity 余弦相似度。长度不一致或任一向量为零向量时返回0
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// WeightedScore 按固定顺序累加各维度得分与权重的乘积，结果范围与输入相同
func WeightedScore(scores map[types.Facet]float64) float64 {
	var total float64
	for _, facet := range types.AllFacets {
		total += scores[facet] * types.FacetWeights[facet]
	}
	return total
}

// MatchLabel 根据 0-100 的得分给出匹配等级
func MatchLabel(score float64) string {
	switch {
	case score >= 80:
		return LabelExcellent
	case score >= 60:
		return LabelGood
	case score >= 40:
		return LabelFair
	default:
		return LabelPoor
	}
}
