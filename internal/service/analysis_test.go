package service

import (
	"strings"
	"testing"

	"github.com/adscript/adscript-backend/internal/domain"
	"github.com/adscript/adscript-backend/internal/learning"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeReferences(t *testing.T) {
	scripts := []*domain.EffectiveScript{
		{
			Hook:         "ハーバード大学の研究で判明した美容法",
			MainContent:  "たった1,980円で30%オフ。美容成分、美容成分",
			CallToAction: "今すぐチェック、無料で試して",
		},
		{
			Hook:         "3日で実感",
			MainContent:  "期間限定1,980円",
			CallToAction: "詳しくはチェック",
		},
	}

	a := AnalyzeReferences(scripts)
	require.NotNil(t, a)

	assert.Equal(t, []string{"1,980円", "30%"}, a.NumericalPatterns)
	assert.Equal(t, []string{"ハーバード", "大学", "研究"}, a.AuthorityPatterns)
	assert.Equal(t, []string{"限定", "期間限定", "今すぐ"}, a.UrgencyPatterns)
	assert.Equal(t, []string{"ハーバード大学の研究", "3日で実感"}, a.HookStarters)
	assert.Equal(t, []string{"チェック", "試して", "無料"}, a.CTAPatterns)
	assert.Equal(t, []string{"美容成分"}, a.FrequentKeywords)
}

func TestAnalyzeReferences_Empty(t *testing.T) {
	assert.Nil(t, AnalyzeReferences(nil))
}

func TestAnalyzeQuality(t *testing.T) {
	q := AnalyzeQuality(domain.ScriptDraft{
		Hook:         "3日で変わる？本当に！",
		MainContent:  "専門家監修、1,980円",
		CallToAction: "今すぐ無料でチェック",
	})

	assert.True(t, q.HasNumbers)
	assert.True(t, q.HasUrgency)
	assert.True(t, q.HasAuthority)
	assert.Equal(t, 4, q.HookStrength)
	assert.Equal(t, 4, q.CTAStrength)
	assert.Equal(t, 14, q.OverallScore)

	assert.Equal(t, domain.QualityAnalysis{}, AnalyzeQuality(domain.ScriptDraft{}))
}

func TestParseDraft(t *testing.T) {
	t.Run("embedded json", func(t *testing.T) {
		content := "はい、こちらです。\n{\"title\": \"T\", \"hook\": \"H\", \"main_content\": \"M\", \"call_to_action\": \"C\", \"script_content\": \"S\"}\n以上"
		d := parseDraft(content, "美容")
		assert.Equal(t, domain.ScriptDraft{Title: "T", Hook: "H", MainContent: "M", CallToAction: "C", ScriptContent: "S"}, d)
	})

	t.Run("missing fields are filled", func(t *testing.T) {
		d := parseDraft(`{"hook": "H"}`, "美容")
		assert.Equal(t, "統合分析によるtitle", d.Title)
		assert.Equal(t, "H", d.Hook)
		assert.Equal(t, "統合分析によるcall_to_action", d.CallToAction)
		assert.Equal(t, "🎣 フック: H\n\n💬 メインコンテンツ: 統合分析によるmain_content\n\n📢 CTA: 統合分析によるcall_to_action", d.ScriptContent)
	})

	t.Run("no json falls back", func(t *testing.T) {
		d := parseDraft("台本を作れませんでした", "美容")
		assert.Equal(t, "美容の統合分析台本", d.Title)
		assert.Equal(t, "台本を作れませんでした", d.ScriptContent)
	})

	t.Run("broken json falls back", func(t *testing.T) {
		d := parseDraft("{\"title\": ", "美容")
		assert.Equal(t, "効果実証済みの強力なフック", d.Hook)
	})
}

func TestBuildPrompt(t *testing.T) {
	refs := []*domain.EffectiveScript{
		{Title: "参考A", Hook: "フックA", EffectivenessReason: "数字が効く"},
		{Title: "参考B"},
		{Title: "参考C"},
	}
	positive := make([]domain.RankedPattern, 12)
	for i := range positive {
		positive[i] = domain.RankedPattern{PatternType: learning.PatternKeyword, PatternContent: "限定", EffectivenessScore: 1.5, FrequencyCount: 2}
	}

	prompt, err := buildPrompt(promptInput{
		Category:       "美容",
		TargetAudience: "30代女性",
		Platform:       "tiktok",
		ScriptLength:   "30秒",
		References:     refs,
		Positive:       positive,
		Negative:       []domain.RankedPattern{{PatternType: learning.PatternCTA, PatternContent: "check_action", EffectivenessScore: -0.25}},
		Analysis:       &domain.ReferenceAnalysis{NumericalPatterns: []string{"1円", "2円", "3円", "4円", "5円", "6円"}},
		NGWords:        []*domain.NGWord{{Word: "完治", Reason: "薬機法"}, {Word: "最強"}},
	})
	require.NoError(t, err)

	assert.Contains(t, prompt, "あなたは美容の広告台本を作成する超一流のコピーライターです。")
	assert.Contains(t, prompt, "- ターゲット層: 30代女性")
	assert.Contains(t, prompt, "効果的台本1: 参考A")
	assert.Contains(t, prompt, "効果的台本2: 参考B")
	assert.NotContains(t, prompt, "参考C")
	assert.Equal(t, promptPositivePatterns, strings.Count(prompt, "- keyword: 限定 (効果スコア: 1.50, 出現回数: 2)"))
	assert.Contains(t, prompt, "- cta_pattern: check_action (効果スコア: -0.25)")
	assert.Contains(t, prompt, "🔢 数値パターン: 1円, 2円, 3円, 4円, 5円\n")
	assert.Contains(t, prompt, "- 完治 （理由：薬機法）")
	assert.Contains(t, prompt, "- 最強\n")
}

func TestBuildPrompt_Minimal(t *testing.T) {
	prompt, err := buildPrompt(promptInput{Category: "美容"})
	require.NoError(t, err)
	assert.NotContains(t, prompt, "【強化学習データ")
	assert.NotContains(t, prompt, "【効果的台本の分析結果】")
	assert.NotContains(t, prompt, "禁止ワード")
	assert.Contains(t, prompt, "【出力形式】")
}
