package service

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/adscript/adscript-backend/internal/domain"
)

// Prompt limits
const (
	promptReferenceScripts = 2
	promptPositivePatterns = 10
	promptNegativePatterns = 5
)

const systemPersona = "あなたは効果的な広告台本作成の専門家です。レギュレーション遵守を最優先に、実際の配信結果データと専門家の分析を統合して、最高品質の台本を作成することが得意です。データドリブンなアプローチで、実証された成功パターンを活用してください。"

type promptInput struct {
	Category       string
	TargetAudience string
	Platform       string
	ScriptLength   string
	References     []*domain.EffectiveScript
	Positive       []domain.RankedPattern
	Negative       []domain.RankedPattern
	Analysis       *domain.ReferenceAnalysis
	NGWords        []*domain.NGWord
}

var promptFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"join": func(items []string, n int) string {
		if len(items) > n {
			items = items[:n]
		}
		return strings.Join(items, ", ")
	},
}

var promptTmpl = template.Must(template.New("prompt").Funcs(promptFuncs).Parse(`
あなたは{{.Category}}の広告台本を作成する超一流のコピーライターです。
効果的台本の専門家分析と実際の配信結果データを統合して、最高品質の台本を作成してください。

【基本条件】
- 商材カテゴリー: {{.Category}}
- ターゲット層: {{.TargetAudience}}
- プラットフォーム: {{.Platform}}
- 台本の長さ: {{.ScriptLength}}
{{if .References}}
【効果的台本（専門家選定）- 重み40%】
{{range $i, $s := .References}}
効果的台本{{inc $i}}: {{$s.Title}}
フック: {{$s.Hook}}
メイン: {{$s.MainContent}}
CTA: {{$s.CallToAction}}
効果的な理由: {{$s.EffectivenessReason}}
{{end}}{{end}}
{{- if .Positive}}
【強化学習データ（配信結果分析）- 重み60%】
🎯 実際の配信結果で効果が確認されたパターン（必ず活用）:
{{range .Positive}}- {{.PatternType}}: {{.PatternContent}} (効果スコア: {{printf "%.2f" .EffectivenessScore}}, 出現回数: {{.FrequencyCount}})
{{end}}{{end}}
{{- if .Negative}}
⚠️ 配信結果で効果が低かったパターン（避けてください）:
{{range .Negative}}- {{.PatternType}}: {{.PatternContent}} (効果スコア: {{printf "%.2f" .EffectivenessScore}})
{{end}}{{end}}
{{- with .Analysis}}
【効果的台本の分析結果】
🔢 数値パターン: {{join .NumericalPatterns 5}}
🏆 権威性パターン: {{join .AuthorityPatterns 3}}
⚡ 緊急性パターン: {{join .UrgencyPatterns 3}}
🎯 頻出キーワード: {{join .FrequentKeywords 8}}
{{end}}
【統合作成指示】
1. 強化学習データ（60%重み）を最優先で活用
   - 実際の配信結果で効果が確認されたパターンを必ず含める
   - 効果が低かったパターンは絶対に避ける

2. 効果的台本の分析結果（40%重み）も活用
   - 専門家が選定した成功パターンを参考にする
   - 具体的な数字、権威性、緊急性を含める

3. 両方のデータを統合して最適化
   - 学習データの高スコアパターンを効果的台本の成功要素と組み合わせる
   - ターゲット層に最も響く組み合わせを選択

【必須要素】
✅ 実際の配信結果で効果が確認された要素
✅ 具体的な数字（価格、効果、期間）
✅ 権威性を示す要素
✅ 緊急性を演出する要素
✅ リスク回避要素

【台本構成の詳細要求】
✅ フック:
- 具体的な数字で始める
- 権威性や話題性を含める
- 3-5秒で注意を引く強力な訴求

✅ メインコンテンツ:
- 商品の具体的な効果・特徴
- 数値による裏付け
- 権威性の証明
- ターゲットのベネフィット

✅ CTA:
- 緊急性のある行動喚起
- 具体的な特典や割引
- リスク回避要素
- 行動を促す明確な指示

【出力形式】
以下のJSON形式で、データドリブンな最適台本を作成してください：

{
    "title": "統合分析に基づく最適台本タイトル",
    "hook": "学習データ + 効果的台本の統合フック",
    "main_content": "配信結果で実証された効果的なメインコンテンツ",
    "call_to_action": "高いコンバージョンが実証されたCTA",
    "script_content": "完全な統合台本テキスト"
}

重要: 配信結果の学習データを60%、効果的台本の分析を40%の重みで統合し、実際の成果に基づいた台本を作成してください。
{{- if .NGWords}}

【重要：レギュレーション（使用禁止ワード）】
以下の言葉は法的・レギュレーション上の理由により使用を禁止されています。
台本作成時は絶対に使用しないでください：

禁止ワード:
{{range .NGWords}}- {{.Word}}{{if .Reason}} （理由：{{.Reason}}）{{end}}
{{end}}
これらの言葉を使用せずに、効果的で魅力的な台本を作成してください。
{{- end}}
`))

// buildPrompt renders the user prompt, weighting learned patterns over the reference analysis
func buildPrompt(in promptInput) (string, error) {
	if len(in.References) > promptReferenceScripts {
		in.References = in.References[:promptReferenceScripts]
	}
	if len(in.Positive) > promptPositivePatterns {
		in.Positive = in.Positive[:promptPositivePatterns]
	}
	if len(in.Negative) > promptNegativePatterns {
		in.Negative = in.Negative[:promptNegativePatterns]
	}

	var buf bytes.Buffer
	if err := promptTmpl.Execute(&buf, in); err != nil {
		return "", err
	}
	return buf.String(), nil
}
