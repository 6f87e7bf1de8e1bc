package service

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/adscript/adscript-backend/internal/domain"
)

const (
	hookStarterRunes    = 10
	frequentKeywordsMax = 15
)

var (
	// reference analysis counts amounts only, unlike the ledger extractor which also keeps durations
	amountRe       = regexp.MustCompile(`\p{Nd}+[,\p{Nd}]*[円％%万億千百十]`)
	japaneseWordRe = regexp.MustCompile(`[一-龯ぁ-ゔァ-ヴー]+`)
	leadingDigitRe = regexp.MustCompile(`^\p{Nd}+`)

	authorityTerms = []string{"プロデュース", "ハーバード", "大学", "研究", "博士", "医師", "専門家", "認定", "承認", "特許"}
	urgencyTerms   = []string{"今なら", "限定", "今だけ", "期間限定", "数量限定", "今すぐ", "1度しか", "残り", "最後"}
	referenceCTAs  = []string{"チェック", "試して", "無料"}

	qualityUrgency   = []string{"今なら", "限定", "今だけ", "今すぐ", "期間限定"}
	qualityAuthority = []string{"プロデュース", "認定", "研究", "専門家", "効果"}
)

// AnalyzeReferences collects the recurring persuasion devices of hand-picked reference scripts.
// It returns nil when there are no references.
func AnalyzeReferences(scripts []*domain.EffectiveScript) *domain.ReferenceAnalysis {
	if len(scripts) == 0 {
		return nil
	}

	var hooks, mains, ctas []string
	for _, s := range scripts {
		if s.Hook != "" {
			hooks = append(hooks, s.Hook)
		}
		if s.MainContent != "" {
			mains = append(mains, s.MainContent)
		}
		if s.CallToAction != "" {
			ctas = append(ctas, s.CallToAction)
		}
	}
	all := strings.Join(append(append(append([]string{}, hooks...), mains...), ctas...), " ")

	analysis := &domain.ReferenceAnalysis{
		NumericalPatterns: unique(amountRe.FindAllString(all, -1)),
		AuthorityPatterns: containedTerms(all, authorityTerms),
		UrgencyPatterns:   containedTerms(all, urgencyTerms),
		HookStarters:      make([]string, 0, len(hooks)),
		FrequentKeywords:  frequentWords(all),
	}

	for _, h := range hooks {
		analysis.HookStarters = append(analysis.HookStarters, firstRunes(h, hookStarterRunes))
	}

	var cta []string
	for _, c := range ctas {
		for _, term := range referenceCTAs {
			if strings.Contains(c, term) {
				cta = append(cta, term)
			}
		}
	}
	analysis.CTAPatterns = unique(cta)

	return analysis
}

// AnalyzeQuality scores a draft with fixed heuristics
func AnalyzeQuality(draft domain.ScriptDraft) domain.QualityAnalysis {
	content := draft.Hook + " " + draft.MainContent + " " + draft.CallToAction
	q := domain.QualityAnalysis{
		HasNumbers:   amountRe.MatchString(content),
		HasUrgency:   containsAny(content, qualityUrgency),
		HasAuthority: containsAny(content, qualityAuthority),
	}

	if leadingDigitRe.MatchString(draft.Hook) {
		q.HookStrength += 2
	}
	if strings.ContainsAny(draft.Hook, "?？") {
		q.HookStrength++
	}
	if strings.ContainsAny(draft.Hook, "!！") {
		q.HookStrength++
	}

	if strings.Contains(draft.CallToAction, "今すぐ") {
		q.CTAStrength += 2
	}
	if strings.Contains(draft.CallToAction, "無料") {
		q.CTAStrength++
	}
	if strings.Contains(draft.CallToAction, "チェック") {
		q.CTAStrength++
	}

	for _, b := range []bool{q.HasNumbers, q.HasUrgency, q.HasAuthority} {
		if b {
			q.OverallScore += 2
		}
	}
	q.OverallScore += q.HookStrength + q.CTAStrength

	return q
}

// frequentWords returns the most common Japanese runs; ties keep first-seen order
func frequentWords(text string) []string {
	words := japaneseWordRe.FindAllString(text, -1)

	counts := map[string]int{}
	var order []string
	for _, w := range words {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > frequentKeywordsMax {
		order = order[:frequentKeywordsMax]
	}

	out := []string{}
	for _, w := range order {
		if utf8.RuneCountInString(w) > 1 && counts[w] > 1 {
			out = append(out, w)
		}
	}
	return out
}

func containedTerms(text string, terms []string) []string {
	out := []string{}
	for _, t := range terms {
		if strings.Contains(text, t) {
			out = append(out, t)
		}
	}
	return out
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		return string(r[:n])
	}
	return s
}

// unique drops repeats, keeping first occurrence order
func unique(items []string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}
