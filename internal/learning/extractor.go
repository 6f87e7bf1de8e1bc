package learning

import (
	"regexp"
	"strings"
)

// PatternType is the kind of textual feature a pattern records
type PatternType string

const (
	PatternNumerical PatternType = "numerical"
	PatternKeyword   PatternType = "keyword"
	PatternStructure PatternType = "structure"
	PatternCTA       PatternType = "cta_pattern"
)

// Structure and CTA flags
const (
	QuestionHook    = "question_hook"
	ExclamationHook = "exclamation_hook"
	NumberStartHook = "number_start_hook"

	ImmediateAction = "immediate_action"
	CheckAction     = "check_action"
	TrialAction     = "trial_action"
)

// Token is one extracted (type, content) pair
type Token struct {
	Type    PatternType `json:"pattern_type"`
	Content string      `json:"pattern_content"`
}

var (
	numericalRe   = regexp.MustCompile(`\p{Nd}+[,\p{Nd}]*[円％%万億千百十日時間秒分]`)
	numberStartRe = regexp.MustCompile(`^\p{Nd}`)
)

// Keywords is the persuasive vocabulary scanned for keyword patterns, in emission order.
var Keywords = []string{
	"限定", "今なら", "今だけ", "無料", "特別", "初回", "送料無料", "返金保証",
	"プロデュース", "認定", "承認", "研究", "効果", "実証", "業界", "最安値",
}

var ctaTriggers = []struct {
	trigger string
	flag    string
}{
	{"今すぐ", ImmediateAction},
	{"チェック", CheckAction},
	{"試し", TrialAction},
}

// Extract derives pattern tokens from a script's hook, body and call to action.
// Numerical matches are emitted once per occurrence; keywords at most once each.
func Extract(hook, mainContent, cta string) []Token {
	var tokens []Token

	allText := hook + " " + mainContent + " " + cta

	for _, num := range numericalRe.FindAllString(allText, -1) {
		tokens = append(tokens, Token{Type: PatternNumerical, Content: num})
	}

	for _, kw := range Keywords {
		if strings.Contains(allText, kw) {
			tokens = append(tokens, Token{Type: PatternKeyword, Content: kw})
		}
	}

	if hook != "" {
		if strings.ContainsAny(hook, "?？") {
			tokens = append(tokens, Token{Type: PatternStructure, Content: QuestionHook})
		}
		if strings.ContainsAny(hook, "!！") {
			tokens = append(tokens, Token{Type: PatternStructure, Content: ExclamationHook})
		}
		if numberStartRe.MatchString(hook) {
			tokens = append(tokens, Token{Type: PatternStructure, Content: NumberStartHook})
		}
	}

	if cta != "" {
		for _, t := range ctaTriggers {
			if strings.Contains(cta, t.trigger) {
				tokens = append(tokens, Token{Type: PatternCTA, Content: t.flag})
			}
		}
	}

	return tokens
}
