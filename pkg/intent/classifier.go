package intent

import (
	"strings"
	"unicode/utf8"
)

const (
	// SuggestionLimit はサジェストの最大件数です。
	SuggestionLimit = 3
	// MinPartialLength 未満の入力ではモード別の既定サジェストを返します。
	MinPartialLength = 3
)

// Scores は1回の分類で得られたキーワード一致数です。
type Scores struct {
	Qualitative         int      `json:"qualitative"`
	Quantitative        int      `json:"quantitative"`
	QualitativeMatches  []string `json:"qualitative_matches"`
	QuantitativeMatches []string `json:"quantitative_matches"`
}

// Intent は一致数からIntentを決定します。
func (s Scores) Intent() Intent {
	switch {
	case s.Qualitative > s.Quantitative && s.Qualitative > 0:
		return Qualitative
	case s.Quantitative > s.Qualitative && s.Quantitative > 0:
		return Quantitative
	default:
		// 同点（双方>0）も一致なしもMixed
		return Mixed
	}
}

// Classifier は与えられたテーブルに基づいて分類・サジェスト生成を行います。
// 生成後は状態を変更しないため、複数のgoroutineから同時に利用できます。
type Classifier struct {
	qualitative  []string
	quantitative []string
	suggestions  map[Intent][]string
	followUps    map[Intent][]string
	generic      []string
}

// NewClassifier はテーブルのコピーからClassifierを生成します。
// キーワードは小文字化され、空の断片は無視されます。
func NewClassifier(b Banks) *Classifier {
	return &Classifier{
		qualitative:  normalizeKeywords(b.QualitativeKeywords),
		quantitative: normalizeKeywords(b.QuantitativeKeywords),
		suggestions:  copyBank(b.Suggestions),
		followUps:    copyBank(b.FollowUps),
		generic:      append([]string(nil), b.GenericFollowUps...),
	}
}

func normalizeKeywords(set KeywordSet) []string {
	out := make([]string, 0, len(set))
	for _, k := range set {
		k = strings.ToLower(k)
		if strings.TrimSpace(k) == "" {
			continue
		}
		out = append(out, k)
	}
	return out
}

var defaultClassifier = NewClassifier(DefaultBanks())

// Default は組み込みテーブルを使うClassifierを返します。
func Default() *Classifier {
	return defaultClassifier
}

// Score はテキストに含まれるキーワード断片を数えます。
// 単語境界は考慮しない部分一致です。
func (c *Classifier) Score(text string) Scores {
	normalized := strings.TrimSpace(strings.ToLower(text))
	s := Scores{
		QualitativeMatches:  []string{},
		QuantitativeMatches: []string{},
	}
	if normalized == "" {
		return s
	}
	for _, k := range c.qualitative {
		if strings.Contains(normalized, k) {
			s.Qualitative++
			s.QualitativeMatches = append(s.QualitativeMatches, k)
		}
	}
	for _, k := range c.quantitative {
		if strings.Contains(normalized, k) {
			s.Quantitative++
			s.QuantitativeMatches = append(s.QuantitativeMatches, k)
		}
	}
	return s
}

// DetectIntent はテキストのIntentを判定します。
func (c *Classifier) DetectIntent(text string) Intent {
	return c.Score(text).Intent()
}

// bank はモードに対応するリストを返します。未登録のモードはMixedのリストです。
func bank(m map[Intent][]string, mode Intent) []string {
	if list, ok := m[mode]; ok {
		return list
	}
	return m[Mixed]
}

// GenerateSuggestions は入力途中のテキストに対するサジェストを最大3件返します。
func (c *Classifier) GenerateSuggestions(partialText string, mode Intent) []string {
	if utf8.RuneCountInString(partialText) < MinPartialLength {
		list := bank(c.suggestions, mode)
		if len(list) > SuggestionLimit {
			list = list[:SuggestionLimit]
		}
		return append([]string{}, list...)
	}

	needle := strings.ToLower(partialText)
	out := make([]string, 0, SuggestionLimit)
	for _, m := range allIntents {
		for _, candidate := range c.suggestions[m] {
			// 入力済みの内容を含む候補は出さない
			if strings.Contains(strings.ToLower(candidate), needle) {
				continue
			}
			out = append(out, candidate)
			if len(out) == SuggestionLimit {
				return out
			}
		}
	}
	return out
}

// GenerateFollowUps は次の質問候補を返します。
// questionは現状の選択ロジックでは使用しません。
func (c *Classifier) GenerateFollowUps(question string, mode Intent, hasResults bool) []string {
	_ = question
	if !hasResults {
		return append([]string{}, c.generic...)
	}
	return append([]string{}, bank(c.followUps, mode)...)
}

// DetectIntent は組み込みテーブルでテキストのIntentを判定します。
func DetectIntent(text string) Intent {
	return defaultClassifier.DetectIntent(text)
}

// GenerateSuggestions は組み込みテーブルでサジェストを生成します。
func GenerateSuggestions(partialText string, mode Intent) []string {
	return defaultClassifier.GenerateSuggestions(partialText, mode)
}

// GenerateFollowUps は組み込みテーブルで次の質問候補を返します。
func GenerateFollowUps(question string, mode Intent, hasResults bool) []string {
	return defaultClassifier.GenerateFollowUps(question, mode, hasResults)
}
