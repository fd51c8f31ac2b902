package intent

// KeywordSet は1つのIntentに紐づくフレーズ断片の順序付きリストです。
// 照合は大文字小文字を区別しない部分一致で行います。
type KeywordSet []string

var qualitativeKeywords = KeywordSet{
	"why",
	"how do",
	"how does",
	"what do people think",
	"feel",
	"perception",
	"opinion",
	"attitude",
	"motivat",
	"experience",
	"describe",
	"explain",
	"sentiment",
	"theme",
	"reason",
}

var quantitativeKeywords = KeywordSet{
	"how many",
	"how much",
	"what percentage",
	"percent",
	"%",
	"number of",
	"count",
	"rate",
	"trend",
	"compare",
	"average",
	"statistic",
	"volume",
	"share of",
	"growth",
	"frequency",
	"proportion",
}

var suggestionBank = map[Intent][]string{
	Qualitative: {
		"Why do consumers prefer refillable packaging?",
		"How do shoppers describe their experience with subscription boxes?",
		"What emotions do people associate with sustainable brands?",
		"What motivates customers to switch brands?",
	},
	Quantitative: {
		"What percentage of consumers mention price as a purchase driver?",
		"How many conversations reference refill packaging each month?",
		"Which product category has the highest growth in mentions?",
		"How has share of voice changed over the last quarter?",
	},
	Mixed: {
		"What are the main themes in reviews and how often do they appear?",
		"How do perceptions of sustainability differ across age groups?",
		"Which pain points are growing fastest and why?",
		"What drives brand loyalty and how widespread is it?",
	},
}

var followUpBank = map[Intent][]string{
	Qualitative: {
		"What underlying motivations explain these attitudes?",
		"How do these themes differ between customer segments?",
		"Which quotes best represent the dominant sentiment?",
	},
	Quantitative: {
		"How have these numbers changed over time?",
		"Which segment shows the largest difference?",
		"How statistically significant is this result?",
	},
	Mixed: {
		"Which themes are driving the strongest numeric changes?",
		"How do these findings compare with last quarter?",
		"What actions would have the biggest measurable impact?",
	},
}

// 結果がまだ無い場合に使うモード非依存の質問
var genericFollowUps = []string{
	"What specific audience or market should this research focus on?",
	"What time period should the analysis cover?",
	"Which sources or channels matter most for this question?",
}

// Banks は分類とサジェスト生成に使うテーブル一式です。
type Banks struct {
	QualitativeKeywords  KeywordSet
	QuantitativeKeywords KeywordSet
	Suggestions          map[Intent][]string
	FollowUps            map[Intent][]string
	GenericFollowUps     []string
}

// DefaultBanks は組み込みテーブルのコピーを返します。
func DefaultBanks() Banks {
	return Banks{
		QualitativeKeywords:  append(KeywordSet(nil), qualitativeKeywords...),
		QuantitativeKeywords: append(KeywordSet(nil), quantitativeKeywords...),
		Suggestions:          copyBank(suggestionBank),
		FollowUps:            copyBank(followUpBank),
		GenericFollowUps:     append([]string(nil), genericFollowUps...),
	}
}

func copyBank(src map[Intent][]string) map[Intent][]string {
	dst := make(map[Intent][]string, len(src))
	for k, v := range src {
		dst[k] = append([]string(nil), v...)
	}
	return dst
}
