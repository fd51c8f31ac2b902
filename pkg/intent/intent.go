package intent

import "strings"

// Intent はリサーチ質問に割り当てられる分析モードです。
type Intent string

const (
	Qualitative  Intent = "qualitative"
	Quantitative Intent = "quantitative"
	// Mixed はシグナルが拮抗・欠如している場合の既定値です。
	Mixed Intent = "mixed"
)

// 順序はサジェスト候補プールの連結順序と一致させる
var allIntents = []Intent{Qualitative, Quantitative, Mixed}

// All は定義済みのIntentを固定順で返します。
func All() []Intent {
	return append([]Intent(nil), allIntents...)
}

// ParseIntent は任意の文字列をIntentに変換します。未知の値はMixedに丸められます。
func ParseIntent(s string) Intent {
	switch Intent(strings.ToLower(strings.TrimSpace(s))) {
	case Qualitative:
		return Qualitative
	case Quantitative:
		return Quantitative
	default:
		return Mixed
	}
}

// Valid は定義済みのIntentかどうかを返します。
func (i Intent) Valid() bool {
	switch i {
	case Qualitative, Quantitative, Mixed:
		return true
	}
	return false
}

func (i Intent) String() string {
	return string(i)
}

// modeDisplay はUIバッジ用の表示情報
type modeDisplay struct {
	label string
	icon  string
}

var modeDisplays = map[Intent]modeDisplay{
	Qualitative:  {label: "Qualitative", icon: "message-square"},
	Quantitative: {label: "Quantitative", icon: "bar-chart-3"},
	Mixed:        {label: "Mixed Methods", icon: "layers"},
}

// ModeLabel はモードの表示名を返します。未知のモードはMixedの表示名になります。
func ModeLabel(mode Intent) string {
	if d, ok := modeDisplays[mode]; ok {
		return d.label
	}
	return modeDisplays[Mixed].label
}

// ModeIcon はモードのアイコントークンを返します。未知のモードはMixedのアイコンになります。
func ModeIcon(mode Intent) string {
	if d, ok := modeDisplays[mode]; ok {
		return d.icon
	}
	return modeDisplays[Mixed].icon
}

// ModeInfo はAPIで返すモードの表示情報です。
type ModeInfo struct {
	Mode  Intent `json:"mode"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Describe はモードの表示情報をまとめて返します。
func Describe(mode Intent) ModeInfo {
	if !mode.Valid() {
		mode = Mixed
	}
	return ModeInfo{Mode: mode, Label: ModeLabel(mode), Icon: ModeIcon(mode)}
}

// Modes は全モードの表示情報を返します。
func Modes() []ModeInfo {
	modes := make([]ModeInfo, 0, len(allIntents))
	for _, m := range allIntents {
		modes = append(modes, Describe(m))
	}
	return modes
}
