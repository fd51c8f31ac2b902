package config

import (
	"fmt"
	"os"
	"strings"

	"research-brief-api/pkg/intent"

	"gopkg.in/yaml.v3"
)

// IntentBanksConfig はintent_banks.yamlの構造を定義
type IntentBanksConfig struct {
	Keywords struct {
		Qualitative  []string `yaml:"qualitative"`
		Quantitative []string `yaml:"quantitative"`
	} `yaml:"keywords"`

	Suggestions modeLists `yaml:"suggestions"`

	FollowUps struct {
		modeLists `yaml:",inline"`
		Generic   []string `yaml:"generic"`
	} `yaml:"follow_ups"`
}

type modeLists struct {
	Qualitative  []string `yaml:"qualitative"`
	Quantitative []string `yaml:"quantitative"`
	Mixed        []string `yaml:"mixed"`
}

// apply は空でないリストだけをbankに上書きする
func (m modeLists) apply(bank map[intent.Intent][]string) {
	if len(m.Qualitative) > 0 {
		bank[intent.Qualitative] = m.Qualitative
	}
	if len(m.Quantitative) > 0 {
		bank[intent.Quantitative] = m.Quantitative
	}
	if len(m.Mixed) > 0 {
		bank[intent.Mixed] = m.Mixed
	}
}

// LoadIntentBanks はYAMLファイルからキーワード・サジェスト・フォローアップのテーブルを読み込みます。
// ファイルに無いセクションは組み込みのテーブルが使われます。
func LoadIntentBanks(path string) (intent.Banks, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return intent.Banks{}, fmt.Errorf("インテントテーブル設定ファイルの読み込みに失敗: %w", err)
	}
	return ParseIntentBanks(data)
}

// ParseIntentBanks はYAMLデータをテーブルに変換します。
func ParseIntentBanks(data []byte) (intent.Banks, error) {
	var cfg IntentBanksConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return intent.Banks{}, fmt.Errorf("YAMLのパースに失敗: %w", err)
	}

	banks := intent.DefaultBanks()
	if len(cfg.Keywords.Qualitative) > 0 {
		banks.QualitativeKeywords = cfg.Keywords.Qualitative
	}
	if len(cfg.Keywords.Quantitative) > 0 {
		banks.QuantitativeKeywords = cfg.Keywords.Quantitative
	}
	cfg.Suggestions.apply(banks.Suggestions)
	cfg.FollowUps.apply(banks.FollowUps)
	if len(cfg.FollowUps.Generic) > 0 {
		banks.GenericFollowUps = cfg.FollowUps.Generic
	}

	if err := validateBanks(banks); err != nil {
		return intent.Banks{}, err
	}
	return banks, nil
}

func validateBanks(b intent.Banks) error {
	// 空の断片はあらゆるテキストに一致してしまう
	for i, k := range b.QualitativeKeywords {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("keywords.qualitative[%d] が空です", i)
		}
	}
	for i, k := range b.QuantitativeKeywords {
		if strings.TrimSpace(k) == "" {
			return fmt.Errorf("keywords.quantitative[%d] が空です", i)
		}
	}
	for _, mode := range intent.All() {
		for i, s := range b.Suggestions[mode] {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("suggestions.%s[%d] が空です", mode, i)
			}
		}
	}
	return nil
}
