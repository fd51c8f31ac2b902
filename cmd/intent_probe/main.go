package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	config "research-brief-api/configs"
	"research-brief-api/pkg/intent"

	"github.com/joho/godotenv"
)

func main() {
	hasResults := flag.Bool("results", true, "結果がある前提でフォローアップを生成する")
	flag.Parse()

	// .envファイルがあればINTENT_BANKS_FILEを読む
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	classifier := intent.Default()
	if cfg.IntentBanksFile != "" {
		banks, err := config.LoadIntentBanks(cfg.IntentBanksFile)
		if err != nil {
			log.Fatalf("FATAL: %v", err)
		}
		classifier = intent.NewClassifier(banks)
	}

	questions := flag.Args()
	if len(questions) == 0 {
		questions = []string{
			"Why do consumers feel this way about refills?",
			"What percentage of consumers are discussing refill packaging?",
			"What are the main themes and how many posts mention each?",
		}
	}

	fmt.Println("=== Intent probe ===")
	for _, q := range questions {
		scores := classifier.Score(q)
		mode := scores.Intent()

		fmt.Printf("\n--- %s ---\n", q)
		fmt.Printf("モード: %s (%s)\n", intent.ModeLabel(mode), intent.ModeIcon(mode))
		fmt.Printf("qualitative=%d %v\n", scores.Qualitative, scores.QualitativeMatches)
		fmt.Printf("quantitative=%d %v\n", scores.Quantitative, scores.QuantitativeMatches)
		fmt.Printf("サジェスト:\n  %s\n", strings.Join(classifier.GenerateSuggestions(q, mode), "\n  "))
		fmt.Printf("フォローアップ:\n  %s\n", strings.Join(classifier.GenerateFollowUps(q, mode, *hasResults), "\n  "))
	}
}
