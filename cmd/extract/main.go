// Command extract runs the receipt extraction chain over one image and
// prints the structured result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yudhistira-dev/orgintel/internal/imagefetch"
	"github.com/yudhistira-dev/orgintel/internal/logger"
	"github.com/yudhistira-dev/orgintel/internal/ocr"
	"github.com/yudhistira-dev/orgintel/internal/receipt"
)

func main() {
	_ = godotenv.Load()

	var (
		ref       = flag.String("ref", "", "image reference: local path, gs:// URI or data URL")
		useGemini = flag.Bool("gemini", false, "enable the Gemini fallback provider (needs GEMINI_API_KEY)")
		timeout   = flag.Duration("timeout", 60*time.Second, "overall extraction timeout")
	)
	flag.Parse()

	log := logger.New()

	if *ref == "" {
		fmt.Fprintln(os.Stderr, "usage: extract -ref <image path | gs://uri | data URL> [-gemini]")
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	image, err := imagefetch.Load(ctx, *ref)
	if err != nil {
		log.Fatal().Err(err).Str("ref", *ref).Msg("Failed to load image")
	}

	providers := []receipt.Provider{
		receipt.NewExtractor(ocr.NewTesseractRecognizer(), log),
	}
	if *useGemini {
		providers = append(providers, receipt.NewGeminiProvider(""))
	}
	chain := receipt.NewChain(receipt.ReviewFloor, log, providers...)

	result := chain.Extract(ctx, image)

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode result")
	}
	fmt.Println(string(out))
}
