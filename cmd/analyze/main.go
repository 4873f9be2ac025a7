// Command analyze runs the intelligence engine over JSON collections and
// prints the aggregate, optionally also rendering a PDF report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/yudhistira-dev/orgintel/internal/domain"
	"github.com/yudhistira-dev/orgintel/internal/intel"
	"github.com/yudhistira-dev/orgintel/internal/logger"
	"github.com/yudhistira-dev/orgintel/internal/report"
)

func main() {
	_ = godotenv.Load()

	var (
		membersPath      = flag.String("members", "", "JSON file with the member list")
		attendancePath   = flag.String("attendance", "", "JSON file with attendance records")
		transactionsPath = flag.String("transactions", "", "JSON file with treasury transactions")
		documentsPath    = flag.String("documents", "", "JSON file with organizational documents")
		threshold        = flag.Int64("threshold", intel.DefaultThresholdAmount, "proof-required amount threshold (rupiah)")
		dupHours         = flag.Int("dup-hours", intel.DefaultDuplicateHours, "duplicate detection window in hours")
		pdfPath          = flag.String("pdf", "", "optional path to also write a PDF report")
		orgName          = flag.String("org", os.Getenv("ORG_NAME"), "organization name for the report header")
	)
	flag.Parse()

	log := logger.New()

	var (
		members      []domain.Member
		attendance   []domain.AttendanceRecord
		transactions []domain.Transaction
		documents    []domain.Document
	)
	loadJSON(*membersPath, &members, log)
	loadJSON(*attendancePath, &attendance, log)
	loadJSON(*transactionsPath, &transactions, log)
	loadJSON(*documentsPath, &documents, log)

	engine := intel.New(log, intel.Options{
		ThresholdAmount: *threshold,
		DuplicateHours:  *dupHours,
	})
	data := engine.Analyze(members, attendance, transactions, documents)

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to encode aggregate")
	}
	fmt.Println(string(out))

	if *pdfPath != "" {
		f, err := os.Create(*pdfPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *pdfPath).Msg("Failed to create report file")
		}
		defer f.Close()

		if err := report.NewWriter(*orgName).Render(data, f); err != nil {
			log.Fatal().Err(err).Msg("Failed to render report")
		}
		log.Info().Str("path", *pdfPath).Msg("Report written")
	}
}

// loadJSON fills dst from the given file; an empty path leaves the
// collection empty, which the engine treats as valid input.
func loadJSON(path string, dst interface{}, log zerolog.Logger) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to read input file")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to parse input file")
	}
}
