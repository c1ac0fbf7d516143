// Command genmock generates a synthetic raw receiver file, a matching field
// book, and the expected analysis CSV for it. It runs the actual domain
// package so the expected output always matches real QC behavior.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -out-dir data/mock \
//	  -station 001 -sonde 01234567 \
//	  -launch 2024-01-01_00:00 -records 120
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/sonde-data-etl/internal/adapter/csvfile"
	"github.com/couchcryptid/sonde-data-etl/internal/domain"
	"github.com/couchcryptid/sonde-data-etl/internal/manifest"
)

const rawColumnCount = 41

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "data/mock", "output directory for generated fixtures")
	station := flag.String("station", "001", "station number")
	sonde := flag.String("sonde", "01234567", "sonde serial")
	launchStr := flag.String("launch", "2024-01-01_00:00", "launch time, JST")
	records := flag.Int("records", 120, "raw data rows to generate")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	launch, err := time.ParseInLocation("2006-01-02_15:04", *launchStr, manifest.JST)
	if err != nil {
		return fmt.Errorf("parse -launch: %w", err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}

	// Fixed clock so the expected analysis file is reproducible.
	domain.SetClock(clockwork.NewFakeClockAt(launch.Add(6 * time.Hour)))
	defer domain.SetClock(nil)

	raws := generateRaws(*sonde, launch, *records, rand.New(rand.NewSource(*seed)))

	rawPath := filepath.Join(*outDir, "A2_"+*sonde+".CSV")
	if err := writeRawFile(rawPath, raws); err != nil {
		return fmt.Errorf("write raw file: %w", err)
	}
	log.Printf("wrote raw file: %s (%d rows)", rawPath, len(raws))

	fbPath := filepath.Join(*outDir, "field_book.csv")
	fb := fmt.Sprintf("StationN,SondeN,Launch_time_JST,Error\n%s,%s,%s,0\n", *station, *sonde, *launchStr)
	if err := os.WriteFile(fbPath, []byte(fb), 0o644); err != nil {
		return fmt.Errorf("write field book: %w", err)
	}
	log.Printf("wrote field book: %s", fbPath)

	parsed, err := csvfile.ReadRawFile(rawPath)
	if err != nil {
		return fmt.Errorf("re-read raw file: %w", err)
	}
	sounding, err := domain.BuildSounding(*station, *sonde, launch, parsed)
	if err != nil {
		return fmt.Errorf("transform generated data: %w", err)
	}

	expectedPath := filepath.Join(*outDir, "expected_sonde_"+*station+".csv")
	if err := csvfile.WriteSounding(expectedPath, sounding); err != nil {
		return err
	}
	log.Printf("wrote expected analysis file: %s (%d records)", expectedPath, len(sounding.Records))
	return nil
}

// generateRaws emits a plausible ascent: a few pre-launch rows, then a
// climb with falling pressure and temperature. A handful of rows carry
// receiver defects (lost fix, low satellite count, error markers) so the
// expected output exercises every QC path.
func generateRaws(sonde string, launch time.Time, n int, rng *rand.Rand) [][]string {
	rows := make([][]string, 0, n)
	tod := launch

	height := 20.0
	pressure := 1013.0
	temp := 18.0
	humidity := 65.0

	for i := 0; i < n; i++ {
		row := make([]string, rawColumnCount)
		for j := range row {
			row[j] = "0"
		}

		status := "7"
		if i < 3 {
			status = "6" // pre-launch, not yet observing
		}

		fix := "4"
		sats := strconv.Itoa(6 + rng.Intn(5))
		switch {
		case i > 5 && i%29 == 0:
			fix = "0" // lost lock
		case i > 5 && i%31 == 0:
			sats = "3"
		}

		windSpeed := fmt.Sprintf("%.1f", 3.0+rng.Float64()*12)
		if i > 5 && i%37 == 0 {
			windSpeed = "////" // receiver error marker
		}

		row[0] = tod.Format("15:04:05")
		row[2] = status
		row[4] = sonde
		row[9] = fmt.Sprintf("%.1f", rng.Float64()*360)
		row[10] = windSpeed
		row[11] = fmt.Sprintf("%.1f", height)
		row[12] = fmt.Sprintf("%.1f", (rng.Float64()-0.5)*2000)
		row[13] = fmt.Sprintf("%.1f", (rng.Float64()-0.5)*2000)
		row[14] = fix
		row[17] = fmt.Sprintf("%.4f", 35.68+rng.Float64()*0.1)
		row[18] = fmt.Sprintf("%.4f", 139.76+rng.Float64()*0.1)
		row[20] = fmt.Sprintf("%.1f", pressure)
		row[21] = fmt.Sprintf("%.1f", temp)
		row[22] = fmt.Sprintf("%.1f", humidity)
		row[31] = sats

		rows = append(rows, row)

		tod = tod.Add(10 * time.Second)
		height += 45 + rng.Float64()*15
		pressure -= 5 + rng.Float64()*2
		temp -= 0.3 + rng.Float64()*0.1
		humidity += (rng.Float64() - 0.5) * 4
		if humidity < 1 {
			humidity = 1
		}
		if humidity > 100 {
			humidity = 100
		}
	}
	return rows
}

func writeRawFile(path string, rows [][]string) error {
	var b strings.Builder
	b.WriteString("RS-11G GROUND STATION\n")
	b.WriteString("Receiver S/N: 0042\n")
	b.WriteString("Firmware: 1.2.3\n")
	b.WriteString("Session start\n")
	b.WriteString("Operator: genmock\n")
	b.WriteString("-----\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
