package main

import (
	"context"
	"crypto/rand"
	"encoding/base32"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/IsekaiAgile/chef-game-sub001/internal/store"
	"github.com/IsekaiAgile/chef-game-sub001/internal/telemetry"
	"github.com/IsekaiAgile/chef-game-sub001/internal/ui"
	"github.com/IsekaiAgile/chef-game-sub001/internal/util"
)

var (
	version      = "0.1.0"
	seedAlphabet = base32.NewEncoding("abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)
)

func main() {
	// Load .env if present; a missing file is fine
	_ = godotenv.Load()

	seedFlag := flag.String("seed", "", "Run seed phrase (optional; random if omitted)")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN for the run archive (optional)")
	theme := flag.String("theme", util.EnvOr("BROTHGAME_THEME", "miso"), "Color theme")
	typingMS := flag.Int("typing-ms", util.EnvIntOr("BROTHGAME_TYPING_MS", 30), "Typewriter reveal interval per character, in milliseconds")
	traces := flag.Bool("traces", os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "", "Export OpenTelemetry traces")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "brothgame [--seed phrase] [--dsn DSN] [--theme name] [--typing-ms n] | migrate up|down | version\n")
	}
	flag.Parse()

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "version":
			fmt.Println("brothgame", version)
			return
		case "migrate":
			runMigrate(args[1:], *dsn)
			return
		default:
			flag.Usage()
			os.Exit(2)
		}
	}

	seedText := strings.TrimSpace(*seedFlag)
	if seedText == "" {
		generated, err := generateSeed()
		if err != nil {
			log.Fatalf("failed to generate seed: %v", err)
		}
		seedText = generated
		fmt.Printf("New run seed: %s\n", seedText)
	}

	cfg := util.Config{
		SeedText:       seedText,
		DSN:            *dsn,
		Theme:          *theme,
		TypingInterval: ticksForMillis(*typingMS),
		Telemetry:      *traces,
		Version:        version,
	}

	ctx := context.Background()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("telemetry disabled: %v", err)
			cfg.Telemetry = false
		} else {
			defer func() {
				sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = shutdown(sctx)
			}()
		}
	}

	var db *store.DB
	if cfg.DSN != "" {
		mig, err := store.NewMigrator(cfg.DSN)
		if err != nil {
			log.Fatalf("migrations init failed: %v", err)
		}
		if err := mig.Up(); err != nil && err != store.ErrNoChange {
			log.Fatalf("migrations failed: %v", err)
		}
		openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err = store.Open(openCtx, cfg.DSN)
		cancel()
		if err != nil {
			log.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()
	}

	if err := ui.Run(ctx, db, cfg); err != nil {
		log.Fatal(err)
	}
}

func runMigrate(args []string, dsn string) {
	if len(args) < 1 {
		log.Fatal("migrate requires 'up' or 'down'")
	}
	migrator, err := store.NewMigrator(dsn)
	if err != nil {
		log.Fatal(err)
	}
	switch args[0] {
	case "up":
		if err := migrator.Up(); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations applied")
	case "down":
		if err := migrator.Down(); err != nil && err != store.ErrNoChange {
			log.Fatal(err)
		}
		fmt.Println("Migrations rolled back")
	default:
		log.Fatal("unknown migrate action; use up|down")
	}
}

// ticksForMillis converts a per-character reveal interval to scheduler
// ticks, where one UI frame advances the clock 30 ticks every 33ms.
func ticksForMillis(ms int) int {
	if ms <= 0 {
		return 30
	}
	return ms * 30 / 33
}

func generateSeed() (string, error) {
	buf := make([]byte, 15) // 24 characters base32
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return strings.ToLower(seedAlphabet.EncodeToString(buf)), nil
}
