package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"vizu/internal/adapter/repo"
	"vizu/internal/domain"
	"vizu/internal/infra"
	"vizu/internal/profile"
)

// planctl inspects and edits the persisted profile snapshot: plan tier and,
// on request, the looks counter. It talks to the same backend as the API:
// Postgres when DATABASE_URL is set, the JSON file store otherwise.
func main() {
	var (
		planFlag    string
		resetFlag   bool
		storageFlag string
	)

	flag.StringVar(&planFlag, "plan", "", "plan tier to assign (empty = inspect only)")
	flag.BoolVar(&resetFlag, "reset-usage", false, "reset the generated looks counter to 0")
	flag.StringVar(&storageFlag, "storage", "./data", "storage path for the file backend")
	flag.Parse()

	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, closeStore, err := openRepository(ctx, storageFlag)
	if err != nil {
		exitWithError(err)
	}
	defer closeStore()

	snap, found, err := store.Load(ctx)
	if err != nil {
		exitWithError(fmt.Errorf("failed to load snapshot: %w", err))
	}
	if !found {
		fmt.Println("no stored profile; showing defaults")
	}
	printSnapshot(snap)

	plan := strings.TrimSpace(strings.ToLower(planFlag))
	if plan == "" && !resetFlag {
		return
	}

	if plan != "" {
		tier, ok := domain.ParsePlanTier(plan)
		if !ok {
			exitWithError(fmt.Errorf("unsupported plan %q", plan))
		}
		snap.Plan = tier
	}
	if resetFlag {
		snap.Profile.LooksGenerated = 0
	}

	if err := store.Save(ctx, snap); err != nil {
		exitWithError(fmt.Errorf("failed to save snapshot: %w", err))
	}
	fmt.Println("updated:")
	printSnapshot(snap)
}

func openRepository(ctx context.Context, storagePath string) (profile.Repository, func(), error) {
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	logger := infra.NewLogger("cli").With().Str("cmd", "planctl").Logger()

	if dbURL == "" {
		store, err := profile.NewFileStore(storagePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	}

	pool, err := infra.NewDBPool(ctx, &infra.Config{DatabaseURL: dbURL})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect database: %w", err)
	}
	pg := repo.NewProfileRepository(pool, logger)
	if err := pg.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return pg, pool.Close, nil
}

func printSnapshot(snap profile.Snapshot) {
	fmt.Printf("plan=%s analyzed=%v looks_generated=%d\n", snap.Plan, snap.Profile.Analyzed, snap.Profile.LooksGenerated)
	if snap.Profile.Analyzed {
		fmt.Printf("season=%q face_shape=%q contrast=%q\n", snap.Profile.Season, snap.Profile.FaceShape, snap.Profile.Contrast)
	}
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
