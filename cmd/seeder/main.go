package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/golf-match-manager/internal/club"
	"github.com/mauv0809/golf-match-manager/internal/database"
	"github.com/spf13/cobra"
)

var (
	snapshotFile string
	exportFile   string
	clearFirst   bool
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Seed the club database with sample data or a snapshot",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&snapshotFile, "file", "", "Import this JSON snapshot instead of the sample club")
	rootCmd.Flags().StringVar(&exportFile, "export", "", "Write the current club to this JSON snapshot and exit")
	rootCmd.Flags().BoolVar(&clearFirst, "clear", false, "Remove all club data before importing")
}

// Simplified config loading for the script
func loadConfig() (dbName, primaryURL, authToken string) {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName = os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "golf.db"
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN")
}

func run(cmd *cobra.Command, args []string) error {
	log.Info("Starting database seeder...")
	dbName, primaryURL, authToken := loadConfig()

	db, teardown, err := database.InitDB(dbName, primaryURL, authToken)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer teardown()
	store := club.New(db)

	if exportFile != "" {
		return export(store, exportFile)
	}

	snapshot := sampleClub(time.Now().UTC())
	if snapshotFile != "" {
		snapshot, err = club.ReadSnapshotFile(snapshotFile)
		if err != nil {
			return err
		}
	}
	if clearFirst {
		log.Warn("Clearing all club data")
		store.Clear()
	}

	startTime := time.Now()
	if err := store.Import(snapshot); err != nil {
		return fmt.Errorf("failed to import snapshot: %w", err)
	}
	log.Info("Seeded club",
		"users", len(snapshot.Users),
		"leaderboard", len(snapshot.Leaderboard),
		"matches", len(snapshot.Matches),
		"duration", time.Since(startTime))
	return nil
}

func export(store club.ClubStore, path string) error {
	snapshot, err := store.Export()
	if err != nil {
		return fmt.Errorf("failed to export club: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := snapshot.Write(f); err != nil {
		return err
	}
	log.Info("Exported club", "file", path, "users", len(snapshot.Users), "matches", len(snapshot.Matches))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal("Seeder failed", "error", err)
	}
}
