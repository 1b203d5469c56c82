package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveGame(GameRecord{
		GameID:       "tetris",
		Player:       "brave-otter",
		PiecesLocked: 42,
		Ticks:        900,
		Seed:         7,
		EndReason:    EndGameOver,
	})
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("SaveGame() returned non-UUID id %q: %v", id, err)
	}

	got, err := store.GameByID(id)
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("GameByID() returned nil for saved game")
	}
	if got.GameID != "tetris" || got.Player != "brave-otter" || got.PiecesLocked != 42 ||
		got.Ticks != 900 || got.Seed != 7 || got.EndReason != EndGameOver {
		t.Errorf("GameByID() = %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set")
	}
}

func TestStoreKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveGame(GameRecord{ID: "fixed-id", GameID: "tetris", EndReason: EndExit})
	if err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if id != "fixed-id" {
		t.Errorf("id = %q, want fixed-id", id)
	}

	if _, err := store.SaveGame(GameRecord{ID: "fixed-id", GameID: "tetris", EndReason: EndExit}); err == nil {
		t.Error("duplicate id should fail")
	}
}

func TestStoreSaveRequiresGameID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveGame(GameRecord{EndReason: EndExit}); err == nil {
		t.Error("SaveGame() without game id should fail")
	}
}

func TestStoreGameByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.GameByID("nope")
	if err != nil {
		t.Fatalf("GameByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("GameByID() = %+v, want nil", got)
	}
}

func TestStoreRecentGames(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		if _, err := store.SaveGame(GameRecord{GameID: "tetris", PiecesLocked: i, EndReason: EndGameOver}); err != nil {
			t.Fatalf("SaveGame() failed: %v", err)
		}
	}
	store.SaveGame(GameRecord{GameID: "tetris_classic", PiecesLocked: 99, EndReason: EndExit})

	recent, err := store.RecentGames("tetris", 3)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 games with limit, got %d", len(recent))
	}
	// Newest first
	if recent[0].PiecesLocked != 5 || recent[1].PiecesLocked != 4 || recent[2].PiecesLocked != 3 {
		t.Errorf("Games not in expected order: %+v", recent)
	}

	all, err := store.RecentGames("", 0)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected 6 games across variants, got %d", len(all))
	}
	if all[0].GameID != "tetris_classic" {
		t.Errorf("Expected newest game first, got %q", all[0].GameID)
	}
}

func TestStoreRecentGamesLimitIsCapped(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 3; i++ {
		store.SaveGame(GameRecord{GameID: "tetris", PiecesLocked: i, EndReason: EndExit})
	}

	got, err := store.RecentGames("tetris", MaxRecentGames*100)
	if err != nil {
		t.Fatalf("RecentGames() failed: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 games, got %d", len(got))
	}
}

func TestStoreBestGame(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestGame("tetris")
	if err != nil {
		t.Fatalf("BestGame() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty history, got %d", best)
	}

	store.SaveGame(GameRecord{GameID: "tetris", PiecesLocked: 10, EndReason: EndGameOver})
	store.SaveGame(GameRecord{GameID: "tetris", PiecesLocked: 30, EndReason: EndRestart})
	store.SaveGame(GameRecord{GameID: "tetris", PiecesLocked: 20, EndReason: EndExit})

	best, err = store.BestGame("tetris")
	if err != nil {
		t.Fatalf("BestGame() failed: %v", err)
	}
	if best != 30 {
		t.Errorf("Expected best of 30, got %d", best)
	}
}

func TestStoreClearGames(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(GameRecord{GameID: "tetris", EndReason: EndExit})
	store.SaveGame(GameRecord{GameID: "tetris", EndReason: EndExit})
	store.SaveGame(GameRecord{GameID: "tetris_classic", EndReason: EndExit})

	if err := store.ClearGames("tetris"); err != nil {
		t.Fatalf("ClearGames() failed: %v", err)
	}

	modern, _ := store.RecentGames("tetris", 10)
	if len(modern) != 0 {
		t.Errorf("Expected 0 games after clear, got %d", len(modern))
	}

	classic, _ := store.RecentGames("tetris_classic", 10)
	if len(classic) != 1 {
		t.Errorf("Classic history should not be affected by clearing tetris")
	}
}

func TestStoreAllGamesStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveGame(GameRecord{GameID: "tetris", PiecesLocked: 10, Ticks: 100, EndReason: EndGameOver})
	store.SaveGame(GameRecord{GameID: "tetris", PiecesLocked: 20, Ticks: 300, EndReason: EndGameOver})
	store.SaveGame(GameRecord{GameID: "tetris_classic", PiecesLocked: 5, Ticks: 50, EndReason: EndExit})

	stats, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 variants, got %d", len(stats))
	}

	st := stats["tetris"]
	if st.GamesCount != 2 || st.BestPieces != 20 || st.TotalPieces != 30 || st.TotalTicks != 400 {
		t.Errorf("tetris stats = %+v", st)
	}
	if st.AvgPieces != 15 {
		t.Errorf("AvgPieces = %v, want 15", st.AvgPieces)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed was not set")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.blockfall/nested/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".blockfall", "nested", "test.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under the home directory")
	}
}
