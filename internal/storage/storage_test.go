package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rewired-gh/plotbot/internal/chart"
	"github.com/rewired-gh/plotbot/internal/registry"
)

func newMemory(t *testing.T) *Storage {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	c, err := chart.NewRectangular(chart.NewCreator("alice", 1), chart.RectangularOptions{Name: "cats"})
	if err != nil {
		t.Fatalf("NewRectangular failed: %v", err)
	}
	if err := c.Plot(chart.Point{Label: "tom", X: 1, Y: 2}); err != nil {
		t.Fatalf("Plot failed: %v", err)
	}
	reg.Add(c)
	reg.Add(chart.NewAlignment(chart.NewCreator("bob", 2), chart.AlignmentOptions{}))
	return reg
}

func TestStorage_ChatStartsEmpty(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	reg, err := s.Chat(ctx, 42)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Expected empty registry, got %d plots", reg.Len())
	}

	again, err := s.Chat(ctx, 42)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if again != reg {
		t.Error("Expected the cached registry to be returned")
	}
}

func TestStorage_SaveAndLoad(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	if err := s.SaveChat(ctx, 7, sampleRegistry(t)); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}

	loaded, err := s.LoadChat(ctx, 7)
	if err != nil {
		t.Fatalf("LoadChat failed: %v", err)
	}
	if loaded.Len() != 2 {
		t.Fatalf("Expected 2 plots, got %d", loaded.Len())
	}
	c, err := loaded.Get(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if c.Kind() != chart.KindRectangular || c.Title() != "cats" {
		t.Errorf("Unexpected plot: %s %q", c.Kind(), c.Title())
	}
	if got := c.Labels(); len(got) != 1 || got[0] != "tom" {
		t.Errorf("Expected labels [tom], got %v", got)
	}
	a, err := loaded.Get(2)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if a.Kind() != chart.KindAlignment {
		t.Errorf("Expected alignment, got %s", a.Kind())
	}
}

func TestStorage_Overwrite(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	reg := sampleRegistry(t)
	if err := s.SaveChat(ctx, 7, reg); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}
	if err := reg.Remove(1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := s.SaveChat(ctx, 7, reg); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}

	loaded, err := s.LoadChat(ctx, 7)
	if err != nil {
		t.Fatalf("LoadChat failed: %v", err)
	}
	if loaded.Len() != 1 {
		t.Errorf("Expected 1 plot, got %d", loaded.Len())
	}
	if id := loaded.Add(chart.NewQuadrant(chart.NewCreator("carol", 3), chart.QuadrantOptions{})); id != 3 {
		t.Errorf("Expected next id 3, got %d", id)
	}
}

func TestStorage_ChatIDsAndDelete(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	for _, id := range []int64{30, -100, 5} {
		if err := s.SaveChat(ctx, id, registry.New()); err != nil {
			t.Fatalf("SaveChat failed: %v", err)
		}
	}
	ids, err := s.ChatIDs(ctx)
	if err != nil {
		t.Fatalf("ChatIDs failed: %v", err)
	}
	want := []int64{-100, 5, 30}
	if len(ids) != len(want) {
		t.Fatalf("Expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, ids)
		}
	}

	if err := s.DeleteChat(ctx, 5); err != nil {
		t.Fatalf("DeleteChat failed: %v", err)
	}
	ids, _ = s.ChatIDs(ctx)
	if len(ids) != 2 {
		t.Errorf("Expected 2 chats after delete, got %v", ids)
	}
}

func TestStorage_LegacyState(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	legacy := `{"charts":[{"id":3,"name":"old","creator":"alice","points":[{"label":"a","x":1,"y":1}],"bounds":{"min_x":-10,"max_x":10,"min_y":-10,"max_y":10}}],"archived":[3,9]}`
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO chats (chat_id, state, version, updated_at) VALUES (?, ?, ?, ?)",
		1, []byte(legacy), "1.0", 0)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	reg, err := s.Chat(ctx, 1)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	c, err := reg.Get(3)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !c.Info().Creator.Legacy || c.Info().Creator.Name != "alice" {
		t.Errorf("Expected legacy creator alice, got %+v", c.Info().Creator)
	}
	if ids := reg.ArchivedIDs(); len(ids) != 1 || ids[0] != 3 {
		t.Errorf("Expected archived [3], got %v", ids)
	}
	if id := reg.Add(chart.NewQuadrant(chart.NewCreator("bob", 2), chart.QuadrantOptions{})); id != 4 {
		t.Errorf("Expected next id 4, got %d", id)
	}
}

func TestStorage_UnsupportedVersion(t *testing.T) {
	s := newMemory(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO chats (chat_id, state, version, updated_at) VALUES (?, ?, ?, ?)",
		1, []byte(`{}`), "9.9", 0)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := s.LoadChat(ctx, 1); err == nil {
		t.Error("Expected error for unknown version")
	}
}

func TestStorage_FilePersistence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plotbot.db")
	ctx := context.Background()

	s, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := s.SaveChat(ctx, 7, sampleRegistry(t)); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(path)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer reopened.Close()
	reg, err := reopened.Chat(ctx, 7)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("Expected 2 plots after reopen, got %d", reg.Len())
	}
}

func TestStorage_ExportImport(t *testing.T) {
	ctx := context.Background()
	src := newMemory(t)
	if err := src.SaveChat(ctx, 7, sampleRegistry(t)); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}
	if err := src.SaveChat(ctx, 8, registry.New()); err != nil {
		t.Fatalf("SaveChat failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "backup", "chats.json")
	if err := src.Export(ctx, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Expected temp file to be gone")
	}

	dst := newMemory(t)
	n, err := dst.Import(ctx, path)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Expected 2 chats imported, got %d", n)
	}
	reg, err := dst.LoadChat(ctx, 7)
	if err != nil {
		t.Fatalf("LoadChat failed: %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("Expected 2 plots, got %d", reg.Len())
	}
}
