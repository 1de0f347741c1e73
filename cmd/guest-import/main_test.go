package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	guestsdomain "wedding-registry-go/internal/domain/guests"
	"wedding-registry-go/internal/repository/inmemory"
	"wedding-registry-go/pkg/logger"
)

func TestRunDryRunPrintsSummaryAndReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guests.csv")
	fixture := "name,family_group,side\n" +
		"Ann Wilson,wilson_ann,groom\n" +
		"John Wilson,wilson_ann,groom\n" +
		"Jenny Taylor,,bride\n" +
		"Jenny  Taylor,taylor_2,bride\n"
	if err := os.WriteFile(path, []byte(fixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), logger.NewNop(), &out, path, true, true); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Dry run: nothing was written.",
		"Total guests   4",
		"Family groups  3",
		"wilson_ann",
		"Ann Wilson, John Wilson",
		"jenny taylor: Jenny Taylor | Jenny Taylor",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestRunRejectsInvalidRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guests.json")
	if err := os.WriteFile(path, []byte(`[{"name": "Ann Wilson", "side": "cousin"}]`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var out bytes.Buffer
	err := run(context.Background(), logger.NewNop(), &out, path, true, false)
	if err == nil || !strings.Contains(err.Error(), "row 1") {
		t.Fatalf("expected row error, got %v", err)
	}
}

func TestImportGuestsClearsSharedDirectoryCache(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewGuestsRepository()
	cache := inmemory.NewDirectoryCache()
	cache.SetDirectory(ctx, []guestsdomain.Guest{{ID: "old", Name: "Old Guest", NormalizedName: "old guest"}}, time.Hour)

	// api shares the cache the way running server instances share redis.
	api := guestsdomain.NewService(repo, guestsdomain.WithCache(cache, time.Hour))
	tool := guestsdomain.NewService(repo, guestsdomain.WithCache(cache, time.Hour))

	entries := []guestsdomain.ImportEntry{
		{Name: "Ann Wilson", FamilyGroup: "wilson_ann", Side: "groom"},
		{Name: "John Wilson", FamilyGroup: "wilson_ann", Side: "groom"},
	}
	var out bytes.Buffer
	if err := importGuests(ctx, &out, tool, entries, false); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(out.String(), "Total guests   2") {
		t.Fatalf("expected import summary, got:\n%s", out.String())
	}

	if _, ok := cache.GetDirectory(ctx); ok {
		t.Fatalf("expected cached directory to be dropped after import")
	}
	res, err := api.Lookup(ctx, "Ann Wilson")
	if err != nil {
		t.Fatalf("expected imported guest to resolve, got %v", err)
	}
	if len(res.FamilyMembers) != 2 {
		t.Fatalf("expected 2 family members, got %d", len(res.FamilyMembers))
	}
	if _, err := api.Lookup(ctx, "Old Guest"); err == nil {
		t.Fatalf("expected replaced guest to be gone")
	}
}
