package countryexplorer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestStoreAndLoadCache(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	want := mustDecode(t, sampleJSON)

	before := time.Now().UTC().Add(-time.Second)
	if err := StoreCache(dir, want); err != nil {
		t.Fatalf("StoreCache() error = %v", err)
	}

	got, fetchedAt, err := LoadCache(dir)
	if err != nil {
		t.Fatalf("LoadCache() error = %v", err)
	}
	if !equalStrings(codes(got), codes(want)) {
		t.Errorf("LoadCache() codes = %v, want %v", codes(got), codes(want))
	}
	if fetchedAt.Before(before) {
		t.Errorf("FetchedAt = %v, want after %v", fetchedAt, before)
	}

	fra := got[0]
	if fra.CommonName != "France" || fra.Languages["fra"] != "French" || fra.Currencies["EUR"].Name != "Euro" {
		t.Errorf("France did not survive the round trip: %+v", fra)
	}
	if ata := got[4]; len(ata.Capitals) != 0 {
		t.Errorf("Antarctica capitals = %v, want none", ata.Capitals)
	}
}

func TestStoreCachePermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	if err := StoreCache(dir, []Country{france()}); err != nil {
		t.Fatalf("StoreCache() error = %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, cacheFile))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm&0022 != 0 {
		t.Errorf("cache file mode = %v, must not be group/world writable", perm)
	}
}

func TestLoadCacheMissing(t *testing.T) {
	_, _, err := LoadCache(t.TempDir())
	if !errors.Is(err, ErrCacheMissing) {
		t.Errorf("LoadCache(empty dir) error = %v, want ErrCacheMissing", err)
	}
}

func TestLoadCacheCorrupt(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, cacheFile), []byte("not gob"), 0644); err != nil {
		t.Fatal(err)
	}
	_, _, err := LoadCache(dir)
	if !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("LoadCache(corrupt) error = %v, want ErrMalformedPayload", err)
	}
}

func TestCacheSource(t *testing.T) {
	dir := t.TempDir()
	if err := StoreCache(dir, []Country{france(), germany()}); err != nil {
		t.Fatal(err)
	}

	got, err := CacheSource{Dir: dir}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if !equalStrings(codes(got), []string{"FRA", "DEU"}) {
		t.Errorf("Fetch() codes = %v", codes(got))
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (CacheSource{Dir: dir}).Fetch(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch(cancelled) error = %v, want context.Canceled", err)
	}
}

func TestCacheSourceDrivesController(t *testing.T) {
	dir := t.TempDir()
	if err := StoreCache(dir, mustDecode(t, sampleJSON)); err != nil {
		t.Fatal(err)
	}
	c := NewController(CacheSource{Dir: dir}, WithLogger(discardLogger()))
	if err := c.Load(context.Background()); err != nil {
		t.Fatal(err)
	}
	c.SetSearchTerm("jap")
	if got := codes(c.Snapshot().Results); !equalStrings(got, []string{"JPN"}) {
		t.Errorf("Results = %v, want [JPN]", got)
	}
}

func TestRefreshCache(t *testing.T) {
	srv := serveJSON(t, 200, sampleJSON)
	dir := t.TempDir()

	n, err := RefreshCache(context.Background(), NewHTTPSource(WithURL(srv.URL)), dir)
	if err != nil {
		t.Fatalf("RefreshCache() error = %v", err)
	}
	if n != 5 {
		t.Errorf("RefreshCache() = %d, want 5", n)
	}
	if _, _, err := LoadCache(dir); err != nil {
		t.Errorf("LoadCache() after refresh error = %v", err)
	}

	failing := serveJSON(t, 503, "")
	if _, err := RefreshCache(context.Background(), NewHTTPSource(WithURL(failing.URL)), t.TempDir()); !errors.Is(err, ErrNetworkFailure) {
		t.Errorf("RefreshCache(503) error = %v, want ErrNetworkFailure", err)
	}
}

// syntheticWorld builds a list large enough to pass validation.
func syntheticWorld() []Country {
	world := []Country{
		{Code: "FRA", CommonName: "France", Region: "Europe", Latitude: 46, Longitude: 2},
		{Code: "DEU", CommonName: "Germany", Region: "Europe", Latitude: 51, Longitude: 9},
		{Code: "JPN", CommonName: "Japan", Region: "Asia", Latitude: 36, Longitude: 138},
		{Code: "BRA", CommonName: "Brazil", Region: "Americas", Latitude: -10, Longitude: -55},
	}
	for i := 0; len(world) < minCountryCount; i++ {
		// Spread filler records over the southern ocean, away from the known ones.
		world = append(world, Country{
			Code:       fmt.Sprintf("Z%02d", i),
			CommonName: fmt.Sprintf("Filler %d", i),
			Region:     "Antarctic",
			Latitude:   -60 - float64(i%25),
			Longitude:  float64(i*7%360) - 180,
		})
	}
	return world
}

func TestValidateCache(t *testing.T) {
	dir := t.TempDir()
	if err := StoreCache(dir, syntheticWorld()); err != nil {
		t.Fatal(err)
	}
	if err := ValidateCache(dir); err != nil {
		t.Errorf("ValidateCache() error = %v", err)
	}
}

func TestValidateCacheFailures(t *testing.T) {
	renamed := syntheticWorld()
	renamed[2].CommonName = "Nippon"

	tests := []struct {
		name      string
		countries []Country
		wantErr   string
	}{
		{"too few", []Country{france()}, "country count too low"},
		{"duplicates", append(syntheticWorld(), france()), "duplicate"},
		{"known country renamed", renamed, "JPN name"},
		{"known country missing", syntheticWorld()[1:], "FRA missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			countries := tt.countries
			if tt.name == "known country missing" {
				// Keep the list above the minimum.
				countries = append(countries, Country{Code: "PAD", CommonName: "Padding", Latitude: -88})
			}
			dir := t.TempDir()
			if err := StoreCache(dir, countries); err != nil {
				t.Fatal(err)
			}
			err := ValidateCache(dir)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateCache() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	if err := ValidateCache(t.TempDir()); !errors.Is(err, ErrCacheMissing) {
		t.Errorf("ValidateCache(empty dir) error = %v, want ErrCacheMissing", err)
	}
}
