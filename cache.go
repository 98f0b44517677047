package countryexplorer

import (
	"bytes"
	"compress/bzip2"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// ErrCacheMissing is returned when no snapshot file exists in the cache directory.
var ErrCacheMissing = errors.New("country cache missing")

// DefaultCacheDir is the snapshot directory used when none is configured.
const DefaultCacheDir = "./countryexplorer-cache"

// cacheFile is the snapshot file name inside the cache directory.
const cacheFile = "countries.dmp"

// cacheVersion is bumped whenever the snapshot layout changes.
const cacheVersion = 1

// snapshot is the gob-encoded cache content.
type snapshot struct {
	Version   int
	FetchedAt time.Time
	Countries []Country
}

// StoreCache writes countries as a gob snapshot into dir.
//
// Compress with bzip2 afterwards if desired; LoadCache prefers the .bz2 file:
//
//	bzip2 -f countryexplorer-cache/countries.dmp
func StoreCache(dir string, countries []Country) error {
	// 0755/0644: cache files must not be writable by other users.
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	b := new(bytes.Buffer)
	snap := snapshot{Version: cacheVersion, FetchedAt: time.Now().UTC(), Countries: countries}
	if err := gob.NewEncoder(b).Encode(snap); err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	path := filepath.Join(dir, cacheFile)
	if err := os.WriteFile(path, b.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// LoadCache reads the snapshot stored in dir.
func LoadCache(dir string) ([]Country, time.Time, error) {
	r, cleanup, err := openOptionallyBzippedFile(filepath.Join(dir, cacheFile))
	if err != nil {
		return nil, time.Time{}, err
	}
	defer cleanup()

	var snap snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: decoding cache: %w", ErrMalformedPayload, err)
	}
	if snap.Version != cacheVersion {
		return nil, time.Time{}, fmt.Errorf("%w: cache version %d, want %d", ErrMalformedPayload, snap.Version, cacheVersion)
	}
	return snap.Countries, snap.FetchedAt, nil
}

func openOptionallyBzippedFile(file string) (io.Reader, func() error, error) {
	fh, err := os.Open(file + ".bz2")
	if err != nil {
		fh, err = os.Open(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil, fmt.Errorf("%w: %s", ErrCacheMissing, file)
			}
			return nil, nil, fmt.Errorf("opening %s: %w", file, err)
		}
		return fh, fh.Close, nil
	}
	return bzip2.NewReader(fh), fh.Close, nil
}

// CacheSource serves the snapshot in Dir as a DataSource.
type CacheSource struct {
	Dir string
}

// Fetch loads the snapshot. It honors ctx cancellation before reading.
func (s CacheSource) Fetch(ctx context.Context) ([]Country, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := s.Dir
	if dir == "" {
		dir = DefaultCacheDir
	}
	countries, _, err := LoadCache(dir)
	return countries, err
}

// RefreshCache fetches from src and stores the result in dir.
// It returns the number of countries written.
func RefreshCache(ctx context.Context, src DataSource, dir string) (int, error) {
	countries, err := src.Fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching countries: %w", err)
	}
	if err := StoreCache(dir, countries); err != nil {
		return 0, fmt.Errorf("storing cache: %w", err)
	}
	return len(countries), nil
}

// minCountryCount is the smallest plausible size of the full country list.
// restcountries v3.1 returns 250 records.
const minCountryCount = 200

// knownCountries are used to validate a snapshot.
var knownCountries = []struct {
	code       string
	wantName   string
	wantRegion string
}{
	{"FRA", "France", "Europe"},
	{"DEU", "Germany", "Europe"},
	{"JPN", "Japan", "Asia"},
	{"BRA", "Brazil", "Americas"},
}

// ValidateCache loads the snapshot in dir and checks its integrity.
func ValidateCache(dir string) error {
	countries, _, err := LoadCache(dir)
	if err != nil {
		return fmt.Errorf("failed to load cache: %w", err)
	}
	idx := NewCountryIndex(countries)

	if idx.Len() < minCountryCount {
		return fmt.Errorf("country count too low: got %d, want >= %d", idx.Len(), minCountryCount)
	}
	if idx.Dropped() > 0 {
		return fmt.Errorf("cache holds %d duplicate country codes", idx.Dropped())
	}

	for _, tc := range knownCountries {
		c, ok := idx.Lookup(tc.code)
		if !ok {
			return fmt.Errorf("country %s missing", tc.code)
		}
		if c.CommonName != tc.wantName {
			return fmt.Errorf("country %s name = %q, want %q", tc.code, c.CommonName, tc.wantName)
		}
		if c.Region != tc.wantRegion {
			return fmt.Errorf("country %s region = %q, want %q", tc.code, c.Region, tc.wantRegion)
		}
		// A country's own centroid must resolve back to it.
		if near, ok := idx.Nearest(c.Latitude, c.Longitude); !ok || near.Code != c.Code {
			return fmt.Errorf("nearest(%v, %v) = %q, want %q", c.Latitude, c.Longitude, near.Code, c.Code)
		}
	}
	return nil
}
