// Command update-cache refreshes the offline country snapshot.
//
// Usage:
//
//	go run ./cmd/update-cache [cache-dir]
//
// This fetches from restcountries and writes to ./countryexplorer-cache/ by
// default. After running, optionally compress the snapshot:
//
//	bzip2 -f countryexplorer-cache/countries.dmp
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/andreiashu/countryexplorer"
)

func main() {
	dir := countryexplorer.DefaultCacheDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	src := countryexplorer.NewHTTPSource()
	fmt.Printf("Fetching country list from %s...\n", src.URL())

	n, err := countryexplorer.RefreshCache(ctx, src, dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Stored %d countries in %s.\n", n, dir)

	fmt.Println("Validating cache...")
	if err := countryexplorer.ValidateCache(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Cache OK.")
}
