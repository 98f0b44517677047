// Command explorer searches and compares countries from the restcountries API.
//
// Usage:
//
//	explorer search fra
//	explorer compare FRA DEU JPN
//	explorer locate 48.85 2.35
//	explorer link "Côte d'Ivoire"
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
