package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"tourbooking/pkg/config"
	"tourbooking/pkg/db"
)

type seedDestination struct {
	title      string
	duration   string
	minimumPax int
	inclusions []string
	price      string
}

// Seeds a small destination catalog for local development so the booking
// form has something to sell against.
func main() {
	var truncate = flag.Bool("truncate", false, "remove existing destinations before seeding")
	flag.Parse()

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.Open(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open failed: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if *truncate {
		if _, err := pool.Exec(ctx, `TRUNCATE destinations RESTART IDENTITY`); err != nil {
			fmt.Fprintf(os.Stderr, "truncate failed: %v\n", err)
			os.Exit(1)
		}
	}

	seeds := []seedDestination{
		{
			title:      "Bromo Sunrise Tour",
			duration:   "2 days 1 night",
			minimumPax: 2,
			inclusions: []string{"Transport", "Jeep", "Entrance tickets", "Local guide"},
			price:      "850000",
		},
		{
			title:      "Ijen Blue Fire Trek",
			duration:   "1 day",
			minimumPax: 2,
			inclusions: []string{"Transport", "Gas mask", "Entrance tickets", "Breakfast"},
			price:      "650000",
		},
		{
			title:      "Tumpak Sewu Waterfall",
			duration:   "1 day",
			minimumPax: 4,
			inclusions: []string{"Transport", "Entrance tickets", "Lunch", "Local guide"},
			price:      "450000",
		},
	}

	const q = `
INSERT INTO destinations (title, duration, minimum_pax, inclusions, price)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (title) DO UPDATE
SET duration = EXCLUDED.duration,
    minimum_pax = EXCLUDED.minimum_pax,
    inclusions = EXCLUDED.inclusions,
    price = EXCLUDED.price
`
	for _, s := range seeds {
		if _, err := pool.Exec(ctx, q, s.title, s.duration, s.minimumPax, s.inclusions, s.price); err != nil {
			fmt.Fprintf(os.Stderr, "seed %q failed: %v\n", s.title, err)
			os.Exit(1)
		}
	}

	fmt.Printf("seeded %d destinations\n", len(seeds))
}
