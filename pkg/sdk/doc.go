// Package nexa embeds the Nexa discovery and ranking core in a Go program,
// reading the marketplace catalog straight from PostgreSQL.
//
//	client, _ := nexa.New(ctx, nexa.WithPostgres(os.Getenv("DATABASE_URL")))
//	defer client.Close()
//
//	page, _ := client.Discover(ctx, nexa.DiscoverQuery{
//	    Near:   &nexa.Position{Lat: 35.70, Lon: 51.40},
//	    SortBy: nexa.SortDistance,
//	})
//	hits, _ := client.Search(ctx, nexa.SearchQuery{Text: "road bike"})
//
// Recommendations need a Suggester (WithSuggester). Without one every call
// returns the fallback recommendation.
package nexa
