package main

import (
	"flag"
	"log"
	"time"

	"langreport/internal/api"
	"langreport/internal/engine"
	"langreport/internal/web"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	var (
		file  = flag.String("file", "duolingo_language_report_2020_2025.xlsx", "report workbook (.xlsx or .csv export)")
		sheet = flag.String("sheet", "Data by country", "sheet with the per-country rankings")
		skip  = flag.Int("skip", 1, "banner rows above the header")
		topN  = flag.Int("top", 5, "languages to keep in the charts")
		addr  = flag.String("addr", ":8080", "listen address")
	)
	flag.Parse()

	e := echo.New()
	e.Use(middleware.CORS())
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())

	// The API is live immediately; data endpoints answer 503 until the
	// ETL below publishes the aggregate.
	h := api.NewHandler(nil)
	h.RegisterRoutes(e)
	web.NewHandler(h).RegisterRoutes(e)

	go func() {
		log.Println("BACKGROUND: building report aggregates...")
		t0 := time.Now()

		raw, err := engine.LoadSheet(*file, *sheet, *skip)
		if err != nil {
			log.Fatalf("loading report: %v", err)
		}
		store, err := engine.NewStore(raw)
		if err != nil {
			log.Fatalf("normalizing report: %v", err)
		}

		h.SetData(store.Aggregate(*topN))
		log.Printf("BACKGROUND: aggregates ready in %v (%d records)", time.Since(t0), len(store.Records))
	}()

	log.Printf("Server ready on %s (data loading in background...)", *addr)
	e.Logger.Fatal(e.Start(*addr))
}
