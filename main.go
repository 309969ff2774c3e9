package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shandysiswandi/gotripsearch/internal/app"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkglog"
	"github.com/shandysiswandi/gotripsearch/internal/pkg/pkguid"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/entity"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/facet"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/inbound"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/usecase"
	"github.com/shandysiswandi/gotripsearch/internal/tripsearch/warmup"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "gotripsearch",
		Usage: "Multi-source flight, round trip and vacation search",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config.yaml (defaults to /config/config.yaml, or ./config/config.yaml when LOCAL=true)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
				Value:   "info",
			},
		},
		Before: setupLogger,
		Action: serveCommand,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API",
				Action: serveCommand,
			},
			{
				Name:   "search",
				Usage:  "Run one search and print the result as JSON",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "origin", Aliases: []string{"o"}, Required: true},
					&cli.StringFlag{Name: "destination", Aliases: []string{"d"}, Required: true},
					&cli.StringFlag{Name: "depart", Usage: "Departure date (YYYY-MM-DD)", Required: true},
					&cli.StringFlag{Name: "return", Usage: "Return date (YYYY-MM-DD)"},
					&cli.IntFlag{Name: "adults", Value: 1},
					&cli.IntFlag{Name: "children"},
					&cli.IntFlag{Name: "infants"},
					&cli.IntFlag{Name: "checked-bags"},
					&cli.StringFlag{Name: "cabin", Value: entity.DefaultCabinClass},
					&cli.StringFlag{Name: "currency", Value: entity.DefaultCurrency},
					&cli.BoolFlag{Name: "hotels", Usage: "Bundle hotels into vacation packages"},
					&cli.StringFlag{Name: "sort", Value: string(facet.SortRecommended)},
				},
			},
			{
				Name:   "warm",
				Usage:  "Search routes concurrently and report which source answered",
				Action: warmCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "routes", Usage: "Comma separated ORIGIN-DESTINATION list", Required: true},
					&cli.IntFlag{Name: "days", Usage: "Departure dates to search, starting tomorrow", Value: 7},
					&cli.IntFlag{Name: "stay", Usage: "Days between departure and return, 0 for one way", Value: 7},
					&cli.IntFlag{Name: "workers", Value: 4},
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// setupLogger writes logs to stderr for one-shot commands so stdout stays
// machine readable.
func setupLogger(c *cli.Context) error {
	out := os.Stdout
	if name := c.Args().First(); name == "search" || name == "warm" {
		out = os.Stderr
	}
	pkglog.SetDefault(out, pkglog.ParseLevel(c.String("log-level")))
	return nil
}

func serveCommand(c *cli.Context) error {
	application := app.New(c.String("config"))
	err := application.Run(c.Context)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx)
	return err
}

func newUsecase(c *cli.Context) (*usecase.Usecase, error) {
	cfg, err := app.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}
	return tripsearch.NewUsecase(cfg, pkguid.NewUUID())
}

func searchCommand(c *cli.Context) error {
	uc, err := newUsecase(c)
	if err != nil {
		return err
	}

	departure, err := entity.ParseDate(c.String("depart"), time.Local)
	if err != nil {
		return fmt.Errorf("invalid --depart: %w", err)
	}
	req := entity.SearchRequest{
		Origin:        c.String("origin"),
		Destination:   c.String("destination"),
		DepartureDate: departure,
		Passengers: entity.Passengers{
			Adults:   c.Int("adults"),
			Children: c.Int("children"),
			Infants:  c.Int("infants"),
		},
		CabinClass:  c.String("cabin"),
		Currency:    c.String("currency"),
		CheckedBags: c.Int("checked-bags"),
	}
	if value := c.String("return"); value != "" {
		ret, err := entity.ParseDate(value, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --return: %w", err)
		}
		req.ReturnDate = &ret
	}

	out, err := uc.Trips(c.Context, usecase.TripsInput{
		Request:       req,
		Sort:          facet.ParseSortKey(c.String("sort")),
		IncludeHotels: c.Bool("hotels"),
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(inbound.NewTripsResponse(out))
}

func warmCommand(c *cli.Context) error {
	cfg, err := app.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	uc, err := tripsearch.NewUsecase(cfg, pkguid.NewUUID())
	if err != nil {
		return err
	}
	routes, err := warmup.ParseRoutes(c.String("routes"))
	if err != nil {
		return err
	}

	opts := tripsearch.WarmupOptions(cfg)
	opts.Days = c.Int("days")
	opts.StayDays = c.Int("stay")
	opts.Workers = c.Int("workers")

	reports, err := warmup.Run(c.Context, uc, routes, opts)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ROUTE\tDEPART\tOUTBOUND\tRETURN\tOFFERS\tROUND TRIPS\tERROR")
	for _, r := range reports {
		errText := ""
		if r.Err != nil {
			errText = strings.ReplaceAll(r.Err.Error(), "\n", " ")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			r.Route, r.Departure.Format(entity.DateLayout), r.Source, r.ReturnSource, r.Offers, r.RoundTrips, errText)
	}
	return w.Flush()
}
