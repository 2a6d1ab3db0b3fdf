package main

import (
	"os"
	"time"

	"github.com/kr/pretty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/wayplan/wayplan/pkg/amadeus"
	"github.com/wayplan/wayplan/pkg/api"
	"github.com/wayplan/wayplan/pkg/cities"
	"github.com/wayplan/wayplan/pkg/corridors"
	"github.com/wayplan/wayplan/pkg/costmatrix"
	"github.com/wayplan/wayplan/pkg/database"
	"github.com/wayplan/wayplan/pkg/output"
	"github.com/wayplan/wayplan/pkg/planner"
	"github.com/wayplan/wayplan/pkg/redis_client"
	"github.com/wayplan/wayplan/pkg/travel"

	_ "time/tzdata"
)

func setupPlanner(cachePath string) (*planner.Planner, error) {
	registry, err := cities.NewRegistry()
	if err != nil {
		return nil, err
	}

	table, err := corridors.NewTable()
	if err != nil {
		return nil, err
	}

	oracle, err := amadeus.NewClient()
	if err != nil {
		return nil, err
	}

	return planner.NewPlanner(registry, table, oracle, cachePath), nil
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cacheFlag := &cli.StringFlag{
		Name:  "matrix-cache",
		Value: "flight_matrix_cache.json",
		Usage: "path of the cost matrix cache file",
	}
	outputFlag := &cli.StringFlag{
		Name:  "output",
		Value: "output",
		Usage: "directory itineraries are written to",
	}

	app := &cli.App{
		Name:  "wayplan",
		Usage: "Multi-modal multi-city trip planner",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run the planner web API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
					cacheFlag,
					outputFlag,
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						log.Fatal().Err(err).Msg("Failed to connect to Redis")
					}
					if err := database.Connect(); err != nil {
						log.Fatal().Err(err).Msg("Failed to connect to database")
					}

					trip, err := setupPlanner(c.String("matrix-cache"))
					if err != nil {
						log.Fatal().Err(err).Msg("Failed to set up planner")
					}

					return api.SetupServer(c.String("listen"), trip, c.String("output"))
				},
			},
			{
				Name:  "plan",
				Usage: "calculate one itinerary and write it to the output directory",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:     "city",
						Usage:    "city to visit (repeatable, excludes the depot)",
						Required: true,
					},
					&cli.IntSliceFlag{
						Name:  "days",
						Usage: "full days per route city, depot first",
					},
					&cli.IntFlag{
						Name:  "time-weight",
						Value: 0,
						Usage: "cost assigned to each hour of travel",
					},
					&cli.StringFlag{
						Name:     "start-date",
						Usage:    "departure date from the depot (YYYY-MM-DD)",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "debug",
						Usage: "dump the raw solver output",
					},
					cacheFlag,
					outputFlag,
				},
				Action: func(c *cli.Context) error {
					if err := redis_client.Connect(); err != nil {
						log.Fatal().Err(err).Msg("Failed to connect to Redis")
					}

					trip, err := setupPlanner(c.String("matrix-cache"))
					if err != nil {
						log.Fatal().Err(err).Msg("Failed to set up planner")
					}

					selected := c.StringSlice("city")
					days := c.IntSlice("days")
					if len(days) == 0 {
						days = make([]int, len(selected)+1)
					}

					result, err := trip.Plan(c.Context, planner.Request{
						SelectedCities: selected,
						DaysPerCity:    days,
						TimeWeight:     c.Int("time-weight"),
						StartDate:      c.String("start-date"),
					})
					if err != nil {
						log.Fatal().Err(err).Msg("Failed to plan itinerary")
					}

					if c.Bool("debug") {
						pretty.Println(result.Solution)
					}

					if _, err := output.SaveJSON(c.String("output"), result.Itinerary); err != nil {
						return err
					}
					if _, err := output.SavePretty(c.String("output"), result.Itinerary); err != nil {
						return err
					}

					os.Stdout.WriteString(output.Render(result.Itinerary))

					return nil
				},
			},
			{
				Name:  "matrix",
				Usage: "manage the flight cost matrix cache",
				Subcommands: []*cli.Command{
					{
						Name:  "rebuild",
						Usage: "rebuild the full matrix from the pricing oracle",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "reference-date",
								Usage:    "departure date the matrix is priced for (YYYY-MM-DD)",
								Required: true,
							},
							cacheFlag,
						},
						Action: func(c *cli.Context) error {
							if err := redis_client.Connect(); err != nil {
								log.Fatal().Err(err).Msg("Failed to connect to Redis")
							}

							referenceDate, err := time.Parse(travel.DateFormat, c.String("reference-date"))
							if err != nil {
								return err
							}

							registry, err := cities.NewRegistry()
							if err != nil {
								return err
							}

							oracle, err := amadeus.NewClient()
							if err != nil {
								log.Fatal().Err(err).Msg("Failed to set up pricing oracle")
							}

							matrix, err := costmatrix.NewBuilder(oracle).Build(c.Context, registry.All(), referenceDate)
							if err != nil {
								return err
							}

							return costmatrix.SaveCache(c.String("matrix-cache"), matrix)
						},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Send()
	}
}
