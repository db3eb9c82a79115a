package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lintang-b-s/routeplanner/pkg"
	da "github.com/lintang-b-s/routeplanner/pkg/datastructure"
	"github.com/lintang-b-s/routeplanner/pkg/engine"
	"github.com/lintang-b-s/routeplanner/pkg/export"
	"github.com/lintang-b-s/routeplanner/pkg/logger"
	"github.com/lintang-b-s/routeplanner/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	from       = flag.String("from", "", "origin city")
	to         = flag.String("to", "", "destination city")
	mode       = flag.String("mode", "rail", "transport mode: ship, rail, flight, car, bus, tram")
	strategy   = flag.String("strategy", "", "search strategy (linear or heap), overrides ROUTING_SEARCH_STRATEGY")
	exportFile = flag.String("export", "", "write the route as a tab separated table to this file")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	if *strategy != "" {
		viper.Set("ROUTING_SEARCH_STRATEGY", *strategy)
	}

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	transportMode, err := pkg.ParseTransportMode(*mode)
	if err != nil || *from == "" || *to == "" {
		fmt.Fprintln(os.Stderr, "usage: routeplanner -from <city> -to <city> [-mode rail] [-export route.tsv]")
		os.Exit(2)
	}

	routePlanner, err := engine.NewEngine(viper.GetString("CITIES_FILE"), viper.GetString("LINKS_FILE"),
		engine.Config{
			SearchStrategy:  viper.GetString("ROUTING_SEARCH_STRATEGY"),
			CandidateFilter: viper.GetString("ROUTING_CANDIDATE_FILTER"),
			CorridorMargin:  viper.GetFloat64("CORRIDOR_MARGIN_KM"),
			CorridorWidth:   viper.GetFloat64("CORRIDOR_WIDTH_KM"),
		}, log)
	if err != nil {
		log.Fatal("failed to start route planner engine", zap.Error(err))
	}

	links, found := routePlanner.GetRoutingEngine().FindShortestRoute(*from, *to, transportMode)
	if !found {
		fmt.Printf("no %s route from %s to %s\n", transportMode, *from, *to)
		os.Exit(1)
	}

	for _, l := range links {
		fmt.Printf("%s -> %s\t%.2f km\t%s\n", l.GetFrom().GetName(), l.GetTo().GetName(), l.GetDistance(),
			l.GetTransportMode())
	}
	fmt.Printf("total\t%.2f km\n", da.TotalDistance(links))

	if *exportFile != "" {
		origin, _ := routePlanner.FindCity(*from)
		destination, _ := routePlanner.FindCity(*to)
		if err := export.WriteRouteFile(*exportFile, origin, destination, links); err != nil {
			log.Fatal("export failed", zap.Error(err))
		}
		log.Info("route exported", zap.String("file", *exportFile))
	}
}
