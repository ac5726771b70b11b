// Command herdplan computes an optimized mating plan for pools of sires
// and dams held in a configured animal registry, then prints it as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"herdcore/internal/breeding"
	"herdcore/internal/cli"
	"herdcore/internal/config"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "herdplan:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("herdplan", flag.ContinueOnError)
	var (
		configPath    = flags.String("config", "", "path to herdcore.toml (optional)")
		seedPath      = flags.String("seed", "", "JSON file of animal records to load before planning")
		sires         = flags.String("sires", "", "comma-separated sire identifiers")
		dams          = flags.String("dams", "", "comma-separated dam identifiers")
		goal          = flags.String("goal", "", "breeding goal label")
		index         = flags.String("index", "", "selection index as trait=weight pairs, e.g. milk=2.0,fertility=1.5")
		generations   = flags.Int("generations", 0, "pedigree depth (0 = configured default)")
		maxInbreeding = flags.Float64("max-inbreeding", 0, "inbreeding cutoff (0 = configured default)")
		quota         = flags.Int("quota", 0, "max dams per sire (0 = configured default)")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	indexWeights, err := parseIndex(*index)
	if err != nil {
		return err
	}
	if len(indexWeights) == 0 {
		indexWeights = cfg.Breeding.DefaultIndex
	}

	ctx := context.Background()
	service, closeService, err := cli.BuildService(ctx, cfg, cli.NewStdLogger("herdplan "))
	if err != nil {
		return err
	}
	defer func() { _ = closeService() }()

	if *seedPath != "" {
		if _, err := cli.SeedRegistry(ctx, service.Registry(), *seedPath); err != nil {
			return err
		}
	}

	req := breeding.PlanRequest{
		SireIDs:        splitIDs(*sires),
		DamIDs:         splitIDs(*dams),
		Index:          indexWeights,
		BreedingGoal:   *goal,
		MaxInbreeding:  *maxInbreeding,
		MaxDamsPerSire: *quota,
		Generations:    *generations,
		PenaltyWeight:  cfg.Breeding.PenaltyWeight,
	}
	if req.MaxInbreeding <= 0 {
		req.MaxInbreeding = cfg.Breeding.MaxInbreeding
	}
	if req.MaxDamsPerSire <= 0 {
		req.MaxDamsPerSire = cfg.Breeding.MaxDamsPerSire
	}

	plan, err := service.PlanMatings(ctx, req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(plan)
}

// splitIDs parses a comma-separated identifier list, dropping empties.
func splitIDs(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if id := strings.TrimSpace(part); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// parseIndex parses trait=weight pairs into a selection index.
func parseIndex(raw string) (map[string]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	weights := make(map[string]float64)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		trait, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("malformed index term %q (want trait=weight)", part)
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed index weight %q: %w", part, err)
		}
		weights[strings.TrimSpace(trait)] = weight
	}
	return weights, nil
}
