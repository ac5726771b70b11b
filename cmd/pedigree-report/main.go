// Command pedigree-report prints an animal's ancestry tree and inbreeding
// coefficient, or the projected coefficient of a hypothetical mating, as
// JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"herdcore/internal/cli"
	"herdcore/internal/config"
	"herdcore/pkg/domain"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "pedigree-report:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("pedigree-report", flag.ContinueOnError)
	var (
		configPath  = flags.String("config", "", "path to herdcore.toml (optional)")
		seedPath    = flags.String("seed", "", "JSON file of animal records to load first")
		id          = flags.String("id", "", "animal identifier to report on")
		sire        = flags.String("sire", "", "sire identifier for a projected mating")
		dam         = flags.String("dam", "", "dam identifier for a projected mating")
		generations = flags.Int("generations", 0, "pedigree depth (0 = configured default)")
	)
	if err := flags.Parse(args); err != nil {
		return err
	}
	projected := *sire != "" || *dam != ""
	if projected == (*id != "") {
		return fmt.Errorf("pass either -id, or both -sire and -dam")
	}
	if projected && (*sire == "" || *dam == "") {
		return fmt.Errorf("projected matings need both -sire and -dam")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	ctx := context.Background()
	service, closeService, err := cli.BuildService(ctx, cfg, cli.NewStdLogger("pedigree-report "))
	if err != nil {
		return err
	}
	defer func() { _ = closeService() }()

	if *seedPath != "" {
		if _, err := cli.SeedRegistry(ctx, service.Registry(), *seedPath); err != nil {
			return err
		}
	}

	var result domain.InbreedingResult
	if projected {
		result, err = service.ProjectedMating(ctx, *sire, *dam, *generations)
	} else {
		result, err = service.InbreedingCheck(ctx, *id, *generations)
	}
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
