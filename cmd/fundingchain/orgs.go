package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/afara-labs/fundingchain/pkg/config"
)

// runOrgsCmd lists the vetted initiatives the discovery stage offers.
func runOrgsCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("orgs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	region := fs.String("region", "africa", "region filter (africa lists all)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	dir, err := openDirectory(cfg)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	initiatives := dir.ByRegion(*region)
	if len(initiatives) == 0 {
		fmt.Fprintf(stdout, "no vetted initiatives for region %q (known: %v)\n", *region, dir.Regions())
		return 1
	}

	for _, ini := range initiatives {
		fmt.Fprintf(stdout, "%s\n  HQ: %s\n  Rating: %.1f/5.0 | Efficiency: %.0f%% to programs\n  Verified by: %s\n  Impact: %s\n\n",
			ini.Name, ini.HQ, ini.Rating, ini.Efficiency*100, ini.VerificationSource, ini.ImpactMetrics)
	}
	return 0
}
