package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/jeffmcadams/namecheap-go/internal/config"
	"github.com/jeffmcadams/namecheap-go/internal/utils"
	"github.com/jeffmcadams/namecheap-go/namecheap"
)

func main() {
	app := &cli.App{
		Name:  "check-domain",
		Usage: "check domain availability and registration pricing",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "price",
				Usage: "include the 1 year registration price for each TLD",
			},
			&cli.StringFlag{
				Name:  "env",
				Value: ".env",
				Usage: "path to env file with Namecheap credentials",
			},
		},
		Action: checkDomains,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func checkDomains(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("usage: check-domain [--price] <domain> [domain...]", 1)
	}

	client, err := newClient(c.String("env"))
	if err != nil {
		return err
	}

	ctx := context.Background()

	// Accept both space and comma separated domain lists.
	var domains []string
	for _, arg := range c.Args().Slice() {
		domains = append(domains, utils.StringToSlice(arg)...)
	}

	results, err := client.CheckDomains(ctx, domains)
	if err != nil {
		return fmt.Errorf("availability check failed: %w", err)
	}

	var pricing *namecheap.PricingResult
	if c.Bool("price") {
		pricing, err = client.GetPricing(ctx, namecheap.PricingRequest{
			ProductType:     "DOMAIN",
			ProductCategory: "REGISTER",
		})
		if err != nil {
			return fmt.Errorf("pricing lookup failed: %w", err)
		}
	}

	table := tablewriter.NewWriter(os.Stdout)
	header := []string{"Domain", "Available", "Premium"}
	if pricing != nil {
		header = append(header, "Price (1yr)")
	}
	table.SetHeader(header)

	for _, r := range results {
		row := []string{r.Domain, yesNo(r.Available), yesNo(r.IsPremiumName)}
		if pricing != nil {
			row = append(row, priceFor(pricing, r.Domain))
		}
		table.Append(row)
	}
	table.Render()

	return nil
}

func newClient(envFile string) (*namecheap.Client, error) {
	// Missing env file is fine, credentials may come from the environment.
	_ = godotenv.Load(envFile)

	cfg := config.NamecheapConfig{}
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}

	return namecheap.NewClient(namecheap.Config{
		ApiUser:  cfg.ApiUser,
		ApiKey:   cfg.ApiKey,
		UserName: cfg.Username,
		ClientIp: cfg.ClientIp,
		Sandbox:  cfg.UseSandbox,
	})
}

func priceFor(pricing *namecheap.PricingResult, domain string) string {
	tld := domain
	for i := 0; i < len(domain); i++ {
		if domain[i] == '.' {
			tld = domain[i+1:]
			break
		}
	}

	entries, ok := pricing.Price("DOMAIN", "REGISTER", tld)
	if !ok {
		return "-"
	}
	for _, e := range entries {
		if e.Duration == 1 && e.DurationType == "YEAR" {
			return e.YourPrice.StringFixed(2) + " " + e.Currency
		}
	}
	return "-"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
