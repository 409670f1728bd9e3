package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/jeffmcadams/namecheap-go/internal/config"
	"github.com/jeffmcadams/namecheap-go/namecheap"
)

func main() {
	app := &cli.App{
		Name:  "dns-tool",
		Usage: "manage Namecheap DNS host records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "domain",
				Usage:    "domain to operate on",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "env",
				Value: ".env",
				Usage: "path to env file with Namecheap credentials",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "print the current host records",
				Action: listRecords,
			},
			{
				Name:      "add",
				Usage:     "add or replace a host record",
				ArgsUsage: "<name> <type> <address> [ttl]",
				Action:    addRecord,
			},
			{
				Name:      "delete",
				Usage:     "delete a host record",
				ArgsUsage: "<name> <type> [address]",
				Action:    deleteRecord,
			},
			{
				Name:      "export",
				Usage:     "write the zone as JSON to a file",
				ArgsUsage: "<file>",
				Action:    exportRecords,
			},
			{
				Name:      "import",
				Usage:     "replace the zone with records from a JSON file",
				ArgsUsage: "<file>",
				Action:    importRecords,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newClient(envFile string) (*namecheap.Client, error) {
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

func listRecords(c *cli.Context) error {
	client, err := newClient(c.String("env"))
	if err != nil {
		return err
	}

	records, err := client.GetHosts(context.Background(), c.String("domain"))
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "Type", "Address", "TTL", "MX Pref"})
	for _, h := range records.Hosts {
		mxPref := ""
		if h.RecordType == "MX" {
			mxPref = strconv.Itoa(h.MXPref)
		}
		table.Append([]string{h.Name, h.RecordType, h.Address, strconv.Itoa(h.TTL), mxPref})
	}
	table.Render()

	return nil
}

func addRecord(c *cli.Context) error {
	if c.NArg() < 3 {
		return cli.Exit("usage: dns-tool --domain <domain> add <name> <type> <address> [ttl]", 1)
	}

	client, err := newClient(c.String("env"))
	if err != nil {
		return err
	}

	record := namecheap.HostRecord{
		Name:       c.Args().Get(0),
		RecordType: c.Args().Get(1),
		Address:    c.Args().Get(2),
	}
	if c.NArg() > 3 {
		ttl, err := strconv.Atoi(c.Args().Get(3))
		if err != nil {
			return fmt.Errorf("invalid ttl %q: %w", c.Args().Get(3), err)
		}
		record.TTL = ttl
	}

	if err := client.UpsertRecord(context.Background(), c.String("domain"), record); err != nil {
		return err
	}

	fmt.Printf("record %s %s saved\n", record.Name, record.RecordType)
	return nil
}

func deleteRecord(c *cli.Context) error {
	if c.NArg() < 2 {
		return cli.Exit("usage: dns-tool --domain <domain> delete <name> <type> [address]", 1)
	}

	client, err := newClient(c.String("env"))
	if err != nil {
		return err
	}

	err = client.DeleteRecord(context.Background(), c.String("domain"),
		c.Args().Get(0), c.Args().Get(1), c.Args().Get(2))
	if err != nil {
		return err
	}

	fmt.Printf("record %s %s deleted\n", c.Args().Get(0), c.Args().Get(1))
	return nil
}

func exportRecords(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: dns-tool --domain <domain> export <file>", 1)
	}

	client, err := newClient(c.String("env"))
	if err != nil {
		return err
	}

	records, err := client.GetHosts(context.Background(), c.String("domain"))
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(c.Args().First(), data, 0o644); err != nil {
		return err
	}

	fmt.Printf("exported %d records to %s\n", len(records.Hosts), c.Args().First())
	return nil
}

func importRecords(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("usage: dns-tool --domain <domain> import <file>", 1)
	}

	data, err := os.ReadFile(c.Args().First())
	if err != nil {
		return err
	}

	var records namecheap.HostRecords
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("invalid zone file: %w", err)
	}
	if len(records.Hosts) == 0 {
		return cli.Exit("zone file contains no records, refusing to wipe the zone", 1)
	}

	client, err := newClient(c.String("env"))
	if err != nil {
		return err
	}

	if err := client.SetHosts(context.Background(), c.String("domain"), records.Hosts); err != nil {
		return err
	}

	fmt.Printf("imported %d records to %s\n", len(records.Hosts), c.String("domain"))
	return nil
}
