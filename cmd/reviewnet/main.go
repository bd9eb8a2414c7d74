package main

import (
	"fmt"
	"os"

	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "reviewnet"
	app.Usage = "Review network management tool"
	app.Version = common.VersionString(common.Version)
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "config, c", Usage: "Path to the YAML configuration file (in-memory network if omitted)"},
		cli.BoolFlag{Name: "metrics", Usage: "Print dispatcher metrics on exit"},
	}
	app.Commands = []cli.Command{
		{
			Name:   "init",
			Usage:  "Deploy the network described by the configuration",
			Action: initNetwork,
		},
		{
			Name:      "upgrade",
			Usage:     "Activate another logic module",
			ArgsUsage: "<module>",
			Action:    upgrade,
		},
		{
			Name:      "invoke",
			Usage:     "Call network method and commit the changes",
			ArgsUsage: "<method> [args...]",
			Flags:     []cli.Flag{fromFlag},
			Action:    invoke(true),
		},
		{
			Name:      "query",
			Usage:     "Call network method without committing the changes",
			ArgsUsage: "<method> [args...]",
			Flags:     []cli.Flag{fromFlag},
			Action:    invoke(false),
		},
		{
			Name:   "status",
			Usage:  "Print active implementation, administrator and height",
			Action: status,
		},
		{
			Name:  "storage",
			Usage: "List raw storage items",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "id", Usage: "Namespace ID to list (all namespaces if omitted)"},
			},
			Action: listStorage,
		},
		{
			Name:  "dump",
			Usage: "Dump network storage to the directory",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "dir", Value: "testdata", Usage: "Output directory"},
				cli.StringFlag{Name: "label", Usage: "Label of the dumped environment (e.g. 'testnet')"},
			},
			Action: dumpStorage,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
