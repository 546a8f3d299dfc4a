// Command ecalc is a thin CLI wiring model.Loader and timeseries.Driver: it
// implements only the contract-only surface of (load and
// validate a model, print its decoded graph, evaluate one fluid model's
// train against a period list already resolved elsewhere). CSV/JSON
// writers, frequency resampling, installation/generator-set aggregation and
// the expression-to-period evaluation itself are explicitly out of scope
// and stay external; this CLI never synthesizes
// period data of its own.
package main

import (
	"context"
	"os"

	"github.com/cpmech/gosl/io"
	"github.com/urfave/cli/v2"

	"github.com/equinor/ecalc-sub000/fluid"
	"github.com/equinor/ecalc-sub000/model"
	"github.com/equinor/ecalc-sub000/timeseries"
	"github.com/equinor/ecalc-sub000/train"
)

func main() {
	app := &cli.App{
		Name:  "ecalc",
		Usage: "compressor-train energy/emissions core",
		Commands: []*cli.Command{
			&runCmd,
			&showCmd,
		},
	}
	if err := app.Run(os.Args); err != nil {
		io.Pfred("%v\n", err)
		os.Exit(1)
	}
}

var runCmd = cli.Command{
	Name:      "run",
	Usage:     "load and validate a model and print a summary of its graph; periods are not evaluated",
	ArgsUsage: "MODEL_FILE",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "output-frequency", Usage: "not implemented: resampling is an external concern"},
		&cli.StringFlag{Name: "output-folder", Usage: "not implemented: file output is an external concern"},
		&cli.BoolFlag{Name: "detailed-output", Usage: "not implemented: run does not evaluate periods"},
		&cli.StringFlag{Name: "date-format-option", Usage: "not implemented: date formatting is an external concern"},
	},
	Action: doRun,
}

var showCmd = cli.Command{
	Name: "show",
	Subcommands: []*cli.Command{
		{
			Name:      "yaml",
			Usage:     "print the decoded model graph",
			ArgsUsage: "MODEL_FILE",
			Action:    doShowYAML,
		},
		{
			Name:  "results",
			Usage: "report that no run results are stored",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Usage: "train name to filter by"},
			},
			Action: doShowResults,
		},
	},
}

func doRun(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return cli.Exit("ecalc run: MODEL_FILE is required", 1)
	}
	g, err := model.Loader{}.Load(c.Args().First())
	if err != nil {
		return err
	}
	io.Pf("model loaded: %d fluid model(s), %d chart(s), %d train(s), %d turbine(s)\n",
		len(g.Fluids), len(g.Charts), len(g.Trains), len(g.Turbines))
	io.Pf("period evaluation requires a resolved period list from the expression evaluator " +
		"(external collaborator, ); none is wired into this CLI\n")
	return nil
}

// Evaluate is the wiring point a resolved-period caller uses: one fluid
// model, one train, one period list in, one timeseries.Result out. Kept
// here (rather than only in package timeseries) so the CLI's contract
// surface names the exact call the `run` command would make once an
// external period source is attached.
func Evaluate(fm *fluid.Model, tr train.Train, periods []timeseries.Period, detailed bool) (timeseries.Result, error) {
	d := timeseries.Driver{Train: tr, FluidModel: fm}
	res, err := d.Run(context.Background(), periods, nil)
	if err != nil {
		return timeseries.Result{}, err
	}
	printResult(res, detailed)
	return res, nil
}

func doShowYAML(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return cli.Exit("ecalc show yaml: MODEL_FILE is required", 1)
	}
	g, err := model.Loader{}.Load(c.Args().First())
	if err != nil {
		return err
	}
	for name := range g.Fluids {
		io.Pfcyan("fluid: %s\n", name)
	}
	for name := range g.Charts {
		io.Pfcyan("chart: %s\n", name)
	}
	for name := range g.Trains {
		io.Pfcyan("train: %s\n", name)
	}
	for name := range g.Turbines {
		io.Pfcyan("turbine: %s\n", name)
	}
	return nil
}

func doShowResults(c *cli.Context) error {
	io.Pf("ecalc show results: no persisted run store wired; `ecalc run` prints its own output directly\n")
	return nil
}

func printResult(res timeseries.Result, detailed bool) {
	for i, p := range res.Periods {
		io.Pf("period %d: status=%s power=%.3fMW\n", i, p.Status, p.PowerMW)
		if detailed && p.TrainResult != nil {
			for j, s := range p.TrainResult.Stages {
				io.Pf("  stage %d: %s outlet P=%.2f bar T=%.1f K\n", j, s.Classification, s.Outlet.P, s.Outlet.T)
			}
		}
	}
	for status, count := range res.Summary.Counts {
		io.Pfyel("%s: %d period(s)\n", status, count)
	}
}
