// Command esquery-dump reads a JSON-encoded sample expression tree and
// prints the Elasticsearch search request it translates to — a small
// harness for exercising the translator pipeline end to end, the way
// the teacher wires a library behind a ghetzel/cli command.
package main

import (
	"encoding/json"
	"io/ioutil"
	"os"

	"github.com/ghetzel/cli"
	"github.com/ghetzel/go-stockutil/log"

	"github.com/ghetzel/esquery"
	"github.com/ghetzel/esquery/mapping"
)

func main() {
	app := cli.NewApp()
	app.Name = `esquery-dump`
	app.Usage = `translate a sample predicate expression tree into an Elasticsearch search request`
	app.Version = `0.1.0`
	app.EnableBashCompletion = false

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   `log-level, L`,
			Usage:  `Level of log output verbosity`,
			Value:  `info`,
			EnvVar: `LOGLEVEL`,
		},
		cli.StringFlag{
			Name:  `config, c`,
			Usage: `Path to a mapping configuration YAML file.`,
		},
		cli.StringFlag{
			Name:  `param, p`,
			Usage: `Name of the predicate's bound parameter.`,
			Value: `r`,
		},
		cli.StringFlag{
			Name:  `declaring, d`,
			Usage: `Name of the predicate parameter's declaring (record) type.`,
			Value: `Record`,
		},
		cli.StringFlag{
			Name:  `doctype, t`,
			Usage: `Document type for the assembled search request.`,
			Value: `record`,
		},
		cli.BoolFlag{
			Name:  `pretty`,
			Usage: `Pretty-print the JSON output.`,
		},
	}

	app.Before = func(c *cli.Context) error {
		log.SetLevelString(c.String(`log-level`))
		return nil
	}

	app.Action = func(c *cli.Context) {
		filename := c.Args().First()

		if filename == `` {
			log.Fatalf("Must specify a path to a JSON expression tree file.")
			return
		}

		data, err := ioutil.ReadFile(filename)

		if err != nil {
			log.Fatalf("Failed to read %q: %v", filename, err)
			return
		}

		var m mapping.Mapping

		if path := c.String(`config`); path != `` {
			config, err := esquery.LoadConfig(path)

			if err != nil {
				log.Fatalf("Failed to load config %q: %v", path, err)
				return
			}

			m = mapping.NewFieldNameCache(mapping.NewMetadataDecorator(config.Mapping()))
		} else {
			m = mapping.NewFieldNameCache(mapping.NewMetadataDecorator(mapping.NewDefaultMapping()))
		}

		lambda, err := decodeLambda(data, c.String(`param`), c.String(`declaring`))

		if err != nil {
			log.Fatalf("Failed to decode expression tree: %v", err)
			return
		}

		request, err := esquery.Translate(lambda, c.String(`doctype`), m)

		if err != nil {
			log.Fatalf("Translation failed: %v", err)
			return
		}

		enc := json.NewEncoder(os.Stdout)

		if c.Bool(`pretty`) {
			enc.SetIndent(``, `  `)
		}

		if err := enc.Encode(request); err != nil {
			log.Fatalf("Failed to encode output: %v", err)
		}
	}

	app.Run(os.Args)
}
