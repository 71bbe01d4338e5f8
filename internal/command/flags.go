// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewGlobalFlags builds the flag set shared by the diff and keys commands.
func NewGlobalFlags() (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to records",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "passphrase",
			Usage:   "passphrase for sealed inputs",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("NDJDIFF_PASSPHRASE"),
			),
		},
		&cli.StringFlag{
			Name:  "profile",
			Usage: "AWS profile to use for s3:// sources. Overrides the environment",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("NDJDIFF_PROFILE"),
				cli.EnvVar("AWS_PROFILE"),
			),
		},
		&cli.StringFlag{
			Name:  "region",
			Usage: "AWS region to use for s3:// sources. Overrides the environment",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("NDJDIFF_REGION"),
			),
		},
		&cli.StringFlag{
			Name:    "where",
			Aliases: []string{"w"},
			Usage:   "HCL predicate a record must satisfy to be compared",
		},
	}

	return
}

// NewKeyFlag constructs the --key flag, optionally namespaced to a command
// and config file. params[0] is the namespace, params[1] the config file.
func NewKeyFlag(params ...string) (flag *cli.StringFlag) {
	flag = &cli.StringFlag{
		Name:    "key",
		Aliases: []string{"k"},
		Usage:   "gjson path of the record identity",
		Value:   "id",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("NDJDIFF_KEY"),
		),
	}

	if len(params) == 2 && params[1] != "" {
		flag = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], flag)
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}
