// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/magiconair/properties"
	"github.com/spf13/cobra"

	"github.com/nil-go/konfmerge"
	"github.com/nil-go/konfmerge/loader"
	"github.com/nil-go/konfmerge/tree/plain"
)

var errInvalidFlag = errors.New("invalid flag")

type flags struct {
	distinct       []string
	output         string
	representation string
	tieBreak       string
	envPrefix      string
	ignoreMissing  bool
	verbose        bool
}

func newRootCommand() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "konfmerge [flags] FILE[@PRECEDENCE]...",
		Short: "Merge configuration files by precedence",
		Long: `konfmerge merges JSON, YAML, TOML and Java properties files into one document.

Files with higher precedence win conflicts. Without explicit precedence,
a file takes its argument position, so later files win.
Arrays are concatenated, or merged by element identity for paths given with --distinct.
If every file is a .properties file, keys are merged flat.

Example:
  konfmerge --distinct '$.agents=class' base.yaml prod.yaml
  konfmerge --output yaml defaults.toml overrides.json@10`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	cmd.Flags().StringArrayVar(&f.distinct, "distinct", nil,
		"distinct-key rule PATH=KEY, e.g. '$.agents=class' (repeatable)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "json", "output format: json, yaml, toml or properties")
	cmd.Flags().StringVar(&f.representation, "representation", "plain",
		"tree representation: plain, yamlnode, ordered or mapslice")
	cmd.Flags().StringVar(&f.tieBreak, "tie-break", "second",
		"winner of documents with equal precedence: second, first or reject")
	cmd.Flags().StringVar(&f.envPrefix, "env", "",
		"merge environment variables with the prefix above all files, e.g. APP_")
	cmd.Flags().BoolVar(&f.ignoreMissing, "ignore-missing", false, "treat missing files as empty")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log merge details to stderr")

	return cmd
}

type input struct {
	path       string
	precedence int
}

//nolint:cyclop,funlen
func run(cmd *cobra.Command, args []string, f flags) error {
	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	output, err := loader.ParseFormat(f.output)
	if err != nil {
		return err //nolint:wrapcheck
	}
	if output == loader.FormatAuto {
		return fmt.Errorf("%w: output format is required", errInvalidFlag)
	}
	representation, err := loader.ParseRepresentation(f.representation)
	if err != nil {
		return err //nolint:wrapcheck
	}
	tieBreak, err := parseTieBreak(f.tieBreak)
	if err != nil {
		return err
	}
	mergeOptions, err := parseDistinct(f.distinct)
	if err != nil {
		return err
	}
	merger := konfmerge.New(
		konfmerge.WithLogger(logger),
		konfmerge.WithMergeOptions(mergeOptions),
		konfmerge.WithTieBreak(tieBreak),
	)

	inputs := make([]input, 0, len(args))
	top := 0
	for i, arg := range args {
		in := parseInput(arg, i)
		inputs = append(inputs, in)
		top = max(top, in.precedence+1)
	}
	options := func(in input) []loader.Option {
		opts := []loader.Option{
			loader.WithLogger(logger),
			loader.WithRepresentation(representation),
			loader.WithPrecedence(in.precedence),
		}
		if f.ignoreMissing {
			opts = append(opts, loader.IgnoreFileNotExist())
		}

		return opts
	}
	env := loader.NewEnv(
		loader.WithLogger(logger),
		loader.WithRepresentation(representation),
		loader.WithPrefix(f.envPrefix),
		loader.WithPrecedence(top),
	)

	if allProperties(inputs) {
		documents := make([]konfmerge.FlatDocument, 0, len(inputs)+1)
		var errs []error
		for _, in := range inputs {
			document, err := loader.New(in.path, options(in)...).LoadFlat()
			if err != nil {
				errs = append(errs, err)

				continue
			}
			documents = append(documents, document)
		}
		if err := errors.Join(errs...); err != nil {
			return err
		}
		if f.envPrefix != "" {
			document, err := env.Load()
			if err != nil {
				return err //nolint:wrapcheck
			}
			documents = append(documents, document)
		}

		merged, err := merger.MergeAllFlat(documents...)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if output == loader.FormatProperties {
			if _, err := merged.Properties().Write(cmd.OutOrStdout(), properties.UTF8); err != nil {
				return fmt.Errorf("write properties: %w", err)
			}

			return nil
		}

		return encode(cmd.OutOrStdout(), output, konfmerge.NewDocument(plain.New(), merged.Tree()))
	}

	documents := make([]konfmerge.Document, 0, len(inputs)+1)
	var errs []error
	for _, in := range inputs {
		document, err := loader.New(in.path, options(in)...).Load()
		if err != nil {
			errs = append(errs, err)

			continue
		}
		documents = append(documents, document)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if f.envPrefix != "" {
		document, err := env.LoadTree()
		if err != nil {
			return err //nolint:wrapcheck
		}
		documents = append(documents, document)
	}

	merged, err := merger.MergeAll(documents...)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return encode(cmd.OutOrStdout(), output, merged)
}

// parseInput splits FILE@PRECEDENCE. A suffix which is not an integer is part of the path.
func parseInput(arg string, position int) input {
	if i := strings.LastIndexByte(arg, '@'); i > 0 {
		if precedence, err := strconv.Atoi(arg[i+1:]); err == nil {
			return input{path: arg[:i], precedence: precedence}
		}
	}

	return input{path: arg, precedence: position}
}

func allProperties(inputs []input) bool {
	for _, in := range inputs {
		if !strings.HasSuffix(strings.ToLower(in.path), ".properties") {
			return false
		}
	}

	return true
}

func parseTieBreak(name string) (konfmerge.TieBreak, error) {
	switch strings.ToLower(name) {
	case "", "second":
		return konfmerge.PreferSecond, nil
	case "first":
		return konfmerge.PreferFirst, nil
	case "reject":
		return konfmerge.RejectEqual, nil
	default:
		return konfmerge.PreferSecond, fmt.Errorf("%w: unknown tie break %q", errInvalidFlag, name)
	}
}

func parseDistinct(rules []string) (konfmerge.MergeOptions, error) {
	distinctKeys := make(map[string]string, len(rules))
	for _, rule := range rules {
		path, key, ok := strings.Cut(rule, "=")
		if !ok {
			return konfmerge.MergeOptions{}, fmt.Errorf("%w: distinct-key rule %q, want PATH=KEY", errInvalidFlag, rule)
		}
		distinctKeys[strings.TrimSpace(path)] = strings.TrimSpace(key)
	}

	return konfmerge.NewMergeOptions(distinctKeys) //nolint:wrapcheck
}
