package main

import (
	"strconv"
	"strings"

	"github.com/pbanos/sapling"
	"github.com/pkg/errors"
)

const defaultPruneStrategy = "chi-squared"

/*
pruningStrategy parses a pruning strategy and returns the Pruner for it.
Valid strategies are "none" and "chi-squared", optionally followed by a
colon and the confidence of the test, a number between 0 and 1 exclusive.
*/
func pruningStrategy(ps string) (sapling.Pruner, error) {
	parsedPS := strings.SplitN(ps, ":", 2)
	ps = parsedPS[0]
	psParams := parsedPS[1:]
	switch ps {
	case "none":
		if len(psParams) > 0 {
			return nil, errors.New("pruning strategy none takes no parameters")
		}
		return sapling.NoPruner(), nil
	case "chi-squared", "default":
		if len(psParams) == 0 {
			return sapling.DefaultPruner(), nil
		}
		confidence, err := strconv.ParseFloat(psParams[0], 64)
		if err != nil {
			return nil, errors.Wrap(err, "parsing chi-squared confidence parameter")
		}
		if confidence <= 0 || confidence >= 1 {
			return nil, errors.Errorf("chi-squared confidence must be between 0 and 1, got %v", confidence)
		}
		return sapling.ChiSquaredPruner(confidence), nil
	}
	return nil, errors.Errorf("unknown pruning strategy %s", ps)
}
