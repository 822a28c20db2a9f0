package cmd

import (
	"github.com/etnz/fuzzydate/docs"
	"github.com/etnz/fuzzydate/finance"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// tables predicts table files, the format is checked by Load.
var tables = predict.Files("*")

// Completion returns the shell completion of the fz command line.
func Completion() *complete.Command {
	var kinds predict.Set
	for _, k := range finance.Kinds {
		kinds = append(kinds, k.String())
	}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"log-level": predict.Set{"debug", "info", "warn", "error"},
			"style":     predict.Set{"auto", "dark", "light", "notty", "ascii", "plain"},
		},
		Sub: map[string]*complete.Command{
			"merge": {
				Flags: map[string]complete.Predictor{
					"main":         tables,
					"aux":          tables,
					"date-main":    predict.Something,
					"date-aux":     predict.Something,
					"by":           predict.Something,
					"features":     predict.Something,
					"tolerance":    predict.Set{"0", "1d", "7d", "2w", "30d"},
					"debug":        predict.Nothing,
					"keep-order":   predict.Nothing,
					"omit-missing": predict.Nothing,
					"o":            tables,
					"main-sheet":   predict.Something,
					"aux-sheet":    predict.Something,
					"job":          predict.Files("*.yaml"),
					"path":         predict.Something,
				},
			},
			"pv": {
				Flags: map[string]complete.Predictor{
					"kind":     kinds,
					"value":    predict.Something,
					"rate":     predict.Something,
					"growth":   predict.Something,
					"years":    predict.Something,
					"currency": predict.Set{"EUR", "USD", "GBP", "JPY", "CHF"},
				},
			},
			"topic": {
				Flags: map[string]complete.Predictor{"l": predict.Nothing},
				Args:  predict.Set(append(topics, "*")),
			},
		},
	}
}
