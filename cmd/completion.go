package cmd

import (
	"flag"

	"github.com/etnz/relperf"
	"github.com/etnz/relperf/config"
	"github.com/etnz/relperf/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete handles shell completion requests and returns when the program is not run for completion.
//
// Install it with COMP_INSTALL=1 relperf.
func Complete(name string) {
	completion().Complete(name)
}

func completion() *complete.Command {
	u := relperf.DefaultUniverse()
	refs, cmps := tickerSet(u.References), tickerSet(u.Comparisons)

	global := map[string]complete.Predictor{}
	flag.VisitAll(func(f *flag.Flag) { global[f.Name] = predict.Something })
	global["config"] = predict.Files("*.yaml")
	global["provider"] = predict.Set(config.Providers)
	global["no-cache"] = predict.Nothing
	global["v"] = predict.Nothing

	return &complete.Command{
		Flags: global,
		Sub: map[string]*complete.Command{
			"compare": {Flags: map[string]complete.Predictor{
				"ref":      refs,
				"cmp":      cmps,
				"since":    predict.Something,
				"tail":     predict.Something,
				"raw":      predict.Nothing,
				"relative": predict.Nothing,
			}},
			"candidates": {},
			"serve":      {Flags: map[string]complete.Predictor{"addr": predict.Something}},
			"topic":      {Args: predict.Set(append(docs.AllTopics(), "*"))},
			"help":       {Args: predict.Set{"compare", "candidates", "serve", "topic"}},
		},
	}
}

func tickerSet(tickers []relperf.Ticker) predict.Set {
	set := make(predict.Set, 0, len(tickers))
	for _, t := range tickers {
		set = append(set, string(t))
	}
	return set
}
