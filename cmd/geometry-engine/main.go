package main

import (
	"context"
	"flag"
	"os"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"

	"github.com/akio-tanaka/geimetry-engine/engine"
	"github.com/akio-tanaka/geimetry-engine/margin"
	"github.com/akio-tanaka/geimetry-engine/viewer"
)

func main() {
	inputPath := flag.String("input", "", "path to the request JSON file (also accepted as the first positional argument)")
	view := flag.Bool("view", false, "open an interactive viewer showing the mesh and resulting margin line")
	flag.Parse()

	path := *inputPath
	if path == "" && flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	logger := logging.NewLogger("geometry-engine")
	if path == "" {
		logger.Error("an input JSON path is required (-input or positional argument)")
		os.Exit(int(engine.InvalidInput))
	}

	eng := engine.New(margin.DefaultConfig(), logger)

	var result engine.Result
	if err := eng.Initialize(path); err != nil {
		logger.Errorf("initialize failed: %v", err)
		result = engine.FailureResult(err)
	} else {
		result = eng.Run(context.Background())
		if *view {
			var points []r3.Vector
			if result.Result.Marginline != nil {
				points = result.Result.Marginline.Points
			}
			viewer.Show(logger, eng.Mesh(), eng.Curvature(), points)
		}
	}

	if err := engine.SaveOutput(eng.OutputPath(path), result); err != nil {
		logger.Errorf("writing output.json: %v", err)
	}

	os.Exit(int(result.ReturnCode))
}
