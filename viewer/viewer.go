// Package viewer pushes a loaded mesh and its computed margin line to an
// interactive motion-tools visualizer for debugging. It is never imported by
// the margin or engine packages; the dependency runs one way.
package viewer

import (
	"fmt"
	"time"

	"github.com/golang/geo/r3"
	vizClient "github.com/viam-labs/motion-tools/client/client"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/pointcloud"
	"go.viam.com/rdk/spatialmath"

	"github.com/akio-tanaka/geimetry-engine/margin"
)

const drawDelay = 200 * time.Millisecond

// Show draws mesh vertices (colored by mean curvature, when curv is
// non-nil) and the resulting margin-line points in an external
// motion-tools viewer process. Failures are logged and non-fatal: the
// viewer is a debugging aid, never a dependency of the headless pipeline.
func Show(logger logging.Logger, mesh *margin.Mesh, curv *margin.CurvatureField, points []r3.Vector) {
	if mesh == nil {
		return
	}

	if err := vizClient.RemoveAllSpatialObjects(); err != nil {
		logger.Warnf("viewer: could not clear scene (is motion-tools running?): %v", err)
		return
	}
	time.Sleep(drawDelay)

	cloud := pointcloud.NewBasicEmpty()
	for i, p := range mesh.Positions {
		var data pointcloud.Data
		if curv != nil && i < len(curv.Mean) {
			data = pointcloud.NewColoredData(meanCurvatureHeatmap(curv.Mean[i], 0.2))
		}
		//nolint:errcheck
		cloud.Set(p, data)
	}
	if err := vizClient.DrawPointCloud("mesh", cloud, nil); err != nil {
		logger.Warnf("viewer: could not draw mesh: %v", err)
		return
	}
	time.Sleep(drawDelay)
	logger.Infof("viewer: drew mesh (%d vertices)", mesh.NumVertices())

	for i, p := range points {
		marker, err := spatialmath.NewSphere(spatialmath.NewPoseFromPoint(p), 0.5, fmt.Sprintf("margin_%d", i))
		if err != nil {
			continue
		}
		if err := vizClient.DrawGeometry(marker, "yellow"); err != nil {
			logger.Warnf("viewer: could not draw margin point %d: %v", i, err)
			continue
		}
	}
	time.Sleep(drawDelay)
	logger.Infof("viewer: drew margin line (%d points)", len(points))
}
