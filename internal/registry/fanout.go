package registry

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vhybzOS/vibe-search/internal/search"
)

// maxFanout bounds concurrent per-project queries during SearchAll.
const maxFanout = 8

// ProjectResponse is one project's slice of a fan-out search.
type ProjectResponse struct {
	ProjectPath string           `json:"project_path"`
	Response    *search.Response `json:"response"`
}

// SearchAll runs the same query against every registered project in
// parallel and returns per-project responses keyed in Projects() order.
// The first query error cancels the remaining projects.
func (r *Registry) SearchAll(ctx context.Context, req search.Request) ([]ProjectResponse, error) {
	paths := r.Projects()
	if len(paths) == 0 {
		return []ProjectResponse{}, nil
	}

	out := make([]ProjectResponse, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFanout)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			eng, err := r.Engine(path)
			if err != nil {
				return err
			}
			resp, err := eng.Search(gctx, req)
			if err != nil {
				return err
			}
			out[i] = ProjectResponse{ProjectPath: path, Response: resp}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
