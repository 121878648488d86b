package main

import (
	"context"
	"fmt"

	"github.com/seqsense/pcgol/mat"
	"golang.org/x/sync/errgroup"
)

type fetchFunc func(ctx context.Context, path string) ([]byte, error)

type graphData struct {
	labels    []string
	positions []mat.Vec3
	links     []byte
}

// loadGraph fetches and decodes the graph files concurrently.
func loadGraph(ctx context.Context, fetch fetchFunc, d dataSettings) (*graphData, error) {
	var out graphData
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := fetch(ctx, d.Labels)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", d.Labels, err)
		}
		out.labels, err = parseLabels(b)
		return err
	})
	g.Go(func() error {
		b, err := fetch(ctx, d.Positions)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", d.Positions, err)
		}
		out.positions, err = parsePositions(b)
		return err
	})
	g.Go(func() error {
		b, err := fetch(ctx, d.Links)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", d.Links, err)
		}
		out.links = b
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// apply loads nodes then links into the model.
func (d *graphData) apply(m *graphModel) error {
	if err := m.SetNodes(d.labels, d.positions); err != nil {
		return err
	}
	return m.SetLinks(d.links)
}
