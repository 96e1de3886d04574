package device

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ListForUser expands an owner's flat id list into the full device list.
//
// Per-id resolution runs concurrently with a bounded worker count; output
// order follows the input id list. Post-processing per kind:
//   - sprinkler host, reachable: synthesized zone devices are appended
//     first, then the host entry itself
//   - sprinkler host, unreachable: the host is kept (not filtered) with
//     live status degraded to false, and no zones appear
//   - tv: refreshed a second time at aggregation so the list reflects the
//     latest state even when the per-id resolve raced a power toggle
//
// Two consecutive calls against a stable store and stable control planes
// return structurally equal lists.
func (s *Service) ListForUser(ctx context.Context, ownerID string) ([]Device, error) {
	listTotal.Inc()

	ids, err := s.repo.DeviceList(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	resolved := make([]Device, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			d, err := s.Resolve(gctx, id)
			if err != nil {
				return fmt.Errorf("resolving %s: %w", id, err)
			}
			resolved[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Device, 0, len(resolved))
	for _, d := range resolved {
		switch d.Kind {
		case KindTV:
			if res, err := s.refresh(ctx, d); err == nil {
				if res.changed {
					s.persistRefreshed(ctx, res.device)
				}
				d = res.device
			}
			out = append(out, d)

		case KindSprinklerHost:
			if !s.prober.Probe(ctx, d.NetworkAddress) {
				d.LiveStatus = false
				out = append(out, d)
				continue
			}
			zones, err := s.ExpandHost(ctx, d)
			if err != nil {
				return nil, err
			}
			out = append(out, zones...)
			out = append(out, d)

		default:
			out = append(out, d)
		}
	}
	return out, nil
}
