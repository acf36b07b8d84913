package golang

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dominikbraun/graph"

	"github.com/fbkclanna/monorel/internal/config"
	"github.com/fbkclanna/monorel/internal/manifest"
	"github.com/fbkclanna/monorel/internal/resolver"
)

// SortPackages reorders the Go entries of pkgs in place so that every
// package comes after the packages whose module it requires. Entries of
// other kinds stay where they are; Go entries are redistributed over the
// slots Go entries already occupied. Unrelated packages keep their
// relative order. A dependency loop is reported as *resolver.CycleError.
func (r *Resolver) SortPackages(root string, pkgs []resolver.NamedPackage) error {
	var slots []int
	order := make(map[string]int)
	manifests := make(map[string]*manifest.Manifest)

	for i, p := range pkgs {
		if p.Config.Resolver != config.ResolverGo {
			continue
		}
		if _, dup := order[p.Name]; dup {
			return fmt.Errorf("duplicate package name %q", p.Name)
		}
		m, err := loadManifest(filepath.Join(root, p.Config.Path, manifest.ModFile))
		if err != nil {
			return err
		}
		slots = append(slots, i)
		order[p.Name] = len(slots) - 1
		manifests[p.Name] = m
	}
	if len(slots) < 2 {
		return nil
	}

	moduleToName := make(map[string]string, len(manifests))
	for _, i := range slots {
		moduleToName[manifests[pkgs[i].Name].Module] = pkgs[i].Name
	}

	// Edges point from a dependency to its dependent.
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	for _, i := range slots {
		if err := g.AddVertex(pkgs[i].Name); err != nil {
			return err
		}
	}
	for _, i := range slots {
		name := pkgs[i].Name
		for _, req := range manifests[name].Require {
			dep, ok := moduleToName[req.Path]
			if !ok || dep == name {
				continue
			}
			err := g.AddEdge(dep, name)
			switch {
			case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
			case errors.Is(err, graph.ErrEdgeCreatesCycle):
				return &resolver.CycleError{Path: cyclePath(g, dep, name)}
			default:
				return err
			}
		}
	}

	sorted, err := graph.StableTopologicalSort(g, func(a, b string) bool {
		return order[a] < order[b]
	})
	if err != nil {
		return err
	}

	original := make([]resolver.NamedPackage, len(slots))
	for j, i := range slots {
		original[j] = pkgs[i]
	}
	for j, name := range sorted {
		pkgs[slots[j]] = original[order[name]]
	}
	r.log.Debug().Strs("order", sorted).Msg("sorted packages")
	return nil
}

// cyclePath returns the loop closed by the rejected edge dep -> name.
func cyclePath(g graph.Graph[string, string], dep, name string) []string {
	p, err := graph.ShortestPath(g, name, dep)
	if err != nil || len(p) == 0 {
		return []string{dep, name, dep}
	}
	return append([]string{dep}, p...)
}
