package resolver

import (
	"fmt"
	"sort"

	"github.com/fbkclanna/monorel/internal/config"
)

// Set holds one Resolver per kind.
type Set struct {
	byKind map[config.ResolverKind]Resolver
}

// NewSet builds a Set from resolvers. A later resolver of the same kind
// replaces an earlier one.
func NewSet(resolvers ...Resolver) *Set {
	s := &Set{byKind: make(map[config.ResolverKind]Resolver, len(resolvers))}
	for _, r := range resolvers {
		s.byKind[r.Kind()] = r
	}
	return s
}

// For returns the resolver registered for kind.
func (s *Set) For(kind config.ResolverKind) (Resolver, error) {
	r, ok := s.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("no resolver registered for %q", kind)
	}
	return r, nil
}

// Kinds returns the registered kinds in sorted order.
func (s *Set) Kinds() []config.ResolverKind {
	kinds := make([]config.ResolverKind, 0, len(s.byKind))
	for k := range s.byKind {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ResolveAll runs every resolver's discovery and concatenates the results.
func (s *Set) ResolveAll(root string) ([]ResolvedPackage, error) {
	var all []ResolvedPackage
	for _, kind := range s.Kinds() {
		pkgs, err := s.byKind[kind].ResolveAll(root)
		if err != nil {
			return nil, fmt.Errorf("%s resolver: %w", kind, err)
		}
		all = append(all, pkgs...)
	}
	return all, nil
}

// ResolvePackages resolves configured packages in order, stopping at the
// first failure.
func (s *Set) ResolvePackages(root string, pkgs []config.Package) ([]ResolvedPackage, error) {
	out := make([]ResolvedPackage, 0, len(pkgs))
	for _, p := range pkgs {
		rp, err := s.Resolve(root, p)
		if err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, nil
}

// Resolve resolves a single configured package with its kind's resolver.
func (s *Set) Resolve(root string, p config.Package) (ResolvedPackage, error) {
	r, err := s.For(p.Resolver)
	if err != nil {
		return ResolvedPackage{}, fmt.Errorf("package %s: %w", p.Name, err)
	}
	rp, err := r.Resolve(root, p.PackageConfig)
	if err != nil {
		return ResolvedPackage{}, fmt.Errorf("package %s: %w", p.Name, err)
	}
	return rp, nil
}

// Sort lets every resolver whose kind appears in pkgs reorder its own
// entries, in kind order.
func (s *Set) Sort(root string, pkgs []NamedPackage) error {
	present := make(map[config.ResolverKind]bool)
	for _, p := range pkgs {
		present[p.Config.Resolver] = true
	}
	for kind := range present {
		if _, ok := s.byKind[kind]; !ok {
			return fmt.Errorf("no resolver registered for %q", kind)
		}
	}
	for _, kind := range s.Kinds() {
		if !present[kind] {
			continue
		}
		if err := s.byKind[kind].SortPackages(root, pkgs); err != nil {
			return fmt.Errorf("%s resolver: %w", kind, err)
		}
	}
	return nil
}
