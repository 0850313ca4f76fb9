// Package registry holds the static per-version tables for the gnomAD API:
// dataset identifiers, default reference genomes, and the set of query names
// each release line supports.
//
// The tables are fixed at compile time and never mutated. Resolution order
// for a version is: explicit version tag, then dataset identifier, then
// reference genome. Genome-only resolution cannot distinguish v3 from v4
// (both are GRCh38); the first declared match wins, so GRCh38 resolves to
// v3 unless a dataset disambiguates. Callers that care should always pass
// a dataset.
package registry

import (
	"fmt"
)

// Version identifies a gnomAD release line.
type Version string

const (
	V2 Version = "v2"
	V3 Version = "v3"
	V4 Version = "v4"
)

// versions lists all release lines in declaration order. The order matters:
// genome-only resolution takes the first match.
var versions = []Version{V2, V3, V4}

// defaultDataset maps a version to its primary dataset identifier.
var defaultDataset = map[Version]string{
	V2: "gnomad_r2_1",
	V3: "gnomad_r3",
	V4: "gnomad_r4",
}

// datasetVersion maps every known dataset identifier to exactly one version.
// The mapping is a function: no identifier appears twice.
var datasetVersion = map[string]Version{
	"gnomad_r2_1":    V2,
	"gnomad_sv_r2_1": V2,
	"gnomad_r3":      V3,
	"gnomad_r4":      V4,
	"gnomad_sv_r4":   V4,
	"gnomad_cnv_r4":  V4,
}

// referenceGenome maps a version to its reference genome build.
var referenceGenome = map[Version]string{
	V2: "GRCh37",
	V3: "GRCh38",
	V4: "GRCh38",
}

// supportedQueries lists the query names each version supports, in
// declaration order.
var supportedQueries = map[Version][]string{
	V2: {
		"variant",
		"clinvar_variant",
		"structural_variant",
		"gene_search",
		"variant_search",
		"liftover",
		"meta",
	},
	V3: {
		"variant",
		"clinvar_variant",
		"gene_search",
		"variant_search",
		"meta",
	},
	V4: {
		"gene",
		"region",
		"variant",
		"clinvar_variant",
		"mitochondrial_variant",
		"structural_variant",
		"copy_number_variant",
		"gene_search",
		"variant_search",
		"short_tandem_repeat",
		"meta",
	},
}

// ResolutionError indicates that no version could be determined from the
// supplied hints.
type ResolutionError struct {
	Dataset         string
	ReferenceGenome string
	Explicit        string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve gnomAD version (dataset=%q, reference_genome=%q, version=%q)",
		e.Dataset, e.ReferenceGenome, e.Explicit)
}

// Valid reports whether v is a known release line.
func (v Version) Valid() bool {
	_, ok := defaultDataset[v]
	return ok
}

// DefaultDataset returns the primary dataset identifier for the version.
// Panics on an unknown version: the closed set is enforced at resolution
// time, so reaching here with anything else is a programmer error.
func (v Version) DefaultDataset() string {
	ds, ok := defaultDataset[v]
	if !ok {
		panic("registry: unknown version " + string(v))
	}
	return ds
}

// ReferenceGenome returns the reference genome build for the version.
func (v Version) ReferenceGenome() string {
	rg, ok := referenceGenome[v]
	if !ok {
		panic("registry: unknown version " + string(v))
	}
	return rg
}

// SupportedQueries returns the query names the version supports, in
// declaration order. The returned slice is a copy.
func (v Version) SupportedQueries() []string {
	qs, ok := supportedQueries[v]
	if !ok {
		panic("registry: unknown version " + string(v))
	}
	out := make([]string, len(qs))
	copy(out, qs)
	return out
}

// Supports reports whether the version supports the named query.
func (v Version) Supports(queryName string) bool {
	for _, q := range supportedQueries[v] {
		if q == queryName {
			return true
		}
	}
	return false
}

// Versions returns all release lines in declaration order.
func Versions() []Version {
	out := make([]Version, len(versions))
	copy(out, versions)
	return out
}

// DatasetVersion returns the version a dataset identifier belongs to.
func DatasetVersion(dataset string) (Version, bool) {
	v, ok := datasetVersion[dataset]
	return v, ok
}

// Resolve determines the version from the supplied hints. An explicit
// version tag wins if valid; otherwise the dataset identifier is looked up;
// otherwise the reference genome is matched in declaration order. When no
// hint produces a result, Resolve returns a *ResolutionError.
func Resolve(dataset, refGenome, explicit string) (Version, error) {
	if explicit != "" {
		if v := Version(explicit); v.Valid() {
			return v, nil
		}
		return "", &ResolutionError{Dataset: dataset, ReferenceGenome: refGenome, Explicit: explicit}
	}
	if v, ok := datasetVersion[dataset]; ok {
		return v, nil
	}
	if refGenome != "" {
		for _, v := range versions {
			if referenceGenome[v] == refGenome {
				return v, nil
			}
		}
	}
	return "", &ResolutionError{Dataset: dataset, ReferenceGenome: refGenome, Explicit: explicit}
}
