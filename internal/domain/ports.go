package domain

import "context"

// MetadataReader is the read side of the external metadata store. All list
// methods return rows in a fixed, identifier-sorted order so that a run
// over an unchanged snapshot emits identical artifacts.
type MetadataReader interface {
	Domains(ctx context.Context) ([]Domain, error)
	Members(ctx context.Context) ([]Member, error)
	Hierarchies(ctx context.Context) ([]Hierarchy, error)
	HierarchyNodes(ctx context.Context) ([]HierarchyNode, error)
	Variables(ctx context.Context) ([]Variable, error)
	Subdomains(ctx context.Context) ([]Subdomain, error)
	SubdomainEnumerations(ctx context.Context) ([]SubdomainEnumeration, error)
	Cubes(ctx context.Context) ([]Cube, error)
	CubeStructureItems(ctx context.Context) ([]CubeStructureItem, error)
	Combinations(ctx context.Context) ([]Combination, error)
	CombinationItems(ctx context.Context) ([]CombinationItem, error)
}

// MappingWriter is the write side of the store for the generated join
// graph. Inserts are idempotent on the composite identity keys; repeated
// runs over an unchanged snapshot leave the stored key set unchanged.
type MappingWriter interface {
	// WithTx runs fn against a transaction-scoped writer and rolls back
	// on error, so a failed run never commits a partial join graph.
	WithTx(ctx context.Context, fn func(MappingWriter) error) error
	// InsertCubeLink stores a link unless its (template, foreign cube,
	// code) identity already exists and returns the stored link's ID.
	InsertCubeLink(ctx context.Context, link *CubeLink) (string, error)
	// InsertItemLink stores an item link unless its (cube link, primary
	// variable, foreign variable) identity already exists.
	InsertItemLink(ctx context.Context, link *CubeStructureItemLink) error
	// DeleteForTemplate removes all links of a report template, for a
	// from-scratch regeneration.
	DeleteForTemplate(ctx context.Context, template string) error
	CubeLinks(ctx context.Context, template string) ([]CubeLink, error)
	ItemLinks(ctx context.Context, cubeLinkID string) ([]CubeStructureItemLink, error)
}
