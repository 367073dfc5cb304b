package repository

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internaldb "regmap/internal/db"
	"regmap/internal/domain"
)

// seedCatalogue loads a minimal catalogue: one enumerated domain with a
// two-leaf hierarchy, a report cube and an input cube sharing a variable,
// and one combination selecting the hierarchy root.
func seedCatalogue(t *testing.T, conn *sql.DB) {
	t.Helper()
	ctx := context.Background()
	seed := NewSeedRepo(conn)

	require.NoError(t, seed.InsertDomain(ctx, domain.Domain{ID: "d1", Code: "DOM1", Name: "Domain 1", IsEnumerated: true}))
	require.NoError(t, seed.InsertMember(ctx, domain.Member{ID: "p", DomainID: "d1", Code: "P", Name: "Parent"}))
	require.NoError(t, seed.InsertMember(ctx, domain.Member{ID: "a", DomainID: "d1", Code: "A", Name: "Leaf A"}))
	require.NoError(t, seed.InsertMember(ctx, domain.Member{ID: "b", DomainID: "d1", Code: "B", Name: "Leaf B"}))
	require.NoError(t, seed.InsertHierarchy(ctx, domain.Hierarchy{ID: "h1", DomainID: "d1", Code: "H1", Name: "Hierarchy 1"}))
	require.NoError(t, seed.InsertHierarchyNode(ctx, domain.HierarchyNode{HierarchyID: "h1", ParentMemberID: "p", ChildMemberID: "a", Level: 1, Order: 1}))
	require.NoError(t, seed.InsertHierarchyNode(ctx, domain.HierarchyNode{HierarchyID: "h1", ParentMemberID: "p", ChildMemberID: "b", Level: 1, Order: 2}))
	require.NoError(t, seed.InsertVariable(ctx, domain.Variable{ID: "var1", DomainID: "d1", Code: "VAR1", Name: "Variable 1", Type: domain.VarTypeEnumerated}))
	require.NoError(t, seed.InsertSubdomain(ctx, domain.Subdomain{ID: "sd1", DomainID: "d1", Code: "SD1", Name: "Subdomain 1"}))
	require.NoError(t, seed.InsertSubdomainEnumeration(ctx, domain.SubdomainEnumeration{SubdomainID: "sd1", MemberID: "a"}))
	require.NoError(t, seed.InsertCube(ctx, domain.Cube{ID: "rc1", Code: "RC1", Name: "Report cube", CubeType: domain.CubeTypeReport, FrameworkCode: "FW"}))
	require.NoError(t, seed.InsertCube(ctx, domain.Cube{ID: "ic1", Code: "IC1", Name: "Input cube", CubeType: domain.CubeTypeInput, FrameworkCode: "FW"}))
	require.NoError(t, seed.InsertCubeStructureItem(ctx, domain.CubeStructureItem{ID: "rci1", CubeID: "rc1", VariableID: "var1", Order: 1}))
	require.NoError(t, seed.InsertCubeStructureItem(ctx, domain.CubeStructureItem{ID: "ici1", CubeID: "ic1", VariableID: "var1", SubdomainID: "sd1", Order: 1}))
	require.NoError(t, seed.InsertCombination(ctx, domain.Combination{ID: "c100", Code: "C100", TemplateCode: "T1"}))
	require.NoError(t, seed.InsertCombinationItem(ctx, domain.CombinationItem{CombinationID: "c100", VariableID: "var1", MemberID: "p", HierarchyID: "h1", Order: 1}))
}

func TestMetadataRepoRoundTrip(t *testing.T) {
	conn := internaldb.OpenTestSQLite(t)
	seedCatalogue(t, conn)

	ctx := context.Background()
	repo := NewMetadataRepo(conn)

	domains, err := repo.Domains(ctx)
	require.NoError(t, err)
	require.Len(t, domains, 1)
	assert.True(t, domains[0].IsEnumerated)

	members, err := repo.Members(ctx)
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, []string{"A", "B", "P"}, []string{members[0].Code, members[1].Code, members[2].Code},
		"members come back ordered by code within a domain")

	nodes, err := repo.HierarchyNodes(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "a", nodes[0].ChildMemberID, "edges come back in node order")
	assert.Equal(t, "b", nodes[1].ChildMemberID)

	variables, err := repo.Variables(ctx)
	require.NoError(t, err)
	require.Len(t, variables, 1)
	assert.Equal(t, domain.VarTypeEnumerated, variables[0].Type)
	assert.False(t, variables[0].IsFacetted())

	enums, err := repo.SubdomainEnumerations(ctx)
	require.NoError(t, err)
	require.Len(t, enums, 1)
	assert.Equal(t, "a", enums[0].MemberID)

	cubes, err := repo.Cubes(ctx)
	require.NoError(t, err)
	require.Len(t, cubes, 2)
	assert.Equal(t, "IC1", cubes[0].Code)
	assert.Equal(t, "RC1", cubes[1].Code)

	items, err := repo.CubeStructureItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Empty(t, items[1].SubdomainID, "NULL subdomain reads back as empty string")
	assert.Equal(t, "sd1", items[0].SubdomainID)

	combos, err := repo.Combinations(ctx)
	require.NoError(t, err)
	require.Len(t, combos, 1)
	assert.Empty(t, combos[0].MetricVariableID, "NULL metric reads back as empty string")

	comboItems, err := repo.CombinationItems(ctx)
	require.NoError(t, err)
	require.Len(t, comboItems, 1)
	assert.Equal(t, "h1", comboItems[0].HierarchyID)
}

func TestMetadataRepoEmptyStore(t *testing.T) {
	conn := internaldb.OpenTestSQLite(t)

	repo := NewMetadataRepo(conn)
	domains, err := repo.Domains(context.Background())
	require.NoError(t, err)
	assert.Empty(t, domains)
}

func TestSeedRepoDuplicateIsConflict(t *testing.T) {
	conn := internaldb.OpenTestSQLite(t)
	seedCatalogue(t, conn)

	seed := NewSeedRepo(conn)
	err := seed.InsertDomain(context.Background(), domain.Domain{ID: "d1", Code: "DOM1"})
	require.Error(t, err)
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}
