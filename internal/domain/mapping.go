package domain

import "fmt"

// CubeLink is a directed data-flow edge from an input cube to a report
// cube for one report template. Links are created during a generation run
// and persisted back to the store.
type CubeLink struct {
	ID             string
	Code           string // join identifier
	ReportTemplate string
	ForeignCubeID  string // input side
	PrimaryCubeID  string // report side
}

// Key returns the composite identity a link deduplicates on. Re-resolving
// an unchanged snapshot yields an identical key set.
func (l CubeLink) Key() string {
	return fmt.Sprintf("%s|%s|%s", l.ReportTemplate, l.ForeignCubeID, l.Code)
}

// CubeStructureItemLink joins one report-cube column to one input-cube
// column under an owning CubeLink.
type CubeStructureItemLink struct {
	ID                string
	CubeLinkID        string
	PrimaryItemID     string // report column
	ForeignItemID     string // input column
	PrimaryVariableID string
	ForeignVariableID string
}

// Key returns the composite identity an item link deduplicates on.
func (l CubeStructureItemLink) Key() string {
	return fmt.Sprintf("%s|%s|%s", l.CubeLinkID, l.PrimaryVariableID, l.ForeignVariableID)
}
