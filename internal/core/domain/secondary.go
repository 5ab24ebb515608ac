package domain

// SecondaryIndex is an auxiliary lookup built from a separate dataset:
// record identifier to the distinct values contributed for one facet
// (gender per burial, finds categories per burial). It is built once per
// source, cached for the page lifetime and read-only afterwards.
type SecondaryIndex map[string][]string

// Values returns the values recorded for a record identifier, or nil.
func (ix SecondaryIndex) Values(id string) []string {
	if ix == nil {
		return nil
	}
	return ix[id]
}
