package entity

// ImportResult counts the rows of a recipients import.
type ImportResult struct {
	Created int
	Skipped int
}
