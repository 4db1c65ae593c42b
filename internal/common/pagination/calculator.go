package pagination

// CalculateOffset calculates the database OFFSET value from a 1-based page
// number: offset = (page - 1) * limit.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages calculates the total number of pages with ceiling
// division. An empty result set still has one page.
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// HasMorePages reports whether items remain after the given page.
func HasMorePages(page, limit int, total int64) bool {
	return int64(page)*int64(limit) < total
}
