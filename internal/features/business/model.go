package business

// Business is the subset of the Business collection the response
// assembler needs.
type Business struct {
	ID   string
	Name string
}

// DefaultName is used when the business record is absent or has no
// name, matching the legacy client's placeholder.
const DefaultName = "Goil"
