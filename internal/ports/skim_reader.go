package ports

// SkimReader opens a binary skim container and streams its tables.
type SkimReader interface {
	// TableNames lists the tables in the container, in directory order.
	TableNames() []string
	// Zones returns the zone count (tables are Zones x Zones).
	Zones() int
	// Table reads one named table as a dense row-major matrix.
	Table(name string) ([]float32, error)
	Close() error
}
