package location

import (
	"time"

	"github.com/pontocerto/pontocerto-backend-go/internal/pkg/geo"
)

// Location is a geofenced work site owned by a company. Employees must be
// inside the radius to start a verification flow.
type Location struct {
	ID           string
	CompanyID    string
	Name         string
	Address      string
	Coordinate   geo.Coordinate
	RadiusMeters int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
