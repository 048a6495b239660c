package adopter

import "time"

// SetClock fixes the service's time source so age checks in tests are
// deterministic.
func SetClock(service *Service, now func() time.Time) {
	service.now = now
}
