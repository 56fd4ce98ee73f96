package handlers

import "github.com/sittawut/doctors-portal/models"

// ComputeAvailability returns every service with the slots not yet taken by
// a booking for that treatment. Slot order is kept and an exhausted service
// gets an empty, non-nil list.
func ComputeAvailability(services []models.Service, bookings []models.Booking) []models.ServiceAvailability {
	booked := make(map[string]map[string]struct{})
	for _, b := range bookings {
		slots, ok := booked[b.TreatmentName]
		if !ok {
			slots = make(map[string]struct{})
			booked[b.TreatmentName] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	result := make([]models.ServiceAvailability, 0, len(services))
	for _, service := range services {
		if service.Slots == nil {
			service.Slots = []string{}
		}
		taken := booked[service.Name]
		available := make([]string, 0, len(service.Slots))
		for _, slot := range service.Slots {
			if _, ok := taken[slot]; !ok {
				available = append(available, slot)
			}
		}
		result = append(result, models.ServiceAvailability{Service: service, Available: available})
	}
	return result
}
