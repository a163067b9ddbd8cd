package memory

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// SeedDemo loads a small catalog so the memory driver is usable without a
// database: one barber working Monday to Saturday with a lunch break, two
// services and one client.
func SeedDemo(ctx context.Context, s *Store) error {
	barber := s.AddBarber(models.Barber{Name: "Demo Barber", Email: "barber@example.com", Active: true})
	s.AddService(models.ServiceOffering{Name: "Haircut", DurationMin: 30, Active: true})
	s.AddService(models.ServiceOffering{Name: "Beard trim", DurationMin: 20, BufferAfterMin: 10, Active: true})
	s.AddClient(models.Client{Name: "Demo Client", Phone: "+351900000000"})

	for weekday := 1; weekday <= 6; weekday++ {
		for _, block := range [][2]string{{"09:00", "13:00"}, {"14:00", "19:00"}} {
			wh := &models.WorkingHours{
				BarberID:  barber.ID,
				Weekday:   weekday,
				StartTime: block[0],
				EndTime:   block[1],
			}
			if err := s.CreateWorkingHours(ctx, wh); err != nil {
				return err
			}
		}
	}
	return nil
}
