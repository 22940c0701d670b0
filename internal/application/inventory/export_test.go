package inventory

import "time"

// SetClock fija reloj y generador de IDs en tests.
func (s *Service) SetClock(now func() time.Time, newID func() string) {
	s.now = now
	s.newID = newID
}

// SetClock fija reloj y generador de IDs en tests.
func (uc *ImportUseCase) SetClock(now func() time.Time, newID func() string) {
	uc.now = now
	uc.newID = newID
}
