package marks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/domain/marks"
)

func TestToggle_AgregaYQuita(t *testing.T) {
	s0 := marks.New(nil)

	s1 := s0.Toggle("t1")
	assert.True(t, s1.Has("t1"))
	assert.Equal(t, int64(1), s1.Version())

	s2 := s1.Toggle("t1")
	assert.False(t, s2.Has("t1"))
	assert.Equal(t, int64(2), s2.Version())
}

func TestToggle_NoMutaLaVersionAnterior(t *testing.T) {
	s0 := marks.New([]string{"a"})
	s1 := s0.Toggle("b")

	assert.Equal(t, []string{"a"}, s0.IDs())
	assert.Equal(t, int64(0), s0.Version())
	assert.Equal(t, []string{"a", "b"}, s1.IDs())
}

// Escenario D: la marca de un movimiento borrado se conserva.
func TestToggle_MarcaHuerfana(t *testing.T) {
	s := marks.New(nil).Toggle("T1")

	// El movimiento T1 se elimina del registro; el conjunto no se entera.
	assert.True(t, s.Has("T1"))
	assert.Equal(t, 1, s.Len())
}

func TestNew_IgnoraVaciosYDuplicados(t *testing.T) {
	s := marks.New([]string{"z", "", "a", "z"})
	assert.Equal(t, []string{"a", "z"}, s.IDs())
	assert.Equal(t, int64(7), s.WithVersion(7).Version())
}
