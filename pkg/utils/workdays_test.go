package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fecha(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDiasHabiles(t *testing.T) {
	cases := []struct {
		nombre  string
		inicio  string
		fin     string
		quieres int
	}{
		{"semana completa", "2024-05-06", "2024-05-10", 5},
		{"incluye fin de semana", "2024-05-01", "2024-05-10", 8},
		{"un solo día hábil", "2024-05-06", "2024-05-06", 1},
		{"sólo sábado", "2024-05-04", "2024-05-04", 0},
		{"fin de semana completo", "2024-05-04", "2024-05-05", 0},
		{"dos semanas", "2024-05-06", "2024-05-19", 10},
	}

	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			dias, err := DiasHabiles(fecha(tc.inicio), fecha(tc.fin))
			require.NoError(t, err)
			require.Equal(t, tc.quieres, dias)
		})
	}
}
