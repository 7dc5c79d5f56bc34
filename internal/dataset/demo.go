package dataset

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/imgajeed76/vgrid/internal/grid"
)

// DemoColumns are the columns Demo generates
var DemoColumns = []string{"id", "name", "email", "city", "age", "balance", "active", "joined"}

var (
	demoFirst  = []string{"Ada", "Bruno", "Chloé", "Dmitri", "Eun-ji", "Farah", "Gustav", "Hana", "Ibrahim", "Jules", "Kaito", "Lena"}
	demoLast   = []string{"Andersen", "Bauer", "Costa", "Duval", "Eriksen", "Fischer", "García", "Hoffmann", "Ito", "Jovanović"}
	demoCities = []string{"Oslo", "Bern", "Lisbon", "Tallinn", "Kyoto", "Porto", "Ghent", "Graz"}
)

// Demo generates n synthetic rows. The same seed yields the same rows.
// Roughly one city in twelve is nil to exercise nil ordering.
func Demo(n int, seed uint64) *Source {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	base := time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := make([]grid.Row, n)
	for i := range rows {
		first := demoFirst[rng.IntN(len(demoFirst))]
		last := demoLast[rng.IntN(len(demoLast))]

		var city any
		if rng.IntN(12) != 0 {
			city = demoCities[rng.IntN(len(demoCities))]
		}

		rows[i] = grid.Row{
			"id":      int64(i + 1),
			"name":    first + " " + last,
			"email":   fmt.Sprintf("user%d@example.com", i+1),
			"city":    city,
			"age":     int64(18 + rng.IntN(70)),
			"balance": float64(rng.IntN(10_000_00)) / 100,
			"active":  rng.IntN(3) != 0,
			"joined":  base.Add(time.Duration(rng.IntN(3650*24)) * time.Hour),
		}
	}

	return &Source{
		Name:    fmt.Sprintf("demo (%d rows)", n),
		Columns: append([]string(nil), DemoColumns...),
		Rows:    rows,
		GetID:   ColumnIDFunc("id"),
	}
}
