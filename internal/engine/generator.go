package engine

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"dashboard/internal/models"
)

// --- 1. REGION & SAMPLING CONSTANTS ---

const (
	// Tyrol bounding box
	MinLat = 46.8
	MaxLat = 47.7
	MinLon = 10.0
	MaxLon = 12.9

	// Innsbruck
	CenterLat = 47.2692
	CenterLon = 11.4041

	clusterProb  = 0.6
	clusterSigma = 0.1

	registrationWindowDays = 730

	seasonalAmplitude = 0.5
	seasonalPeriod    = 12.0
)

type segmentRange struct {
	minPurchases, maxPurchases int     // [min, max)
	minOrder, maxOrder         float64 // [min, max)
}

var segmentRanges = map[models.Segment]segmentRange{
	models.Premium:  {20, 50, 200, 500},
	models.Standard: {10, 30, 100, 300},
	models.Basic:    {1, 15, 50, 200},
}

// cumulative weights: 20% Premium, 50% Standard, 30% Basic
var segmentWeights = []struct {
	seg models.Segment
	cum float64
}{
	{models.Premium, 0.2},
	{models.Standard, 0.7},
	{models.Basic, 1.0},
}

// --- 2. GENERATOR ---

// Generator draws every value from a single seeded source, so two
// generators built from the same seed produce the same sequence.
type Generator struct {
	rnd *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// GenerateTimeSeries returns seriesCount random walks of pointCount steps
// with Gaussian increments (stddev = volatility) plus a fixed seasonal term.
func GenerateTimeSeries(pointCount, seriesCount int, volatility float64, seed int64) models.TimeSeriesSet {
	return NewGenerator(seed).TimeSeries(pointCount, seriesCount, volatility)
}

func (g *Generator) TimeSeries(pointCount, seriesCount int, volatility float64) models.TimeSeriesSet {
	if pointCount <= 0 || seriesCount <= 0 {
		return models.TimeSeriesSet{Series: []models.Series{}}
	}

	set := models.TimeSeriesSet{Series: make([]models.Series, 0, seriesCount)}
	for i := 0; i < seriesCount; i++ {
		points := make([]models.Point, pointCount)
		walk := 0.0
		for t := 0; t < pointCount; t++ {
			walk += g.rnd.NormFloat64() * volatility
			season := seasonalAmplitude * math.Sin(2*math.Pi*float64(t)/seasonalPeriod)
			points[t] = models.Point{Index: t, Value: walk + season}
		}
		set.Series = append(set.Series, models.Series{Label: seriesLabel(i), Points: points})
	}
	return set
}

// seriesLabel maps 0 -> "a", 25 -> "z", 26 -> "aa".
func seriesLabel(i int) string {
	label := ""
	for {
		label = string(rune('a'+i%26)) + label
		i = i/26 - 1
		if i < 0 {
			return label
		}
	}
}

// GenerateCustomers builds count customers. The registration window ends at
// now, which is passed in so a fixed seed and a fixed now give a fixed table.
func GenerateCustomers(count int, seed int64, now time.Time) models.CustomerTable {
	return NewGenerator(seed).Customers(count, now)
}

func (g *Generator) Customers(count int, now time.Time) models.CustomerTable {
	if count <= 0 {
		return models.CustomerTable{}
	}

	start := now.AddDate(0, 0, -registrationWindowDays)
	table := make(models.CustomerTable, 0, count)

	for i := 0; i < count; i++ {
		seg := g.segment()
		lat, lon := g.location()

		offset := g.rnd.Intn(registrationWindowDays)
		registered := start.AddDate(0, 0, offset)

		r := segmentRanges[seg]
		purchases := r.minPurchases + g.rnd.Intn(r.maxPurchases-r.minPurchases)
		order := Round2(r.minOrder + g.rnd.Float64()*(r.maxOrder-r.minOrder))

		table = append(table, models.CustomerRecord{
			ID:               fmt.Sprintf("CUST_%04d", i+1),
			Segment:          seg,
			Lat:              lat,
			Lon:              lon,
			RegistrationDate: registered.Format("2006-01-02"),
			DaysAsCustomer:   registrationWindowDays - offset,
			TotalPurchases:   purchases,
			AvgOrderValue:    order,
			LifetimeValue:    LifetimeValue(purchases, order),
		})
	}
	return table
}

func (g *Generator) segment() models.Segment {
	r := g.rnd.Float64()
	for _, w := range segmentWeights {
		if r < w.cum {
			return w.seg
		}
	}
	return models.Basic
}

// location draws from the Innsbruck cluster with probability clusterProb,
// otherwise uniformly over the box. Cluster tails are clamped to the box.
func (g *Generator) location() (float64, float64) {
	if g.rnd.Float64() < clusterProb {
		lat := CenterLat + g.rnd.NormFloat64()*clusterSigma
		lon := CenterLon + g.rnd.NormFloat64()*clusterSigma
		return clamp(lat, MinLat, MaxLat), clamp(lon, MinLon, MaxLon)
	}
	lat := MinLat + g.rnd.Float64()*(MaxLat-MinLat)
	lon := MinLon + g.rnd.Float64()*(MaxLon-MinLon)
	return lat, lon
}

// --- 3. HELPERS ---

// LifetimeValue is purchases × order value rounded to cents.
func LifetimeValue(purchases int, orderValue float64) float64 {
	return Round2(float64(purchases) * orderValue)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
