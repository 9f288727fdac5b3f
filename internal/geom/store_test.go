package geom

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioCSV = `state,lon,lat
California,-120.5,38.0
California,-119.0,37.0
Nevada,-117.0,39.0
`

func loadString(t *testing.T, data string) *Store {
	t.Helper()
	s, err := LoadReader(strings.NewReader(data), "test.csv")
	require.NoError(t, err)
	return s
}

func TestStateScenario(t *testing.T) {
	s := loadString(t, scenarioCSV)

	got := s.State("California")
	want := []Record{
		{State: "California", Lon: -120.5, Lat: 38.0},
		{State: "California", Lon: -119.0, Lat: 37.0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("State(California) mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, s.State("Texas"))
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, "test.csv", s.Source())
}

func TestStateOnlyMatchesExactName(t *testing.T) {
	s := loadString(t, scenarioCSV)

	for _, name := range []string{"california", "California ", "Cal", ""} {
		assert.Empty(t, s.State(name), "name %q", name)
	}
	for _, r := range s.State("Nevada") {
		assert.Equal(t, "Nevada", r.State)
	}
}

func TestStatePreservesFileOrder(t *testing.T) {
	s := loadString(t, `state,lon,lat
A,1,1
B,9,9
A,2,2
B,8,8
A,3,3
`)
	got := Points(s.State("A"))
	want := [][2]float64{{1, 1}, {2, 2}, {3, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"A", "B"}, s.States())
}

func TestStateIsIdempotentAndCopies(t *testing.T) {
	s := loadString(t, scenarioCSV)

	first := s.State("California")
	first[0].Lon = 0
	second := s.State("California")
	third := s.State("California")

	assert.Equal(t, -120.5, second[0].Lon)
	assert.Equal(t, second, third)

	names := s.States()
	names[0] = "mutated"
	assert.Equal(t, "California", s.States()[0])
}

func TestStateConcurrentReaders(t *testing.T) {
	s := loadString(t, scenarioCSV)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, s.State("California"), 2)
			assert.Empty(t, s.State("Texas"))
		}()
	}
	wg.Wait()
}

func TestLoadHeaderAliases(t *testing.T) {
	s := loadString(t, `Name, Longitude, Latitude, extra
Utah, -111.5, 40.1, x
`)
	assert.Equal(t, []Record{{State: "Utah", Lon: -111.5, Lat: 40.1}}, s.State("Utah"))
}

func TestLoadCanonicalHeaderBeatsAlias(t *testing.T) {
	s := loadString(t, "name,state,x,y,lon,lat\nSacramento,California,1,2,-120.5,38\n")

	assert.Equal(t, []Record{{State: "California", Lon: -120.5, Lat: 38}}, s.State("California"))
	assert.Empty(t, s.State("Sacramento"))
}

func TestLoadStripsByteOrderMark(t *testing.T) {
	s := loadString(t, "\ufeffstate,lon,lat\nNevada,-117,39\n")

	assert.Equal(t, []Record{{State: "Nevada", Lon: -117, Lat: 39}}, s.State("Nevada"))
}

func TestLoadHeaderOnly(t *testing.T) {
	s := loadString(t, "state,lon,lat\n")
	assert.Zero(t, s.Len())
	assert.Empty(t, s.States())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		target error
		line   int
	}{
		{name: "empty", data: "", target: ErrEmptySource},
		{name: "missing state", data: "lon,lat\n1,2\n", target: ErrMissingColumn, line: 1},
		{name: "missing lat", data: "state,lon\nA,1\n", target: ErrMissingColumn, line: 1},
		{name: "bad lon", data: "state,lon,lat\nA,1,2\nA,east,2\n", target: ErrBadNumber, line: 3},
		{name: "bad lat", data: "state,lon,lat\nA,1,\n", target: ErrBadNumber, line: 2},
		{name: "nan lon", data: "state,lon,lat\nA,0,0\nA,NaN,1\nA,2,2\n", target: ErrBadNumber, line: 3},
		{name: "inf lat", data: "state,lon,lat\nA,0,+Inf\n", target: ErrBadNumber, line: 2},
		{name: "negative inf lon", data: "state,lon,lat\nA,-inf,1\n", target: ErrBadNumber, line: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadReader(strings.NewReader(tt.data), "bad.csv")
			require.Error(t, err)
			assert.Nil(t, s)

			var dle *DataLoadError
			require.True(t, errors.As(err, &dle), "want *DataLoadError, got %T", err)
			assert.Equal(t, "bad.csv", dle.Path)
			assert.Equal(t, tt.line, dle.Line)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestLoadRaggedRowIsDataLoadError(t *testing.T) {
	_, err := LoadReader(strings.NewReader("state,lon,lat\nA,1\n"), "ragged.csv")
	var dle *DataLoadError
	require.ErrorAs(t, err, &dle)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")
	_, err := Load(path)

	var dle *DataLoadError
	require.ErrorAs(t, err, &dle)
	assert.Equal(t, path, dle.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state-polygons.csv")
	require.NoError(t, os.WriteFile(path, []byte(scenarioCSV), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Source())
	assert.Equal(t, []string{"California", "Nevada"}, s.States())
}

func TestBoundAndSummary(t *testing.T) {
	s := loadString(t, `state,lon,lat
Square,0,0
Square,2,0
Square,2,2
Square,0,2
Dot,5,6
`)
	bb, ok := s.Bound("Square")
	require.True(t, ok)
	assert.Equal(t, BBox{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}, bb)
	assert.True(t, bb.Valid())

	sum, ok := s.Summary("Square")
	require.True(t, ok)
	assert.Equal(t, 4, sum.Points)
	assert.InDelta(t, 4.0, sum.Area, 1e-9)
	assert.InDelta(t, 1.0, sum.Centroid[0], 1e-9)
	assert.InDelta(t, 1.0, sum.Centroid[1], 1e-9)

	dot, ok := s.Summary("Dot")
	require.True(t, ok)
	assert.Equal(t, [2]float64{5, 6}, dot.Centroid)
	assert.False(t, dot.BBox.Valid())

	_, ok = s.Summary("Texas")
	assert.False(t, ok)
	_, ok = s.Bound("Texas")
	assert.False(t, ok)

	assert.Len(t, s.Summaries(), 2)
}
