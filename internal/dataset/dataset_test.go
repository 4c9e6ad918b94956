package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oasSearch/internal/oas"
)

const threeJobs = `r
0,0,0,1

p
0,3,2,4

d
0,10,8,12

dd
0,5,4,10

D
0,8,6,12

w
0,2,1,3
`

func TestParse(t *testing.T) {
	attrs, err := Parse(strings.NewReader(threeJobs))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 1}, attrs.ReleaseTimes)
	assert.Equal(t, []float64{0, 3, 2, 4}, attrs.ProcessingTimes)
	assert.Equal(t, []float64{0, 10, 8, 12}, attrs.Revenues)
	assert.Equal(t, []float64{0, 5, 4, 10}, attrs.DueDates)
	assert.Equal(t, []float64{0, 8, 6, 12}, attrs.Deadlines)
	assert.Equal(t, []float64{0, 2, 1, 3}, attrs.PenaltyWeights)
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"truncated":  "r\n0,1\n\np\n0,1\n",
		"bad number": strings.Replace(threeJobs, "0,3,2,4", "0,3,x,4", 1),
		"empty line": strings.Replace(threeJobs, "0,2,1,3", "", 1),
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFormat))
		})
	}
}

func TestLoad_MismatchedLengthsFailFast(t *testing.T) {
	dir := t.TempDir()
	body := strings.Replace(threeJobs, "0,8,6,12", "0,8,6", 1)
	path := filepath.Join(dir, "bad.dat")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, oas.ErrInvalidInput)
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	name := FileName(3, 1, 5, 6)
	assert.Equal(t, "Dataslack_3orders_Tao1R5_6_without_setup.dat", name)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(threeJobs), 0o644))

	inst, err := LoadFrom(dir, 3, 1, 5, 6)
	require.NoError(t, err)
	assert.Equal(t, 3, inst.Jobs())
	assert.Equal(t, 5.0, inst.Job(3).SlackTime)

	_, err = LoadFrom(dir, 4, 1, 5, 6)
	require.Error(t, err)
}
