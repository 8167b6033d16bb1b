package selection

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRows(t *testing.T) {
	m := New()
	m.Set("Retail", "Shoes", "Apparel")
	m.Set("Tech")

	rows := ToRows(m)

	assert.Equal(t, []Row{
		{Industry: "Retail", Niche: "Shoes"},
		{Industry: "Retail", Niche: "Apparel"},
		{Industry: "Tech", Niche: ""},
	}, rows)
}

func TestToRowsEmptyModel(t *testing.T) {
	rows := ToRows(New())
	require.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestToRowsDoesNotMutate(t *testing.T) {
	m := New()
	m.Set("Retail", "Shoes")
	before := m.Clone()

	_ = ToRows(m)
	_, _ = ToJSON(m)

	assert.True(t, before.Equal(m))
	assert.Equal(t, before.Industries(), m.Industries())
}

func TestToJSON(t *testing.T) {
	m := New()
	m.Set("Tech")
	m.Set("Retail", "Shoes", "Apparel")

	out, err := ToJSON(m)
	require.NoError(t, err)

	want := "{\n  \"Tech\": [],\n  \"Retail\": [\n    \"Shoes\",\n    \"Apparel\"\n  ]\n}"
	assert.Equal(t, want, out)

	var decoded map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, map[string][]string{"Tech": {}, "Retail": {"Shoes", "Apparel"}}, decoded)
}

func TestToJSONEmptyModel(t *testing.T) {
	out, err := ToJSON(New())
	require.NoError(t, err)
	assert.Equal(t, "{}", out)
}

func TestToCSV(t *testing.T) {
	m := New()
	m.Set("Retail", "Shoes")
	m.Set("Tech")

	out, err := ToCSV(ToRows(m))
	require.NoError(t, err)

	assert.Equal(t, "industry,niche\nRetail,Shoes\nTech,\n", out)
}

func TestToCSVQuotesAndRoundTrips(t *testing.T) {
	m := New()
	m.Set("Home", "Home, Garden", `Say "hi"`, "two\nlines")

	out, err := ToCSV(ToRows(m))
	require.NoError(t, err)
	assert.Contains(t, out, `"Home, Garden"`)
	assert.Contains(t, out, `"Say ""hi"""`)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"industry", "niche"},
		{"Home", "Home, Garden"},
		{"Home", `Say "hi"`},
		{"Home", "two\nlines"},
	}, records)
}

func TestToCSVNoRows(t *testing.T) {
	out, err := ToCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "industry,niche\n", out)
}
