package fuzzydate

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/etnz/fuzzydate/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONL(t *testing.T) {
	input := `{"id":"A","date":"2025-01-10","price":12.50}

{"date":"2025-1-11","id":"B","flag":true,"price":null}
{"id":"C","date":"2025-01-12T09:30:00Z"}
`
	tab, err := DecodeJSONL(strings.NewReader(input), "main.jsonl", DecodeOptions{Dates: []string{"date"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "date", "price", "flag"}, tab.Names())
	assert.Equal(t, 3, tab.Len())
	assert.True(t, tab.Value(0, "price").Equal(Num(12.5)))
	assert.Equal(t, "12.5", tab.Value(0, "price").String())
	assert.True(t, tab.Value(1, "date").Equal(On(date.New(2025, 1, 11))))
	assert.True(t, tab.Value(1, "flag").Equal(Flag(true)))
	assert.True(t, tab.Value(1, "price").IsMissing())
	assert.True(t, tab.Value(2, "flag").IsMissing())
	assert.Equal(t, Time, tab.Value(2, "date").Kind())
}

func TestDecodeJSONLPaths(t *testing.T) {
	input := `{"id":"A","risk":{"beta":1.2,"history":[0.9,1.1]}}
{"id":"B","risk":{}}
{"id":"C","risk":{"beta":0.8,"history":[]}}
`
	tab, err := DecodeJSONL(strings.NewReader(input), "aux.jsonl", DecodeOptions{
		Paths: map[string]string{
			"beta": "$.risk.beta",
			"last": "$.risk.history[-1:]",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "beta", "last"}, tab.Names())
	assert.True(t, tab.Value(0, "beta").Equal(Num(1.2)))
	assert.True(t, tab.Value(0, "last").Equal(Num(1.1)))
	assert.True(t, tab.Value(1, "beta").IsMissing())
	assert.True(t, tab.Value(1, "last").IsMissing())
	assert.True(t, tab.Value(2, "beta").Equal(Num(0.8)))
	assert.True(t, tab.Value(2, "last").IsMissing(), "an empty match is a missing value")
}

func TestDecodeJSONLErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		opts  DecodeOptions
		want  string
	}{
		{
			name:  "not json",
			input: "{\"a\":1}\nnot json\n",
			want:  "aux.jsonl:2",
		},
		{
			name:  "not an object",
			input: "[1,2]\n",
			want:  "not a JSON object",
		},
		{
			name:  "bad date",
			input: `{"d":"tomorrow"}`,
			opts:  DecodeOptions{Dates: []string{"d"}},
			want:  `column "d"`,
		},
		{
			name:  "nested path result",
			input: `{"risk":{"beta":1}}`,
			opts:  DecodeOptions{Paths: map[string]string{"r": "$.risk"}},
			want:  "extract them with a path",
		},
		{
			name:  "path with several matches",
			input: `{"risk":{"history":[1,2]}}`,
			opts:  DecodeOptions{Paths: map[string]string{"h": "$.risk.history[*]"}},
			want:  "2 values",
		},
		{
			name:  "path column shadows a property",
			input: `{"beta":1,"risk":{"beta":1}}`,
			opts:  DecodeOptions{Paths: map[string]string{"beta": "$.risk.beta"}},
			want:  "also a property",
		},
		{
			name:  "bad path",
			input: `{"a":1}`,
			opts:  DecodeOptions{Paths: map[string]string{"b": "$.risk["}},
			want:  "invalid path",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeJSONL(strings.NewReader(tc.input), "aux.jsonl", tc.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestEncodeJSONL(t *testing.T) {
	tab := MustTable(
		Col("id", Str("A"), Str("B")),
		Col("date", On(date.New(2025, 1, 10)), Null()),
		Col("v", Num(1.5), Null()),
	)

	var b bytes.Buffer
	require.NoError(t, EncodeJSONL(&b, tab, EncodeOptions{}))
	assert.Equal(t, `{"id":"A","date":"2025-01-10","v":1.5}
{"id":"B","date":null,"v":null}
`, b.String())

	b.Reset()
	require.NoError(t, EncodeJSONL(&b, tab, EncodeOptions{OmitMissing: true}))
	assert.Equal(t, `{"id":"A","date":"2025-01-10","v":1.5}
{"id":"B"}
`, b.String())

	back, err := DecodeJSONL(&b, "back.jsonl", DecodeOptions{Dates: []string{"date"}})
	require.NoError(t, err)
	assert.True(t, back.Equal(tab), "decode(encode(t)) = %v", back)
}

func TestTimeRoundTrip(t *testing.T) {
	tab := MustTable(
		Col("id", Str("A")),
		Col("at", At(time.Date(2025, 1, 10, 9, 30, 15, 250_000_000, time.UTC))),
	)

	var b bytes.Buffer
	require.NoError(t, EncodeJSONL(&b, tab, EncodeOptions{}))
	assert.Contains(t, b.String(), "09:30:15.25Z")
	back, err := DecodeJSONL(&b, "t.jsonl", DecodeOptions{Dates: []string{"at"}})
	require.NoError(t, err)
	assert.True(t, tab.Equal(back), "DecodeJSONL(EncodeJSONL()) = %v", back)

	b.Reset()
	require.NoError(t, EncodeCSV(&b, tab))
	back, err = DecodeCSV(&b, "t.csv", DecodeOptions{Dates: []string{"at"}})
	require.NoError(t, err)
	assert.True(t, tab.Equal(back), "DecodeCSV(EncodeCSV()) = %v", back)
}

func TestCSV(t *testing.T) {
	input := "Industry,Date,beta\nTech,2025-01-05,1.2\nBanks,2025-01-06,\n"
	tab, err := DecodeCSV(strings.NewReader(input), "betas.csv", DecodeOptions{Dates: []string{"Date"}})
	require.NoError(t, err)
	want := MustTable(
		Col("Industry", Str("Tech"), Str("Banks")),
		Col("Date", On(date.New(2025, 1, 5)), On(date.New(2025, 1, 6))),
		Col("beta", Num(1.2), Null()),
	)
	assert.True(t, want.Equal(tab), "DecodeCSV() = %v", tab)

	var b bytes.Buffer
	require.NoError(t, EncodeCSV(&b, tab))
	assert.Equal(t, input, b.String())

	_, err = DecodeCSV(strings.NewReader("a,Date\n1,someday\n"), "bad.csv", DecodeOptions{Dates: []string{"Date"}})
	assert.ErrorContains(t, err, "bad.csv:2")

	empty, err := DecodeCSV(strings.NewReader(""), "empty.csv", DecodeOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
}

func TestLeadingZeroCodesJoin(t *testing.T) {
	main, err := DecodeJSONL(strings.NewReader(`{"id":"007","date":"2025-01-06"}`+"\n"), "main.jsonl", DecodeOptions{Dates: []string{"date"}})
	require.NoError(t, err)
	aux, err := DecodeCSV(strings.NewReader("id,Date,v\n007,2025-01-05,1\n"), "aux.csv", DecodeOptions{Dates: []string{"Date"}})
	require.NoError(t, err)
	assert.True(t, aux.Value(0, "id").Equal(Str("007")), "id = %v (%v)", aux.Value(0, "id"), aux.Value(0, "id").Kind())

	got, err := Merge(main, aux, MergeOptions{DateMain: "date", DateAux: "Date", JoinBy: []string{"id"}})
	require.NoError(t, err)
	assert.True(t, got.Value(0, "v").Equal(Num(1)), "v = %v", got.Value(0, "v"))
}

func TestXLSXRoundTrip(t *testing.T) {
	tab := MustTable(
		Col("Industry", Str("Tech"), Str("Banks"), Str("Energy")),
		Col("Date", On(date.New(2025, 1, 5)), On(date.New(2025, 2, 6)), At(time.Date(2025, 3, 7, 12, 0, 0, 0, time.UTC))),
		Col("beta", Num(1.25), Null(), Num(-0.5)),
		Col("note", Null(), Str("watch"), Null()),
	)
	var b bytes.Buffer
	require.NoError(t, EncodeXLSX(&b, tab))

	back, err := DecodeXLSX(&b, "betas.xlsx", DecodeOptions{Dates: []string{"Date"}})
	require.NoError(t, err)
	assert.Equal(t, tab.Names(), back.Names())
	assert.True(t, tab.Equal(back), "DecodeXLSX(EncodeXLSX()) = %v", back)
}

func TestSaveLoad(t *testing.T) {
	tab := MustTable(
		Col("id", Str("A")),
		Col("date", On(date.New(2025, 1, 10))),
		Col("v", Num(3)),
	)
	dir := t.TempDir()
	for _, name := range []string{"t.jsonl", "t.csv", "t.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, tab, EncodeOptions{}))
			back, err := Load(path, DecodeOptions{Dates: []string{"date"}})
			require.NoError(t, err)
			assert.True(t, tab.Equal(back), "Load(Save()) = %v", back)
		})
	}

	assert.Error(t, Save(filepath.Join(dir, "t.parquet"), tab, EncodeOptions{}))
	_, err := Load(filepath.Join(dir, "missing.csv"), DecodeOptions{})
	assert.Error(t, err)
}
