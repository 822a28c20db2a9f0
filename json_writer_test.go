package fuzzydate

import (
	"testing"
	"time"

	"github.com/etnz/fuzzydate/date"
)

func TestJSONObject(t *testing.T) {
	testCases := []struct {
		name        string
		omitMissing bool
		keys        []string
		values      []Value
		want        string
	}{
		{
			name: "empty object",
			want: "{}\n",
		},
		{
			name:   "keeps column order",
			keys:   []string{"z", "a", `q"uote`},
			values: []Value{Num(1), Str("hello"), Flag(true)},
			want:   `{"z":1,"a":"hello","q\"uote":true}` + "\n",
		},
		{
			name:   "every kind",
			keys:   []string{"n", "s", "d", "t", "m"},
			values: []Value{Num(1.25), Str("x"), On(date.New(2025, 1, 2)), At(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)), Null()},
			want:   `{"n":1.25,"s":"x","d":"2025-01-02","t":"2025-01-02T03:04:05Z","m":null}` + "\n",
		},
		{
			name:        "omit missing",
			omitMissing: true,
			keys:        []string{"m", "n", "o"},
			values:      []Value{Null(), Num(0), Null()},
			want:        `{"n":0}` + "\n",
		},
		{
			name:        "all missing",
			omitMissing: true,
			keys:        []string{"m"},
			values:      []Value{Null()},
			want:        "{}\n",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := jsonObject{omitMissing: tc.omitMissing}
			for i, k := range tc.keys {
				o.Set(k, tc.values[i])
			}
			got, err := o.Line()
			if err != nil {
				t.Fatalf("Line() unexpected error: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("Line() = %q want %q", got, tc.want)
			}
		})
	}
}
