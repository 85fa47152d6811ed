package request

import (
	"testing"
)

func TestParamsEncode_OmitsAbsentValues(t *testing.T) {
	p := Params{
		"present": "yes",
		"absent":  nil,
	}

	values := p.Encode()
	if got := values.Get("present"); got != "yes" {
		t.Errorf("present = %q, want %q", got, "yes")
	}
	if _, ok := values["absent"]; ok {
		t.Error("absent value was serialized")
	}
	if _, ok := values["absent[]"]; ok {
		t.Error("absent value was serialized as array")
	}
}

func TestParamsEncode_CoercesScalars(t *testing.T) {
	values := Params{
		"page":     3,
		"closed":   true,
		"team_id":  int64(9007199254),
		"fraction": 1.5,
	}.Encode()

	cases := map[string]string{
		"page":     "3",
		"closed":   "true",
		"team_id":  "9007199254",
		"fraction": "1.5",
	}
	for key, want := range cases {
		if got := values.Get(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestParamsEncode_ArraysUseBracketForm(t *testing.T) {
	values := Params{"assignees": []string{"1", "2"}}.Encode()

	got := values["assignees[]"]
	if len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("assignees[] = %v, want [1 2]", got)
	}
	if _, ok := values["assignees"]; ok {
		t.Error("bare key emitted for array value")
	}
}

func TestISOToEpochMillis(t *testing.T) {
	got, err := ISOToEpochMillis("2025-07-29T00:00:00.000Z")
	if err != nil {
		t.Fatalf("ISOToEpochMillis: %v", err)
	}
	if got != "1753747200000" {
		t.Errorf("got %q, want %q", got, "1753747200000")
	}
}

func TestISOToEpochMillis_EmptyStaysEmpty(t *testing.T) {
	got, err := ISOToEpochMillis("")
	if err != nil {
		t.Fatalf("ISOToEpochMillis: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestISOToEpochMillis_Invalid(t *testing.T) {
	if _, err := ISOToEpochMillis("yesterday"); err == nil {
		t.Error("expected error for junk input")
	}
}

func TestDuplicateSingle(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, nil},
		{"empty", []string{}, []string{}},
		{"single is doubled", []string{"a"}, []string{"a", "a"}},
		{"pair unchanged", []string{"a", "b"}, []string{"a", "b"}},
		{"triple unchanged", []string{"a", "b", "c"}, []string{"a", "b", "c"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DuplicateSingle(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("got[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}
