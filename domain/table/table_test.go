package table

import (
	"reflect"
	"testing"
)

func TestNormalize_DropsEmptyRows(t *testing.T) {
	got := Normalize("a,b\n1,2\n,\n3,4")

	if !reflect.DeepEqual(got.Headers, []string{"a", "b"}) {
		t.Errorf("headers = %v, want [a b]", got.Headers)
	}
	want := [][]string{{"1", "2"}, {"3", "4"}}
	if !reflect.DeepEqual(got.Rows, want) {
		t.Errorf("rows = %v, want %v", got.Rows, want)
	}
}

func TestNormalize_StripsLeadingBlankColumns(t *testing.T) {
	got := Normalize(",,a,b\n,,1,2")

	if !reflect.DeepEqual(got.Headers, []string{"a", "b"}) {
		t.Errorf("headers = %v, want [a b]", got.Headers)
	}
	if !reflect.DeepEqual(got.Rows, [][]string{{"1", "2"}}) {
		t.Errorf("rows = %v, want [[1 2]]", got.Rows)
	}
}

func TestNormalize_KeepsInteriorAndTrailingBlankColumns(t *testing.T) {
	got := Normalize("a,,c,\n1,,3,")

	if !reflect.DeepEqual(got.Headers, []string{"a", "", "c", ""}) {
		t.Errorf("headers = %v, want interior/trailing blanks preserved", got.Headers)
	}
	if !reflect.DeepEqual(got.Rows, [][]string{{"1", "", "3", ""}}) {
		t.Errorf("rows = %v, want interior/trailing blanks preserved", got.Rows)
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n"} {
		got := Normalize(input)
		if len(got.Headers) != 0 {
			t.Errorf("Normalize(%q) headers = %v, want none", input, got.Headers)
		}
		if len(got.Rows) != 0 {
			t.Errorf("Normalize(%q) rows = %v, want none", input, got.Rows)
		}
	}
}

func TestNormalize_SingleLineYieldsHeadersOnly(t *testing.T) {
	got := Normalize("name,age,city")

	if !reflect.DeepEqual(got.Headers, []string{"name", "age", "city"}) {
		t.Errorf("headers = %v", got.Headers)
	}
	if len(got.Rows) != 0 {
		t.Errorf("rows = %v, want none", got.Rows)
	}
}

func TestNormalize_QuoteStripping(t *testing.T) {
	got := Normalize(`"name","age"` + "\n" + `"alice", "30"`)

	if !reflect.DeepEqual(got.Headers, []string{"name", "age"}) {
		t.Errorf("headers = %v, want quotes stripped", got.Headers)
	}
	if !reflect.DeepEqual(got.Rows, [][]string{{"alice", "30"}}) {
		t.Errorf("rows = %v, want quotes stripped", got.Rows)
	}
}

func TestNormalize_CRLFInput(t *testing.T) {
	got := Normalize("a,b\r\n1,2\r\n")

	if !reflect.DeepEqual(got.Rows, [][]string{{"1", "2"}}) {
		t.Errorf("rows = %v, want CRLF handled", got.Rows)
	}
}

func TestNormalize_IdempotentThroughSerialize(t *testing.T) {
	inputs := []string{
		"a,b\n1,2\n3,4",
		"name,age,city\nalice,30,\nbob,,berlin",
		"h1,h2\n\"x\", \"y\"\n,\nz,w",
	}

	for _, input := range inputs {
		once := Normalize(input)
		twice := Normalize(Serialize(once))
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("normalize not idempotent for %q:\nonce:  %+v\ntwice: %+v", input, once, twice)
		}
	}
}

func TestSerialize_JoinsWithCommaSpace(t *testing.T) {
	tbl := Table{Headers: []string{"a", "b"}, Rows: [][]string{{"1", "2"}}}

	got := Serialize(tbl)
	want := "a, b\n1, 2"
	if got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
}

func TestIsEmpty(t *testing.T) {
	if !(Table{}).IsEmpty() {
		t.Error("zero table should be empty")
	}
	if (Table{Headers: []string{"a"}}).IsEmpty() {
		t.Error("table with headers should not be empty")
	}
}
