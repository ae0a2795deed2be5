package corpus

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	perr "phishguard/internal/platform/errors"
	"phishguard/internal/platform/testkit"
)

func TestLoadCSV_DropsIncompleteRows(t *testing.T) {
	in := "id,Text,LABEL,extra\n" +
		"1,\"Verify your account\nnow\",Phishing,x\n" +
		"2,,legit,x\n" +
		"3,lunch at noon,,x\n" +
		"4,see attached invoice, legit \n" +
		"5,short\n"
	ds, err := LoadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Verify your account\nnow", "see attached invoice"}; !reflect.DeepEqual(ds.Texts, want) {
		t.Fatalf("texts = %#v", ds.Texts)
	}
	if want := []string{"phishing", "legit"}; !reflect.DeepEqual(ds.Labels, want) {
		t.Fatalf("labels = %#v", ds.Labels)
	}
	if ds.Dropped != 3 {
		t.Fatalf("dropped = %d, want 3", ds.Dropped)
	}
	if c := ds.Counts(); c["phishing"] != 1 || c["legit"] != 1 {
		t.Fatalf("counts = %v", c)
	}
}

func TestLoadCSV_BOMHeader(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader("\uFEFFtext,label\nhello there,legit\n"))
	if err != nil {
		t.Fatal(err)
	}
	if ds.Len() != 1 {
		t.Fatalf("len = %d", ds.Len())
	}
}

func TestLoadCSV_FormatErrors(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"missing label": "text,kind\nhi,legit\n",
		"missing text":  "body,label\nhi,legit\n",
		"bad quoting":   "text,label\n\"a\"b\"c\n\"unterminated,legit\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(in))
			if !perr.IsCode(err, perr.ErrorCodeDataFormat) {
				t.Fatalf("want DataFormat, got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "emails.csv")
	testkit.WriteFile(t, path, "text,label\nreset your password,phishing\nstandup moved,legit\n")
	ds, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	got := ds.Examples()
	if len(got) != 2 || got[0] != (Example{Text: "reset your password", Label: LabelPhishing}) {
		t.Fatalf("examples = %+v", got)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.csv")); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}
}
