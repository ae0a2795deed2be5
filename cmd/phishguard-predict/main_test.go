package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"phishguard/internal/core/corpus"
	"phishguard/internal/core/model"
	"phishguard/internal/core/pipeline"
	"phishguard/internal/platform/config"
	perr "phishguard/internal/platform/errors"
	"phishguard/internal/platform/testkit"
)

func trainedModel(t *testing.T) string {
	t.Helper()
	ds := &corpus.Dataset{}
	phish := []string{"Free money now click here", "Verify your password immediately", "Claim your prize reward link", "Urgent bank details confirm"}
	legit := []string{"Meeting at 3pm tomorrow", "Lunch with the team on friday", "Quarterly review notes attached", "Agenda for the offsite"}
	for i := range 10 {
		ds.Add(phish[i%len(phish)], corpus.LabelPhishing)
		ds.Add(legit[i%len(legit)], corpus.LabelLegit)
	}
	art, _, err := pipeline.Train(context.Background(), ds, pipeline.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "model.bin")
	if err := model.Save(art, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_EmailFlag(t *testing.T) {
	path := trainedModel(t)
	var out, errOut bytes.Buffer
	err := run([]string{"-model", path, "-email", "Free money now!!! Click here"}, strings.NewReader(""), &out, &errOut, config.New())
	if err != nil {
		t.Fatal(err)
	}
	testkit.MustContain(t, out.String(), "Verdict: ")
	testkit.MustContain(t, out.String(), "Probability of phishing: ")
	testkit.MustContain(t, out.String(), "%")
	if errOut.Len() != 0 {
		t.Fatalf("unexpected prompt with -email: %q", errOut.String())
	}
}

func TestRun_StdinJSON(t *testing.T) {
	path := trainedModel(t)
	t.Setenv("CORE_MODEL_PATH", path)

	var out bytes.Buffer
	err := run([]string{"-json"}, strings.NewReader("Verify your password\nimmediately\n"), &out, io.Discard, config.New())
	if err != nil {
		t.Fatal(err)
	}
	var res jsonResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("bad json %q: %v", out.String(), err)
	}
	if res.Band == "" || res.ModelID == "" || len(res.Classes) != 2 {
		t.Fatalf("result %+v", res)
	}
	if s := res.Classes[corpus.LabelLegit] + res.Classes[corpus.LabelPhishing]; s < 0.999 || s > 1.001 {
		t.Fatalf("class probabilities sum to %v", s)
	}
}

func TestRun_Errors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.bin")
	err := run([]string{"-model", missing, "-email", "hi"}, strings.NewReader(""), io.Discard, io.Discard, config.New())
	if !perr.IsCode(err, perr.ErrorCodeArtifactNotFound) {
		t.Fatalf("want ArtifactNotFound, got %v", err)
	}

	err = run([]string{"-model", missing, "extra"}, strings.NewReader(""), io.Discard, io.Discard, config.New())
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("want InvalidArgument, got %v", err)
	}

	err = run([]string{"-h"}, strings.NewReader(""), io.Discard, io.Discard, config.New())
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("want ErrHelp, got %v", err)
	}
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	if err := run([]string{"-version"}, nil, &out, io.Discard, config.New()); err != nil {
		t.Fatal(err)
	}
	testkit.MustContain(t, out.String(), "phishguard-predict")
}
