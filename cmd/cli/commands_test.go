package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPutCmd_PostsPage(t *testing.T) {
	var got map[string]string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/pages" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"page":"a.com","loading_time":"a.com: 0.1s"}`))
	}))
	defer ts.Close()

	api := ts.URL
	cmd := putCmd(&api)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"a.com"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got["page"] != "a.com" {
		t.Fatalf("unexpected payload %v", got)
	}
	if !strings.Contains(out.String(), "loading_time") {
		t.Fatalf("response not printed: %q", out.String())
	}
}

func TestGetCmd_EscapesPageAndFailsOn404(t *testing.T) {
	var rawPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Page does not exist"}`))
	}))
	defer ts.Close()

	api := ts.URL + "/"
	cmd := getCmd(&api)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"a.com b.com"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("want error on 404")
	}
	if rawPath != "/pages/a.com%20b.com" {
		t.Fatalf("unexpected path %q", rawPath)
	}
}

func TestMeasureCmd_RequiresArgs(t *testing.T) {
	// measure always uses https, so only argument validation runs offline
	cmd := measureCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("want error without arguments")
	}
}
