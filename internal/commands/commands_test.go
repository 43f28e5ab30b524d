package commands

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shyamraj/portfolio/internal/config"
	"github.com/shyamraj/portfolio/internal/refiner"
)

func TestReadDraft(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "draft.txt")
	if err := os.WriteFile(file, []byte("from file"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		file     string
		stdin    string
		hasStdin bool
		want     string
		wantErr  error
	}{
		{name: "argument", args: []string{"from arg"}, want: "from arg"},
		{name: "file wins", args: []string{"from arg"}, file: file, want: "from file"},
		{name: "stdin", stdin: "from stdin", hasStdin: true, want: "from stdin"},
		{name: "stdin before argument", args: []string{"from arg"}, stdin: "from stdin", hasStdin: true, want: "from stdin"},
		{name: "nothing", wantErr: refiner.ErrEmptyDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readDraft(tt.args, tt.file, strings.NewReader(tt.stdin), tt.hasStdin)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadDraftMissingFile(t *testing.T) {
	if _, err := readDraft(nil, filepath.Join(t.TempDir(), "nope.txt"), nil, false); err == nil {
		t.Error("expected an error for a missing file")
	}
}

type recordingClipboard struct{ text string }

func (c *recordingClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

func TestRunRefine(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer pk" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"refinedMessage":"Hello, polished."}`))
	}))
	defer upstream.Close()

	cfg := config.DefaultConfig()
	var out, errOut bytes.Buffer
	clip := &recordingClipboard{}

	err := runRefine(context.Background(), cfg, refiner.NewClient(upstream.URL, "pk"), clip,
		"hello\n", true, &out, &errOut)
	if err != nil {
		t.Fatalf("runRefine: %v", err)
	}
	if out.String() != "Hello, polished.\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if clip.text != "Hello, polished." {
		t.Errorf("clipboard = %q", clip.text)
	}
	for _, want := range []string{refiner.NoticeRefined, refiner.NoticeCopied} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("stderr missing %q: %s", want, errOut.String())
		}
	}
}

func TestRunRefineFallback(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Refiner.FallbackRecipient = "Alex"
	var out, errOut bytes.Buffer
	clip := &recordingClipboard{}

	err := runRefine(context.Background(), cfg, refiner.Unconfigured{}, clip, "hi there", false, &out, &errOut)
	if err != nil {
		t.Fatalf("runRefine: %v", err)
	}
	if !strings.HasPrefix(out.String(), "Dear Alex,\n\nI hope this message finds you well. hi there") {
		t.Errorf("expected fallback, got %q", out.String())
	}
	if clip.text != "" {
		t.Error("clipboard should be untouched without --copy")
	}
	if !strings.Contains(errOut.String(), refiner.NoticeFailed) {
		t.Errorf("stderr missing failure notice: %s", errOut.String())
	}
}

func TestRunRefineEmptyDraft(t *testing.T) {
	var out, errOut bytes.Buffer
	err := runRefine(context.Background(), config.DefaultConfig(), refiner.Unconfigured{}, &recordingClipboard{},
		"  \n", false, &out, &errOut)
	if !errors.Is(err, refiner.ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be printed, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), refiner.NoticeEmptyDraft) {
		t.Error("validation notice missing")
	}
}

func TestServerConfigWithFunction(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analytics.Enabled = false
	cfg.Function.APIKey = "sk-test"

	wc, cleanup, err := serverConfig(cfg, true)
	if err != nil {
		t.Fatalf("serverConfig: %v", err)
	}
	defer cleanup()

	if wc.Function == nil {
		t.Fatal("expected the local function to be wired")
	}
	if wc.PublicKey == "" || wc.PublicKey != cfg.Refiner.PublicKey {
		t.Error("the function and the refiner must share a generated key")
	}
	client, ok := wc.Refiner.(*refiner.Client)
	if !ok {
		t.Fatalf("expected a remote client, got %T", wc.Refiner)
	}
	if want := "http://127.0.0.1:8080/functions/v1/refine-message"; client.URL() != want {
		t.Errorf("URL = %q, want %q", client.URL(), want)
	}
	if wc.Tracker != nil {
		t.Error("analytics disabled should leave the tracker unset")
	}
}

func TestServerConfigFunctionNeedsKey(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analytics.Enabled = false
	if _, _, err := serverConfig(cfg, true); err == nil {
		t.Error("expected a validation error without function.api_key")
	}
}

func TestServerConfigUnconfiguredRefiner(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analytics.DatabasePath = filepath.Join(t.TempDir(), "portfolio.db")
	cfg.Analytics.RetentionDays = 30

	wc, cleanup, err := serverConfig(cfg, false)
	if err != nil {
		t.Fatalf("serverConfig: %v", err)
	}
	defer cleanup()

	if _, ok := wc.Refiner.(refiner.Unconfigured); !ok {
		t.Errorf("expected the offline refiner, got %T", wc.Refiner)
	}
	if wc.Function != nil {
		t.Error("function should be off by default")
	}
	if wc.Tracker == nil {
		t.Fatal("expected analytics to be wired")
	}
	if wc.Retention.Hours() != 30*24 {
		t.Errorf("retention = %v", wc.Retention)
	}
	if wc.Addr != ":8080" {
		t.Errorf("addr = %q", wc.Addr)
	}
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--version"})
	defer func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		rootCmd.Flags().Set("version", "false")
	}()

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "portfolio "+Version) {
		t.Errorf("unexpected version output %q", out.String())
	}
}

func TestInitConfig(t *testing.T) {
	t.Setenv("PORT", "")
	path := filepath.Join(t.TempDir(), "conf", "portfolio.yml")

	var out bytes.Buffer
	if err := initConfig(path, false, &out); err != nil {
		t.Fatalf("initConfig: %v", err)
	}
	if !strings.Contains(out.String(), path) {
		t.Errorf("unexpected output %q", out.String())
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := config.DefaultConfig()
	if cfg.Server.Port != want.Server.Port || cfg.Refiner.FallbackRecipient != want.Refiner.FallbackRecipient {
		t.Errorf("written config does not match the defaults: %+v", cfg)
	}

	if err := initConfig(path, false, &out); err == nil {
		t.Error("expected an error for an existing file without --force")
	}
	if err := initConfig(path, true, &out); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
}
