package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/onion/internal/textstage"
	"github.com/kbukum/onion/logger"
	"github.com/kbukum/onion/pipeline"
	"github.com/kbukum/onion/stages"
)

func testRouter(t *testing.T, specs ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	chain, err := buildChain(&ChainConfig{Stages: specs}, chainDeps{registry: textstage.Default(), log: logger.Nop()})
	if err != nil {
		t.Fatal(err)
	}
	e := gin.New()
	registerRoutes(e, chain.Compile(), 4, "onion-test")
	return e
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/run", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rr, req)
	return rr
}

func TestRunEndpoint(t *testing.T) {
	rr := post(t, testRouter(t, "trim", "upper"), `{"inputs": [" a ", "b", "c"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var body struct {
		Data runResponse `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(body.Data.Results, ","); got != "A,B,C" {
		t.Errorf("results = %s", got)
	}
}

func TestRunEndpointBadRequest(t *testing.T) {
	router := testRouter(t, "trim")
	for _, body := range []string{`{}`, `{"inputs": []}`, `not json`} {
		rr := post(t, router, body)
		if rr.Code != http.StatusBadRequest || !strings.Contains(rr.Body.String(), "INVALID_INPUT") {
			t.Errorf("%s: %d %s", body, rr.Code, rr.Body.String())
		}
	}
}

func TestRunEndpointChainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	slow := pipeline.NewBuilder(pipeline.WithStages(
		stages.Timeout[string, string](10*time.Millisecond),
		func(ctx context.Context, in string, next pipeline.Handler[string, string]) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	))
	e := gin.New()
	registerRoutes(e, slow.Compile(), 1, "onion-test")

	rr := post(t, e, `{"inputs": ["x"]}`)
	if rr.Code != http.StatusGatewayTimeout || !strings.Contains(rr.Body.String(), "TIMEOUT") {
		t.Errorf("%d %s", rr.Code, rr.Body.String())
	}
}

func TestHealthAndVersion(t *testing.T) {
	router := testRouter(t, "trim")
	for path, want := range map[string]string{"/health": `"service":"onion-test"`, "/version": `"go_version"`} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), want) {
			t.Errorf("%s: %d %s", path, rr.Code, rr.Body.String())
		}
	}
}

func TestServeRejectsArguments(t *testing.T) {
	if code, _, _ := runCLI(t, "", "serve", "text"); code != exitUsage {
		t.Errorf("exit %d", code)
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestServe(t *testing.T) {
	port := freePort(t)
	cfg := writeConfig(t, quietConfig+`
chain:
  stages: [reverse]
server:
  host: 127.0.0.1
`)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() {
		var stdout, stderr bytes.Buffer
		done <- run(ctx, []string{"serve", "-c", cfg, "-p", strconv.Itoa(port)}, strings.NewReader(""), &stdout, &stderr)
	}()

	url := "http://127.0.0.1:" + strconv.Itoa(port)
	var resp *http.Response
	var err error
	for range 100 {
		resp, err = http.Post(url+"/v1/run", "application/json", strings.NewReader(`{"inputs":["abc"]}`))
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("server never came up: %v", err)
	}
	var body struct {
		Data runResponse `json:"data"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	if len(body.Data.Results) != 1 || body.Data.Results[0] != "cba" {
		t.Errorf("results = %v", body.Data.Results)
	}

	cancel()
	select {
	case code := <-done:
		if code != exitOK {
			t.Errorf("exit %d", code)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop after cancellation")
	}
}
