package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestRunServe(t *testing.T) {
	t.Parallel()

	te := newTestEnv("")
	type listened struct{ requested, actual string }
	ready := make(chan listened, 1)
	te.Listen = func(network, addr string) (net.Listener, error) {
		ln, err := net.Listen(network, "127.0.0.1:0")
		if err != nil {
			return nil, err
		}
		ready <- listened{requested: addr, actual: ln.Addr().String()}
		return ln, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"serve", "--strict", "-q"}, te.Environment)
	}()

	var l listened
	select {
	case l = <-ready:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	if l.requested != "127.0.0.1:8080" {
		t.Errorf("requested addr = %q, want default", l.requested)
	}

	resp, err := http.Get("http://" + l.actual + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	body := strings.NewReader(`{"text":"{section1}\nOnly a hero here"}`)
	resp, err = http.Post("http://"+l.actual+"/api/generate", "application/json", body)
	if err != nil {
		t.Fatalf("POST /api/generate: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("strict generate status = %d, want 422", resp.StatusCode)
	}

	cancel()
	select {
	case code := <-done:
		if code != ExitSuccess {
			t.Errorf("exit = %d, stderr = %s", code, te.stderr)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not stop")
	}
	if !te.pool.closed || te.pool.released != 1 {
		t.Errorf("pool closed = %v, released = %d", te.pool.closed, te.pool.released)
	}
}

func TestRunServe_ListenError(t *testing.T) {
	t.Parallel()

	te := newTestEnv("")
	te.Listen = func(string, string) (net.Listener, error) {
		return nil, errors.New("address already in use")
	}
	if code := te.run("serve", "--addr", "127.0.0.1:1"); code != ExitGeneral {
		t.Errorf("exit = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(te.stderr.String(), "listening on 127.0.0.1:1") {
		t.Errorf("stderr = %s", te.stderr)
	}
}

func TestRunServe_RejectsArgs(t *testing.T) {
	t.Parallel()

	te := newTestEnv("")
	if code := te.run("serve", "posts/"); code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
}
