package collectors

import (
	"errors"
	"testing"
	"time"
)

func fakeCollector() *Collector {
	return &Collector{
		queryProcesses: func() ([]ProcessRecord, error) {
			return []ProcessRecord{{Pid: 100, Name: "chrome.exe", Username: "alice"}}, nil
		},
		queryConnections: func() ([]ConnectionRecord, error) {
			return []ConnectionRecord{{Protocol: "tcp", LocalAddr: "127.0.0.1", LocalPort: 443, State: "ESTABLISHED", Pid: 100}}, nil
		},
		queryCounters: func() (*InterfaceCounters, error) {
			return &InterfaceCounters{BytesSent: 1, BytesRecv: 2}, nil
		},
		queryHost: func() HostInfo {
			return HostInfo{Hostname: "testhost", OSType: "linux"}
		},
		elevated: func() bool { return false },
	}
}

func TestCollectAssemblesSnapshot(t *testing.T) {
	before := time.Now()
	snap, err := fakeCollector().Collect()
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}

	if snap.Timestamp.Before(before) {
		t.Error("timestamp should be taken at collection time")
	}
	if snap.Host.Hostname != "testhost" {
		t.Errorf("unexpected host: %+v", snap.Host)
	}
	if len(snap.Processes) != 1 || len(snap.Connections) != 1 {
		t.Fatalf("expected 1 process and 1 connection, got %d/%d", len(snap.Processes), len(snap.Connections))
	}
	if snap.Counters == nil || snap.Counters.BytesRecv != 2 {
		t.Errorf("counters not carried through: %+v", snap.Counters)
	}
}

func TestCollectProcessFailureIsFatal(t *testing.T) {
	c := fakeCollector()
	c.queryProcesses = func() ([]ProcessRecord, error) {
		return nil, errors.New("proc filesystem not mounted")
	}

	snap, err := c.Collect()
	if snap != nil {
		t.Fatal("no snapshot should be produced on fatal failure")
	}

	var ce *CollectionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CollectionError, got %T: %v", err, err)
	}
	if ce.Stage != "processes" {
		t.Errorf("expected processes stage, got %q", ce.Stage)
	}
}

func TestCollectConnectionFailureIsFatal(t *testing.T) {
	c := fakeCollector()
	c.queryConnections = func() ([]ConnectionRecord, error) {
		return nil, errors.New("enumeration unavailable")
	}

	_, err := c.Collect()
	var ce *CollectionError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *CollectionError, got %T: %v", err, err)
	}
	if ce.Stage != "connections" {
		t.Errorf("expected connections stage, got %q", ce.Stage)
	}
}

func TestCollectCounterFailureDegrades(t *testing.T) {
	c := fakeCollector()
	c.queryCounters = func() (*InterfaceCounters, error) {
		return nil, errors.New("counters unreadable")
	}

	snap, err := c.Collect()
	if err != nil {
		t.Fatalf("counter failure must not abort the scan: %v", err)
	}
	if snap.Counters != nil {
		t.Error("counters should be nil when unavailable")
	}
}

func TestCollectionErrorWrapping(t *testing.T) {
	inner := errors.New("boom")
	err := &CollectionError{Stage: "connections", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("CollectionError should unwrap to the inner error")
	}
	if err.Error() != "collect connections: boom" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestProtocolString(t *testing.T) {
	cases := []struct {
		connType, family uint32
		want             string
	}{
		{1, 2, "tcp"},
		{1, 10, "tcp6"},
		{1, 30, "tcp6"},
		{2, 2, "udp"},
		{2, 10, "udp6"},
		{9, 2, "unknown"},
	}
	for _, c := range cases {
		if got := protocolString(c.connType, c.family); got != c.want {
			t.Errorf("protocolString(%d, %d) = %q, want %q", c.connType, c.family, got, c.want)
		}
	}
}

func TestProcessByPid(t *testing.T) {
	snap := &Snapshot{Processes: []ProcessRecord{{Pid: 100, Name: "chrome.exe"}}}

	if p, ok := snap.ProcessByPid(100); !ok || p.Name != "chrome.exe" {
		t.Errorf("expected chrome.exe for pid 100, got %+v ok=%v", p, ok)
	}
	if _, ok := snap.ProcessByPid(999); ok {
		t.Error("unknown pid should not resolve")
	}
}
