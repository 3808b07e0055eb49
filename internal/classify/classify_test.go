package classify

import (
	"testing"

	"github.com/breeze-rmm/hostscan/internal/collectors"
)

func TestIsListeningTCP(t *testing.T) {
	listen := collectors.ConnectionRecord{Protocol: "tcp", State: "LISTEN", LocalPort: 8080}
	if !IsListening(listen) {
		t.Error("TCP LISTEN should be listening")
	}

	established := collectors.ConnectionRecord{Protocol: "tcp", State: "ESTABLISHED", RemoteAddr: "10.0.0.1", RemotePort: 443}
	if IsListening(established) {
		t.Error("TCP ESTABLISHED should not be listening")
	}
}

func TestIsListeningUDP(t *testing.T) {
	bound := collectors.ConnectionRecord{Protocol: "udp", State: "NONE", LocalPort: 53}
	if !IsListening(bound) {
		t.Error("bound UDP socket with no remote endpoint should be listening")
	}

	emptyState := collectors.ConnectionRecord{Protocol: "udp6", State: "", LocalPort: 5353}
	if !IsListening(emptyState) {
		t.Error("UDP socket with empty state should be listening")
	}

	connected := collectors.ConnectionRecord{Protocol: "udp", State: "NONE", RemoteAddr: "8.8.8.8", RemotePort: 53}
	if IsListening(connected) {
		t.Error("UDP socket with remote endpoint should not be listening")
	}
}

func TestSuspiciousNameCaseInsensitive(t *testing.T) {
	c := NewClassifier(10_000_000)

	flags := c.Process(collectors.ProcessRecord{Pid: 200, Name: "XMRig_Miner.exe"})
	if !flags.SuspiciousName {
		t.Fatal("name containing 'miner' should be flagged regardless of case")
	}
	if flags.MatchedTerm != "miner" {
		t.Errorf("expected matched term miner, got %q", flags.MatchedTerm)
	}
	if flags.MatchedLabel != "cryptominer" {
		t.Errorf("expected cryptominer label, got %q", flags.MatchedLabel)
	}
}

func TestSuspiciousNameIgnoresNetworkActivity(t *testing.T) {
	c := NewClassifier(10_000_000)

	// Zero I/O: the name flag must still fire.
	flags := c.Process(collectors.ProcessRecord{Pid: 1, Name: "keylogd", IOKnown: true})
	if !flags.SuspiciousName {
		t.Error("suspicious name must be flagged regardless of usage level")
	}
	if flags.HighUsage != HighUsageBelow {
		t.Error("zero I/O below threshold should not be flagged")
	}
}

func TestCleanNameNotFlagged(t *testing.T) {
	c := NewClassifier(10_000_000)
	flags := c.Process(collectors.ProcessRecord{Pid: 100, Name: "chrome.exe"})
	if flags.SuspiciousName {
		t.Error("chrome.exe should not match any denylist term")
	}
}

func TestHighUsageThresholdMonotonic(t *testing.T) {
	proc := collectors.ProcessRecord{
		Pid: 300, Name: "rsync",
		IOReadBytes: 6_000_000, IOWriteBytes: 5_000_000,
		IOKnown: true,
	}

	high := NewClassifier(20_000_000)
	if high.Process(proc).HighUsage != HighUsageBelow {
		t.Error("usage below threshold should not be flagged")
	}

	// Lowering the threshold below actual usage must newly flag it.
	low := NewClassifier(10_000_000)
	if low.Process(proc).HighUsage != HighUsageFlagged {
		t.Error("usage above lowered threshold must be flagged")
	}
}

func TestHighUsageNotComputedWithoutCounters(t *testing.T) {
	c := NewClassifier(0)
	flags := c.Process(collectors.ProcessRecord{Pid: 400, Name: "systemd", IOKnown: false})
	if flags.HighUsage != HighUsageNotComputed {
		t.Error("unreadable counters must degrade to not-computed, never a false signal")
	}
}

func TestConnectionFlagsForUnidentifiedOwner(t *testing.T) {
	c := NewClassifier(10_000_000)
	conn := collectors.ConnectionRecord{Protocol: "tcp", State: "LISTEN", LocalPort: 9999}

	flags := c.Connection(conn, nil)
	if !flags.Listening {
		t.Error("listening flag is derivable without an owner")
	}
	if flags.SuspiciousName {
		t.Error("no name flag without an owner")
	}
	if flags.HighUsage != HighUsageNotComputed {
		t.Error("usage flag is not computable without an owner")
	}
}
