package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/breeze-rmm/hostscan/internal/classify"
	"github.com/breeze-rmm/hostscan/internal/collectors"
)

const (
	sectionRule = "============================================================"
	unknown     = "unknown"
)

// Reporter renders a snapshot as a plain-text report. Rendering is pure
// formatting: all flags come from the Classifier and are never recomputed
// or second-guessed here.
type Reporter struct {
	Classifier *classify.Classifier
	// MaxConnsPerGroup caps the rows shown per process group; the
	// remainder collapses into an "and N more" line. Totals always count
	// every connection.
	MaxConnsPerGroup int
	// Color styles section headers and flag annotations for terminals.
	// Keep it off when writing to a file.
	Color bool
}

// NewReporter returns a Reporter with the given tunables.
func NewReporter(classifier *classify.Classifier, maxConnsPerGroup int, useColor bool) *Reporter {
	return &Reporter{
		Classifier:       classifier,
		MaxConnsPerGroup: maxConnsPerGroup,
		Color:            useColor,
	}
}

// Render writes the full five-section report plus the recommendations
// epilogue to w.
func (r *Reporter) Render(w io.Writer, snap *collectors.Snapshot) error {
	bw := bufio.NewWriter(w)

	r.renderSystemInfo(bw, snap)
	r.renderConnections(bw, snap)
	r.renderListening(bw, snap)
	r.renderAnalysis(bw, snap)
	r.renderStatistics(bw, snap)
	r.renderRecommendations(bw)

	return bw.Flush()
}

func (r *Reporter) header(w io.Writer, title string) {
	if r.Color {
		title = color.FgCyan.Render(title)
	}
	fmt.Fprintf(w, "%s\n%s\n%s\n", sectionRule, title, sectionRule)
}

func (r *Reporter) warn(s string) string {
	if r.Color {
		return color.FgYellow.Render(s)
	}
	return s
}

func (r *Reporter) alert(s string) string {
	if r.Color {
		return color.FgRed.Render(s)
	}
	return s
}

func (r *Reporter) renderSystemInfo(w io.Writer, snap *collectors.Snapshot) {
	r.header(w, "SYSTEM INFORMATION")

	host := snap.Host
	fmt.Fprintf(w, "Hostname:  %s\n", orUnknown(host.Hostname))
	fmt.Fprintf(w, "System:    %s (%s)\n", orUnknown(host.OSType), orUnknown(host.OSVersion))
	if host.KernelVersion != "" {
		fmt.Fprintf(w, "Kernel:    %s\n", host.KernelVersion)
	}
	fmt.Fprintf(w, "Arch:      %s\n", orUnknown(host.Architecture))
	if host.CPUModel != "" {
		fmt.Fprintf(w, "Processor: %s\n", host.CPUModel)
	}
	fmt.Fprintf(w, "Scan Time: %s\n", snap.Timestamp.Format("2006-01-02 15:04:05 MST"))

	if !snap.Elevated {
		fmt.Fprintf(w, "\n%s\n", r.warn("Note: running without elevated privileges; some connection owners may be unidentified."))
	}
	fmt.Fprintln(w)
}

func (r *Reporter) renderConnections(w io.Writer, snap *collectors.Snapshot) {
	r.header(w, "NETWORK CONNECTIONS")

	groups := GroupByProcess(snap)
	for _, group := range groups {
		if group.Unidentified() {
			fmt.Fprintf(w, "\n[unidentified]\n")
		} else {
			fmt.Fprintf(w, "\n[%s] (PID: %d)\n", orUnknown(group.Name), group.Pid)
		}

		shown := len(group.Connections)
		if r.MaxConnsPerGroup > 0 && shown > r.MaxConnsPerGroup {
			shown = r.MaxConnsPerGroup
		}
		for _, conn := range group.Connections[:shown] {
			fmt.Fprintf(w, "  %s\n", r.connectionRow(conn, group.Process))
		}
		if rest := len(group.Connections) - shown; rest > 0 {
			fmt.Fprintf(w, "  ... and %d more connections\n", rest)
		}
	}

	fmt.Fprintf(w, "\nTotal connections: %d\n\n", len(snap.Connections))
}

func (r *Reporter) connectionRow(conn collectors.ConnectionRecord, proc *collectors.ProcessRecord) string {
	remote := "-"
	if conn.RemoteAddr != "" || conn.RemotePort != 0 {
		remote = fmt.Sprintf("%s:%d", conn.RemoteAddr, conn.RemotePort)
	}

	row := fmt.Sprintf("%-5s %s:%d -> %s %s",
		conn.Protocol, conn.LocalAddr, conn.LocalPort, remote, orUnknown(conn.State))

	flags := r.Classifier.Connection(conn, proc)
	var notes []string
	if flags.Listening {
		notes = append(notes, "listening")
	}
	if flags.SuspiciousName {
		notes = append(notes, r.alert(fmt.Sprintf("suspicious name: %s", flags.MatchedTerm)))
	}
	if flags.HighUsage == classify.HighUsageFlagged {
		notes = append(notes, r.warn("high usage"))
	}
	if len(notes) > 0 {
		row += " [" + strings.Join(notes, ", ") + "]"
	}

	return row
}

func (r *Reporter) renderListening(w io.Writer, snap *collectors.Snapshot) {
	r.header(w, "LISTENING PORTS")

	listening := ListeningView(snap)
	for _, conn := range listening {
		name := orUnknown(conn.ProcessName)
		pid := unknown
		if conn.Pid > 0 {
			pid = fmt.Sprintf("%d", conn.Pid)
			if name == unknown {
				if proc, ok := snap.ProcessByPid(conn.Pid); ok && proc.Name != "" {
					name = proc.Name
				}
			}
		}
		fmt.Fprintf(w, "Port %5d - %s (PID: %s) on %s\n", conn.LocalPort, name, pid, conn.LocalAddr)
	}

	fmt.Fprintf(w, "\nTotal listening ports: %d\n\n", len(listening))
}

func (r *Reporter) renderAnalysis(w io.Writer, snap *collectors.Snapshot) {
	r.header(w, "PROCESS ANALYSIS")

	findings := Findings(snap, r.Classifier)
	if len(findings) == 0 {
		fmt.Fprintf(w, "No processes flagged by name or usage checks.\n\n")
		return
	}

	fmt.Fprintf(w, "%s\n", r.alert("Flagged processes:"))
	for _, finding := range findings {
		proc := finding.Process
		fmt.Fprintf(w, "  - %s (PID: %d, User: %s)\n", orUnknown(proc.Name), proc.Pid, orUnknown(proc.Username))

		if finding.Flags.SuspiciousName {
			label := finding.Flags.MatchedLabel
			if label == "" {
				label = "denylisted"
			}
			fmt.Fprintf(w, "      suspicious name: matched term %q (%s)\n", finding.Flags.MatchedTerm, label)
		}
		if finding.Flags.HighUsage == classify.HighUsageFlagged {
			fmt.Fprintf(w, "      high usage: %s read, %s written (threshold %s)\n",
				formatMB(proc.IOReadBytes), formatMB(proc.IOWriteBytes), formatMB(r.Classifier.ThresholdBytes))
		}
	}
	fmt.Fprintln(w)
}

func (r *Reporter) renderStatistics(w io.Writer, snap *collectors.Snapshot) {
	r.header(w, "NETWORK STATISTICS")

	counters := snap.Counters
	if counters == nil {
		fmt.Fprintf(w, "Interface counters unavailable on this host.\n\n")
		return
	}

	fmt.Fprintf(w, "Bytes Sent:     %s\n", formatMB(counters.BytesSent))
	fmt.Fprintf(w, "Bytes Received: %s\n", formatMB(counters.BytesRecv))
	fmt.Fprintf(w, "Packets Sent:   %d\n", counters.PacketsSent)
	fmt.Fprintf(w, "Packets Recv:   %d\n", counters.PacketsRecv)
	fmt.Fprintf(w, "Errors In:      %d\n", counters.ErrorsIn)
	fmt.Fprintf(w, "Errors Out:     %d\n", counters.ErrorsOut)
	fmt.Fprintln(w)
}

func (r *Reporter) renderRecommendations(w io.Writer) {
	r.header(w, "RECOMMENDATIONS")
	fmt.Fprintln(w, "1. Review any flagged or unfamiliar process names.")
	fmt.Fprintln(w, "2. Check listening ports and confirm you recognize every service.")
	fmt.Fprintln(w, "3. Investigate unexpected high network usage.")
	fmt.Fprintln(w, "4. Run a full antivirus/malware scan with updated definitions.")
	fmt.Fprintln(w, "5. Review host firewall rules for unexpected inbound allowances.")
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

func formatMB(b uint64) string {
	return fmt.Sprintf("%.2f MB", float64(b)/1_000_000)
}
