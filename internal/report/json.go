package report

import (
	"encoding/json"
	"io"

	"github.com/breeze-rmm/hostscan/internal/collectors"
)

// The JSON document is an additive interface: it carries the same snapshot
// and the same computed flags as the text report, for operators who want to
// post-process a scan. The text report stays the default.

type jsonConnection struct {
	collectors.ConnectionRecord
	Listening      bool   `json:"listening"`
	SuspiciousName bool   `json:"suspiciousName"`
	HighUsage      string `json:"highUsage"`
}

type jsonGroup struct {
	Pid          int32            `json:"pid"`
	Name         string           `json:"name,omitempty"`
	Unidentified bool             `json:"unidentified,omitempty"`
	Connections  []jsonConnection `json:"connections"`
}

type jsonFinding struct {
	Pid            int32  `json:"pid"`
	Name           string `json:"name"`
	Username       string `json:"username,omitempty"`
	SuspiciousName bool   `json:"suspiciousName"`
	MatchedTerm    string `json:"matchedTerm,omitempty"`
	MatchedLabel   string `json:"matchedLabel,omitempty"`
	HighUsage      string `json:"highUsage"`
	IOReadBytes    uint64 `json:"ioReadBytes"`
	IOWriteBytes   uint64 `json:"ioWriteBytes"`
}

type jsonDocument struct {
	*collectors.Snapshot
	Groups    []jsonGroup      `json:"groups"`
	Listening []jsonConnection `json:"listening"`
	Findings  []jsonFinding    `json:"findings"`
}

// RenderJSON writes the snapshot plus all derived groupings and flags as an
// indented JSON document.
func (r *Reporter) RenderJSON(w io.Writer, snap *collectors.Snapshot) error {
	doc := jsonDocument{
		Snapshot:  snap,
		Groups:    []jsonGroup{},
		Listening: []jsonConnection{},
		Findings:  []jsonFinding{},
	}

	for _, group := range GroupByProcess(snap) {
		jg := jsonGroup{
			Pid:          group.Pid,
			Name:         group.Name,
			Unidentified: group.Unidentified(),
		}
		for _, conn := range group.Connections {
			jg.Connections = append(jg.Connections, r.annotate(conn, group.Process))
		}
		doc.Groups = append(doc.Groups, jg)
	}

	for _, conn := range ListeningView(snap) {
		var proc *collectors.ProcessRecord
		if p, ok := snap.ProcessByPid(conn.Pid); ok {
			proc = &p
		}
		doc.Listening = append(doc.Listening, r.annotate(conn, proc))
	}

	for _, finding := range Findings(snap, r.Classifier) {
		doc.Findings = append(doc.Findings, jsonFinding{
			Pid:            finding.Process.Pid,
			Name:           finding.Process.Name,
			Username:       finding.Process.Username,
			SuspiciousName: finding.Flags.SuspiciousName,
			MatchedTerm:    finding.Flags.MatchedTerm,
			MatchedLabel:   finding.Flags.MatchedLabel,
			HighUsage:      finding.Flags.HighUsage.String(),
			IOReadBytes:    finding.Process.IOReadBytes,
			IOWriteBytes:   finding.Process.IOWriteBytes,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func (r *Reporter) annotate(conn collectors.ConnectionRecord, proc *collectors.ProcessRecord) jsonConnection {
	flags := r.Classifier.Connection(conn, proc)
	return jsonConnection{
		ConnectionRecord: conn,
		Listening:        flags.Listening,
		SuspiciousName:   flags.SuspiciousName,
		HighUsage:        flags.HighUsage.String(),
	}
}
