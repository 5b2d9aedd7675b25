// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package report writes the client-side copy of a generated security report.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	cserrors "grimm.is/cybershield/internal/errors"
	"grimm.is/cybershield/internal/model"
	"grimm.is/cybershield/internal/render"
)

// TimestampFormat matches JavaScript's Date.toISOString.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// FileName returns security_report_<ISO timestamp>.json for at.
func FileName(at time.Time) string {
	return "security_report_" + at.UTC().Format(TimestampFormat) + ".json"
}

// Result describes what Save produced.
type Result struct {
	Path      string
	Snapshots []string
	Summary   model.ReportSummary
	SavedTo   string
}

// Message is the operator-facing confirmation.
func (r Result) Message() string {
	var sb strings.Builder
	sb.WriteString("Report generated successfully\n")
	if r.SavedTo != "" {
		fmt.Fprintf(&sb, "Saved to: %s\n", r.SavedTo)
	}
	fmt.Fprintf(&sb, "Threats detected: %d\n", r.Summary.ThreatsDetected)
	fmt.Fprintf(&sb, "IPs blocked: %d\n", r.Summary.IPsBlocked)
	fmt.Fprintf(&sb, "Local copy: %s", r.Path)
	return sb.String()
}

// Writer saves reports into Dir.
type Writer struct {
	Dir string
	// Charts, when set, are written as PNG snapshots next to the report.
	Charts map[string]*render.Chart
}

// Save writes the verbatim report payload, indented, and returns where it
// went. The summary is decoded from the same payload.
func (w Writer) Save(env *model.ReportEnvelope, at time.Time) (Result, error) {
	if env == nil {
		return Result{}, cserrors.New(cserrors.KindValidation, "empty report response")
	}

	summary, err := env.Summary()
	if err != nil {
		return Result{}, cserrors.Wrap(err, cserrors.KindDecode, "decode report summary")
	}

	payload := []byte(env.Report)
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = []byte("null")
	}
	var out bytes.Buffer
	if err := json.Indent(&out, payload, "", "  "); err != nil {
		return Result{}, cserrors.Wrap(err, cserrors.KindDecode, "format report")
	}
	out.WriteByte('\n')

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return Result{}, cserrors.Wrap(err, cserrors.KindIO, "create report dir")
	}
	name := FileName(at)
	path := filepath.Join(w.Dir, name)
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		return Result{}, cserrors.Attr(cserrors.Wrap(err, cserrors.KindIO, "write report"), "path", path)
	}

	res := Result{Path: path, Summary: summary, SavedTo: env.SavedTo}
	snaps, err := w.writeSnapshots(strings.TrimSuffix(name, ".json"))
	res.Snapshots = snaps
	return res, err
}

func (w Writer) writeSnapshots(stem string) ([]string, error) {
	var written []string
	for key, c := range w.Charts {
		path := filepath.Join(w.Dir, fmt.Sprintf("%s_%s.png", stem, key))
		f, err := os.Create(path)
		if err != nil {
			return written, cserrors.Wrap(err, cserrors.KindIO, "create snapshot")
		}
		err = render.WritePNG(f, c)
		f.Close()
		if errors.Is(err, render.ErrNotEnoughData) {
			os.Remove(path)
			continue
		}
		if err != nil {
			return written, cserrors.Wrapf(err, cserrors.KindInternal, "render %s snapshot", key)
		}
		written = append(written, path)
	}
	return written, nil
}
