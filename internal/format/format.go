// Package format renders measurements for HTTP responses and persisted records.
package format

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/hamed0406/pageloadtime/internal/domain"
)

// Entry is the JSON shape of one measurement.
type Entry struct {
	Page        string `json:"page"`
	LoadingTime string `json:"loading_time"`
}

// Seconds renders v in its shortest form, always with a fractional part ("2.0", "0.123").
func Seconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Text renders one "identifier: secondss" line per measurement.
func Text(ms []domain.Measurement) string {
	lines := make([]string, 0, len(ms))
	for _, m := range ms {
		lines = append(lines, m.Identifier+": "+Seconds(m.Seconds)+"s")
	}
	return strings.Join(lines, "\n")
}

func Entries(ms []domain.Measurement) []Entry {
	out := make([]Entry, 0, len(ms))
	for _, m := range ms {
		out = append(out, Entry{
			Page:        m.Identifier,
			LoadingTime: strings.TrimSpace(Seconds(m.Seconds) + "s"),
		})
	}
	return out
}

// JSONFragments renders one standalone JSON object per measurement, newline separated.
// The result is not a JSON document: there is no enclosing array and no commas.
func JSONFragments(ms []domain.Measurement) (string, error) {
	var buf bytes.Buffer
	enc := newEncoder(&buf)
	for _, e := range Entries(ms) {
		// Encode terminates every value with '\n'
		if err := enc.Encode(e); err != nil {
			return "", err
		}
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// JSONArray renders the measurements as a single JSON array.
func JSONArray(ms []domain.Measurement) ([]byte, error) {
	var buf bytes.Buffer
	if err := newEncoder(&buf).Encode(Entries(ms)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// identifiers are URLs, so '&' and friends stay literal
func newEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}
