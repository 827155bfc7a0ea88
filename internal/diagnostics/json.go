package diagnostics

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/orbit-lang/orbit/internal/source"
)

// ToJSON renders one diagnostic as the §6 JSON schema, building the
// document incrementally with sjson.Set the way the rest of this module's
// ambient stack builds JSON (SPEC_FULL.md "diagnostic JSON" section).
func (d *Diagnostic) ToJSON() (string, error) {
	json := "{}"
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		json, err = sjson.Set(json, path, value)
	}

	set("code", d.Code)
	set("level", d.Level.String())
	set("message", d.Message)

	if len(d.Spans) == 0 {
		set("spans", []any{})
	}
	for i, span := range d.Spans {
		base := spanPath("spans", i)
		set(base+".start_line", span.Start.Line)
		set(base+".start_column", span.Start.Column)
		set(base+".end_line", span.End.Line)
		set(base+".end_column", span.End.Column)
		if span.Start.File != "" {
			set(base+".file_path", span.Start.File)
		}
		if span.Label != "" {
			set(base+".label", span.Label)
		}
		if span.Snippet != "" {
			set(base+".snippet", span.Snippet)
		}
	}

	if len(d.Suggestions) == 0 {
		set("suggestions", []any{})
	}
	for i, sug := range d.Suggestions {
		base := spanPath("suggestions", i)
		set(base+".type", sug.Kind.String())
		set(base+".text", sug.Text)
		set(base+".confidence", sug.Confidence.String())
		if sug.Rationale != "" {
			set(base+".rationale", sug.Rationale)
		}
		set(base+".span.start_line", sug.Span.Start.Line)
		set(base+".span.start_column", sug.Span.Start.Column)
		set(base+".span.end_line", sug.Span.End.Line)
		set(base+".span.end_column", sug.Span.End.Column)
	}

	if d.Metadata != nil {
		m := d.Metadata
		if m.ErrorCategory != "" {
			set("metadata.error_category", m.ErrorCategory)
		}
		if len(m.SimilarSymbols) > 0 {
			set("metadata.similar_symbols", m.SimilarSymbols)
		}
		if len(m.InferredTypes) > 0 {
			set("metadata.inferred_types", m.InferredTypes)
		}
		if len(m.AvailableMethods) > 0 {
			set("metadata.available_methods", m.AvailableMethods)
		}
	}

	if err != nil {
		return "", err
	}
	return json, nil
}

func spanPath(field string, i int) string {
	return field + "." + itoa(i)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Pretty renders the JSON with indentation, used by the CLI's --json
// flag (tidwall/pretty, the teacher's pack-provided JSON pretty printer).
func Pretty(json string) string {
	return string(pretty.Pretty([]byte(json)))
}

// FromJSON parses a diagnostic back out of its §6 JSON encoding using
// gjson, the round-trip half of §8 property 4 ("to_json then parsed as
// JSON round-trips the code, level, message, and every span's
// line/column without loss").
func FromJSON(json string) *Diagnostic {
	d := &Diagnostic{
		Code:    gjson.Get(json, "code").String(),
		Message: gjson.Get(json, "message").String(),
	}
	switch gjson.Get(json, "level").String() {
	case "error":
		d.Level = Error
	case "warning":
		d.Level = Warning
	case "help":
		d.Level = Help
	default:
		d.Level = Note
	}

	gjson.Get(json, "spans").ForEach(func(_, v gjson.Result) bool {
		span := source.Span{
			Start: source.Position{
				Line:   int(v.Get("start_line").Int()),
				Column: int(v.Get("start_column").Int()),
				File:   v.Get("file_path").String(),
			},
			End: source.Position{
				Line:   int(v.Get("end_line").Int()),
				Column: int(v.Get("end_column").Int()),
				File:   v.Get("file_path").String(),
			},
			Label:   v.Get("label").String(),
			Snippet: v.Get("snippet").String(),
		}
		d.Spans = append(d.Spans, span)
		return true
	})

	gjson.Get(json, "suggestions").ForEach(func(_, v gjson.Result) bool {
		s := &Suggestion{
			Text:      v.Get("text").String(),
			Rationale: v.Get("rationale").String(),
		}
		switch v.Get("type").String() {
		case "insert":
			s.Kind = Insert
		case "delete":
			s.Kind = Delete
		default:
			s.Kind = Replace
		}
		switch v.Get("confidence").String() {
		case "high":
			s.Confidence = High
		case "medium":
			s.Confidence = Medium
		default:
			s.Confidence = Low
		}
		s.Span = source.Span{
			Start: source.Position{Line: int(v.Get("span.start_line").Int()), Column: int(v.Get("span.start_column").Int())},
			End:   source.Position{Line: int(v.Get("span.end_line").Int()), Column: int(v.Get("span.end_column").Int())},
		}
		d.Suggestions = append(d.Suggestions, s)
		return true
	})

	if m := gjson.Get(json, "metadata"); m.Exists() {
		d.Metadata = &Metadata{ErrorCategory: m.Get("error_category").String()}
		m.Get("similar_symbols").ForEach(func(_, v gjson.Result) bool {
			d.Metadata.SimilarSymbols = append(d.Metadata.SimilarSymbols, v.String())
			return true
		})
		m.Get("inferred_types").ForEach(func(_, v gjson.Result) bool {
			d.Metadata.InferredTypes = append(d.Metadata.InferredTypes, v.String())
			return true
		})
		m.Get("available_methods").ForEach(func(_, v gjson.Result) bool {
			d.Metadata.AvailableMethods = append(d.Metadata.AvailableMethods, v.String())
			return true
		})
	}

	return d
}
