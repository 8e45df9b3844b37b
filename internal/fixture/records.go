package fixture

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"chartweb/internal/dataset"
)

// LoadJSON reads an array of flat objects. Headers follow the key order of
// the first object and every object must carry the same keys.
func LoadJSON(r io.Reader) (dataset.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return dataset.Table{}, err
	}
	var records []orderedRecord
	for dec.More() {
		rec, err := decodeJSONObject(dec)
		if err != nil {
			return dataset.Table{}, fmt.Errorf("record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return dataset.Table{}, err
	}
	return tableFromRecords(records)
}

// LoadYAML reads a sequence of flat mappings with the same rules as LoadJSON.
func LoadYAML(r io.Reader) (dataset.Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return dataset.Table{}, ErrEmpty
		}
		return dataset.Table{}, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return dataset.Table{}, ErrEmpty
	}
	seq := doc.Content[0]
	if seq.Kind != yaml.SequenceNode {
		return dataset.Table{}, fmt.Errorf("line %d: expected a sequence of records", seq.Line)
	}

	records := make([]orderedRecord, 0, len(seq.Content))
	for _, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			return dataset.Table{}, fmt.Errorf("line %d: expected a mapping", item.Line)
		}
		var rec orderedRecord
		for i := 0; i+1 < len(item.Content); i += 2 {
			k, v := item.Content[i], item.Content[i+1]
			if v.Kind != yaml.ScalarNode {
				return dataset.Table{}, fmt.Errorf("line %d: field %q is not a scalar", v.Line, k.Value)
			}
			val := v.Value
			if v.Tag == "!!null" {
				val = ""
			}
			rec.add(k.Value, val)
		}
		records = append(records, rec)
	}
	return tableFromRecords(records)
}

type orderedRecord struct {
	keys   []string
	values map[string]string
}

func (r *orderedRecord) add(key, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, dup := r.values[key]; !dup {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

func tableFromRecords(records []orderedRecord) (dataset.Table, error) {
	if len(records) == 0 {
		return dataset.Table{}, ErrEmpty
	}
	headers := records[0].keys
	rows := make([][]string, len(records))
	for i, rec := range records {
		if len(rec.keys) != len(headers) {
			return dataset.Table{}, fmt.Errorf("%w: record %d has %d fields, want %d", dataset.ErrInvalidTable, i+1, len(rec.keys), len(headers))
		}
		row := make([]string, len(headers))
		for c, h := range headers {
			v, ok := rec.values[h]
			if !ok {
				return dataset.Table{}, fmt.Errorf("%w: record %d has no field %q", dataset.ErrInvalidTable, i+1, h)
			}
			row[c] = v
		}
		rows[i] = row
	}
	return dataset.NewTable(headers, rows)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func decodeJSONObject(dec *json.Decoder) (orderedRecord, error) {
	var rec orderedRecord
	if err := expectDelim(dec, '{'); err != nil {
		return rec, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return rec, err
		}
		key, ok := tok.(string)
		if !ok {
			return rec, fmt.Errorf("expected object key, got %v", tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return rec, err
		}
		var val string
		switch v := tok.(type) {
		case string:
			val = v
		case json.Number:
			val = v.String()
		case bool:
			val = strconv.FormatBool(v)
		case nil:
			val = ""
		default:
			return rec, fmt.Errorf("field %q is not a scalar", key)
		}
		rec.add(key, val)
	}
	return rec, expectDelim(dec, '}')
}

func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return n, err == nil
}
