package mapper

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// Format selects the on-disk mapping-file encoding. spec.md §6 specifies
// JSON (mappings.json, a bare top-level array) as the canonical format;
// YAML and TOML are additional formats cmd/mouseplayctl can scaffold and
// validate, following the teacher's three-format config stack.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

// FormatFromExtension maps a file extension (with or without its leading
// dot) to a Format, defaulting to FormatJSON for anything unrecognized.
func FormatFromExtension(ext string) Format {
	switch strings.TrimPrefix(strings.ToLower(ext), ".") {
	case "yaml", "yml":
		return FormatYAML
	case "toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Load reads a mapping file from disk and returns a ready-to-use Mapper.
// Degrading to "continue without a mapper" on a missing/invalid file is the
// caller's policy (spec.md §7); Load just reports the error.
func Load(path string, format Format) (*Mapper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBytes(data, format)
}

// LoadBytes decodes mapping records from an in-memory buffer.
func LoadBytes(data []byte, format Format) (*Mapper, error) {
	raw, err := decodeRecords(data, format)
	if err != nil {
		return nil, err
	}

	list := make(MappingList, 0, len(raw))
	for i, rec := range raw {
		m, err := mappingFromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("mapper: mapping %d: %w", i, err)
		}
		list = append(list, m)
	}
	return NewMapper(list), nil
}

// decodeRecords unwraps each format into a flat slice of generic records.
// JSON and YAML mirror spec.md §6's bare top-level array; TOML wraps the
// same array under a "mappings" key since a TOML document's root must be a
// table, not an array.
func decodeRecords(data []byte, format Format) ([]map[string]any, error) {
	switch format {
	case FormatYAML:
		var raw []map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("mapper: decode yaml mapping file: %w", err)
		}
		return raw, nil
	case FormatTOML:
		var wrapper struct {
			Mappings []map[string]any `toml:"mappings"`
		}
		if err := toml.Unmarshal(data, &wrapper); err != nil {
			return nil, fmt.Errorf("mapper: decode toml mapping file: %w", err)
		}
		return wrapper.Mappings, nil
	default:
		var raw []map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("mapper: decode json mapping file: %w", err)
		}
		return raw, nil
	}
}

func mappingFromRecord(rec map[string]any) (Mapping, error) {
	typ, _ := rec["type"].(string)
	switch typ {
	case "Button":
		return &ButtonMapping{
			Input:  recString(rec, "input"),
			Output: recString(rec, "output"),
		}, nil
	case "Axis":
		return &AxisMapping{
			Input:  recString(rec, "input"),
			Output: recString(rec, "output"),
			Value:  recNumber(rec, "value"),
		}, nil
	case "Mouse":
		return &MouseMapping{
			OutputX:     recString(rec, "output_x"),
			OutputY:     recString(rec, "output_y"),
			MultiplierX: recNumber(rec, "multiplier_x"),
			MultiplierY: recNumber(rec, "multiplier_y"),
			DeadZoneX:   int(recNumber(rec, "dead_zone_x")),
			DeadZoneY:   int(recNumber(rec, "dead_zone_y")),
			Sensitivity: recNumber(rec, "sensitivity"),
			Exponent:    recNumber(rec, "exponent"),
			Shape:       recString(rec, "shape"),
		}, nil
	default:
		return nil, fmt.Errorf("unknown mapping type %q", typ)
	}
}

func recString(rec map[string]any, key string) string {
	s, _ := rec[key].(string)
	return s
}

// recNumber normalizes the differing numeric types each decoder produces
// for a dynamic map[string]any destination (JSON: float64 always; YAML:
// int or float64; TOML: int64 or float64).
func recNumber(rec map[string]any, key string) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}
