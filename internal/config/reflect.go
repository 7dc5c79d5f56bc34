package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ConfigField represents metadata about a config field extracted from struct tags
type ConfigField struct {
	Key      string // e.g., "view.overscan"
	Default  string // default value as string
	Desc     string // description for help text
	Min      int    // minimum value for int fields (0 = no limit)
	Max      int    // maximum value for int fields (0 = no limit)
	Type     string // "string" or "int"
	Category string // e.g., "view", "database"
	ReadOnly bool   // if true, cannot be set via CLI
}

var (
	fieldCache     []ConfigField
	fieldCacheOnce sync.Once
)

// configFields extracts all config fields from Config using reflection
func configFields() []ConfigField {
	fieldCacheOnce.Do(func() {
		var fields []ConfigField
		cfg := &Config{}
		extractFields(reflect.ValueOf(cfg).Elem(), reflect.TypeOf(cfg).Elem(), &fields)

		sort.Slice(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})
		fieldCache = fields
	})
	return fieldCache
}

// extractFields recursively extracts config fields from a struct
func extractFields(v reflect.Value, t reflect.Type, fields *[]ConfigField) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		// Column lists are edited in the file, not through keys
		if field.Type.Kind() == reflect.Map || field.Type.Kind() == reflect.Slice {
			continue
		}

		configKey := field.Tag.Get("config")
		if configKey == "" {
			if field.Type.Kind() == reflect.Struct && field.Tag.Get("toml") != "" {
				extractFields(value, field.Type, fields)
			}
			continue
		}

		cf := ConfigField{
			Key:      configKey,
			Default:  field.Tag.Get("default"),
			Desc:     field.Tag.Get("desc"),
			Category: strings.Split(configKey, ".")[0],
			ReadOnly: field.Tag.Get("readonly") == "true",
		}

		if minStr := field.Tag.Get("min"); minStr != "" {
			cf.Min, _ = strconv.Atoi(minStr)
		}
		if maxStr := field.Tag.Get("max"); maxStr != "" {
			cf.Max, _ = strconv.Atoi(maxStr)
		}

		switch field.Type.Kind() {
		case reflect.Int:
			cf.Type = "int"
		case reflect.String:
			cf.Type = "string"
		}

		*fields = append(*fields, cf)
	}
}

// findField finds a config field by key
func findField(key string) *ConfigField {
	key = normalizeKey(key)
	for _, f := range configFields() {
		if f.Key == key {
			return &f
		}
	}
	return nil
}

// normalizeKey handles key aliases
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	aliases := map[string]string{
		"view.row_height":      "view.row_height_px",
		"view.cell_width":      "view.cell_width_px",
		"view.column_overscan": "view.column_overscan_px",
		"database.key":         "database.key_column",
		"database.timeout":     "database.timeout_sec",
	}
	if normalized, ok := aliases[key]; ok {
		return normalized
	}
	return key
}

// nestedStruct finds the section struct named by the first key part
func nestedStruct(cfg *Config, section string) reflect.Value {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Tag.Get("toml") == section {
			return v.Field(i)
		}
	}
	return reflect.Value{}
}

// getFieldValue gets a field value from the config using reflection
func getFieldValue(cfg *Config, key string) (string, bool) {
	key = normalizeKey(key)

	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", false
	}

	nestedValue := nestedStruct(cfg, parts[0])
	if !nestedValue.IsValid() || nestedValue.Kind() != reflect.Struct {
		return "", false
	}

	nestedType := nestedValue.Type()
	for i := 0; i < nestedType.NumField(); i++ {
		if nestedType.Field(i).Tag.Get("config") == key {
			fieldValue := nestedValue.Field(i)
			switch fieldValue.Kind() {
			case reflect.String:
				return fieldValue.String(), true
			case reflect.Int:
				return strconv.FormatInt(fieldValue.Int(), 10), true
			}
		}
	}

	return "", false
}

// setFieldValue sets a field value on the config using reflection
func setFieldValue(cfg *Config, key, value string) error {
	key = normalizeKey(key)

	field := findField(key)
	if field == nil {
		return fmt.Errorf("unknown config key: %s", key)
	}

	if field.ReadOnly {
		return fmt.Errorf("config key %s is read-only", key)
	}

	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return fmt.Errorf("invalid config key format: %s", key)
	}

	nestedValue := nestedStruct(cfg, parts[0])
	if !nestedValue.IsValid() || nestedValue.Kind() != reflect.Struct {
		return fmt.Errorf("unknown config category: %s", parts[0])
	}

	nestedType := nestedValue.Type()
	for i := 0; i < nestedType.NumField(); i++ {
		if nestedType.Field(i).Tag.Get("config") == key {
			fieldValue := nestedValue.Field(i)

			switch fieldValue.Kind() {
			case reflect.String:
				fieldValue.SetString(value)
				return nil

			case reflect.Int:
				intVal, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("invalid integer value: %s", value)
				}

				if field.Min != 0 && intVal < field.Min {
					return fmt.Errorf("value %d is below minimum %d", intVal, field.Min)
				}
				if intVal < 0 {
					return fmt.Errorf("value %d must not be negative", intVal)
				}
				if field.Max != 0 && intVal > field.Max {
					return fmt.Errorf("value %d exceeds maximum %d", intVal, field.Max)
				}

				fieldValue.SetInt(int64(intVal))
				return nil
			}
		}
	}

	return fmt.Errorf("field not found: %s", key)
}

// ListKeys returns all available config keys
func ListKeys() []string {
	fields := configFields()
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.Key
	}
	return keys
}

// FieldsByCategory returns config fields grouped by category
func FieldsByCategory() map[string][]ConfigField {
	result := make(map[string][]ConfigField)
	for _, f := range configFields() {
		result[f.Category] = append(result[f.Category], f)
	}
	return result
}

// GenerateHelpText generates help text for config options
func GenerateHelpText() string {
	var sb strings.Builder

	byCategory := FieldsByCategory()

	categories := []struct {
		key   string
		title string
	}{
		{"view", "View geometry"},
		{"database", "Database binding"},
	}

	for _, cat := range categories {
		fields, ok := byCategory[cat.key]
		if !ok || len(fields) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("  %s:\n", cat.title))
		for _, f := range fields {
			defaultStr := ""
			if f.Default != "" {
				defaultStr = fmt.Sprintf(" (default: %s)", f.Default)
			}
			sb.WriteString(fmt.Sprintf("    %-28s %s%s\n", f.Key, f.Desc, defaultStr))
		}
		sb.WriteString("\n")
	}

	return strings.TrimSuffix(sb.String(), "\n")
}
