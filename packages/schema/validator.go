package schema

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Validate recursively checks data against node and collects every violation
// instead of stopping at the first. Property keys are walked in sorted order
// so the same (data, schema) pair always yields an identical Result.
func Validate(data any, node *Node) Result {
	var errs []string
	if node == nil {
		errs = append(errs, "schema node is nil")
	} else {
		errs = validateNode(data, node, "")
	}
	return Result{Valid: len(errs) == 0, Errors: errs}
}

// errorAt qualifies a message with its path, if any.
func errorAt(path, msg string) string {
	if path == "" {
		return msg
	}
	return path + ": " + msg
}

func childPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}

func validateNode(data any, node *Node, path string) []string {
	switch node.Type {
	case TypeAny:
		return nil
	case TypeObject:
		return validateObject(data, node, path)
	case TypeArray:
		return validateArray(data, node, path)
	case TypeString:
		return validateString(data, node, path)
	case TypeNumber:
		return validateNumber(data, node, path)
	case TypeBoolean:
		return validateBoolean(data, path)
	case "":
		return []string{errorAt(path, "schema node has no type")}
	default:
		return []string{errorAt(path, fmt.Sprintf("unknown schema type %q", node.Type))}
	}
}

func validateObject(data any, node *Node, path string) []string {
	obj, ok := data.(map[string]any)
	if !ok {
		return []string{errorAt(path, fmt.Sprintf("Expected object, got %s", typeName(data)))}
	}

	required := make(map[string]bool, len(node.Required))
	for _, key := range node.Required {
		required[key] = true
	}

	keys := make([]string, 0, len(node.Properties))
	for key := range node.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errs []string
	for _, key := range keys {
		value, present := obj[key]
		if !present {
			// A missing required field is one error; a missing field is
			// never validated against its nested schema.
			if required[key] {
				errs = append(errs, errorAt(path, "Missing required property: "+key))
			}
			continue
		}
		errs = append(errs, validateNode(value, node.Properties[key], childPath(path, key))...)
	}
	return errs
}

func validateArray(data any, node *Node, path string) []string {
	arr, ok := data.([]any)
	if !ok {
		return []string{errorAt(path, fmt.Sprintf("Expected array, got %s", typeName(data)))}
	}
	if node.Items == nil {
		return nil
	}
	var errs []string
	for i, item := range arr {
		errs = append(errs, validateNode(item, node.Items, indexPath(path, i))...)
	}
	return errs
}

// validateString checks the primitive type first; constraints are meaningless
// on the wrong type, so a mismatch emits one error and skips them. On the
// right type every present constraint is checked independently.
func validateString(data any, node *Node, path string) []string {
	s, ok := data.(string)
	if !ok {
		return []string{errorAt(path, fmt.Sprintf("Expected string, got %s", typeName(data)))}
	}

	var errs []string
	if node.MinLength != nil && len(s) < *node.MinLength {
		errs = append(errs, errorAt(path,
			fmt.Sprintf("String length %d is less than minimum %d", len(s), *node.MinLength)))
	}
	if node.MaxLength != nil && len(s) > *node.MaxLength {
		errs = append(errs, errorAt(path,
			fmt.Sprintf("String length %d is greater than maximum %d", len(s), *node.MaxLength)))
	}
	if node.Pattern != "" {
		re, err := regexp.Compile(node.Pattern)
		if err != nil {
			errs = append(errs, errorAt(path, fmt.Sprintf("Invalid pattern %q: %v", node.Pattern, err)))
		} else if !re.MatchString(s) {
			errs = append(errs, errorAt(path, "String does not match pattern "+node.Pattern))
		}
	}
	if len(node.Enum) > 0 && !containsString(node.Enum, s) {
		errs = append(errs, errorAt(path, fmt.Sprintf("Value %q is not one of %v", s, node.Enum)))
	}
	return errs
}

func validateNumber(data any, node *Node, path string) []string {
	n, ok := toNumber(data)
	if !ok {
		return []string{errorAt(path, fmt.Sprintf("Expected number, got %s", typeName(data)))}
	}

	var errs []string
	if node.Minimum != nil && n < *node.Minimum {
		errs = append(errs, errorAt(path,
			fmt.Sprintf("Number %v is less than minimum %v", n, *node.Minimum)))
	}
	if node.Maximum != nil && n > *node.Maximum {
		errs = append(errs, errorAt(path,
			fmt.Sprintf("Number %v is greater than maximum %v", n, *node.Maximum)))
	}
	return errs
}

func validateBoolean(data any, path string) []string {
	if _, ok := data.(bool); !ok {
		return []string{errorAt(path, fmt.Sprintf("Expected boolean, got %s", typeName(data)))}
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}

// typeName reports the JSON-facing name of a decoded value's type.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, float32, int, int64, int32:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
