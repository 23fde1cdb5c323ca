// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/apex/log"
)

// filterRegex splits a filter expression into key, operator and target. The
// operator may carry a leading ! to negate it.
var filterRegex = regexp.MustCompile(`^(.*?)(!?[=^~@/<>])(.*)$`)

// Filter is a single parsed --filter expression.
type Filter struct {
	Key     string
	Negate  bool
	Operand string
	Target  string
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Malformed entries are logged and skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for targets that contain one.
	delim := ","
	if d, ok := os.LookupEnv("CLUDDER_FILTER_DELIM"); ok && d != "" {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil || parts[1] == "" {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		operand := parts[2]
		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}

		filters = append(filters, Filter{
			Key:     parts[1],
			Negate:  negate,
			Operand: operand,
			Target:  parts[3],
		})
	}

	return filters
}

// FilterDataset returns the rows that satisfy every filter in spec.
func FilterDataset(rows []map[string]interface{}, columns []Column, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return rows
	}

	//nolint:prealloc
	var filtered []map[string]interface{}
	for _, row := range rows {
		if applyFilters(row, columns, filters) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// applyFilters returns true if the row matches all of the filters. A filter on
// an unknown key is reported and ignored.
func applyFilters(row map[string]interface{}, columns []Column, filters []Filter) bool {
	for _, filter := range filters {
		known := false
		for _, c := range columns {
			if c.Key == filter.Key {
				known = true
				break
			}
		}
		if !known {
			msg := fmt.Sprintf("filter key not found: %s", filter.Key)
			log.Error(msg)
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
			continue
		}

		value, ok := row[filter.Key]
		if !ok || value == nil {
			return false
		}

		if !checkStringOperand(InterfaceToString(value), filter) {
			return false
		}
	}

	return true
}

// checkStringOperand evaluates a comparison filter against value.
func checkStringOperand(value string, filter Filter) bool {
	switch filter.Operand {
	case "=":
		return value == filter.Target == !filter.Negate
	case "~":
		return strings.Contains(strings.ToLower(value), strings.ToLower(filter.Target)) == !filter.Negate
	case "^":
		return strings.HasPrefix(value, filter.Target) == !filter.Negate
	case "@":
		return strings.Contains(value, filter.Target) == !filter.Negate
	case ">":
		return value > filter.Target == !filter.Negate
	case "<":
		return value < filter.Target == !filter.Negate
	case "/":
		matched, err := regexp.MatchString(filter.Target, value)
		if err != nil {
			log.Error("invalid regex: " + filter.Target)
			return false
		}
		return matched == !filter.Negate
	default:
		log.Error("unsupported filtering operand: " + filter.Operand)
		return false
	}
}
