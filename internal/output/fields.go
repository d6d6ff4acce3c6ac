package output

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// field is one leaf value of a result struct, named by its dotted path.
type field struct {
	Name    string
	Raw     string
	Display string
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// flattenFields walks the exported fields of a result struct in declaration
// order. Decimal values are displayed by naming convention: *Rate and *Ratio
// fields hold fractions, *Percent and *Pct hold percentages, *Months hold
// month counts, everything else is money.
func flattenFields(prefix string, v interface{}) []field {
	var out []field
	walkValue(prefix, reflect.ValueOf(v), &out)
	return out
}

func walkValue(name string, v reflect.Value, out *[]field) {
	if !v.IsValid() {
		return
	}
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			*out = append(*out, field{Name: name, Raw: "", Display: "-"})
			return
		}
		walkValue(name, v.Elem(), out)
		return
	}

	if v.Type() == decimalType {
		d := v.Interface().(decimal.Decimal)
		*out = append(*out, field{Name: name, Raw: d.String(), Display: displayDecimal(name, d)})
		return
	}
	if s, ok := v.Interface().(fmt.Stringer); ok && v.Kind() != reflect.Struct {
		*out = append(*out, field{Name: name, Raw: s.String(), Display: s.String()})
		return
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			sf := t.Field(i)
			if !sf.IsExported() {
				continue
			}
			walkValue(joinName(name, sf.Name), v.Field(i), out)
		}
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			*out = append(*out, field{Name: name, Raw: "", Display: "none"})
			return
		}
		if v.Index(0).Kind() == reflect.Struct {
			for i := 0; i < v.Len(); i++ {
				walkValue(fmt.Sprintf("%s[%d]", name, i), v.Index(i), out)
			}
			return
		}
		parts := make([]string, v.Len())
		for i := range parts {
			parts[i] = fmt.Sprint(v.Index(i).Interface())
		}
		joined := strings.Join(parts, ", ")
		*out = append(*out, field{Name: name, Raw: joined, Display: joined})
	case reflect.Bool:
		b := v.Bool()
		display := "no"
		if b {
			display = "yes"
		}
		*out = append(*out, field{Name: name, Raw: strconv.FormatBool(b), Display: display})
	default:
		s := fmt.Sprint(v.Interface())
		*out = append(*out, field{Name: name, Raw: s, Display: s})
	}
}

func joinName(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

func displayDecimal(name string, d decimal.Decimal) string {
	leaf := name
	if i := strings.LastIndexByte(leaf, '.'); i >= 0 {
		leaf = leaf[i+1:]
	}
	switch {
	case strings.HasSuffix(leaf, "Rate"), strings.HasSuffix(leaf, "Ratio"):
		return FormatFraction(d)
	case strings.HasSuffix(leaf, "Percent"), strings.HasSuffix(leaf, "Pct"):
		return FormatPercentage(d)
	case strings.HasSuffix(leaf, "Months"), strings.HasSuffix(leaf, "Covered"):
		return d.StringFixed(1)
	}
	return FormatCurrency(d)
}

// humanize turns "MonthlyOutgoings" into "Monthly outgoings" and keeps
// acronyms such as TDSR and CPF intact.
func humanize(name string) string {
	var words []string
	runes := []rune(name)
	start := 0
	for i := 1; i < len(runes); i++ {
		prevUpper := isUpper(runes[i-1])
		curUpper := isUpper(runes[i])
		nextLower := i+1 < len(runes) && !isUpper(runes[i+1])
		if curUpper && (!prevUpper || nextLower) {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	for i := 1; i < len(words); i++ {
		if len(words[i]) > 1 && !isUpper([]rune(words[i])[1]) {
			words[i] = strings.ToLower(words[i])
		}
	}
	return strings.Join(words, " ")
}

func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
